package domain

import "errors"

var (
	// Generation
	ErrJobNotFound        = errors.New("generation job not found")
	ErrJobNotComplete     = errors.New("generation job has not completed")
	ErrEmptyPrompt        = errors.New("prompt is required")
	ErrPromptTooLong      = errors.New("prompt exceeds maximum length")
	ErrInvalidContentType = errors.New("content type must be IMAGE, TEXT or MUSIC")
	ErrInvalidAddress     = errors.New("address must be a 0x-prefixed 40-hex-digit string")
	ErrInvalidSeed        = errors.New("seed must be non-negative")
	ErrInvalidTimeout     = errors.New("timeout must be between 1 and 300 seconds")

	// Content store
	ErrContentNotFound = errors.New("content not found for CID")
	ErrEmptyContent    = errors.New("content is required")

	// Index / marketplace
	ErrNFTNotFound     = errors.New("NFT not found")
	ErrListingNotFound = errors.New("listing not found")
	ErrNFTConflict     = errors.New("NFT with this token ID already indexed")
	ErrInvalidPage     = errors.New("page must be at least 1")
	ErrInvalidPageSize = errors.New("page size must be between 1 and 100")

	// DNA
	ErrDNANotFound          = errors.New("DNA record not found")
	ErrInvalidMutationBoost = errors.New("mutation boost must be between 0 and 1")

	// Emotion
	ErrProfileNotFound = errors.New("emotion profile not found")
	ErrNoEmotionInput  = errors.New("text, image or audio input is required")

	// Agents
	ErrAgentNotFound     = errors.New("unknown agent type")
	ErrExecutionNotFound = errors.New("execution not found")
	ErrPresetNotFound    = errors.New("preset not found")
	ErrNoAgentsSelected  = errors.New("at least one agent is required")
	ErrInvalidMode       = errors.New("invalid execution mode")

	// Search
	ErrEmptyQuery = errors.New("query is required")

	// Upstream
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")
)
