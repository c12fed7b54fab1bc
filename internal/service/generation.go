package service

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/morningstarxcdcode/dgc-platform/internal/domain"
)

var addressPattern = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)

var modelVersions = map[domain.ContentType]string{
	domain.ContentTypeImage: "stable-diffusion-xl-1.0",
	domain.ContentTypeText:  "gpt-4-turbo",
	domain.ContentTypeMusic: "musicgen-large",
}

var textVocabulary = []string{
	"creative", "innovative", "artistic", "digital", "unique",
	"generated", "AI", "content", "beautiful", "fascinating",
}

// GenerateParams carries a validated generation request.
type GenerateParams struct {
	Prompt         string
	ContentType    domain.ContentType
	CreatorAddress string
	Seed           *int64
	Params         map[string]any
	TimeoutSeconds int
}

// GenerationService runs simulated model jobs. Output is a deterministic
// function of the seed, so the same request replays byte for byte.
type GenerationService struct {
	mu             sync.RWMutex
	jobs           map[uuid.UUID]*domain.GenerationJob
	maxPrompt      int
	defaultTimeout time.Duration

	// latency simulates model inference time; tests zero it out.
	latency func(r *rand.Rand) time.Duration
}

func NewGenerationService(maxPrompt int, defaultTimeout time.Duration) *GenerationService {
	return &GenerationService{
		jobs:           make(map[uuid.UUID]*domain.GenerationJob),
		maxPrompt:      maxPrompt,
		defaultTimeout: defaultTimeout,
		latency: func(r *rand.Rand) time.Duration {
			return 500*time.Millisecond + time.Duration(r.Intn(1500))*time.Millisecond
		},
	}
}

// StartGeneration validates the request, registers a pending job and kicks
// off the simulated run. The job id is returned immediately.
func (s *GenerationService) StartGeneration(p GenerateParams) (*domain.GenerationJob, error) {
	if strings.TrimSpace(p.Prompt) == "" {
		return nil, domain.ErrEmptyPrompt
	}
	if len(p.Prompt) > s.maxPrompt {
		return nil, domain.ErrPromptTooLong
	}
	if _, ok := modelVersions[p.ContentType]; !ok {
		return nil, domain.ErrInvalidContentType
	}
	if !addressPattern.MatchString(p.CreatorAddress) {
		return nil, domain.ErrInvalidAddress
	}
	if p.Seed != nil && *p.Seed < 0 {
		return nil, domain.ErrInvalidSeed
	}
	timeout := s.defaultTimeout
	if p.TimeoutSeconds != 0 {
		if p.TimeoutSeconds < 1 || p.TimeoutSeconds > 300 {
			return nil, domain.ErrInvalidTimeout
		}
		timeout = time.Duration(p.TimeoutSeconds) * time.Second
	}

	seed := uint32(time.Now().UnixMilli() % (1 << 32))
	if p.Seed != nil {
		seed = uint32(*p.Seed)
	}

	job := &domain.GenerationJob{
		ID:             uuid.New(),
		Prompt:         p.Prompt,
		ContentType:    p.ContentType,
		CreatorAddress: p.CreatorAddress,
		Seed:           seed,
		Params:         p.Params,
		Status:         domain.GenerationStatusPending,
		ModelVersion:   modelVersions[p.ContentType],
		CreatedAt:      time.Now().UTC(),
	}

	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()

	go s.run(job.ID, timeout)
	return job, nil
}

func (s *GenerationService) run(id uuid.UUID, timeout time.Duration) {
	s.mu.Lock()
	job, ok := s.jobs[id]
	if !ok {
		s.mu.Unlock()
		return
	}
	job.Status = domain.GenerationStatusInProgress
	seed := job.Seed
	s.mu.Unlock()

	start := time.Now()
	r := rand.New(rand.NewSource(int64(seed)))

	select {
	case <-time.After(s.latency(r)):
	case <-time.After(timeout):
		s.finish(id, func(j *domain.GenerationJob) {
			j.Status = domain.GenerationStatusTimeout
			j.Error = fmt.Sprintf("generation exceeded %s", timeout)
			j.GenerationTimeMS = time.Since(start).Milliseconds()
		})
		log.WithFields(log.Fields{"job_id": id, "timeout": timeout}).Warn("generation timed out")
		return
	}

	content := synthesize(r, seed, s.jobParams(id))
	hash := sha256.Sum256(content)

	s.finish(id, func(j *domain.GenerationJob) {
		j.Status = domain.GenerationStatusCompleted
		j.Content = content
		j.ContentHash = "0x" + hex.EncodeToString(hash[:])
		j.GenerationTimeMS = time.Since(start).Milliseconds()
	})
	log.WithFields(log.Fields{
		"job_id":   id,
		"duration": time.Since(start),
	}).Info("generation completed")
}

type synthParams struct {
	prompt      string
	contentType domain.ContentType
	maxTokens   int
}

func (s *GenerationService) jobParams(id uuid.UUID) synthParams {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job := s.jobs[id]
	maxTokens := 256
	if v, ok := job.Params["max_tokens"]; ok {
		switch n := v.(type) {
		case int:
			maxTokens = n
		case float64:
			maxTokens = int(n)
		}
	}
	return synthParams{prompt: job.Prompt, contentType: job.ContentType, maxTokens: maxTokens}
}

func (s *GenerationService) finish(id uuid.UUID, apply func(*domain.GenerationJob)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return
	}
	apply(job)
	now := time.Now().UTC()
	job.CompletedAt = &now
}

// synthesize produces the fake model output. IMAGE and MUSIC jobs get a
// tagged header plus 100 seeded bytes; TEXT jobs get seeded word salad.
func synthesize(r *rand.Rand, seed uint32, p synthParams) []byte {
	switch p.contentType {
	case domain.ContentTypeText:
		wordCount := p.maxTokens / 5
		if wordCount > 50 {
			wordCount = 50
		}
		words := make([]string, wordCount)
		for i := range words {
			words[i] = textVocabulary[r.Intn(len(textVocabulary))]
		}
		return []byte(fmt.Sprintf("Generated from prompt: '%s'\n\n%s", p.prompt, strings.Join(words, " ")))
	default:
		tag := "DGC_IMAGE"
		if p.contentType == domain.ContentTypeMusic {
			tag = "DGC_MUSIC"
		}
		snippet := p.prompt
		if len(snippet) > 20 {
			snippet = snippet[:20]
		}
		header := fmt.Sprintf("%s:%d:%s:", tag, seed, snippet)
		body := make([]byte, 100)
		r.Read(body)
		return append([]byte(header), body...)
	}
}

func (s *GenerationService) GetJob(id uuid.UUID) (*domain.GenerationJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	copied := *job
	return &copied, nil
}

// GetContent returns the finished output and its media type. Jobs that are
// still running, failed or timed out have no content to serve.
func (s *GenerationService) GetContent(id uuid.UUID) ([]byte, string, error) {
	job, err := s.GetJob(id)
	if err != nil {
		return nil, "", err
	}
	if job.Status != domain.GenerationStatusCompleted {
		return nil, "", domain.ErrJobNotComplete
	}
	mediaType := "application/octet-stream"
	if job.ContentType == domain.ContentTypeText {
		mediaType = "text/plain"
	}
	return job.Content, mediaType, nil
}
