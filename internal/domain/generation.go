package domain

import (
	"time"

	"github.com/google/uuid"
)

type ContentType string

const (
	ContentTypeImage ContentType = "IMAGE"
	ContentTypeText  ContentType = "TEXT"
	ContentTypeMusic ContentType = "MUSIC"
)

type GenerationStatus string

const (
	GenerationStatusPending    GenerationStatus = "PENDING"
	GenerationStatusInProgress GenerationStatus = "IN_PROGRESS"
	GenerationStatusCompleted  GenerationStatus = "COMPLETED"
	GenerationStatusFailed     GenerationStatus = "FAILED"
	GenerationStatusTimeout    GenerationStatus = "TIMEOUT"
)

// GenerationJob is one simulated model run. Content holds the raw output
// bytes once the job completes; TEXT jobs store UTF-8 text there.
type GenerationJob struct {
	ID               uuid.UUID        `json:"job_id"`
	Prompt           string           `json:"prompt"`
	ContentType      ContentType      `json:"content_type"`
	CreatorAddress   string           `json:"creator_address"`
	Seed             uint32           `json:"seed"`
	Params           map[string]any   `json:"params,omitempty"`
	Status           GenerationStatus `json:"status"`
	ModelVersion     string           `json:"model_version"`
	ContentHash      string           `json:"content_hash,omitempty"`
	Content          []byte           `json:"-"`
	Error            string           `json:"error,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	CompletedAt      *time.Time       `json:"completed_at,omitempty"`
	GenerationTimeMS int64            `json:"generation_time_ms"`
}

func (j *GenerationJob) IsComplete() bool {
	switch j.Status {
	case GenerationStatusCompleted, GenerationStatusFailed, GenerationStatusTimeout:
		return true
	}
	return false
}
