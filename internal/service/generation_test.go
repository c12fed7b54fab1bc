package service

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morningstarxcdcode/dgc-platform/internal/domain"
)

const testCreator = "0x1234567890abcdef1234567890abcdef12345678"

func newTestGenerationService() *GenerationService {
	s := NewGenerationService(1000, 60*time.Second)
	s.latency = func(*rand.Rand) time.Duration { return 0 }
	return s
}

func waitForJob(t *testing.T, s *GenerationService, job *domain.GenerationJob) *domain.GenerationJob {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		got, err := s.GetJob(job.ID)
		require.NoError(t, err)
		if got.IsComplete() {
			return got
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("job never completed")
	return nil
}

func TestStartGeneration_Validation(t *testing.T) {
	s := newTestGenerationService()

	_, err := s.StartGeneration(GenerateParams{Prompt: "  ", ContentType: domain.ContentTypeImage, CreatorAddress: testCreator})
	assert.ErrorIs(t, err, domain.ErrEmptyPrompt)

	_, err = s.StartGeneration(GenerateParams{Prompt: strings.Repeat("x", 1001), ContentType: domain.ContentTypeImage, CreatorAddress: testCreator})
	assert.ErrorIs(t, err, domain.ErrPromptTooLong)

	_, err = s.StartGeneration(GenerateParams{Prompt: "a cat", ContentType: "VIDEO", CreatorAddress: testCreator})
	assert.ErrorIs(t, err, domain.ErrInvalidContentType)

	_, err = s.StartGeneration(GenerateParams{Prompt: "a cat", ContentType: domain.ContentTypeImage, CreatorAddress: "not-an-address"})
	assert.ErrorIs(t, err, domain.ErrInvalidAddress)

	badSeed := int64(-1)
	_, err = s.StartGeneration(GenerateParams{Prompt: "a cat", ContentType: domain.ContentTypeImage, CreatorAddress: testCreator, Seed: &badSeed})
	assert.ErrorIs(t, err, domain.ErrInvalidSeed)

	_, err = s.StartGeneration(GenerateParams{Prompt: "a cat", ContentType: domain.ContentTypeImage, CreatorAddress: testCreator, TimeoutSeconds: 301})
	assert.ErrorIs(t, err, domain.ErrInvalidTimeout)
}

func TestGeneration_SeedReproducible(t *testing.T) {
	s := newTestGenerationService()
	seed := int64(42)

	first, err := s.StartGeneration(GenerateParams{Prompt: "neon jellyfish", ContentType: domain.ContentTypeImage, CreatorAddress: testCreator, Seed: &seed})
	require.NoError(t, err)
	second, err := s.StartGeneration(GenerateParams{Prompt: "neon jellyfish", ContentType: domain.ContentTypeImage, CreatorAddress: testCreator, Seed: &seed})
	require.NoError(t, err)

	a := waitForJob(t, s, first)
	b := waitForJob(t, s, second)

	assert.Equal(t, domain.GenerationStatusCompleted, a.Status)
	assert.Equal(t, a.ContentHash, b.ContentHash)
	assert.Equal(t, a.Content, b.Content)
	assert.True(t, strings.HasPrefix(a.ContentHash, "0x"))
	assert.Equal(t, "stable-diffusion-xl-1.0", a.ModelVersion)
}

func TestGeneration_TextContent(t *testing.T) {
	s := newTestGenerationService()
	seed := int64(7)

	job, err := s.StartGeneration(GenerateParams{
		Prompt:         "a short poem",
		ContentType:    domain.ContentTypeText,
		CreatorAddress: testCreator,
		Seed:           &seed,
		Params:         map[string]any{"max_tokens": 100},
	})
	require.NoError(t, err)
	done := waitForJob(t, s, job)

	content, mediaType, err := s.GetContent(job.ID)
	require.NoError(t, err)
	assert.Equal(t, "text/plain", mediaType)
	assert.True(t, strings.HasPrefix(string(content), "Generated from prompt: 'a short poem'"))
	assert.Equal(t, "gpt-4-turbo", done.ModelVersion)
}

func TestGeneration_Timeout(t *testing.T) {
	s := NewGenerationService(1000, 60*time.Second)
	s.latency = func(*rand.Rand) time.Duration { return time.Hour }

	job, err := s.StartGeneration(GenerateParams{Prompt: "slow", ContentType: domain.ContentTypeMusic, CreatorAddress: testCreator, TimeoutSeconds: 1})
	require.NoError(t, err)
	done := waitForJob(t, s, job)

	assert.Equal(t, domain.GenerationStatusTimeout, done.Status)
	assert.NotEmpty(t, done.Error)

	_, _, err = s.GetContent(job.ID)
	assert.ErrorIs(t, err, domain.ErrJobNotComplete)
}

func TestGetJob_NotFound(t *testing.T) {
	s := newTestGenerationService()
	_, err := s.GetJob([16]byte{1})
	assert.ErrorIs(t, err, domain.ErrJobNotFound)
}
