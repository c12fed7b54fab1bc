package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morningstarxcdcode/dgc-platform/internal/domain"
)

func TestAnalyzeText_KeywordDetection(t *testing.T) {
	ai := NewEmotionAI()

	state := ai.AnalyzeText("I am so happy, this is wonderful and amazing!")
	assert.Equal(t, domain.EmotionHappy, state.Primary)
	assert.InDelta(t, 1.0, state.Confidence, 0.0001)
	assert.InDelta(t, 0.8, state.Valence, 0.0001)
	assert.InDelta(t, 0.7, state.Arousal, 0.0001)

	state = ai.AnalyzeText("feeling sad and lonely, just want to cry")
	assert.Equal(t, domain.EmotionSad, state.Primary)
}

func TestAnalyzeText_NeutralDefault(t *testing.T) {
	ai := NewEmotionAI()

	state := ai.AnalyzeText("the weather report for tomorrow")
	assert.Equal(t, domain.EmotionNeutral, state.Primary)
	assert.InDelta(t, 0.5, state.Confidence, 0.0001)
	assert.Zero(t, state.Valence)
	assert.InDelta(t, 0.5, state.Arousal, 0.0001)
	assert.Nil(t, state.Secondary)
}

func TestAnalyzeText_SecondaryEmotion(t *testing.T) {
	ai := NewEmotionAI()

	state := ai.AnalyzeText("happy and wonderful but also a bit worried")
	assert.Equal(t, domain.EmotionHappy, state.Primary)
	require.NotNil(t, state.Secondary)
	assert.Equal(t, domain.EmotionFearful, *state.Secondary)
	assert.Greater(t, state.SecondaryConfidence, 0.0)
}

func TestAnalyzeFace_Deterministic(t *testing.T) {
	ai := NewEmotionAI()

	first := ai.AnalyzeFace([]byte("fake image bytes"))
	second := ai.AnalyzeFace([]byte("fake image bytes"))
	assert.Equal(t, first.Primary, second.Primary)
	assert.InDelta(t, first.Confidence, second.Confidence, 0.0001)
	assert.GreaterOrEqual(t, first.Confidence, 0.5)
	assert.LessOrEqual(t, first.Confidence, 1.0)
}

func TestAnalyzeVoice(t *testing.T) {
	ai := NewEmotionAI()

	state := ai.AnalyzeVoice([]byte("fake audio"))
	assert.GreaterOrEqual(t, state.Confidence, 0.4)
	assert.LessOrEqual(t, state.Confidence, 1.0)
	assert.Nil(t, state.Secondary)
}

func TestGenerateAdaptation(t *testing.T) {
	ai := NewEmotionAI()

	state := domain.EmotionState{
		Primary:    domain.EmotionHappy,
		Confidence: 1.0,
		Valence:    0.8,
		Arousal:    0.7,
	}

	// No profile means sensitivity 0.5.
	adaptation := ai.GenerateAdaptation(state, nil)
	assert.InDelta(t, 22.5, adaptation.ColorShiftHue, 0.0001)
	assert.InDelta(t, 1.1, adaptation.BrightnessFactor, 0.0001)
	assert.InDelta(t, 1.15, adaptation.SaturationFactor, 0.0001)
	assert.InDelta(t, 0.2, adaptation.WarmthShift, 0.0001)
	assert.InDelta(t, 0.4, adaptation.GlowIntensity, 0.0001)

	profile := ai.CreateProfile("art-1", domain.EmotionCalm, 1.0, "contrasting")
	contrasting := ai.GenerateAdaptation(state, profile)
	assert.InDelta(t, 225.0, contrasting.ColorShiftHue, 0.0001)
	assert.InDelta(t, -0.4, contrasting.WarmthShift, 0.0001)

	amplifying := ai.CreateProfile("art-2", domain.EmotionCalm, 1.0, "amplifying")
	amplified := ai.GenerateAdaptation(state, amplifying)
	assert.InDelta(t, 1.3, amplified.BrightnessFactor, 0.0001)
}

func TestCSSFilters(t *testing.T) {
	assert.Equal(t, "none", CSSFilters(domain.ContentAdaptation{
		BrightnessFactor: 1, SaturationFactor: 1, ContrastFactor: 1,
	}))

	out := CSSFilters(domain.ContentAdaptation{
		BrightnessFactor: 1.2,
		SaturationFactor: 1,
		ContrastFactor:   1,
		ColorShiftHue:    45,
		WarmthShift:      0.4,
	})
	assert.Contains(t, out, "brightness(1.2)")
	assert.Contains(t, out, "hue-rotate(45deg)")
	assert.Contains(t, out, "sepia(0.12)")
	assert.NotContains(t, out, "saturate")
}

func TestCreateProfile(t *testing.T) {
	ai := NewEmotionAI()

	profile := ai.CreateProfile("art-1", "BOGUS", 0.8, "")
	assert.Equal(t, domain.EmotionNeutral, profile.BaseMood)
	assert.Equal(t, "empathetic", profile.ResponseStyle)
	assert.Equal(t, "hsl(45, 70%, 50%)", profile.ColorPalette[domain.EmotionHappy])
	assert.Equal(t, "energetic", profile.AnimationStyles[domain.EmotionAngry])
	assert.Equal(t, "gentle", profile.AnimationStyles[domain.EmotionCalm])
	assert.Equal(t, "flowing", profile.AnimationStyles[domain.EmotionNeutral])

	got, err := ai.GetProfile("art-1")
	require.NoError(t, err)
	assert.Equal(t, profile, got)

	_, err = ai.GetProfile("unknown")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestResonance(t *testing.T) {
	ai := NewEmotionAI()

	empty := ai.Resonance("art-1")
	assert.Zero(t, empty.Score)
	assert.InDelta(t, 0.5, empty.AverageArousal, 0.0001)
	assert.Zero(t, empty.InteractionCount)

	for i := 0; i < 10; i++ {
		ai.RecordEmotion("art-1", domain.EmotionState{Primary: domain.EmotionHappy, Valence: 0.8, Arousal: 0.7})
	}
	ai.RecordEmotion("art-1", domain.EmotionState{Primary: domain.EmotionCalm, Valence: 0.4, Arousal: 0.1})

	resonance := ai.Resonance("art-1")
	assert.Equal(t, 11, resonance.InteractionCount)
	require.NotNil(t, resonance.DominantEmotion)
	assert.Equal(t, domain.EmotionHappy, *resonance.DominantEmotion)
	assert.Equal(t, 10, resonance.EmotionDistribution[domain.EmotionHappy])
	assert.Greater(t, resonance.Score, 0.0)
	assert.LessOrEqual(t, resonance.Score, 100.0)
}

func TestRecordEmotion_Caps(t *testing.T) {
	ai := NewEmotionAI()
	for i := 0; i < 1100; i++ {
		ai.RecordEmotion("art-1", domain.EmotionState{Primary: domain.EmotionNeutral})
	}
	assert.Equal(t, 1000, ai.HistoryLen("art-1"))
}
