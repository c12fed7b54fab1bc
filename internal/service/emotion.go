package service

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/morningstarxcdcode/dgc-platform/internal/domain"
)

type emotionColor struct {
	hue        float64
	saturation float64
	brightness float64
}

type emotionAnimation struct {
	speed      float64
	complexity float64
	particles  float64
}

var emotionColors = map[domain.EmotionType]emotionColor{
	domain.EmotionHappy:     {45, 1.3, 1.2},
	domain.EmotionSad:       {220, 0.7, 0.8},
	domain.EmotionAngry:     {0, 1.4, 0.9},
	domain.EmotionFearful:   {280, 0.8, 0.7},
	domain.EmotionSurprised: {180, 1.2, 1.3},
	domain.EmotionDisgusted: {90, 0.6, 0.75},
	domain.EmotionNeutral:   {0, 1.0, 1.0},
	domain.EmotionExcited:   {30, 1.5, 1.3},
	domain.EmotionCalm:      {200, 0.8, 1.1},
	domain.EmotionAnxious:   {300, 0.9, 0.85},
}

var emotionAnimations = map[domain.EmotionType]emotionAnimation{
	domain.EmotionHappy:     {1.3, 0.7, 0.8},
	domain.EmotionSad:       {0.5, 0.3, 0.2},
	domain.EmotionAngry:     {1.8, 0.8, 0.9},
	domain.EmotionFearful:   {1.5, 0.4, 0.6},
	domain.EmotionSurprised: {2.0, 0.9, 1.0},
	domain.EmotionDisgusted: {0.6, 0.2, 0.1},
	domain.EmotionNeutral:   {1.0, 0.5, 0.5},
	domain.EmotionExcited:   {1.7, 0.85, 0.95},
	domain.EmotionCalm:      {0.4, 0.3, 0.3},
	domain.EmotionAnxious:   {1.4, 0.6, 0.7},
}

var emotionValence = map[domain.EmotionType]float64{
	domain.EmotionHappy:     0.8,
	domain.EmotionSad:       -0.7,
	domain.EmotionAngry:     -0.6,
	domain.EmotionFearful:   -0.5,
	domain.EmotionSurprised: 0.3,
	domain.EmotionDisgusted: -0.8,
	domain.EmotionNeutral:   0,
	domain.EmotionExcited:   0.9,
	domain.EmotionCalm:      0.4,
	domain.EmotionAnxious:   -0.4,
}

var emotionArousal = map[domain.EmotionType]float64{
	domain.EmotionHappy:     0.7,
	domain.EmotionSad:       0.2,
	domain.EmotionAngry:     0.9,
	domain.EmotionFearful:   0.8,
	domain.EmotionSurprised: 0.95,
	domain.EmotionDisgusted: 0.5,
	domain.EmotionNeutral:   0.3,
	domain.EmotionExcited:   0.95,
	domain.EmotionCalm:      0.1,
	domain.EmotionAnxious:   0.75,
}

var emotionKeywords = map[domain.EmotionType][]string{
	domain.EmotionHappy: {
		"happy", "joy", "love", "great", "wonderful",
		"amazing", "excited", "good", "best", "awesome",
	},
	domain.EmotionSad: {
		"sad", "unhappy", "depressed", "down", "blue",
		"cry", "tears", "grief", "sorrow", "lonely",
	},
	domain.EmotionAngry: {
		"angry", "mad", "furious", "rage", "hate",
		"annoyed", "frustrated", "irritated",
	},
	domain.EmotionFearful: {
		"scared", "afraid", "fear", "terrified",
		"anxious", "worried", "nervous",
	},
	domain.EmotionSurprised: {
		"surprised", "shocked", "wow", "amazing",
		"unexpected", "astonished",
	},
	domain.EmotionExcited: {
		"excited", "thrilled", "pumped", "eager", "enthusiastic",
	},
	domain.EmotionCalm: {
		"calm", "peaceful", "serene", "relaxed", "tranquil", "zen",
	},
}

// EmotionAI detects viewer emotions from text, image or audio input and
// translates them into content adaptations. Detection from media is
// simulated: a hash of the bytes picks the emotion deterministically.
type EmotionAI struct {
	mu       sync.RWMutex
	profiles map[string]*domain.EmotionalProfile
	history  map[string][]domain.EmotionState
}

func NewEmotionAI() *EmotionAI {
	return &EmotionAI{
		profiles: make(map[string]*domain.EmotionalProfile),
		history:  make(map[string][]domain.EmotionState),
	}
}

// AnalyzeText scans for emotion keywords. The strongest category wins;
// ties resolve in canonical emotion order.
func (a *EmotionAI) AnalyzeText(text string) domain.EmotionState {
	textLower := strings.ToLower(text)

	scores := make(map[domain.EmotionType]int)
	total := 0
	for emotion, keywords := range emotionKeywords {
		for _, keyword := range keywords {
			if strings.Contains(textLower, keyword) {
				scores[emotion]++
				total++
			}
		}
	}

	if total == 0 {
		return domain.EmotionState{
			Primary:    domain.EmotionNeutral,
			Confidence: 0.5,
			Valence:    0,
			Arousal:    0.5,
			Timestamp:  time.Now().Unix(),
		}
	}

	primary := domain.EmotionNeutral
	best := -1
	for _, et := range domain.EmotionTypes {
		if scores[et] > best {
			primary, best = et, scores[et]
		}
	}
	confidence := math.Max(0.3, math.Min(float64(best)/3, 1.0))

	var secondary *domain.EmotionType
	secondaryConfidence := 0.0
	secondBest := 0
	for _, et := range domain.EmotionTypes {
		if et != primary && scores[et] > secondBest {
			s := et
			secondary, secondBest = &s, scores[et]
		}
	}
	if secondary != nil {
		secondaryConfidence = float64(secondBest) / 3
	}

	return domain.EmotionState{
		Primary:             primary,
		Confidence:          confidence,
		Secondary:           secondary,
		SecondaryConfidence: secondaryConfidence,
		Valence:             emotionValence[primary],
		Arousal:             emotionArousal[primary],
		Timestamp:           time.Now().Unix(),
	}
}

func hashByte(sum string, offset int) int64 {
	n, _ := strconv.ParseInt(sum[offset:offset+2], 16, 64)
	return n
}

// AnalyzeFace simulates facial expression detection from image bytes.
func (a *EmotionAI) AnalyzeFace(image []byte) domain.EmotionState {
	sum := md5.Sum(image)
	hexSum := hex.EncodeToString(sum[:])

	index := int(hashByte(hexSum, 0)) % len(domain.EmotionTypes)
	primary := domain.EmotionTypes[index]

	offset := int(hashByte(hexSum, 2)) % 3
	secondaryIndex := (index + offset) % len(domain.EmotionTypes)
	var secondary *domain.EmotionType
	confidence := 0.5 + float64(hashByte(hexSum, 4))/512
	secondaryConfidence := 0.0
	if secondaryIndex != index {
		s := domain.EmotionTypes[secondaryIndex]
		secondary = &s
		secondaryConfidence = confidence * 0.5
	}

	return domain.EmotionState{
		Primary:             primary,
		Confidence:          confidence,
		Secondary:           secondary,
		SecondaryConfidence: secondaryConfidence,
		Valence:             emotionValence[primary],
		Arousal:             emotionArousal[primary],
		Timestamp:           time.Now().Unix(),
	}
}

// AnalyzeVoice simulates emotion detection from audio bytes.
func (a *EmotionAI) AnalyzeVoice(audio []byte) domain.EmotionState {
	sum := md5.Sum(audio)
	hexSum := hex.EncodeToString(sum[:])

	index := int(hashByte(hexSum, 0)) % len(domain.EmotionTypes)
	primary := domain.EmotionTypes[index]

	return domain.EmotionState{
		Primary:    primary,
		Confidence: 0.4 + float64(hashByte(hexSum, 4))/426,
		Valence:    emotionValence[primary],
		Arousal:    emotionArousal[primary],
		Timestamp:  time.Now().Unix(),
	}
}

// GenerateAdaptation turns an emotion state into rendering parameters.
// Profile sensitivity scales everything; the response style can invert or
// amplify the color response.
func (a *EmotionAI) GenerateAdaptation(state domain.EmotionState, profile *domain.EmotionalProfile) domain.ContentAdaptation {
	colors, ok := emotionColors[state.Primary]
	if !ok {
		colors = emotionColors[domain.EmotionNeutral]
	}
	anims, ok := emotionAnimations[state.Primary]
	if !ok {
		anims = emotionAnimations[domain.EmotionNeutral]
	}

	sensitivity := 0.5
	if profile != nil {
		sensitivity = profile.Sensitivity
	}
	strength := state.Confidence * sensitivity
	arousalFactor := state.Arousal * strength * 0.3

	adaptation := domain.ContentAdaptation{
		ColorShiftHue:    colors.hue * strength,
		BrightnessFactor: 1 + (colors.brightness-1)*strength,
		SaturationFactor: 1 + (colors.saturation-1)*strength,
		AnimationSpeed:   1 + (anims.speed-1)*strength,
		ComplexityLevel:  anims.complexity * strength,
		WarmthShift:      state.Valence * strength * 0.5,
		ContrastFactor:   1 + arousalFactor,
		GlowIntensity:    math.Max(0, state.Valence) * strength,
		ParticleDensity:  anims.particles * strength,
	}

	if profile != nil {
		switch profile.ResponseStyle {
		case "contrasting":
			adaptation.ColorShiftHue = math.Mod(adaptation.ColorShiftHue+180, 360)
			adaptation.WarmthShift *= -1
		case "amplifying":
			adaptation.BrightnessFactor = 1 + (adaptation.BrightnessFactor-1)*1.5
			adaptation.SaturationFactor = 1 + (adaptation.SaturationFactor-1)*1.5
		}
	}
	return adaptation
}

// CSSFilters renders an adaptation as a CSS filter string for the frontend.
func CSSFilters(a domain.ContentAdaptation) string {
	const tolerance = 0.001
	filters := []string{}
	if math.Abs(a.BrightnessFactor-1) > tolerance {
		filters = append(filters, fmt.Sprintf("brightness(%s)", trimFloat(a.BrightnessFactor)))
	}
	if math.Abs(a.SaturationFactor-1) > tolerance {
		filters = append(filters, fmt.Sprintf("saturate(%s)", trimFloat(a.SaturationFactor)))
	}
	if math.Abs(a.ContrastFactor-1) > tolerance {
		filters = append(filters, fmt.Sprintf("contrast(%s)", trimFloat(a.ContrastFactor)))
	}
	if a.ColorShiftHue != 0 {
		filters = append(filters, fmt.Sprintf("hue-rotate(%sdeg)", trimFloat(a.ColorShiftHue)))
	}
	if a.WarmthShift > 0 {
		filters = append(filters, fmt.Sprintf("sepia(%s)", trimFloat(math.Abs(a.WarmthShift)*0.3)))
	}
	if len(filters) == 0 {
		return "none"
	}
	return strings.Join(filters, " ")
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// CreateProfile registers an emotional profile with derived palettes and
// animation styles. Unknown base moods fall back to neutral.
func (a *EmotionAI) CreateProfile(contentID string, baseMood domain.EmotionType, sensitivity float64, responseStyle string) *domain.EmotionalProfile {
	if _, ok := emotionColors[baseMood]; !ok {
		baseMood = domain.EmotionNeutral
	}
	if responseStyle == "" {
		responseStyle = "empathetic"
	}

	profile := &domain.EmotionalProfile{
		ContentID:       contentID,
		BaseMood:        baseMood,
		Sensitivity:     sensitivity,
		ResponseStyle:   responseStyle,
		ColorPalette:    make(map[domain.EmotionType]string, len(domain.EmotionTypes)),
		AnimationStyles: make(map[domain.EmotionType]string, len(domain.EmotionTypes)),
		CreatedAt:       time.Now().UTC(),
	}
	for _, emotion := range domain.EmotionTypes {
		profile.ColorPalette[emotion] = fmt.Sprintf("hsl(%s, 70%%, 50%%)", trimFloat(emotionColors[emotion].hue))
		speed := emotionAnimations[emotion].speed
		switch {
		case speed > 1.5:
			profile.AnimationStyles[emotion] = "energetic"
		case speed < 0.7:
			profile.AnimationStyles[emotion] = "gentle"
		default:
			profile.AnimationStyles[emotion] = "flowing"
		}
	}

	a.mu.Lock()
	a.profiles[contentID] = profile
	a.mu.Unlock()
	return profile
}

func (a *EmotionAI) GetProfile(contentID string) (*domain.EmotionalProfile, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	profile, ok := a.profiles[contentID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return profile, nil
}

// RecordEmotion appends a reading to the content's history, keeping the
// most recent 1000 entries.
func (a *EmotionAI) RecordEmotion(contentID string, state domain.EmotionState) {
	a.mu.Lock()
	defer a.mu.Unlock()
	history := append(a.history[contentID], state)
	if len(history) > 1000 {
		history = history[len(history)-1000:]
	}
	a.history[contentID] = history
}

func (a *EmotionAI) HistoryLen(contentID string) int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.history[contentID])
}

// Resonance scores emotional engagement with a piece of content from its
// interaction history: volume times diversity times positive sentiment.
func (a *EmotionAI) Resonance(contentID string) domain.EmotionalResonance {
	a.mu.RLock()
	history := a.history[contentID]
	a.mu.RUnlock()

	if len(history) == 0 {
		return domain.EmotionalResonance{AverageArousal: 0.5}
	}

	counts := make(map[domain.EmotionType]int)
	totalValence, totalArousal := 0.0, 0.0
	for _, state := range history {
		counts[state.Primary]++
		totalValence += state.Valence
		totalArousal += state.Arousal
	}

	dominant := domain.EmotionNeutral
	best := 0
	for _, et := range domain.EmotionTypes {
		if counts[et] > best {
			dominant, best = et, counts[et]
		}
	}

	diversity := float64(len(counts)) / float64(len(domain.EmotionTypes))
	avgValence := totalValence / float64(len(history))
	avgArousal := totalArousal / float64(len(history))
	engagement := math.Min(float64(len(history))/100, 1.0)
	resonance := engagement * diversity * (0.5 + avgValence*0.5) * 100

	return domain.EmotionalResonance{
		Score:               round2(resonance),
		DominantEmotion:     &dominant,
		EmotionalDiversity:  round2(diversity),
		AverageValence:      round2(avgValence),
		AverageArousal:      round2(avgArousal),
		InteractionCount:    len(history),
		EmotionDistribution: counts,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
