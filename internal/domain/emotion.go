package domain

import "time"

type EmotionType string

const (
	EmotionHappy     EmotionType = "HAPPY"
	EmotionSad       EmotionType = "SAD"
	EmotionAngry     EmotionType = "ANGRY"
	EmotionFearful   EmotionType = "FEARFUL"
	EmotionSurprised EmotionType = "SURPRISED"
	EmotionDisgusted EmotionType = "DISGUSTED"
	EmotionNeutral   EmotionType = "NEUTRAL"
	EmotionExcited   EmotionType = "EXCITED"
	EmotionCalm      EmotionType = "CALM"
	EmotionAnxious   EmotionType = "ANXIOUS"
)

// EmotionTypes in canonical order; simulated facial and voice detection
// index into this slice from a content hash.
var EmotionTypes = []EmotionType{
	EmotionHappy, EmotionSad, EmotionAngry, EmotionFearful, EmotionSurprised,
	EmotionDisgusted, EmotionNeutral, EmotionExcited, EmotionCalm, EmotionAnxious,
}

// EmotionState is one detection result. Valence runs -1..1, arousal and
// confidence 0..1.
type EmotionState struct {
	Primary             EmotionType  `json:"primary_emotion"`
	Confidence          float64      `json:"confidence"`
	Secondary           *EmotionType `json:"secondary_emotion"`
	SecondaryConfidence float64      `json:"secondary_confidence"`
	Valence             float64      `json:"valence"`
	Arousal             float64      `json:"arousal"`
	Timestamp           int64        `json:"timestamp"`
}

// ContentAdaptation holds the visual deltas the frontend applies while a
// viewer's emotion is active.
type ContentAdaptation struct {
	ColorShiftHue    float64 `json:"color_shift_hue"`
	BrightnessFactor float64 `json:"brightness_factor"`
	SaturationFactor float64 `json:"saturation_factor"`
	AnimationSpeed   float64 `json:"animation_speed"`
	ComplexityLevel  float64 `json:"complexity_level"`
	WarmthShift      float64 `json:"warmth_shift"`
	ContrastFactor   float64 `json:"contrast_factor"`
	GlowIntensity    float64 `json:"glow_intensity"`
	ParticleDensity  float64 `json:"particle_density"`
}

// EmotionalProfile configures how a piece of content reacts to viewer
// emotions. ResponseStyle is empathetic, contrasting or amplifying.
type EmotionalProfile struct {
	ContentID       string                 `json:"content_id"`
	BaseMood        EmotionType            `json:"base_mood"`
	Sensitivity     float64                `json:"sensitivity"`
	ResponseStyle   string                 `json:"response_style"`
	ColorPalette    map[EmotionType]string `json:"color_palette"`
	AnimationStyles map[EmotionType]string `json:"animation_styles"`
	CreatedAt       time.Time              `json:"-"`
}

// EmotionalResonance summarizes accumulated viewer emotion for content.
type EmotionalResonance struct {
	Score               float64             `json:"resonance_score"`
	DominantEmotion     *EmotionType        `json:"dominant_emotion"`
	EmotionalDiversity  float64             `json:"emotional_diversity"`
	AverageValence      float64             `json:"average_valence"`
	AverageArousal      float64             `json:"average_arousal"`
	InteractionCount    int                 `json:"interaction_count"`
	EmotionDistribution map[EmotionType]int `json:"emotion_distribution,omitempty"`
}
