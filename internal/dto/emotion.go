package dto

import "github.com/morningstarxcdcode/dgc-platform/internal/domain"

type EmotionAnalyzeRequest struct {
	Text        *string `json:"text"`
	ImageBase64 *string `json:"image_base64"`
	AudioBase64 *string `json:"audio_base64"`
}

type EmotionProfileRequest struct {
	ContentID     string   `json:"content_id" binding:"required"`
	BaseMood      string   `json:"base_mood"`
	Sensitivity   *float64 `json:"sensitivity"`
	ResponseStyle string   `json:"response_style"`
}

type AdaptResponse struct {
	Emotion    domain.EmotionState      `json:"emotion"`
	Adaptation domain.ContentAdaptation `json:"adaptation"`
	CSSFilters string                   `json:"css_filters"`
}

type RecordEmotionResponse struct {
	Status  string              `json:"status"`
	Emotion domain.EmotionState `json:"emotion"`
}
