package handler

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/morningstarxcdcode/dgc-platform/internal/domain"
	"github.com/morningstarxcdcode/dgc-platform/internal/dto"
	"github.com/morningstarxcdcode/dgc-platform/internal/service"

	"github.com/gin-gonic/gin"
)

// analyzeInput runs whichever detector the request selects. The bool is
// false when no input was provided.
func (h *Handler) analyzeInput(req dto.EmotionAnalyzeRequest) (domain.EmotionState, bool) {
	if req.Text != nil && strings.TrimSpace(*req.Text) != "" {
		return h.emotion.AnalyzeText(*req.Text), true
	}
	if req.ImageBase64 != nil && *req.ImageBase64 != "" {
		image, err := base64.StdEncoding.DecodeString(*req.ImageBase64)
		if err != nil {
			image = []byte(*req.ImageBase64)
		}
		return h.emotion.AnalyzeFace(image), true
	}
	if req.AudioBase64 != nil && *req.AudioBase64 != "" {
		audio, err := base64.StdEncoding.DecodeString(*req.AudioBase64)
		if err != nil {
			audio = []byte(*req.AudioBase64)
		}
		return h.emotion.AnalyzeVoice(audio), true
	}
	return domain.EmotionState{}, false
}

func (h *Handler) AnalyzeEmotion(c *gin.Context) {
	var req dto.EmotionAnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, ok := h.analyzeInput(req)
	if !ok {
		mapDomainError(c, domain.ErrNoEmotionInput)
		return
	}

	c.JSON(http.StatusOK, state)
}

// AdaptContent returns visual adjustments for the viewer's current emotion.
// Requests without input fall back to a neutral read.
func (h *Handler) AdaptContent(c *gin.Context) {
	var req dto.EmotionAnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, ok := h.analyzeInput(req)
	if !ok {
		state = h.emotion.AnalyzeText("neutral")
	}

	var profile *domain.EmotionalProfile
	if contentID := c.Query("content_id"); contentID != "" {
		profile, _ = h.emotion.GetProfile(contentID)
	}

	adaptation := h.emotion.GenerateAdaptation(state, profile)

	c.JSON(http.StatusOK, dto.AdaptResponse{
		Emotion:    state,
		Adaptation: adaptation,
		CSSFilters: service.CSSFilters(adaptation),
	})
}

func (h *Handler) CreateEmotionProfile(c *gin.Context) {
	var req dto.EmotionProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	baseMood := domain.EmotionType(strings.ToUpper(req.BaseMood))
	if req.BaseMood == "" {
		baseMood = domain.EmotionNeutral
	}

	sensitivity := 0.5
	if req.Sensitivity != nil {
		sensitivity = *req.Sensitivity
	}

	profile := h.emotion.CreateProfile(req.ContentID, baseMood, sensitivity, req.ResponseStyle)
	c.JSON(http.StatusOK, profile)
}

func (h *Handler) GetEmotionProfile(c *gin.Context) {
	profile, err := h.emotion.GetProfile(c.Param("content_id"))
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *Handler) RecordEmotion(c *gin.Context) {
	contentID := c.Param("content_id")

	// The body is optional; an absent or empty one records a neutral read.
	var req dto.EmotionAnalyzeRequest
	_ = c.ShouldBindJSON(&req)

	state, ok := h.analyzeInput(req)
	if !ok {
		state = h.emotion.AnalyzeText("neutral")
	}

	h.emotion.RecordEmotion(contentID, state)

	c.JSON(http.StatusOK, dto.RecordEmotionResponse{
		Status:  "recorded",
		Emotion: state,
	})
}

func (h *Handler) GetResonance(c *gin.Context) {
	c.JSON(http.StatusOK, h.emotion.Resonance(c.Param("content_id")))
}
