package handler

import (
	"net/http"

	"github.com/morningstarxcdcode/dgc-platform/internal/domain"
	"github.com/morningstarxcdcode/dgc-platform/internal/dto"
	"github.com/morningstarxcdcode/dgc-platform/internal/observability"
	"github.com/morningstarxcdcode/dgc-platform/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) Generate(c *gin.Context) {
	var req dto.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	job, err := h.gen.StartGeneration(service.GenerateParams{
		Prompt:         req.Prompt,
		ContentType:    domain.ContentType(req.ContentType),
		CreatorAddress: req.CreatorAddress,
		Seed:           req.Seed,
		Params:         req.Parameters,
		TimeoutSeconds: req.TimeoutSeconds,
	})
	if err != nil {
		log.WithError(err).Error("start generation failed")
		mapDomainError(c, err)
		return
	}

	observability.GenerationJobs.WithLabelValues(string(job.ContentType)).Inc()
	c.JSON(http.StatusOK, dto.ToGenerateResponse(job))
}

func (h *Handler) GetGenerationJob(c *gin.Context) {
	id, err := uuid.Parse(c.Param("job_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return
	}

	job, err := h.gen.GetJob(id)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToGenerateResponse(job))
}

func (h *Handler) GetGenerationContent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("job_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return
	}

	content, mediaType, err := h.gen.GetContent(id)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.Data(http.StatusOK, mediaType, content)
}
