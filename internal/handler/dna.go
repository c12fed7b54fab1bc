package handler

import (
	"net/http"

	"github.com/morningstarxcdcode/dgc-platform/internal/domain"
	"github.com/morningstarxcdcode/dgc-platform/internal/dto"
	"github.com/morningstarxcdcode/dgc-platform/internal/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func dnaResponse(dna *domain.ContentDNA) dto.DNAResponse {
	return dto.ToDNAResponse(dna, service.TraitString(dna), service.RarityScore(dna))
}

func (h *Handler) GenerateDNA(c *gin.Context) {
	var req dto.DNAGenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dna := h.dna.GenerateFromPrompt(req.Prompt, req.Style)
	c.JSON(http.StatusOK, dnaResponse(dna))
}

func (h *Handler) BreedDNA(c *gin.Context) {
	var req dto.DNABreedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	child, err := h.dna.Breed(req.Parent1Hash, req.Parent2Hash, req.MutationBoost)
	if err != nil {
		log.WithError(err).Error("dna breeding failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dnaResponse(child))
}

func (h *Handler) EvolveDNA(c *gin.Context) {
	var req dto.DNAEvolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	evolved, err := h.dna.Evolve(req.DNAHash, req.EnvironmentalFactors)
	if err != nil {
		log.WithError(err).Error("dna evolution failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dnaResponse(evolved))
}

func (h *Handler) GetDNA(c *gin.Context) {
	dna, err := h.dna.Get(c.Param("hash"))
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dnaResponse(dna))
}

func (h *Handler) CheckCompatibility(c *gin.Context) {
	hash1 := c.Param("hash1")
	hash2 := c.Param("hash2")

	score := h.dna.Compatibility(hash1, hash2)

	c.JSON(http.StatusOK, dto.CompatibilityResponse{
		Parent1Hash:        hash1,
		Parent2Hash:        hash2,
		CompatibilityScore: score,
		Recommendation:     service.BreedingRecommendation(score),
	})
}
