package handler

import (
	"errors"
	"net/http"

	"github.com/morningstarxcdcode/dgc-platform/internal/domain"

	"github.com/gin-gonic/gin"
)

func mapDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrJobNotFound),
		errors.Is(err, domain.ErrContentNotFound),
		errors.Is(err, domain.ErrNFTNotFound),
		errors.Is(err, domain.ErrListingNotFound),
		errors.Is(err, domain.ErrDNANotFound),
		errors.Is(err, domain.ErrProfileNotFound),
		errors.Is(err, domain.ErrAgentNotFound),
		errors.Is(err, domain.ErrExecutionNotFound),
		errors.Is(err, domain.ErrPresetNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrNFTConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrEmptyPrompt),
		errors.Is(err, domain.ErrPromptTooLong),
		errors.Is(err, domain.ErrInvalidContentType),
		errors.Is(err, domain.ErrInvalidAddress),
		errors.Is(err, domain.ErrInvalidSeed),
		errors.Is(err, domain.ErrInvalidTimeout),
		errors.Is(err, domain.ErrJobNotComplete),
		errors.Is(err, domain.ErrEmptyContent),
		errors.Is(err, domain.ErrInvalidPage),
		errors.Is(err, domain.ErrInvalidPageSize),
		errors.Is(err, domain.ErrInvalidMutationBoost),
		errors.Is(err, domain.ErrNoEmotionInput),
		errors.Is(err, domain.ErrNoAgentsSelected),
		errors.Is(err, domain.ErrInvalidMode),
		errors.Is(err, domain.ErrEmptyQuery):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrUpstreamUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
