package handler

import (
	"encoding/base64"
	"net/http"

	"github.com/morningstarxcdcode/dgc-platform/internal/dto"
	"github.com/morningstarxcdcode/dgc-platform/internal/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) Upload(c *gin.Context) {
	var req dto.UploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Content arrives base64 encoded; plain text and JSON payloads come
	// through as-is when decoding fails.
	data, err := base64.StdEncoding.DecodeString(req.Content)
	if err != nil {
		data = []byte(req.Content)
	}

	pin := true
	if req.Pin != nil {
		pin = *req.Pin
	}

	cid, err := h.store.Upload(data, pin)
	if err != nil {
		log.WithError(err).Error("content upload failed")
		mapDomainError(c, err)
		return
	}

	meta, err := h.store.Metadata(cid)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UploadResponse{
		CID:        cid,
		Size:       meta.Size,
		Pinned:     meta.Pinned,
		IPFSURL:    h.store.IPFSURL(cid),
		GatewayURL: h.store.GatewayURL(cid),
	})
}

func (h *Handler) GetContent(c *gin.Context) {
	content, err := h.store.Get(c.Param("cid"))
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.Data(http.StatusOK, service.SniffContentType(content), content)
}

func (h *Handler) PinContent(c *gin.Context) {
	cid := c.Param("cid")
	if err := h.store.Pin(cid); err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "pinned", "cid": cid})
}

func (h *Handler) UnpinContent(c *gin.Context) {
	cid := c.Param("cid")
	h.store.Unpin(cid)

	c.JSON(http.StatusOK, gin.H{"status": "unpinned", "cid": cid})
}
