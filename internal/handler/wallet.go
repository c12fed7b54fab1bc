package handler

import (
	"net/http"
	"strconv"

	"github.com/morningstarxcdcode/dgc-platform/internal/domain"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetWallet(c *gin.Context) {
	c.JSON(http.StatusOK, h.wallet.GetWalletData(c.Request.Context(), c.Param("address")))
}

func (h *Handler) GetWalletBalance(c *gin.Context) {
	data := h.wallet.GetWalletData(c.Request.Context(), c.Param("address"))

	c.JSON(http.StatusOK, gin.H{
		"address":       data.Address,
		"eth_balance":   data.ETHBalance,
		"eth_usd_value": data.ETHUSDValue,
	})
}

func (h *Handler) GetWalletTokens(c *gin.Context) {
	data := h.wallet.GetWalletData(c.Request.Context(), c.Param("address"))

	c.JSON(http.StatusOK, gin.H{
		"address": data.Address,
		"tokens":  data.Tokens,
	})
}

func (h *Handler) GetWalletNFTs(c *gin.Context) {
	data := h.wallet.GetWalletData(c.Request.Context(), c.Param("address"))

	c.JSON(http.StatusOK, gin.H{
		"address": data.Address,
		"nfts":    data.NFTs,
	})
}

func (h *Handler) GetWalletTransactions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 || limit > 100 {
		mapDomainError(c, domain.ErrInvalidPageSize)
		return
	}

	data := h.wallet.GetWalletData(c.Request.Context(), c.Param("address"))

	transactions := data.Transactions
	if len(transactions) > limit {
		transactions = transactions[:limit]
	}

	c.JSON(http.StatusOK, gin.H{
		"address":      data.Address,
		"transactions": transactions,
	})
}

func (h *Handler) GetGasPrice(c *gin.Context) {
	c.JSON(http.StatusOK, h.wallet.GasPrice(c.Request.Context()))
}

func (h *Handler) TrackTransaction(c *gin.Context) {
	c.JSON(http.StatusOK, h.wallet.TrackTransaction(c.Request.Context(), c.Param("hash")))
}
