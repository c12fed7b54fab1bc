package handler

import (
	"github.com/morningstarxcdcode/dgc-platform/internal/domain"
	"github.com/morningstarxcdcode/dgc-platform/internal/service"
	"github.com/morningstarxcdcode/dgc-platform/internal/ws"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	environment string

	gen      *service.GenerationService
	store    *service.ContentStore
	nfts     domain.NFTRepository
	listings domain.ListingRepository
	dna      *service.DNAEngine
	emotion  *service.EmotionAI
	wallet   *service.WalletService
	search   *service.SearchEngine
	agents   *service.AgentController
	hub      *ws.Hub
}

type Services struct {
	Environment string
	Generation  *service.GenerationService
	Store       *service.ContentStore
	NFTs        domain.NFTRepository
	Listings    domain.ListingRepository
	DNA         *service.DNAEngine
	Emotion     *service.EmotionAI
	Wallet      *service.WalletService
	Search      *service.SearchEngine
	Agents      *service.AgentController
	Hub         *ws.Hub
}

func New(s Services) *Handler {
	return &Handler{
		environment: s.Environment,
		gen:         s.Generation,
		store:       s.Store,
		nfts:        s.NFTs,
		listings:    s.Listings,
		dna:         s.DNA,
		emotion:     s.Emotion,
		wallet:      s.Wallet,
		search:      s.Search,
		agents:      s.Agents,
		hub:         s.Hub,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)

	api := r.Group("/api")
	{
		api.GET("/health", h.APIHealth)
		api.GET("/system/status", h.SystemStatus)

		// Generation
		api.POST("/generate", h.Generate)
		api.GET("/generate/:job_id", h.GetGenerationJob)
		api.GET("/generate/:job_id/content", h.GetGenerationContent)

		// Content storage
		api.POST("/upload", h.Upload)
		api.GET("/content/:cid", h.GetContent)
		api.POST("/content/:cid/pin", h.PinContent)
		api.DELETE("/content/:cid/pin", h.UnpinContent)

		// NFT index
		api.GET("/nfts", h.ListNFTs)
		api.GET("/nfts/:token_id", h.GetNFT)
		api.GET("/nfts/:token_id/provenance", h.GetProvenance)
		api.GET("/nfts/:token_id/qr", h.GetNFTQR)
		api.POST("/internal/index-nft", h.IndexNFT)
		api.DELETE("/internal/index-nft/:token_id", h.RemoveNFT)
		api.POST("/internal/index-listing", h.IndexListing)
		api.DELETE("/internal/index-listing/:token_id", h.RemoveListing)

		// Marketplace
		api.GET("/marketplace/listings", h.ListMarketplaceItems)
		api.GET("/marketplace/featured", h.GetFeatured)
		api.GET("/stats", h.GetStats)
		api.GET("/users/:address/nfts", h.GetUserNFTs)
		api.GET("/users/:address/stats", h.GetUserStats)

		// Content DNA
		api.POST("/dna/generate", h.GenerateDNA)
		api.POST("/dna/breed", h.BreedDNA)
		api.POST("/dna/evolve", h.EvolveDNA)
		api.GET("/dna/compatibility/:hash1/:hash2", h.CheckCompatibility)
		api.GET("/dna/:hash", h.GetDNA)

		// Emotional AI
		api.POST("/emotion/analyze", h.AnalyzeEmotion)
		api.POST("/emotion/adapt", h.AdaptContent)
		api.POST("/emotion/profile", h.CreateEmotionProfile)
		api.GET("/emotion/profile/:content_id", h.GetEmotionProfile)
		api.POST("/emotion/record/:content_id", h.RecordEmotion)
		api.GET("/emotion/resonance/:content_id", h.GetResonance)

		// Wallet
		api.GET("/wallet/:address", h.GetWallet)
		api.GET("/wallet/:address/balance", h.GetWalletBalance)
		api.GET("/wallet/:address/tokens", h.GetWalletTokens)
		api.GET("/wallet/:address/nfts", h.GetWalletNFTs)
		api.GET("/wallet/:address/transactions", h.GetWalletTransactions)
		api.GET("/gas-price", h.GetGasPrice)
		api.GET("/transactions/:hash", h.TrackTransaction)

		// Agents
		api.GET("/agents", h.ListAgents)
		api.POST("/agents/execute", h.ExecuteAgents)
		api.POST("/agents/execute/:agent_type", h.ExecuteSingleAgent)
		api.GET("/agents/execution/:execution_id", h.GetExecution)
		api.DELETE("/agents/execution/:execution_id", h.CancelExecution)
		api.GET("/agents/presets", h.ListPresets)
		api.POST("/agents/presets", h.CreatePreset)
		api.GET("/agents/presets/:preset_id", h.GetPreset)
		api.DELETE("/agents/presets/:preset_id", h.DeletePreset)

		// Search
		api.GET("/search/autocomplete", h.Autocomplete)
		api.GET("/search/analytics", h.SearchAnalytics)
		api.POST("/search", h.SearchBlockchain)
		api.GET("/search", h.SearchBlockchainGet)
	}

	// Realtime
	r.GET("/ws/wallet/:address", h.WalletWS)
	r.GET("/ws/agents", h.AgentsWS)
	r.GET("/ws/search", h.SearchWS)
}
