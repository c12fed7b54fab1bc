package dto

type GenerateRequest struct {
	Prompt         string         `json:"prompt" binding:"required"`
	ContentType    string         `json:"content_type" binding:"required"`
	CreatorAddress string         `json:"creator_address" binding:"required"`
	Seed           *int64         `json:"seed"`
	Parameters     map[string]any `json:"parameters"`
	TimeoutSeconds int            `json:"timeout_seconds"`
}

type GenerateResponse struct {
	JobID            string  `json:"job_id"`
	Status           string  `json:"status"`
	ContentHash      *string `json:"content_hash"`
	ModelVersion     *string `json:"model_version"`
	Seed             *int64  `json:"seed"`
	Timestamp        *int64  `json:"timestamp"`
	GenerationTimeMS *int64  `json:"generation_time_ms"`
	Error            *string `json:"error"`
}

type UploadRequest struct {
	Content     string `json:"content" binding:"required"`
	ContentType string `json:"content_type"`
	Pin         *bool  `json:"pin"`
}

type UploadResponse struct {
	CID        string `json:"cid"`
	Size       int    `json:"size"`
	Pinned     bool   `json:"pinned"`
	IPFSURL    string `json:"ipfs_url"`
	GatewayURL string `json:"gateway_url"`
}
