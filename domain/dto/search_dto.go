package dto

import "github.com/TWO22-Org/rezipe/domain/model"

// SearchRequest represents one inbound video search
type SearchRequest struct {
	Query     string `json:"q" binding:"required"`
	Locale    string `json:"locale,omitempty"`     // BCP-47-like, e.g. "en-US"
	PageToken string `json:"page_token,omitempty"` // opaque, provider-controlled
	// MaxResults is nil when the caller did not specify one; the client
	// clamps explicit values to the provider's supported range.
	MaxResults *int64 `json:"max_results,omitempty"`
}

// SearchResponse is the success envelope for GET /api/search
type SearchResponse struct {
	Videos        []model.Video `json:"videos"`
	NextPageToken *string       `json:"nextPageToken"`
	TotalResults  int64         `json:"totalResults"`
	Cached        bool          `json:"cached"`
}

// ErrorResponse is the error envelope for GET /api/search
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	Retryable bool   `json:"retryable"`
}
