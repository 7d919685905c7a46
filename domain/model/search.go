package model

// Video represents one video search hit as rendered by the app
type Video struct {
	VideoID      string `json:"video_id" validate:"required"`
	Title        string `json:"title"`
	ChannelTitle string `json:"channel_title"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// ResultSet is one page of search hits plus pagination metadata. Order is
// relevance order as returned by the provider and must be preserved.
// ResultSet is the unit of caching: it is what gets marshalled into the
// results_json column and what the search endpoint returns.
type ResultSet struct {
	Videos        []Video `json:"videos" validate:"dive"`
	NextPageToken *string `json:"nextPageToken"`
	TotalResults  int64   `json:"totalResults"`
}
