package youtube

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/TWO22-Org/rezipe/domain/dto"
	"github.com/TWO22-Org/rezipe/domain/model"
	"github.com/TWO22-Org/rezipe/domain/repository"
)

const (
	// queryBias steers generic queries toward cooking content; queries that
	// already mention a bias term are left alone.
	queryBias = "recipe OR cooking"

	// howToCategoryID is YouTube's "Howto & Style" video category
	howToCategoryID = "26"

	defaultMaxResults int64 = 20
	minMaxResults     int64 = 1
	maxMaxResults     int64 = 50

	defaultSearchTimeout = 5 * time.Second
)

// Client wraps the YouTube Data API for recipe video search
type Client struct {
	service *youtube.Service
	timeout time.Duration
}

// Config represents YouTube API configuration
type Config struct {
	APIKey       string `json:"api_key"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	RedirectURL  string `json:"redirect_url"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Timeout      time.Duration
}

// NewSearchClient creates a YouTube search client. API key mode is the
// primary (read-only) mode; OAuth mode is used when tokens are configured.
func NewSearchClient(ctx context.Context, config *Config) (repository.ISearchProvider, error) {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultSearchTimeout
	}

	if config.AccessToken == "" || config.RefreshToken == "" {
		if config.APIKey == "" {
			return nil, fmt.Errorf("youtube search requires an API key or OAuth tokens")
		}
		service, err := youtube.NewService(ctx, option.WithAPIKey(config.APIKey))
		if err != nil {
			return nil, fmt.Errorf("failed to create YouTube service with API key: %w", err)
		}
		return &Client{service: service, timeout: timeout}, nil
	}

	oauth2Config := &oauth2.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		RedirectURL:  config.RedirectURL,
		Scopes:       []string{youtube.YoutubeReadonlyScope},
		Endpoint:     google.Endpoint,
	}
	token := &oauth2.Token{
		AccessToken:  config.AccessToken,
		RefreshToken: config.RefreshToken,
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(-1 * time.Minute), // Force refresh on first use
	}

	httpClient := oauth2Config.Client(ctx, token)
	service, err := youtube.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}
	return &Client{service: service, timeout: timeout}, nil
}

// Search executes a biased video search and normalizes the response. The
// call is bounded by the configured timeout; expiry aborts the in-flight
// request instead of leaving it hanging.
func (c *Client) Search(ctx context.Context, req *dto.SearchRequest) (*model.ResultSet, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	call := c.service.Search.List([]string{"id", "snippet"}).
		Context(ctx).
		Q(AugmentQuery(req.Query)).
		Type("video").
		VideoCategoryId(howToCategoryID).
		SafeSearch("strict").
		VideoEmbeddable("true").
		VideoSyndicated("true").
		RelevanceLanguage("en").
		MaxResults(ClampMaxResults(req.MaxResults))

	if region := ParseRegionFromLocale(req.Locale); region != "" {
		call = call.RegionCode(region)
	}
	if req.PageToken != "" {
		call = call.PageToken(req.PageToken)
	}

	response, err := call.Do()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, model.NewSearchError(model.ErrCodeTimeout, "search request timed out", true, err)
		}
		return nil, mapProviderError(err)
	}
	return normalizeSearchResponse(response)
}

// AugmentQuery appends the cooking bias unless the query already contains a
// bias term case-insensitively, so specific queries are not over-qualified.
func AugmentQuery(query string) string {
	lower := strings.ToLower(query)
	if strings.Contains(lower, "recipe") || strings.Contains(lower, "cooking") {
		return query
	}
	return query + " " + queryBias
}

// ParseRegionFromLocale extracts an explicit 2-letter region subtag from a
// BCP-47-like locale ("en-US" -> "US", "zh-Hans-CN" -> "CN"). A bare
// language code carries no region hint and yields "".
func ParseRegionFromLocale(locale string) string {
	parts := strings.Split(strings.ReplaceAll(locale, "_", "-"), "-")
	for _, part := range parts[1:] {
		if len(part) == 2 && isAlpha(part) {
			return strings.ToUpper(part)
		}
	}
	return ""
}

// ClampMaxResults bounds an explicit page size to the provider's supported
// range; nil means unspecified and takes the default.
func ClampMaxResults(maxResults *int64) int64 {
	if maxResults == nil {
		return defaultMaxResults
	}
	if *maxResults < minMaxResults {
		return minMaxResults
	}
	if *maxResults > maxMaxResults {
		return maxMaxResults
	}
	return *maxResults
}

func isAlpha(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

// normalizeSearchResponse maps the provider item list to the internal
// ResultSet. Items without a video id (channels, playlists) are dropped
// silently; relevance order is preserved.
func normalizeSearchResponse(response *youtube.SearchListResponse) (*model.ResultSet, error) {
	if response == nil {
		return nil, model.NewSearchError(model.ErrCodeUpstreamSchema, "provider returned an empty search response", false, nil)
	}

	videos := make([]model.Video, 0, len(response.Items))
	for _, item := range response.Items {
		if item == nil || item.Id == nil || item.Id.VideoId == "" {
			continue
		}
		v := model.Video{VideoID: item.Id.VideoId}
		if item.Snippet != nil {
			v.Title = item.Snippet.Title
			v.ChannelTitle = item.Snippet.ChannelTitle
			v.ThumbnailURL = bestThumbnailURL(item.Snippet.Thumbnails)
		}
		videos = append(videos, v)
	}

	var nextPageToken *string
	if response.NextPageToken != "" {
		nextPageToken = &response.NextPageToken
	}

	rs := &model.ResultSet{Videos: videos, NextPageToken: nextPageToken}
	if response.PageInfo != nil {
		rs.TotalResults = response.PageInfo.TotalResults
	}
	return rs, nil
}

// bestThumbnailURL picks the best available resolution: high, then medium,
// then default.
func bestThumbnailURL(details *youtube.ThumbnailDetails) string {
	if details == nil {
		return ""
	}
	if details.High != nil && details.High.Url != "" {
		return details.High.Url
	}
	if details.Medium != nil && details.Medium.Url != "" {
		return details.Medium.Url
	}
	if details.Default != nil && details.Default.Url != "" {
		return details.Default.Url
	}
	return ""
}
