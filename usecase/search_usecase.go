package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/TWO22-Org/rezipe/domain/dto"
	"github.com/TWO22-Org/rezipe/domain/model"
	"github.com/TWO22-Org/rezipe/domain/repository"
	"github.com/TWO22-Org/rezipe/infrastructure/cachekey"
	"github.com/TWO22-Org/rezipe/infrastructure/logger"
)

// cacheWriteTimeout bounds the detached write-back so an abandoned store
// never leaks the goroutine
const cacheWriteTimeout = 5 * time.Second

// ISearchUseCase defines the search orchestration operations
type ISearchUseCase interface {
	Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error)
}

// SearchUseCase composes the cache lookup with the upstream provider:
// derive key, read cache, fall through to the provider on miss or cache
// failure, write back without blocking the response.
type SearchUseCase struct {
	provider repository.ISearchProvider
	cache    repository.ISearchCache
	onError  func(error)
}

// NewSearchUseCase creates the search orchestrator. onError receives cache
// infrastructure failures; a nil hook falls back to the logger.
func NewSearchUseCase(provider repository.ISearchProvider, cache repository.ISearchCache, onError func(error)) ISearchUseCase {
	if onError == nil {
		onError = func(err error) {
			logger.GetLogger().WithField("error", err).Error("search pipeline error")
		}
	}
	return &SearchUseCase{provider: provider, cache: cache, onError: onError}
}

// Search handles one search request. The only errors it returns are typed
// *model.SearchError values; cache trouble is absorbed and observed.
func (u *SearchUseCase) Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error) {
	if req == nil {
		return nil, model.NewValidationError("search request is required")
	}
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, model.NewValidationError("search query (q) is required")
	}

	key := cachekey.Derive(query, req.Locale, req.PageToken)

	if u.cache != nil {
		cached, found, err := u.cache.Get(ctx, key)
		if err != nil {
			// An infrastructure failure reads as a miss; it must never
			// block or fail the request.
			u.onError(fmt.Errorf("cache read for %s: %w", key, err))
		}
		if found {
			return buildResponse(cached, true), nil
		}
	}

	upstreamReq := *req
	upstreamReq.Query = query
	results, err := u.provider.Search(ctx, &upstreamReq)
	if err != nil {
		return nil, err
	}

	if u.cache != nil {
		// Fire-and-forget write-back; the caller gets their response before
		// this lands.
		go func() {
			writeCtx, cancel := context.WithTimeout(context.Background(), cacheWriteTimeout)
			defer cancel()
			u.cache.Set(writeCtx, key, results)
		}()
	}
	return buildResponse(results, false), nil
}

func buildResponse(results *model.ResultSet, cached bool) *dto.SearchResponse {
	videos := results.Videos
	if videos == nil {
		videos = []model.Video{}
	}
	return &dto.SearchResponse{
		Videos:        videos,
		NextPageToken: results.NextPageToken,
		TotalResults:  results.TotalResults,
		Cached:        cached,
	}
}
