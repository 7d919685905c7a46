package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/TWO22-Org/rezipe/domain/dto"
	"github.com/TWO22-Org/rezipe/domain/model"
	"github.com/TWO22-Org/rezipe/infrastructure/cachekey"
	"github.com/TWO22-Org/rezipe/usecase"
)

// Mock implementations
type MockSearchProvider struct {
	mock.Mock
}

func (m *MockSearchProvider) Search(ctx context.Context, req *dto.SearchRequest) (*model.ResultSet, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ResultSet), args.Error(1)
}

type MockSearchCache struct {
	mock.Mock
	setDone chan struct{}
}

func (m *MockSearchCache) Get(ctx context.Context, key string) (*model.ResultSet, bool, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*model.ResultSet), args.Bool(1), args.Error(2)
}

func (m *MockSearchCache) Set(ctx context.Context, key string, results *model.ResultSet) {
	m.Called(ctx, key, results)
	if m.setDone != nil {
		close(m.setDone)
	}
}

func (m *MockSearchCache) Delete(ctx context.Context, key string) {
	m.Called(ctx, key)
}

func sampleResults() *model.ResultSet {
	token := "CAUQAA"
	return &model.ResultSet{
		Videos: []model.Video{
			{VideoID: "vid-1", Title: "Carbonara from scratch", ChannelTitle: "Chef Anna", ThumbnailURL: "https://i.ytimg.com/vi/vid-1/hqdefault.jpg"},
			{VideoID: "vid-2", Title: "Weeknight pasta"},
		},
		NextPageToken: &token,
		TotalResults:  120,
	}
}

func TestSearchUseCase_CacheHit(t *testing.T) {
	provider := new(MockSearchProvider)
	cache := new(MockSearchCache)
	key := cachekey.Derive("pasta carbonara", "en-US", "")

	cache.On("Get", mock.Anything, key).Return(sampleResults(), true, nil).Once()

	uc := usecase.NewSearchUseCase(provider, cache, nil)
	resp, err := uc.Search(context.Background(), &dto.SearchRequest{Query: "pasta carbonara", Locale: "en-US"})

	require.NoError(t, err)
	assert.True(t, resp.Cached)
	assert.Len(t, resp.Videos, 2)
	assert.Equal(t, int64(120), resp.TotalResults)
	provider.AssertNotCalled(t, "Search")
	cache.AssertExpectations(t)
}

func TestSearchUseCase_CacheMissCallsUpstreamAndWritesBack(t *testing.T) {
	provider := new(MockSearchProvider)
	cache := &MockSearchCache{setDone: make(chan struct{})}
	key := cachekey.Derive("pasta carbonara", "", "")
	results := sampleResults()

	cache.On("Get", mock.Anything, key).Return(nil, false, nil).Once()
	provider.On("Search", mock.Anything, mock.Anything).Return(results, nil).Once()
	cache.On("Set", mock.Anything, key, results).Once()

	uc := usecase.NewSearchUseCase(provider, cache, nil)
	resp, err := uc.Search(context.Background(), &dto.SearchRequest{Query: "pasta carbonara"})

	require.NoError(t, err)
	assert.False(t, resp.Cached)
	assert.Len(t, resp.Videos, 2)

	// The write-back is detached; wait for it before asserting
	select {
	case <-cache.setDone:
	case <-time.After(2 * time.Second):
		t.Fatal("cache write-back never happened")
	}
	provider.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestSearchUseCase_CacheReadFailureIsTreatedAsMiss(t *testing.T) {
	provider := new(MockSearchProvider)
	cache := &MockSearchCache{setDone: make(chan struct{})}
	results := sampleResults()
	var observed []error

	cache.On("Get", mock.Anything, mock.Anything).Return(nil, false, errors.New("connection refused")).Once()
	provider.On("Search", mock.Anything, mock.Anything).Return(results, nil).Once()
	cache.On("Set", mock.Anything, mock.Anything, results).Once()

	uc := usecase.NewSearchUseCase(provider, cache, func(err error) { observed = append(observed, err) })
	resp, err := uc.Search(context.Background(), &dto.SearchRequest{Query: "pasta"})

	require.NoError(t, err, "a broken cache must never fail the request")
	assert.False(t, resp.Cached)
	assert.Len(t, observed, 1)

	select {
	case <-cache.setDone:
	case <-time.After(2 * time.Second):
		t.Fatal("cache write-back never happened")
	}
	provider.AssertExpectations(t)
}

func TestSearchUseCase_EmptyQueryRejected(t *testing.T) {
	provider := new(MockSearchProvider)
	cache := new(MockSearchCache)

	uc := usecase.NewSearchUseCase(provider, cache, nil)
	for _, q := range []string{"", "   ", "\t\n"} {
		_, err := uc.Search(context.Background(), &dto.SearchRequest{Query: q})
		se, ok := model.AsSearchError(err)
		require.True(t, ok)
		assert.Equal(t, model.ErrCodeValidation, se.Code)
		assert.False(t, se.Retryable)
	}
	cache.AssertNotCalled(t, "Get")
	provider.AssertNotCalled(t, "Search")
}

func TestSearchUseCase_QueryTrimmedBeforeUpstream(t *testing.T) {
	provider := new(MockSearchProvider)
	cache := &MockSearchCache{setDone: make(chan struct{})}
	results := sampleResults()

	cache.On("Get", mock.Anything, cachekey.Derive("pasta", "", "")).Return(nil, false, nil).Once()
	provider.On("Search", mock.Anything, mock.MatchedBy(func(req *dto.SearchRequest) bool {
		return req.Query == "pasta"
	})).Return(results, nil).Once()
	cache.On("Set", mock.Anything, mock.Anything, results).Once()

	uc := usecase.NewSearchUseCase(provider, cache, nil)
	_, err := uc.Search(context.Background(), &dto.SearchRequest{Query: "  pasta  "})

	require.NoError(t, err)
	<-cache.setDone
	provider.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestSearchUseCase_UpstreamFailurePropagatesTyped(t *testing.T) {
	provider := new(MockSearchProvider)
	cache := new(MockSearchCache)

	cache.On("Get", mock.Anything, mock.Anything).Return(nil, false, nil).Once()
	provider.On("Search", mock.Anything, mock.Anything).
		Return(nil, model.NewSearchError(model.ErrCodeQuotaExceeded, "provider quota exhausted", false, nil)).Once()

	uc := usecase.NewSearchUseCase(provider, cache, nil)
	_, err := uc.Search(context.Background(), &dto.SearchRequest{Query: "pasta"})

	se, ok := model.AsSearchError(err)
	require.True(t, ok)
	assert.Equal(t, model.ErrCodeQuotaExceeded, se.Code)
	cache.AssertNotCalled(t, "Set")
}

func TestSearchUseCase_EmptyResultPageStillServed(t *testing.T) {
	provider := new(MockSearchProvider)
	cache := &MockSearchCache{setDone: make(chan struct{})}
	empty := &model.ResultSet{Videos: []model.Video{}}

	cache.On("Get", mock.Anything, mock.Anything).Return(nil, false, nil).Once()
	provider.On("Search", mock.Anything, mock.Anything).Return(empty, nil).Once()
	cache.On("Set", mock.Anything, mock.Anything, empty).Once()

	uc := usecase.NewSearchUseCase(provider, cache, nil)
	resp, err := uc.Search(context.Background(), &dto.SearchRequest{Query: "pasta"})

	require.NoError(t, err)
	assert.NotNil(t, resp.Videos)
	assert.Empty(t, resp.Videos)
	assert.Nil(t, resp.NextPageToken)
	<-cache.setDone
}
