package repository

import (
	"context"

	"github.com/TWO22-Org/rezipe/domain/dto"
	"github.com/TWO22-Org/rezipe/domain/model"
)

// ISearchProvider defines the upstream video search client
type ISearchProvider interface {
	// Search executes a biased video search against the provider and
	// normalizes the response. Errors are always *model.SearchError.
	Search(ctx context.Context, req *dto.SearchRequest) (*model.ResultSet, error)
}
