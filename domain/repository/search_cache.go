package repository

import (
	"context"

	"github.com/TWO22-Org/rezipe/domain/model"
)

// ISearchCache defines the persistent cache for search result pages.
// Keys are 64-hex-char fingerprints produced by the cachekey package.
type ISearchCache interface {
	// Get returns a cached ResultSet if present and not expired. A storage
	// failure is returned as a non-nil error, distinct from a clean miss;
	// callers should treat it as a miss but must not retry here.
	Get(ctx context.Context, key string) (*model.ResultSet, bool, error)
	// Set upserts the cached page with the fixed TTL from now. Failures are
	// absorbed and routed to the error hook; a failed write never fails the
	// search request.
	Set(ctx context.Context, key string, results *model.ResultSet)
	// Delete removes an entry best-effort.
	Delete(ctx context.Context, key string)
}
