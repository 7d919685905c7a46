package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/TWO22-Org/rezipe/domain/model"
	"github.com/TWO22-Org/rezipe/infrastructure/logger"
)

// searchCacheTTL is the fixed window applied unconditionally on every write;
// each upsert resets the full 24h regardless of the prior entry's age.
const searchCacheTTL = 24 * time.Hour

// sideEffectTimeout bounds detached cleanup work spawned off the read path
const sideEffectTimeout = 5 * time.Second

// EnsureSearchCacheSchema creates the search result cache table if not exists
func EnsureSearchCacheSchema(db *sql.DB) error {
	ddl := `CREATE TABLE IF NOT EXISTS recipe_search_cache (
        query_key TEXT PRIMARY KEY,
        results_json JSONB NOT NULL,
        created_at TIMESTAMPTZ NOT NULL,
        expires_at TIMESTAMPTZ NOT NULL,
        CHECK (expires_at > created_at)
    )`
	if _, err := db.Exec(ddl); err != nil {
		return fmt.Errorf("create recipe_search_cache table: %w", err)
	}

	// Helpful index to purge or check expiry
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_recipe_search_cache_expires_at ON recipe_search_cache(expires_at)`); err != nil {
		logger.GetLogger().WithField("error", err).Warn("failed creating idx_recipe_search_cache_expires_at")
	}

	return nil
}

// SearchCacheRepository persists ResultSet pages keyed by cache key.
// Stored as JSONB; payloads are re-validated on every read so a row that no
// longer decodes into a ResultSet is removed instead of surfacing corruption.
type SearchCacheRepository struct {
	db       *sql.DB
	validate *validator.Validate
	onError  func(error)
}

// NewSearchCacheRepository wires the repository with an error-observation
// hook. Write and delete failures never propagate to callers; they are
// reported through the hook only. A nil hook falls back to the logger.
func NewSearchCacheRepository(db *sql.DB, onError func(error)) *SearchCacheRepository {
	if onError == nil {
		onError = func(err error) {
			logger.GetLogger().WithField("error", err).Error("search cache error")
		}
	}
	return &SearchCacheRepository{db: db, validate: validator.New(), onError: onError}
}

// Get returns the cached page for key if present and not expired. Expiry is
// filtered in SQL, so a physically present but stale row reads as a miss.
// Storage failures are returned distinct from a clean miss.
func (r *SearchCacheRepository) Get(ctx context.Context, key string) (*model.ResultSet, bool, error) {
	if r.db == nil {
		return nil, false, nil
	}
	row := r.db.QueryRowContext(ctx,
		`SELECT results_json FROM recipe_search_cache WHERE query_key=$1 AND expires_at > NOW()`, key)
	var raw []byte
	if err := row.Scan(&raw); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read search cache: %w", err)
	}

	var rs model.ResultSet
	if err := json.Unmarshal(raw, &rs); err != nil {
		r.healCorrupted(key, err)
		return nil, false, nil
	}
	if err := r.validateResultSet(&rs); err != nil {
		r.healCorrupted(key, err)
		return nil, false, nil
	}
	return &rs, true, nil
}

// Set upserts the page for key with the full TTL window from now. The
// created_at column is insert-only metadata and survives overwrites.
func (r *SearchCacheRepository) Set(ctx context.Context, key string, results *model.ResultSet) {
	if r.db == nil || results == nil {
		return
	}
	raw, err := json.Marshal(results)
	if err != nil {
		r.onError(fmt.Errorf("marshal search cache entry %s: %w", key, err))
		return
	}
	now := time.Now().UTC()
	exp := now.Add(searchCacheTTL)
	q := `INSERT INTO recipe_search_cache(query_key, results_json, created_at, expires_at)
          VALUES ($1,$2,$3,$4)
          ON CONFLICT (query_key) DO UPDATE SET results_json=EXCLUDED.results_json, expires_at=EXCLUDED.expires_at`
	if _, err := r.db.ExecContext(ctx, q, key, raw, now, exp); err != nil {
		r.onError(fmt.Errorf("write search cache entry %s: %w", key, err))
	}
}

// Delete removes the row for key best-effort
func (r *SearchCacheRepository) Delete(ctx context.Context, key string) {
	if r.db == nil {
		return
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM recipe_search_cache WHERE query_key=$1`, key); err != nil {
		r.onError(fmt.Errorf("delete search cache entry %s: %w", key, err))
	}
}

func (r *SearchCacheRepository) validateResultSet(rs *model.ResultSet) error {
	if rs.Videos == nil {
		return fmt.Errorf("results payload missing videos array")
	}
	return r.validate.Struct(rs)
}

// healCorrupted reports and drops a row whose payload no longer decodes into
// a ResultSet. Deletion runs detached from the read path; the caller already
// got its miss.
func (r *SearchCacheRepository) healCorrupted(key string, cause error) {
	r.onError(fmt.Errorf("corrupted search cache entry %s: %w", key, cause))
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), sideEffectTimeout)
		defer cancel()
		r.Delete(ctx, key)
	}()
}
