// Package cachekey derives stable cache keys for search result pages.
package cachekey

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// keyVersion is baked into the canonical string so that a future change to
// the normalization algorithm cannot collide with rows written by an older
// version; old keys simply become unreachable.
const keyVersion = "v1"

// Derive returns the cache key for a (query, locale, pageToken) triple as
// 64 lowercase hex characters. The query is trimmed, internal whitespace
// runs are collapsed and it is lower-cased; the locale is lower-cased; the
// page token is opaque and used verbatim. Pure function, safe for
// concurrent use.
func Derive(query, locale, pageToken string) string {
	normalizedQuery := strings.ToLower(strings.Join(strings.Fields(query), " "))
	normalizedLocale := strings.ToLower(strings.TrimSpace(locale))

	canonical := keyVersion + ":" + normalizedQuery + "|" + normalizedLocale + "|" + pageToken
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}
