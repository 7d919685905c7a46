package youtube

import (
	"context"
	"errors"
	"net"
	"net/http"

	"google.golang.org/api/googleapi"

	"github.com/TWO22-Org/rezipe/domain/model"
)

// mapProviderError converts a raw provider failure into the typed taxonomy
// the orchestrator maps to HTTP statuses. The caller never needs to inspect
// provider-specific error shapes.
func mapProviderError(err error) *model.SearchError {
	if se, ok := model.AsSearchError(err); ok {
		return se
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return model.NewSearchError(model.ErrCodeTimeout, "search request timed out", true, err)
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch {
		case hasReason(gerr, "rateLimitExceeded", "userRateLimitExceeded") || gerr.Code == http.StatusTooManyRequests:
			return model.NewSearchError(model.ErrCodeRateLimited, "provider rate limit exceeded", true, err)
		case hasReason(gerr, "keyInvalid") || gerr.Code == http.StatusUnauthorized:
			return model.NewSearchError(model.ErrCodeInvalidCredentials, "invalid or expired provider credentials", false, err)
		case hasReason(gerr, "quotaExceeded", "dailyLimitExceeded") || gerr.Code == http.StatusForbidden:
			return model.NewSearchError(model.ErrCodeQuotaExceeded, "provider quota exhausted", false, err)
		case gerr.Code == http.StatusBadRequest:
			return model.NewSearchError(model.ErrCodeInvalidRequest, "invalid search request parameters", false, err)
		default:
			return model.NewSearchError(model.ErrCodeNetwork, "provider request failed", true, err)
		}
	}

	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return model.NewSearchError(model.ErrCodeTimeout, "search request timed out", true, err)
	}
	return model.NewSearchError(model.ErrCodeNetwork, "network failure reaching provider", true, err)
}

func hasReason(gerr *googleapi.Error, reasons ...string) bool {
	for _, item := range gerr.Errors {
		for _, reason := range reasons {
			if item.Reason == reason {
				return true
			}
		}
	}
	return false
}
