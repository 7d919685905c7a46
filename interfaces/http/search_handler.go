package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/TWO22-Org/rezipe/domain/dto"
	"github.com/TWO22-Org/rezipe/domain/model"
	"github.com/TWO22-Org/rezipe/usecase"
)

// ISearchHandler defines the interface for search HTTP handlers
type ISearchHandler interface {
	Search(ctx *gin.Context)
}

// SearchHandler implements the search HTTP handlers
type SearchHandler struct {
	searchUseCase usecase.ISearchUseCase
}

// NewSearchHandler creates a new search handler instance
func NewSearchHandler(searchUseCase usecase.ISearchUseCase) ISearchHandler {
	return &SearchHandler{searchUseCase: searchUseCase}
}

// Search handles GET /api/search
func (h *SearchHandler) Search(ctx *gin.Context) {
	req := &dto.SearchRequest{
		Query:  ctx.Query("q"),
		Locale: ctx.Query("locale"),
	}

	// Support both camelCase and snake_case query params from clients
	pageToken := ctx.Query("pageToken")
	if pageToken == "" {
		pageToken = ctx.Query("page_token")
	}
	req.PageToken = pageToken

	maxResultsRaw := ctx.Query("maxResults")
	if maxResultsRaw == "" {
		maxResultsRaw = ctx.Query("max_results")
	}
	if maxResultsRaw != "" {
		if val, err := strconv.ParseInt(maxResultsRaw, 10, 64); err == nil {
			req.MaxResults = &val
		}
	}

	response, err := h.searchUseCase.Search(ctx.Request.Context(), req)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response)
}

func writeError(ctx *gin.Context, err error) {
	se, ok := model.AsSearchError(err)
	if !ok {
		se = model.NewSearchError(model.ErrCodeInternal, "internal server error", false, err)
	}
	ctx.JSON(statusForCode(se.Code), dto.ErrorResponse{
		Error:     se.Message,
		Code:      string(se.Code),
		Retryable: se.Retryable,
	})
}

func statusForCode(code model.ErrorCode) int {
	switch code {
	case model.ErrCodeValidation, model.ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case model.ErrCodeQuotaExceeded, model.ErrCodeInvalidCredentials:
		return http.StatusForbidden
	case model.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case model.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
