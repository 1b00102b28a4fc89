package history

import (
	"log/slog"
	"net/http"

	"github.com/finmitra/finmitra/pkg/handlers"
	"github.com/finmitra/finmitra/pkg/pagination"
	"github.com/finmitra/finmitra/pkg/routes"
)

// Handler provides HTTP endpoints for conversation history.
type Handler struct {
	store   Store
	pageCfg pagination.Config
	logger  *slog.Logger
}

// NewHandler creates a Handler with the given store and logger.
func NewHandler(store Store, pageCfg pagination.Config, logger *slog.Logger) *Handler {
	return &Handler{
		store:   store,
		pageCfg: pageCfg,
		logger:  logger.With("handler", "history"),
	}
}

// Routes returns the route group definition for history endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/history",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
		},
	}
}

// List returns a paginated view of conversation turns. Supported query
// parameters: page, page_size, search, sort, user_id, domain.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	page := pagination.PageRequestFromQuery(values, h.pageCfg)

	var filters Filters
	if v := values.Get("user_id"); v != "" {
		filters.UserID = &v
	}
	if v := values.Get("domain"); v != "" {
		filters.Domain = &v
	}

	result, err := h.store.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
