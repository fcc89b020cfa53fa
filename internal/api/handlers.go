package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"moussamarbre.com/site-api/internal/core"
	"moussamarbre.com/site-api/internal/store"
)

// catalogCacheControl lets the CDN serve catalog reads for five minutes; the
// catalog only changes when the seed importer runs.
const catalogCacheControl = "s-maxage=300, stale-while-revalidate=600"

type APIHandler struct {
	chatService *core.ChatService
	dbStore     *store.SQLiteStore
	logger      *zap.Logger
}

func NewAPIHandler(cs *core.ChatService, db *store.SQLiteStore, logger *zap.Logger) *APIHandler {
	return &APIHandler{chatService: cs, dbStore: db, logger: logger}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func (h *APIHandler) ChatHandler(w http.ResponseWriter, r *http.Request) {
	var req core.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if len(req.Messages) == 0 {
		writeError(w, http.StatusBadRequest, "messages are required")
		return
	}

	resp, err := h.chatService.Respond(r.Context(), req)
	if err != nil {
		reqLogger := h.requestLogger(r)

		// The configuration error message passes through; everything else is
		// a generic failure with the detail kept server-side.
		if errors.Is(err, core.ErrMissingAPIKey) {
			reqLogger.Error("chat request rejected: missing OpenRouter credential")
			writeError(w, http.StatusInternalServerError, core.ErrMissingAPIKey.Error())
			return
		}

		var providerErr *core.ProviderError
		if errors.As(err, &providerErr) {
			reqLogger.Error("completion provider error",
				zap.Int("upstream_status", providerErr.StatusCode),
				zap.String("upstream_body", providerErr.Body))
		} else {
			reqLogger.Error("chat pipeline failed", zap.Error(err))
		}
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *APIHandler) ListProductsHandler(w http.ResponseWriter, r *http.Request) {
	// ?path=<slug> resolves a single product by its storefront slug.
	if requested := r.URL.Query().Get("path"); requested != "" {
		product, err := h.dbStore.GetProductBySlug(requested)
		if err != nil {
			h.requestLogger(r).Error("product lookup failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if product == nil {
			writeJSON(w, http.StatusNotFound, map[string]string{
				"error":         "Product not found",
				"requestedSlug": requested,
			})
			return
		}
		w.Header().Set("Cache-Control", catalogCacheControl)
		writeJSON(w, http.StatusOK, product)
		return
	}

	products, err := h.dbStore.ListPublishedProducts(0)
	if err != nil {
		h.requestLogger(r).Error("product listing failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if products == nil {
		products = []store.Product{}
	}
	w.Header().Set("Cache-Control", catalogCacheControl)
	writeJSON(w, http.StatusOK, products)
}

func (h *APIHandler) ListProjectsHandler(w http.ResponseWriter, r *http.Request) {
	projects, err := h.dbStore.ListPublishedProjects(0)
	if err != nil {
		h.requestLogger(r).Error("project listing failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if projects == nil {
		projects = []store.Project{}
	}
	w.Header().Set("Cache-Control", catalogCacheControl)
	writeJSON(w, http.StatusOK, projects)
}

// requestLogger returns the handler's logger annotated with the request id
// assigned by the logging middleware.
func (h *APIHandler) requestLogger(r *http.Request) *zap.Logger {
	if id, ok := r.Context().Value(requestIDKey).(string); ok {
		return h.logger.With(zap.String("request_id", id))
	}
	return h.logger
}
