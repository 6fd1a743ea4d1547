// Package api exposes the dashboard over HTTP: read views of the store and
// bookkeeping, and guarded write operations against the chain.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/galaport/wallet/internal/chainclient"
	"github.com/galaport/wallet/internal/chainerr"
	"github.com/galaport/wallet/internal/dashboard"
	"github.com/galaport/wallet/internal/domain"
	"github.com/galaport/wallet/internal/store"
	"github.com/galaport/wallet/internal/toast"
	"github.com/galaport/wallet/internal/tx"
	"github.com/galaport/wallet/internal/wallet"
)

// Handler provides the dashboard HTTP endpoints.
type Handler struct {
	wallet    *wallet.Service
	store     *store.Store
	dashboard *dashboard.Service
	txs       *tx.Store
	toasts    *toast.Store
	history   tx.Repository // optional
}

// NewHandler creates a new API handler. history may be nil.
func NewHandler(w *wallet.Service, s *store.Store, d *dashboard.Service, txs *tx.Store, toasts *toast.Store, history tx.Repository) *Handler {
	return &Handler{
		wallet:    w,
		store:     s,
		dashboard: d,
		txs:       txs,
		toasts:    toasts,
		history:   history,
	}
}

// GetWallet handles GET /api/v1/wallet.
func (h *Handler) GetWallet(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.wallet.State())
}

// GetTokens handles GET /api/v1/tokens.
func (h *Handler) GetTokens(w http.ResponseWriter, r *http.Request) {
	if sort := r.URL.Query().Get("sort"); sort != "" {
		h.store.SetSortOption(store.SortOption(sort))
	}
	writeJSON(w, http.StatusOK, h.store.SortedTokens())
}

// GetNFTs handles GET /api/v1/nfts. An optional collection query parameter
// narrows the result to one token class, in pipe-joined form.
func (h *Handler) GetNFTs(w http.ResponseWriter, r *http.Request) {
	var filter *domain.TokenKey
	if raw := r.URL.Query().Get("collection"); raw != "" {
		key, err := parseTokenKey(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		filter = &key
	}
	writeJSON(w, http.StatusOK, h.store.FilteredNFTs(filter))
}

// GetCollections handles GET /api/v1/collections.
func (h *Handler) GetCollections(w http.ResponseWriter, r *http.Request) {
	if sort := r.URL.Query().Get("sort"); sort != "" {
		h.store.SetSortOption(store.SortOption(sort))
	}
	writeJSON(w, http.StatusOK, h.store.SortedCollections())
}

// GetCreatorCollections handles GET /api/v1/creator-collections.
func (h *Handler) GetCreatorCollections(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.store.CreatorCollections())
}

// ToggleCollection handles POST /api/v1/creator-collections/{key}/toggle.
func (h *Handler) ToggleCollection(w http.ResponseWriter, r *http.Request) {
	key, err := parseTokenKey(r.PathValue("key"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.store.ToggleExpanded(key)
	w.WriteHeader(http.StatusNoContent)
}

// GetTransactions handles GET /api/v1/transactions.
func (h *Handler) GetTransactions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"pending": h.txs.Pending(),
		"recent":  h.txs.Recent(),
	})
}

// GetTransactionHistory handles GET /api/v1/transactions/history.
func (h *Handler) GetTransactionHistory(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		writeError(w, http.StatusNotFound, "transaction history is not enabled")
		return
	}
	state := h.wallet.State()
	if !state.Connected {
		writeError(w, http.StatusConflict, "no wallet connected")
		return
	}

	const maxLimit = 100
	limit := 30
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			limit = min(n, maxLimit)
		}
	}

	records, err := h.history.ListRecent(r.Context(), state.Address, limit)
	if err != nil {
		slog.Error("failed to list transaction history", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// GetToasts handles GET /api/v1/toasts.
func (h *Handler) GetToasts(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.toasts.List())
}

// DismissToast handles POST /api/v1/toasts/{id}/dismiss.
func (h *Handler) DismissToast(w http.ResponseWriter, r *http.Request) {
	h.toasts.Dismiss(r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

// Refresh handles POST /api/v1/refresh.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.dashboard.Refresh(r.Context()); err != nil {
		writeChainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type transferRequest struct {
	To       string          `json:"to"`
	Token    domain.TokenKey `json:"tokenClass"`
	Instance decimal.Decimal `json:"instance"`
	Quantity decimal.Decimal `json:"quantity"`
}

// Transfer handles POST /api/v1/transfer.
func (h *Handler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.To == "" || req.Token.Collection == "" || !req.Quantity.IsPositive() {
		writeError(w, http.StatusBadRequest, "to, tokenClass and a positive quantity are required")
		return
	}

	if err := h.dashboard.Transfer(r.Context(), req.To, req.Token, req.Instance, req.Quantity); err != nil {
		writeChainError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

type mintRequest struct {
	Token    domain.TokenKey `json:"tokenClass"`
	Quantity decimal.Decimal `json:"quantity"`
}

// Mint handles POST /api/v1/mint.
func (h *Handler) Mint(w http.ResponseWriter, r *http.Request) {
	var req mintRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Token.Collection == "" || !req.Quantity.IsPositive() {
		writeError(w, http.StatusBadRequest, "tokenClass and a positive quantity are required")
		return
	}

	if err := h.dashboard.Mint(r.Context(), req.Token, req.Quantity); err != nil {
		writeChainError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

type burnRequest struct {
	Token    domain.TokenKey `json:"tokenClass"`
	Instance decimal.Decimal `json:"instance"`
	Quantity decimal.Decimal `json:"quantity"`
}

// Burn handles POST /api/v1/burn.
func (h *Handler) Burn(w http.ResponseWriter, r *http.Request) {
	var req burnRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Token.Collection == "" || !req.Quantity.IsPositive() {
		writeError(w, http.StatusBadRequest, "tokenClass and a positive quantity are required")
		return
	}

	if err := h.dashboard.Burn(r.Context(), req.Token, req.Instance, req.Quantity); err != nil {
		writeChainError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// CreateCollection handles POST /api/v1/collections.
func (h *Handler) CreateCollection(w http.ResponseWriter, r *http.Request) {
	var spec chainclient.CollectionSpec
	if !decodeJSON(w, r, &spec) {
		return
	}
	if spec.Key.Collection == "" || spec.Name == "" {
		writeError(w, http.StatusBadRequest, "tokenClass and name are required")
		return
	}

	if err := h.dashboard.CreateCollection(r.Context(), spec); err != nil {
		writeChainError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

type allowanceRequest struct {
	Token     domain.TokenKey `json:"tokenClass"`
	GrantedTo string          `json:"grantedTo"`
	Type      int             `json:"allowanceType"`
	Quantity  decimal.Decimal `json:"quantity"`
	Uses      decimal.Decimal `json:"uses"`
	Expires   int64           `json:"expires"`
}

// GrantAllowance handles POST /api/v1/allowances.
func (h *Handler) GrantAllowance(w http.ResponseWriter, r *http.Request) {
	var req allowanceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.GrantedTo == "" || req.Token.Collection == "" || !req.Quantity.IsPositive() {
		writeError(w, http.StatusBadRequest, "tokenClass, grantedTo and a positive quantity are required")
		return
	}

	err := h.dashboard.GrantAllowance(r.Context(), req.Token, req.GrantedTo,
		domain.AllowanceType(req.Type), req.Quantity, req.Uses, req.Expires)
	if err != nil {
		writeChainError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// parseTokenKey parses the canonical pipe-joined token class form.
func parseTokenKey(raw string) (domain.TokenKey, error) {
	parts := strings.Split(raw, "|")
	if len(parts) != 4 {
		return domain.TokenKey{}, fmt.Errorf("invalid token class %q, expected collection|category|type|additionalKey", raw)
	}
	return domain.TokenKey{
		Collection:    parts[0],
		Category:      parts[1],
		Type:          parts[2],
		AdditionalKey: parts[3],
	}, nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// writeChainError maps the error taxonomy to HTTP statuses. Wallet and
// validation problems are the caller's to fix; chain rejections are
// unprocessable; network trouble is a bad gateway.
func writeChainError(w http.ResponseWriter, err error) {
	ce, ok := chainerr.AsChainError(err)
	if !ok {
		slog.Error("unclassified operation failure", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	status := http.StatusInternalServerError
	switch ce.Category {
	case chainerr.CategoryValidation:
		status = http.StatusBadRequest
	case chainerr.CategoryWallet:
		status = http.StatusConflict
	case chainerr.CategoryChain:
		status = http.StatusUnprocessableEntity
	case chainerr.CategoryNetwork:
		status = http.StatusBadGateway
	}
	writeJSON(w, status, ce)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		slog.Warn("failed to write HTTP response body", "error", err)
		return
	}
	_, _ = w.Write([]byte("\n"))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
