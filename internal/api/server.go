package api

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"
)

// NewServer creates an HTTP server with all dashboard routes configured.
// When adminAPIKey is set, mutating routes require a matching Bearer token.
func NewServer(port string, handler *Handler, adminAPIKey string) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/wallet", handler.GetWallet)
	mux.HandleFunc("GET /api/v1/tokens", handler.GetTokens)
	mux.HandleFunc("GET /api/v1/nfts", handler.GetNFTs)
	mux.HandleFunc("GET /api/v1/collections", handler.GetCollections)
	mux.HandleFunc("GET /api/v1/creator-collections", handler.GetCreatorCollections)
	mux.HandleFunc("GET /api/v1/transactions", handler.GetTransactions)
	mux.HandleFunc("GET /api/v1/transactions/history", handler.GetTransactionHistory)
	mux.HandleFunc("GET /api/v1/toasts", handler.GetToasts)
	mux.HandleFunc("POST /api/v1/toasts/{id}/dismiss", handler.DismissToast)

	guard := func(next http.HandlerFunc) http.Handler {
		if adminAPIKey == "" {
			return next
		}
		return requireAuth(adminAPIKey, next)
	}
	mux.Handle("POST /api/v1/refresh", guard(handler.Refresh))
	mux.Handle("POST /api/v1/transfer", guard(handler.Transfer))
	mux.Handle("POST /api/v1/mint", guard(handler.Mint))
	mux.Handle("POST /api/v1/burn", guard(handler.Burn))
	mux.Handle("POST /api/v1/collections", guard(handler.CreateCollection))
	mux.Handle("POST /api/v1/allowances", guard(handler.GrantAllowance))
	mux.Handle("POST /api/v1/creator-collections/{key}/toggle", guard(handler.ToggleCollection))

	return &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func requireAuth(apiKey string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		token := strings.TrimPrefix(auth, "Bearer ")
		if !strings.HasPrefix(auth, "Bearer ") || subtle.ConstantTimeCompare([]byte(token), []byte(apiKey)) != 1 {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}
