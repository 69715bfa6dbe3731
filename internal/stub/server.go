// Package stub implements an in-memory stand-in for the PartsLink CRM
// backend, used for local development and integration tests. It speaks
// the same wire dialect as production, legacy field casing included.
package stub

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/unrolled/secure"

	"github.com/chiruit2077/partslink/internal/platform/httpx"
)

// Server holds the fixture state behind the stub API.
type Server struct {
	logger   *slog.Logger
	validate *validator.Validate
	now      func() time.Time

	mu            sync.Mutex
	users         map[string]userRecord
	tokens        map[string]string // access token -> email
	refreshTokens map[string]string // refresh token -> email
	orders        map[int64]*orderRecord
	parts         map[string]partRecord
	itemStatus    []itemStatusRecord
	retailers     map[int64]retailerRecord

	nextOrderID    int64
	nextItemID     int64
	nextRetailerID int64
}

// New constructs a Server with seeded fixtures.
func New(logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	now := time.Now
	return &Server{
		logger:         logger,
		validate:       validator.New(),
		now:            now,
		users:          seedUsers(),
		tokens:         make(map[string]string),
		refreshTokens:  make(map[string]string),
		orders:         seedOrders(now()),
		parts:          seedParts(),
		itemStatus:     seedItemStatus(),
		retailers:      seedRetailers(),
		nextOrderID:    9100,
		nextItemID:     100,
		nextRetailerID: 600,
	}
}

// Router assembles the stub's HTTP surface with the standard
// middleware chain.
func (s *Server) Router() http.Handler {
	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	})

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if err := secureMiddleware.Process(w, req); err != nil {
				httpx.Fail(w, http.StatusInternalServerError, "internal error")
				return
			}
			next.ServeHTTP(w, req)
		})
	})
	r.Use(httprate.Limit(300, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", s.handleLogin)
		r.Post("/auth/refresh", s.handleRefresh)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Post("/auth/logout", s.handleLogout)
			r.Get("/auth/profile", s.handleProfile)
			r.Post("/auth/change-password", s.handleChangePassword)

			r.Get("/orders", s.handleListOrders)
			r.Post("/orders", s.handleCreateOrder)
			r.Get("/orders/stats/summary", s.handleOrderStats)
			r.Get("/orders/{id}", s.handleGetOrder)
			r.Patch("/orders/{id}/status", s.handleUpdateOrderStatus)

			r.Get("/parts", s.handleListParts)
			r.Get("/parts/alerts/low-stock", s.handleLowStock)
			r.Get("/parts/{partNumber}", s.handleGetPart)
			r.Patch("/parts/{partNumber}/stock", s.handleUpdatePartStock)

			r.Get("/item-status", s.handleListItemStatus)
			r.Patch("/item-status/{branch}/{partNumber}/stock", s.handleUpdateItemStock)
			r.Patch("/item-status/{branch}/{partNumber}/rack", s.handleUpdateItemRack)

			r.Get("/retailers", s.handleListRetailers)
			r.Post("/retailers", s.handleCreateRetailer)
			r.Get("/retailers/{id}", s.handleGetRetailer)
			r.Put("/retailers/{id}", s.handleUpdateRetailer)
		})
	})
	return r
}

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token == "" {
			httpx.RespondError(w, fmt.Errorf("%w: missing bearer token", httpx.ErrUnauthorized))
			return
		}
		s.mu.Lock()
		_, ok := s.tokens[token]
		s.mu.Unlock()
		if !ok {
			httpx.RespondError(w, fmt.Errorf("%w: invalid or expired token", httpx.ErrUnauthorized))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) issueTokens(email string) (access, refresh string) {
	access = uuid.NewString()
	refresh = uuid.NewString()
	s.tokens[access] = email
	s.refreshTokens[refresh] = email
	return access, refresh
}

func (s *Server) currentUser(r *http.Request) (userRecord, bool) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	s.mu.Lock()
	defer s.mu.Unlock()
	email, ok := s.tokens[token]
	if !ok {
		return userRecord{}, false
	}
	u, ok := s.users[email]
	return u, ok
}
