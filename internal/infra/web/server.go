package web

import (
	"context"
	"net/http"
	"time"

	"subscription-billing/internal/domain/ports/adapter"
	"subscription-billing/internal/infra/logging"
	"subscription-billing/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

type Server struct {
	checkoutUC usecase.CheckoutUseCase
	entUC      usecase.EntitlementUseCase
	webhookUC  usecase.WebhookUseCase
	verifier   adapter.WebhookVerifier
	auth       *AuthManager
	timeout    time.Duration
	log        *zerolog.Logger
}

func NewServer(
	checkoutUC usecase.CheckoutUseCase,
	entUC usecase.EntitlementUseCase,
	webhookUC usecase.WebhookUseCase,
	verifier adapter.WebhookVerifier,
	auth *AuthManager,
	timeout time.Duration,
	logger *zerolog.Logger,
) *Server {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Server{
		checkoutUC: checkoutUC,
		entUC:      entUC,
		webhookUC:  webhookUC,
		verifier:   verifier,
		auth:       auth,
		timeout:    timeout,
		log:        logger,
	}
}

// Router assembles the HTTP surface. The webhook route skips authentication:
// Stripe signs its deliveries, and the signature check in the handler is the
// authentication.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(TraceID(), Recover(s.log), RequestLog(s.log), Timeout(s.timeout))

	r.Get("/health", healthHandler())
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/stripe/webhook", s.webhookHandler())

		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.Post("/payment/intent", s.intentCreateHandler())
			r.Get("/subscription", s.subscriptionGetHandler())
		})
	})
	return r
}

// authMiddleware resolves the caller identity from the bearer token and
// stashes it on the request context. Everything behind it can assume a
// non-empty user id.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := s.auth.ParseFromRequest(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		ctx := logging.WithUserID(r.Context(), userID)
		ctx = withCallerID(ctx, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type callerIDKey struct{}

func withCallerID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, callerIDKey{}, userID)
}

func callerID(ctx context.Context) string {
	if v, ok := ctx.Value(callerIDKey{}).(string); ok {
		return v
	}
	return ""
}
