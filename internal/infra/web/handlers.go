package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"subscription-billing/internal/domain"
	"subscription-billing/internal/infra/logging"
	"subscription-billing/internal/infra/metrics"
	"subscription-billing/internal/usecase"
)

// Webhook payloads are small; anything bigger than this is not Stripe.
const maxWebhookBody = 1 << 20

const signatureHeader = "Stripe-Signature"

type intentCreateRequest struct {
	Amount   int64             `json:"amount"` // minor currency units
	Currency string            `json:"currency"`
	Metadata map[string]string `json:"metadata"`
}

type intentCreateResponse struct {
	ClientSecret string `json:"clientSecret"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// Handler for starting a checkout. The caller's identity comes from the
// session, never from the body, and the response carries only the client
// secret needed to confirm the payment browser-side.
func (s *Server) intentCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req intentCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		secret, err := s.checkoutUC.CreateIntent(ctx, callerID(ctx), usecase.IntentRequest{
			Amount:   req.Amount,
			Currency: req.Currency,
			Metadata: req.Metadata,
		})
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrUnauthenticated):
				writeError(w, http.StatusUnauthorized, "unauthorized")
			case errors.Is(err, domain.ErrInvalidArgument):
				writeError(w, http.StatusBadRequest, err.Error())
			case errors.Is(err, domain.ErrDownstreamUnavailable):
				writeError(w, http.StatusBadGateway, "payment provider unavailable")
			default:
				writeError(w, http.StatusInternalServerError, "failed to create payment intent")
			}
			return
		}

		writeJSON(w, http.StatusCreated, intentCreateResponse{ClientSecret: secret})
	}
}

// Handler for the provider's webhook deliveries. Status codes are the
// contract with Stripe's retry loop: 2xx acknowledges (including duplicates
// and event types we don't act on), 400 rejects bad signatures permanently,
// 5xx asks for a redelivery after a transient store failure.
func (s *Server) webhookHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		start := time.Now()

		r.Body = http.MaxBytesReader(w, r.Body, maxWebhookBody)
		payload, err := io.ReadAll(r.Body)
		if err != nil {
			writeError(w, http.StatusBadRequest, "unreadable request body")
			return
		}

		evt, err := s.verifier.VerifyEvent(payload, r.Header.Get(signatureHeader))
		if err != nil {
			metrics.IncSignatureFailure()
			l := logging.With(ctx, s.log)
			l.Warn().Err(err).Msg("webhook signature rejected")
			writeError(w, http.StatusBadRequest, "invalid signature")
			return
		}

		ctx = logging.WithEventID(ctx, evt.ID)
		err = s.webhookUC.Handle(ctx, evt)
		metrics.ObserveWebhookDuration(evt.Type, time.Since(start).Seconds())

		switch {
		case err == nil:
			writeJSON(w, http.StatusOK, map[string]bool{"received": true})
		case errors.Is(err, domain.ErrAlreadyApplied):
			// Redelivery of an event we already acted on. Acknowledge so the
			// provider stops resending it.
			writeJSON(w, http.StatusOK, map[string]any{"received": true, "status": "duplicate"})
		case errors.Is(err, domain.ErrMissingOwner):
			// The payment is not attributable to a user. Retrying cannot fix
			// that, so acknowledge; the event is already logged for operators.
			writeJSON(w, http.StatusOK, map[string]bool{"received": true})
		default:
			l := logging.With(ctx, s.log)
			l.Error().Err(err).Str("event_type", evt.Type).Msg("webhook processing failed")
			writeError(w, http.StatusInternalServerError, "failed to process event")
		}
	}
}

func (s *Server) subscriptionGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		rec, err := s.entUC.Current(ctx, callerID(ctx))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				writeError(w, http.StatusNotFound, "no subscription")
				return
			}
			writeError(w, http.StatusInternalServerError, "failed to load subscription")
			return
		}

		writeJSON(w, http.StatusOK, rec)
	}
}
