//go:build !integration

package web

import (
	"context"
	"io"
	"sync"
	"time"

	"subscription-billing/internal/domain"
	"subscription-billing/internal/domain/model"
	"subscription-billing/internal/domain/ports/adapter"
	"subscription-billing/internal/domain/ports/repository"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"
)

func newTestLogger() *zerolog.Logger {
	l := zerolog.New(io.Discard)
	return &l
}

// --- Mock Repositories (Ports) ---

type memSubscriptionRepo struct {
	mu        sync.Mutex
	records   map[string]*model.SubscriptionRecord
	upsertErr error
}

func newMemSubscriptionRepo() *memSubscriptionRepo {
	return &memSubscriptionRepo{records: map[string]*model.SubscriptionRecord{}}
}

func (m *memSubscriptionRepo) Upsert(ctx context.Context, tx repository.Tx, rec *model.SubscriptionRecord) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *rec
	m.records[rec.UserID] = &cp
	return nil
}

func (m *memSubscriptionRepo) FindByUserID(ctx context.Context, tx repository.Tx, userID string) (*model.SubscriptionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

type memIdempotencyRepo struct {
	mu      sync.Mutex
	claimed map[string]bool
}

func newMemIdempotencyRepo() *memIdempotencyRepo {
	return &memIdempotencyRepo{claimed: map[string]bool{}}
}

func (m *memIdempotencyRepo) Claim(ctx context.Context, tx repository.Tx, eventID string, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.claimed[eventID] {
		return false, nil
	}
	m.claimed[eventID] = true
	return true, nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	return fn(ctx, nil)
}

// --- Mock Adapters ---

type mockProvider struct {
	mu        sync.Mutex
	lastReq   adapter.IntentRequest
	createErr error
}

func (m *mockProvider) Name() string { return "mock" }

func (m *mockProvider) CreateIntent(ctx context.Context, req adapter.IntentRequest) (string, error) {
	m.mu.Lock()
	m.lastReq = req
	m.mu.Unlock()
	if m.createErr != nil {
		return "", m.createErr
	}
	return "pi_secret_123", nil
}

// mockVerifier skips the cryptographic check and hands back a canned event,
// so handler tests can exercise the dispatch paths directly. Signature
// verification itself is covered by the payment adapter tests.
type mockVerifier struct {
	evt *model.PaymentEvent
	err error
}

func (m *mockVerifier) VerifyEvent(rawBody []byte, signatureHeader string) (*model.PaymentEvent, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.evt, nil
}
