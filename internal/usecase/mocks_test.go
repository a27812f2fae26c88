//go:build !integration

package usecase_test

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"subscription-billing/internal/domain"
	"subscription-billing/internal/domain/model"
	"subscription-billing/internal/domain/ports/adapter"
	"subscription-billing/internal/domain/ports/repository"
)

// newTestLogger creates a silent logger for tests.
func newTestLogger() *zerolog.Logger {
	logger := zerolog.New(nil)
	return &logger
}

// memSubscriptionRepo is a small in-memory implementation used by unit tests.
type memSubscriptionRepo struct {
	mu        sync.Mutex
	store     map[string]*model.SubscriptionRecord
	upserts   int
	upsertErr error
}

func newMemSubscriptionRepo() *memSubscriptionRepo {
	return &memSubscriptionRepo{store: make(map[string]*model.SubscriptionRecord)}
}

func (m *memSubscriptionRepo) Upsert(ctx context.Context, tx repository.Tx, rec *model.SubscriptionRecord) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *rec
	m.store[rec.UserID] = &cp
	m.upserts++
	return nil
}

func (m *memSubscriptionRepo) FindByUserID(ctx context.Context, tx repository.Tx, userID string) (*model.SubscriptionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.store[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (m *memSubscriptionRepo) upsertCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.upserts
}

// memIdempotencyRepo claims event ids with first-writer-wins semantics.
type memIdempotencyRepo struct {
	mu       sync.Mutex
	applied  map[string]time.Time
	claimErr error
}

func newMemIdempotencyRepo() *memIdempotencyRepo {
	return &memIdempotencyRepo{applied: make(map[string]time.Time)}
}

func (m *memIdempotencyRepo) Claim(ctx context.Context, tx repository.Tx, eventID string, at time.Time) (bool, error) {
	if m.claimErr != nil {
		return false, m.claimErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.applied[eventID]; ok {
		return false, nil
	}
	m.applied[eventID] = at
	return true, nil
}

func (m *memIdempotencyRepo) claimCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.applied)
}

// memEventCache mimics the advisory redis cache.
type memEventCache struct {
	mu      sync.Mutex
	seen    map[string]bool
	seenErr error
}

func newMemEventCache() *memEventCache {
	return &memEventCache{seen: make(map[string]bool)}
}

func (m *memEventCache) Seen(ctx context.Context, eventID string) (bool, error) {
	if m.seenErr != nil {
		return false, m.seenErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.seen[eventID], nil
}

func (m *memEventCache) MarkApplied(ctx context.Context, eventID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seen[eventID] = true
	return nil
}

// passthroughTxManager runs the callback without a real transaction.
type passthroughTxManager struct {
	beginErr error
}

func (m *passthroughTxManager) WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	if m.beginErr != nil {
		return m.beginErr
	}
	return fn(ctx, nil)
}

// mockPaymentProvider records the last intent request.
type mockPaymentProvider struct {
	mu        sync.Mutex
	lastReq   adapter.IntentRequest
	calls     int
	secret    string
	createErr error
}

func (m *mockPaymentProvider) Name() string { return "mock" }

func (m *mockPaymentProvider) CreateIntent(ctx context.Context, req adapter.IntentRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastReq = req
	if m.createErr != nil {
		return "", m.createErr
	}
	if m.secret == "" {
		return "pi_test_secret", nil
	}
	return m.secret, nil
}
