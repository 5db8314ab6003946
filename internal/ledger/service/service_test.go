package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillproof/internal/audit"
	ledgerstore "skillproof/internal/ledger/store"
	"skillproof/internal/platform/tracer"
	"skillproof/internal/policy"
	registryservice "skillproof/internal/registry/service"
	registrystore "skillproof/internal/registry/store"
	"skillproof/pkg/domain"
	dErrors "skillproof/pkg/domain-errors"
	"skillproof/pkg/platform/sequence"
	"skillproof/pkg/platform/storetx"
)

const (
	owner    = domain.Principal("0xowner")
	clientID = domain.Principal("0xclient")
	verifID  = domain.Principal("0xverifier")
	userID   = domain.Principal("0xuser")
)

type fixture struct {
	ledger     *Service
	registry   *registryservice.Service
	store      *ledgerstore.InMemory
	auditStore *audit.InMemoryStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	tx := storetx.NewInMemory()
	auditStore := audit.NewInMemoryStore()
	publisher := audit.NewPublisher(auditStore)
	authz := policy.New(owner, 0, 0)

	registry := registryservice.New(registrystore.NewInMemory(), authz, tx)
	store := ledgerstore.NewInMemory(sequence.New())
	ledger := New(store, registry, tx, WithAuditPublisher(publisher))

	_, err := registry.RegisterClient(context.Background(), clientID, "Acme")
	require.NoError(t, err)
	_, err = registry.RegisterVerifier(context.Background(), owner, verifID, "Adjudicator")
	require.NoError(t, err)

	return &fixture{ledger: ledger, registry: registry, store: store, auditStore: auditStore}
}

func validRequest() SubmitRequest {
	return SubmitRequest{
		User:        userID,
		Name:        "Web Development Project",
		Description: "A full-stack web application",
		CompletedAt: time.Now().Add(-24 * time.Hour),
		Skills:      []string{"Go", "Rust"},
	}
}

func TestSubmit(t *testing.T) {
	f := newFixture(t)

	id, err := f.ledger.Submit(context.Background(), clientID, validRequest())
	require.NoError(t, err)
	assert.Equal(t, domain.VerificationID(1), id)

	v, err := f.store.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, userID, v.User)
	assert.Equal(t, clientID, v.Client)
	assert.Equal(t, []string{"Go", "Rust"}, v.Skills)
	assert.Equal(t, "PENDING", v.Status.String())

	// Submission counter follows the client.
	c, ok := f.registry.GetClient(context.Background(), clientID)
	require.True(t, ok)
	assert.Equal(t, uint64(1), c.VerificationCount)

	// Ids are strictly increasing.
	id2, err := f.ledger.Submit(context.Background(), clientID, validRequest())
	require.NoError(t, err)
	assert.Equal(t, domain.VerificationID(2), id2)
}

func TestSubmitRequiresActiveClient(t *testing.T) {
	f := newFixture(t)

	_, err := f.ledger.Submit(context.Background(), "0xstranger", validRequest())
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotAuthorizedClient))

	require.NoError(t, f.registry.DeactivateClient(context.Background(), owner, clientID))
	_, err = f.ledger.Submit(context.Background(), clientID, validRequest())
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotAuthorizedClient))
}

func TestSubmitValidationConsumesNoID(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.CompletedAt = time.Now().Add(24 * time.Hour)
	_, err := f.ledger.Submit(context.Background(), clientID, req)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeFutureCompletionDate))

	// Ledger unchanged: the failed submission consumed no id and the client
	// counter did not move.
	n, err := f.store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(0), n)
	c, _ := f.registry.GetClient(context.Background(), clientID)
	assert.Equal(t, uint64(0), c.VerificationCount)

	id, err := f.ledger.Submit(context.Background(), clientID, validRequest())
	require.NoError(t, err)
	assert.Equal(t, domain.VerificationID(1), id)
}

func TestSubmitValidationOrder(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		name     string
		mutate   func(*SubmitRequest)
		wantCode dErrors.Code
	}{
		{"empty name", func(r *SubmitRequest) { r.Name = "" }, dErrors.CodeEmptyName},
		{"empty description", func(r *SubmitRequest) { r.Description = "" }, dErrors.CodeEmptyDescription},
		{"future completion", func(r *SubmitRequest) { r.CompletedAt = time.Now().Add(time.Hour) }, dErrors.CodeFutureCompletionDate},
		{"no skills", func(r *SubmitRequest) { r.Skills = nil }, dErrors.CodeNoSkillsSpecified},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)
			_, err := f.ledger.Submit(context.Background(), clientID, req)
			assert.True(t, dErrors.HasCode(err, tc.wantCode), "got %v", err)
		})
	}
}

func TestSubmitEmitsEvent(t *testing.T) {
	f := newFixture(t)

	_, err := f.ledger.Submit(context.Background(), clientID, validRequest())
	require.NoError(t, err)

	events, err := f.auditStore.List(context.Background())
	require.NoError(t, err)
	// The fixture registry has no publisher wired, so the submission is the
	// only event on the stream.
	require.Len(t, events, 1)
	last := events[0]
	assert.Equal(t, audit.ActionVerificationSubmitted, last.Action)
	assert.Equal(t, clientID, last.Actor)
	assert.Equal(t, userID, last.Subject)
	assert.Equal(t, domain.VerificationID(1), last.VerificationID)
	assert.Equal(t, "Web Development Project", last.Detail["name"])
}

func TestApprove(t *testing.T) {
	f := newFixture(t)
	id, err := f.ledger.Submit(context.Background(), clientID, validRequest())
	require.NoError(t, err)

	require.NoError(t, f.ledger.Approve(context.Background(), verifID, id))

	v, err := f.store.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", v.Status.String())

	verifier, ok := f.registry.GetVerifier(context.Background(), verifID)
	require.True(t, ok)
	assert.Equal(t, uint64(1), verifier.ApprovedCount)

	events, _ := f.auditStore.List(context.Background())
	last := events[len(events)-1]
	assert.Equal(t, audit.ActionVerificationApproved, last.Action)
	assert.Equal(t, verifID, last.Actor)
}

func TestApproveRequiresActiveVerifier(t *testing.T) {
	f := newFixture(t)
	id, err := f.ledger.Submit(context.Background(), clientID, validRequest())
	require.NoError(t, err)

	err = f.ledger.Approve(context.Background(), userID, id)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotAuthorizedVerifier))

	require.NoError(t, f.registry.DeactivateVerifier(context.Background(), owner, verifID))
	err = f.ledger.Approve(context.Background(), verifID, id)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotAuthorizedVerifier))
}

func TestApproveUnknownVerification(t *testing.T) {
	f := newFixture(t)
	err := f.ledger.Approve(context.Background(), verifID, 99)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeVerificationNotFound))
}

func TestSecondTerminalTransitionLoses(t *testing.T) {
	f := newFixture(t)
	id, err := f.ledger.Submit(context.Background(), clientID, validRequest())
	require.NoError(t, err)

	require.NoError(t, f.ledger.Approve(context.Background(), verifID, id))

	// Whichever transition lands second must observe non-PENDING and fail.
	err = f.ledger.Approve(context.Background(), verifID, id)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeVerificationNotPending))
	err = f.ledger.Reject(context.Background(), verifID, id, "late")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeVerificationNotPending))
}

func TestReject(t *testing.T) {
	f := newFixture(t)
	id, err := f.ledger.Submit(context.Background(), clientID, validRequest())
	require.NoError(t, err)

	require.NoError(t, f.ledger.Reject(context.Background(), verifID, id, "Insufficient evidence"))

	v, err := f.store.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "REJECTED", v.Status.String())
	assert.Equal(t, "Insufficient evidence", v.RejectionReason)

	// REJECTED is terminal.
	err = f.ledger.Approve(context.Background(), verifID, id)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeVerificationNotPending))

	// Rejection does not move the approval counter.
	verifier, _ := f.registry.GetVerifier(context.Background(), verifID)
	assert.Equal(t, uint64(0), verifier.ApprovedCount)

	events, _ := f.auditStore.List(context.Background())
	last := events[len(events)-1]
	assert.Equal(t, audit.ActionVerificationRejected, last.Action)
	assert.Equal(t, "Insufficient evidence", last.Detail["reason"])
}

// failingPublisher simulates a broken event sink.
type failingPublisher struct{}

func (failingPublisher) Emit(context.Context, audit.Event) error {
	return errors.New("sink down")
}

func TestSubmitSurvivesEventSinkFailure(t *testing.T) {
	f := newFixture(t)
	broken := New(f.store, f.registry, storetx.NewInMemory(), WithAuditPublisher(failingPublisher{}))

	// The domain write commits even when the sink is down; the failure is
	// logged, never returned.
	id, err := broken.Submit(context.Background(), clientID, validRequest())
	require.NoError(t, err)

	v, err := f.store.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "PENDING", v.Status.String())
}

// recordingTracer captures spans for assertions.
type recordingTracer struct {
	spans []*recordedSpan
}

type recordedSpan struct {
	name  string
	attrs []tracer.Attribute
	err   error
	ended bool
}

func (r *recordingTracer) Start(ctx context.Context, name string, attrs ...tracer.Attribute) (context.Context, tracer.Span) {
	s := &recordedSpan{name: name, attrs: attrs}
	r.spans = append(r.spans, s)
	return ctx, s
}

func (s *recordedSpan) End(err error)                          { s.err = err; s.ended = true }
func (s *recordedSpan) SetAttributes(attrs ...tracer.Attribute) { s.attrs = append(s.attrs, attrs...) }
func (s *recordedSpan) AddEvent(string, ...tracer.Attribute)   {}

func TestTransitionsRecordSpanStatus(t *testing.T) {
	f := newFixture(t)
	rec := &recordingTracer{}
	traced := New(f.store, f.registry, storetx.NewInMemory(), WithTracer(rec))

	id, err := traced.Submit(context.Background(), clientID, validRequest())
	require.NoError(t, err)
	require.NoError(t, traced.Approve(context.Background(), verifID, id))

	require.Len(t, rec.spans, 2)
	span := rec.spans[1]
	assert.Equal(t, tracer.SpanLedgerApprove, span.name)
	assert.True(t, span.ended)
	require.NoError(t, span.err)

	var status string
	for _, a := range span.attrs {
		if a.Key == tracer.AttrStatus {
			status, _ = a.Value.(string)
		}
	}
	assert.Equal(t, "APPROVED", status)
}
