package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskly/internal/models/db_models"
	"taskly/internal/models/request_models"
)

type fakeEntitlementRepo struct {
	mu         sync.Mutex
	rows       map[string]db_models.UserEntitlement
	getErr     error
	applyErr   error
	applyCalls int
}

func newFakeEntitlementRepo() *fakeEntitlementRepo {
	return &fakeEntitlementRepo{rows: map[string]db_models.UserEntitlement{}}
}

func (f *fakeEntitlementRepo) GetByEmail(ctx context.Context, email string) (*db_models.UserEntitlement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	row, ok := f.rows[email]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

// ApplyPayment mirrors the conditional upsert: a row already holding the same
// payment id is left untouched and reported as not applied.
func (f *fakeEntitlementRepo) ApplyPayment(ctx context.Context, ent db_models.UserEntitlement) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.applyErr != nil {
		return false, f.applyErr
	}
	f.applyCalls++
	if existing, ok := f.rows[ent.Email]; ok && existing.PaymentID == ent.PaymentID {
		return false, nil
	}
	f.rows[ent.Email] = ent
	return true, nil
}

func (f *fakeEntitlementRepo) ListAll(ctx context.Context, page, pageSize int) ([]db_models.UserEntitlement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db_models.UserEntitlement
	for _, row := range f.rows {
		out = append(out, row)
	}
	return out, nil
}

type fakeProvider struct {
	mu       sync.Mutex
	record   *PaymentRecord
	err      error
	getCalls []string
}

func (f *fakeProvider) GetPayment(ctx context.Context, id string) (*PaymentRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls = append(f.getCalls, id)
	if f.err != nil {
		return nil, f.err
	}
	return f.record, nil
}

func (f *fakeProvider) CreateCheckout(ctx context.Context, spec CheckoutSpec) (*CheckoutSession, error) {
	return nil, errors.New("not implemented")
}

type fakeMailer struct {
	mu   sync.Mutex
	err  error
	sent []string // recipient emails
}

func (f *fakeMailer) SendSubscriptionConfirmation(to, plano string, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, to)
	return f.err
}

func (f *fakeMailer) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

var testNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func newTestService(repo *fakeEntitlementRepo, provider *fakeProvider, mailer *fakeMailer) *EntitlementService {
	return &EntitlementService{
		entitlementRepo: repo,
		provider:        provider,
		mail:            mailer,
		now:             func() time.Time { return testNow },
	}
}

func notificationFor(paymentID string) request_models.PaymentNotification {
	n := request_models.PaymentNotification{Action: "payment.updated"}
	n.Data.ID = paymentID
	return n
}

func approvedRecord(id, email, plano string) *PaymentRecord {
	return &PaymentRecord{
		ID:     id,
		Status: PaymentStatusApproved,
		Metadata: PaymentMetadata{
			Email: email,
			Plano: plano,
		},
	}
}

func TestReconcileFreshPurchase(t *testing.T) {
	repo := newFakeEntitlementRepo()
	provider := &fakeProvider{record: approvedRecord("PAY1", "a@x.com", "Premium Anual")}
	mailer := &fakeMailer{}
	svc := newTestService(repo, provider, mailer)

	outcome := svc.Reconcile(context.Background(), notificationFor("PAY1"), "")

	require.Equal(t, ReconcileApplied, outcome)

	row, ok := repo.rows["a@x.com"]
	require.True(t, ok, "entitlement row should have been written")
	assert.Equal(t, db_models.EntitlementPremium, row.Status)
	assert.Equal(t, "PAY1", row.PaymentID)
	assert.Equal(t, "Premium Anual", row.Plano)
	assert.Equal(t, testNow.Unix(), row.DataAssinatura)
	assert.Equal(t, testNow.AddDate(1, 0, 0).Unix(), row.DataExpiracao)

	require.Eventually(t, func() bool { return mailer.sentCount() == 1 },
		time.Second, 10*time.Millisecond, "confirmation email should be attempted")
}

func TestReconcileDuplicateDelivery(t *testing.T) {
	repo := newFakeEntitlementRepo()
	repo.rows["a@x.com"] = db_models.UserEntitlement{
		Email:     "a@x.com",
		Status:    db_models.EntitlementPremium,
		PaymentID: "PAY1",
	}
	provider := &fakeProvider{record: approvedRecord("PAY1", "a@x.com", "Premium Anual")}
	mailer := &fakeMailer{}
	svc := newTestService(repo, provider, mailer)

	outcome := svc.Reconcile(context.Background(), notificationFor("PAY1"), "")

	assert.Equal(t, ReconcileDuplicate, outcome)
	assert.Equal(t, 0, repo.applyCalls, "duplicate delivery must not write")
	assert.Equal(t, 0, mailer.sentCount())
}

func TestReconcileNewPaymentUpgradesExistingRow(t *testing.T) {
	repo := newFakeEntitlementRepo()
	repo.rows["a@x.com"] = db_models.UserEntitlement{
		Email:     "a@x.com",
		Status:    db_models.EntitlementPremium,
		PaymentID: "PAY1",
		Plano:     "Premium Anual",
	}
	provider := &fakeProvider{record: approvedRecord("PAY2", "a@x.com", "Enterprise 36 Meses")}
	svc := newTestService(repo, provider, &fakeMailer{})

	outcome := svc.Reconcile(context.Background(), notificationFor("PAY2"), "")

	require.Equal(t, ReconcileApplied, outcome)
	row := repo.rows["a@x.com"]
	assert.Equal(t, "PAY2", row.PaymentID)
	assert.Equal(t, testNow.AddDate(3, 0, 0).Unix(), row.DataExpiracao)
}

func TestReconcilePendingPayment(t *testing.T) {
	repo := newFakeEntitlementRepo()
	provider := &fakeProvider{record: &PaymentRecord{
		ID:       "PAY1",
		Status:   "pending",
		Metadata: PaymentMetadata{Email: "a@x.com", Plano: "Premium Anual"},
	}}
	svc := newTestService(repo, provider, &fakeMailer{})

	outcome := svc.Reconcile(context.Background(), notificationFor("PAY1"), "")

	assert.Equal(t, ReconcileIgnored, outcome)
	assert.Equal(t, 0, repo.applyCalls)
}

func TestReconcileMissingID(t *testing.T) {
	provider := &fakeProvider{}
	svc := newTestService(newFakeEntitlementRepo(), provider, &fakeMailer{})

	outcome := svc.Reconcile(context.Background(), request_models.PaymentNotification{}, "")

	assert.Equal(t, ReconcileIgnored, outcome)
	assert.Empty(t, provider.getCalls, "no provider fetch without an id")
}

func TestReconcileQueryParamFallback(t *testing.T) {
	repo := newFakeEntitlementRepo()
	provider := &fakeProvider{record: approvedRecord("PAY9", "b@x.com", "Premium Anual")}
	svc := newTestService(repo, provider, &fakeMailer{})

	outcome := svc.Reconcile(context.Background(), request_models.PaymentNotification{}, "PAY9")

	require.Equal(t, ReconcileApplied, outcome)
	require.Equal(t, []string{"PAY9"}, provider.getCalls)
}

func TestReconcileProviderFailureIsSilenced(t *testing.T) {
	repo := newFakeEntitlementRepo()
	provider := &fakeProvider{err: errors.New("connection refused")}
	svc := newTestService(repo, provider, &fakeMailer{})

	outcome := svc.Reconcile(context.Background(), notificationFor("PAY1"), "")

	assert.Equal(t, ReconcileFailed, outcome)
	assert.Equal(t, 0, repo.applyCalls)
}

func TestReconcileMissingMetadata(t *testing.T) {
	repo := newFakeEntitlementRepo()
	provider := &fakeProvider{record: &PaymentRecord{
		ID:       "PAY1",
		Status:   PaymentStatusApproved,
		Metadata: PaymentMetadata{Plano: "Premium Anual"}, // no email
	}}
	svc := newTestService(repo, provider, &fakeMailer{})

	outcome := svc.Reconcile(context.Background(), notificationFor("PAY1"), "")

	assert.Equal(t, ReconcileIgnored, outcome)
	assert.Equal(t, 0, repo.applyCalls, "incomplete metadata must not write")
}

func TestReconcileStorageFailureIsSilenced(t *testing.T) {
	repo := newFakeEntitlementRepo()
	repo.getErr = errors.New("storage down")
	provider := &fakeProvider{record: approvedRecord("PAY1", "a@x.com", "Premium Anual")}
	svc := newTestService(repo, provider, &fakeMailer{})

	outcome := svc.Reconcile(context.Background(), notificationFor("PAY1"), "")

	assert.Equal(t, ReconcileFailed, outcome)
}

func TestReconcileMailFailureDoesNotAffectOutcome(t *testing.T) {
	repo := newFakeEntitlementRepo()
	provider := &fakeProvider{record: approvedRecord("PAY1", "a@x.com", "Premium Anual")}
	mailer := &fakeMailer{err: errors.New("smtp down")}
	svc := newTestService(repo, provider, mailer)

	outcome := svc.Reconcile(context.Background(), notificationFor("PAY1"), "")

	require.Equal(t, ReconcileApplied, outcome)
	require.Eventually(t, func() bool { return mailer.sentCount() == 1 },
		time.Second, 10*time.Millisecond)
	assert.Equal(t, "PAY1", repo.rows["a@x.com"].PaymentID)
}

func TestReconcileConcurrentSamePayment(t *testing.T) {
	repo := newFakeEntitlementRepo()
	provider := &fakeProvider{record: approvedRecord("PAY1", "a@x.com", "Premium Anual")}
	svc := newTestService(repo, provider, &fakeMailer{})

	var wg sync.WaitGroup
	outcomes := make([]ReconcileOutcome, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outcomes[i] = svc.Reconcile(context.Background(), notificationFor("PAY1"), "")
		}(i)
	}
	wg.Wait()

	applied := 0
	for _, o := range outcomes {
		if o == ReconcileApplied {
			applied++
		}
	}
	assert.LessOrEqual(t, applied, 1, "the upgrade must apply at most once")
	assert.Equal(t, "PAY1", repo.rows["a@x.com"].PaymentID)
}

func TestExpirationDerivation(t *testing.T) {
	from := time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		plano string
		want  time.Time
	}{
		{"Enterprise 36 Meses", from.AddDate(3, 0, 0)},
		{"Premium Anual", from.AddDate(1, 0, 0)},
		{"Premium Mensal", from.AddDate(1, 0, 0)},
		{"anything else", from.AddDate(1, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.plano, func(t *testing.T) {
			assert.Equal(t, tt.want, expirationFor(tt.plano, from))
		})
	}
}

func TestIsPremium(t *testing.T) {
	repo := newFakeEntitlementRepo()
	repo.rows["valid@x.com"] = db_models.UserEntitlement{
		Email:         "valid@x.com",
		Status:        db_models.EntitlementPremium,
		DataExpiracao: testNow.AddDate(0, 6, 0).Unix(),
	}
	repo.rows["expired@x.com"] = db_models.UserEntitlement{
		Email:         "expired@x.com",
		Status:        db_models.EntitlementPremium,
		DataExpiracao: testNow.AddDate(0, -1, 0).Unix(),
	}
	svc := newTestService(repo, &fakeProvider{}, &fakeMailer{})

	premium, err := svc.IsPremium(context.Background(), "valid@x.com")
	require.NoError(t, err)
	assert.True(t, premium)

	premium, err = svc.IsPremium(context.Background(), "expired@x.com")
	require.NoError(t, err)
	assert.False(t, premium)

	premium, err = svc.IsPremium(context.Background(), "unknown@x.com")
	require.NoError(t, err)
	assert.False(t, premium)
}
