package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/dto"
	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/infra"
	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/model"
	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/repository"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

type stubNotificationRepo struct {
	rows map[uuid.UUID]*model.Notification
}

func newStubNotificationRepo() *stubNotificationRepo {
	return &stubNotificationRepo{rows: make(map[uuid.UUID]*model.Notification)}
}

func (r *stubNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	r.rows[n.ID] = n
	return nil
}

func (r *stubNotificationRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Notification, error) {
	n, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return n, nil
}

func (r *stubNotificationRepo) List(_ context.Context) ([]model.Notification, error) { return nil, nil }

func (r *stubNotificationRepo) Search(_ context.Context, _ dto.NotificationFilter) ([]model.Notification, error) {
	return nil, nil
}

func (r *stubNotificationRepo) Update(_ context.Context, n *model.Notification) error {
	r.rows[n.ID] = n
	return nil
}

func (r *stubNotificationRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	n, ok := r.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	n.Status = status
	return nil
}

func (r *stubNotificationRepo) ListPendingOlderThan(_ context.Context, cutoff time.Time, limit int) ([]model.Notification, error) {
	var out []model.Notification
	for _, n := range r.rows {
		if n.Status == model.NotificationPending && n.CreatedAt.Before(cutoff) && len(out) < limit {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (r *stubNotificationRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := r.rows[id]; !ok {
		return false, nil
	}
	delete(r.rows, id)
	return true, nil
}

var _ repository.NotificationRepository = (*stubNotificationRepo)(nil)

type stubWorkerUserRepo struct {
	user *model.User
}

func (r *stubWorkerUserRepo) Create(_ context.Context, _ *model.User) error { return nil }

func (r *stubWorkerUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	if r.user != nil && r.user.ID == id {
		return r.user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubWorkerUserRepo) FindByEmail(_ context.Context, _ string) (*model.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *stubWorkerUserRepo) List(_ context.Context) ([]model.User, error) { return nil, nil }

func (r *stubWorkerUserRepo) Search(_ context.Context, _ dto.UserFilter) ([]model.User, error) {
	return nil, nil
}

func (r *stubWorkerUserRepo) Update(_ context.Context, _ *model.User) error { return nil }

func (r *stubWorkerUserRepo) Delete(_ context.Context, _ uuid.UUID) (bool, error) {
	return false, nil
}

var _ repository.UserRepository = (*stubWorkerUserRepo)(nil)

type stubMailer struct {
	sent []string
	err  error
}

func (m *stubMailer) Send(to, _, _ string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to)
	return nil
}

// unreachableRedis returns a client whose commands fail fast; DLQ pushes are
// best-effort so the worker must tolerate it.
func unreachableRedis() *redis.Client {
	return redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 10 * time.Millisecond})
}

func newWorkerFixture(mailer *stubMailer) (*NotificationWorker, *stubNotificationRepo, *model.User) {
	repo := newStubNotificationRepo()
	user := &model.User{ID: uuid.New(), Name: "Recipient", Email: "to@example.com"}
	userRepo := &stubWorkerUserRepo{user: user}
	cb := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	return NewNotificationWorker(repo, userRepo, mailer, cb, unreachableRedis()), repo, user
}

func payloadFor(t *testing.T, id uuid.UUID) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(NotificationJobPayload{NotificationID: id.String()})
	require.NoError(t, err)
	return b
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestNotificationWorker_EmailDelivered(t *testing.T) {
	mailer := &stubMailer{}
	w, repo, user := newWorkerFixture(mailer)

	n := &model.Notification{UserID: user.ID, Type: model.NotificationEmail, Message: "Your balance is due", Status: model.NotificationPending}
	require.NoError(t, repo.Create(context.Background(), n))

	w.Process(context.Background(), payloadFor(t, n.ID))

	assert.Equal(t, []string{"to@example.com"}, mailer.sent)
	assert.Equal(t, model.NotificationSent, repo.rows[n.ID].Status)
}

func TestNotificationWorker_EmailFailureMarksFailed(t *testing.T) {
	mailer := &stubMailer{err: errors.New("smtp down")}
	w, repo, user := newWorkerFixture(mailer)

	n := &model.Notification{UserID: user.ID, Type: model.NotificationEmail, Message: "hi", Status: model.NotificationPending}
	require.NoError(t, repo.Create(context.Background(), n))

	w.Process(context.Background(), payloadFor(t, n.ID))

	assert.Empty(t, mailer.sent)
	assert.Equal(t, model.NotificationFailed, repo.rows[n.ID].Status)
}

func TestNotificationWorker_InAppMarkedSentWithoutMailer(t *testing.T) {
	mailer := &stubMailer{}
	w, repo, user := newWorkerFixture(mailer)

	n := &model.Notification{UserID: user.ID, Type: model.NotificationInApp, Message: "ping", Status: model.NotificationPending}
	require.NoError(t, repo.Create(context.Background(), n))

	w.Process(context.Background(), payloadFor(t, n.ID))

	assert.Empty(t, mailer.sent)
	assert.Equal(t, model.NotificationSent, repo.rows[n.ID].Status)
}

func TestNotificationWorker_AlreadySentIsSkipped(t *testing.T) {
	mailer := &stubMailer{}
	w, repo, user := newWorkerFixture(mailer)

	n := &model.Notification{UserID: user.ID, Type: model.NotificationEmail, Message: "dup", Status: model.NotificationSent}
	require.NoError(t, repo.Create(context.Background(), n))

	w.Process(context.Background(), payloadFor(t, n.ID))

	assert.Empty(t, mailer.sent)
	assert.Equal(t, model.NotificationSent, repo.rows[n.ID].Status)
}

func TestNotificationWorker_InvalidPayloadIgnored(t *testing.T) {
	mailer := &stubMailer{}
	w, _, _ := newWorkerFixture(mailer)

	w.Process(context.Background(), json.RawMessage(`{not json`))
	w.Process(context.Background(), payloadFor(t, uuid.New())) // unknown row

	assert.Empty(t, mailer.sent)
}

func TestWithRetry_StopsOnFirstSuccess(t *testing.T) {
	calls := 0
	err := withRetry(context.Background(), 3, func(attempt int) error {
		calls++
		if attempt == 0 {
			return errors.New("transient")
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
}
