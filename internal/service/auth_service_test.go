package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/config"
	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/dto"
	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/model"
)

// ── In-memory repository stub ─────────────────────────────────────────────────

type stubUserRepo struct {
	users map[string]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*model.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.Email] = u
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]model.User, error) {
	users := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, *u)
	}
	return users, nil
}

func (r *stubUserRepo) Search(_ context.Context, filter dto.UserFilter) ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	r.users[u.Email] = u
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	for email, u := range r.users {
		if u.ID == id {
			delete(r.users, email)
			return true, nil
		}
	}
	return false, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

const testSecret = "test_jwt_secret_32_chars_minimum!"

func newTestCfg() *config.Config {
	return &config.Config{
		JWTSecret:          testSecret,
		JWTExpirationHours: 12,
	}
}

func seedUser(t *testing.T, repo *stubUserRepo, email, password, role string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	require.NoError(t, err)
	u := &model.User{
		ID: uuid.New(), Name: "Test User", Email: email,
		PasswordHash: string(hash), Role: role,
	}
	repo.users[email] = u
	return u
}

// ── Tests: Register ───────────────────────────────────────────────────────────

func TestRegister_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newTestCfg())

	resp, err := svc.Register(context.Background(), dto.RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "secret1", Role: "cashier",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", resp.Email)
	assert.Equal(t, "cashier", resp.Role)
	assert.NotEmpty(t, resp.ID)

	// password is stored hashed
	stored := repo.users["alice@example.com"]
	assert.NotEqual(t, "secret1", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret1")))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "taken@example.com", "pw123456", "admin")
	svc := NewAuthService(repo, newTestCfg())

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Name: "Bob", Email: "taken@example.com", Password: "pw123456", Role: "customer",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

// ── Tests: Login ──────────────────────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	repo := newStubUserRepo()
	u := seedUser(t, repo, "admin@example.com", "correcthorse", "admin")
	svc := NewAuthService(repo, newTestCfg())

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "admin@example.com", Password: "correcthorse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, u.ID.String(), resp.User.ID)

	// token carries the expected claims and a 12h expiry
	tok, err := jwt.Parse(resp.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	claims := tok.Claims.(jwt.MapClaims)
	assert.Equal(t, u.ID.String(), claims["user_id"])
	assert.Equal(t, "admin", claims["role"])
	exp := int64(claims["exp"].(float64))
	assert.InDelta(t, time.Now().Add(12*time.Hour).Unix(), exp, 60)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "admin@example.com", "correcthorse", "admin")
	svc := NewAuthService(repo, newTestCfg())

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "admin@example.com", Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmailIndistinguishable(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "admin@example.com", "correcthorse", "admin")
	svc := NewAuthService(repo, newTestCfg())

	_, errUnknown := svc.Login(context.Background(), dto.LoginRequest{
		Email: "ghost@example.com", Password: "whatever",
	})
	_, errWrongPw := svc.Login(context.Background(), dto.LoginRequest{
		Email: "admin@example.com", Password: "wrong",
	})
	// the two failure modes must be indistinguishable to the caller
	assert.Equal(t, errWrongPw, errUnknown)
}
