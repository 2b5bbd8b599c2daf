package auth

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	internalauth "github.com/dealboard/dealboard-backend/internal/auth"
	"github.com/dealboard/dealboard-backend/internal/config"
	"github.com/dealboard/dealboard-backend/internal/domain"
	"github.com/dealboard/dealboard-backend/pkg/ctxutil"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// fakeUserRepo keeps users in memory, including the credential columns
// the store never exposes on domain.User.
type fakeUserRepo struct {
	users  map[uuid.UUID]*domain.User
	hashes map[uuid.UUID]*string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:  make(map[uuid.UUID]*domain.User),
		hashes: make(map[uuid.UUID]*string),
	}
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *u
	return &out, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByGoogleID(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetPasswordHashByEmail(_ context.Context, email string) (*domain.User, *string, error) {
	for id, u := range f.users {
		if u.Email == email {
			out := *u
			return &out, f.hashes[id], nil
		}
	}
	return nil, nil, domain.ErrNotFound
}

func (f *fakeUserRepo) Create(_ context.Context, p domain.NewUserParams) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == p.Email || u.Username == p.Username {
			return nil, domain.ErrAlreadyExists
		}
	}
	u := &domain.User{
		ID:       uuid.New(),
		Email:    p.Email,
		Username: p.Username,
		Role:     domain.RoleUser,
	}
	f.users[u.ID] = u
	f.hashes[u.ID] = p.PasswordHash
	out := *u
	return &out, nil
}

func (f *fakeUserRepo) LinkGoogle(_ context.Context, id uuid.UUID, _ string, _ *string) (*domain.User, error) {
	return f.GetByID(context.Background(), id)
}

type fakeTokenRepo struct {
	byHash    map[string]*domain.RefreshToken
	createErr error
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{byHash: make(map[string]*domain.RefreshToken)}
}

func (f *fakeTokenRepo) Create(_ context.Context, token *domain.RefreshToken) error {
	if f.createErr != nil {
		return f.createErr
	}
	t := *token
	t.ID = uuid.New()
	t.CreatedAt = time.Now()
	f.byHash[t.TokenHash] = &t
	return nil
}

func (f *fakeTokenRepo) GetByHash(_ context.Context, tokenHash string) (*domain.RefreshToken, error) {
	t, ok := f.byHash[tokenHash]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *t
	return &out, nil
}

func (f *fakeTokenRepo) RevokeByID(_ context.Context, id uuid.UUID) error {
	for _, t := range f.byHash {
		if t.ID == id && t.RevokedAt == nil {
			now := time.Now()
			t.RevokedAt = &now
		}
	}
	return nil
}

func (f *fakeTokenRepo) RevokeAllByUser(_ context.Context, userID uuid.UUID) error {
	for _, t := range f.byHash {
		if t.UserID == userID && t.RevokedAt == nil {
			now := time.Now()
			t.RevokedAt = &now
		}
	}
	return nil
}

// fakeTxManager mimics transactional rollback by snapshotting the token
// repo before fn runs and restoring it when fn fails.
type fakeTxManager struct {
	tokens *fakeTokenRepo
	calls  int
}

func (f *fakeTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	snapshot := make(map[string]*domain.RefreshToken, len(f.tokens.byHash))
	for hash, t := range f.tokens.byHash {
		copied := *t
		snapshot[hash] = &copied
	}
	if err := fn(ctx); err != nil {
		f.tokens.byHash = snapshot
		return err
	}
	return nil
}

type stubVerifier struct{}

func (stubVerifier) VerifyCode(context.Context, string) (*internalauth.OAuthIdentity, error) {
	return nil, errors.New("not configured")
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:       "unit-test-secret-that-is-long-enough",
		JWTIssuer:       "dealboard",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 720 * time.Hour,
	}
}

func newTestService(t *testing.T) (*Service, *fakeUserRepo, *fakeTokenRepo) {
	t.Helper()
	cfg := testAuthConfig()
	users := newFakeUserRepo()
	tokens := newFakeTokenRepo()
	jwt := internalauth.NewJWTManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTokenTTL)
	txm := &fakeTxManager{tokens: tokens}
	return NewService(testLogger(), users, tokens, txm, stubVerifier{}, jwt, cfg), users, tokens
}

func TestRegister_Validation(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)

	tests := []struct {
		name  string
		input RegisterInput
	}{
		{"empty", RegisterInput{}},
		{"bad email", RegisterInput{Email: "not-an-email", Username: "alice", Password: "password1"}},
		{"short username", RegisterInput{Email: "a@example.com", Username: "al", Password: "password1"}},
		{"short password", RegisterInput{Email: "a@example.com", Username: "alice", Password: "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.input)
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("Register() = %v, want ErrValidation", err)
			}
		})
	}
}

func TestRegisterAndLoginWithPassword(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, RegisterInput{
		Email:    "Alice@Example.com",
		Username: "alice",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Fatal("registration did not issue tokens")
	}
	if result.User.Email != "alice@example.com" {
		t.Errorf("email = %q, want lowercased", result.User.Email)
	}

	// Login works regardless of email casing.
	logged, err := svc.LoginWithPassword(ctx, LoginPasswordInput{
		Email:    "ALICE@example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("LoginWithPassword: %v", err)
	}
	if logged.User.ID != result.User.ID {
		t.Errorf("logged in as %s, want %s", logged.User.ID, result.User.ID)
	}

	// Wrong password and unknown email both collapse to unauthorized.
	_, err = svc.LoginWithPassword(ctx, LoginPasswordInput{Email: "alice@example.com", Password: "wrong"})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("wrong password = %v, want ErrUnauthorized", err)
	}
	_, err = svc.LoginWithPassword(ctx, LoginPasswordInput{Email: "nobody@example.com", Password: "whatever"})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("unknown email = %v, want ErrUnauthorized", err)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	ctx := context.Background()

	input := RegisterInput{Email: "a@example.com", Username: "alice", Password: "password1"}
	if _, err := svc.Register(ctx, input); err != nil {
		t.Fatalf("first Register: %v", err)
	}

	_, err := svc.Register(ctx, input)
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("second Register = %v, want ErrAlreadyExists", err)
	}
}

func TestRefresh_RotatesToken(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterInput{
		Email: "a@example.com", Username: "alice", Password: "password1",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	refreshed, err := svc.Refresh(ctx, RefreshInput{RefreshToken: registered.RefreshToken})
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if refreshed.RefreshToken == registered.RefreshToken {
		t.Error("refresh did not rotate the token")
	}

	// The consumed token is revoked and cannot be replayed.
	_, err = svc.Refresh(ctx, RefreshInput{RefreshToken: registered.RefreshToken})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("replayed Refresh = %v, want ErrUnauthorized", err)
	}

	// The rotated token still works.
	if _, err := svc.Refresh(ctx, RefreshInput{RefreshToken: refreshed.RefreshToken}); err != nil {
		t.Fatalf("Refresh with rotated token: %v", err)
	}
}

func TestRefresh_RotationIsAtomic(t *testing.T) {
	t.Parallel()

	cfg := testAuthConfig()
	users := newFakeUserRepo()
	tokens := newFakeTokenRepo()
	jwt := internalauth.NewJWTManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTokenTTL)
	txm := &fakeTxManager{tokens: tokens}
	svc := NewService(testLogger(), users, tokens, txm, stubVerifier{}, jwt, cfg)
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterInput{
		Email: "a@example.com", Username: "alice", Password: "password1",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	// Fail the insert of the rotated token. The revocation of the old
	// one must roll back with it.
	tokens.createErr = errors.New("connection reset")
	if _, err := svc.Refresh(ctx, RefreshInput{RefreshToken: registered.RefreshToken}); err == nil {
		t.Fatal("Refresh succeeded despite failed token insert")
	}
	if txm.calls == 0 {
		t.Fatal("rotation ran outside a transaction")
	}

	// The old token survived the failed rotation and still refreshes.
	tokens.createErr = nil
	if _, err := svc.Refresh(ctx, RefreshInput{RefreshToken: registered.RefreshToken}); err != nil {
		t.Fatalf("Refresh after rollback: %v", err)
	}
}

func TestRefresh_UnknownToken(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)

	_, err := svc.Refresh(context.Background(), RefreshInput{RefreshToken: "never-issued"})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("Refresh(unknown) = %v, want ErrUnauthorized", err)
	}
}

func TestLogout_RevokesAll(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterInput{
		Email: "a@example.com", Username: "alice", Password: "password1",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := svc.Logout(ctxutil.WithUserID(ctx, registered.User.ID)); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	_, err = svc.Refresh(ctx, RefreshInput{RefreshToken: registered.RefreshToken})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("Refresh after logout = %v, want ErrUnauthorized", err)
	}
}

func TestLogout_Anonymous(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)

	if err := svc.Logout(context.Background()); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("Logout(anonymous) = %v, want ErrUnauthorized", err)
	}
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterInput{
		Email: "a@example.com", Username: "alice", Password: "password1",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	userID, role, err := svc.ValidateToken(ctx, registered.AccessToken)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if userID != registered.User.ID {
		t.Errorf("userID = %s, want %s", userID, registered.User.ID)
	}
	if role != domain.RoleUser.String() {
		t.Errorf("role = %q, want USER", role)
	}

	if _, _, err := svc.ValidateToken(ctx, "garbage"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("ValidateToken(garbage) = %v, want ErrUnauthorized", err)
	}
}
