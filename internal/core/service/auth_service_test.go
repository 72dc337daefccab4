package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/numerisys/document-system/internal/core/domain"
)

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = fmt.Sprintf("user-%d", r.nextID)
	r.users[created.ID] = cloneUser(created)
	return cloneUser(created), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		c := cloneUser(u)
		c.PasswordHash = ""
		out = append(out, c)
	}
	return out, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func newTestAuthService(repo *stubUserRepo) *AuthService {
	return NewAuthService(repo, NewTokenManager("secret", time.Hour), nil, zerolog.Nop())
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	user, token, err := svc.Register(context.Background(), "Alice", "alice@x.com", "secret")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user == nil || user.ID == "" {
		t.Fatalf("expected created user, got %+v", user)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected default role USER, got %s", user.Role)
	}
	if user.PasswordHash == "secret" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a token on registration")
	}

	claims, err := NewTokenManager("secret", time.Hour).Verify(token)
	if err != nil {
		t.Fatalf("registration token invalid: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != user.Role {
		t.Fatalf("token identity mismatch: %+v vs %+v", claims, user)
	}
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	if _, _, err := svc.Register(context.Background(), "", "a@x.com", "pw"); err != domain.ErrMissingFields {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
	if _, _, err := svc.Register(context.Background(), "A", "", "pw"); err != domain.ErrMissingFields {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
	if _, _, err := svc.Register(context.Background(), "A", "a@x.com", ""); err != domain.ErrMissingFields {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	first, _, err := svc.Register(context.Background(), "Alice", "alice@x.com", "secret")
	if err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	if _, _, err := svc.Register(context.Background(), "Impostor", "alice@x.com", "other"); err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	// First account untouched.
	kept, err := repo.FindByID(context.Background(), first.ID)
	if err != nil {
		t.Fatalf("original user gone: %v", err)
	}
	if kept.Name != "Alice" {
		t.Fatalf("original user mutated: %+v", kept)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	registered, _, err := svc.Register(context.Background(), "Carol", "carol@x.com", "s3cret")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "carol@x.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user == nil || user.ID != registered.ID {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims, err := NewTokenManager("secret", time.Hour).Verify(token)
	if err != nil {
		t.Fatalf("login token invalid: %v", err)
	}
	if claims.UserID != registered.ID || claims.Role != registered.Role {
		t.Fatalf("token identity mismatch: %+v", claims)
	}
}

func TestAuthService_Login_SameErrorForUnknownEmailAndBadPassword(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	if _, _, err := svc.Register(context.Background(), "Dave", "dave@x.com", "goodpass"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, _, errUnknown := svc.Login(context.Background(), "ghost@x.com", "whatever")
	_, _, errBadPass := svc.Login(context.Background(), "dave@x.com", "badpass")

	if errUnknown != domain.ErrInvalidCredentials {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", errUnknown)
	}
	if errBadPass != domain.ErrInvalidCredentials {
		t.Fatalf("bad password: expected ErrInvalidCredentials, got %v", errBadPass)
	}
}

type stubThrottle struct {
	allowed  bool
	failures int
	resets   int
}

func (s *stubThrottle) Allow(_ context.Context, _ string) (bool, error) { return s.allowed, nil }
func (s *stubThrottle) RecordFailure(_ context.Context, _ string) error {
	s.failures++
	return nil
}
func (s *stubThrottle) Reset(_ context.Context, _ string) error {
	s.resets++
	return nil
}

func TestAuthService_Login_Throttled(t *testing.T) {
	repo := newStubUserRepo()
	throttle := &stubThrottle{allowed: false}
	svc := NewAuthService(repo, NewTokenManager("secret", time.Hour), throttle, zerolog.Nop())

	if _, _, err := svc.Login(context.Background(), "dave@x.com", "pw"); err != domain.ErrTooManyAttempts {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestAuthService_Login_ThrottleBookkeeping(t *testing.T) {
	repo := newStubUserRepo()
	throttle := &stubThrottle{allowed: true}
	svc := NewAuthService(repo, NewTokenManager("secret", time.Hour), throttle, zerolog.Nop())

	if _, _, err := svc.Register(context.Background(), "Erin", "erin@x.com", "pw"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, _, _ = svc.Login(context.Background(), "erin@x.com", "wrong")
	if throttle.failures != 1 {
		t.Fatalf("expected 1 recorded failure, got %d", throttle.failures)
	}

	if _, _, err := svc.Login(context.Background(), "erin@x.com", "pw"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if throttle.resets != 1 {
		t.Fatalf("expected throttle reset after success, got %d", throttle.resets)
	}
}

func TestAuthService_GetSelf(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	registered, _, err := svc.Register(context.Background(), "Frank", "frank@x.com", "pw")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, err := svc.GetSelf(context.Background(), registered.ID)
	if err != nil {
		t.Fatalf("GetSelf failed: %v", err)
	}
	if user.Email != "frank@x.com" {
		t.Fatalf("unexpected user: %+v", user)
	}

	if _, err := svc.GetSelf(context.Background(), "missing"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
