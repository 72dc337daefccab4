package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/numerisys/document-system/internal/core/domain"
)

func TestUserService_List_ExcludesPasswordHash(t *testing.T) {
	repo := newStubUserRepo()
	if _, err := repo.Create(context.Background(), &domain.User{Name: "Alice", Email: "alice@x.com", PasswordHash: "hash"}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	svc := NewUserService(repo, zerolog.Nop())
	users, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(users))
	}
	if users[0].PasswordHash != "" {
		t.Fatalf("password hash leaked into listing")
	}
}

func TestUserService_Delete(t *testing.T) {
	repo := newStubUserRepo()
	created, err := repo.Create(context.Background(), &domain.User{Name: "Bob", Email: "bob@x.com"})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}

	svc := NewUserService(repo, zerolog.Nop())
	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := repo.FindByID(context.Background(), created.ID); err != domain.ErrUserNotFound {
		t.Fatalf("expected user gone, got %v", err)
	}
}

func TestUserService_Delete_NotFound(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), zerolog.Nop())
	if err := svc.Delete(context.Background(), "missing"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
