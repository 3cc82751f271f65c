package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	user, err := NewUser("  Test@Example.com ", "password123")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if user.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}
	if user.Email != "test@example.com" {
		t.Errorf("Expected normalized email, got %s", user.Email)
	}
	if user.CreatedAt.IsZero() || user.UpdatedAt.IsZero() {
		t.Error("Expected timestamps to be set")
	}

	tests := []struct {
		email    string
		password string
		want     error
	}{
		{"", "password123", ErrEmptyEmail},
		{"invalidemail", "password123", ErrInvalidEmail},
		{"a@b", "password123", ErrInvalidEmail},
		{"a@@b.com", "password123", ErrInvalidEmail},
		{"user@example.com", "", ErrEmptyPassword},
		{"user@example.com", "short", ErrPasswordTooShort},
		{"user@example.com", strings.Repeat("p", 73), ErrPasswordTooLong},
	}
	for _, tt := range tests {
		if _, err := NewUser(tt.email, tt.password); err != tt.want {
			t.Errorf("NewUser(%q, len %d) = %v, want %v", tt.email, len(tt.password), err, tt.want)
		}
	}
}

func TestUserValidateHashedOnly(t *testing.T) {
	t.Parallel()

	u := &User{ID: uuid.New(), Email: "user@example.com", HashedPassword: "$2a$10$hash"}
	if err := u.Validate(); err != nil {
		t.Errorf("stored user should validate, got %v", err)
	}

	u.HashedPassword = ""
	if err := u.Validate(); err != ErrEmptyPassword {
		t.Errorf("expected ErrEmptyPassword, got %v", err)
	}

	u.ID = uuid.Nil
	if err := u.Validate(); err != ErrEmptyUserID {
		t.Errorf("expected ErrEmptyUserID, got %v", err)
	}
}
