package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/apartmanager/internal/models"
)

func TestCredentialAuthenticator_Authenticate(t *testing.T) {
	a := NewCredentialAuthenticator(DefaultCredentials(), nil)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  bool
	}{
		{"exact match", "admin@apart.vn", "123456", false},
		{"wrong password", "admin@apart.vn", "1234567", true},
		{"wrong email", "Admin@apart.vn", "123456", true},
		{"empty", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := a.Authenticate(ctx, tt.email, tt.password)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidCredentials) {
					t.Errorf("expected ErrInvalidCredentials, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Authenticate: %v", err)
			}
			if user.ID != "admin" || user.Role != models.RoleAdmin {
				t.Errorf("unexpected account %+v", user)
			}
			if user.Password != "" {
				t.Error("returned account must not carry the password")
			}
		})
	}
}

func TestCredentialAuthenticator_BcryptHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	a := NewCredentialAuthenticator([]Credential{
		{ID: "ops", Email: "ops@apart.vn", Password: string(hash), Role: models.RoleAdmin},
	}, nil)

	if _, err := a.Authenticate(context.Background(), "ops@apart.vn", "s3cret"); err != nil {
		t.Errorf("expected bcrypt match, got %v", err)
	}
	if _, err := a.Authenticate(context.Background(), "ops@apart.vn", string(hash)); err == nil {
		t.Error("the hash itself must not be accepted as the password")
	}
}

func TestCredentialAuthenticator_Register(t *testing.T) {
	fixed := time.UnixMilli(1760600000123)
	a := NewCredentialAuthenticator(nil, func() time.Time { return fixed })

	user, err := a.Register(context.Background(), "lan.pham@gmail.com", "Phạm Thị Lan", "A-102")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.ID != "1760600000123" {
		t.Errorf("ID = %q, want timestamp", user.ID)
	}
	if user.Role != models.RoleResident || user.ApartmentID != "A-102" {
		t.Errorf("unexpected account %+v", user)
	}

	noName, _ := a.Register(context.Background(), "tuan.pham@gmail.com", "", "")
	if noName.Name != "tuan.pham" {
		t.Errorf("Name = %q, want local part of email", noName.Name)
	}

	if _, err := a.Register(context.Background(), "", "x", ""); !errors.Is(err, ErrMissingEmail) {
		t.Errorf("expected ErrMissingEmail, got %v", err)
	}
}

func TestCredentialAuthenticator_RegisterUniqueIDs(t *testing.T) {
	fixed := time.UnixMilli(1760600000123)
	tests := []struct {
		name string
		now  func() time.Time
	}{
		{"frozen clock", func() time.Time { return fixed }},
		{"real clock", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewCredentialAuthenticator(nil, tt.now)
			seen := make(map[string]bool)
			for i := 0; i < 50; i++ {
				user, err := a.Register(context.Background(), "r@apart.vn", "", "")
				if err != nil {
					t.Fatalf("Register: %v", err)
				}
				if seen[user.ID] {
					t.Fatalf("registration %d reused ID %s", i, user.ID)
				}
				seen[user.ID] = true
			}
		})
	}
}

func TestJWTManager(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	user := &models.UserAccount{ID: "admin", Email: "admin@apart.vn", Role: models.RoleAdmin}

	token, err := m.Generate(user)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if claims.UserID != "admin" || claims.Role != models.RoleAdmin {
		t.Errorf("unexpected claims %+v", claims)
	}

	other := NewJWTManager("other-secret", time.Hour)
	if _, err := other.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for wrong secret, got %v", err)
	}

	expired := NewJWTManager("test-secret", -time.Minute)
	old, _ := expired.Generate(user)
	if _, err := m.Validate(old); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}
