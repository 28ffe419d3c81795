package credentials

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/perchapp/cli/pkg/config"
)

func initTestConfig(t *testing.T) {
	t.Helper()
	if err := config.Init(filepath.Join(t.TempDir(), "config.toml")); err != nil {
		t.Fatalf("config init failed: %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	initTestConfig(t)

	in := &Credentials{
		AccessToken:     "token-abc",
		RefreshToken:    "refresh-xyz",
		ExpiresAt:       time.Now().Add(time.Hour).Round(time.Second),
		UserID:          "user-1",
		Username:        "finch",
		Email:           "finch@example.com",
		ProfileImageURL: "https://cdn.perch.app/img/finch.png",
	}

	if err := Save(in); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	out, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if out == nil {
		t.Fatal("Load returned nil after Save")
	}

	if out.AccessToken != in.AccessToken ||
		out.UserID != in.UserID ||
		out.ProfileImageURL != in.ProfileImageURL {
		t.Errorf("round trip mismatch: %+v", out)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	initTestConfig(t)

	creds, err := Load()
	if err != nil {
		t.Fatalf("Load should not error when credentials are absent: %v", err)
	}
	if creds != nil {
		t.Error("Load should return nil when credentials are absent")
	}
}

func TestDelete(t *testing.T) {
	initTestConfig(t)

	if err := Save(&Credentials{AccessToken: "t"}); err != nil {
		t.Fatal(err)
	}
	if err := Delete(); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	creds, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if creds != nil {
		t.Error("credentials should be gone after Delete")
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name  string
		creds Credentials
		want  bool
	}{
		{"valid", Credentials{AccessToken: "t", ExpiresAt: time.Now().Add(time.Hour)}, true},
		{"expired", Credentials{AccessToken: "t", ExpiresAt: time.Now().Add(-time.Hour)}, false},
		{"no token", Credentials{ExpiresAt: time.Now().Add(time.Hour)}, false},
	}

	for _, tt := range tests {
		if got := tt.creds.IsValid(); got != tt.want {
			t.Errorf("%s: IsValid() = %v, want %v", tt.name, got, tt.want)
		}
	}
}
