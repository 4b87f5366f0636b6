package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRequireEnv(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		value     string
		shouldSet bool
		wantPanic bool
	}{
		{
			name:      "variable set",
			key:       "TEST_VAR",
			value:     "test_value",
			shouldSet: true,
			wantPanic: false,
		},
		{
			name:      "variable not set",
			key:       "TEST_VAR_MISSING",
			shouldSet: false,
			wantPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.shouldSet {
				if err := os.Setenv(tt.key, tt.value); err != nil {
					t.Fatalf("failed to set env var: %v", err)
				}
				defer func() {
					if err := os.Unsetenv(tt.key); err != nil {
						t.Errorf("failed to unset env var: %v", err)
					}
				}()
			}

			if tt.wantPanic {
				defer func() {
					if r := recover(); r == nil {
						t.Errorf("requireEnv() should have panicked")
					}
				}()
			}

			result := requireEnv(tt.key)
			if !tt.wantPanic && result != tt.value {
				t.Errorf("requireEnv() = %v, want %v", result, tt.value)
			}
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected []string
	}{
		{
			name:     "single value",
			value:    "alice",
			expected: []string{"alice"},
		},
		{
			name:     "multiple values",
			value:    "alice, bob ,carol",
			expected: []string{"alice", "bob", "carol"},
		},
		{
			name:     "quotes and blanks",
			value:    `"alice", , 'bob'`,
			expected: []string{"alice", "bob"},
		},
		{
			name:     "empty",
			value:    "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := splitAndTrim(tt.value)
			if len(result) != len(tt.expected) {
				t.Fatalf("splitAndTrim() length = %v, want %v", len(result), len(tt.expected))
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("splitAndTrim()[%d] = %v, want %v", i, result[i], tt.expected[i])
				}
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("TOOLSHELF_JWT_SECRET", "s3cret")
	t.Setenv("TOOLSHELF_BOOTSTRAP_ADMINS", "alice, bob")
	t.Setenv("TOOLSHELF_REDIS_ADDR", "")
	t.Setenv("TOOLSHELF_RATE_BURST", "5")
	t.Setenv("TOOLSHELF_LOG_LEVEL", "warn")
	t.Setenv("TOOLSHELF_JWT_LEEWAY", "")

	cfg := Load()

	if cfg.JWTSecret != "s3cret" {
		t.Errorf("JWTSecret = %q", cfg.JWTSecret)
	}
	if len(cfg.BootstrapAdmins) != 2 || cfg.BootstrapAdmins[1] != "bob" {
		t.Errorf("BootstrapAdmins = %v", cfg.BootstrapAdmins)
	}
	if cfg.PersistenceEnabled() {
		t.Error("PersistenceEnabled() = true without TOOLSHELF_REDIS_ADDR")
	}
	if cfg.RateBurst != 5 {
		t.Errorf("RateBurst = %d, want 5", cfg.RateBurst)
	}
	if cfg.ListenPort != ":8080" {
		t.Errorf("ListenPort = %q, want default", cfg.ListenPort)
	}
	if cfg.SeedReload != 0 {
		t.Errorf("SeedReload = %v, want periodic reload disabled", cfg.SeedReload)
	}
	if cfg.CheckpointInterval != time.Hour {
		t.Errorf("CheckpointInterval = %v, want 1h", cfg.CheckpointInterval)
	}
	if cfg.JWTLeeway != 30*time.Second {
		t.Errorf("JWTLeeway = %v, want 30s", cfg.JWTLeeway)
	}
	t.Setenv("TOOLSHELF_JWT_LEEWAY", "2m")
	if got := Load().JWTLeeway; got != 2*time.Minute {
		t.Errorf("JWTLeeway = %v, want 2m", got)
	}
	if got := cfg.Redacted().JWTSecret; got == "s3cret" {
		t.Error("Redacted() leaks the jwt secret")
	}
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("TOOLSHELF_JWT_SECRET", "")

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Load() should have panicked")
		}
	}()
	Load()
}

func TestLoadRedisPasswordRequired(t *testing.T) {
	t.Setenv("TOOLSHELF_JWT_SECRET", "s3cret")
	t.Setenv("TOOLSHELF_REDIS_ADDR", "localhost:6379")
	t.Setenv("TOOLSHELF_REDIS_PASSWORD_REQUIRED", "true")
	t.Setenv("TOOLSHELF_REDIS_PASSWORD", "")

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Load() should have panicked")
		}
	}()
	Load()
}

func TestLoadDotenv(t *testing.T) {
	if err := LoadDotenv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("LoadDotenv() on a missing file = %v, want nil", err)
	}

	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("TOOLSHELF_TEST_DOTENV=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TOOLSHELF_TEST_DOTENV", "")
	if err := os.Unsetenv("TOOLSHELF_TEST_DOTENV"); err != nil {
		t.Fatal(err)
	}

	if err := LoadDotenv(path); err != nil {
		t.Fatalf("LoadDotenv() = %v", err)
	}
	if got := os.Getenv("TOOLSHELF_TEST_DOTENV"); got != "from-file" {
		t.Errorf("TOOLSHELF_TEST_DOTENV = %q, want from-file", got)
	}
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      time.Duration
		expected time.Duration
	}{
		{
			name:     "valid duration",
			key:      "TEST_DURATION",
			value:    "5s",
			def:      1 * time.Second,
			expected: 5 * time.Second,
		},
		{
			name:     "invalid duration uses default",
			key:      "TEST_DURATION_INVALID",
			value:    "invalid",
			def:      10 * time.Second,
			expected: 10 * time.Second,
		},
		{
			name:     "missing variable uses default",
			key:      "TEST_DURATION_MISSING",
			value:    "",
			def:      15 * time.Second,
			expected: 15 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				if err := os.Setenv(tt.key, tt.value); err != nil {
					t.Fatalf("failed to set env var: %v", err)
				}
				defer func() {
					if err := os.Unsetenv(tt.key); err != nil {
						t.Errorf("failed to unset env var: %v", err)
					}
				}()
			}

			result := mustDuration(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("mustDuration() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestMustBool(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      bool
		expected bool
	}{
		{
			name:     "true value",
			key:      "TEST_BOOL",
			value:    "true",
			def:      false,
			expected: true,
		},
		{
			name:     "false value",
			key:      "TEST_BOOL_FALSE",
			value:    "false",
			def:      true,
			expected: false,
		},
		{
			name:     "invalid value uses default",
			key:      "TEST_BOOL_INVALID",
			value:    "invalid",
			def:      true,
			expected: true,
		},
		{
			name:     "missing variable uses default",
			key:      "TEST_BOOL_MISSING",
			value:    "",
			def:      false,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				if err := os.Setenv(tt.key, tt.value); err != nil {
					t.Fatalf("failed to set env var: %v", err)
				}
				defer func() {
					if err := os.Unsetenv(tt.key); err != nil {
						t.Errorf("failed to unset env var: %v", err)
					}
				}()
			}

			result := mustBool(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("mustBool() = %v, want %v", result, tt.expected)
			}
		})
	}
}
