// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseFlags_EnvVars(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("SECRET_KEY", "test-secret")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != DatabasePostgres {
		t.Errorf("expected postgres, got %s", cfg.DatabaseType)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.test" {
		t.Errorf("unexpected CORS origins %v", cfg.CORSOrigins)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("SECRET_KEY", "")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-secret", "s1"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.SecretKey != "s1" {
		t.Errorf("expected secret from flag, got %q", cfg.SecretKey)
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATABASE_TYPE", "")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("SECRET_KEY", "k")

	cfg, err := ParseFlags(nil)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 8001 {
		t.Errorf("expected default port 8001, got %d", cfg.Port)
	}
	if cfg.DatabaseType != DatabaseSQLite || cfg.DatabaseURL != "agroconnect.db" {
		t.Errorf("expected sqlite default, got %s %s", cfg.DatabaseType, cfg.DatabaseURL)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("expected wildcard CORS, got %v", cfg.CORSOrigins)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"missing secret", map[string]string{"SECRET_KEY": ""}, nil},
		{"bad port", map[string]string{"PORT": "abc", "SECRET_KEY": "k"}, nil},
		{"postgres without url", map[string]string{"DATABASE_URL": "", "SECRET_KEY": "k"}, []string{"-t", "postgres"}},
		{"unknown database type", map[string]string{"SECRET_KEY": "k"}, []string{"-t", "mongo"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PORT", "")
			t.Setenv("DATABASE_URL", "")
			t.Setenv("DATABASE_TYPE", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("AGRO_TEST_LOADED=yes\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("AGRO_TEST_LOADED", "")
	os.Unsetenv("AGRO_TEST_LOADED")

	if err := LoadEnv(filepath.Join(dir, "missing.env"), path); err != nil {
		t.Fatal(err)
	}
	if got := os.Getenv("AGRO_TEST_LOADED"); got != "yes" {
		t.Errorf("expected AGRO_TEST_LOADED=yes, got %q", got)
	}
}

func TestClientFromEnv(t *testing.T) {
	t.Setenv("AGROCONNECT_BACKEND_URL", "http://example.test/")
	t.Setenv("AGROCONNECT_SESSION_FILE", "/tmp/agro-session.json")
	t.Setenv("AGROCONNECT_TIMEOUT", "5s")

	cfg, err := ClientFromEnv()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.BackendURL != "http://example.test" {
		t.Errorf("expected trailing slash trimmed, got %s", cfg.BackendURL)
	}
	if cfg.SessionFile != "/tmp/agro-session.json" {
		t.Errorf("unexpected session file %s", cfg.SessionFile)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %v", cfg.Timeout)
	}
}

func TestClientFromEnv_BadTimeout(t *testing.T) {
	t.Setenv("AGROCONNECT_SESSION_FILE", "/tmp/x.json")
	t.Setenv("AGROCONNECT_TIMEOUT", "soon")

	if _, err := ClientFromEnv(); err == nil {
		t.Error("expected error for bad timeout")
	}
}
