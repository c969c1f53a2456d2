package internal

import (
	"strings"
	"testing"
)

func TestAuthConfig_DisabledMode(t *testing.T) {
	cfg := AuthConfig{Mode: "disabled", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled mode should pass: %v", err)
	}
	if cfg.AuthEnabled() {
		t.Error("disabled mode should not be enabled")
	}
}

func TestAuthConfig_EmptyModeDefaultsDisabled(t *testing.T) {
	cfg := AuthConfig{Mode: "", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty mode should default to disabled: %v", err)
	}
	if cfg.Mode != AuthModeDisabled {
		t.Errorf("mode = %q, want %q", cfg.Mode, AuthModeDisabled)
	}
}

func TestAuthConfig_TokenModeValid(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: "mysecret"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("token mode with token should pass: %v", err)
	}
	if !cfg.AuthEnabled() {
		t.Error("token mode should be enabled")
	}
}

func TestAuthConfig_TokenModeEmptyToken(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: ""}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("token mode with empty token should fail")
	}
	if !strings.Contains(err.Error(), "token is empty") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAuthConfig_InvalidMode(t *testing.T) {
	cfg := AuthConfig{Mode: "magic", Token: "x"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("invalid mode should fail validation")
	}
}

func TestSourceConfig_EmptyModeDefaultsFS(t *testing.T) {
	cfg := SourceConfig{Mode: "", Path: "./content"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty mode should default to fs: %v", err)
	}
	if cfg.Mode != SourceModeFS {
		t.Errorf("mode = %q, want %q", cfg.Mode, SourceModeFS)
	}
}

func TestSourceConfig_FSModeRequiresPath(t *testing.T) {
	cfg := SourceConfig{Mode: "fs", Path: ""}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("fs mode with empty path should fail")
	}
	if !strings.Contains(err.Error(), "path is empty") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSourceConfig_RemoteModeRequiresEndpoint(t *testing.T) {
	cfg := SourceConfig{Mode: "remote", Endpoint: ""}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("remote mode with empty endpoint should fail")
	}

	cfg.Endpoint = "https://example.com/api/documents"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("remote mode with endpoint should pass: %v", err)
	}
}

func TestSourceConfig_InvalidMode(t *testing.T) {
	cfg := SourceConfig{Mode: "carrier-pigeon", Path: "./content"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("invalid mode should fail validation")
	}
}

func TestGraphConfig_ColumnsBounds(t *testing.T) {
	cfg := GraphConfig{Columns: 65}
	if err := cfg.Validate(); err == nil {
		t.Fatal("columns above max should fail")
	}
	cfg.Columns = 0
	if err := cfg.Validate(); err != nil {
		t.Fatalf("zero columns (builder default) should pass: %v", err)
	}
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.App.HTTP.Address() != ":8080" {
		t.Errorf("address = %q", cfg.App.HTTP.Address())
	}
}

func TestFullConfig_SectionValidationPropagates(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Auth.Mode = "token"
	cfg.Auth.Token = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("full config validate should catch auth error")
	}

	cfg = NewDefaultConfig()
	cfg.Source.Mode = "remote"
	if err := cfg.Validate(); err == nil {
		t.Fatal("full config validate should catch source error")
	}
}
