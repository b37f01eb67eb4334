package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig_Validate_Success(t *testing.T) {
	cfg := &Config{
		Server: ServerConfig{
			APIKey: "test-api-key",
		},
		Resolver: ResolverConfig{
			SyndicationURL: "https://cdn.syndication.twimg.com",
		},
		History: HistoryConfig{
			Path: "xresolve.db",
		},
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() should pass, got %v", err)
	}
}

func TestConfig_Validate_MissingAPIKey(t *testing.T) {
	cfg := &Config{
		Resolver: ResolverConfig{
			SyndicationURL: "https://cdn.syndication.twimg.com",
		},
		History: HistoryConfig{
			Path: "xresolve.db",
		},
	}

	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail for missing API_KEY")
	}
}

func TestConfig_Validate_MissingSyndicationURL(t *testing.T) {
	cfg := &Config{
		Server: ServerConfig{
			APIKey: "test-api-key",
		},
		History: HistoryConfig{
			Path: "xresolve.db",
		},
	}

	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail for missing SYNDICATION_URL")
	}
}

func TestServerConfig_Address(t *testing.T) {
	tests := []struct {
		name string
		cfg  ServerConfig
		want string
	}{
		{
			name: "default",
			cfg:  ServerConfig{Host: "0.0.0.0", Port: 9848},
			want: "0.0.0.0:9848",
		},
		{
			name: "localhost",
			cfg:  ServerConfig{Host: "localhost", Port: 8080},
			want: "localhost:8080",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.Address(); got != tt.want {
				t.Errorf("Address() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoad_FromYAMLFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	// envconfig.Process applies defaults even when YAML is loaded, so
	// fields with defaults are tested via env; the YAML file carries the
	// values without defaults (the API key).
	t.Setenv("SERVER_HOST", "localhost")
	t.Setenv("SERVER_PORT", "8080")

	yamlContent := `
server:
  api_key: "yaml-api-key"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Host != "localhost" {
		t.Errorf("Host = %q, want %q", cfg.Server.Host, "localhost")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want %d", cfg.Server.Port, 8080)
	}
	if cfg.Server.APIKey != "yaml-api-key" {
		t.Errorf("APIKey = %q, want %q", cfg.Server.APIKey, "yaml-api-key")
	}
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
server:
  api_key: "yaml-api-key"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Setenv("API_KEY", "env-api-key")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.APIKey != "env-api-key" {
		t.Errorf("APIKey should be from env, got %q", cfg.Server.APIKey)
	}
}

func TestLoad_EnvOnly(t *testing.T) {
	t.Setenv("API_KEY", "test-api-key")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.APIKey != "test-api-key" {
		t.Errorf("APIKey = %q, want %q", cfg.Server.APIKey, "test-api-key")
	}
	if cfg.Resolver.SyndicationURL != "https://cdn.syndication.twimg.com" {
		t.Errorf("SyndicationURL default not applied, got %q", cfg.Resolver.SyndicationURL)
	}
	if cfg.Worker.Count != 2 {
		t.Errorf("Worker.Count default = %d, want 2", cfg.Worker.Count)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	invalidYAML := `
server:
  host: "localhost
  port: 8080
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	if _, err := Load(configPath); err == nil {
		t.Error("Load should fail for invalid YAML")
	}
}

func TestLoad_NonexistentFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("Load should fail for nonexistent file")
	}
}

func TestLoad_ValidationFailure(t *testing.T) {
	t.Setenv("API_KEY", "")

	if _, err := Load(""); err == nil {
		t.Error("Load should fail validation without an API key")
	}
}
