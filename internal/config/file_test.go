package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ytget/ai-generator/internal/generate"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		EnvConfigPath, EnvImageEndpoint, EnvVideoEndpoint, EnvRequestTimeout,
		EnvDownloadDir, EnvLanguage, EnvLogLevel, EnvLogFormat, EnvLogFile,
	} {
		t.Setenv(key, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Endpoints.Image != generate.DefaultImageEndpoint {
		t.Errorf("Expected default image endpoint, got %s", cfg.Endpoints.Image)
	}
	if cfg.Endpoints.Video != generate.DefaultVideoEndpoint {
		t.Errorf("Expected default video endpoint, got %s", cfg.Endpoints.Video)
	}
	if cfg.Timeout() != DefaultRequestTimeout {
		t.Errorf("Expected default timeout %v, got %v", DefaultRequestTimeout, cfg.Timeout())
	}
	if cfg.SafetyTolerance != generate.DefaultSafetyTolerance {
		t.Errorf("Expected safety tolerance %d, got %d", generate.DefaultSafetyTolerance, cfg.SafetyTolerance)
	}
	if cfg.DownloadDir == "" {
		t.Error("Download directory should not be empty")
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Endpoints.Image != generate.DefaultImageEndpoint {
		t.Errorf("Missing file should yield defaults, got %s", cfg.Endpoints.Image)
	}
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
endpoints:
  image: http://localhost:9000/image
  video: http://localhost:9000/video
safety_tolerance: 3
request_timeout: 45s
download_dir: /srv/assets
language: en
log:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Endpoints.Image != "http://localhost:9000/image" {
		t.Errorf("Unexpected image endpoint %s", cfg.Endpoints.Image)
	}
	if cfg.Endpoints.Video != "http://localhost:9000/video" {
		t.Errorf("Unexpected video endpoint %s", cfg.Endpoints.Video)
	}
	if cfg.SafetyTolerance != 3 {
		t.Errorf("Expected safety tolerance 3, got %d", cfg.SafetyTolerance)
	}
	if cfg.Timeout() != 45*time.Second {
		t.Errorf("Expected timeout 45s, got %v", cfg.Timeout())
	}
	if cfg.DownloadDir != "/srv/assets" {
		t.Errorf("Unexpected download dir %s", cfg.DownloadDir)
	}
	if cfg.Language != "en" {
		t.Errorf("Unexpected language %s", cfg.Language)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Unexpected log config %+v", cfg.Log)
	}

	endpoints := cfg.GenerateEndpoints()
	if endpoints.Image != cfg.Endpoints.Image || endpoints.Video != cfg.Endpoints.Video {
		t.Errorf("GenerateEndpoints mismatch: %+v", endpoints)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "language: pt\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Language != "pt" {
		t.Errorf("Expected language pt, got %s", cfg.Language)
	}
	if cfg.Endpoints.Video != generate.DefaultVideoEndpoint {
		t.Errorf("Video endpoint should keep default, got %s", cfg.Endpoints.Video)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "language: en\nrequest_timeout: 30s\n")

	t.Setenv(EnvImageEndpoint, "http://env/image")
	t.Setenv(EnvRequestTimeout, "120")
	t.Setenv(EnvLanguage, "ru")
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvDownloadDir, "/env/downloads")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Endpoints.Image != "http://env/image" {
		t.Errorf("Env image endpoint not applied: %s", cfg.Endpoints.Image)
	}
	if cfg.Timeout() != 2*time.Minute {
		t.Errorf("Env timeout not applied: %v", cfg.Timeout())
	}
	if cfg.Language != "ru" {
		t.Errorf("Env language not applied: %s", cfg.Language)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Env log level not applied: %s", cfg.Log.Level)
	}
	if cfg.DownloadDir != "/env/downloads" {
		t.Errorf("Env download dir not applied: %s", cfg.DownloadDir)
	}
}

func TestLoadConfigPathFromEnv(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "language: pt\n")
	t.Setenv(EnvConfigPath, path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Language != "pt" {
		t.Errorf("Expected config from %s, got language %s", EnvConfigPath, cfg.Language)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     string
		wantErr string
	}{
		{name: "invalid duration", content: "request_timeout: soon\n", wantErr: "invalid duration"},
		{name: "invalid yaml", content: "endpoints: [\n", wantErr: "parse config"},
		{name: "invalid env duration", content: "language: en\n", env: "later", wantErr: EnvRequestTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			if tt.env != "" {
				t.Setenv(EnvRequestTimeout, tt.env)
			}
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestClampTimeout(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want time.Duration
	}{
		{0, DefaultRequestTimeout},
		{time.Second, MinRequestTimeout},
		{time.Minute, time.Minute},
		{time.Hour, MaxRequestTimeout},
	}

	for _, tt := range tests {
		if got := ClampTimeout(tt.in); got != tt.want {
			t.Errorf("ClampTimeout(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Language = "pt"
	cfg.RequestTimeout = Duration(75 * time.Second)

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if loaded.Language != "pt" || loaded.Timeout() != 75*time.Second {
		t.Errorf("Saved config not restored: %+v", loaded)
	}
}

func TestWriteDefault(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	written, err := WriteDefault(path)
	if err != nil {
		t.Fatalf("WriteDefault() error = %v", err)
	}
	if written != path {
		t.Errorf("WriteDefault() path = %s, want %s", written, path)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Timeout() != DefaultRequestTimeout {
		t.Errorf("Timeout() = %v, want %v", cfg.Timeout(), DefaultRequestTimeout)
	}
	if cfg.Endpoints.Image != generate.DefaultImageEndpoint {
		t.Errorf("Expected default image endpoint, got %s", cfg.Endpoints.Image)
	}

	if err := os.WriteFile(path, []byte("language: pt\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := WriteDefault(path); !errors.Is(err, os.ErrExist) {
		t.Errorf("WriteDefault() over an existing file error = %v, want ErrExist", err)
	}
	if cfg, _ := Load(path); cfg.Language != "pt" {
		t.Errorf("existing config was overwritten, language = %s", cfg.Language)
	}
}
