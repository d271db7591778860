package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/vamsha/pkg/errors"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvAPIKey, EnvAPIKeyFallback, EnvModel} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingDefaultFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	got, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/xdg", "vamsha", "config.toml"); got != want {
		t.Errorf("DefaultPath() = %q, want %q", got, want)
	}
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
language = "ta"

[text]
api_key = "file-key"

[render]
width = 1024
height = 768

[export]
dir = "/tmp/out"
quality = 90
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := Default()
	want.Path = path
	want.Language = "Tamil"
	want.Text.APIKey = "file-key"
	want.Render.Width, want.Render.Height = 1024, 768
	want.Export.Dir = "/tmp/out"
	want.Export.Quality = 90
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, "[text]\napi_key = \"file-key\"\nmodel = \"file-model\"\n")

	tests := []struct {
		name      string
		env       map[string]string
		wantKey   string
		wantModel string
	}{
		{"file only", nil, "file-key", "file-model"},
		{"gemini key", map[string]string{EnvAPIKey: "env-key"}, "env-key", "file-model"},
		{"fallback key", map[string]string{EnvAPIKeyFallback: "fallback"}, "fallback", "file-model"},
		{"gemini wins", map[string]string{EnvAPIKey: "g", EnvAPIKeyFallback: "a"}, "g", "file-model"},
		{"model", map[string]string{EnvModel: "other"}, "file-key", "other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := Load(path)
			if err != nil {
				t.Fatal(err)
			}
			if cfg.Text.APIKey != tt.wantKey || cfg.Text.Model != tt.wantModel {
				t.Errorf("text = %+v, want key %q model %q", cfg.Text, tt.wantKey, tt.wantModel)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		name string
		body string
		code errors.Code
	}{
		{"syntax", "language = ", errors.ErrCodeInvalidInput},
		{"unknown key", "colour = \"red\"", errors.ErrCodeInvalidInput},
		{"language", "language = \"Klingon\"", errors.ErrCodeInvalidLanguage},
		{"quality", "[export]\nquality = 0", errors.ErrCodeInvalidInput},
		{"zero padding", "[export]\npadding = 0.0", errors.ErrCodeInvalidInput},
		{"negative padding", "[export]\npadding = -5.5", errors.ErrCodeInvalidInput},
		{"size", "[render]\nwidth = -1", errors.ErrCodeInvalidInput},
		{"product", "[export]\nproduct = \"../x\"", errors.ErrCodeInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if !errors.Is(err, tt.code) {
				t.Errorf("Load() error = %v, want code %v", err, tt.code)
			}
		})
	}

	t.Run("explicit missing", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
		if !errors.Is(err, errors.ErrCodeFileNotFound) {
			t.Errorf("Load() error = %v", err)
		}
	})
}
