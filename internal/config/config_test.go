package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(Default(), *cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeFile(t, dir, "urlpicker.yaml", `
listen: ":9090"
home_url: https://example.com
log:
  level: debug
  pretty: false
store:
  driver: redis
  redis:
    addr: redis:6379
    password: secret
    db: 2
    connect_timeout: 45s
dialog:
  load_timeout: 3s
labels:
  select_link: Choisir un lien
translations:
  fr:
    urlpicker.remove: Retirer le lien
`)
	t.Setenv("URLPICKER_LISTEN", ":7070")
	t.Setenv("URLPICKER_REDIS_DB", "5")
	t.Setenv("URLPICKER_DIALOG_LOAD_TIMEOUT", "not-a-duration")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Listen != ":7070" {
		t.Fatalf("env must override file listen, got %q", cfg.Listen)
	}
	if cfg.Store.Redis.DB != 5 || cfg.Store.Redis.Addr != "redis:6379" {
		t.Fatalf("unexpected redis config %+v", cfg.Store.Redis)
	}
	if cfg.Store.Redis.ConnectTimeout != 45*time.Second {
		t.Fatalf("unexpected connect timeout %s", cfg.Store.Redis.ConnectTimeout)
	}
	if cfg.Dialog.LoadTimeout != 3*time.Second {
		t.Fatalf("invalid env duration must keep file value, got %s", cfg.Dialog.LoadTimeout)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Pretty {
		t.Fatalf("unexpected log config %+v", cfg.Log)
	}
	want := LabelsConfig{SelectLink: "Choisir un lien", RemoveLink: "Remove link"}
	if diff := cmp.Diff(want, cfg.Labels); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
	if cfg.Translations["fr"]["urlpicker.remove"] != "Retirer le lien" {
		t.Fatalf("translations not parsed: %#v", cfg.Translations)
	}
	if cfg.Redacted().Store.Redis.Password == "secret" {
		t.Fatalf("Redacted must hide the redis password")
	}
	if cfg.Store.Redis.Password != "secret" {
		t.Fatalf("Redacted must not mutate the original")
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, dir, ".env", "URLPICKER_HOME_URL=https://dotenv.example\n")
	t.Cleanup(func() { _ = os.Unsetenv("URLPICKER_HOME_URL") })

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HomeURL != "https://dotenv.example" {
		t.Fatalf("expected home url from .env, got %q", cfg.HomeURL)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "unknown driver", content: "store:\n  driver: sqlite\n", want: "unknown store driver"},
		{name: "redis without addr", content: "store:\n  driver: redis\n  redis:\n    addr: \"\"\n", want: "store.redis.addr"},
		{name: "zero load timeout", content: "dialog:\n  load_timeout: 0s\n", want: "load_timeout"},
		{name: "malformed yaml", content: "listen: [", want: "config: parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, "cfg.yaml", tt.content)
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("URLPICKER_TEST_BOOL", "false")
	t.Setenv("URLPICKER_TEST_INT", "nope")

	if mustBool("TEST_BOOL", true) {
		t.Errorf("mustBool should parse false")
	}
	if got := getenvInt("TEST_INT", 7); got != 7 {
		t.Errorf("getenvInt() = %d, want default 7", got)
	}
	if got := getenv("TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("getenv() = %q, want fallback", got)
	}
}
