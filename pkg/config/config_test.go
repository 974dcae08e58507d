package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
)

func init() {
	homedir.DisableCache = true
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("HOME", dir)
	t.Setenv("DIARY_CONFIG_PATH", "")
	for _, k := range []string{"DIARY_API_URL", "DIARY_API_TIMEOUT", "DIARY_STATE_PATH", "DIARY_LOG_LEVEL", "DIARY_LOG_FILE", "DIARY_SEARCH_DEBOUNCE"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	return dir
}

func TestDefaults(t *testing.T) {
	home := isolate(t)
	c, err := Load(Options{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.APIURL != DefaultAPIURL || c.Timeout != DefaultTimeout || c.Debounce != 500*time.Millisecond {
		t.Errorf("unexpected defaults %+v", c)
	}
	if c.StatePath != filepath.Join(home, ".diary") {
		t.Errorf("state path should expand ~, got %q", c.StatePath)
	}
	if c.LogLevel != "warn" || c.File != "" {
		t.Errorf("unexpected %+v", c)
	}
}

func TestFileEnvAndFlags(t *testing.T) {
	dir := isolate(t)
	yaml := "api:\n  url: https://diary.example/api\n  timeout: 3s\nsearch:\n  debounce: 250ms\n"
	if err := os.WriteFile(filepath.Join(dir, ".diary.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("DIARY_LOG_LEVEL=debug\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	fs := pflag.NewFlagSet("diary", pflag.ContinueOnError)
	fs.String("state", "", "")
	fs.String("api-url", "", "")
	if err := fs.Parse([]string{"--state", filepath.Join(dir, "state")}); err != nil {
		t.Fatal(err)
	}

	c, err := Load(Options{Flags: fs})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.APIURL != "https://diary.example/api" || c.Timeout != 3*time.Second || c.Debounce != 250*time.Millisecond {
		t.Errorf("file values not applied: %+v", c)
	}
	if c.LogLevel != "debug" {
		t.Errorf(".env value not applied: %q", c.LogLevel)
	}
	if c.StatePath != filepath.Join(dir, "state") {
		t.Errorf("flag not applied: %q", c.StatePath)
	}
	if filepath.Base(c.File) != ".diary.yaml" {
		t.Errorf("unexpected file %q", c.File)
	}
}

func TestValidate(t *testing.T) {
	c := &Config{APIURL: "/api", Timeout: time.Second, StatePath: "/tmp/x", LogLevel: "warn"}
	if err := c.Validate(); err == nil {
		t.Errorf("relative url should fail")
	}
	c.APIURL = "http://localhost:5000/api"
	c.LogLevel = "loud"
	if err := c.Validate(); err == nil {
		t.Errorf("unknown level should fail")
	}
	c.LogLevel = "info"
	if err := c.Validate(); err != nil {
		t.Errorf("unexpected error %v", err)
	}
}

func TestExplicitFileMustExist(t *testing.T) {
	isolate(t)
	if _, err := Load(Options{File: "missing.yaml"}); err == nil {
		t.Errorf("expected error for missing explicit file")
	}
}
