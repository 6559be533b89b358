package common

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL", "")
	t.Setenv("RENDER_DPI", "")
	t.Setenv("MIN_TEXT_CHARS", "")

	cfg := LoadConfig("")

	if cfg.LLM.Model != "gpt-4o" {
		t.Errorf("Model = %q, want default gpt-4o", cfg.LLM.Model)
	}
	if cfg.Render.DPI != 200 {
		t.Errorf("DPI = %d, want 200", cfg.Render.DPI)
	}
	if cfg.Render.MinTextChars != 100 {
		t.Errorf("MinTextChars = %d, want 100", cfg.Render.MinTextChars)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestLoadConfig_ModelFromYAML(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL", "")

	path := filepath.Join(t.TempDir(), "model_config.yaml")
	if err := os.WriteFile(path, []byte("model:\n  name: gpt-4.1-mini\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := LoadConfig(path)
	if cfg.LLM.Model != "gpt-4.1-mini" {
		t.Errorf("Model = %q, want gpt-4.1-mini", cfg.LLM.Model)
	}
}

func TestLoadConfig_EnvBeatsYAML(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL", "gpt-4o-mini")

	path := filepath.Join(t.TempDir(), "model_config.yaml")
	if err := os.WriteFile(path, []byte("model:\n  name: gpt-4.1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := LoadConfig(path)
	if cfg.LLM.Model != "gpt-4o-mini" {
		t.Errorf("Model = %q, want env override gpt-4o-mini", cfg.LLM.Model)
	}
}

func TestValidate_MissingAPIKeyIsFatal(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	cfg := LoadConfig("")
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected Validate() to fail without OPENAI_API_KEY")
	}
}

func TestLoadConfig_DPIClamped(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("RENDER_DPI", "600")

	cfg := LoadConfig("")
	if cfg.Render.DPI != 300 {
		t.Errorf("DPI = %d, want clamped 300", cfg.Render.DPI)
	}
}
