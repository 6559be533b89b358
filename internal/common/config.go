package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/taanjit/Invoice-extraction-html/constants"
)

// Config holds all application configuration. It is constructed once at
// process start and passed down; nothing re-reads the environment per call.
type Config struct {
	Render RenderConfig
	LLM    LLMConfig
	Output OutputConfig
}

// RenderConfig holds PDF rendering configuration.
type RenderConfig struct {
	Pdftotext    string // binary name or absolute path; if empty -> "pdftotext"
	Pdftoppm     string // binary name or absolute path; if empty -> "pdftoppm"
	DPI          int
	MinTextChars int
}

// LLMConfig holds inference-related configuration.
type LLMConfig struct {
	Model       string
	APIKey      string
	BaseURL     string
	Temperature float32
	Timeout     time.Duration
}

// OutputConfig holds report writer configuration.
type OutputConfig struct {
	Dir       string
	WriteHTML bool
	WriteXLSX bool
}

// modelConfigFile is the expected shape of config/model_config.yaml:
//
//	model:
//	  name: gpt-4o
type modelConfigFile struct {
	Model struct {
		Name string `yaml:"name"`
	} `yaml:"model"`
}

// LoadConfig loads configuration from a .env file (best effort), an optional
// model_config.yaml, and environment variables, in increasing precedence.
func LoadConfig(modelConfigPath string) *Config {
	// .env is optional; env vars already set win.
	_ = godotenv.Load()

	cfg := &Config{
		Render: RenderConfig{
			Pdftotext:    getEnv("PDFTOTEXT_BIN", "pdftotext"),
			Pdftoppm:     getEnv("PDFTOPPM_BIN", "pdftoppm"),
			DPI:          getEnvAsInt("RENDER_DPI", constants.DefaultDPI),
			MinTextChars: getEnvAsInt("MIN_TEXT_CHARS", constants.DefaultMinTextChars),
		},
		LLM: LLMConfig{
			Model:       getEnv("OPENAI_MODEL", ""),
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			BaseURL:     getEnv("OPENAI_BASE_URL", ""),
			Temperature: getEnvAsFloat32("OPENAI_TEMPERATURE", 0.1),
			Timeout:     getEnvAsDuration("OPENAI_TIMEOUT", 60*time.Second),
		},
		Output: OutputConfig{
			Dir: getEnv("OUTPUT_DIR", "."),
		},
	}

	if cfg.LLM.Model == "" {
		cfg.LLM.Model = modelFromYAML(modelConfigPath)
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "gpt-4o"
	}
	if cfg.Render.DPI > constants.MaxDPI {
		cfg.Render.DPI = constants.MaxDPI
	}
	return cfg
}

// modelFromYAML reads the model name from a YAML config file; empty on any
// failure so the caller's defaults apply.
func modelFromYAML(path string) string {
	if path == "" {
		return ""
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	var mc modelConfigFile
	if err := yaml.Unmarshal(raw, &mc); err != nil {
		return ""
	}
	return mc.Model.Name
}

// Validate enforces the run-level requirements before any document is touched.
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "OPENAI_API_KEY is required", ErrConfig)
	}
	if c.Render.DPI <= 0 {
		return NewAppError("CONFIG_ERROR", fmt.Sprintf("invalid render DPI: %d", c.Render.DPI), ErrConfig)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
