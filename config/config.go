package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerHost      string
	ServerPort      string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	// Local recipe collection: a file path, s3://bucket/key, postgres:// or sqlite:// URL
	RecipesSource string
	AWSRegion     string

	// Recipe provider
	SpoonacularAPIKey  string `validate:"required"`
	SpoonacularBaseURL string `validate:"required,url"`
	SearchResultCount  int    `validate:"gte=1,lte=100"`
	BrowseResultCount  int    `validate:"gte=1,lte=100"`
	BrowseSource       string `validate:"oneof=local upstream"`
	UpstreamTimeout    time.Duration

	// Language model provider
	LLMProvider string `validate:"oneof=openai deepseek anthropic"`
	LLMAPIKey   string `validate:"required"`
	LLMModel    string
	LLMBaseURL  string `validate:"omitempty,url"`
	LLMTimeout  time.Duration

	CORSAllowedOrigins []string

	LogLevel string `validate:"oneof=debug info warn error"`
	LogJSON  bool
}

// Addr returns the listen address of the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// setDefaults registers the value used when neither a flag, the environment
// nor a config file sets a key
func setDefaults(v *viper.Viper, env Environment) {
	v.SetDefault("server_host", "")
	v.SetDefault("server_port", "8000")
	v.SetDefault("read_timeout", 15*time.Second)
	v.SetDefault("write_timeout", 60*time.Second)
	v.SetDefault("shutdown_timeout", 10*time.Second)
	v.SetDefault("recipes_source", "recipes.json")
	v.SetDefault("aws_region", "us-east-1")
	v.SetDefault("spoonacular_base_url", "https://api.spoonacular.com")
	v.SetDefault("search_result_count", 10)
	v.SetDefault("browse_result_count", 100)
	v.SetDefault("browse_source", "local")
	v.SetDefault("upstream_timeout", 10*time.Second)
	v.SetDefault("llm_provider", "openai")
	v.SetDefault("llm_timeout", 30*time.Second)
	v.SetDefault("cors_allowed_origins", "http://localhost:3000,http://localhost:5173")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_json", env.JSONLogs())
}

// LoadConfig creates a new Config from flags bound to v, the environment,
// an optional config file and Docker secrets
func LoadConfig(v *viper.Viper) (*Config, error) {
	if v == nil {
		v = viper.New()
	}
	env := GetEnvironment()

	if env.LoadsDotEnv() {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	setDefaults(v, env)
	v.AutomaticEnv()

	if cfgFile := v.GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", cfgFile, err)
		}
	}

	cfg := &Config{
		Environment:        env,
		ServerHost:         v.GetString("server_host"),
		ServerPort:         v.GetString("server_port"),
		ReadTimeout:        v.GetDuration("read_timeout"),
		WriteTimeout:       v.GetDuration("write_timeout"),
		ShutdownTimeout:    v.GetDuration("shutdown_timeout"),
		RecipesSource:      v.GetString("recipes_source"),
		AWSRegion:          v.GetString("aws_region"),
		SpoonacularAPIKey:  secretOrValue(v, "spoonacular_api_key"),
		SpoonacularBaseURL: strings.TrimRight(v.GetString("spoonacular_base_url"), "/"),
		SearchResultCount:  v.GetInt("search_result_count"),
		BrowseResultCount:  v.GetInt("browse_result_count"),
		BrowseSource:       strings.ToLower(v.GetString("browse_source")),
		UpstreamTimeout:    v.GetDuration("upstream_timeout"),
		LLMProvider:        strings.ToLower(v.GetString("llm_provider")),
		LLMAPIKey:          secretOrValue(v, "llm_api_key"),
		LLMModel:           v.GetString("llm_model"),
		LLMBaseURL:         v.GetString("llm_base_url"),
		LLMTimeout:         v.GetDuration("llm_timeout"),
		CORSAllowedOrigins: splitList(v.GetString("cors_allowed_origins")),
		LogLevel:           strings.ToLower(v.GetString("log_level")),
		LogJSON:            v.GetBool("log_json"),
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// secretOrValue returns the configured value for key, falling back to the
// file named by <KEY>_FILE and then to the Docker secret of the same name
func secretOrValue(v *viper.Viper, key string) string {
	if value := strings.TrimSpace(v.GetString(key)); value != "" {
		return value
	}
	if file := os.Getenv(strings.ToUpper(key) + "_FILE"); file != "" {
		if data, err := os.ReadFile(file); err == nil {
			return strings.TrimSpace(string(data))
		}
	}
	return readSecret(key)
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
