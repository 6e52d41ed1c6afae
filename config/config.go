package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const DefaultConfigFile = "./config/config.yaml"

const (
	ProviderLocal  = "local"
	ProviderHosted = "hosted"

	OutputModeText = "text"
	OutputModeJSON = "json"
)

type Recommender struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	RestaurantsURL string `mapstructure:"restaurantsURL"`
	UseRestaurants bool   `mapstructure:"useRestaurants"`
	OutputMode     string `mapstructure:"outputMode"`
}

func (r *Recommender) Address() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type Restaurants struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	DataFile string `mapstructure:"dataFile"`
}

func (r *Restaurants) Address() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type LLM struct {
	Provider    string  `mapstructure:"provider"`
	MaxTokens   int     `mapstructure:"maxTokens"`
	Temperature float64 `mapstructure:"temperature"`
	Workers     int     `mapstructure:"workers"`
	QueueSize   int     `mapstructure:"queueSize"`
}

type Ollama struct {
	Host  string `mapstructure:"host"`
	Port  string `mapstructure:"port"`
	Model string `mapstructure:"model"`
}

func (o *Ollama) Address() string {
	return fmt.Sprintf("http://%s:%s", o.Host, o.Port)
}

type OpenAI struct {
	APIKey  string `mapstructure:"apiKey"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"baseURL"`
}

type Config struct {
	Recommender Recommender `mapstructure:"recommender"`
	Restaurants Restaurants `mapstructure:"restaurants"`
	LLM         LLM         `mapstructure:"llm"`
	Ollama      Ollama      `mapstructure:"ollama"`
	OpenAI      OpenAI      `mapstructure:"openai"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("recommender.host", "127.0.0.1")
	v.SetDefault("recommender.port", 8000)
	v.SetDefault("recommender.restaurantsURL", "http://127.0.0.1:8002")
	v.SetDefault("recommender.useRestaurants", true)
	v.SetDefault("recommender.outputMode", OutputModeText)

	v.SetDefault("restaurants.host", "127.0.0.1")
	v.SetDefault("restaurants.port", 8002)
	v.SetDefault("restaurants.dataFile", "./data/export.geojson")

	v.SetDefault("llm.provider", ProviderLocal)
	v.SetDefault("llm.maxTokens", 200)
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.workers", 3)
	v.SetDefault("llm.queueSize", 100)

	v.SetDefault("ollama.host", "127.0.0.1")
	v.SetDefault("ollama.port", "11434")
	v.SetDefault("ollama.model", "llama3.2")

	v.SetDefault("openai.apiKey", "")
	v.SetDefault("openai.model", "gpt-4o")
	v.SetDefault("openai.baseURL", "")
}

// Load reads the config file at path, layered over built-in defaults and
// overridden by environment variables (llm.provider -> LLM_PROVIDER).
// A missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if err := v.BindEnv("openai.apiKey", "OPENAI_API_KEY"); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		slog.Warn("config file not found, using defaults and environment", "path", path)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderLocal, ProviderHosted:
	default:
		return fmt.Errorf("unknown llm provider %q", c.LLM.Provider)
	}

	switch c.Recommender.OutputMode {
	case OutputModeText, OutputModeJSON:
	default:
		return fmt.Errorf("unknown output mode %q", c.Recommender.OutputMode)
	}

	if c.LLM.MaxTokens < 1 {
		return fmt.Errorf("llm maxTokens must be positive, got %d", c.LLM.MaxTokens)
	}

	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("llm temperature must be between 0 and 2, got %g", c.LLM.Temperature)
	}

	return nil
}

// LoadConfig loads .env into the environment, then the config file named by
// CONFIG_FILE (or DefaultConfigFile). Any failure is fatal.
func LoadConfig() *Config {
	// .env is optional
	_ = godotenv.Load()

	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = DefaultConfigFile
	}

	config, err := Load(path)
	if err != nil {
		log.Fatal(err)
	}

	return config
}
