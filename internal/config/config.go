package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Port string `mapstructure:"port"`
		Env  string `mapstructure:"env"`
	} `mapstructure:"app"`
	GitHub struct {
		Token     string        `mapstructure:"token"`
		APIBase   string        `mapstructure:"api_base"`
		RepoLimit int           `mapstructure:"repo_limit"`
		Timeout   time.Duration `mapstructure:"timeout"`
	} `mapstructure:"github"`
	Groq struct {
		APIKey  string `mapstructure:"api_key"`
		APIBase string `mapstructure:"api_base"`
		Model   string `mapstructure:"model"`
	} `mapstructure:"groq"`
	Roast struct {
		WordLimit   int     `mapstructure:"word_limit"`
		MaxTokens   int     `mapstructure:"max_tokens"`
		Temperature float64 `mapstructure:"temperature"`
	} `mapstructure:"roast"`
	Cache struct {
		TTL         time.Duration `mapstructure:"ttl"`
		MaxSessions int           `mapstructure:"max_sessions"`
	} `mapstructure:"cache"`
}

func LoadConfig(paths ...string) (cfg Config, err error) {

	if err = godotenv.Load(); err != nil {
		log.Println("warning: .env file not found, use environment only.")
	}

	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, p := range paths {
		viper.AddConfigPath(p)
	}
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if err = viper.ReadInConfig(); err != nil {
		log.Printf("note: config.yaml not found, read env only. Error: %v", err)
	}

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("app.port", "8080")
	viper.SetDefault("app.env", "development")
	viper.SetDefault("github.api_base", "https://api.github.com")
	viper.SetDefault("github.repo_limit", 100)
	viper.SetDefault("github.timeout", 10*time.Second)
	viper.SetDefault("groq.api_base", "https://api.groq.com/openai/v1")
	viper.SetDefault("groq.model", "llama-3.1-8b-instant")
	viper.SetDefault("roast.word_limit", 100)
	viper.SetDefault("roast.max_tokens", 500)
	viper.SetDefault("roast.temperature", 0.9)
	viper.SetDefault("cache.ttl", 300*time.Second)
	viper.SetDefault("cache.max_sessions", 1024)

	viper.BindEnv("app.port", "APP_PORT")
	viper.BindEnv("app.env", "APP_ENV")
	viper.BindEnv("github.token", "GITHUB_TOKEN")
	viper.BindEnv("github.api_base", "GITHUB_API_BASE")
	viper.BindEnv("github.repo_limit", "GITHUB_REPO_LIMIT")
	viper.BindEnv("github.timeout", "GITHUB_TIMEOUT")
	viper.BindEnv("groq.api_key", "GROQ_API_KEY")
	viper.BindEnv("groq.api_base", "GROQ_API_BASE")
	viper.BindEnv("groq.model", "GROQ_MODEL")
	viper.BindEnv("roast.word_limit", "ROAST_WORD_LIMIT")
	viper.BindEnv("roast.max_tokens", "ROAST_MAX_TOKENS")
	viper.BindEnv("roast.temperature", "ROAST_TEMPERATURE")
	viper.BindEnv("cache.ttl", "CACHE_TTL")
	viper.BindEnv("cache.max_sessions", "CACHE_MAX_SESSIONS")

	err = viper.Unmarshal(&cfg)
	return
}
