package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	GigaChat GigaChatConfig
	Pipeline PipelineConfig
	Client   ClientConfig
	Logger   LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type GigaChatConfig struct {
	APIKey             string
	Scope              string
	InsecureSkipVerify bool
}

// PipelineConfig selects the strategy set and carries the retrieval knobs.
// Mode is one of "lite" (keyword classifier, keyword resolver, rule
// reviewer), "semantic" (keyword classifier, embedding resolver, rule
// reviewer) or "full" (LLM classifier, generative resolver, LLM reviewer).
type PipelineConfig struct {
	Mode                string
	SimilarityThreshold float64
	TopK                int
	KBSource            string // "file" or "postgres"
	KBPath              string
}

// ClientConfig configures the degradation client.
type ClientConfig struct {
	RemoteURL     string
	RemoteTimeout time.Duration
}

func Load() (*Config, error) {
	// Try to load .env file from current directory or project root
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}
	// No .env file is fine, plain environment variables still apply
	// (useful for Docker/K8s).

	readTimeout := getIntEnv("SERVER_READ_TIMEOUT", 30)
	writeTimeout := getIntEnv("SERVER_WRITE_TIMEOUT", 30)
	remoteTimeout := getIntEnv("REMOTE_TIMEOUT_SECONDS", 5)
	topK := getIntEnv("RETRIEVAL_TOP_K", 3)
	threshold, err := strconv.ParseFloat(getEnv("SIMILARITY_THRESHOLD", "0.3"), 64)
	if err != nil {
		threshold = 0.3
	}
	insecureSkipVerify := getEnv("GIGACHAT_INSECURE_SKIP_VERIFY", "true") == "true"

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8000"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "supportdesk"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		GigaChat: GigaChatConfig{
			APIKey:             getEnv("GIGACHAT_API_KEY", ""),
			Scope:              getEnv("GIGACHAT_SCOPE", "GIGACHAT_API_PERS"),
			InsecureSkipVerify: insecureSkipVerify,
		},
		Pipeline: PipelineConfig{
			Mode:                getEnv("PIPELINE_MODE", "lite"),
			SimilarityThreshold: threshold,
			TopK:                topK,
			KBSource:            getEnv("KB_SOURCE", "file"),
			KBPath:              getEnv("KB_PATH", "knowledge_base/faq.json"),
		},
		Client: ClientConfig{
			RemoteURL:     getEnv("REMOTE_API_URL", "http://localhost:8000"),
			RemoteTimeout: time.Duration(remoteTimeout) * time.Second,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv falls back to defaultValue when the variable is unset or not a
// valid integer, so a typo in the environment never zeroes a knob.
func getIntEnv(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, strconv.Itoa(defaultValue)))
	if err != nil {
		return defaultValue
	}
	return value
}
