package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Editor   EditorConfig
	Topics   TopicConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string // empty disables event forwarding
	RedisURL           string // empty falls back to the in-memory cache
	JwtSecret          string // empty disables bearer auth on /notes
}

type DatabaseConfig struct {
	Connection string // empty falls back to the in-memory repository
}

// EditorConfig describes how an edit session reaches the notes store.
type EditorConfig struct {
	StoreBaseURL   string
	NoteId         string // empty means the session starts a new note
	StoreToken     string
	RequestTimeout time.Duration
	LogFilePath    string
}

type TopicConfig struct {
	NoteChanged string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.json"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
			JwtSecret:          getEnv("JWT_SECRET", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Editor: EditorConfig{
			StoreBaseURL:   getEnv("NOTE_STORE_URL", "http://localhost:3000"),
			NoteId:         getEnv("NOTE_ID", ""),
			StoreToken:     getEnv("NOTE_STORE_TOKEN", ""),
			RequestTimeout: time.Duration(getEnvAsInt("NOTE_STORE_TIMEOUT_SECONDS", 10)) * time.Second,
			LogFilePath:    getEnv("EDITOR_LOG_FILE_PATH", "editor.log.json"),
		},
		Topics: TopicConfig{
			NoteChanged: getEnv("NOTE_CHANGED_TOPIC_NAME", "NOTE_CHANGED"),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
