package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServiceName   string
	Port          string
	MongoURI      string
	MongoDatabase string

	SecretKey string

	EmailFrom string
	SMTPHost  string
	SMTPPass  string
	SMTPPort  int
	SMTPUser  string

	RedisHost string
	RedisPort string

	RecommendEngineURL string
	ChatbotEngineURL   string

	JaegerAddress string

	CasbinModelPath  string
	CasbinPolicyPath string
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		fmt.Println("couldn't load .env file, falling back to environment")
	}

	smtpPortStr := os.Getenv("SMTP_PORT")
	smtpPort, err := strconv.Atoi(smtpPortStr)
	if err != nil {
		smtpPort = 587
	}

	return &Config{
		ServiceName:        "carthatamaz-platform",
		Port:               getEnv("PORT", "8080"),
		MongoURI:           getEnv("MONGO_DB_URI", "mongodb://localhost:27017"),
		MongoDatabase:      getEnv("MONGO_DB_NAME", "CarthaTamaz"),
		SecretKey:          os.Getenv("SECRET_KEY"),
		EmailFrom:          getEnv("EMAIL_FROM", "carthatamaz@carthatamaz.com"),
		SMTPHost:           os.Getenv("SMTP_HOST"),
		SMTPPass:           os.Getenv("SMTP_PASS"),
		SMTPPort:           smtpPort,
		SMTPUser:           os.Getenv("SMTP_USER"),
		RedisHost:          getEnv("REDIS_HOST", "localhost"),
		RedisPort:          getEnv("REDIS_PORT", "6379"),
		RecommendEngineURL: getEnv("RECOMMEND_ENGINE_URL", "http://localhost:5000/recommend"),
		ChatbotEngineURL:   getEnv("CHATBOT_ENGINE_URL", "http://localhost:5001/recommend"),
		JaegerAddress:      os.Getenv("JAEGER_ADDRESS"),
		CasbinModelPath:    getEnv("CASBIN_MODEL_PATH", "rbac/model.conf"),
		CasbinPolicyPath:   getEnv("CASBIN_POLICY_PATH", "rbac/policy.csv"),
	}
}

func getEnv(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
