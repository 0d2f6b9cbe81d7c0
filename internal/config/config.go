package config

import (
	"os"
	"strconv"
)

// Config 应用配置
type Config struct {
	Port                string
	DBPath              string
	Fast2SMSAPIKey      string
	WhatsAppToken       string
	WhatsAppPhoneID     string
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	IngestRatePerMin    int // 每个 IP 每分钟的写入上限
}

// Load 加载配置
func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/safespot.db"
	}

	rate := 240
	if v := os.Getenv("INGEST_RATE_PER_MIN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			rate = n
		}
	}

	return &Config{
		Port:                port,
		DBPath:              dbPath,
		Fast2SMSAPIKey:      os.Getenv("FAST2SMS_API_KEY"),
		WhatsAppToken:       os.Getenv("WHATSAPP_TOKEN"),
		WhatsAppPhoneID:     os.Getenv("WHATSAPP_PHONE_NUMBER_ID"),
		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		IngestRatePerMin:    rate,
	}
}
