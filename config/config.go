package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	BaseURL     string
	DatabaseDSN string

	KafkaBroker   string
	KafkaTopic    string
	KafkaGroupID  string
	KafkaUsername string
	KafkaPassword string

	AccessSecret string

	// StaffDefaultPassword is only used when seeding the fixed staff
	// accounts on first boot.
	StaffDefaultPassword string

	// DefaultParentPhone is an optional override used when a student has no
	// parent phone number on file. Empty disables substitution: the pass is
	// still processed but no SMS is queued and parent_notified stays false.
	DefaultParentPhone string
}

func LoadConfig() Config {
	if os.Getenv("ENV") != "prod" {
		if err := godotenv.Overload(); err != nil {
			log.Println("Warning: .env not loaded:", err)
		}
	}

	return Config{
		ServerPort:  getenv("SERVER_PORT", ":3000"),
		BaseURL:     getenv("BASE_URL", "*"),
		DatabaseDSN: os.Getenv("DATABASE_DSN"),

		KafkaBroker:   os.Getenv("KAFKA_BROKER"),
		KafkaTopic:    getenv("KAFKA_TOPIC", "gatepass.events"),
		KafkaGroupID:  getenv("KAFKA_GROUP_ID", "gatepass-sms"),
		KafkaUsername: os.Getenv("KAFKA_USERNAME"),
		KafkaPassword: os.Getenv("KAFKA_PASSWORD"),

		AccessSecret:         os.Getenv("ACCESS_SECRET"),
		StaffDefaultPassword: getenv("STAFF_DEFAULT_PASSWORD", "changeme"),

		DefaultParentPhone: os.Getenv("DEFAULT_PARENT_PHONE"),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
