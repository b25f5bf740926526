package config

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	MongoURI       string
	AuthServiceURL string
	AuthAPIKey     string
	AllowedOrigin  string
	JaegerAddress  string
	ServiceName    string
}

// LoadConfig reads the environment, decoding the base64 identity-service
// credential bundle into the API key sent with every verification request.
func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		fmt.Println("no .env file found, reading environment directly")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	authKey := ""
	if bundle := os.Getenv("AUTH_SERVICE_CREDENTIALS"); bundle != "" {
		decoded, err := base64.StdEncoding.DecodeString(bundle)
		if err != nil {
			fmt.Printf("couldn't decode AUTH_SERVICE_CREDENTIALS: %v\n", err)
		} else {
			authKey = string(decoded)
		}
	}

	return &Config{
		Port:           port,
		MongoURI:       os.Getenv("MONGO_DB_URI"),
		AuthServiceURL: os.Getenv("AUTH_SERVICE_URL"),
		AuthAPIKey:     authKey,
		AllowedOrigin:  os.Getenv("ALLOWED_ORIGIN"),
		JaegerAddress:  os.Getenv("JAEGER_ADDRESS"),
		ServiceName:    "hotel-booking-server",
	}
}
