package configs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	MongoURI string
	DBName   string
	AppEnv   string
}

func LoadConfig() Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "library_management"
	}

	return Config{
		Port:     port,
		MongoURI: os.Getenv("MONGO_URI"),
		DBName:   dbName,
		AppEnv:   os.Getenv("APP_ENV"),
	}
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}
