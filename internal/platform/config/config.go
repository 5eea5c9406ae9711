package config

import (
	"flag"
	"os"

	"github.com/joho/godotenv"
)

var portCmd = flag.Int("port", 3000, "HTTP server port")

type Config struct {
	ServerHost string
	ServerPort int
	DataFile   string
}

func LoadConfig() Config {
	godotenv.Load(".env")

	dataFile := os.Getenv("DATA_FILE")
	if dataFile == "" {
		dataFile = "zero.db"
	}

	return Config{
		ServerHost: os.Getenv("SERVER_HOST"),
		ServerPort: *portCmd,
		DataFile:   dataFile,
	}
}
