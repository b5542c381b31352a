package app

import (
	"strings"

	"github.com/buildvance/estimator-backend/internal/logger"
	"github.com/buildvance/estimator-backend/internal/utils"
)

type Config struct {
	JWTSecretKey string
	Port         string
	AllowOrigins []string
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	port := utils.GetEnv("PORT", "8080", log)
	origins := utils.GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000", log)
	return Config{
		JWTSecretKey: jwtSecretKey,
		Port:         port,
		AllowOrigins: strings.Split(origins, ","),
	}
}
