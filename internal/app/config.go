package app

import (
	"time"

	"github.com/oumacavin/smartlearn-backend/internal/platform/envutil"
	"github.com/oumacavin/smartlearn-backend/internal/platform/logger"
)

type Config struct {
	JWTSecretKey         string
	AccessTokenTTL       time.Duration
	DefaultAdminPassword string
	SeedPath             string
	Port                 string
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := envutil.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := envutil.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	defaultAdminPassword := envutil.GetEnv("DEFAULT_ADMIN_PASSWORD", "changeme", log)
	seedPath := envutil.GetEnv("SEED_PATH", "", log)
	port := envutil.GetEnv("PORT", "8080", log)
	return Config{
		JWTSecretKey:         jwtSecretKey,
		AccessTokenTTL:       time.Duration(accessTokenTTLSeconds) * time.Second,
		DefaultAdminPassword: defaultAdminPassword,
		SeedPath:             seedPath,
		Port:                 port,
	}
}
