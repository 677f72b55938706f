package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays Config with values from the environment. Variables are
// typically injected by the deployment or read from a .env file loaded at
// startup. Unset or unparsable variables leave the current value in place.
func parseEnv(config *Config) {
	setString := func(name string, dst *string) {
		if v, ok := os.LookupEnv(name); ok && v != "" {
			*dst = v
		}
	}

	setString("ENDPOINT_ADDR_HTTP", &config.EndpointAddrHTTP)
	setString("DATABASE_DSN", &config.DatabaseDSN)
	setString("SECRET_KEY", &config.SecretKey)
	setString("LOG_FORMAT", &config.LogFormat)
	setString("S3_ROOT_USER", &config.S3RootUser)
	setString("S3_ROOT_PASSWORD", &config.S3RootPassword)
	setString("S3_BUCKET", &config.S3Bucket)
	setString("S3_REGION", &config.S3Region)
	setString("S3_BASE_ENDPOINT", &config.S3BaseEndpoint)

	if v, ok := os.LookupEnv("ACCESS_TOKEN_VALIDITY_DURATION"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.AccessTokenValidityDuration = d
		}
	}
	if v, ok := os.LookupEnv("MAX_UPLOAD_BYTES"); ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.MaxUploadBytes = n
		}
	}
}
