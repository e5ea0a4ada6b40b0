package auth

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config carries the signing secret and token lifetimes. It is built once at
// process start and injected into the token codec; there is no package-level
// state.
type Config struct {
	SecretKey  string
	Algorithm  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// ConfigFromEnv reads the auth configuration. Every variable is required;
// a missing or malformed value is a startup failure.
func ConfigFromEnv() (Config, error) {
	secret := os.Getenv("SECRET_KEY")
	if secret == "" {
		return Config{}, fmt.Errorf("SECRET_KEY is required")
	}
	alg := os.Getenv("ALGORITHM")
	if alg == "" {
		return Config{}, fmt.Errorf("ALGORITHM is required")
	}
	accessMin, err := requiredInt("ACCESS_TOKEN_EXPIRE_MINUTES")
	if err != nil {
		return Config{}, err
	}
	refreshHours, err := requiredInt("REFRESH_TOKEN_EXPIRE_HOURS")
	if err != nil {
		return Config{}, err
	}
	return Config{
		SecretKey:  secret,
		Algorithm:  alg,
		AccessTTL:  time.Duration(accessMin) * time.Minute,
		RefreshTTL: time.Duration(refreshHours) * time.Hour,
	}, nil
}

func requiredInt(name string) (int, error) {
	v := os.Getenv(name)
	if v == "" {
		return 0, fmt.Errorf("%s is required", name)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s must be positive", name)
	}
	return n, nil
}
