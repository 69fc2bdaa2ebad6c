package config

import "errors"

// Sentinel error kinds returned by Load and Validate.
var (
	// ErrInvalidConfig marks a value outside its allowed domain.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrLoadConfig marks an unreadable config file or environment.
	ErrLoadConfig = errors.New("load config failed")
	// ErrDotEnv marks a .env file that exists but cannot be parsed.
	ErrDotEnv = errors.New("load dotenv failed")
)
