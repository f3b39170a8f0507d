package utils

import "github.com/spf13/viper"

// GetEnv returns the current deployment environment.
func GetEnv() string {
	env := viper.GetString("ENV")
	if env == "" {
		return "development"
	}
	return env
}

// IsProduction reports whether the server runs with production settings.
func IsProduction() bool {
	return GetEnv() == "production"
}
