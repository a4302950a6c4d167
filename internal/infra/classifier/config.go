package classifier

import "os"

// Config holds the configuration for the classifier.
type Config struct {
	// ModelPath is the filesystem path of the model artifact.
	// Default: model.json
	ModelPath string
}

// DefaultConfig returns the default classifier configuration.
func DefaultConfig() Config {
	return Config{
		ModelPath: "model.json",
	}
}

// LoadConfigFromEnv loads configuration from environment variables.
//
// Environment variables:
//   - MODEL_PATH: filesystem path of the model artifact (default: model.json)
func LoadConfigFromEnv() Config {
	cfg := DefaultConfig()
	if val := os.Getenv("MODEL_PATH"); val != "" {
		cfg.ModelPath = val
	}
	return cfg
}
