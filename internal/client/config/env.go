package config

import "os"

// parseEnv overlays Config with values from environment variables. Unset
// variables leave the corresponding fields untouched.
func parseEnv(cfg *Config) {
	if v, ok := os.LookupEnv(EnvProjectURL); ok {
		cfg.ProjectURL = v
	}
	if v, ok := os.LookupEnv(EnvAnonKey); ok {
		cfg.AnonKey = v
	}
	if v, ok := os.LookupEnv(EnvStorageBucket); ok {
		cfg.StorageBucket = v
	}
	if v, ok := os.LookupEnv(EnvStorageRegion); ok {
		cfg.StorageRegion = v
	}
	if v, ok := os.LookupEnv(EnvStorageAccessID); ok {
		cfg.StorageAccessID = v
	}
	if v, ok := os.LookupEnv(EnvStorageSecret); ok {
		cfg.StorageSecret = v
	}
}
