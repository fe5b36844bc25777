package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/skilllink/skilllink/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations are
// given in seconds so the file stays plain JSON numbers.
type JsonConfig struct {
	ProjectURL           string `json:"project_url"`
	AnonKey              string `json:"anon_key"`
	StorageBucket        string `json:"storage_bucket"`
	StorageRegion        string `json:"storage_region"`
	StorageAccessID      string `json:"storage_access_id"`
	StorageSecret        string `json:"storage_secret"`
	SessionStaleAfterSec int    `json:"session_stale_after_sec"`
	RequestTimeoutSec    int    `json:"request_timeout_sec"`
}

// parseJson overlays Config with values loaded from a JSON file. The file
// path comes from the -c / -config flags (flagx.JsonConfigFlags); when no
// path is given the function is a no-op. Empty JSON fields leave the
// corresponding Config fields untouched, so the file can be partial.
//
// Intended usage is: defaults -> parseEnv -> parseJson -> parseFlags, where
// later stages override earlier ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ProjectURL != "" {
		cfg.ProjectURL = jc.ProjectURL
	}
	if jc.AnonKey != "" {
		cfg.AnonKey = jc.AnonKey
	}
	if jc.StorageBucket != "" {
		cfg.StorageBucket = jc.StorageBucket
	}
	if jc.StorageRegion != "" {
		cfg.StorageRegion = jc.StorageRegion
	}
	if jc.StorageAccessID != "" {
		cfg.StorageAccessID = jc.StorageAccessID
	}
	if jc.StorageSecret != "" {
		cfg.StorageSecret = jc.StorageSecret
	}
	if jc.SessionStaleAfterSec > 0 {
		cfg.SessionStaleAfter = time.Duration(jc.SessionStaleAfterSec) * time.Second
	}
	if jc.RequestTimeoutSec > 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeoutSec) * time.Second
	}
}
