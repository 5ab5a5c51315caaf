package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/bookkeeper/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent keys
// leave the corresponding Config field untouched.
type JsonConfig struct {
	DBPath     string `json:"db_path"`
	Backend    string `json:"backend"`
	LogLevel   string `json:"log_level"`
	StorageKey string `json:"storage_key"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Without such a flag nothing is loaded. Read and unmarshal
// errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFileFlag(os.Args[1:])
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

	overlay(&cfg.DBPath, jc.DBPath)
	overlay(&cfg.Backend, jc.Backend)
	overlay(&cfg.LogLevel, jc.LogLevel)
	overlay(&cfg.StorageKey, jc.StorageKey)
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
