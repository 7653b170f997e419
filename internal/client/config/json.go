package config

import (
	"encoding/json"
	"os"

	"github.com/gestorapp/gestor/internal/flagx"
	"github.com/gestorapp/gestor/internal/timex"
)

// JsonConfig mirrors Config for JSON unmarshalling, using timex.Duration so
// interval fields accept both "30s" strings and integer nanoseconds.
type JsonConfig struct {
	ServerBaseURL  string         `json:"server_base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	AutosaveDelay  timex.Duration `json:"autosave_delay"`
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flags into the provided Config. If no file is named, nothing
// is loaded. If the file cannot be read or contains invalid JSON, the
// function panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.ServerBaseURL = c.ServerBaseURL
	config.RequestTimeout = c.RequestTimeout.Duration
	config.AutosaveDelay = c.AutosaveDelay.Duration
}
