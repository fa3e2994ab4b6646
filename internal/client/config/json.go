package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/voltmate/voltmate/internal/flagx"
	"github.com/voltmate/voltmate/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "5m"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config (which uses time.Duration).
type JsonConfig struct {
	ServerBaseURL     string         `json:"server_base_url"`
	RequestTimeout    timex.Duration `json:"request_timeout"`
	RenewalLead       timex.Duration `json:"renewal_lead"`
	NoticeDelay       timex.Duration `json:"notice_delay"`
	RequestsPerSecond int            `json:"requests_per_second"`
	Burst             int            `json:"burst"`
	DatabasePath      string         `json:"database_path"`
}

// parseJson overlays cfg with values from the JSON file selected via the
// -c/-config flags. When no file is given the function is a no-op. Read or
// unmarshal errors panic; duration fields equal to zero and empty strings
// leave the corresponding cfg value untouched, so a partial file works.
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

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.RenewalLead.Duration != 0 {
		cfg.RenewalLead = time.Duration(jc.RenewalLead.Duration)
	}
	if jc.NoticeDelay.Duration != 0 {
		cfg.NoticeDelay = time.Duration(jc.NoticeDelay.Duration)
	}
	if jc.RequestsPerSecond != 0 {
		cfg.RequestsPerSecond = jc.RequestsPerSecond
	}
	if jc.Burst != 0 {
		cfg.Burst = jc.Burst
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
}
