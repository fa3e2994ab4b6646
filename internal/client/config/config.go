package config

import "time"

// Config holds runtime settings for the VoltMate CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the backend REST API.
//   - RequestTimeout: upper bound on a single API request.
//   - RenewalLead: how long before access-token expiry silent renewal fires.
//   - NoticeDelay: how long a failure notice stays on screen before the
//     forced logout completes.
//   - RequestsPerSecond / Burst: client-side rate limit on outbound calls.
//   - DatabasePath: path of the local sqlite credential store.
type Config struct {
	ServerBaseURL     string
	RequestTimeout    time.Duration
	RenewalLead       time.Duration
	NoticeDelay       time.Duration
	RequestsPerSecond int
	Burst             int
	DatabasePath      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 10 * time.Second
	c.RenewalLead = 300 * time.Second
	c.NoticeDelay = 3 * time.Second
	c.RequestsPerSecond = 10
	c.Burst = 20
	c.DatabasePath = "voltmate.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
