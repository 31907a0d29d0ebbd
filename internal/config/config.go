// Package config defines dashboard configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers defaults, an optional YAML file and MINERBOARD_* env vars.
// - Errors are wrapped with this package's sentinel kinds.
package config

// Default values shared by New and tests.
const (
	DefaultAddr        = ":8501"
	DefaultSourceURL   = "https://159.89.162.245:9191/leaderboard"
	DefaultPageTitle   = "BASE mining Leaderboard"
	DefaultChartWidth  = 700
	DefaultChartHeight = 300
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8501".
	Addr string `koanf:"addr"`

	// AccessLog enables the combined access log on stdout.
	AccessLog bool `koanf:"access_log"`

	// SourceURL is the leaderboard endpoint fetched on every page load.
	SourceURL string `koanf:"source_url"`

	// SourceInsecureSkipVerify disables TLS certificate verification for
	// SourceURL. The deployed source serves a self-signed certificate.
	SourceInsecureSkipVerify bool `koanf:"source_insecure_skip_verify"`

	// FetchTimeoutMS bounds a single source request; 0 means no timeout.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms"`

	// PageTitle is shown in the browser tab and as the page heading.
	PageTitle string `koanf:"page_title"`

	// ChartWidth and ChartHeight are the logical chart dimensions.
	ChartWidth  int `koanf:"chart_width"`
	ChartHeight int `koanf:"chart_height"`

	// CORSAllowedOrigins lists origins allowed to call the JSON API.
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:                 "info",
		LogFormat:                "text",
		Addr:                     DefaultAddr,
		AccessLog:                false,
		SourceURL:                DefaultSourceURL,
		SourceInsecureSkipVerify: true,
		FetchTimeoutMS:           0,
		PageTitle:                DefaultPageTitle,
		ChartWidth:               DefaultChartWidth,
		ChartHeight:              DefaultChartHeight,
		CORSAllowedOrigins:       []string{"*"},
	}
}
