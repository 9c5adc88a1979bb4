package models

// MConfig Structure
type MConfig struct {
	Name     string          `yaml:"name"`
	LogLevel string          `yaml:"log_level"`
	Output   MOutputConfig   `yaml:"output"`
	Network  MNetworkConfig  `yaml:"network"`
	Provider MProviderConfig `yaml:"provider"`
	Tracing  MTracingConfig  `yaml:"tracing"`
	Metrics  MMetricMapping  `yaml:"metrics"`
}

type MOutputConfig struct {
	Directory       string `yaml:"directory"`
	FileName        string `yaml:"file_name"`
	CreateDirectory bool   `yaml:"create_directory"`
	Placeholder     string `yaml:"placeholder"`
	NumberFormat    string `yaml:"number_format"`  // "shortest" or "fixed"
	DecimalPlaces   int    `yaml:"decimal_places"` // Only read when NumberFormat is "fixed"
	TickerColumn    string `yaml:"ticker_column"`
	TimestampColumn string `yaml:"timestamp_column"`
	SessionColumn   string `yaml:"session_column"`
	UTF8BOM         bool   `yaml:"utf8_bom"`
}

type MNetworkConfig struct {
	RequestTimeout int      `yaml:"timeout"`
	Proxies        []string `yaml:"proxies,omitempty"`
	UserAgent      string   `yaml:"user_agent"`
}

type MProviderConfig struct {
	Type        string   `yaml:"type"`
	BaseURL     string   `yaml:"base_url"`
	SessionURL  string   `yaml:"session_url"`
	Modules     []string `yaml:"modules"`
	FixturePath string   `yaml:"fixture_path"`
}

type MTracingConfig struct {
	Enabled bool `yaml:"enabled"`
}
