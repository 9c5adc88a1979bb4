package config

import "stock-fundamentals/src/models"

const (
	DefaultConfigPath      = "configs/default.yaml"
	DefaultName            = "stock-fundamentals"
	DefaultLogLevel        = "info"
	DefaultOutputDirectory = "output"
	DefaultOutputFile      = "fundamentals.csv"
	DefaultPlaceholder     = "N/A"
	DefaultNumberFormat    = "shortest"
	DefaultDecimalPlaces   = 4
	DefaultTickerColumn    = "Ticker"
	DefaultTimestampColumn = "FetchedAt"
	DefaultRequestTimeout  = 15
	DefaultProviderType    = "yahoo"
	DefaultProviderBaseURL = "https://query2.finance.yahoo.com"
	DefaultSessionURL      = "https://fc.yahoo.com"
)

// DefaultModules are the quoteSummary modules requested when none are configured.
var DefaultModules = []string{"financialData", "quoteType", "defaultKeyStatistics", "assetProfile", "summaryDetail"}

// -----------------------------------------------------------------------------

// DefaultMetrics returns the P/E, trailing EPS and ROE mapping.
func DefaultMetrics() models.MMetricMapping {
	return models.MMetricMapping{
		{Source: "trailingPE", Column: "PE"},
		{Source: "trailingEps", Column: "EPS_TTM"},
		{Source: "returnOnEquity", Column: "ROE"},
	}
}

// -----------------------------------------------------------------------------

// DefaultConfig is the configuration a YAML file is decoded on top of, so
// keys absent from the file keep these values.
func DefaultConfig() models.MConfig {
	return models.MConfig{
		Name:     DefaultName,
		LogLevel: DefaultLogLevel,
		Output: models.MOutputConfig{
			Directory:       DefaultOutputDirectory,
			FileName:        DefaultOutputFile,
			Placeholder:     DefaultPlaceholder,
			NumberFormat:    DefaultNumberFormat,
			DecimalPlaces:   DefaultDecimalPlaces,
			TickerColumn:    DefaultTickerColumn,
			TimestampColumn: DefaultTimestampColumn,
		},
		Network: models.MNetworkConfig{
			RequestTimeout: DefaultRequestTimeout,
		},
		Provider: models.MProviderConfig{
			Type:       DefaultProviderType,
			BaseURL:    DefaultProviderBaseURL,
			SessionURL: DefaultSessionURL,
			Modules:    append([]string(nil), DefaultModules...),
		},
		Metrics: DefaultMetrics(),
	}
}
