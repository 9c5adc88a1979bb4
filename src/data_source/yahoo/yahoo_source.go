package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"stock-fundamentals/src/data_source/decode"
	"stock-fundamentals/src/helpers"
	"stock-fundamentals/src/interfaces"
	"stock-fundamentals/src/logger"
	"stock-fundamentals/src/models"
	"stock-fundamentals/src/network"
)

const (
	crumbPath        = "/v1/test/getcrumb"
	quoteSummaryPath = "/v10/finance/quoteSummary/"
)

// DefaultModules are the quoteSummary modules merged into the info record.
var DefaultModules = []string{
	"financialData",
	"quoteType",
	"defaultKeyStatistics",
	"assetProfile",
	"summaryDetail",
}

// -----------------------------------------------------------------------------

type YahooFinanceSource struct {
	SourceConfig models.MProviderConfig
	Network      interfaces.INetworkManager
	Logger       *logger.Logger
	crumb        string
}

// -----------------------------------------------------------------------------

func (s *YahooFinanceSource) Name() string {
	return "yahoo"
}

// -----------------------------------------------------------------------------

func NewYahooFinanceSource(sourceCfg models.MProviderConfig, netMgr interfaces.INetworkManager, log *logger.Logger) *YahooFinanceSource {
	if len(sourceCfg.Modules) == 0 {
		sourceCfg.Modules = DefaultModules
	}
	sourceCfg.BaseURL = strings.TrimRight(sourceCfg.BaseURL, "/")
	return &YahooFinanceSource{
		SourceConfig: sourceCfg,
		Network:      netMgr,
		Logger:       log,
	}
}

// -----------------------------------------------------------------------------

// GetInfo fetches the quoteSummary modules for ticker and flattens them
// into one record. A single attempt is made.
func (s *YahooFinanceSource) GetInfo(ctx context.Context, ticker models.Ticker) (models.MRawRecord, error) {
	symbol := ticker.String()

	if err := s.ensureCrumb(ctx); err != nil {
		return models.MRawRecord{}, helpers.NewFetchError(symbol, err)
	}

	body, err := s.fetchQuoteSummary(ctx, symbol)
	if err != nil {
		return models.MRawRecord{}, helpers.NewFetchError(symbol, err)
	}

	record, err := decode.QuoteSummary(body)
	if err != nil {
		if errors.Is(err, decode.ErrEmpty) {
			return models.MRawRecord{}, helpers.NewFetchError(symbol, helpers.ErrNoData)
		}
		return models.MRawRecord{}, helpers.NewFetchError(symbol, err)
	}

	s.Logger.Info("Fetched %s: %d fields from %d modules", symbol, record.Len(), len(s.SourceConfig.Modules))
	return record, nil
}

// -----------------------------------------------------------------------------

// ensureCrumb primes the session cookies and fetches the crumb once per source.
func (s *YahooFinanceSource) ensureCrumb(ctx context.Context) error {
	if s.crumb != "" {
		return nil
	}

	if s.SourceConfig.SessionURL != "" {
		// Only the Set-Cookie headers matter; fc.yahoo.com answers 404.
		if _, err := s.Network.Get(ctx, s.SourceConfig.SessionURL, nil); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			s.Logger.Debug("Session request: %v", err)
		}
	}

	body, err := s.Network.Get(ctx, s.SourceConfig.BaseURL+crumbPath, nil)
	if err != nil {
		return fmt.Errorf("crumb request failed: %w", err)
	}

	crumb := strings.TrimSpace(string(body))
	if crumb == "" || strings.HasPrefix(crumb, "<") || strings.HasPrefix(crumb, "{") {
		return fmt.Errorf("crumb request returned no crumb")
	}

	s.crumb = crumb
	s.Logger.Debug("Yahoo session initialized")
	return nil
}

// -----------------------------------------------------------------------------

func (s *YahooFinanceSource) fetchQuoteSummary(ctx context.Context, symbol string) ([]byte, error) {
	params := map[string]string{
		"modules": strings.Join(s.SourceConfig.Modules, ","),
		"crumb":   s.crumb,
	}

	endpoint := s.SourceConfig.BaseURL + quoteSummaryPath + url.PathEscape(symbol)

	body, err := s.Network.Get(ctx, endpoint, params)
	if err == nil {
		return body, nil
	}

	var statusErr *network.StatusError
	if !errors.As(err, &statusErr) {
		return nil, fmt.Errorf("network error: %w", err)
	}

	if statusErr.StatusCode == http.StatusUnauthorized {
		// The crumb is tied to the session; drop it so the next call renews it.
		s.crumb = ""
	}
	if apiErr := decode.QuoteSummaryError(statusErr.Body); apiErr != nil {
		return nil, fmt.Errorf("status %d: %w", statusErr.StatusCode, apiErr)
	}
	return nil, err
}
