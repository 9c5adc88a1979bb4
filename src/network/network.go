package network

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"stock-fundamentals/src/helpers"
	"stock-fundamentals/src/interfaces"
	"stock-fundamentals/src/logger"
	"stock-fundamentals/src/models"

	"golang.org/x/net/publicsuffix"
)

// maxBodyBytes caps how much of a response is read into memory.
const maxBodyBytes = 8 << 20

// -----------------------------------------------------------------------------

// StatusError is returned for any non-200 response. Body holds the (capped)
// response body so providers can surface their own error payloads.
type StatusError struct {
	StatusCode int
	URL        string
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("bad status %d from %s", e.StatusCode, e.URL)
}

// -----------------------------------------------------------------------------

type NetworkManager struct {
	Config       *models.MConfig
	ProxyManager interfaces.IProxyManager
	Client       *http.Client
	Logger       *logger.Logger
}

// -----------------------------------------------------------------------------

func NewNetworkManager(cfg *models.MConfig, log *logger.Logger) (*NetworkManager, error) {
	nm := &NetworkManager{
		Config:       cfg,
		ProxyManager: helpers.NewProxyManager(cfg.Network.Proxies, cfg.Network.UserAgent),
		Logger:       log,
	}

	client, err := nm.createClient()
	if err != nil {
		return nil, err
	}
	nm.Client = client
	return nm, nil
}

// -----------------------------------------------------------------------------

func (nm *NetworkManager) createClient() (*http.Client, error) {
	// Yahoo ties the crumb to session cookies, so the jar must outlive a request.
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()

	if nm.ProxyManager.HasProxies() {
		proxyStr, err := nm.ProxyManager.GetCurrentProxy()
		if err == nil && proxyStr != "" {
			proxyURL, err := url.Parse(proxyStr)
			if err != nil {
				return nil, fmt.Errorf("invalid proxy %q: %w", proxyStr, err)
			}
			transport.Proxy = http.ProxyURL(proxyURL)
			nm.Logger.Debug("Using proxy %s", proxyURL.Host)
		}
	}

	return &http.Client{
		Transport: transport,
		Jar:       jar,
		Timeout:   time.Duration(nm.Config.Network.RequestTimeout) * time.Second,
	}, nil
}

// -----------------------------------------------------------------------------

// Get performs one GET request. There is no retry: any failure is returned.
func (nm *NetworkManager) Get(ctx context.Context, urlStr string, params map[string]string) ([]byte, error) {
	reqURL, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid url %q: %w", urlStr, err)
	}

	if len(params) > 0 {
		q := reqURL.Query()
		for k, v := range params {
			q.Set(k, v)
		}
		reqURL.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", nm.ProxyManager.GetUserAgent())
	req.Header.Set("Accept", "application/json, text/plain, */*")

	nm.Logger.Debug("GET %s", reqURL.Redacted())

	resp, err := nm.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		nm.Logger.Debug("Bad status %d from %s", resp.StatusCode, reqURL.Path)
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			URL:        reqURL.Scheme + "://" + reqURL.Host + reqURL.Path,
			Body:       body,
		}
	}

	return body, nil
}
