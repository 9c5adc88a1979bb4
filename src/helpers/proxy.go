package helpers

import (
	"math/rand"
	"net/url"
	"strings"
)

// -----------------------------------------------------------------------------

var defaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:125.0) Gecko/20100101 Firefox/125.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
}

// -----------------------------------------------------------------------------

// ProxyManager picks the outbound proxy and User-Agent for provider requests.
// A run makes a single attempt, so there is no rotation.
type ProxyManager struct {
	proxy      string
	userAgent  string
	userAgents []string
}

// -----------------------------------------------------------------------------

// NewProxyManager keeps the first valid proxy. A non-empty userAgent pins the
// header; otherwise one of the built-in browser agents is chosen.
func NewProxyManager(proxies []string, userAgent string) *ProxyManager {
	pm := &ProxyManager{
		userAgent:  userAgent,
		userAgents: defaultUserAgents,
	}
	for _, p := range proxies {
		if ValidateProxy(p) {
			pm.proxy = FormatProxy(p)
			break
		}
	}
	return pm
}

// -----------------------------------------------------------------------------

func (pm *ProxyManager) GetCurrentProxy() (string, error) {
	return pm.proxy, nil
}

// -----------------------------------------------------------------------------

func (pm *ProxyManager) HasProxies() bool {
	return pm.proxy != ""
}

// -----------------------------------------------------------------------------

func (pm *ProxyManager) GetUserAgent() string {
	if pm.userAgent != "" {
		return pm.userAgent
	}
	if len(pm.userAgents) == 0 {
		return "Mozilla/5.0 (Go-http-client/1.1)"
	}
	return pm.userAgents[rand.Intn(len(pm.userAgents))]
}

// -----------------------------------------------------------------------------

// ValidateProxy checks if a proxy string is roughly valid.
func ValidateProxy(proxyStr string) bool {
	if strings.TrimSpace(proxyStr) == "" {
		return false
	}
	u, err := url.Parse(FormatProxy(proxyStr))
	return err == nil && u.Host != "" && (u.Scheme == "http" || u.Scheme == "https" || u.Scheme == "socks5")
}

// -----------------------------------------------------------------------------

// FormatProxy ensures the proxy has a scheme.
func FormatProxy(proxyStr string) string {
	if !strings.Contains(proxyStr, "://") {
		return "http://" + proxyStr
	}
	return proxyStr
}
