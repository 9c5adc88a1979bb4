package interfaces

// -----------------------------------------------------------------------------
// IProxyManager defines the contract for choosing the proxy and User-Agent.
// -----------------------------------------------------------------------------

type IProxyManager interface {

	// -----------------------------------------------------------------------------

	// GetCurrentProxy returns the selected proxy URL (or empty if none).
	GetCurrentProxy() (string, error)

	// -----------------------------------------------------------------------------

	// HasProxies returns true if a proxy is configured.
	HasProxies() bool

	// -----------------------------------------------------------------------------

	// GetUserAgent returns the User-Agent header value to send.
	GetUserAgent() string
}
