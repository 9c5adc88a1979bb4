package interfaces

import "context"

// -----------------------------------------------------------------------------
// INetworkManager defines the contract for outbound HTTP requests.
// -----------------------------------------------------------------------------

type INetworkManager interface {

	// -----------------------------------------------------------------------------

	// Get performs a single GET request to the specified URL with parameters.
	// Returns the response body as bytes or an error. Non-200 responses are
	// reported as *network.StatusError carrying the body.
	Get(ctx context.Context, url string, params map[string]string) ([]byte, error)
}
