package interfaces

import (
	"context"

	"stock-fundamentals/src/models"
)

// -----------------------------------------------------------------------------
// IDataSource fetches the raw metric record for one ticker from a provider.
// -----------------------------------------------------------------------------

type IDataSource interface {

	// Name returns the unique identifier of the source
	Name() string

	// -----------------------------------------------------------------------------

	// GetInfo retrieves the provider's info record for ticker. Failures are
	// returned as *helpers.FetchError.
	GetInfo(ctx context.Context, ticker models.Ticker) (models.MRawRecord, error)
}
