package interfaces

import (
	"time"

	"stock-fundamentals/src/models"
)

// -----------------------------------------------------------------------------
// IRecordWriter turns a raw record into an output row and persists it.
// -----------------------------------------------------------------------------

type IRecordWriter interface {

	// BuildRow selects and renders the mapped fields of record.
	BuildRow(record models.MRawRecord, ticker models.Ticker, now time.Time) models.MOutputRow

	// -----------------------------------------------------------------------------

	// Append persists row, writing the header first if the target is new.
	// Failures are returned as *helpers.WriteError.
	Append(row models.MOutputRow) error

	// -----------------------------------------------------------------------------

	// Path returns the target file.
	Path() string
}
