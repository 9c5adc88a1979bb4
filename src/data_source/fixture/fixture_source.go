package fixture

import (
	"context"
	"errors"
	"fmt"
	"os"

	"stock-fundamentals/src/data_source/decode"
	"stock-fundamentals/src/helpers"
	"stock-fundamentals/src/logger"
	"stock-fundamentals/src/models"
)

// -----------------------------------------------------------------------------

// FixtureSource serves a recorded provider payload from disk. The file may
// hold a flat object of scalars or a full quoteSummary response.
type FixtureSource struct {
	Path   string
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewFixtureSource(path string, log *logger.Logger) *FixtureSource {
	return &FixtureSource{Path: path, Logger: log}
}

// -----------------------------------------------------------------------------

func (s *FixtureSource) Name() string {
	return "fixture"
}

// -----------------------------------------------------------------------------

// GetInfo ignores the ticker when choosing the payload; the file is the answer.
func (s *FixtureSource) GetInfo(ctx context.Context, ticker models.Ticker) (models.MRawRecord, error) {
	symbol := ticker.String()

	if err := ctx.Err(); err != nil {
		return models.MRawRecord{}, helpers.NewFetchError(symbol, err)
	}

	body, err := os.ReadFile(s.Path)
	if err != nil {
		return models.MRawRecord{}, helpers.NewFetchError(symbol, fmt.Errorf("read fixture: %w", err))
	}

	record, err := decode.Any(body)
	if err != nil {
		if errors.Is(err, decode.ErrEmpty) {
			return models.MRawRecord{}, helpers.NewFetchError(symbol, helpers.ErrNoData)
		}
		return models.MRawRecord{}, helpers.NewFetchError(symbol, err)
	}

	s.Logger.Debug("Loaded %d fields for %s from %s", record.Len(), symbol, s.Path)
	return record, nil
}
