package storage

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"stock-fundamentals/src/helpers"
	"stock-fundamentals/src/logger"
	"stock-fundamentals/src/models"
	"stock-fundamentals/src/utils"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

const sessionDateLayout = "2006-01-02"

// -----------------------------------------------------------------------------

// CSVRecordWriter appends one mapped row per call to a single CSV file.
// There is no locking: concurrent processes on the same path may interleave.
type CSVRecordWriter struct {
	Config    models.MOutputConfig
	Mapping   models.MMetricMapping
	Formatter *ValueFormatter
	Logger    *logger.Logger
}

// -----------------------------------------------------------------------------

func NewCSVRecordWriter(cfg models.MOutputConfig, mapping models.MMetricMapping, log *logger.Logger) (*CSVRecordWriter, error) {
	if cfg.FileName == "" {
		return nil, helpers.NewConfigurationError("output.file_name is required", nil)
	}
	if err := mapping.Validate(); err != nil {
		return nil, helpers.NewConfigurationError("invalid metrics mapping", err)
	}

	formatter, err := NewValueFormatter(cfg)
	if err != nil {
		return nil, helpers.NewConfigurationError("invalid output number format", err)
	}

	return &CSVRecordWriter{
		Config:    cfg,
		Mapping:   mapping,
		Formatter: formatter,
		Logger:    log,
	}, nil
}

// -----------------------------------------------------------------------------

func (w *CSVRecordWriter) Path() string {
	return filepath.Join(w.Config.Directory, w.Config.FileName)
}

// -----------------------------------------------------------------------------

// BuildRow renders the mapped fields in mapping order, then the configured
// ticker, timestamp and session columns.
func (w *CSVRecordWriter) BuildRow(record models.MRawRecord, ticker models.Ticker, now time.Time) models.MOutputRow {
	row := make(models.MOutputRow, 0, len(w.Mapping)+3)

	for _, field := range w.Mapping {
		value := w.Config.Placeholder
		if v, ok := record.Lookup(field.Source); ok {
			value = w.Formatter.Format(v)
		}
		row = append(row, models.MCell{Column: field.Column, Value: value})
	}

	if w.Config.TickerColumn != "" {
		row = append(row, models.MCell{Column: w.Config.TickerColumn, Value: ticker.String()})
	}
	if w.Config.TimestampColumn != "" {
		row = append(row, models.MCell{Column: w.Config.TimestampColumn, Value: now.UTC().Format(time.RFC3339)})
	}
	if w.Config.SessionColumn != "" {
		session := utils.GetCalendar(ticker.String()).LastSessionDate(now)
		row = append(row, models.MCell{Column: w.Config.SessionColumn, Value: session.Format(sessionDateLayout)})
	}

	return row
}

// -----------------------------------------------------------------------------

// Append writes row, preceded by the header when the file is new or empty.
// Header and row go out in a single write; a failed write is rolled back by
// truncating to the original size.
func (w *CSVRecordWriter) Append(row models.MOutputRow) error {
	path := w.Path()

	if w.Config.CreateDirectory && w.Config.Directory != "" {
		if err := os.MkdirAll(w.Config.Directory, 0755); err != nil {
			return helpers.NewWriteError(path, err)
		}
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		return helpers.NewWriteError(path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return helpers.NewWriteError(path, err)
	}
	size := info.Size()

	payload, err := w.encode(row, size == 0)
	if err != nil {
		f.Close()
		return helpers.NewWriteError(path, err)
	}

	if n, err := f.Write(payload); err != nil || n != len(payload) {
		if err == nil {
			err = fmt.Errorf("short write: %d of %d bytes", n, len(payload))
		}
		if truncErr := f.Truncate(size); truncErr != nil {
			w.Logger.Error("Failed to roll back %s: %v", path, truncErr)
		}
		f.Close()
		return helpers.NewWriteError(path, err)
	}

	if err := f.Close(); err != nil {
		return helpers.NewWriteError(path, err)
	}

	if size == 0 {
		w.Logger.Info("Created %s with header %v", path, row.Header())
	}
	w.Logger.Debug("Appended %d bytes to %s", len(payload), path)
	return nil
}

// -----------------------------------------------------------------------------

func (w *CSVRecordWriter) encode(row models.MOutputRow, withHeader bool) ([]byte, error) {
	var buf bytes.Buffer

	if withHeader && w.Config.UTF8BOM {
		buf.Write(utf8BOM)
	}

	cw := csv.NewWriter(&buf)
	if withHeader {
		if err := cw.Write(row.Header()); err != nil {
			return nil, err
		}
	}
	if err := cw.Write(row.Values()); err != nil {
		return nil, err
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
