package pipeline

import (
	"context"
	"time"

	"stock-fundamentals/src/helpers"
	"stock-fundamentals/src/interfaces"
	"stock-fundamentals/src/logger"
	"stock-fundamentals/src/models"
	"stock-fundamentals/src/tracing"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// -----------------------------------------------------------------------------

// Pipeline runs one fetch and one append for a single ticker.
type Pipeline struct {
	Source interfaces.IDataSource
	Writer interfaces.IRecordWriter
	Logger *logger.Logger
	Now    func() time.Time
}

// -----------------------------------------------------------------------------

func NewPipeline(source interfaces.IDataSource, writer interfaces.IRecordWriter, log *logger.Logger) *Pipeline {
	return &Pipeline{
		Source: source,
		Writer: writer,
		Logger: log,
		Now:    time.Now,
	}
}

// -----------------------------------------------------------------------------

// Run fetches rawTicker and appends its row. A fetch failure returns before
// the writer is touched.
func (p *Pipeline) Run(ctx context.Context, rawTicker string) error {
	ticker := models.NormalizeTicker(rawTicker)
	if ticker == "" {
		return helpers.NewValidationError("ticker must not be empty")
	}

	runID := uuid.NewString()
	log := p.Logger.With("run_id", runID, "ticker", ticker.String())

	ctx, span := tracing.StartSpan(ctx, "fundamentals.run")
	defer span.End()
	span.SetAttributes(
		attribute.String("run.id", runID),
		attribute.String("ticker", ticker.String()),
		attribute.String("source", p.Source.Name()),
	)

	log.Info("Fetching %s from %s", ticker, p.Source.Name())
	record, err := p.fetch(ctx, ticker)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		log.Error("Fetch failed: %v", err)
		return err
	}

	row := p.Writer.BuildRow(record, ticker, p.now())

	_, writeSpan := tracing.StartSpan(ctx, "fundamentals.append")
	writeSpan.SetAttributes(attribute.String("path", p.Writer.Path()))
	err = p.Writer.Append(row)
	if err != nil {
		writeSpan.RecordError(err)
		writeSpan.SetStatus(codes.Error, "append failed")
	}
	writeSpan.End()

	if err != nil {
		span.SetStatus(codes.Error, "append failed")
		log.Error("Write failed: %v", err)
		return err
	}

	log.Info("Appended %d columns to %s", len(row), p.Writer.Path())
	return nil
}

// -----------------------------------------------------------------------------

func (p *Pipeline) fetch(ctx context.Context, ticker models.Ticker) (models.MRawRecord, error) {
	ctx, span := tracing.StartSpan(ctx, "fundamentals.fetch")
	defer span.End()

	record, err := p.Source.GetInfo(ctx, ticker)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		return models.MRawRecord{}, err
	}
	span.SetAttributes(attribute.Int("fields", record.Len()))
	return record, nil
}

// -----------------------------------------------------------------------------

func (p *Pipeline) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}
