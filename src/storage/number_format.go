package storage

import (
	"fmt"
	"math"
	"strconv"

	"stock-fundamentals/src/models"

	"github.com/shopspring/decimal"
)

const (
	NumberFormatShortest = "shortest"
	NumberFormatFixed    = "fixed"
)

// -----------------------------------------------------------------------------

// ValueFormatter renders provider scalars as CSV cells. Output depends only
// on the value and the formatter settings, so identical records always give
// identical bytes.
type ValueFormatter struct {
	Placeholder   string
	NumberFormat  string
	DecimalPlaces int32
}

// -----------------------------------------------------------------------------

func NewValueFormatter(cfg models.MOutputConfig) (*ValueFormatter, error) {
	switch cfg.NumberFormat {
	case "", NumberFormatShortest:
		cfg.NumberFormat = NumberFormatShortest
	case NumberFormatFixed:
		if cfg.DecimalPlaces < 0 {
			return nil, fmt.Errorf("decimal_places must not be negative, got %d", cfg.DecimalPlaces)
		}
	default:
		return nil, fmt.Errorf("unknown number_format %q", cfg.NumberFormat)
	}

	return &ValueFormatter{
		Placeholder:   cfg.Placeholder,
		NumberFormat:  cfg.NumberFormat,
		DecimalPlaces: int32(cfg.DecimalPlaces),
	}, nil
}

// -----------------------------------------------------------------------------

// Format renders v. Absent keys are handled by the caller with Placeholder.
func (f *ValueFormatter) Format(v models.MValue) string {
	switch v.Kind {
	case models.KindNumber:
		return f.formatNumber(v.Number)
	case models.KindText:
		return v.Text
	case models.KindBool:
		return strconv.FormatBool(v.Bool)
	default:
		return f.Placeholder
	}
}

// -----------------------------------------------------------------------------

func (f *ValueFormatter) formatNumber(n float64) string {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return f.Placeholder
	}

	d := decimal.NewFromFloat(n)
	if f.NumberFormat == NumberFormatFixed {
		return d.StringFixed(f.DecimalPlaces)
	}
	return d.String()
}
