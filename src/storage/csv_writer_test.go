package storage

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"stock-fundamentals/src/helpers"
	"stock-fundamentals/src/logger"
	"stock-fundamentals/src/models"

	"go.uber.org/zap/zaptest"
)

var defaultMapping = models.MMetricMapping{
	{Source: "trailingPE", Column: "PE"},
	{Source: "trailingEps", Column: "EPS_TTM"},
	{Source: "returnOnEquity", Column: "ROE"},
}

var fixedNow = time.Date(2024, 6, 7, 20, 30, 0, 0, time.UTC)

func scenarioRecord() models.MRawRecord {
	r := models.NewRawRecord()
	r.Set("trailingPE", models.NumberValue(23.5))
	r.Set("trailingEps", models.NumberValue(4.12))
	r.Set("returnOnEquity", models.NumberValue(0.31))
	return r
}

func newTestWriter(t *testing.T, cfg models.MOutputConfig) *CSVRecordWriter {
	t.Helper()
	if cfg.Directory == "" {
		cfg.Directory = t.TempDir()
	}
	if cfg.FileName == "" {
		cfg.FileName = "fundamentals.csv"
	}
	if cfg.Placeholder == "" {
		cfg.Placeholder = "N/A"
	}
	w, err := NewCSVRecordWriter(cfg, defaultMapping, logger.NewLogger(zaptest.NewLogger(t), "Storage"))
	if err != nil {
		t.Fatalf("NewCSVRecordWriter failed: %v", err)
	}
	return w
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestBuildRowScenario(t *testing.T) {
	w := newTestWriter(t, models.MOutputConfig{})
	row := w.BuildRow(scenarioRecord(), "AAPL", fixedNow)

	want := models.MOutputRow{
		{Column: "PE", Value: "23.5"},
		{Column: "EPS_TTM", Value: "4.12"},
		{Column: "ROE", Value: "0.31"},
	}
	if len(row) != len(want) {
		t.Fatalf("row = %+v, want %+v", row, want)
	}
	for i := range want {
		if row[i] != want[i] {
			t.Errorf("row[%d] = %+v, want %+v", i, row[i], want[i])
		}
	}
}

func TestBuildRowMissingAndNull(t *testing.T) {
	w := newTestWriter(t, models.MOutputConfig{})
	r := models.NewRawRecord()
	r.Set("trailingPE", models.NumberValue(23.5))
	r.Set("trailingEps", models.NullValue())

	row := w.BuildRow(r, "AAPL", fixedNow)

	if v, _ := row.Get("EPS_TTM"); v != "N/A" {
		t.Errorf("EPS_TTM = %q, want placeholder for null", v)
	}
	if v, _ := row.Get("ROE"); v != "N/A" {
		t.Errorf("ROE = %q, want placeholder for missing key", v)
	}
}

func TestBuildRowExtraColumns(t *testing.T) {
	w := newTestWriter(t, models.MOutputConfig{
		TickerColumn:    "Ticker",
		TimestampColumn: "FetchedAt",
		SessionColumn:   "Session",
	})

	// Sunday evening in New York; the session is the preceding Friday.
	now := time.Date(2024, 6, 9, 22, 0, 0, 0, time.UTC)
	row := w.BuildRow(scenarioRecord(), "AAPL", now)

	wantHeader := []string{"PE", "EPS_TTM", "ROE", "Ticker", "FetchedAt", "Session"}
	if got := row.Header(); !equalStrings(got, wantHeader) {
		t.Fatalf("Header() = %v, want %v", got, wantHeader)
	}
	wantValues := []string{"23.5", "4.12", "0.31", "AAPL", "2024-06-09T22:00:00Z", "2024-06-07"}
	if got := row.Values(); !equalStrings(got, wantValues) {
		t.Errorf("Values() = %v, want %v", got, wantValues)
	}
}

func TestBuildRowTimestampIsUTC(t *testing.T) {
	w := newTestWriter(t, models.MOutputConfig{TimestampColumn: "FetchedAt"})
	paris := time.FixedZone("CEST", 2*3600)

	row := w.BuildRow(scenarioRecord(), "AAPL", time.Date(2024, 6, 7, 22, 30, 0, 0, paris))
	if v, _ := row.Get("FetchedAt"); v != "2024-06-07T20:30:00Z" {
		t.Errorf("FetchedAt = %q", v)
	}
}

func TestAppendCreatesFileWithHeader(t *testing.T) {
	w := newTestWriter(t, models.MOutputConfig{TickerColumn: "Ticker"})

	if err := w.Append(w.BuildRow(scenarioRecord(), "AAPL", fixedNow)); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	want := "PE,EPS_TTM,ROE,Ticker\n23.5,4.12,0.31,AAPL\n"
	if got := readFile(t, w.Path()); got != want {
		t.Errorf("file = %q, want %q", got, want)
	}
}

func TestAppendTwiceKeepsSingleHeader(t *testing.T) {
	w := newTestWriter(t, models.MOutputConfig{TickerColumn: "Ticker"})

	if err := w.Append(w.BuildRow(scenarioRecord(), "AAPL", fixedNow)); err != nil {
		t.Fatalf("first Append failed: %v", err)
	}
	if err := w.Append(w.BuildRow(scenarioRecord(), "MSFT", fixedNow)); err != nil {
		t.Fatalf("second Append failed: %v", err)
	}

	want := "PE,EPS_TTM,ROE,Ticker\n23.5,4.12,0.31,AAPL\n23.5,4.12,0.31,MSFT\n"
	if got := readFile(t, w.Path()); got != want {
		t.Errorf("file = %q, want %q", got, want)
	}
}

func TestAppendIsByteReproducible(t *testing.T) {
	cfg := models.MOutputConfig{TimestampColumn: "FetchedAt", NumberFormat: "fixed", DecimalPlaces: 4}
	w1 := newTestWriter(t, cfg)
	w2 := newTestWriter(t, cfg)

	for _, w := range []*CSVRecordWriter{w1, w2} {
		if err := w.Append(w.BuildRow(scenarioRecord(), "AAPL", fixedNow)); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	a, b := readFile(t, w1.Path()), readFile(t, w2.Path())
	if a != b {
		t.Errorf("outputs differ:\n%q\n%q", a, b)
	}
	if want := "PE,EPS_TTM,ROE,FetchedAt\n23.5000,4.1200,0.3100,2024-06-07T20:30:00Z\n"; a != want {
		t.Errorf("file = %q, want %q", a, want)
	}
}

func TestAppendEmptyExistingFileGetsHeader(t *testing.T) {
	w := newTestWriter(t, models.MOutputConfig{})
	if err := os.WriteFile(w.Path(), nil, 0644); err != nil {
		t.Fatalf("seed empty file: %v", err)
	}

	if err := w.Append(w.BuildRow(scenarioRecord(), "AAPL", fixedNow)); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if got, want := readFile(t, w.Path()), "PE,EPS_TTM,ROE\n23.5,4.12,0.31\n"; got != want {
		t.Errorf("file = %q, want %q", got, want)
	}
}

func TestAppendExistingFileNoHeaderRewrite(t *testing.T) {
	w := newTestWriter(t, models.MOutputConfig{})
	// A header from an older mapping is left untouched.
	if err := os.WriteFile(w.Path(), []byte("OLD_A,OLD_B\n1,2\n"), 0644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	if err := w.Append(w.BuildRow(scenarioRecord(), "AAPL", fixedNow)); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if got, want := readFile(t, w.Path()), "OLD_A,OLD_B\n1,2\n23.5,4.12,0.31\n"; got != want {
		t.Errorf("file = %q, want %q", got, want)
	}
}

func TestAppendMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	w := newTestWriter(t, models.MOutputConfig{Directory: dir})

	err := w.Append(w.BuildRow(scenarioRecord(), "AAPL", fixedNow))

	var writeErr *helpers.WriteError
	if !errors.As(err, &writeErr) {
		t.Fatalf("error = %v, want *helpers.WriteError", err)
	}
	if writeErr.Path != w.Path() {
		t.Errorf("Path = %q, want %q", writeErr.Path, w.Path())
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want os.ErrNotExist cause", err)
	}
	if _, statErr := os.Stat(dir); !os.IsNotExist(statErr) {
		t.Error("directory should not have been created")
	}
}

func TestAppendCreateDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	w := newTestWriter(t, models.MOutputConfig{Directory: dir, CreateDirectory: true})

	if err := w.Append(w.BuildRow(scenarioRecord(), "AAPL", fixedNow)); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if got := readFile(t, filepath.Join(dir, "fundamentals.csv")); got != "PE,EPS_TTM,ROE\n23.5,4.12,0.31\n" {
		t.Errorf("file = %q", got)
	}
}

func TestAppendBOM(t *testing.T) {
	w := newTestWriter(t, models.MOutputConfig{UTF8BOM: true})

	for i := 0; i < 2; i++ {
		if err := w.Append(w.BuildRow(scenarioRecord(), "AAPL", fixedNow)); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	data := []byte(readFile(t, w.Path()))
	if !bytes.HasPrefix(data, utf8BOM) {
		t.Fatal("file should start with a UTF-8 BOM")
	}
	if bytes.Count(data, utf8BOM) != 1 {
		t.Error("BOM should only be written once")
	}
}

func TestAppendQuotesFields(t *testing.T) {
	w, err := NewCSVRecordWriter(
		models.MOutputConfig{Directory: t.TempDir(), FileName: "q.csv", Placeholder: "N/A"},
		models.MMetricMapping{{Source: "longName", Column: "Name, full"}},
		logger.NewLogger(zaptest.NewLogger(t), "Storage"),
	)
	if err != nil {
		t.Fatalf("NewCSVRecordWriter failed: %v", err)
	}
	r := models.NewRawRecord()
	r.Set("longName", models.TextValue(`Apple "Inc."`))

	if err := w.Append(w.BuildRow(r, "AAPL", fixedNow)); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if got, want := readFile(t, w.Path()), "\"Name, full\"\n\"Apple \"\"Inc.\"\"\"\n"; got != want {
		t.Errorf("file = %q, want %q", got, want)
	}
}

func TestNewCSVRecordWriterErrors(t *testing.T) {
	log := logger.NewLogger(zaptest.NewLogger(t), "Storage")
	tests := []struct {
		name    string
		cfg     models.MOutputConfig
		mapping models.MMetricMapping
	}{
		{"no file name", models.MOutputConfig{}, defaultMapping},
		{"empty mapping", models.MOutputConfig{FileName: "a.csv"}, nil},
		{"bad format", models.MOutputConfig{FileName: "a.csv", NumberFormat: "hex"}, defaultMapping},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCSVRecordWriter(tt.cfg, tt.mapping, log)
			var cfgErr *helpers.ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Errorf("error = %v, want *helpers.ConfigurationError", err)
			}
		})
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
