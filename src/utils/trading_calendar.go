package utils

import (
	"strings"
	"time"

	"stock-fundamentals/src/logger"

	"github.com/scmhub/calendar"
)

// defaultMIC is used for symbols without a recognised exchange suffix.
const defaultMIC = "xnys"

// Yahoo ticker suffix to ISO 10383 MIC, as understood by scmhub/calendar.
var suffixMIC = map[string]string{
	".L":  "xlon",
	".PA": "xpar",
	".DE": "xfra",
	".AS": "xams",
	".BR": "xbru",
	".MI": "xmil",
	".MC": "xmad",
	".ST": "xsto",
	".CO": "xcse",
	".HE": "xhel",
	".VI": "xwbo",
	".SW": "xswx",
	".TO": "xtse",
	".V":  "xtsx",
	".T":  "xtks",
	".HK": "xhkg",
	".AX": "xasx",
	".KS": "xkrx",
	".TW": "xtai",
	".SS": "xshg",
	".SZ": "xshe",
}

// maxLookback bounds the walk back to the previous session.
const maxLookback = 30

// -----------------------------------------------------------------------------

// TradingCalendar answers session questions for one exchange.
type TradingCalendar struct {
	MIC      string
	Calendar *calendar.Calendar
	Fallback bool
	Timezone *time.Location
}

// -----------------------------------------------------------------------------

// MICForSymbol maps a ticker to its exchange code from the ticker suffix.
func MICForSymbol(symbol string) string {
	symbol = strings.ToUpper(symbol)
	if i := strings.LastIndex(symbol, "."); i > 0 {
		if mic, ok := suffixMIC[symbol[i:]]; ok {
			return mic
		}
	}
	return defaultMIC
}

// -----------------------------------------------------------------------------

func GetCalendar(symbol string) *TradingCalendar {
	mic := MICForSymbol(symbol)

	cal := calendar.GetCalendar(mic)
	if cal == nil {
		mic = defaultMIC
		cal = calendar.GetCalendar(mic)
	}

	if cal == nil {
		logger.NewLogger(nil, "Calendar").Warning("No calendar for %s, using Mon-Fri in America/New_York", symbol)
		nyLoc, err := time.LoadLocation("America/New_York")
		if err != nil {
			nyLoc = time.UTC
		}
		return &TradingCalendar{MIC: mic, Fallback: true, Timezone: nyLoc}
	}

	return &TradingCalendar{MIC: mic, Calendar: cal, Timezone: cal.Loc}
}

// -----------------------------------------------------------------------------

func (tc *TradingCalendar) IsTradingDay(date time.Time) bool {
	if tc.Timezone != nil {
		date = date.In(tc.Timezone)
	}

	if tc.Fallback {
		weekday := date.Weekday()
		return weekday != time.Saturday && weekday != time.Sunday
	}
	return tc.Calendar.IsBusinessDay(date)
}

// -----------------------------------------------------------------------------

// LastSessionDate returns the most recent trading day on or before t, as a
// date at midnight in the exchange time zone. If none is found within
// maxLookback days the exchange-local date of t is returned.
func (tc *TradingCalendar) LastSessionDate(t time.Time) time.Time {
	loc := tc.Timezone
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	for i := 0; i < maxLookback; i++ {
		candidate := day.AddDate(0, 0, -i)
		// Noon avoids DST edges when the calendar re-normalises the time.
		if tc.IsTradingDay(candidate.Add(12 * time.Hour)) {
			return candidate
		}
	}
	return day
}
