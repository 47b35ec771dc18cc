package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TimestampLayout is the canonical ledger timestamp format. Day, month, year
// and minute are zero-padded; the hour is not. Consumers rely on the exact
// padding, so this layout must not change.
const TimestampLayout = "02/01/2006 3:04 PM"

var dateSepRe = regexp.MustCompile(`[-/]`)

// naturalDateLayouts cover "12 Jan, 2026" style tokens.
var naturalDateLayouts = []string{
	"2 Jan, 2006",
	"2 Jan 2006",
	"2 January, 2006",
	"2 January 2006",
}

// CanonicalTimestamp converts raw date/time tokens into the canonical ledger
// timestamp. A missing or unparseable date falls back to the message's
// received instant; a time token overlays hour/minute/second onto whichever
// date won.
func CanonicalTimestamp(dateTok, timeTok Field, received time.Time) string {
	t := received
	if raw, ok := dateTok.Get(); ok {
		if parsed, err := parseDateToken(raw); err == nil {
			t = parsed
		}
	}
	if raw, ok := timeTok.Get(); ok {
		if h, m, s, err := parseTimeToken(raw); err == nil {
			t = time.Date(t.Year(), t.Month(), t.Day(), h, m, s, 0, t.Location())
		}
	}
	return t.Format(TimestampLayout)
}

// FormatTimestamp renders an instant in the canonical ledger format.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// parseDateToken parses either a day-first numeric token (12-01-2026,
// 3/4/26) or a natural-language token (12 Jan, 2026). Two-digit years map
// to 2000+YY.
func parseDateToken(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if dateSepRe.MatchString(raw) {
		parts := dateSepRe.Split(raw, -1)
		if len(parts) != 3 {
			return time.Time{}, fmt.Errorf("unrecognized date token %q", raw)
		}
		day, err := strconv.Atoi(parts[0])
		if err != nil {
			return time.Time{}, fmt.Errorf("bad day in %q: %w", raw, err)
		}
		month, err := strconv.Atoi(parts[1])
		if err != nil {
			return time.Time{}, fmt.Errorf("bad month in %q: %w", raw, err)
		}
		year, err := strconv.Atoi(parts[2])
		if err != nil {
			return time.Time{}, fmt.Errorf("bad year in %q: %w", raw, err)
		}
		if year < 100 {
			year += 2000
		}
		if month < 1 || month > 12 || day < 1 || day > 31 {
			return time.Time{}, fmt.Errorf("date token %q out of range", raw)
		}
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local), nil
	}

	for _, layout := range naturalDateLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date token %q", raw)
}

// parseTimeToken parses HH:MM or HH:MM:SS; missing seconds default to 0.
func parseTimeToken(raw string) (hour, min, sec int, err error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("unrecognized time token %q", raw)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour > 23 {
		return 0, 0, 0, fmt.Errorf("bad hour in %q", raw)
	}
	min, err = strconv.Atoi(parts[1])
	if err != nil || min > 59 {
		return 0, 0, 0, fmt.Errorf("bad minute in %q", raw)
	}
	if len(parts) == 3 {
		sec, err = strconv.Atoi(parts[2])
		if err != nil || sec > 59 {
			return 0, 0, 0, fmt.Errorf("bad second in %q", raw)
		}
	}
	return hour, min, sec, nil
}

// ParseAmount converts a comma-grouped currency token into a positive
// decimal.
func ParseAmount(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(raw), ",", ""))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	if !d.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("amount %q is not positive", raw)
	}
	return d, nil
}

// ParseBalance converts a balance token into its normalized decimal string.
// Balances are best-effort; a zero balance is legal.
func ParseBalance(raw string) (string, error) {
	d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(raw), ",", ""))
	if err != nil {
		return "", fmt.Errorf("invalid balance %q: %w", raw, err)
	}
	return d.String(), nil
}
