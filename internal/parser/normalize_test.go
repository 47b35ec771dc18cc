package parser

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalTimestampEveningHourNotPadded(t *testing.T) {
	got := CanonicalTimestamp(NewField("12-01-2026"), NewField("18:51"), time.Now())
	assert.Equal(t, "12/01/2026 6:51 PM", got)
}

func TestCanonicalTimestampMorningPadding(t *testing.T) {
	// Day, month, year and minute are zero-padded; the hour never is.
	got := CanonicalTimestamp(NewField("3-4-2026"), NewField("09:05"), time.Now())
	assert.Equal(t, "03/04/2026 9:05 AM", got)
}

func TestCanonicalTimestampTwoDigitYear(t *testing.T) {
	got := CanonicalTimestamp(NewField("5/6/26"), NewField("12:00"), time.Now())
	assert.Equal(t, "05/06/2026 12:00 PM", got)
}

func TestCanonicalTimestampNaturalDate(t *testing.T) {
	got := CanonicalTimestamp(NewField("4 Feb, 2026"), NewField("23:59"), time.Now())
	assert.Equal(t, "04/02/2026 11:59 PM", got)
}

func TestCanonicalTimestampSecondsIgnoredInOutput(t *testing.T) {
	got := CanonicalTimestamp(NewField("12-01-2026"), NewField("18:51:42"), time.Now())
	assert.Equal(t, "12/01/2026 6:51 PM", got)
}

func TestCanonicalTimestampFallsBackToReceived(t *testing.T) {
	received := time.Date(2026, time.March, 7, 14, 30, 0, 0, time.Local)

	got := CanonicalTimestamp(Field{}, Field{}, received)
	assert.Equal(t, "07/03/2026 2:30 PM", got)
}

func TestCanonicalTimestampTimeOverlaysReceivedDate(t *testing.T) {
	// No date token: the time token overlays onto the received date.
	received := time.Date(2026, time.March, 7, 1, 2, 3, 0, time.Local)

	got := CanonicalTimestamp(Field{}, NewField("18:51"), received)
	assert.Equal(t, "07/03/2026 6:51 PM", got)
}

func TestCanonicalTimestampBadDateFallsBack(t *testing.T) {
	received := time.Date(2026, time.May, 1, 10, 0, 0, 0, time.Local)

	got := CanonicalTimestamp(NewField("99-99-9999"), Field{}, received)
	assert.Equal(t, "01/05/2026 10:00 AM", got)
}

func TestFormatTimestampRoundTripPadding(t *testing.T) {
	tests := []struct {
		instant time.Time
		want    string
	}{
		{time.Date(2026, time.January, 2, 0, 5, 0, 0, time.Local), "02/01/2026 12:05 AM"},
		{time.Date(2026, time.December, 25, 12, 0, 0, 0, time.Local), "25/12/2026 12:00 PM"},
		{time.Date(2026, time.September, 9, 21, 7, 0, 0, time.Local), "09/09/2026 9:07 PM"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatTimestamp(tt.instant))
	}
}

func TestParseAmount(t *testing.T) {
	d, err := ParseAmount("10,000.50")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("10000.50")))

	_, err = ParseAmount("0")
	assert.Error(t, err)

	_, err = ParseAmount("-25")
	assert.Error(t, err)

	_, err = ParseAmount("abc")
	assert.Error(t, err)
}

func TestParseBalanceAllowsZero(t *testing.T) {
	got, err := ParseBalance("0.00")
	require.NoError(t, err)
	assert.Equal(t, "0.00", got)

	got, err = ParseBalance("1,23,456.78")
	require.NoError(t, err)
	assert.Equal(t, "123456.78", got)
}
