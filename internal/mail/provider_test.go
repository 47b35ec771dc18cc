package mail

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQueryGmailFull(t *testing.T) {
	after := time.Date(2026, time.January, 12, 18, 51, 0, 0, time.UTC)
	q := Query{
		Sender:   "alerts@hdfcbank.net",
		Keywords: "(credited OR debited)",
		After:    &after,
	}

	want := fmt.Sprintf("from:alerts@hdfcbank.net (credited OR debited) after:%d", after.Unix())
	assert.Equal(t, want, q.Gmail())
}

func TestQueryGmailWithoutWatermark(t *testing.T) {
	q := Query{Sender: "alerts@hdfcbank.net", Keywords: "(credited OR debited)"}
	assert.Equal(t, "from:alerts@hdfcbank.net (credited OR debited)", q.Gmail())
}

func TestQueryGmailEmpty(t *testing.T) {
	assert.Equal(t, "", Query{}.Gmail())
}
