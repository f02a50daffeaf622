package normalize

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// DateLayout is the canonical date format
	DateLayout = "2006-01-02"
	// TimeLayout is the canonical time of day format
	TimeLayout = "15:04:05"

	// 2023-06-11 15:33:58 UTC, only the first 19 characters are read
	messageTimeLayout = "2006-01-02 15:04:05"
)

// ErrDateUnparseable is wrapped by every date or time parse failure
var ErrDateUnparseable = errors.New("unparseable date")

// 01-Jul-25 in older exports, 01 Jul 2025 in newer ones
var connectionDateLayouts = []string{"2-Jan-06", "2 Jan 2006"}

// MessageTimestamp is a message time converted to the target time zone
type MessageTimestamp struct {
	Date string
	Time string
	Unix int64
}

// ConnectionDate reformats a connection date like "01-Jul-25" to "2025-07-01".
// If no layout matches raw is returned unchanged together with an error
// wrapping ErrDateUnparseable, callers keep the raw value and warn.
func ConnectionDate(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	for _, layout := range connectionDateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t.Format(DateLayout), nil
		}
	}
	return raw, fmt.Errorf("%w: connection date %q", ErrDateUnparseable, raw)
}

// MessageTime reads the first 19 characters of raw as UTC wall clock time
// and converts it to loc (time.Local if nil). Anything after them, usually
// " UTC", is ignored.
func MessageTime(raw string, loc *time.Location) (MessageTimestamp, error) {
	if len(raw) < len(messageTimeLayout) {
		return MessageTimestamp{}, fmt.Errorf("%w: message time %q is too short", ErrDateUnparseable, raw)
	}

	t, err := time.ParseInLocation(messageTimeLayout, raw[:len(messageTimeLayout)], time.UTC)
	if err != nil {
		return MessageTimestamp{}, fmt.Errorf("%w: message time %q: %v", ErrDateUnparseable, raw, err)
	}

	if loc == nil {
		loc = time.Local
	}
	local := t.In(loc)

	return MessageTimestamp{
		Date: local.Format(DateLayout),
		Time: local.Format(TimeLayout),
		Unix: local.Unix(),
	}, nil
}
