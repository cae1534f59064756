package booking

import (
	"errors"
	"fmt"
	"time"
)

const maxDailySequence = 9999

var ErrSequenceOutOfRange = errors.New("daily booking sequence out of range")

// FormatNumber renders BK-YYYYMMDD-NNNN for the seq-th booking of day.
func FormatNumber(day time.Time, seq int) (string, error) {
	if seq < 1 || seq > maxDailySequence {
		return "", ErrSequenceOutOfRange
	}
	return fmt.Sprintf("BK-%s-%04d", day.Format("20060102"), seq), nil
}
