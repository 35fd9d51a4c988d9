package util

import (
	"time"

	"github.com/dafibh/zerobudget/internal/domain"
)

// CurrentMonth returns the month containing now, in UTC
func CurrentMonth(now time.Time) domain.MonthKey {
	return domain.MonthKeyFromTime(now.UTC())
}
