package domain

import (
	"fmt"
	"strconv"
	"time"
)

// MonthKey identifies a calendar budgeting period. Its canonical form is "YYYY-MM".
type MonthKey struct {
	Year  int
	Month int
}

// NewMonthKey builds a MonthKey, rejecting months outside 1..12 and years
// that do not fit the four digit canonical form.
func NewMonthKey(year, month int) (MonthKey, error) {
	if month < 1 || month > 12 {
		return MonthKey{}, fmt.Errorf("%w: month %d out of range", ErrInvalidDate, month)
	}
	if year < 1 || year > 9999 {
		return MonthKey{}, fmt.Errorf("%w: year %d out of range", ErrInvalidDate, year)
	}
	return MonthKey{Year: year, Month: month}, nil
}

// ParseMonthKey parses the canonical "YYYY-MM" form
func ParseMonthKey(s string) (MonthKey, error) {
	if len(s) != 7 || s[4] != '-' || !isDigits(s[:4]) || !isDigits(s[5:]) {
		return MonthKey{}, fmt.Errorf("%w: %q is not in YYYY-MM format", ErrInvalidDate, s)
	}
	year, _ := strconv.Atoi(s[:4])
	month, _ := strconv.Atoi(s[5:])
	return NewMonthKey(year, month)
}

// MustParseMonthKey is like ParseMonthKey but panics on malformed input.
func MustParseMonthKey(s string) MonthKey {
	k, err := ParseMonthKey(s)
	if err != nil {
		panic(err)
	}
	return k
}

// MonthKeyFromTime returns the month containing t, in t's location
func MonthKeyFromTime(t time.Time) MonthKey {
	return MonthKey{Year: t.Year(), Month: int(t.Month())}
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

// String returns the canonical "YYYY-MM" form
func (k MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", k.Year, k.Month)
}

// IsZero reports whether k is the zero value, which is not a valid month
func (k MonthKey) IsZero() bool {
	return k.Year == 0 && k.Month == 0
}

// Shift returns the month n calendar months away from k. n may be negative.
func (k MonthKey) Shift(n int) MonthKey {
	idx := k.Year*12 + (k.Month - 1) + n
	year, month := idx/12, idx%12
	if month < 0 {
		month += 12
		year--
	}
	return MonthKey{Year: year, Month: month + 1}
}

// Previous returns the month immediately before k
func (k MonthKey) Previous() MonthKey {
	return k.Shift(-1)
}

// Next returns the month immediately after k
func (k MonthKey) Next() MonthKey {
	return k.Shift(1)
}

// Compare orders keys by year, then month. It returns -1, 0 or +1.
func (k MonthKey) Compare(other MonthKey) int {
	switch {
	case k.Year < other.Year:
		return -1
	case k.Year > other.Year:
		return 1
	case k.Month < other.Month:
		return -1
	case k.Month > other.Month:
		return 1
	}
	return 0
}

// Before reports whether k is earlier than other
func (k MonthKey) Before(other MonthKey) bool { return k.Compare(other) < 0 }

// After reports whether k is later than other
func (k MonthKey) After(other MonthKey) bool { return k.Compare(other) > 0 }

// StartDate returns midnight UTC on the first day of the month
func (k MonthKey) StartDate() time.Time {
	return time.Date(k.Year, time.Month(k.Month), 1, 0, 0, 0, 0, time.UTC)
}

// EndDate returns midnight UTC on the last day of the month
func (k MonthKey) EndDate() time.Time {
	return k.StartDate().AddDate(0, 1, -1)
}

// MarshalText implements encoding.TextMarshaler so MonthKey can be used as a
// JSON value and as a JSON object key.
func (k MonthKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *MonthKey) UnmarshalText(text []byte) error {
	parsed, err := ParseMonthKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
