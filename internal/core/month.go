package core

import (
	"strconv"
	"strings"
	"time"
)

// YearMonth identifies one calendar month.
type YearMonth struct {
	Year  int
	Month time.Month
}

// YearMonthOf returns the calendar month containing t.
func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// ParseYearMonth parses a "YYYY-MM" selector. Anything that is not a year
// plus a month in 1..12 is rejected with ErrInvalidMonth.
func ParseYearMonth(s string) (YearMonth, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 2 {
		return YearMonth{}, ErrInvalidMonth
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return YearMonth{}, ErrInvalidMonth
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return YearMonth{}, ErrInvalidMonth
	}
	if year < 1 || month < 1 || month > 12 {
		return YearMonth{}, ErrInvalidMonth
	}
	return YearMonth{Year: year, Month: time.Month(month)}, nil
}

// String renders the month as "YYYY-MM".
func (ym YearMonth) String() string {
	return strconv.Itoa(ym.Year) + "-" + twoDigits(int(ym.Month))
}

// Next returns the following calendar month.
func (ym YearMonth) Next() YearMonth {
	if ym.Month == time.December {
		return YearMonth{Year: ym.Year + 1, Month: time.January}
	}
	return YearMonth{Year: ym.Year, Month: ym.Month + 1}
}

// After reports whether ym is strictly later than other.
func (ym YearMonth) After(other YearMonth) bool {
	if ym.Year != other.Year {
		return ym.Year > other.Year
	}
	return ym.Month > other.Month
}

// LastDay returns the last calendar day of the month.
func (ym YearMonth) LastDay() time.Time {
	// Day zero of the next month.
	return time.Date(ym.Year, ym.Month+1, 0, 0, 0, 0, 0, time.UTC)
}

// Contains reports whether d falls inside the month. Only the year and month
// of d matter; the day a payment lands on is irrelevant to its bucket.
func (ym YearMonth) Contains(d Date) bool {
	return d.Year() == ym.Year && d.Time.Month() == ym.Month
}

func twoDigits(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
