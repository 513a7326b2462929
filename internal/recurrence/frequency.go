package recurrence

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidFrequency is returned when an interval is missing, non-positive or unknown.
	ErrInvalidFrequency = errors.New("invalid frequency")
	// ErrInvalidState is returned for out-of-order completions and empty labels.
	ErrInvalidState = errors.New("invalid state")
)

// Class is a symbolic cadence.
type Class string

const (
	Daily    Class = "daily"
	Weekly   Class = "weekly"
	Biweekly Class = "biweekly"
	Monthly  Class = "monthly"
)

var classDays = map[Class]int{
	Daily:    1,
	Weekly:   7,
	Biweekly: 14,
}

// Frequency is either a symbolic class or an explicit day count. Exactly one is set.
type Frequency struct {
	Class Class
	Days  int
}

// Every returns a symbolic frequency.
func Every(class Class) Frequency {
	return Frequency{Class: class}
}

// EveryDays returns an explicit day-count frequency.
func EveryDays(n int) (Frequency, error) {
	f := Frequency{Days: n}
	if err := f.Validate(); err != nil {
		return Frequency{}, err
	}
	return f, nil
}

// ParseFrequency accepts a class name ("weekly") or a positive day count ("3").
func ParseFrequency(raw string) (Frequency, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return Frequency{}, fmt.Errorf("%w: empty", ErrInvalidFrequency)
	}
	if n, err := strconv.Atoi(value); err == nil {
		return EveryDays(n)
	}
	f := Frequency{Class: Class(value)}
	if err := f.Validate(); err != nil {
		return Frequency{}, err
	}
	return f, nil
}

// Validate reports whether the frequency can be applied.
func (f Frequency) Validate() error {
	switch {
	case f.Class == "" && f.Days == 0:
		return fmt.Errorf("%w: missing", ErrInvalidFrequency)
	case f.Class != "" && f.Days != 0:
		return fmt.Errorf("%w: both class %q and %d days set", ErrInvalidFrequency, f.Class, f.Days)
	case f.Class == "":
		if f.Days < 1 {
			return fmt.Errorf("%w: %d days", ErrInvalidFrequency, f.Days)
		}
		return nil
	case f.Class == Monthly:
		return nil
	}
	if _, ok := classDays[f.Class]; !ok {
		return fmt.Errorf("%w: unknown class %q", ErrInvalidFrequency, f.Class)
	}
	return nil
}

func (f Frequency) String() string {
	if f.Class != "" {
		return string(f.Class)
	}
	return strconv.Itoa(f.Days)
}

// NextDue advances ref by one application of f. Day arithmetic keeps the
// wall-clock time in ref's location; monthly keeps the day of month and
// clamps to the last day of the target month.
func NextDue(ref time.Time, f Frequency) (time.Time, error) {
	if err := f.Validate(); err != nil {
		return time.Time{}, err
	}
	if f.Class == Monthly {
		return addMonth(ref), nil
	}
	days := f.Days
	if f.Class != "" {
		days = classDays[f.Class]
	}
	return ref.AddDate(0, 0, days), nil
}

func addMonth(ref time.Time) time.Time {
	year, month, day := ref.Date()
	target := month + 1
	if last := daysInMonth(year, target); day > last {
		day = last
	}
	hour, min, sec := ref.Clock()
	return time.Date(year, target, day, hour, min, sec, ref.Nanosecond(), ref.Location())
}

// daysInMonth normalizes month overflow, so month 13 is January of year+1.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
