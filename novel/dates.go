package novel

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"

	"mdnovx/common"
)

const (
	isoDateLayout = "2006-01-02"
	isoTimeLayout = "15:04:05"
)

// VerifiedDate checks that value is a calendar date in ISO 8601 form
// (YYYY-MM-DD) and returns it unchanged.
func VerifiedDate(value string) (string, error) {
	if _, err := time.Parse(isoDateLayout, value); err != nil {
		return "", &common.FormatError{Field: "date", Value: value, Err: err}
	}
	return value, nil
}

// VerifiedTime checks that value is a time of day in ISO 8601 form and
// returns it padded to full HH:MM:SS precision.
func VerifiedTime(value string) (string, error) {
	padded := value
	for strings.Count(padded, ":") < 2 {
		padded += ":00"
	}
	if _, err := time.Parse(isoTimeLayout, padded); err != nil {
		return "", &common.FormatError{Field: "time", Value: value, Err: err}
	}
	return padded, nil
}

// VerifiedInt checks that value parses as a decimal integer and returns it
// unchanged.
func VerifiedInt(value string) (string, error) {
	if _, err := strconv.Atoi(value); err != nil {
		return "", &common.FormatError{Field: "number", Value: value, Err: err}
	}
	return value, nil
}

// localeTag is the language the process environment asks dates to be
// displayed in. Display only, never persisted.
var localeTag = func() language.Tag {
	for _, name := range []string{"LC_TIME", "LC_ALL", "LANG"} {
		env := os.Getenv(name)
		if env == "" || env == "C" || env == "POSIX" {
			continue
		}
		if i := strings.IndexAny(env, ".@"); i >= 0 {
			env = env[:i]
		}
		if tag, err := language.Parse(env); err == nil {
			return tag
		}
	}
	return language.English
}()

func localeDate(value string) string {
	t, err := time.Parse(isoDateLayout, value)
	if err != nil {
		return ""
	}
	region, _ := localeTag.Region()
	switch region.String() {
	case "US":
		return t.Format("01/02/2006")
	case "JP", "CN", "KR", "HU":
		return t.Format("2006/01/02")
	default:
		return t.Format("02/01/2006")
	}
}

func weekDay(value string) (time.Weekday, bool) {
	t, err := time.Parse(isoDateLayout, value)
	if err != nil {
		return 0, false
	}
	return t.Weekday(), true
}

// Age reports a character's age in full years at nowISO. When deathISO is set
// and lies before nowISO the result is negative and counts the years passed
// since death instead.
func Age(nowISO, birthISO, deathISO string) (int, error) {
	now, err := time.Parse(isoDateLayout, nowISO)
	if err != nil {
		return 0, &common.FormatError{Field: "date", Value: nowISO, Err: err}
	}
	if deathISO != "" {
		death, err := time.Parse(isoDateLayout, deathISO)
		if err != nil {
			return 0, &common.FormatError{Field: "death date", Value: deathISO, Err: err}
		}
		if now.After(death) {
			return -fullYears(death, now), nil
		}
	}
	birth, err := time.Parse(isoDateLayout, birthISO)
	if err != nil {
		return 0, &common.FormatError{Field: "birth date", Value: birthISO, Err: err}
	}
	return fullYears(birth, now), nil
}

func fullYears(from, to time.Time) int {
	years := to.Year() - from.Year()
	if to.Month() < from.Month() || (to.Month() == from.Month() && to.Day() < from.Day()) {
		years--
	}
	return years
}

// DateFromDay converts an unspecific day number to a calendar date relative
// to the project reference date.
func DateFromDay(day, referenceDate string) (string, error) {
	ref, err := time.Parse(isoDateLayout, referenceDate)
	if err != nil {
		return "", &common.FormatError{Field: "reference date", Value: referenceDate, Err: err}
	}
	offset, err := strconv.Atoi(day)
	if err != nil {
		return "", &common.FormatError{Field: "day", Value: day, Err: err}
	}
	return ref.AddDate(0, 0, offset).Format(isoDateLayout), nil
}

// DayFromDate converts a calendar date back to a day number relative to the
// project reference date.
func DayFromDate(date, referenceDate string) (string, error) {
	ref, err := time.Parse(isoDateLayout, referenceDate)
	if err != nil {
		return "", &common.FormatError{Field: "reference date", Value: referenceDate, Err: err}
	}
	t, err := time.Parse(isoDateLayout, date)
	if err != nil {
		return "", &common.FormatError{Field: "date", Value: date, Err: err}
	}
	return fmt.Sprint(int(t.Sub(ref).Hours() / 24)), nil
}
