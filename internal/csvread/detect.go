package csvread

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Storage classes reported in pgload.Column.StorageClass.
const (
	ClassInt64    = "int64"
	ClassFloat64  = "float64"
	ClassBool     = "bool"
	ClassDatetime = "datetime"
	ClassDate     = "date"
	ClassString   = "string"
)

var (
	integerRegex = regexp.MustCompile(`^[+-]?\d+$`)
	numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)
)

// missingMarkers are cell values read as a missing value.
var missingMarkers = map[string]struct{}{
	"":     {},
	"#N/A": {},
	"#NA":  {},
	"<NA>": {},
	"N/A":  {},
	"n/a":  {},
	"NA":   {},
	"NULL": {},
	"null": {},
	"NaN":  {},
	"nan":  {},
	"-NaN": {},
	"-nan": {},
	"None": {},
}

// Layouts are tried in order; the first that parses wins.
var (
	datetimeLayouts = []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04:05.999999999",
		"2006-01-02 15:04:05Z07:00",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		"2006/01/02 15:04:05",
		"1/2/2006 15:04:05",
		"1/2/2006 15:04",
		"01/02/2006 15:04:05",
		"01/02/2006 15:04",
	}
	dateLayouts = []string{
		"2006-01-02", "2006/01/02", "2006.01.02",
		"1/2/2006", "01/02/2006", "1-2-2006", "01-02-2006", "1.2.2006", "01.02.2006",
		"Jan 2, 2006", "2 Jan 2006",
	}
)

func isMissing(s string) bool {
	_, ok := missingMarkers[s]
	return ok
}

// detectClass returns the narrowest storage class every present value fits.
// A column without present values is a string column.
func detectClass(values []string) string {
	present := make([]string, 0, len(values))
	for _, v := range values {
		if !isMissing(v) {
			present = append(present, strings.TrimSpace(v))
		}
	}
	if len(present) == 0 {
		return ClassString
	}

	candidates := []struct {
		class string
		fits  func(string) bool
	}{
		{ClassInt64, isInt64},
		{ClassFloat64, isFloat64},
		{ClassBool, isBool},
		{ClassDatetime, func(s string) bool { _, ok := parseTime(s, datetimeLayouts); return ok }},
		{ClassDate, func(s string) bool { _, ok := parseTime(s, dateLayouts); return ok }},
	}

	for _, c := range candidates {
		if allFit(present, c.fits) {
			return c.class
		}
	}

	return ClassString
}

func allFit(values []string, fits func(string) bool) bool {
	for _, v := range values {
		if !fits(v) {
			return false
		}
	}
	return true
}

func isInt64(s string) bool {
	if !integerRegex.MatchString(s) {
		return false
	}
	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil
}

func isFloat64(s string) bool {
	if !numericRegex.MatchString(s) {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

func isBool(s string) bool {
	switch strings.ToLower(s) {
	case "true", "false":
		return true
	}
	return false
}

func parseTime(s string, layouts []string) (time.Time, bool) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// convert turns a raw cell into the Go value for class. Missing cells are nil.
func convert(class, raw string) (any, error) {
	if isMissing(raw) {
		return nil, nil
	}

	s := strings.TrimSpace(raw)

	switch class {
	case ClassInt64:
		return strconv.ParseInt(s, 10, 64)
	case ClassFloat64:
		return strconv.ParseFloat(s, 64)
	case ClassBool:
		return strings.EqualFold(s, "true"), nil
	case ClassDatetime:
		if t, ok := parseTime(s, datetimeLayouts); ok {
			return t, nil
		}
		return nil, fmt.Errorf("not a datetime: %q", raw)
	case ClassDate:
		if t, ok := parseTime(s, dateLayouts); ok {
			return t, nil
		}
		return nil, fmt.Errorf("not a date: %q", raw)
	default:
		return raw, nil
	}
}
