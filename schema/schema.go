// Package schema has the datamart row model, derived dashboard records and
// shared constants for all parts of castdash.
package schema

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Row is one flat result row keyed by column name. Values are whatever the
// database driver produced: numbers, strings, bytes, booleans, times or nil.
type Row map[string]any

// Float returns the column as a float64, or 0 when it is missing or unparsable.
func (r Row) Float(col string) float64 {
	return AsFloat(r[col])
}

// Int returns the column as an int, or 0 when it is missing or unparsable.
func (r Row) Int(col string) int {
	return AsInt(r[col])
}

// String returns the column as a string, or "" when it is missing.
func (r Row) String(col string) string {
	return AsString(r[col])
}

// Time returns the column as a time and whether it held a usable value.
func (r Row) Time(col string) (time.Time, bool) {
	return AsTime(r[col])
}

// TimePtr returns the column as a time pointer, nil when absent.
func (r Row) TimePtr(col string) *time.Time {
	t, ok := r.Time(col)
	if !ok {
		return nil
	}
	return &t
}

// IsNull reports whether the column is absent or SQL NULL.
func (r Row) IsNull(col string) bool {
	v, ok := r[col]
	return !ok || v == nil
}

// NullableString returns nil for absent or empty values.
func (r Row) NullableString(col string) *string {
	s := r.String(col)
	if s == "" {
		return nil
	}
	return &s
}

// AsFloat coerces a driver value into a float64. NaN and infinities become 0.
func AsFloat(v any) float64 {
	var f float64
	switch x := v.(type) {
	case nil:
		return 0
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int8:
		f = float64(x)
	case int16:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case uint:
		f = float64(x)
	case uint8:
		f = float64(x)
	case uint16:
		f = float64(x)
	case uint32:
		f = float64(x)
	case uint64:
		f = float64(x)
	case string:
		f = parseFloat(x)
	case []byte:
		f = parseFloat(string(x))
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// AsInt coerces a driver value into an int, truncating fractional values.
func AsInt(v any) int {
	switch x := v.(type) {
	case int:
		return x
	case int64:
		return int(x)
	case int32:
		return int(x)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(x)); err == nil {
			return n
		}
	case []byte:
		if n, err := strconv.Atoi(strings.TrimSpace(string(x))); err == nil {
			return n
		}
	}
	return int(math.Trunc(AsFloat(v)))
}

// AsString coerces a driver value into a string.
func AsString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprint(x)
	}
}

// timeLayouts covers what pgx, go-sql-driver/mysql and modernc sqlite hand back.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999 -0700 MST",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// AsTime coerces a driver value into a time.
func AsTime(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, !x.IsZero()
	case *time.Time:
		if x == nil {
			return time.Time{}, false
		}
		return *x, !x.IsZero()
	case string:
		return parseTime(x)
	case []byte:
		return parseTime(string(x))
	}
	return time.Time{}, false
}

// MonthBucket returns the "YYYY-MM" period of a time in UTC.
func MonthBucket(t time.Time) string {
	return t.UTC().Format("2006-01")
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
