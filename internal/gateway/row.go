package gateway

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Row is one record as returned by a backend. Values are whatever the backend
// produced: JSON numbers and strings over REST, driver values over SQL. The
// accessors normalise both.
type Row map[string]any

// Has reports whether the column is present and non-null
func (r Row) Has(key string) bool {
	v, ok := r[key]
	return ok && v != nil
}

// String returns the column as a string, or "" when absent
func (r Row) String(key string) string {
	switch v := r[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case json.Number:
		return v.String()
	case time.Time:
		return FormatTimestamp(v)
	default:
		return fmt.Sprint(v)
	}
}

// Int returns the column as an int, or 0 when absent or not numeric
func (r Row) Int(key string) int {
	switch v := r[key].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return int(i)
		}
		if f, err := v.Float64(); err == nil {
			return int(f)
		}
	case string:
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	case []byte:
		if i, err := strconv.Atoi(string(v)); err == nil {
			return i
		}
	}
	return 0
}

// Bool returns the column as a bool. SQLite stores booleans as integers.
func (r Row) Bool(key string) bool {
	switch v := r[key].(type) {
	case bool:
		return v
	case int64:
		return v != 0
	case int:
		return v != 0
	case float64:
		return v != 0
	case json.Number:
		return v.String() != "0"
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	case []byte:
		b, _ := strconv.ParseBool(string(v))
		return b
	}
	return false
}

// Decimal returns the column as a decimal, or zero when absent or malformed
func (r Row) Decimal(key string) decimal.Decimal {
	switch v := r[key].(type) {
	case decimal.Decimal:
		return v
	case int64:
		return decimal.NewFromInt(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case float64:
		return decimal.NewFromFloat(v)
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err == nil {
			return d
		}
	case string:
		d, err := decimal.NewFromString(v)
		if err == nil {
			return d
		}
	case []byte:
		d, err := decimal.NewFromString(string(v))
		if err == nil {
			return d
		}
	}
	return decimal.Zero
}

// Time returns the column as a UTC time, or nil when absent or unparseable.
// Accepted forms: time.Time, the stored timestamp and date layouts, RFC3339
// and unix seconds.
func (r Row) Time(key string) *time.Time {
	var t time.Time
	switch v := r[key].(type) {
	case nil:
		return nil
	case time.Time:
		t = v
	case string:
		parsed, ok := parseTime(v)
		if !ok {
			return nil
		}
		t = parsed
	case []byte:
		parsed, ok := parseTime(string(v))
		if !ok {
			return nil
		}
		t = parsed
	case int64:
		t = time.Unix(v, 0)
	case json.Number:
		i, err := v.Int64()
		if err != nil {
			return nil
		}
		t = time.Unix(i, 0)
	default:
		return nil
	}
	t = t.UTC()
	return &t
}

// TimeOr returns the column as a time, or fallback when absent
func (r Row) TimeOr(key string, fallback time.Time) time.Time {
	if t := r.Time(key); t != nil {
		return *t
	}
	return fallback
}

var timeLayouts = []string{
	TimestampLayout,
	time.RFC3339Nano,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	DateLayout,
}

func parseTime(s string) (time.Time, bool) {
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
