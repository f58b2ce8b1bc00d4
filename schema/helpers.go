package schema

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// timeLayouts lists the date formats accepted when coercing scalars to
// timestamps, tried in order.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
}

// IsMissing reports whether a scalar counts as a missing value:
// nil or an empty / whitespace-only string.
func IsMissing(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// AsFloat coerces a scalar to float64. Numeric strings parse; booleans
// and unparseable values do not.
func AsFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// AsString renders a scalar as its canonical string form.
func AsString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprintf("%v", x)
	}
}

// AsTime coerces a scalar to a timestamp. Strings are tried against the
// known layouts; large numbers are treated as Unix seconds or millis.
func AsTime(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, true
	case string:
		s := strings.TrimSpace(x)
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return epochToTime(f)
		}
		return time.Time{}, false
	case float64:
		return epochToTime(x)
	case int64:
		return epochToTime(float64(x))
	case int:
		return epochToTime(float64(x))
	default:
		return time.Time{}, false
	}
}

// epochToTime interprets a number as a Unix timestamp. Values above
// 1e12 are treated as milliseconds. Small numbers are rejected since
// they are far more likely to be ordinary measurements than epochs.
func epochToTime(f float64) (time.Time, bool) {
	if f > 1e12 {
		return time.UnixMilli(int64(f)).UTC(), true
	}
	if f > 1e9 {
		return time.Unix(int64(f), 0).UTC(), true
	}
	return time.Time{}, false
}

// DayOf truncates a timestamp to its UTC calendar day.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DetectPrimitive classifies a set of sample values into a primitive
// type. Missing values are skipped; a column whose non-missing samples
// disagree is "mixed"; an all-missing column is "null".
func DetectPrimitive(values []any) PrimitiveType {
	detected := PrimNull
	for _, v := range values {
		if IsMissing(v) {
			continue
		}
		p := primitiveOf(v)
		if detected == PrimNull {
			detected = p
		} else if detected != p {
			return PrimMixed
		}
	}
	return detected
}

func primitiveOf(v any) PrimitiveType {
	switch x := v.(type) {
	case bool:
		return PrimBoolean
	case float64, float32, int, int64:
		return PrimNumber
	case time.Time:
		return PrimDate
	case string:
		s := strings.TrimSpace(x)
		if _, err := strconv.ParseFloat(s, 64); err == nil {
			return PrimNumber
		}
		if strings.EqualFold(s, "true") || strings.EqualFold(s, "false") {
			return PrimBoolean
		}
		for _, layout := range timeLayouts {
			if _, err := time.Parse(layout, s); err == nil {
				return PrimDate
			}
		}
		return PrimString
	default:
		return PrimString
	}
}

// NormalizeTitle lowercases a title and strips everything that is not
// a letter or digit. Used for insight deduplication.
func NormalizeTitle(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
