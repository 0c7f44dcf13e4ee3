// Package normalize coerces loosely typed spreadsheet cells into canonical
// identifiers, integer amounts and period buckets. Every function is pure and
// never fails: malformed input degrades to a zero or fallback value.
package normalize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"curtainledger/internal/model"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Spreadsheet serial day numbers outside this range are not treated as dates.
const (
	minSerialDate = 1
	maxSerialDate = 2958465 // 9999-12-31
)

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006-1-2",
	"2006/1/2",
	"2006.01.02",
	"2006.1.2",
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"20060102",
}

var maxAmount = decimal.NewFromInt(model.MaxAmount)

// Text renders a raw cell as a trimmed string. Nil and NaN become "".
func Text(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ""
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return Text(float64(v))
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case json.Number:
		return strings.TrimSpace(v.String())
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return v.Format("2006-01-02")
	case decimal.Decimal:
		return v.String()
	default:
		if s, ok := raw.(interface{ String() string }); ok {
			return strings.TrimSpace(s.String())
		}
		return ""
	}
}

// ID canonicalizes an identifier: surrounding whitespace and trailing ".0"
// float artifacts are removed until the value is stable.
func ID(raw any) string {
	s := Text(raw)
	for {
		s = strings.TrimSpace(s)
		if !strings.HasSuffix(s, ".0") {
			return s
		}
		s = s[:len(s)-2]
	}
}

// Amount coerces a raw cell to a non-negative integer amount, truncating any
// fraction. Unparseable input and values above model.MaxAmount yield 0.
func Amount(raw any) int64 {
	switch v := raw.(type) {
	case nil:
		return 0
	case int:
		return clamp(int64(v))
	case int64:
		return clamp(v)
	case int32:
		return clamp(int64(v))
	case float32:
		return Amount(float64(v))
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0
		}
		return amountFromDecimal(decimal.NewFromFloat(v))
	case decimal.Decimal:
		return amountFromDecimal(v)
	}

	s := cleanNumber(Text(raw))
	if s == "" {
		return 0
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	return amountFromDecimal(d)
}

func amountFromDecimal(d decimal.Decimal) int64 {
	if d.Abs().GreaterThan(maxAmount) {
		return 0
	}
	return clamp(d.IntPart())
}

func clamp(n int64) int64 {
	if n < 0 || n > model.MaxAmount {
		return 0
	}
	return n
}

func cleanNumber(s string) string {
	for _, prefix := range []string{"NT$", "$", "＄"} {
		s = strings.TrimPrefix(s, prefix)
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "，", "")
	return strings.TrimSpace(s)
}

// ParseDate accepts the date spellings seen in the sheets, plus spreadsheet
// serial day numbers.
func ParseDate(raw any) (time.Time, bool) {
	if t, ok := raw.(time.Time); ok {
		return t, !t.IsZero()
	}
	s := Text(raw)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f >= minSerialDate && f <= maxSerialDate {
		if t, err := excelize.ExcelDateToTime(f, false); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// YearMonth derives the period bucket of a raw date, substituting now's year
// and month when the value cannot be parsed.
func YearMonth(raw any, now time.Time) (int, int) {
	if t, ok := ParseDate(raw); ok {
		return t.Year(), int(t.Month())
	}
	return now.Year(), int(now.Month())
}

// Bucket is YearMonth as a model.Period.
func Bucket(raw any, now time.Time) model.Period {
	y, m := YearMonth(raw, now)
	return model.Period{Year: y, Month: m}
}

// FormatDate renders a parseable date as YYYY-MM-DD for write-back and leaves
// anything else untouched.
func FormatDate(raw string) string {
	if t, ok := ParseDate(raw); ok {
		return t.Format("2006-01-02")
	}
	return raw
}

// Phone applies id cleanup and, when digitsOnly is set, drops every
// non-digit character.
func Phone(raw any, digitsOnly bool) string {
	s := ID(raw)
	if !digitsOnly {
		return s
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}
