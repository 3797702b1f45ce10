package billing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// FinancialYear renders the April–March accounting cycle containing t, e.g.
// "2025-26" for any date from 2025-04-01 through 2026-03-31.
func FinancialYear(t time.Time) string {
	start := t.Year()
	if t.Month() < time.April {
		start--
	}
	return fmt.Sprintf("%d-%02d", start, (start+1)%100)
}

// FormatBillNumber renders PREFIX/FY/SEQ, e.g. "GB/2025-26/07".
func FormatBillNumber(prefix, fy string, seq int) string {
	return fmt.Sprintf("%s/%s/%02d", prefix, fy, seq)
}

var trailingSeq = regexp.MustCompile(`(\d+)$`)

// ParseSequence extracts the trailing numeric segment of a bill number.
func ParseSequence(billNumber string) (int, bool) {
	m := trailingSeq.FindStringSubmatch(billNumber)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// ReplaceSequence swaps the trailing numeric segment of a bill number for seq,
// preserving the prefix and financial-year segments.
func ReplaceSequence(billNumber string, seq int) (string, bool) {
	loc := trailingSeq.FindStringIndex(billNumber)
	if loc == nil {
		return "", false
	}
	return billNumber[:loc[0]] + fmt.Sprintf("%02d", seq), true
}

// MonthWindow returns the inclusive [start, end] bounds of a calendar month.
// Orders are selected by creation timestamp within this window.
func MonthWindow(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}

// ParseMonth accepts a full English month name, case-insensitive.
func ParseMonth(name string) (time.Month, bool) {
	name = strings.TrimSpace(name)
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(m.String(), name) {
			return m, true
		}
	}
	return 0, false
}
