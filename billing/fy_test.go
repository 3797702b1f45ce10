package billing

import (
	"testing"
	"time"
)

func TestFinancialYear_AprilMarchBoundaries(t *testing.T) {
	cases := []struct {
		date     string
		expected string
	}{
		{"2025-04-01", "2025-26"},
		{"2025-12-31", "2025-26"},
		{"2026-01-01", "2025-26"},
		{"2026-03-31", "2025-26"},
		{"2026-04-01", "2026-27"},
		{"2025-03-31", "2024-25"},
		{"1999-06-15", "1999-00"},
	}
	for _, tc := range cases {
		d, err := time.Parse("2006-01-02", tc.date)
		if err != nil {
			t.Fatalf("bad test date %q: %v", tc.date, err)
		}
		if got := FinancialYear(d); got != tc.expected {
			t.Fatalf("FinancialYear(%s) expected %s, got %s", tc.date, tc.expected, got)
		}
	}
}

func TestFormatBillNumber(t *testing.T) {
	if got := FormatBillNumber("GB", "2025-26", 7); got != "GB/2025-26/07" {
		t.Fatalf("expected GB/2025-26/07, got %s", got)
	}
	if got := FormatBillNumber("GB", "2025-26", 123); got != "GB/2025-26/123" {
		t.Fatalf("expected GB/2025-26/123, got %s", got)
	}
}

func TestParseSequence(t *testing.T) {
	cases := []struct {
		in       string
		expected int
		ok       bool
	}{
		{"GB/2025-26/07", 7, true},
		{"GB/2025-26/123", 123, true},
		{"LEGACY-0042", 42, true},
		{"GB/2025-26/", 0, false},
		{"no digits", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseSequence(tc.in)
		if ok != tc.ok || got != tc.expected {
			t.Fatalf("ParseSequence(%q) expected (%d, %v), got (%d, %v)", tc.in, tc.expected, tc.ok, got, ok)
		}
	}
}

func TestReplaceSequence_KeepsPrefixAndYear(t *testing.T) {
	got, ok := ReplaceSequence("GB/2025-26/07", 42)
	if !ok || got != "GB/2025-26/42" {
		t.Fatalf("expected GB/2025-26/42, got %q (ok=%v)", got, ok)
	}

	// The FY segment ends in digits too; only the trailing run may change.
	got, ok = ReplaceSequence("GB/2025-26/99", 3)
	if !ok || got != "GB/2025-26/03" {
		t.Fatalf("expected GB/2025-26/03, got %q (ok=%v)", got, ok)
	}

	if _, ok := ReplaceSequence("no trailing digits/", 5); ok {
		t.Fatal("expected failure on a number with no trailing digits")
	}
}

func TestMonthWindow_InclusiveBounds(t *testing.T) {
	start, end := MonthWindow(2025, time.February, time.UTC)
	if start != time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("unexpected start %v", start)
	}
	wantEnd := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)
	if end != wantEnd {
		t.Fatalf("expected end %v, got %v", wantEnd, end)
	}
	if end.Month() != time.February {
		t.Fatalf("window end leaked into %s", end.Month())
	}
}

func TestParseMonth(t *testing.T) {
	cases := []struct {
		in       string
		expected time.Month
		ok       bool
	}{
		{"January", time.January, true},
		{"january", time.January, true},
		{" DECEMBER ", time.December, true},
		{"Jan", 0, false},
		{"", 0, false},
		{"Smarch", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseMonth(tc.in)
		if ok != tc.ok || got != tc.expected {
			t.Fatalf("ParseMonth(%q) expected (%v, %v), got (%v, %v)", tc.in, tc.expected, tc.ok, got, ok)
		}
	}
}
