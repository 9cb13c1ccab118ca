package cli

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/fintrack/internal/model"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"5", "$5.00"},
		{"40.5", "$40.50"},
		{"1234.567", "$1,234.57"},
		{"1000000", "$1,000,000.00"},
		{"-10", "-$10.00"},
	}
	for _, tt := range tests {
		if got := FormatMoney(decimal.RequireFromString(tt.in)); got != tt.want {
			t.Errorf("FormatMoney(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatSignedMoney(t *testing.T) {
	d := decimal.NewFromInt(25)
	if got := FormatSignedMoney(d, model.Income); got != "+$25.00" {
		t.Errorf("income = %q, want +$25.00", got)
	}
	if got := FormatSignedMoney(d, model.Expense); got != "-$25.00" {
		t.Errorf("expense = %q, want -$25.00", got)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-4200, "-4,200"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatShare(t *testing.T) {
	if got := FormatShare(decimal.NewFromInt(1), decimal.NewFromInt(4)); got != "25.0%" {
		t.Errorf("FormatShare(1, 4) = %q, want 25.0%%", got)
	}
	if got := FormatShare(decimal.NewFromInt(1), decimal.Zero); got != "0.0%" {
		t.Errorf("FormatShare(1, 0) = %q, want 0.0%%", got)
	}
}

func TestCapitalize(t *testing.T) {
	if got := Capitalize("food"); got != "Food" {
		t.Errorf("Capitalize(food) = %q", got)
	}
	if got := Capitalize(""); got != "" {
		t.Errorf("Capitalize(\"\") = %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	if got := FormatDate(d); got != "Mon 06-02" {
		t.Errorf("FormatDate = %q, want Mon 06-02", got)
	}
}
