package reportparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExcelDateString(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want string
	}{
		{"serial date", "44197", "1/1/2021"},
		{"another serial", "45292", "1/1/2024"},
		{"string passthrough", "Jan 5, 2024", "Jan 5, 2024"},
		{"empty", "", ""},
		{"zero serial", "0", ""},
		{"garbage", "n/a", "n/a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExcelDateString(tt.cell))
		})
	}
}

func TestExcelTimeString(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want string
	}{
		{"noon fraction", "0.5", "12:00"},
		{"evening fraction", "0.75", "18:00"},
		{"nine thirty", "0.3958333333", "09:30"},
		{"midnight fraction", "0", "00:00"},
		{"twelve hour am", "9:30 AM", "09:30"},
		{"twelve hour pm", "9:30 PM", "21:30"},
		{"noon pm", "12 PM", "12:00"},
		{"midnight am", "12 AM", "00:00"},
		{"passthrough", "evening", "evening"},
		{"serial above one", "1.5", "1.5"},
		{"trims", "  6:15 pm ", "18:15"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExcelTimeString(tt.cell))
		})
	}
}

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want float64
	}{
		{"dollar sign", "$45.00", 45},
		{"thousands", "$1,234.56", 1234.56},
		{"plain number", "99.5", 99.5},
		{"spaces", " $ 12 ", 12},
		{"newline", "$45.00\n", 45},
		{"non-breaking space", "$ 1 234.56", 1234.56},
		{"empty", "", 0},
		{"not a number", "free", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCurrency(tt.cell))
		})
	}
}

func TestParseNumber(t *testing.T) {
	assert.Equal(t, 12.0, ParseNumber("12"))
	assert.Equal(t, 0.0, ParseNumber(""))
	assert.Equal(t, 0.0, ParseNumber("twelve"))
	assert.Equal(t, -3.5, ParseNumber("-3.5"))
}

// Coercions are total: arbitrary junk must never panic, only degrade.
func TestCoercionTotality(t *testing.T) {
	inputs := []string{"", " ", "NaN", "Inf", "-Inf", "1e309", "0x12", "12:00:00", "−5", "\x00", "9999999999999"}
	for _, in := range inputs {
		assert.NotPanics(t, func() {
			_ = ExcelDateString(in)
			_ = ExcelTimeString(in)
			_ = ParseCurrency(in)
			_ = ParseNumber(in)
		}, "input %q", in)
	}
}
