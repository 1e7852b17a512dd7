package format

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		locale string
		code   string
		want   string
	}{
		{"euro in portugal", "25952.59", "pt-PT", "EUR", "25\u00a0952,59\u00a0€"},
		{"dollar in us", "11720", "en-US", "USD", "$11,720.00"},
		{"negative dollar", "-306.5", "en-US", "USD", "-$306.50"},
		{"euro in germany", "1300", "de-DE", "EUR", "1.300,00\u00a0€"},
		{"franc in switzerland", "25952.59", "de-CH", "CHF", "CHF\u00a025’952.59"},
		{"rounds to cents", "323.46276", "pt-PT", "EUR", "323,46\u00a0€"},
		{"small amount", "0.5", "en-US", "USD", "$0.50"},
		{"no minor units", "1234", "en-US", "JPY", "¥1,234"},
		{"rounds away negative zero", "-0.001", "en-US", "USD", "$0.00"},
		{"bad locale falls back", "1000", "??", "USD", "$1,000.00"},
		{"unknown currency", "12.3", "en-US", "XYZ", "12.30 XYZ"},
		{"beyond int64 minor units", "100000000000000000", "en-US", "USD", "$100,000,000,000,000,000.00"},
		{"large negative balance", "-944444444444446720", "en-US", "USD", "-$944,444,444,444,446,720.00"},
		{"large euro balance", "123456789012345678.9", "pt-PT", "EUR", "123\u00a0456\u00a0789\u00a0012\u00a0345\u00a0678,90\u00a0€"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Currency(decimal.RequireFromString(tt.value), tt.locale, tt.code)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSymbols(t *testing.T) {
	tests := []struct {
		name   string
		sample string
		want   numberSymbols
	}{
		{"english", "1,234,567.5", numberSymbols{decimal: ".", group: ",", primary: 3, secondary: 3}},
		{"portuguese", "1\u00a0234\u00a0567,5", numberSymbols{decimal: ",", group: "\u00a0", primary: 3, secondary: 3}},
		{"swiss", "1’234’567.5", numberSymbols{decimal: ".", group: "’", primary: 3, secondary: 3}},
		{"indian", "12,34,567.5", numberSymbols{decimal: ".", group: ",", primary: 3, secondary: 2}},
		{"ungrouped", "1234567,5", numberSymbols{decimal: ","}},
		{"leading mark", "\u200f1,234,567.5", numberSymbols{decimal: ".", group: ",", primary: 3, secondary: 3}},
		{"garbage", "n/a", englishSymbols},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSymbols(tt.sample))
		})
	}
}

func TestSymbolsFor(t *testing.T) {
	assert.Equal(t, englishSymbols, symbolsFor(language.AmericanEnglish))

	pt := symbolsFor(language.MustParse("pt-PT"))
	assert.Equal(t, ",", pt.decimal)
	assert.Equal(t, "\u00a0", pt.group)
}

func TestGroupDigits(t *testing.T) {
	english := numberSymbols{decimal: ".", group: ",", primary: 3, secondary: 3}
	indian := numberSymbols{decimal: ".", group: ",", primary: 3, secondary: 2}

	assert.Equal(t, "0", groupDigits("0", english))
	assert.Equal(t, "999", groupDigits("999", english))
	assert.Equal(t, "1,000", groupDigits("1000", english))
	assert.Equal(t, "123,456,789", groupDigits("123456789", english))
	assert.Equal(t, "12,34,56,789", groupDigits("123456789", indian))
	assert.Equal(t, "123456789", groupDigits("123456789", numberSymbols{decimal: ","}))
}

func TestMovementDate(t *testing.T) {
	now := time.Date(2023, 1, 17, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		date   time.Time
		locale string
		want   string
	}{
		{"same moment", now, "en-US", "Today"},
		{"eleven hours ago", now.Add(-11 * time.Hour), "en-US", "Today"},
		{"thirteen hours ago", now.Add(-13 * time.Hour), "en-US", "Yesterday"},
		{"one day", now.AddDate(0, 0, -1), "en-US", "Yesterday"},
		{"three days", now.AddDate(0, 0, -3), "pt-PT", "3 days ago"},
		{"seven days", now.AddDate(0, 0, -7), "en-US", "7 days ago"},
		{"eight days us", now.AddDate(0, 0, -8), "en-US", "1/9/2023"},
		{"eight days pt", now.AddDate(0, 0, -8), "pt-PT", "09/01/2023"},
		{"eight days de", now.AddDate(0, 0, -8), "de-DE", "9.1.2023"},
		{"future date", now.AddDate(0, 0, 2), "en-US", "2 days ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MovementDate(tt.date, now, tt.locale))
		})
	}
}

func TestSessionDate(t *testing.T) {
	now := time.Date(2023, 1, 7, 15, 4, 0, 0, time.UTC)

	assert.Equal(t, "1/7/2023, 3:04 PM", SessionDate(now, "en-US"))
	assert.Equal(t, "07/01/2023, 15:04", SessionDate(now, "pt-PT"))
}

func TestTimer(t *testing.T) {
	assert.Equal(t, "00:05:00", Timer(300))
	assert.Equal(t, "00:04:59", Timer(299))
	assert.Equal(t, "01:00:01", Timer(3601))
	assert.Equal(t, "00:00:00", Timer(0))
	assert.Equal(t, "00:00:00", Timer(-3))
}

func TestGreeting(t *testing.T) {
	assert.Equal(t, "Hello, Jonas. Nice to see you:)", Greeting("Jonas Schmedtmann"))
	assert.Equal(t, "Hello, Cher. Nice to see you:)", Greeting("Cher"))
}
