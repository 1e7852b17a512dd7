package format

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const LoggedOutMessage = "Log in to get started"

var defaultLocale = language.AmericanEnglish

// numberSymbols are the CLDR decimal conventions of a locale. Primary is the
// size of the group next to the decimal separator; secondary repeats above it.
type numberSymbols struct {
	decimal   string
	group     string
	primary   int
	secondary int
}

var (
	englishSymbols = numberSymbols{decimal: ".", group: ",", primary: 3, secondary: 3}

	symbolCache sync.Map
)

// Currency symbol placement in go-money template syntax ("$" symbol, "1"
// amount). Locales not listed keep the currency's own go-money template.
var (
	symbolAfter = "1\u00a0$"
	symbolSpace = "$\u00a01"

	templatesByBase = map[string]string{
		"pt": symbolAfter, "de": symbolAfter, "fr": symbolAfter, "es": symbolAfter,
		"it": symbolAfter, "fi": symbolAfter, "sv": symbolAfter, "pl": symbolAfter,
		"cs": symbolAfter, "sk": symbolAfter, "ru": symbolAfter, "uk": symbolAfter,
		"nl": symbolSpace,
	}
	templatesByTag = map[string]string{
		"de-CH": symbolSpace,
		"pt-BR": symbolSpace,
	}
)

// parseLocale falls back to en-US for empty or malformed tags.
func parseLocale(locale string) language.Tag {
	tag, err := language.Parse(locale)
	if err != nil || locale == "" {
		return defaultLocale
	}
	return tag
}

func baseOf(tag language.Tag) string {
	base, _ := tag.Base()
	return base.String()
}

func regionOf(tag language.Tag) string {
	region, _ := tag.Region()
	return region.String()
}

// symbolsFor reads the separators and group sizes of tag from the x/text
// number tables by formatting a known sample.
func symbolsFor(tag language.Tag) numberSymbols {
	key := tag.String()
	if v, ok := symbolCache.Load(key); ok {
		return v.(numberSymbols)
	}

	sample := message.NewPrinter(tag).Sprint(number.Decimal(1234567.5, number.Scale(1)))
	sym := parseSymbols(sample)
	symbolCache.Store(key, sym)
	return sym
}

// parseSymbols decodes a rendering of 1234567.5. Anything unexpected yields
// the English conventions.
func parseSymbols(sample string) numberSymbols {
	var digits, seps []string
	var cur strings.Builder
	inDigits := false

	flush := func() {
		if cur.Len() == 0 {
			return
		}
		if inDigits {
			digits = append(digits, cur.String())
		} else {
			seps = append(seps, cur.String())
		}
		cur.Reset()
	}
	for _, r := range sample {
		if isDigit := unicode.IsDigit(r); isDigit != inDigits {
			flush()
			inDigits = isDigit
		}
		cur.WriteRune(r)
	}
	flush()

	// Leading non-digits (a sign or bidi mark) are not separators.
	if len(seps) == len(digits) {
		seps = seps[1:]
	}
	if len(digits) < 2 || len(seps) != len(digits)-1 {
		return englishSymbols
	}

	sym := numberSymbols{decimal: seps[len(seps)-1]}
	intGroups := digits[:len(digits)-1]
	if len(intGroups) == 1 {
		return sym
	}

	sym.group = seps[0]
	sym.primary = utf8.RuneCountInString(intGroups[len(intGroups)-1])
	sym.secondary = sym.primary
	if len(intGroups) > 2 {
		sym.secondary = utf8.RuneCountInString(intGroups[len(intGroups)-2])
	}
	return sym
}

// groupDigits inserts the group separator into a string of ASCII digits.
func groupDigits(digits string, sym numberSymbols) string {
	if sym.group == "" || sym.primary <= 0 || len(digits) <= sym.primary {
		return digits
	}
	secondary := sym.secondary
	if secondary <= 0 {
		secondary = sym.primary
	}

	head := digits[:len(digits)-sym.primary]
	parts := []string{digits[len(digits)-sym.primary:]}
	for len(head) > secondary {
		parts = append(parts, head[len(head)-secondary:])
		head = head[:len(head)-secondary]
	}
	parts = append(parts, head)
	slices.Reverse(parts)

	return strings.Join(parts, sym.group)
}

func templateFor(tag language.Tag, fallback string) string {
	if t, ok := templatesByTag[baseOf(tag)+"-"+regionOf(tag)]; ok {
		return t
	}
	if t, ok := templatesByBase[baseOf(tag)]; ok {
		return t
	}
	return fallback
}

// Currency renders value in the currency given by code using the number
// conventions of locale, e.g. 25952.59 EUR in pt-PT is "25 952,59 €" with
// no-break spaces. The value is formatted from its exact decimal digits, so
// any magnitude renders correctly.
func Currency(value decimal.Decimal, locale, code string) string {
	fraction, grapheme, template := 2, code, "1 $"
	if cur := money.GetCurrency(code); cur != nil {
		fraction, grapheme, template = cur.Fraction, cur.Grapheme, cur.Template
	}

	tag := parseLocale(locale)
	sym := symbolsFor(tag)

	rounded := value.Round(int32(fraction))
	intPart, fracPart, _ := strings.Cut(rounded.Abs().StringFixed(int32(fraction)), ".")

	amount := groupDigits(intPart, sym)
	if fracPart != "" {
		amount += sym.decimal + fracPart
	}

	out := strings.Replace(templateFor(tag, template), "1", amount, 1)
	out = strings.Replace(out, "$", grapheme, 1)
	if rounded.IsNegative() {
		out = "-" + out
	}
	return out
}

// MovementDate labels a movement relative to now. Anything older than a week
// falls back to the locale date.
func MovementDate(date, now time.Time, locale string) string {
	days := int(math.Round(math.Abs(now.Sub(date).Hours()) / 24))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days <= 7:
		return fmt.Sprintf("%d days ago", days)
	default:
		return Date(date, locale)
	}
}

func Date(date time.Time, locale string) string {
	tag := parseLocale(locale)

	switch {
	case regionOf(tag) == "US":
		return date.Format("1/2/2006")
	case baseOf(tag) == "de":
		return date.Format("2.1.2006")
	default:
		return date.Format("02/01/2006")
	}
}

// SessionDate is the date and time label shown next to the balance.
func SessionDate(now time.Time, locale string) string {
	if regionOf(parseLocale(locale)) == "US" {
		return now.Format("1/2/2006, 3:04 PM")
	}
	return now.Format("02/01/2006, 15:04")
}

// Timer renders seconds as HH:MM:SS. Negative input renders as zero.
func Timer(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds%3600/60, seconds%60)
}

func Greeting(owner string) string {
	first, _, _ := strings.Cut(strings.TrimSpace(owner), " ")
	return fmt.Sprintf("Hello, %s. Nice to see you:)", first)
}
