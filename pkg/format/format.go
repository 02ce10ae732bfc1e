// Package format renders money, phone numbers and dates the way the
// Cashly product displays them. Every function degrades to a defined
// fallback on bad input instead of returning an error.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Currency is the tögrög sign appended to formatted amounts.
const Currency = "₮"

// DateMode selects one of the supported date renderings.
type DateMode string

const (
	DateShort    DateMode = "short"    // 2006/01/02
	DateLong     DateMode = "long"     // 2006/01/02 15:04
	DateFull     DateMode = "full"     // Нэгдүгээр сар 02, 2006
	DateRelative DateMode = "relative" // 5 минутын өмнө
)

var monthNames = [12]string{
	"Нэгдүгээр сар", "Хоёрдугаар сар", "Гуравдугаар сар",
	"Дөрөвдүгээр сар", "Тавдугаар сар", "Зургадугаар сар",
	"Долдугаар сар", "Наймдугаар сар", "Есдүгээр сар",
	"Аравдугаар сар", "Арван нэгдүгээр сар", "Арван хоёрдугаар сар",
}

// Money renders an amount with thousands separators, truncating any
// fractional part. NaN and infinities render as the zero amount.
func Money(amount float64, showCurrency bool) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}

	grouped := groupThousands(int64(math.Floor(amount)))
	if showCurrency {
		return grouped + Currency
	}
	return grouped
}

// MoneyCompact renders an amount in short form: millions with one
// decimal ("1.5M₮"), thousands as a whole number ("3K₮", ties rounded
// away from zero), smaller amounts plain.
func MoneyCompact(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}

	switch {
	case amount >= 1_000_000:
		return decimal.NewFromFloat(amount / 1_000_000).StringFixed(1) + "M" + Currency
	case amount >= 1_000:
		return decimal.NewFromFloat(amount / 1_000).StringFixed(0) + "K" + Currency
	default:
		return strconv.FormatInt(int64(math.Floor(amount)), 10) + Currency
	}
}

// Phone groups an 8-digit subscriber number as "XXXX XXXX". Anything
// that does not strip down to exactly 8 digits is returned unchanged.
func Phone(phone string) string {
	if phone == "" {
		return ""
	}

	cleaned := stripNonDigits(phone)
	if len(cleaned) == 8 {
		return cleaned[:4] + " " + cleaned[4:]
	}
	return phone
}

// Date renders a timestamp in the requested mode. The zero time renders
// as an empty string. Relative mode buckets against the current clock;
// use RelativeTime directly when the reference time matters.
func Date(t time.Time, mode DateMode) string {
	if t.IsZero() {
		return ""
	}

	switch mode {
	case DateLong:
		return t.Format("2006/01/02 15:04")
	case DateFull:
		return fmt.Sprintf("%s %02d, %d", monthNames[t.Month()-1], t.Day(), t.Year())
	case DateRelative:
		return RelativeTime(t, time.Now())
	default:
		return t.Format("2006/01/02")
	}
}

// RelativeTime renders a human-relative timestamp: "just now" under a
// minute, then minutes, hours, days, and the short date beyond a week.
func RelativeTime(t, now time.Time) string {
	diff := now.Sub(t)

	seconds := int(diff.Seconds())
	minutes := int(diff.Minutes())
	hours := int(diff.Hours())
	days := hours / 24

	switch {
	case seconds < 60:
		return "Дөнгөж сая"
	case minutes < 60:
		return fmt.Sprintf("%d минутын өмнө", minutes)
	case hours < 24:
		return fmt.Sprintf("%d цагийн өмнө", hours)
	case days < 7:
		return fmt.Sprintf("%d өдрийн өмнө", days)
	default:
		return Date(t, DateShort)
	}
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	for i, digit := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}

func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
