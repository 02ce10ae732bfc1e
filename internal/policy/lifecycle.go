package policy

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

var statusLabels = map[string]string{
	"pending":   "Хүлээгдэж байна",
	"approved":  "Зөвшөөрөгдсөн",
	"rejected":  "Татгалзсан",
	"active":    "Идэвхтэй",
	"extended":  "Сунгагдсан",
	"completed": "Төлөгдсөн",
	"overdue":   "Хугацаа хэтэрсэн",
	"defaulted": "Төлөгдөөгүй",
}

var statusColors = map[string]string{
	"pending":   "#FDCB6E",
	"approved":  "#00B894",
	"active":    "#00B894",
	"extended":  "#00B894",
	"completed": "#74B9FF",
	"overdue":   "#FF7675",
	"rejected":  "#FF7675",
}

var kycStatusLabels = map[string]string{
	"not_submitted": "Илгээгдээгүй",
	"pending":       "Хянагдаж байна",
	"approved":      "Баталгаажсан",
	"rejected":      "Татгалзсан",
}

// colorTextSecondary is the fallback for statuses without a mapped color.
const colorTextSecondary = "#636E72"

// StatusLabel returns the display label for a loan status. Unmapped
// statuses are rendered as-is.
func StatusLabel(status string) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return status
}

// StatusColor returns the display color for a loan status.
func StatusColor(status string) string {
	if color, ok := statusColors[status]; ok {
		return color
	}
	return colorTextSecondary
}

// KYCStatusLabel returns the display label for a KYC status.
func KYCStatusLabel(status string) string {
	if label, ok := kycStatusLabels[status]; ok {
		return label
	}
	return status
}

// DaysUntilDue returns whole days between now and the due date, rounded
// up. A loan due in three hours reports 1 day remaining; a negative
// result is days overdue. The zero due date reports 0.
func DaysUntilDue(dueDate, now time.Time) int {
	if dueDate.IsZero() {
		return 0
	}
	diff := dueDate.Sub(now)
	return int(math.Ceil(diff.Hours() / 24))
}

// ProgressPercent returns how much of the total has been repaid,
// clamped to an integer percentage 0..100. A zero total reports 0
// instead of dividing by zero.
func ProgressPercent(totalAmount, remainingAmount int64) int {
	if totalAmount == 0 {
		return 0
	}
	paid := decimal.NewFromInt(totalAmount - remainingAmount)
	pct := int(paid.Div(decimal.NewFromInt(totalAmount)).Mul(hundred).Round(0).IntPart())
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
