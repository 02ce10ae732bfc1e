package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		status   string
		expected string
	}{
		{"pending", "Хүлээгдэж байна"},
		{"approved", "Зөвшөөрөгдсөн"},
		{"rejected", "Татгалзсан"},
		{"active", "Идэвхтэй"},
		{"extended", "Сунгагдсан"},
		{"completed", "Төлөгдсөн"},
		{"overdue", "Хугацаа хэтэрсэн"},
		{"defaulted", "Төлөгдөөгүй"},
		{"something_else", "something_else"}, // unmapped renders as-is
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, StatusLabel(tt.status), "status %q", tt.status)
	}
}

func TestStatusColor(t *testing.T) {
	assert.Equal(t, "#FDCB6E", StatusColor("pending"))
	assert.Equal(t, "#00B894", StatusColor("active"))
	assert.Equal(t, "#00B894", StatusColor("extended"))
	assert.Equal(t, "#74B9FF", StatusColor("completed"))
	assert.Equal(t, "#FF7675", StatusColor("overdue"))
	assert.Equal(t, "#FF7675", StatusColor("rejected"))

	// statuses without a mapped color fall back to the secondary text color
	assert.Equal(t, "#636E72", StatusColor("defaulted"))
	assert.Equal(t, "#636E72", StatusColor("unknown"))
}

func TestKYCStatusLabel(t *testing.T) {
	assert.Equal(t, "Илгээгдээгүй", KYCStatusLabel("not_submitted"))
	assert.Equal(t, "Хянагдаж байна", KYCStatusLabel("pending"))
	assert.Equal(t, "Баталгаажсан", KYCStatusLabel("approved"))
	assert.Equal(t, "Татгалзсан", KYCStatusLabel("rejected"))
	assert.Equal(t, "weird", KYCStatusLabel("weird"))
}

func TestDaysUntilDue(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		dueDate  time.Time
		expected int
	}{
		{"due in three hours still counts as one day", now.Add(3 * time.Hour), 1},
		{"due in exactly 24 hours", now.Add(24 * time.Hour), 1},
		{"due in 25 hours rounds up to two days", now.Add(25 * time.Hour), 2},
		{"due right now", now, 0},
		{"three hours overdue is still day zero", now.Add(-3 * time.Hour), 0},
		{"thirty hours overdue", now.Add(-30 * time.Hour), -1},
		{"five days overdue", now.AddDate(0, 0, -5), -5},
		{"ten days remaining", now.AddDate(0, 0, 10), 10},
		{"zero due date", time.Time{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DaysUntilDue(tt.dueDate, now))
		})
	}
}

func TestProgressPercent(t *testing.T) {
	tests := []struct {
		name      string
		total     int64
		remaining int64
		expected  int
	}{
		{"nothing paid", 102400, 102400, 0},
		{"half paid", 102400, 51200, 50},
		{"fully paid", 102400, 0, 100},
		{"rounds to nearest", 300, 100, 67}, // 200/300 = 66.67%
		{"zero total guards against division by zero", 0, 0, 0},
		{"remaining above total clamps to zero", 100000, 120000, 0},
		{"negative remaining clamps to one hundred", 100000, -5000, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ProgressPercent(tt.total, tt.remaining))
		})
	}
}
