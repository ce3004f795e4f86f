package stats

import (
	"math"
	"strconv"
	"strings"

	"playlist-insights/shared/apperrors"
)

// Each half of a budget is held under half of MaxInt so their sum fits.
const (
	maxBudgetHours   = math.MaxInt / 2 / 3600
	maxBudgetMinutes = math.MaxInt / 2 / 60
)

// ParseWatchBudget converts an hours/minutes pair typed by the user into a
// daily budget in seconds. Each field is read as a leading integer ("2h" is
// 2) and counts as zero when absent or unparsable. Magnitudes too large to
// convert are clamped.
func ParseWatchBudget(hours, minutes string) int {
	h := clamp(leadingInt(hours), maxBudgetHours)
	m := clamp(leadingInt(minutes), maxBudgetMinutes)
	return h*3600 + m*60
}

// EstimateBingeDays returns how many days it takes to watch totalSeconds at
// dailySeconds per day, rounding any remainder up to a full day.
func EstimateBingeDays(totalSeconds, dailySeconds int) (int, error) {
	if dailySeconds <= 0 {
		return 0, apperrors.NewValidationError("Please enter a valid watch time.", "daily_budget", dailySeconds)
	}
	if totalSeconds <= 0 {
		return 0, nil
	}
	days := totalSeconds / dailySeconds
	if totalSeconds%dailySeconds != 0 {
		days++
	}
	return days, nil
}

func clamp(n, limit int) int {
	switch {
	case n > limit:
		return limit
	case n < -limit:
		return -limit
	}
	return n
}

func leadingInt(s string) int {
	s = strings.TrimSpace(s)

	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
