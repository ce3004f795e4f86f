package format

import (
	"fmt"
	"math"
	"math/big"

	"github.com/dustin/go-humanize"
)

// Clock renders seconds as HH:MM:SS. Hours are not wrapped at 24.
func Clock(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	h := totalSeconds / 3600
	m := (totalSeconds % 3600) / 60
	s := totalSeconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// Average rounds a fractional average to whole seconds before formatting
// it. Undefined averages render as zero.
func Average(avg float64, ok bool) string {
	if !ok || math.IsNaN(avg) {
		return Clock(0)
	}
	return Clock(int(math.Round(avg)))
}

// Count adds thousands separators: 1234567 becomes "1,234,567".
func Count(n uint64) string {
	if n > math.MaxInt64 {
		return humanize.BigComma(new(big.Int).SetUint64(n))
	}
	return humanize.Comma(int64(n))
}

// Budget renders a daily watch budget such as "1h 30m".
func Budget(dailySeconds int) string {
	return fmt.Sprintf("%dh %dm", dailySeconds/3600, (dailySeconds%3600)/60)
}
