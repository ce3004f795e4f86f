package youtube

import (
	"math"
	"regexp"
	"strconv"
)

// The time designator group is optional so day-only values like "P1D" parse.
var durationPattern = regexp.MustCompile(`P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?`)

// ParseDuration converts an ISO 8601 duration such as "PT1H30M" or "P1DT2H"
// into whole seconds. Absent fields count as zero.
//
// Parsing is lenient: input that does not match, or a field that overflows,
// contributes 0 instead of failing.
func ParseDuration(duration string) int {
	if duration == "" {
		return 0
	}

	matches := durationPattern.FindStringSubmatch(duration)
	if len(matches) == 0 {
		return 0
	}

	multipliers := [...]int{86400, 3600, 60, 1}

	var totalSeconds int
	for i, multiplier := range multipliers {
		field := matches[i+1]
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil || n > (math.MaxInt-totalSeconds)/multiplier {
			continue
		}
		totalSeconds += n * multiplier
	}

	return totalSeconds
}
