package youtube

import "testing"

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration string
		expected int
	}{
		{"Empty", "", 0},
		{"Seconds only", "PT45S", 45},
		{"Minutes only", "PT2M", 120},
		{"Hours only", "PT1H", 3600},
		{"Hours and minutes", "PT1H30M", 5400},
		{"Minutes and seconds", "PT1M30S", 90},
		{"Full time", "PT2H15M30S", 8130},
		{"Day and hours", "P1DT2H", 93600},
		{"All fields", "P2DT3H4M5S", 2*86400 + 3*3600 + 4*60 + 5},
		{"Day only", "P1D", 86400},
		{"Zero seconds", "PT0S", 0},
		{"Invalid format", "invalid", 0},
		{"No time components", "PT", 0},
		{"Lowercase", "pt1h", 0},
		{"Overflowing days", "P999999999999999D", 0},
		{"Overflowing hours", "PT3000000000000000H", 0},
		{"Overflowing days keep other fields", "P999999999999999DT1H30M", 5400},
		{"Field beyond int range", "PT99999999999999999999S", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseDuration(tt.duration)
			if result < 0 {
				t.Fatalf("ParseDuration(%q) = %d, want a non-negative duration", tt.duration, result)
			}
			if result != tt.expected {
				t.Errorf("ParseDuration(%q) = %d, want %d", tt.duration, result, tt.expected)
			}
		})
	}
}
