package mapping

import (
	"testing"

	"weather-proxy/models"
)

func TestIconForCondition(t *testing.T) {
	tests := []struct {
		name string
		code int
		want int
	}{
		{"thunderstorm with light rain", 200, 18},
		{"thunderstorm with rain", 201, 18},
		{"thunderstorm with heavy rain", 202, 18},
		{"light thunderstorm", 210, 18},
		{"thunderstorm", 211, 18},
		{"heavy thunderstorm", 212, 19},
		{"ragged thunderstorm", 221, 18},
		{"thunderstorm with light drizzle", 230, 18},
		{"thunderstorm with drizzle", 231, 18},
		{"thunderstorm with heavy drizzle", 232, 18},
		{"light drizzle", 300, 13},
		{"drizzle", 301, 13},
		{"heavy drizzle", 302, 13},
		{"light drizzle rain", 310, 13},
		{"drizzle rain", 311, 13},
		{"heavy drizzle rain", 312, 13},
		{"shower rain and drizzle", 313, 16},
		{"heavy shower rain and drizzle", 314, 17},
		{"shower drizzle", 321, 16},
		{"light rain", 500, 10},
		{"moderate rain", 501, 11},
		{"heavy rain", 502, 12},
		{"very heavy rain", 503, 12},
		{"extreme rain", 504, 12},
		{"freezing rain", 511, 15},
		{"light shower rain", 520, 16},
		{"shower rain", 521, 16},
		{"heavy shower rain", 522, 17},
		{"ragged shower rain", 531, 17},
		{"light snow", 600, 20},
		{"snow", 601, 21},
		{"heavy snow", 602, 22},
		{"sleet", 611, 26},
		{"light shower sleet", 612, 28},
		{"shower sleet", 613, 29},
		{"light rain and snow", 615, 25},
		{"rain and snow", 616, 27},
		{"light shower snow", 620, 23},
		{"shower snow", 621, 24},
		{"heavy shower snow", 622, 24},
		{"mist", 701, 6},
		{"smoke", 711, 6},
		{"haze", 721, 6},
		{"dust whirls", 731, 7},
		{"fog", 741, 7},
		{"sand", 751, 7},
		{"dust", 761, 7},
		{"volcanic ash", 762, 7},
		{"squalls", 771, 7},
		{"tornado", 781, 7},
		{"clear sky", 800, 1},
		{"few clouds", 801, 2},
		{"scattered clouds", 802, 3},
		{"broken clouds", 803, 4},
		{"overcast clouds", 804, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IconForCondition(tt.code); got != tt.want {
				t.Errorf("IconForCondition(%d) = %d, want %d", tt.code, got, tt.want)
			}
		})
	}
}

func TestIconForConditionUnknownFallsBack(t *testing.T) {
	for _, code := range []int{-1, 0, 1, 199, 233, 399, 805, 900, 1000} {
		if got := IconForCondition(code); got != DefaultIcon {
			t.Errorf("IconForCondition(%d) = %d, want default %d", code, got, DefaultIcon)
		}
	}
}

func TestIconTableIsTotal(t *testing.T) {
	// every documented group is present and maps to a positive icon
	groups := map[int]int{2: 0, 3: 0, 5: 0, 6: 0, 7: 0, 8: 0}
	for code, icon := range conditionIcons {
		if icon < 1 {
			t.Errorf("code %d maps to invalid icon %d", code, icon)
		}
		groups[code/100]++
	}
	for group, n := range groups {
		if n == 0 {
			t.Errorf("no codes mapped for group %dxx", group)
		}
	}
	if len(conditionIcons) != 55 {
		t.Errorf("table has %d entries, want 55", len(conditionIcons))
	}
}

func TestIconForHour(t *testing.T) {
	if got := IconForHour(models.HourlyRecord{}); got != DefaultIcon {
		t.Errorf("IconForHour without conditions = %d, want %d", got, DefaultIcon)
	}

	h := models.HourlyRecord{Conditions: []models.Condition{{ID: 502}, {ID: 800}}}
	if got := IconForHour(h); got != 12 {
		t.Errorf("IconForHour uses the first condition: got %d, want 12", got)
	}
}
