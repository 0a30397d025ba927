package solar

import (
	"testing"
	"time"
)

func TestSunTimesPrague(t *testing.T) {
	// Prague, summer solstice: sunrise ~02:51 UTC, sunset ~19:14 UTC
	date := time.Date(2024, time.June, 21, 0, 0, 0, 0, time.UTC)
	rise, set, ok := SunTimes(date, 50.08, 14.25)
	if !ok {
		t.Fatal("expected the sun to rise in Prague in June")
	}

	wantRise := time.Date(2024, time.June, 21, 2, 51, 0, 0, time.UTC)
	wantSet := time.Date(2024, time.June, 21, 19, 14, 0, 0, time.UTC)

	if d := rise.Sub(wantRise); d < -5*time.Minute || d > 5*time.Minute {
		t.Errorf("sunrise = %s, want about %s", rise, wantRise)
	}
	if d := set.Sub(wantSet); d < -5*time.Minute || d > 5*time.Minute {
		t.Errorf("sunset = %s, want about %s", set, wantSet)
	}
	if !rise.Before(set) {
		t.Errorf("sunrise %s should precede sunset %s", rise, set)
	}
}

func TestSunTimesPolar(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
	}{
		{"polar night", time.Date(2024, time.December, 21, 0, 0, 0, 0, time.UTC)},
		{"midnight sun", time.Date(2024, time.June, 21, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Longyearbyen
			if _, _, ok := SunTimes(tt.date, 78.22, 15.65); ok {
				t.Errorf("expected no sunrise/sunset at 78N on %s", tt.date.Format("2006-01-02"))
			}
		})
	}
}
