package datasource

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"weather-proxy/models"
)

// DefaultFixturePath is looked up in the working directory
const DefaultFixturePath = "weather.json"

// FixtureSource serves a report stored on disk, whatever coordinate is asked for
type FixtureSource struct {
	path string
}

// NewFixtureSource creates a source reading the report at path
func NewFixtureSource(path string) *FixtureSource {
	return &FixtureSource{path: path}
}

// Name returns the source name
func (f *FixtureSource) Name() string {
	return "Fixture(" + f.path + ")"
}

// FetchReport reads and parses the fixture file
func (f *FixtureSource) FetchReport(ctx context.Context, coord Coordinate) (models.WeatherReport, error) {
	if err := ctx.Err(); err != nil {
		return models.WeatherReport{}, err
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return models.WeatherReport{}, fmt.Errorf("failed to read fixture: %w", err)
	}
	report, err := DecodeReport(data)
	if err != nil {
		return models.WeatherReport{}, fmt.Errorf("fixture %s: %w", f.path, err)
	}
	return report, nil
}

// Exists reports whether the fixture file is present
func (f *FixtureSource) Exists() bool {
	info, err := os.Stat(f.path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// FixtureOverride serves the fixture whenever the file exists and falls back
// to the live source otherwise. The check runs on every fetch so dropping a
// file into place takes effect without a restart.
type FixtureOverride struct {
	fixture *FixtureSource
	live    ReportSource
}

// NewFixtureOverride wraps live with a fixture lookup at path
func NewFixtureOverride(path string, live ReportSource) *FixtureOverride {
	return &FixtureOverride{
		fixture: NewFixtureSource(path),
		live:    live,
	}
}

// Name returns the name of the live source with the fixture path
func (o *FixtureOverride) Name() string {
	return o.live.Name() + " [" + o.fixture.Name() + " override]"
}

// FetchReport prefers the fixture file when present
func (o *FixtureOverride) FetchReport(ctx context.Context, coord Coordinate) (models.WeatherReport, error) {
	if o.fixture.Exists() {
		report, err := o.fixture.FetchReport(ctx, coord)
		if err == nil || !errors.Is(err, fs.ErrNotExist) {
			return report, err
		}
		// removed between Stat and ReadFile
	}
	return o.live.FetchReport(ctx, coord)
}

var (
	_ ReportSource = (*FixtureSource)(nil)
	_ ReportSource = (*FixtureOverride)(nil)
)
