// fetch-fixture downloads one live upstream report and stores it as the
// fixture file the proxy serves instead of calling upstream.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"weather-proxy/config"
	"weather-proxy/datasource"
)

func main() {
	coord := flag.String("coord", "14.25,50.08", "Location as <lon>,<lat>")
	out := flag.String("out", "", "Output file (default: FIXTURE_PATH)")
	envFile := flag.String("env", ".env", "Optional .env file with API_KEY")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	if *out == "" {
		*out = cfg.FixturePath
	}

	c, err := parseCoord(*coord)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -coord: %v\n", err)
		os.Exit(2)
	}

	provider := datasource.NewOpenWeatherMapProvider(cfg.APIKey,
		datasource.WithBaseURL(cfg.UpstreamURL),
		datasource.WithLang(cfg.UpstreamLang),
		datasource.WithTimeout(cfg.UpstreamTimeout),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*cfg.UpstreamTimeout)
	defer cancel()

	fmt.Printf("Fetching %s from %s...\n", c, provider.Name())
	start := time.Now()
	report, err := provider.FetchReport(ctx, c)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching report: %v\n", err)
		os.Exit(1)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding report: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, append(data, '\n'), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", *out, err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s: %d hourly, %d daily entries (%s)\n",
		*out, len(report.Hourly), len(report.Daily), time.Since(start).Round(time.Millisecond))
}

func parseCoord(s string) (datasource.Coordinate, error) {
	lon, lat, ok := strings.Cut(s, ",")
	if !ok {
		return datasource.Coordinate{}, fmt.Errorf("expected <lon>,<lat>, got %q", s)
	}
	var c datasource.Coordinate
	var err error
	if c.Longitude, err = strconv.ParseFloat(strings.TrimSpace(lon), 64); err != nil {
		return datasource.Coordinate{}, err
	}
	if c.Latitude, err = strconv.ParseFloat(strings.TrimSpace(lat), 64); err != nil {
		return datasource.Coordinate{}, err
	}
	return c, nil
}
