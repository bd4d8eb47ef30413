// Package render turns a sensor snapshot into the text served to browsers,
// metrics scrapers and the diagnostic console.
package render

import (
	_ "embed"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/quentinrf/plant-monitor/services/env-service/internal/domain"
)

// Placeholder is written in place of a climate value the sensor could not produce.
// It is also the exposition format's own spelling of not-a-number.
const Placeholder = "NaN"

//go:embed dashboard.html
var dashboardSource string

var dashboardTmpl = template.Must(template.New("dashboard").Parse(dashboardSource))

type dashboardView struct {
	Temperature string
	Humidity    string
	Sound       string
	Light       string
}

// gauge describes one metric in the exposition block.
type gauge struct {
	name  string
	help  string
	value func(domain.Snapshot) string
}

// gauges is the fixed, ordered metric set. Scrapers depend on these names.
var gauges = []gauge{
	{
		name:  "temperature_celsius",
		help:  "Current temperature in Celsius.",
		value: func(s domain.Snapshot) string { return FormatDecimal(s.Temperature) },
	},
	{
		name:  "humidity_percent",
		help:  "Current humidity in percentage.",
		value: func(s domain.Snapshot) string { return FormatDecimal(s.Humidity) },
	},
	{
		name:  "sound_level",
		help:  "Raw sound level from the sensor.",
		value: func(s domain.Snapshot) string { return strconv.Itoa(s.SoundLevel) },
	},
	{
		name:  "light_level",
		help:  "Raw light level from the sensor.",
		value: func(s domain.Snapshot) string { return strconv.Itoa(s.LightLevel) },
	},
}

// MetricNames returns the metric names in exposition order.
func MetricNames() []string {
	names := make([]string, len(gauges))
	for i, g := range gauges {
		names[i] = g.name
	}
	return names
}

// FormatDecimal renders v with one decimal place, or Placeholder when v is invalid.
func FormatDecimal(v float64) string {
	if domain.IsInvalid(v) {
		return Placeholder
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// Dashboard renders an HTML page showing the four readings. The page tells the
// browser to reload it every 10 seconds.
func Dashboard(s domain.Snapshot) string {
	view := dashboardView{
		Temperature: FormatDecimal(s.Temperature),
		Humidity:    FormatDecimal(s.Humidity),
		Sound:       strconv.Itoa(s.SoundLevel),
		Light:       strconv.Itoa(s.LightLevel),
	}

	var b strings.Builder
	// Only preformatted strings reach the template, so Execute cannot fail on data.
	if err := dashboardTmpl.Execute(&b, view); err != nil {
		panic(fmt.Sprintf("render dashboard: %v", err))
	}
	return b.String()
}

// Metrics renders the readings as gauges in the Prometheus text exposition format.
//
// Every metric is emitted as a HELP line, a TYPE line and a value line, in the
// order temperature, humidity, sound, light.
func Metrics(s domain.Snapshot) string {
	var b strings.Builder
	for _, g := range gauges {
		fmt.Fprintf(&b, "# HELP %s %s\n", g.name, g.help)
		fmt.Fprintf(&b, "# TYPE %s gauge\n", g.name)
		fmt.Fprintf(&b, "%s %s\n", g.name, g.value(s))
	}
	return b.String()
}

// ConsoleLine renders the one-line summary printed by the periodic reporter.
func ConsoleLine(s domain.Snapshot) string {
	return fmt.Sprintf("Temperature: %s °C, Humidity: %s %%, Sound Level: %d, Light Level: %d",
		FormatDecimal(s.Temperature),
		FormatDecimal(s.Humidity),
		s.SoundLevel,
		s.LightLevel)
}
