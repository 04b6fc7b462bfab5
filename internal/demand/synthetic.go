package demand

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// SyntheticConfig describes the synthetic demand universe. The zero value is
// not usable; start from DefaultSyntheticConfig and override fields, or load
// overrides from YAML with LoadSyntheticConfig.
type SyntheticConfig struct {
	// Routes and Stops size the universe: route IDs run R001..R<Routes>,
	// stop IDs ST001..ST<Stops>.
	Routes int `yaml:"routes" validate:"gte=1"`
	Stops  int `yaml:"stops" validate:"gte=1"`

	// StartHour and EndHour bound the service day, inclusive.
	StartHour int `yaml:"start_hour" validate:"gte=0,lte=23"`
	EndHour   int `yaml:"end_hour" validate:"gte=0,lte=23,gtefield=StartHour"`

	// Poisson rates per time-of-day bucket: peak is 07-09 and 16-18,
	// midday is 10-15, everything else is off-peak.
	PeakRate    float64 `yaml:"peak_rate" validate:"gt=0"`
	MiddayRate  float64 `yaml:"midday_rate" validate:"gt=0"`
	OffPeakRate float64 `yaml:"off_peak_rate" validate:"gt=0"`

	// Seed drives every random draw; the same seed reproduces the same
	// dataset byte for byte.
	Seed int64 `yaml:"seed"`
}

// DefaultSyntheticConfig mirrors the universe the demand model was first
// trained on: 20 routes, 50 stops, service from 06:00 to 21:00, seed 42.
func DefaultSyntheticConfig() SyntheticConfig {
	return SyntheticConfig{
		Routes:      20,
		Stops:       50,
		StartHour:   6,
		EndHour:     21,
		PeakRate:    35,
		MiddayRate:  15,
		OffPeakRate: 5,
		Seed:        42,
	}
}

// Validate checks the config's field constraints.
func (cfg SyntheticConfig) Validate() error {
	return validator.New().Struct(cfg)
}

// LoadSyntheticConfig reads YAML overrides on top of the defaults and
// validates the result.
func LoadSyntheticConfig(path string) (SyntheticConfig, error) {
	cfg := DefaultSyntheticConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing synthetic demand config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid synthetic demand config: %w", err)
	}
	return cfg, nil
}

// rate returns the Poisson rate for an hour of day: commute peaks are the
// busiest, midday is moderate, early and late hours are quiet.
func (cfg SyntheticConfig) rate(hour int) float64 {
	switch {
	case (hour >= 7 && hour <= 9) || (hour >= 16 && hour <= 18):
		return cfg.PeakRate
	case hour >= 10 && hour <= 15:
		return cfg.MiddayRate
	default:
		return cfg.OffPeakRate
	}
}

// Synthetic enumerates every (route, stop, hour, weekday) combination in the
// configured universe and draws a Poisson passenger count for each, clipped
// to [0, MaxPassengerCount]. Output order and values are fully determined by
// the config.
func Synthetic(cfg SyntheticConfig) []Record {
	rng := rand.New(rand.NewSource(cfg.Seed))

	hours := cfg.EndHour - cfg.StartHour + 1
	records := make([]Record, 0, cfg.Routes*cfg.Stops*hours*7)

	for r := 1; r <= cfg.Routes; r++ {
		routeID := fmt.Sprintf("R%03d", r)
		for s := 1; s <= cfg.Stops; s++ {
			stopID := fmt.Sprintf("ST%03d", s)
			for hour := cfg.StartHour; hour <= cfg.EndHour; hour++ {
				for weekday := 0; weekday < 7; weekday++ {
					records = append(records, Record{
						RouteID:        routeID,
						StopID:         stopID,
						Hour:           hour,
						Weekday:        weekday,
						PassengerCount: clip(poisson(rng, cfg.rate(hour)), 0, MaxPassengerCount),
					})
				}
			}
		}
	}
	return records
}
