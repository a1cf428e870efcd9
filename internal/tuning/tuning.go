// Package tuning holds the hand-tuned constants of the insight and badge
// generators. The defaults can be overridden with a TOML file.
package tuning

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

var ErrInvalid = errors.New("invalid tuning table")

// Table is the complete tuning table.
type Table struct {
	Insight Insight `toml:"insight"`
	Badge   Badge   `toml:"badge"`
}

// ToneWeights is the base score of an insight by tone.
type ToneWeights struct {
	Danger  float64 `toml:"danger"`
	Warn    float64 `toml:"warn"`
	Success float64 `toml:"success"`
	Muted   float64 `toml:"muted"`
	Info    float64 `toml:"info"`
}

// Insight configures candidate generation and scoring.
type Insight struct {
	EarlyDays int `toml:"early_days"` // Periods with fewer elapsed days are in their early phase

	PaceDanger  float64 `toml:"pace_danger"`  // Burn exceeding pace by more than this is dangerous
	PaceWarn    float64 `toml:"pace_warn"`    // Burn exceeding pace by more than this is a warning
	PaceSuccess float64 `toml:"pace_success"` // Burn below pace by more than this is a success

	RunOutUrgentDays int `toml:"run_out_urgent_days"`

	PerDayDanger float64 `toml:"per_day_danger"` // Ratio of remaining per day to the normal daily spend
	PerDayWarn   float64 `toml:"per_day_warn"`

	ToneWeights ToneWeights `toml:"tone_weights"`

	RunOutBase     float64 `toml:"run_out_base"`
	RunOutPerDay   float64 `toml:"run_out_per_day"`
	OverPaceScale  float64 `toml:"over_pace_scale"`
	OverPaceCap    float64 `toml:"over_pace_cap"`
	UnderPaceScale float64 `toml:"under_pace_scale"`
	UnderPaceCap   float64 `toml:"under_pace_cap"`
	PerDayScale    float64 `toml:"per_day_scale"`
	PerDayCap      float64 `toml:"per_day_cap"`
	PerDayBonus    float64 `toml:"per_day_bonus"`

	DashboardLimit int `toml:"dashboard_limit"`
	CategoryLimit  int `toml:"category_limit"`
}

// Badge configures the badge thresholds.
type Badge struct {
	PaceMargin    float64 `toml:"pace_margin"`
	NearBurn      float64 `toml:"near_burn"`      // Maximum distance of burn from 1
	NearRemaining float64 `toml:"near_remaining"` // Maximum share of the allocation remaining
	Limit         int     `toml:"limit"`
}

// Default returns the built-in tuning table.
func Default() Table {
	return Table{
		Insight: Insight{
			EarlyDays:        3,
			PaceDanger:       0.12,
			PaceWarn:         0.05,
			PaceSuccess:      0.06,
			RunOutUrgentDays: 5,
			PerDayDanger:     0.4,
			PerDayWarn:       0.6,
			ToneWeights: ToneWeights{
				Danger:  300,
				Warn:    200,
				Success: 100,
				Muted:   50,
				Info:    40,
			},
			RunOutBase:     140,
			RunOutPerDay:   20,
			OverPaceScale:  600,
			OverPaceCap:    120,
			UnderPaceScale: 200,
			UnderPaceCap:   40,
			PerDayScale:    200,
			PerDayCap:      120,
			PerDayBonus:    15,
			DashboardLimit: 4,
			CategoryLimit:  3,
		},
		Badge: Badge{
			PaceMargin:    0.10,
			NearBurn:      0.05,
			NearRemaining: 0.10,
			Limit:         4,
		},
	}
}

// Load reads a tuning file. Keys missing from the file keep their default.
//
// An empty path returns the defaults.
func Load(path string) (Table, error) {
	t := Default()
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("reading tuning file: %w", err)
	}

	return Parse(string(data))
}

// Parse decodes a TOML tuning table on top of the defaults.
func Parse(data string) (Table, error) {
	t := Default()

	md, err := toml.Decode(data, &t)
	if err != nil {
		return Default(), fmt.Errorf("parsing tuning file: %w", err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Default(), fmt.Errorf("%w: unknown keys %s", ErrInvalid, strings.Join(keys, ", "))
	}

	if err := t.Validate(); err != nil {
		return Default(), err
	}

	return t, nil
}

// Validate checks that the table can be used by the generators.
func (t Table) Validate() error {
	var errs []error

	i := t.Insight
	if i.EarlyDays < 0 {
		errs = append(errs, fmt.Errorf("%w: insight.early_days must not be negative", ErrInvalid))
	}
	if i.PaceWarn > i.PaceDanger {
		errs = append(errs, fmt.Errorf("%w: insight.pace_warn must not exceed insight.pace_danger", ErrInvalid))
	}
	if i.PerDayDanger > i.PerDayWarn {
		errs = append(errs, fmt.Errorf("%w: insight.per_day_danger must not exceed insight.per_day_warn", ErrInvalid))
	}

	w := i.ToneWeights
	if !(w.Danger > w.Warn && w.Warn > w.Success && w.Success > w.Muted && w.Muted > w.Info) {
		errs = append(errs, fmt.Errorf("%w: tone weights must be ordered danger > warn > success > muted > info", ErrInvalid))
	}

	if i.DashboardLimit < 1 || i.CategoryLimit < 1 {
		errs = append(errs, fmt.Errorf("%w: insight limits must be positive", ErrInvalid))
	}

	if t.Badge.Limit < 1 {
		errs = append(errs, fmt.Errorf("%w: badge.limit must be positive", ErrInvalid))
	}

	return errors.Join(errs...)
}
