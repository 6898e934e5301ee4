package simulate

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/ekurtovic/boardsim/pkg/model"
)

// ErrNonConvergence signals that the continuous model failed to reach full
// seating within the time bound, i.e. a mis-calibrated (k, alpha) pair.
var ErrNonConvergence = errors.New("continuous model did not reach full seating within the time bound")

// CalibrationWarning is returned alongside fitted parameters when the
// residual exceeds the configured threshold. It is not an error: the
// pipeline continues with best-effort parameters.
type CalibrationWarning struct {
	Residual  float64
	Threshold float64
}

func (w *CalibrationWarning) String() string {
	return fmt.Sprintf("calibration residual %.4f exceeds threshold %.4f: congestion model shapes may diverge", w.Residual, w.Threshold)
}

// Configuration holds every tunable of the simulation pipeline.
type Configuration struct {
	Rows        int `validate:"gt=0"`
	SeatsPerRow int `validate:"gt=0"`
	Passengers  int `validate:"gt=0"`

	WalkSpeedMean   float64 `validate:"gt=0"` // rows per second
	WalkSpeedStd    float64 `validate:"gt=0"`
	LuggageTimeMean float64 `validate:"gt=0"` // seconds
	LuggageTimeStd  float64 `validate:"gt=0"`

	// Seat interference penalty in seconds per already-seated passenger
	// that has to be crossed, by seat class.
	SeatPenalty map[model.SeatColumn]float64

	// Door metering. The door releases each passenger against the previous
	// one: a fixed interval, plus headway per row the newcomer continues
	// past the previous entrant's row (the uncovered stretch where they
	// would otherwise overrun them, overtaking being impossible), plus a
	// hold when the previous entrant has to clear a seat shuffle on the
	// newcomer's path.
	MinEntryInterval float64 `validate:"gt=0"`  // seconds between door entries
	HeadwayPerRow    float64 `validate:"gte=0"` // seconds per row continued past the previous entrant
	ShuffleHold      float64 `validate:"gte=0"` // seconds when the previous entrant shuffles en route

	LookAheadRows  float64 `validate:"gt=0"` // congestion window ahead of a passenger
	CongestionBeta float64 `validate:"gte=0"`
	FollowerGap    float64 `validate:"gt=0"`       // minimum spacing behind the walker ahead, rows
	CrawlFactor    float64 `validate:"gt=0,lte=1"` // speed multiplier while squeezing past a seat shuffle

	TimeStep     float64 `validate:"gt=0"` // seconds
	SimTimeLimit float64 `validate:"gt=0"` // seconds
	SampleEvery  int     `validate:"gt=0"` // record a progress point every n steps

	Zones        int `validate:"gt=0"` // back-to-front and hybrid zone count
	PrestigeRows int `validate:"gte=0"`

	DoorReleaseInterval float64 `validate:"gt=0"` // seconds between exits through one door
	GatherTimeMean      float64 `validate:"gt=0"` // seconds spent collecting luggage before exiting
	GatherTimeStd       float64 `validate:"gt=0"`

	// Continuous model defaults per boarding strategy (1/min, paper values)
	// and congestion parameter alpha (min per passenger).
	RateConstants map[Strategy]float64
	Alpha         float64 `validate:"gt=0"`
	ODEStep       float64 `validate:"gt=0"` // minutes
	ODEMaxTime    float64 `validate:"gt=0"` // minutes

	Seeds             int   `validate:"gt=0"`
	SeedBase          int64 `validate:"gte=0"`
	ResidualThreshold float64
}

// NewDefaultConfiguration mirrors the reference Boeing 737-800 setup.
func NewDefaultConfiguration() *Configuration {
	return &Configuration{
		Rows:        21,
		SeatsPerRow: 6,
		Passengers:  126,

		WalkSpeedMean:   0.7,
		WalkSpeedStd:    0.15,
		LuggageTimeMean: 12,
		LuggageTimeStd:  4,

		SeatPenalty: map[model.SeatColumn]float64{
			model.Window: 5,
			model.Middle: 3,
			model.Aisle:  0,
		},

		MinEntryInterval: 1.0,
		HeadwayPerRow:    2.5,
		ShuffleHold:      25.0,

		LookAheadRows:  3.0,
		CongestionBeta: 0.4,
		FollowerGap:    1.0,
		CrawlFactor:    0.3,

		TimeStep:     0.1,
		SimTimeLimit: 3600,
		SampleEvery:  10,

		Zones:        3,
		PrestigeRows: 3,

		DoorReleaseInterval: 3.0,
		GatherTimeMean:      8,
		GatherTimeStd:       3,

		RateConstants: map[Strategy]float64{
			Random:      0.10,
			BackToFront: 0.22,
			OutsideIn:   0.18,
			Hybrid:      0.15,
		},
		Alpha:      0.033,
		ODEStep:    0.01,
		ODEMaxTime: 120,

		Seeds:             10,
		SeedBase:          1,
		ResidualThreshold: 0.05,
	}
}

var validate = validator.New()

// Validate checks the configuration before any simulation starts.
// All failures map to model.ConfigError.
func (c *Configuration) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return &model.ConfigError{Field: verrs[0].Field(), Reason: "failed " + verrs[0].Tag() + " constraint"}
		}
		return err
	}
	if c.Passengers > c.Rows*c.SeatsPerRow {
		return &model.ConfigError{Field: "Passengers", Reason: "exceeds seat count"}
	}
	if len(c.RateConstants) == 0 {
		return &model.ConfigError{Field: "RateConstants", Reason: "must not be empty"}
	}
	for s, k := range c.RateConstants {
		if k <= 0 {
			return &model.ConfigError{Field: "RateConstants[" + s.String() + "]", Reason: "must be positive"}
		}
	}
	return nil
}
