package model

import (
	"fmt"

	"github.com/alangibson/MetalHeadCAM-sub000/internal/geom"
)

// KerfPosition says which side of a path the tool runs on.
type KerfPosition string

const (
	KerfNone     KerfPosition = "none"     // Path is cut as drawn, no compensation
	KerfInside   KerfPosition = "inside"   // Tool runs inside the path, contour shrinks
	KerfOutside  KerfPosition = "outside"  // Tool runs outside the path, contour grows
	KerfCentered KerfPosition = "centered" // Tool is centered on the path
)

// KerfMode selects the kerf position applied by the planner.
type KerfMode string

const (
	KerfModeNone     KerfMode = "none"
	KerfModeInside   KerfMode = "inside"
	KerfModeOutside  KerfMode = "outside"
	KerfModeCentered KerfMode = "centered"
	// KerfModeAuto offsets shells outwards, holes inwards and leaves open
	// paths centered, so the finished part keeps its drawn size.
	KerfModeAuto KerfMode = "auto"
)

// ParseKerfMode validates a kerf mode name. An empty string means none.
func ParseKerfMode(s string) (KerfMode, error) {
	switch m := KerfMode(s); m {
	case "":
		return KerfModeNone, nil
	case KerfModeNone, KerfModeInside, KerfModeOutside, KerfModeCentered, KerfModeAuto:
		return m, nil
	}
	return "", fmt.Errorf("unknown kerf mode %q", s)
}

// Position resolves the mode for one cut. hole and closed describe the cut's
// place in the nesting forest.
func (m KerfMode) Position(hole, closed bool) KerfPosition {
	switch m {
	case KerfModeInside:
		return KerfInside
	case KerfModeOutside:
		return KerfOutside
	case KerfModeCentered:
		return KerfCentered
	case KerfModeAuto:
		switch {
		case !closed:
			return KerfCentered
		case hole:
			return KerfInside
		default:
			return KerfOutside
		}
	default:
		return KerfNone
	}
}

// LeadType is the shape of the move into and out of a closed cut.
type LeadType string

const (
	LeadNone LeadType = "none"
	LeadLine LeadType = "line"
	LeadArc  LeadType = "arc"
)

// ParseLeadType validates a lead type name. An empty string means none.
func ParseLeadType(s string) (LeadType, error) {
	switch t := LeadType(s); t {
	case "":
		return LeadNone, nil
	case LeadNone, LeadLine, LeadArc:
		return t, nil
	}
	return "", fmt.Errorf("unknown lead type %q", s)
}

// TourSettings tunes the genetic travel-order solver.
type TourSettings struct {
	PopulationSize int     `json:"population_size"`
	Generations    int     `json:"generations"`
	MutationRate   float64 `json:"mutation_rate"`
	TournamentSize int     `json:"tournament_size"`
	EliteCount     int     `json:"elite_count"`
	Seed           int64   `json:"seed"`
	SkipTwoOpt     bool    `json:"skip_two_opt"` // Leave the best tour unpolished
}

// Settings holds planner configuration.
type Settings struct {
	// Geometry
	CoincidenceTolerance float64 `json:"coincidence_tolerance"` // Max distance between points treated as equal
	DecimalPrecision     int     `json:"decimal_precision"`     // Digits kept on exported coordinates
	SampleCount          int     `json:"sample_count"`          // Segments per path in containment tests
	CellSize             float64 `json:"cell_size"`             // Spatial index grid cell edge

	// Tool compensation
	KerfWidth float64  `json:"kerf_width"` // Width of material removed by the tool
	KerfMode  KerfMode `json:"kerf_mode"`

	// Leads
	LeadType   LeadType `json:"lead_type"`
	LeadLength float64  `json:"lead_length"`

	// Travel
	Origin geom.Point   `json:"origin"` // Machine origin the first rapid starts from
	Tour   TourSettings `json:"tour"`
}

// DefaultSettings returns settings for an uncompensated plan with no leads.
func DefaultSettings() Settings {
	return Settings{
		CoincidenceTolerance: geom.DefaultTolerance,
		DecimalPrecision:     geom.DefaultPrecision,
		SampleCount:          geom.DefaultSampleCount,
		CellSize:             geom.DefaultCellSize,
		KerfWidth:            0,
		KerfMode:             KerfModeNone,
		LeadType:             LeadNone,
		LeadLength:           2.0,
		Tour: TourSettings{
			PopulationSize: 50,
			Generations:    100,
			MutationRate:   0.15,
			TournamentSize: 3,
			EliteCount:     2,
			Seed:           42,
		},
	}
}

// Validate reports the first setting that would make planning meaningless.
func (s Settings) Validate() error {
	if s.CoincidenceTolerance <= 0 {
		return fmt.Errorf("coincidence tolerance must be positive, got %g", s.CoincidenceTolerance)
	}
	if s.DecimalPrecision < 0 || s.DecimalPrecision > 9 {
		return fmt.Errorf("decimal precision must be between 0 and 9, got %d", s.DecimalPrecision)
	}
	if s.KerfWidth < 0 {
		return fmt.Errorf("kerf width must not be negative, got %g", s.KerfWidth)
	}
	if s.LeadLength < 0 {
		return fmt.Errorf("lead length must not be negative, got %g", s.LeadLength)
	}
	if _, err := ParseKerfMode(string(s.KerfMode)); err != nil {
		return err
	}
	if _, err := ParseLeadType(string(s.LeadType)); err != nil {
		return err
	}
	return nil
}

// ContainmentOptions returns the sampling options used by nesting.
func (s Settings) ContainmentOptions() geom.ContainmentOptions {
	return geom.ContainmentOptions{Samples: s.SampleCount, CellSize: s.CellSize}
}
