package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to every new plan
	DefaultTolerance  float64  `json:"default_tolerance"`
	DefaultPrecision  int      `json:"default_precision"`
	DefaultKerfWidth  float64  `json:"default_kerf_width"`
	DefaultKerfMode   KerfMode `json:"default_kerf_mode"`
	DefaultLeadType   LeadType `json:"default_lead_type"`
	DefaultLeadLength float64  `json:"default_lead_length"`

	// Application preferences
	OutputDir   string   `json:"output_dir"`   // Where plan outputs go, empty = next to the input
	RecentFiles []string `json:"recent_files"` // Most recent first
	LogLevel    string   `json:"log_level"`    // "debug", "info", "warn", "error"
}

// DefaultAppConfig returns an AppConfig populated with the values from
// DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultTolerance:  defaults.CoincidenceTolerance,
		DefaultPrecision:  defaults.DecimalPrecision,
		DefaultKerfWidth:  defaults.KerfWidth,
		DefaultKerfMode:   defaults.KerfMode,
		DefaultLeadType:   defaults.LeadType,
		DefaultLeadLength: defaults.LeadLength,
		RecentFiles:       []string{},
		LogLevel:          "info",
	}
}

// ApplyToSettings copies the default values from AppConfig into s so a new
// plan inherits the user's saved defaults.
func (c AppConfig) ApplyToSettings(s *Settings) {
	s.CoincidenceTolerance = c.DefaultTolerance
	s.DecimalPrecision = c.DefaultPrecision
	s.KerfWidth = c.DefaultKerfWidth
	s.KerfMode = c.DefaultKerfMode
	s.LeadType = c.DefaultLeadType
	s.LeadLength = c.DefaultLeadLength
}

// maxRecentFiles caps the recent file list.
const maxRecentFiles = 10

// AddRecentFile moves path to the front of the recent file list.
func (c *AppConfig) AddRecentFile(path string) {
	files := []string{path}
	for _, f := range c.RecentFiles {
		if f != path && len(files) < maxRecentFiles {
			files = append(files, f)
		}
	}
	c.RecentFiles = files
}
