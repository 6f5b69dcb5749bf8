package engine

import "strings"

// Learning modes. ModeOneShot bypasses the anchor/gap pipeline entirely.
const (
	ModeBalanced = "balanced"
	ModeDeepDive = "deep_dive"
	ModeSprint   = "sprint"
	ModeOneShot  = "one_shot"
)

// Student levels.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// Preferences is the small enumerated user-preference set collected before a
// build.
type Preferences struct {
	StudentLevel string `json:"studentLevel"`
	Language     string `json:"language"`
	LearningMode string `json:"learningMode"`
}

// Constraints are the concrete parameters the engine consumes, resolved from
// Preferences once per build.
type Constraints struct {
	LanguageSuffix  string
	MinSeconds      int
	MaxSeconds      int
	ExperienceLabel string
	Mode            string
}

type durationWindow struct {
	min, max int
}

// Duration windows keyed by learning mode.
var modeWindows = map[string]durationWindow{
	ModeBalanced: {600, 2700},
	ModeDeepDive: {900, 5400},
	ModeSprint:   {180, 1200},
	ModeOneShot:  {3600, 14400},
}

var languageSuffixes = map[string]string{
	"english":    "",
	"spanish":    "en español",
	"french":     "en français",
	"german":     "auf Deutsch",
	"portuguese": "em português",
	"hindi":      "in Hindi",
}

// ResolvePreferences maps user preferences to engine constraints. Pure;
// unknown values fall back to balanced / intermediate / English.
func ResolvePreferences(p Preferences) Constraints {
	mode := strings.ToLower(strings.TrimSpace(p.LearningMode))
	win, ok := modeWindows[mode]
	if !ok {
		mode = ModeBalanced
		win = modeWindows[ModeBalanced]
	}

	level := strings.ToLower(strings.TrimSpace(p.StudentLevel))
	switch level {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
	default:
		level = LevelIntermediate
	}

	lang := strings.ToLower(strings.TrimSpace(p.Language))
	suffix, ok := languageSuffixes[lang]
	if !ok && lang != "" {
		suffix = "in " + p.Language
	}

	return Constraints{
		LanguageSuffix:  suffix,
		MinSeconds:      win.min,
		MaxSeconds:      win.max,
		ExperienceLabel: level,
		Mode:            mode,
	}
}
