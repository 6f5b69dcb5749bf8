package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolvePreferences(t *testing.T) {
	tests := []struct {
		name  string
		prefs Preferences
		want  Constraints
	}{
		{
			name:  "defaults",
			prefs: Preferences{},
			want: Constraints{
				Mode:            ModeBalanced,
				MinSeconds:      600,
				MaxSeconds:      2700,
				ExperienceLabel: LevelIntermediate,
			},
		},
		{
			name:  "deep dive beginner",
			prefs: Preferences{StudentLevel: "Beginner", LearningMode: "deep_dive"},
			want: Constraints{
				Mode:            ModeDeepDive,
				MinSeconds:      900,
				MaxSeconds:      5400,
				ExperienceLabel: LevelBeginner,
			},
		},
		{
			name:  "sprint with language suffix",
			prefs: Preferences{StudentLevel: "advanced", Language: "spanish", LearningMode: "sprint"},
			want: Constraints{
				Mode:            ModeSprint,
				MinSeconds:      180,
				MaxSeconds:      1200,
				ExperienceLabel: LevelAdvanced,
				LanguageSuffix:  "en español",
			},
		},
		{
			name:  "one shot",
			prefs: Preferences{LearningMode: "one_shot"},
			want: Constraints{
				Mode:            ModeOneShot,
				MinSeconds:      3600,
				MaxSeconds:      14400,
				ExperienceLabel: LevelIntermediate,
			},
		},
		{
			name:  "unknown values fall back",
			prefs: Preferences{StudentLevel: "wizard", Language: "english", LearningMode: "osmosis"},
			want: Constraints{
				Mode:            ModeBalanced,
				MinSeconds:      600,
				MaxSeconds:      2700,
				ExperienceLabel: LevelIntermediate,
			},
		},
		{
			name:  "unlisted language gets a generic suffix",
			prefs: Preferences{Language: "Japanese"},
			want: Constraints{
				Mode:            ModeBalanced,
				MinSeconds:      600,
				MaxSeconds:      2700,
				ExperienceLabel: LevelIntermediate,
				LanguageSuffix:  "in Japanese",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolvePreferences(tt.prefs))
		})
	}
}

func TestDeriveIntent(t *testing.T) {
	assert.Equal(t, "explained", deriveIntent("Introduction to Graphs"))
	assert.Equal(t, "explained", deriveIntent("Big-O Notation"))
	assert.Equal(t, "tutorial", deriveIntent("Build a REST API"))
	assert.Equal(t, "tutorial", deriveIntent("Binary Trees"))
}

func TestBuildSearchQuery(t *testing.T) {
	c := Constraints{LanguageSuffix: "en español"}
	q := buildSearchQuery("Arrays", "Data Structures", c)
	assert.Equal(t, "Arrays Data Structures tutorial en español", q)

	// Topic equal to the subject is not repeated.
	q = buildSearchQuery("Data Structures", "data structures", Constraints{})
	assert.Equal(t, "Data Structures tutorial", q)
}
