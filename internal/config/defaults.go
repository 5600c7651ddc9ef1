package config

// Defaults applied before the config file and environment are read.
const (
	DefaultMaxAttempts = 2
	DefaultStateDir    = ".coursecheck/quiz-state"
	DefaultScriptRoot  = "Assets"
)

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Version: 1,
		Quiz: Quiz{
			MaxAttemptsPerQuestion: DefaultMaxAttempts,
			RandomizeAnswersOnOpen: true,
			GuardSlideNavigation:   true,
			PersistState:           false,
			StateDir:               DefaultStateDir,
			EnableSingle:           true,
			EnableMultiple:         true,
			EnableTrueFalse:        true,
		},
		Validation: Validation{
			Color: ColorAuto,
		},
		Project: Project{
			ScriptRoots: []string{DefaultScriptRoot},
		},
	}
}
