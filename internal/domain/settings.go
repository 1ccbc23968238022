package domain

// Settings are the user-tunable behavior flags, persisted in the settings
// table as key/value pairs.
type Settings struct {
	AutoStartBreak       bool
	AutoStartFocus       bool
	SoundEnabled         bool
	NotificationsEnabled bool
	LogBreaks            bool
}

// DefaultSettings mirrors the out-of-the-box behavior: breaks chain
// automatically after focus, focus does not chain after breaks, and break
// intervals are not logged.
func DefaultSettings() Settings {
	return Settings{
		AutoStartBreak:       true,
		AutoStartFocus:       false,
		SoundEnabled:         true,
		NotificationsEnabled: true,
		LogBreaks:            false,
	}
}
