package model

// GlobalConfig represents the user's global examklar configuration.
// Stored at ~/.config/examklar/config.toml
// Schema changes require a version bump in internal/version.
type GlobalConfig struct {
	Schema         string `toml:"schema"`
	Editor         string `toml:"editor,omitempty"`
	DataDir        string `toml:"data_dir,omitempty"`        // Custom data directory
	Locale         string `toml:"locale,omitempty"`          // BCP 47 tag for deck name sorting
	DefaultSubject string `toml:"default_subject,omitempty"` // Subject used when none is given
}
