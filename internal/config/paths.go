package config

import (
	"os"
	"path/filepath"
)

const (
	DefaultDataDirName = ".examklar"
	DecksFileName      = "decks.json"
	PlannerFileName    = "planner.json"
	HistoryFileName    = "history.db"
	GlobalConfigDir    = ".config/examklar"
	ConfigFileName     = "config.toml"

	// EnvDataDir overrides the data directory when set.
	EnvDataDir = "EXAMKLAR_HOME"
)

// Paths provides path resolution for examklar data files.
type Paths struct {
	dataDir string
}

// NewPaths creates a new Paths resolver rooted at the given data directory.
func NewPaths(dataDir string) *Paths {
	return &Paths{dataDir: dataDir}
}

// ResolveDataDir picks the data directory: explicit override first, then
// the EXAMKLAR_HOME environment variable, then ~/.examklar.
func ResolveDataDir(override string) string {
	if override != "" {
		return override
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return env
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultDataDirName
	}
	return filepath.Join(home, DefaultDataDirName)
}

// DataDir returns the root data directory.
func (p *Paths) DataDir() string {
	return p.dataDir
}

// DecksPath returns the decks snapshot file path.
func (p *Paths) DecksPath() string {
	return filepath.Join(p.dataDir, DecksFileName)
}

// PlannerPath returns the planner snapshot file path.
func (p *Paths) PlannerPath() string {
	return filepath.Join(p.dataDir, PlannerFileName)
}

// HistoryPath returns the review history database path.
func (p *Paths) HistoryPath() string {
	return filepath.Join(p.dataDir, HistoryFileName)
}

// EnsureDataDir creates the data directory if needed.
func (p *Paths) EnsureDataDir() error {
	return os.MkdirAll(p.dataDir, 0755)
}

// GlobalConfigPath returns the path to the global config file.
func GlobalConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, GlobalConfigDir, ConfigFileName)
}
