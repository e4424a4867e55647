package version

import "fmt"

// SchemaVersionError indicates a schema version problem during file read/write.
type SchemaVersionError struct {
	FileType string // "decks snapshot", "planner snapshot", "global config"
	FilePath string // Path to the problematic file
	Found    string // What was found (e.g., "missing", "decks/2")
	Expected string // What was expected (e.g., "decks/1")
}

func (e *SchemaVersionError) Error() string {
	if e.Found == "missing" {
		return fmt.Sprintf("%s has no schema version (file: %s)", e.FileType, e.FilePath)
	}
	return fmt.Sprintf(
		"%s has unsupported schema version: found %s, expected %s (file: %s)",
		e.FileType, e.Found, e.Expected, e.FilePath,
	)
}

// MissingDecksSchema creates an error for a decks snapshot missing its schema field.
func MissingDecksSchema(path string) error {
	return &SchemaVersionError{
		FileType: "decks snapshot",
		FilePath: path,
		Found:    "missing",
		Expected: CurrentDecksSchema(),
	}
}

// InvalidDecksSchema creates an error for a decks snapshot with an unsupported schema.
func InvalidDecksSchema(path, found string) error {
	return &SchemaVersionError{
		FileType: "decks snapshot",
		FilePath: path,
		Found:    found,
		Expected: CurrentDecksSchema(),
	}
}

// MissingPlannerSchema creates an error for a planner snapshot missing its schema field.
func MissingPlannerSchema(path string) error {
	return &SchemaVersionError{
		FileType: "planner snapshot",
		FilePath: path,
		Found:    "missing",
		Expected: CurrentPlannerSchema(),
	}
}

// InvalidPlannerSchema creates an error for a planner snapshot with an unsupported schema.
func InvalidPlannerSchema(path, found string) error {
	return &SchemaVersionError{
		FileType: "planner snapshot",
		FilePath: path,
		Found:    found,
		Expected: CurrentPlannerSchema(),
	}
}

// MissingGlobalSchema creates an error for a global config missing its schema field.
func MissingGlobalSchema(path string) error {
	return &SchemaVersionError{
		FileType: "global config",
		FilePath: path,
		Found:    "missing",
		Expected: CurrentGlobalSchema(),
	}
}

// InvalidGlobalSchema creates an error for a global config with an unsupported schema.
func InvalidGlobalSchema(path, found string) error {
	return &SchemaVersionError{
		FileType: "global config",
		FilePath: path,
		Found:    found,
		Expected: CurrentGlobalSchema(),
	}
}
