package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Current schema versions - bump these when making breaking changes.
//
// CHECKLIST when bumping a version:
//  1. Update the constant below
//  2. Add migration handling in the affected snapshot store
//  3. Update COMPAT notes in the README
const (
	CurrentDecksVersion   = 1
	CurrentPlannerVersion = 1
	CurrentGlobalVersion  = 1
)

// Schema type prefixes for snapshot and config files.
const (
	DecksSchemaPrefix   = "decks/"
	PlannerSchemaPrefix = "planner/"
	GlobalSchemaPrefix  = "global/"
)

// FormatDecksSchema creates a decks schema string from a version number.
// Example: FormatDecksSchema(1) returns "decks/1"
func FormatDecksSchema(v int) string {
	return fmt.Sprintf("%s%d", DecksSchemaPrefix, v)
}

// FormatPlannerSchema creates a planner schema string from a version number.
func FormatPlannerSchema(v int) string {
	return fmt.Sprintf("%s%d", PlannerSchemaPrefix, v)
}

// FormatGlobalSchema creates a global schema string from a version number.
func FormatGlobalSchema(v int) string {
	return fmt.Sprintf("%s%d", GlobalSchemaPrefix, v)
}

// ParseDecksVersion extracts the version number from a decks schema string.
func ParseDecksVersion(schema string) (int, error) {
	return parseSchemaVersion(schema, DecksSchemaPrefix, "decks")
}

// ParsePlannerVersion extracts the version number from a planner schema string.
func ParsePlannerVersion(schema string) (int, error) {
	return parseSchemaVersion(schema, PlannerSchemaPrefix, "planner")
}

// ParseGlobalVersion extracts the version number from a global schema string.
func ParseGlobalVersion(schema string) (int, error) {
	return parseSchemaVersion(schema, GlobalSchemaPrefix, "global")
}

func parseSchemaVersion(schema, prefix, schemaType string) (int, error) {
	if !strings.HasPrefix(schema, prefix) {
		return 0, fmt.Errorf("invalid %s schema format: %q (expected %sN)", schemaType, schema, prefix)
	}
	versionStr := strings.TrimPrefix(schema, prefix)
	v, err := strconv.Atoi(versionStr)
	if err != nil {
		return 0, fmt.Errorf("invalid %s schema version: %q", schemaType, versionStr)
	}
	if v < 1 {
		return 0, fmt.Errorf("invalid %s schema version: %d (must be >= 1)", schemaType, v)
	}
	return v, nil
}

// CurrentDecksSchema returns the current decks snapshot schema string.
func CurrentDecksSchema() string {
	return FormatDecksSchema(CurrentDecksVersion)
}

// CurrentPlannerSchema returns the current planner snapshot schema string.
func CurrentPlannerSchema() string {
	return FormatPlannerSchema(CurrentPlannerVersion)
}

// CurrentGlobalSchema returns the current global config schema string.
func CurrentGlobalSchema() string {
	return FormatGlobalSchema(CurrentGlobalVersion)
}
