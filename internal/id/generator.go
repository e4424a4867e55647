package id

import (
	"time"

	fid "github.com/amterp/flexid"
)

// Kind prefixes IDs so their owning entity is recognizable at a glance.
type Kind string

const (
	Deck      Kind = "d"
	Card      Kind = "c"
	Subject   Kind = "s"
	Quiz      Kind = "q"
	Question  Kind = "qq"
	Plan      Kind = "p"
	Milestone Kind = "m"
	Session   Kind = "ss"
)

var generator *fid.Generator

func init() {
	epoch := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	config := fid.NewConfig().
		WithEpoch(epoch).
		WithTickSize(10 * time.Millisecond).
		WithNumRandomChars(3)

	generator = fid.MustNewGenerator(config)
}

// Generate returns a new unique ID for the given kind.
func Generate(kind Kind) string {
	return string(kind) + "_" + generator.MustGenerate()
}
