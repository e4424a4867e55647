package cli

import (
	"os"

	"github.com/amterp/ra"
)

// CommandContext holds parsed values and used flags for all commands.
type CommandContext struct {
	// Global flags
	NonInteractive *bool
	Json           *bool

	// onboard command
	OnboardUsed    *bool
	OnboardSubject *string
	OnboardExam    *string
	OnboardHours   *int

	// deck command
	DeckUsed *bool

	// deck create
	DeckCreateUsed        *bool
	DeckCreateName        *string
	DeckCreateSubject     *string
	DeckCreateDescription *string

	// deck list
	DeckListUsed    *bool
	DeckListSearch  *string
	DeckListSubject *string
	DeckListSort    *string
	DeckListDesc    *bool

	// deck show
	DeckShowUsed *bool
	DeckShowDeck *string

	// deck edit
	DeckEditUsed        *bool
	DeckEditDeck        *string
	DeckEditName        *string
	DeckEditDescription *string

	// deck delete
	DeckDeleteUsed  *bool
	DeckDeleteDeck  *string
	DeckDeleteForce *bool

	// deck export
	DeckExportUsed *bool
	DeckExportDeck *string
	DeckExportOut  *string

	// deck import
	DeckImportUsed *bool
	DeckImportFile *string

	// card command
	CardUsed *bool

	// card add
	CardAddUsed       *bool
	CardAddDeck       *string
	CardAddFront      *string
	CardAddBack       *string
	CardAddDifficulty *string
	CardAddTags       *[]string

	// card edit
	CardEditUsed       *bool
	CardEditDeck       *string
	CardEditCard       *string
	CardEditFront      *string
	CardEditBack       *string
	CardEditDifficulty *string
	CardEditOpenEditor *bool

	// card remove
	CardRemoveUsed *bool
	CardRemoveDeck *string
	CardRemoveCard *string

	// card move
	CardMoveUsed *bool
	CardMoveFrom *string
	CardMoveCard *string
	CardMoveTo   *string

	// review command
	ReviewUsed  *bool
	ReviewDeck  *string
	ReviewCard  *string
	ReviewGrade *int

	// quiz command
	QuizUsed *bool

	// quiz list
	QuizListUsed    *bool
	QuizListSubject *string

	// quiz take
	QuizTakeUsed *bool
	QuizTakeID   *string

	// stats command
	StatsUsed *bool
	StatsDeck *string

	// serve command
	ServeUsed   *bool
	ServePort   *int
	ServeNoOpen *bool
}

// Run is the main entry point for the CLI.
func Run() {
	ctx := &CommandContext{}

	cmd := ra.NewCmd("examklar")
	cmd.SetDescription("Flashcard-based exam preparation")

	ctx.NonInteractive, _ = ra.NewBool("non-interactive").
		SetShort("I").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Fail instead of prompting for missing input").
		Register(cmd, ra.WithGlobal(true))

	ctx.Json, _ = ra.NewBool("json").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Output as JSON").
		Register(cmd, ra.WithGlobal(true))

	// Register all subcommands
	registerOnboard(cmd, ctx)
	registerDeck(cmd, ctx)
	registerCard(cmd, ctx)
	registerReview(cmd, ctx)
	registerQuiz(cmd, ctx)
	registerStats(cmd, ctx)
	registerServe(cmd, ctx)

	// Parse command line
	cmd.ParseOrExit(os.Args[1:])

	// Execute the appropriate command
	executeCommand(ctx)
}

func executeCommand(ctx *CommandContext) {
	switch {
	case *ctx.OnboardUsed:
		runOnboard(*ctx.OnboardSubject, *ctx.OnboardExam, *ctx.OnboardHours, *ctx.NonInteractive, *ctx.Json)

	case *ctx.DeckCreateUsed:
		runDeckCreate(*ctx.DeckCreateName, *ctx.DeckCreateSubject, *ctx.DeckCreateDescription, *ctx.Json)

	case *ctx.DeckListUsed:
		runDeckList(*ctx.DeckListSearch, *ctx.DeckListSubject, *ctx.DeckListSort, *ctx.DeckListDesc, *ctx.Json)

	case *ctx.DeckShowUsed:
		runDeckShow(*ctx.DeckShowDeck, *ctx.Json)

	case *ctx.DeckEditUsed:
		runDeckEdit(*ctx.DeckEditDeck, *ctx.DeckEditName, *ctx.DeckEditDescription)

	case *ctx.DeckDeleteUsed:
		runDeckDelete(*ctx.DeckDeleteDeck, *ctx.DeckDeleteForce, *ctx.NonInteractive)

	case *ctx.DeckExportUsed:
		runDeckExport(*ctx.DeckExportDeck, *ctx.DeckExportOut)

	case *ctx.DeckImportUsed:
		runDeckImport(*ctx.DeckImportFile, *ctx.Json)

	case *ctx.CardAddUsed:
		runCardAdd(*ctx.CardAddDeck, *ctx.CardAddFront, *ctx.CardAddBack, *ctx.CardAddDifficulty, *ctx.CardAddTags, *ctx.Json)

	case *ctx.CardEditUsed:
		runCardEdit(*ctx.CardEditDeck, *ctx.CardEditCard, *ctx.CardEditFront, *ctx.CardEditBack, *ctx.CardEditDifficulty, *ctx.CardEditOpenEditor)

	case *ctx.CardRemoveUsed:
		runCardRemove(*ctx.CardRemoveDeck, *ctx.CardRemoveCard)

	case *ctx.CardMoveUsed:
		runCardMove(*ctx.CardMoveCard, *ctx.CardMoveFrom, *ctx.CardMoveTo)

	case *ctx.ReviewUsed:
		runReview(*ctx.ReviewDeck, *ctx.ReviewCard, *ctx.ReviewGrade, *ctx.NonInteractive, *ctx.Json)

	case *ctx.QuizListUsed:
		runQuizList(*ctx.QuizListSubject, *ctx.Json)

	case *ctx.QuizTakeUsed:
		runQuizTake(*ctx.QuizTakeID, *ctx.NonInteractive, *ctx.Json)

	case *ctx.StatsUsed:
		runStats(*ctx.StatsDeck, *ctx.Json)

	case *ctx.ServeUsed:
		runServe(*ctx.ServePort, *ctx.ServeNoOpen)
	}
}
