package cli

import (
	"fmt"

	"github.com/amterp/ra"
	"github.com/examklar/examklar/internal/errors"
	"github.com/examklar/examklar/internal/model"
	"github.com/examklar/examklar/internal/srs"
	"github.com/examklar/examklar/internal/util"
)

func registerReview(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("review")
	cmd.SetDescription("Review due cards")

	ctx.ReviewDeck, _ = ra.NewString("deck").
		SetShort("d").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Limit the session to one deck").
		Register(cmd)

	ctx.ReviewCard, _ = ra.NewString("card").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Grade a single card by ID (requires --grade)").
		Register(cmd)

	ctx.ReviewGrade, _ = ra.NewInt("grade").
		SetShort("g").
		SetOptional(true).
		SetDefault(0).
		SetFlagOnly(true).
		SetUsage("Grade from 1 (again) to 4 (easy)").
		Register(cmd)

	ctx.ReviewUsed, _ = parent.RegisterCmd(cmd)
}

var gradeOptions = []string{
	"Again (forgot it)",
	"Hard (barely recalled)",
	"Good (recalled with effort)",
	"Easy (instant recall)",
}

func runReview(deckIDOrName, cardID string, grade int, nonInteractive, jsonOutput bool) {
	app, err := NewApp(!nonInteractive)
	if err != nil {
		Fatal(err)
	}
	defer app.Close()

	if err := app.RequireData(); err != nil {
		Fatal(err)
	}

	// Scripted single-card mode
	if cardID != "" {
		if grade == 0 {
			Fatal(errors.InvalidField("grade", "required when --card is given"))
		}
		result, err := app.Reviews.RecordReview(cardID, srs.Grade(grade))
		if err != nil {
			Fatal(err)
		}
		if jsonOutput {
			if err := printJson(ReviewOutput{
				CardID:     cardID,
				DeckID:     result.DeckID,
				Correct:    result.Correct,
				NextReview: util.FormatISO(result.NextReview),
			}); err != nil {
				Fatal(err)
			}
			return
		}
		PrintSuccess("Graded card %s, next review %s", RenderID(cardID), util.FormatTime(result.NextReview))
		return
	}

	var due []model.Card
	if deckIDOrName != "" {
		d, err := app.DeckResolver.Resolve(deckIDOrName)
		if err != nil {
			Fatal(err)
		}
		due = app.Reviews.DueCardsInDeck(d.ID)
	} else {
		due = app.Reviews.DueCards()
	}

	if len(due) == 0 {
		PrintSuccess("Nothing due, come back later")
		return
	}

	PrintInfo("%d cards due", len(due))
	fmt.Println()

	reviewed, correct := 0, 0
	for _, card := range due {
		fmt.Println(Box(RenderBold(card.Front)))

		if _, err := app.Prompter.Input("Press enter to reveal the answer", ""); err != nil {
			Fatal(err)
		}
		fmt.Println(Box(card.Back))

		idx, err := app.Prompter.SelectIndex("How well did you know it?", gradeOptions)
		if err != nil {
			Fatal(err)
		}

		result, err := app.Reviews.RecordReview(card.ID, srs.Grade(idx+1))
		if err != nil {
			Fatal(err)
		}

		reviewed++
		if result.Correct {
			correct++
		}
		PrintInfo("Next review %s", RenderMuted(util.FormatTime(result.NextReview)))
		fmt.Println()
	}

	PrintSuccess("Session done: %d/%d correct", correct, reviewed)
}
