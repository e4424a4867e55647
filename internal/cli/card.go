package cli

import (
	"strings"

	"github.com/amterp/ra"
	"github.com/examklar/examklar/internal/errors"
	"github.com/examklar/examklar/internal/model"
)

func registerCard(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("card")
	cmd.SetDescription("Manage flashcards")

	// card add
	addCmd := ra.NewCmd("add")
	addCmd.SetDescription("Add a card to a deck")

	ctx.CardAddDeck, _ = ra.NewString("deck").
		SetUsage("Deck ID or name").
		Register(addCmd)

	ctx.CardAddFront, _ = ra.NewString("front").
		SetUsage("Question side of the card").
		Register(addCmd)

	ctx.CardAddBack, _ = ra.NewString("back").
		SetUsage("Answer side of the card").
		Register(addCmd)

	ctx.CardAddDifficulty, _ = ra.NewString("difficulty").
		SetShort("d").
		SetOptional(true).
		SetDefault("medium").
		SetFlagOnly(true).
		SetUsage("Difficulty: easy, medium or hard").
		Register(addCmd)

	ctx.CardAddTags, _ = ra.NewStringSlice("tag").
		SetShort("t").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Tag (repeatable)").
		Register(addCmd)

	ctx.CardAddUsed, _ = cmd.RegisterCmd(addCmd)

	// card edit
	editCmd := ra.NewCmd("edit")
	editCmd.SetDescription("Edit a card")

	ctx.CardEditDeck, _ = ra.NewString("deck").
		SetUsage("Deck ID or name").
		Register(editCmd)

	ctx.CardEditCard, _ = ra.NewString("card").
		SetUsage("Card ID or front text prefix").
		Register(editCmd)

	ctx.CardEditFront, _ = ra.NewString("front").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("New front text").
		Register(editCmd)

	ctx.CardEditBack, _ = ra.NewString("back").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("New back text").
		Register(editCmd)

	ctx.CardEditDifficulty, _ = ra.NewString("difficulty").
		SetShort("d").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("New difficulty: easy, medium or hard").
		Register(editCmd)

	ctx.CardEditOpenEditor, _ = ra.NewBool("editor").
		SetShort("e").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Edit front and back in $EDITOR").
		Register(editCmd)

	ctx.CardEditUsed, _ = cmd.RegisterCmd(editCmd)

	// card remove
	removeCmd := ra.NewCmd("remove")
	removeCmd.SetDescription("Remove a card from a deck")

	ctx.CardRemoveDeck, _ = ra.NewString("deck").
		SetUsage("Deck ID or name").
		Register(removeCmd)

	ctx.CardRemoveCard, _ = ra.NewString("card").
		SetUsage("Card ID or front text prefix").
		Register(removeCmd)

	ctx.CardRemoveUsed, _ = cmd.RegisterCmd(removeCmd)

	// card move
	moveCmd := ra.NewCmd("move")
	moveCmd.SetDescription("Move a card to another deck")

	ctx.CardMoveFrom, _ = ra.NewString("from").
		SetUsage("Source deck ID or name").
		Register(moveCmd)

	ctx.CardMoveCard, _ = ra.NewString("card").
		SetUsage("Card ID or front text prefix").
		Register(moveCmd)

	ctx.CardMoveTo, _ = ra.NewString("to").
		SetUsage("Target deck ID or name").
		Register(moveCmd)

	ctx.CardMoveUsed, _ = cmd.RegisterCmd(moveCmd)

	ctx.CardUsed, _ = parent.RegisterCmd(cmd)
}

func runCardAdd(deckIDOrName, front, back, difficulty string, tags []string, jsonOutput bool) {
	app, err := NewApp(true)
	if err != nil {
		Fatal(err)
	}
	defer app.Close()

	d, err := app.DeckResolver.Resolve(deckIDOrName)
	if err != nil {
		Fatal(err)
	}

	diff := model.Difficulty(difficulty)
	if !diff.Valid() {
		Fatal(errors.InvalidField("difficulty", "must be easy, medium or hard"))
	}

	card := app.Decks.AddCardToDeck(d.ID, model.CardInput{
		Front:      front,
		Back:       back,
		Difficulty: diff,
		Tags:       tags,
	})
	if card == nil {
		Fatal(errors.DeckNotFound(d.ID))
	}

	if jsonOutput {
		if err := printJson(NewCardOutput(card)); err != nil {
			Fatal(err)
		}
		return
	}

	PrintSuccess("Added card %s to %s", RenderID(card.ID), RenderBold(d.Name))
}

func runCardEdit(deckIDOrName, cardIDOrFront, front, back, difficulty string, openEditor bool) {
	app, err := NewApp(true)
	if err != nil {
		Fatal(err)
	}
	defer app.Close()

	d, err := app.DeckResolver.Resolve(deckIDOrName)
	if err != nil {
		Fatal(err)
	}

	card, err := app.CardResolver.Resolve(d.ID, cardIDOrFront)
	if err != nil {
		Fatal(err)
	}

	patch := model.CardPatch{}
	if openEditor {
		front, back, err = editCardContent(app, card)
		if err != nil {
			Fatal(err)
		}
	}
	if front != "" {
		patch.Front = &front
	}
	if back != "" {
		patch.Back = &back
	}
	if difficulty != "" {
		diff := model.Difficulty(difficulty)
		if !diff.Valid() {
			Fatal(errors.InvalidField("difficulty", "must be easy, medium or hard"))
		}
		patch.Difficulty = &diff
	}

	if patch.Front == nil && patch.Back == nil && patch.Difficulty == nil {
		PrintInfo("Nothing to change, pass --front, --back, --difficulty or --editor")
		return
	}

	app.Decks.UpdateCardInDeck(d.ID, card.ID, patch)
	PrintSuccess("Updated card %s", RenderID(card.ID))
}

// editCardContent opens the card in the user's editor. The front is the
// first line, the back everything after the separator.
func editCardContent(app *App, card *model.Card) (front, back string, err error) {
	content := card.Front + "\n---\n" + card.Back
	edited, err := app.Editor.Edit(content)
	if err != nil {
		return "", "", err
	}

	parts := strings.SplitN(edited, "\n---\n", 2)
	front = strings.TrimSpace(parts[0])
	if len(parts) == 2 {
		back = strings.TrimSpace(parts[1])
	}
	if front == "" {
		return "", "", errors.InvalidField("front", "cannot be empty")
	}
	return front, back, nil
}

func runCardRemove(deckIDOrName, cardIDOrFront string) {
	app, err := NewApp(true)
	if err != nil {
		Fatal(err)
	}
	defer app.Close()

	d, err := app.DeckResolver.Resolve(deckIDOrName)
	if err != nil {
		Fatal(err)
	}

	card, err := app.CardResolver.Resolve(d.ID, cardIDOrFront)
	if err != nil {
		Fatal(err)
	}

	app.Decks.RemoveCardFromDeck(d.ID, card.ID)
	PrintSuccess("Removed card %s from %s", RenderID(card.ID), RenderBold(d.Name))
}

func runCardMove(cardIDOrFront, fromIDOrName, toIDOrName string) {
	app, err := NewApp(true)
	if err != nil {
		Fatal(err)
	}
	defer app.Close()

	from, err := app.DeckResolver.Resolve(fromIDOrName)
	if err != nil {
		Fatal(err)
	}

	to, err := app.DeckResolver.Resolve(toIDOrName)
	if err != nil {
		Fatal(err)
	}

	card, err := app.CardResolver.Resolve(from.ID, cardIDOrFront)
	if err != nil {
		Fatal(err)
	}

	app.Decks.MoveCardBetweenDecks(card.ID, from.ID, to.ID)
	PrintSuccess("Moved card %s from %s to %s", RenderID(card.ID), RenderBold(from.Name), RenderBold(to.Name))
}
