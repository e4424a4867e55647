package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/amterp/ra"
	"github.com/examklar/examklar/internal/deck"
	"github.com/examklar/examklar/internal/errors"
	"github.com/examklar/examklar/internal/model"
	"github.com/examklar/examklar/internal/util"
)

func registerDeck(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("deck")
	cmd.SetDescription("Manage flashcard decks")

	// deck create
	createCmd := ra.NewCmd("create")
	createCmd.SetDescription("Create a new deck")

	ctx.DeckCreateName, _ = ra.NewString("name").
		SetUsage("Name of the deck to create").
		Register(createCmd)

	ctx.DeckCreateSubject, _ = ra.NewString("subject").
		SetShort("s").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Subject ID or name the deck belongs to").
		Register(createCmd)

	ctx.DeckCreateDescription, _ = ra.NewString("description").
		SetShort("d").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Deck description").
		Register(createCmd)

	ctx.DeckCreateUsed, _ = cmd.RegisterCmd(createCmd)

	// deck list
	listCmd := ra.NewCmd("list")
	listCmd.SetDescription("List decks")

	ctx.DeckListSearch, _ = ra.NewString("search").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Filter by name or description substring").
		Register(listCmd)

	ctx.DeckListSubject, _ = ra.NewString("subject").
		SetShort("s").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Filter by subject ID or name").
		Register(listCmd)

	ctx.DeckListSort, _ = ra.NewString("sort").
		SetOptional(true).
		SetDefault("name").
		SetFlagOnly(true).
		SetUsage("Sort by: name, created, cards").
		Register(listCmd)

	ctx.DeckListDesc, _ = ra.NewBool("desc").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Sort in descending order").
		Register(listCmd)

	ctx.DeckListUsed, _ = cmd.RegisterCmd(listCmd)

	// deck show
	showCmd := ra.NewCmd("show")
	showCmd.SetDescription("Show a deck and its cards")

	ctx.DeckShowDeck, _ = ra.NewString("deck").
		SetUsage("Deck ID or name").
		Register(showCmd)

	ctx.DeckShowUsed, _ = cmd.RegisterCmd(showCmd)

	// deck edit
	editCmd := ra.NewCmd("edit")
	editCmd.SetDescription("Edit deck name or description")

	ctx.DeckEditDeck, _ = ra.NewString("deck").
		SetUsage("Deck ID or name").
		Register(editCmd)

	ctx.DeckEditName, _ = ra.NewString("name").
		SetShort("n").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("New deck name").
		Register(editCmd)

	ctx.DeckEditDescription, _ = ra.NewString("description").
		SetShort("d").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("New deck description").
		Register(editCmd)

	ctx.DeckEditUsed, _ = cmd.RegisterCmd(editCmd)

	// deck delete
	deleteCmd := ra.NewCmd("delete")
	deleteCmd.SetDescription("Delete a deck and its cards")

	ctx.DeckDeleteDeck, _ = ra.NewString("deck").
		SetUsage("Deck ID or name").
		Register(deleteCmd)

	ctx.DeckDeleteForce, _ = ra.NewBool("force").
		SetShort("f").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Skip confirmation").
		Register(deleteCmd)

	ctx.DeckDeleteUsed, _ = cmd.RegisterCmd(deleteCmd)

	// deck export
	exportCmd := ra.NewCmd("export")
	exportCmd.SetDescription("Export a deck as JSON")

	ctx.DeckExportDeck, _ = ra.NewString("deck").
		SetUsage("Deck ID or name").
		Register(exportCmd)

	ctx.DeckExportOut, _ = ra.NewString("out").
		SetShort("o").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Write to file instead of stdout").
		Register(exportCmd)

	ctx.DeckExportUsed, _ = cmd.RegisterCmd(exportCmd)

	// deck import
	importCmd := ra.NewCmd("import")
	importCmd.SetDescription("Import a deck from a JSON file")

	ctx.DeckImportFile, _ = ra.NewString("file").
		SetUsage("Path to the deck JSON file").
		Register(importCmd)

	ctx.DeckImportUsed, _ = cmd.RegisterCmd(importCmd)

	ctx.DeckUsed, _ = parent.RegisterCmd(cmd)
}

// resolveSubjectID picks the subject for a new deck: explicit flag first,
// then the configured default, then the only subject if there is just one.
func resolveSubjectID(app *App, subject string) (string, error) {
	if subject == "" {
		subject = app.GlobalConfig.DefaultSubject
	}
	if subject != "" {
		sub, err := app.Planner.FindSubject(subject)
		if err != nil {
			return "", err
		}
		return sub.ID, nil
	}

	subjects := app.Planner.Subjects()
	switch len(subjects) {
	case 0:
		return "", errors.InvalidField("subject", "no subjects exist yet, run 'examklar onboard' first")
	case 1:
		return subjects[0].ID, nil
	}

	options := make([]string, len(subjects))
	for i, sub := range subjects {
		options[i] = sub.Name
	}
	chosen, err := app.Prompter.Select("Which subject does this deck belong to?", options)
	if err != nil {
		return "", err
	}
	for i, opt := range options {
		if opt == chosen {
			return subjects[i].ID, nil
		}
	}
	return "", errors.SubjectNotFound(chosen)
}

func runDeckCreate(name, subject, description string, jsonOutput bool) {
	app, err := NewApp(true)
	if err != nil {
		Fatal(err)
	}
	defer app.Close()

	subjectID, err := resolveSubjectID(app, subject)
	if err != nil {
		Fatal(err)
	}

	created := app.Decks.CreateDeck(model.DeckInput{
		SubjectID:   subjectID,
		Name:        name,
		Description: description,
	})

	if jsonOutput {
		if err := printJson(NewDeckOutput(created)); err != nil {
			Fatal(err)
		}
		return
	}

	PrintSuccess("Created deck %s (%s)", RenderBold(created.Name), RenderID(created.ID))
}

func runDeckList(search, subject, sortBy string, descending, jsonOutput bool) {
	app, err := NewApp(true)
	if err != nil {
		Fatal(err)
	}
	defer app.Close()

	var subjectID string
	if subject != "" {
		sub, err := app.Planner.FindSubject(subject)
		if err != nil {
			Fatal(err)
		}
		subjectID = sub.ID
	}

	decks := app.Decks.FilterDecks(deck.DeckFilter{Search: search, SubjectID: subjectID})
	order := deck.Asc
	if descending {
		order = deck.Desc
	}
	app.Decks.OrderDecks(decks, deck.DeckSort{By: deck.SortBy(sortBy), Order: order})

	if jsonOutput {
		if err := printJson(NewDeckListOutput(decks)); err != nil {
			Fatal(err)
		}
		return
	}

	if len(decks) == 0 {
		PrintInfo("No decks found")
		return
	}

	for _, d := range decks {
		due := len(app.Decks.FilterCards(d.ID, deck.CardFilter{DueOnly: true}))
		line := fmt.Sprintf("%s %s %s", RenderID(d.ID), RenderBold(d.Name), RenderMuted(fmt.Sprintf("(%d cards)", len(d.Cards))))
		if due > 0 {
			line += " " + StyleWarning.Render(fmt.Sprintf("%d due", due))
		}
		fmt.Println(line)
	}
}

func runDeckShow(idOrName string, jsonOutput bool) {
	app, err := NewApp(true)
	if err != nil {
		Fatal(err)
	}
	defer app.Close()

	d, err := app.DeckResolver.Resolve(idOrName)
	if err != nil {
		Fatal(err)
	}

	if jsonOutput {
		if err := printJson(NewDeckOutput(d)); err != nil {
			Fatal(err)
		}
		return
	}

	fmt.Println(TitleBox(d.Name))
	fmt.Println(LabelValue("ID", RenderID(d.ID), 12))
	if d.Description != "" {
		fmt.Println(LabelValue("Description", d.Description, 12))
	}
	fmt.Println(LabelValue("Created", util.FormatTime(d.CreatedAt), 12))
	fmt.Println(LabelValue("Cards", fmt.Sprintf("%d", len(d.Cards)), 12))
	fmt.Println()

	for _, c := range d.Cards {
		tags := ""
		if len(c.Tags) > 0 {
			tags = RenderMuted(" [" + strings.Join(c.Tags, ", ") + "]")
		}
		fmt.Printf("%s %s %s%s\n", RenderID(c.ID), RenderDifficulty(string(c.Difficulty)), c.Front, tags)
	}
}

func runDeckEdit(idOrName, name, description string) {
	app, err := NewApp(true)
	if err != nil {
		Fatal(err)
	}
	defer app.Close()

	d, err := app.DeckResolver.Resolve(idOrName)
	if err != nil {
		Fatal(err)
	}

	if name == "" && description == "" {
		PrintInfo("Nothing to change, pass --name or --description")
		return
	}

	patch := model.DeckPatch{}
	if name != "" {
		patch.Name = &name
	}
	if description != "" {
		patch.Description = &description
	}
	app.Decks.UpdateDeck(d.ID, patch)

	PrintSuccess("Updated deck %s", RenderID(d.ID))
}

func runDeckDelete(idOrName string, force, nonInteractive bool) {
	app, err := NewApp(!nonInteractive)
	if err != nil {
		Fatal(err)
	}
	defer app.Close()

	d, err := app.DeckResolver.Resolve(idOrName)
	if err != nil {
		Fatal(err)
	}

	if !force {
		confirmed, err := app.Prompter.Confirm(
			fmt.Sprintf("Delete deck %q and its %d cards?", d.Name, len(d.Cards)), false)
		if err != nil {
			Fatal(err)
		}
		if !confirmed {
			PrintInfo("Aborted")
			return
		}
	}

	app.Decks.DeleteDeck(d.ID)
	PrintSuccess("Deleted deck %s", RenderBold(d.Name))
}

func runDeckExport(idOrName, outPath string) {
	app, err := NewApp(true)
	if err != nil {
		Fatal(err)
	}
	defer app.Close()

	d, err := app.DeckResolver.Resolve(idOrName)
	if err != nil {
		Fatal(err)
	}

	data := app.Decks.ExportDeck(d.ID)
	if data == "" {
		Fatal(errors.DeckNotFound(d.ID))
	}

	if outPath == "" {
		fmt.Println(data)
		return
	}

	if err := os.WriteFile(outPath, []byte(data+"\n"), 0644); err != nil {
		Fatal(err)
	}
	PrintSuccess("Exported deck %s to %s", RenderBold(d.Name), outPath)
}

func runDeckImport(filePath string, jsonOutput bool) {
	app, err := NewApp(true)
	if err != nil {
		Fatal(err)
	}
	defer app.Close()

	data, err := os.ReadFile(filePath)
	if err != nil {
		Fatal(err)
	}

	imported, err := app.Decks.ImportDeck(string(data))
	if err != nil {
		Fatal(err)
	}

	if jsonOutput {
		if err := printJson(NewDeckOutput(imported)); err != nil {
			Fatal(err)
		}
		return
	}

	PrintSuccess("Imported deck %s (%s) with %d cards",
		RenderBold(imported.Name), RenderID(imported.ID), len(imported.Cards))
}
