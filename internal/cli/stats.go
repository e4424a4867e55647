package cli

import (
	"fmt"
	"time"

	"github.com/amterp/ra"
	"github.com/examklar/examklar/internal/util"
)

func registerStats(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("stats")
	cmd.SetDescription("Show study statistics")

	ctx.StatsDeck, _ = ra.NewString("deck").
		SetShort("d").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Show performance metrics for one deck").
		Register(cmd)

	ctx.StatsUsed, _ = parent.RegisterCmd(cmd)
}

func runStats(deckIDOrName string, jsonOutput bool) {
	app, err := NewApp(true)
	if err != nil {
		Fatal(err)
	}
	defer app.Close()

	if deckIDOrName != "" {
		runDeckMetrics(app, deckIDOrName, jsonOutput)
		return
	}

	stats := app.Decks.Stats()

	// The history log outlives card counters (import regenerates cards), so
	// prefer its streak when available.
	if app.History != nil {
		if streak, err := app.History.StudyStreak(); err == nil && streak > stats.StudyStreak {
			stats.StudyStreak = streak
		}
	}

	if jsonOutput {
		if err := printJson(StatsOutput{Stats: stats}); err != nil {
			Fatal(err)
		}
		return
	}

	fmt.Println(TitleBox("Study Statistics"))
	fmt.Println(LabelValue("Decks", fmt.Sprintf("%d", stats.TotalDecks), 14))
	fmt.Println(LabelValue("Cards", fmt.Sprintf("%d", stats.TotalCards), 14))
	fmt.Println(LabelValue("Due now", fmt.Sprintf("%d", stats.CardsDueForReview), 14))
	fmt.Println(LabelValue("Streak", fmt.Sprintf("%d days", stats.StudyStreak), 14))
	fmt.Println(LabelValue("Easy", fmt.Sprintf("%d", stats.DifficultyDistribution.Easy), 14))
	fmt.Println(LabelValue("Medium", fmt.Sprintf("%d", stats.DifficultyDistribution.Medium), 14))
	fmt.Println(LabelValue("Hard", fmt.Sprintf("%d", stats.DifficultyDistribution.Hard), 14))

	printRecentActivity(app)
}

// printRecentActivity shows review counts for the last week from the
// history log, oldest day first.
func printRecentActivity(app *App) {
	if app.History == nil {
		return
	}
	counts, err := app.History.DailyCounts(7)
	if err != nil || len(counts) == 0 {
		return
	}

	fmt.Println()
	fmt.Println(RenderBold("Last 7 days"))
	for i := 6; i >= 0; i-- {
		day := util.FormatDate(time.Now().UTC().AddDate(0, 0, -i))
		fmt.Println(LabelValue(day, fmt.Sprintf("%d reviews", counts[day]), 14))
	}
}

func runDeckMetrics(app *App, deckIDOrName string, jsonOutput bool) {
	d, err := app.DeckResolver.Resolve(deckIDOrName)
	if err != nil {
		Fatal(err)
	}

	metrics := app.Decks.PerformanceMetrics(d.ID)

	if jsonOutput {
		if err := printJson(MetricsOutput{Metrics: metrics}); err != nil {
			Fatal(err)
		}
		return
	}

	fmt.Println(TitleBox(d.Name))
	fmt.Println(LabelValue("Reviews", fmt.Sprintf("%d", metrics.TotalReviews), 14))
	fmt.Println(LabelValue("Accuracy", fmt.Sprintf("%.0f%%", metrics.AverageAccuracy), 14))
	fmt.Println(LabelValue("Mastery", fmt.Sprintf("%.0f%%", metrics.MasteryLevel), 14))
	if metrics.LastStudied != nil {
		fmt.Println(LabelValue("Last studied", util.FormatTime(*metrics.LastStudied), 14))
	} else {
		fmt.Println(LabelValue("Last studied", RenderMuted("never"), 14))
	}
}
