package cli

import (
	"fmt"
	"os"

	"github.com/examklar/examklar/internal/config"
	"github.com/examklar/examklar/internal/deck"
	"github.com/examklar/examklar/internal/editor"
	ekerr "github.com/examklar/examklar/internal/errors"
	"github.com/examklar/examklar/internal/history"
	"github.com/examklar/examklar/internal/model"
	"github.com/examklar/examklar/internal/prompt"
	"github.com/examklar/examklar/internal/resolver"
	"github.com/examklar/examklar/internal/service"
	"github.com/examklar/examklar/internal/store"
)

// App holds all the dependencies for the CLI.
type App struct {
	GlobalStore  store.GlobalStore
	GlobalConfig *model.GlobalConfig
	Paths        *config.Paths
	Decks        *deck.Store
	DeckStore    store.DeckSnapshotStore
	History      *history.DB
	Prompter     prompt.Prompter
	Editor       *editor.Editor
	Planner      *service.PlannerService
	Reviews      *service.ReviewService
	Quizzes      *service.QuizService
	Onboard      *service.OnboardService
	DeckResolver *resolver.DeckResolver
	CardResolver *resolver.CardResolver
}

// NewApp creates a new App with all dependencies wired up.
// If interactive is false, uses NoopPrompter that fails on prompts.
func NewApp(interactive bool) (*App, error) {
	globalStore := store.NewGlobalStore()

	// Load global config with warnings (don't silently ignore errors)
	globalCfg, err := globalStore.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load global config: %v\n", err)
		globalCfg = &model.GlobalConfig{}
	}

	paths := config.NewPaths(config.ResolveDataDir(globalCfg.DataDir))
	if err := paths.EnsureDataDir(); err != nil {
		return nil, err
	}

	var opts []deck.Option
	if globalCfg.Locale != "" {
		opts = append(opts, deck.WithLocale(globalCfg.Locale))
	}
	decks := deck.NewStore(opts...)

	deckStore := store.NewDeckSnapshotStore(paths)
	snapshot, err := deckStore.Load()
	if err != nil {
		return nil, err
	}
	decks.Restore(snapshot)

	// Persist on every mutation. The snapshot is small enough that a full
	// rewrite per change is fine for a single-user tool.
	decks.Subscribe(func(deck.Event) {
		if err := deckStore.Save(decks.Snapshot()); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to save decks: %v\n", err)
		}
	})

	planner, err := service.NewPlannerService(store.NewPlannerStore(paths))
	if err != nil {
		return nil, err
	}

	// Review history is best effort: the app works without it, only streak
	// and per-card history queries degrade.
	hist, err := history.Open(paths.HistoryPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to open review history: %v\n", err)
		hist = nil
	}

	var prompter prompt.Prompter
	if interactive {
		prompter = prompt.NewHuhPrompter()
	} else {
		prompter = &prompt.NoopPrompter{}
	}

	return &App{
		GlobalStore:  globalStore,
		GlobalConfig: globalCfg,
		Paths:        paths,
		Decks:        decks,
		DeckStore:    deckStore,
		History:      hist,
		Prompter:     prompter,
		Editor:       editor.NewEditor(globalCfg),
		Planner:      planner,
		Reviews:      service.NewReviewService(decks, nil, hist),
		Quizzes:      service.NewQuizService(planner),
		Onboard:      service.NewOnboardService(decks, planner),
		DeckResolver: resolver.NewDeckResolver(decks, prompter),
		CardResolver: resolver.NewCardResolver(decks),
	}, nil
}

// Close releases resources held by the app.
func (a *App) Close() {
	if a.History != nil {
		a.History.Close()
	}
}

// RequireData ensures examklar has been set up with at least one subject.
func (a *App) RequireData() error {
	if len(a.Planner.Subjects()) == 0 && a.Decks.Len() == 0 {
		return &ekerr.NotInitializedError{Path: a.Paths.DataDir()}
	}
	return nil
}

// Fatal prints an error and exits.
func Fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
