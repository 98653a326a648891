package main

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"eTEats_recipes/api"
	"eTEats_recipes/config"
	"eTEats_recipes/controller"
	"eTEats_recipes/logger"
	"eTEats_recipes/model"
	"eTEats_recipes/storage"
	"eTEats_recipes/views"
)

// app is one page session: state restored from storage, views bound to the
// controller, and a screen printed when the command is done.
type app struct {
	cfg        *config.Config
	log        *zap.Logger
	closeStore func() error

	model    *model.Model
	ctrl     *controller.Controller
	location *views.StoredLocation
	screen   *views.Screen

	recipe     *views.RecipeView
	search     *views.SearchView
	pagination *views.PaginationView
	bookmarks  *views.BookmarksView
	addRecipe  *views.AddRecipeView

	out io.Writer
}

func loadConfig(path string) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(logger.Config{Level: cfg.Log.Level, Development: cfg.Log.Development})
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

func newApp(ctx context.Context, cfgPath string, out io.Writer) (*app, error) {
	cfg, log, err := loadConfig(cfgPath)
	if err != nil {
		return nil, err
	}
	return newAppWith(ctx, cfg, log, out)
}

func newAppWith(ctx context.Context, cfg *config.Config, log *zap.Logger, out io.Writer) (*app, error) {
	store, closeStore, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	client := api.New(cfg.API.URL, cfg.API.Key, cfg.API.Timeout)
	m, err := model.New(ctx, model.NewState(cfg.Search.ResultsPerPage), client, store, log.Named("model"))
	if err != nil {
		closeStore()
		return nil, err
	}
	loc, err := views.NewStoredLocation(ctx, store, log)
	if err != nil {
		closeStore()
		return nil, err
	}

	screen := views.NewScreen(out)
	a := &app{
		cfg:        cfg,
		log:        log,
		closeStore: closeStore,
		model:      m,
		location:   loc,
		screen:     screen,
		recipe:     views.NewRecipeView(screen),
		search:     views.NewSearchView(),
		pagination: views.NewPaginationView(screen),
		bookmarks:  views.NewBookmarksView(screen, loc),
		addRecipe:  views.NewAddRecipeView(screen),
		out:        out,
	}
	a.ctrl = controller.New(m, controller.Views{
		Recipe:     a.recipe,
		Search:     a.search,
		Results:    views.NewResultsView(screen, loc),
		Pagination: a.pagination,
		Bookmarks:  a.bookmarks,
		AddRecipe:  a.addRecipe,
	}, loc, log.Named("controller"))
	a.ctrl.Init()

	// page load
	a.bookmarks.Load()
	return a, nil
}

// navigate points the location at id and raises the hash change.
func (a *app) navigate(ctx context.Context, id string) {
	a.location.PushFragment(id)
	a.recipe.HashChange(ctx)
}

// finish prints the screen and releases storage.
func (a *app) finish() error {
	defer a.log.Sync()
	printErr := a.screen.Print(a.out)
	if err := a.closeStore(); err != nil {
		a.log.Warn("closing storage", zap.Error(err))
	}
	return printErr
}
