package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/KirkDiggler/booster-sim/internal/catalog"
	"github.com/KirkDiggler/booster-sim/internal/config"
	"github.com/KirkDiggler/booster-sim/internal/entities"
	"github.com/KirkDiggler/booster-sim/internal/errors"
	"github.com/KirkDiggler/booster-sim/internal/orchestrators/booster"
	"github.com/KirkDiggler/booster-sim/internal/pkg/idgen"
	"github.com/KirkDiggler/booster-sim/internal/random"
	"github.com/KirkDiggler/booster-sim/internal/services/packs"
)

// app is the wired object graph shared by the commands
type app struct {
	logger     *slog.Logger
	store      cardStore
	catalog    *catalog.Catalog
	packs      packs.Service
	defaultSet entities.Set
	close      func() error
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	logger := cfg.NewLogger(os.Stderr)
	slog.SetDefault(logger)

	sets, err := cfg.Sets()
	if err != nil {
		return nil, err
	}
	defaultSet, ok := entities.FindSet(sets, cfg.Set)
	if !ok {
		return nil, errors.NotFoundf("unknown default set %q", cfg.Set)
	}

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	cat, err := catalog.New(ctx, &catalog.Config{
		Store:  store,
		Sets:   sets,
		Logger: logger,
	})
	if err != nil {
		_ = closeStore()
		return nil, errors.Wrap(err, "failed to build catalog")
	}

	var ids idgen.Generator
	var src random.Source
	if cfg.Seed != 0 {
		ids = idgen.NewSeeded("pack", cfg.Seed)
		src = random.NewLocked(random.NewSeeded(cfg.Seed))
	}

	orchestrator, err := booster.NewOrchestrator(&booster.Config{
		Catalog:     cat,
		IDGenerator: ids,
		Logger:      logger,
	})
	if err != nil {
		_ = closeStore()
		return nil, err
	}

	svc, err := packs.NewService(&packs.Config{
		Booster:    orchestrator,
		Sets:       cat,
		Rules:      cfg.Rules,
		DefaultSet: defaultSet,
		Random:     src,
	})
	if err != nil {
		_ = closeStore()
		return nil, err
	}

	return &app{
		logger:     logger,
		store:      store,
		catalog:    cat,
		packs:      svc,
		defaultSet: defaultSet,
		close:      closeStore,
	}, nil
}

// warm loads the default set so the first request does not pay for it
func (a *app) warm(ctx context.Context) {
	if err := a.catalog.EnsureLoaded(ctx, a.defaultSet); err != nil {
		a.logger.Warn("failed to preload default set", "set", a.defaultSet.Code, "error", err)
		return
	}
	a.logger.Info("preloaded default set", "set", a.defaultSet.Code, "sizes", a.catalog.Size(a.defaultSet))
}

func (a *app) shutdown() {
	if err := a.close(); err != nil {
		a.logger.Error("failed to close card store", "error", err)
	}
}
