package app

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"

	"niche/internal/catalogsource"
	"niche/internal/config"
	"niche/internal/metrics"
	"niche/internal/services"
	"niche/internal/store"
	"niche/internal/store/local"
	"niche/internal/store/primary"
	"niche/pkg/categorizer"
)

type App struct {
	Config *config.Config

	Store     store.Store
	JobClient store.JobClient // nil unless redis.address is set

	Catalog  *categorizer.Catalog
	Scorer   *categorizer.Scorer
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics

	// --- Initialized Services ---
	CreatorService        *services.CreatorService
	CategorizationService *services.CategorizationService
	SuggestionService     *services.SuggestionService
	JobService            *services.JobService
}

// NewApp wires every component from cfg. The catalog is read through loader.
func NewApp(ctx context.Context, cfg *config.Config, loader catalogsource.Loader) (*App, error) {
	app := &App{Config: cfg}

	if err := app.initCatalog(ctx, loader); err != nil {
		return nil, err
	}
	if err := app.initStore(ctx); err != nil {
		return nil, err
	}
	if err := app.initJobClient(); err != nil {
		app.cleanupPartialInit()
		return nil, err
	}
	app.initMetrics()
	if err := app.initServices(); err != nil {
		app.cleanupPartialInit()
		return nil, err
	}

	log.Debug("Application initialization complete.")
	return app, nil
}

// --- Private Helper Methods ---

func (a *App) initCatalog(ctx context.Context, loader catalogsource.Loader) error {
	catalog, err := loader.Load(ctx, a.Config.Catalog.Path)
	if err != nil {
		return fmt.Errorf("init catalog: %w", err)
	}
	a.Catalog = catalog
	a.Scorer = categorizer.NewScorer(catalog,
		categorizer.WithBioWeight(a.Config.Scoring.BioWeight),
		categorizer.WithRunnerUpRatio(a.Config.Scoring.RunnerUpRatio),
		categorizer.WithThirdPlaceRatio(a.Config.Scoring.ThirdPlaceRatio),
	)
	log.Debugf("Loaded %d categories from %s", catalog.Len(), a.Config.Catalog.Path)
	return nil
}

func (a *App) initStore(ctx context.Context) error {
	db := a.Config.Database
	switch db.Driver {
	case config.DriverPostgres:
		ps, err := primary.NewPrimaryStore(ctx, db.Primary.DSN)
		if err != nil {
			return fmt.Errorf("init primary store: %w", err)
		}
		a.Store = ps
	case config.DriverSQLite:
		ls, err := local.NewLocalStore(ctx, db.Local.Path)
		if err != nil {
			return fmt.Errorf("init local store: %w", err)
		}
		a.Store = ls
	default:
		return fmt.Errorf("unsupported database driver %q", db.Driver)
	}
	return nil
}

func (a *App) initJobClient() error {
	r := a.Config.Redis
	if r.Address == "" {
		log.Debug("redis.address not set, background jobs disabled")
		return nil
	}
	jc, err := store.NewAsynqJobClient(asynq.RedisClientOpt{
		Addr:     r.Address,
		Password: r.Password,
		DB:       r.DB,
	}, a.Store)
	if err != nil {
		return fmt.Errorf("init job client: %w", err)
	}
	a.JobClient = jc
	return nil
}

func (a *App) initMetrics() {
	a.Registry = prometheus.NewRegistry()
	a.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	a.Metrics = metrics.NewMetrics(a.Registry)
}

func (a *App) initServices() error {
	cfg := a.Config
	a.CreatorService = services.NewCreatorService(a.Store)
	a.CategorizationService = services.NewCategorizationService(a.Scorer, a.Store, a.Metrics)

	var suggester categorizer.KeywordSuggester
	if cfg.Suggest.Enabled {
		if cfg.OpenAI.APIKey == "" {
			return fmt.Errorf("OpenAI API key is required for keyword suggestions but not set")
		}
		clientCfg := openai.DefaultConfig(cfg.OpenAI.APIKey)
		if cfg.OpenAI.BaseURL != "" {
			clientCfg.BaseURL = cfg.OpenAI.BaseURL
		}
		var promptContent string
		if cfg.Suggest.Prompt != "" {
			var err error
			promptContent, err = config.LoadPromptContent(cfg.Suggest.Prompt, "suggest_keywords.txt")
			if err != nil {
				log.Warnf("Failed to load keyword suggestion prompt: %v. Using the built-in prompt.", err)
				promptContent = ""
			}
		}
		suggester = categorizer.NewLLMKeywordSuggester(openai.NewClientWithConfig(clientCfg), cfg.Suggest.Model, promptContent)
	}
	a.SuggestionService = services.NewSuggestionService(suggester, a.Catalog, a.Store, cfg.Suggest.MaxKeywords)

	a.JobService = services.NewJobService(a.JobClient, a.Store, a.Store)
	return nil
}

// Close releases the job client and the store.
func (a *App) Close() error {
	var firstErr error
	if a.JobClient != nil {
		if err := a.JobClient.Close(); err != nil {
			firstErr = err
		}
	}
	if a.Store != nil {
		if err := a.Store.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (a *App) cleanupPartialInit() {
	if err := a.Close(); err != nil {
		log.Printf("Error during partial init cleanup: %v", err)
	}
}
