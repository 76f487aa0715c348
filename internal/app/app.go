package app

import (
	"context"
	"fmt"
	"os"

	"github.com/hibiken/asynq"
	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"

	"semcat/internal/config"
	"semcat/internal/costtracker"
	"semcat/internal/hypernym"
	"semcat/internal/inputprocessor"
	"semcat/internal/jobs"
	"semcat/internal/services"
	"semcat/internal/taxonomy"
	"semcat/pkg/categorizer"
)

type App struct {
	Config         *config.Config
	Tables         *taxonomy.Tables
	Provider       *hypernym.Client
	CostTracker    costtracker.CostTracker
	Entities       categorizer.EntityExtractor
	InputProcessor inputprocessor.Processor

	AnalysisService *services.AnalysisService
	JobClient       *jobs.AsynqJobClient
}

func NewApp(cfg *config.Config, inputProc inputprocessor.Processor) (*App, error) {
	app := &App{Config: cfg, InputProcessor: inputProc, CostTracker: costtracker.New()}

	if err := app.initLogging(); err != nil {
		return nil, err
	}
	if err := app.initTaxonomy(); err != nil {
		return nil, err
	}
	app.initProvider()
	if err := app.initEntityExtractor(); err != nil {
		return nil, err
	}
	app.AnalysisService = services.NewAnalysisService(services.AnalysisServiceDeps{
		Provider:     app.Provider,
		Tables:       app.Tables,
		Entities:     app.Entities,
		MinWordCount: cfg.Provider.MinWordCount,
	})
	app.JobClient = jobs.NewAsynqJobClient(app.RedisOpt())

	log.Debug("Application initialization complete.")
	return app, nil
}

// RedisOpt returns the connection options shared by the job client and worker.
func (a *App) RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     a.Config.Redis.Address,
		Password: a.Config.Redis.Password,
		DB:       a.Config.Redis.DB,
	}
}

func (a *App) Close() error {
	if total, err := a.CostTracker.TotalCost(context.Background()); err == nil && total > 0 {
		log.Infof("AI usage this run: $%.6f", total)
	}
	if a.JobClient != nil {
		return a.JobClient.Close()
	}
	return nil
}

func (a *App) initLogging() error {
	level, err := log.ParseLevel(a.Config.Log.Level)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(level)
	return nil
}

func (a *App) initTaxonomy() error {
	if a.Config.Taxonomy.Path == "" {
		a.Tables = taxonomy.Default()
		return nil
	}
	tables, err := taxonomy.Load(a.Config.Taxonomy.Path)
	if err != nil {
		return fmt.Errorf("init taxonomy: %w", err)
	}
	log.Infof("Loaded taxonomy tables from %s", a.Config.Taxonomy.Path)
	a.Tables = tables
	return nil
}

func (a *App) initProvider() {
	p := a.Config.Provider
	if p.APIKey == "" {
		log.Warn("Provider API key not set (HYPERNYM_API_KEY); upstream calls will likely be rejected and fall back to heuristics")
	}
	a.Provider = &hypernym.Client{
		BaseURL:               p.BaseURL,
		APIKey:                p.APIKey,
		MinCompressionRatio:   p.MinCompressionRatio,
		MinSemanticSimilarity: p.MinSemanticSimilarity,
		Timeout:               p.Timeout,
	}
}

func (a *App) initEntityExtractor() error {
	cfg := a.Config.Entities
	if !cfg.Enabled {
		a.Entities = categorizer.NoopEntityExtractor{}
		return nil
	}
	switch cfg.Provider {
	case "openai":
		promptContent, err := config.LoadPromptContent(cfg.PromptTemplate)
		if err != nil {
			log.Warnf("Failed to load entity prompt: %v. Using the built-in prompt.", err)
			promptContent = ""
		}
		a.Entities = categorizer.NewLLMEntityExtractor(
			openai.NewClient(cfg.OpenaiApiKey), cfg.Model, promptContent,
			a.CostTracker, a.Config.Pricing["openai"],
		)
		log.Infof("Entity extraction enabled (model: %s)", cfg.Model)
	default:
		return fmt.Errorf("unsupported entity provider '%s'", cfg.Provider)
	}
	return nil
}
