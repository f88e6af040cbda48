package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/talent-match/internal/config"
	"github.com/jonathan/talent-match/internal/db"
	"github.com/jonathan/talent-match/internal/extraction"
	"github.com/jonathan/talent-match/internal/llm"
	"github.com/jonathan/talent-match/internal/ranking"
	"github.com/jonathan/talent-match/internal/taxonomy"
)

// Resources owns the external connections opened by FromConfig
type Resources struct {
	LLM llm.Client
	DB  *db.DB
}

// Close releases every open connection
func (r *Resources) Close() error {
	if r.DB != nil {
		r.DB.Close()
	}
	if r.LLM != nil {
		return r.LLM.Close()
	}
	return nil
}

// FromConfig opens the Gemini client and database the configuration asks for
// and returns the matching Deps. A database that cannot be reached is logged
// and skipped so matching still works without persistence.
func FromConfig(ctx context.Context, cfg *config.Config, tax *taxonomy.Taxonomy, logger *zap.Logger) (Deps, *Resources, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	deps := Deps{Taxonomy: tax, Config: cfg, Logger: logger}
	res := &Resources{}

	if cfg.Ranking.Provider == config.ProviderGemini || cfg.Gemini.Tagger {
		llmCfg := llm.DefaultConfig().WithEmbeddingModel(cfg.Gemini.EmbeddingModel)
		client, err := llm.NewGeminiClient(ctx, llmCfg, cfg.Gemini.APIKey)
		if err != nil {
			return Deps{}, nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		res.LLM = client
		if cfg.Ranking.Provider == config.ProviderGemini {
			deps.Similarity = ranking.NewEmbeddingProvider(client)
		}
		if cfg.Gemini.Tagger {
			deps.Tagger = extraction.NewLLMTagger(client, "resume")
		}
	}

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Warn("failed to connect to database, continuing without persistence", zap.Error(err))
		} else {
			res.DB = database
			deps.Store = database
		}
	}
	return deps, res, nil
}
