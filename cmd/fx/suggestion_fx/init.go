package suggestion_fx

import (
	"context"
	"fmt"
	"log/slog"

	"go.uber.org/fx"

	"voyage/internal/config"
	"voyage/internal/repositories"
	"voyage/internal/services"
	mem "voyage/pkg/memcache"
	"voyage/pkg/utils"
)

var Module = fx.Provide(
	provideSuggestionProvider,
	provideSuggestionService)

// provideSuggestionProvider returns a nil provider when suggestions are
// disabled; the service then answers every request in degraded mode.
func provideSuggestionProvider(lc fx.Lifecycle, cfg config.Config) (services.SuggestionProvider, error) {
	switch cfg.SuggestionProvider {
	case config.ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required when SUGGESTION_PROVIDER=gemini")
		}
		client, err := utils.NewGeminiSuggestionClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return client.Close()
			},
		})
		slog.Info("suggestion provider ready", "provider", client.Name(), "model", cfg.GeminiModel)
		return client, nil

	case config.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required when SUGGESTION_PROVIDER=openai")
		}
		client := utils.NewOpenAISuggestionClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		slog.Info("suggestion provider ready", "provider", client.Name(), "model", cfg.OpenAIModel)
		return client, nil

	default:
		slog.Warn("AI suggestions disabled", "provider", cfg.SuggestionProvider)
		return nil, nil
	}
}

func provideSuggestionService(
	cfg config.Config,
	tripRepo repositories.TripRepository,
	provider services.SuggestionProvider,
	cache mem.Store,
) services.SuggestionServiceInterface {
	return services.NewSuggestionService(tripRepo, provider, cache, cfg.SuggestionTimeout, cfg.SuggestionCacheTTL)
}
