package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pageza/recipe-discovery/backend/config"
	"github.com/pageza/recipe-discovery/backend/internal/api"
	"github.com/pageza/recipe-discovery/backend/internal/llm"
	"github.com/pageza/recipe-discovery/backend/internal/logging"
	"github.com/pageza/recipe-discovery/backend/internal/router"
	"github.com/pageza/recipe-discovery/backend/internal/server"
	"github.com/pageza/recipe-discovery/backend/internal/service"
	"github.com/pageza/recipe-discovery/backend/internal/store"
)

func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "api",
		Short: "Recipe discovery API",
		Long: `Serves a local recipe list, relays recipe provider searches and
turns free-text prompts into searches or new recipes.

Settings come from flags, the environment, an optional config file and
Docker secrets. SPOONACULAR_API_KEY and LLM_API_KEY are required.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}

	cmd.PersistentFlags().String("config", "", "config file (yaml, json or toml)")
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.Flags().String("port", "", "listen port (overrides SERVER_PORT)")

	_ = v.BindPFlag("config", cmd.PersistentFlags().Lookup("config"))
	_ = v.BindPFlag("debug", cmd.PersistentFlags().Lookup("debug"))
	_ = v.BindPFlag("server_port", cmd.Flags().Lookup("port"))

	cmd.AddCommand(newSeedCmd(v))
	return cmd
}

// loadConfig reads the configuration and installs the logger it describes
func loadConfig(v *viper.Viper) (*config.Config, error) {
	if v.GetBool("debug") {
		v.Set("log_level", "debug")
	}

	cfg, err := config.LoadConfig(v)
	if err != nil {
		return nil, err
	}

	logging.Init(logging.Options{Level: cfg.LogLevel, JSON: cfg.LogJSON})
	gin.SetMode(cfg.Environment.GinMode())
	slog.Debug("configuration loaded", "environment", cfg.Environment, "llm_provider", cfg.LLMProvider)
	return cfg, nil
}

func serve(ctx context.Context, cfg *config.Config) error {
	recipes, err := store.Open(ctx, cfg.RecipesSource, cfg.AWSRegion)
	if err != nil {
		slog.Error("failed to load recipes", "source", cfg.RecipesSource, "error", err)
		return err
	}

	provider, err := llm.New(llm.ProviderConfig{
		Provider: cfg.LLMProvider,
		APIKey:   cfg.LLMAPIKey,
		BaseURL:  cfg.LLMBaseURL,
		Model:    cfg.LLMModel,
		Timeout:  cfg.LLMTimeout,
	})
	if err != nil {
		slog.Error("failed to create language model provider", "error", err)
		return err
	}

	upstream := service.NewUpstreamClient(service.UpstreamConfig{
		BaseURL:     cfg.SpoonacularBaseURL,
		APIKey:      cfg.SpoonacularAPIKey,
		Timeout:     cfg.UpstreamTimeout,
		SearchCount: cfg.SearchResultCount,
		BrowseCount: cfg.BrowseResultCount,
	})

	engine := router.SetupRouter(
		api.NewRecipeHandler(recipes, upstream, cfg.BrowseSource),
		api.NewLLMHandler(service.NewFilterExtractor(provider), service.NewRecipeGenerator(provider), upstream),
		recipes,
		cfg.CORSAllowedOrigins,
	)

	slog.Info("starting server",
		"addr", cfg.Addr(),
		"recipes", recipes.Len(),
		"llm_provider", provider.Name(),
		"llm_model", provider.Model(),
		"browse_source", cfg.BrowseSource,
	)

	if err := server.New(cfg, engine).Run(ctx); err != nil {
		slog.Error("server error", "error", err)
		return err
	}
	slog.Info("server stopped")
	return nil
}
