// Command taxidd serves the INN and KPP validators over HTTP.
//
// Configuration comes from the environment and an optional .env file:
//
//	APP_ENV           development, staging or production
//	APP_NAME          service name attached to every log record
//	LOG_LEVEL         debug, info, warn or error; overrides the APP_ENV default
//	DEFAULT_LANGUAGE  language used when a request names none (en or ru)
//	BATCH_LIMIT       maximum identifiers per batch request
//	HTTP_*            listener settings, see httpserver.Config
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dmitrymomot/taxid/internal/api"
	"github.com/dmitrymomot/taxid/internal/locales"
	"github.com/dmitrymomot/taxid/pkg/config"
	"github.com/dmitrymomot/taxid/pkg/httpserver"
	"github.com/dmitrymomot/taxid/pkg/i18n"
	"github.com/dmitrymomot/taxid/pkg/logger"
	"github.com/dmitrymomot/taxid/pkg/requestid"
)

type appConfig struct {
	Env             string `env:"APP_ENV" envDefault:"development"`
	Name            string `env:"APP_NAME" envDefault:"taxidd"`
	LogLevel        string `env:"LOG_LEVEL"`
	DefaultLanguage string `env:"DEFAULT_LANGUAGE" envDefault:"en"`
	BatchLimit      int    `env:"BATCH_LIMIT" envDefault:"1000"`

	HTTP httpserver.Config
}

func main() {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		logger.New().Error("failed to load config", logger.Error(err))
		os.Exit(1)
	}

	log := logger.New(
		logger.WithEnvironment(cfg.Env, cfg.Name),
		logger.WithLevelName(cfg.LogLevel),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("server stopped with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	tr, err := locales.New(ctx,
		i18n.WithDefaultLanguage(cfg.DefaultLanguage),
		i18n.WithLogger(log),
		i18n.WithMissingTranslationsLogging(cfg.Env == logger.Development),
	)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	h := api.New(tr,
		api.WithLogger(log),
		api.WithRegistry(reg),
		api.WithBatchLimit(cfg.BatchLimit),
	)

	log.Info("starting server",
		slog.String("addr", cfg.HTTP.Addr),
		slog.String("default_language", tr.DefaultLanguage()),
		slog.Any("languages", tr.SupportedLanguages()),
	)
	return httpserver.New(cfg.HTTP, log).Run(ctx, h.Routes())
}
