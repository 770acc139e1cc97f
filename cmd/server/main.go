package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"gstbill/internal/config"
	noopemail "gstbill/internal/email/noop"
	sesemail "gstbill/internal/email/ses"
	"gstbill/internal/handler"
	"gstbill/internal/parser"
	_ "gstbill/internal/parser/claude"
	_ "gstbill/internal/parser/gemini"
	_ "gstbill/internal/parser/openai"
	"gstbill/internal/port"
	"gstbill/internal/refdata"
	"gstbill/internal/repository/postgres"
	"gstbill/internal/router"
	"gstbill/internal/service"
	localstorage "gstbill/internal/storage/local"
	s3storage "gstbill/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run() error {
	// .env is optional; real deployments set environment variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	setupLogging(&cfg.Log)

	states, err := refdata.LoadStates(cfg.RefData.Dir)
	if err != nil {
		return fmt.Errorf("failed to load state codes: %w", err)
	}
	company, err := refdata.LoadCompany(cfg.RefData.Dir)
	if err != nil {
		return fmt.Errorf("failed to load company profile: %w", err)
	}
	catalog, err := refdata.OpenCatalog(cfg.RefData.Dir)
	if err != nil {
		return fmt.Errorf("failed to open product catalog: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	storage, err := newStorage(&cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	email, err := newEmailSender(&cfg.Email)
	if err != nil {
		return fmt.Errorf("failed to initialize email sender: %w", err)
	}

	docParser, err := newDocumentParser(&cfg.Parser)
	if err != nil {
		return fmt.Errorf("failed to initialize document parser: %w", err)
	}

	// Services
	invoiceRepo := postgres.NewInvoiceRepo(db)
	invoiceSvc := service.NewInvoiceService(company, invoiceRepo, storage, email, cfg.Storage.PresignExpiry)
	extractSvc := service.NewExtractService(docParser, company, states, cfg.Extract.MaxFileSizeMB)

	// Handlers
	healthH := handler.NewHealthHandler(db)
	refdataH := handler.NewRefDataHandler(states, company, catalog)
	extractH := handler.NewExtractHandler(extractSvc)
	invoiceH := handler.NewInvoiceHandler(invoiceSvc)

	r := router.Setup(cfg.CORS.AllowedOrigins, healthH, refdataH, extractH, invoiceH)

	log.Info().
		Str("port", cfg.Server.Port).
		Str("environment", cfg.Server.Environment).
		Str("storage", cfg.Storage.Backend).
		Msg("server starting")
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

func setupLogging(cfg *config.LogConfig) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

func newStorage(cfg *config.StorageConfig) (port.ObjectStorage, error) {
	switch cfg.Backend {
	case "s3":
		return s3storage.NewS3Storage(cfg)
	case "local":
		return localstorage.NewLocalStorage(cfg.LocalDir)
	default:
		return nil, fmt.Errorf("unknown storage backend: %q", cfg.Backend)
	}
}

func newEmailSender(cfg *config.EmailConfig) (port.EmailSender, error) {
	switch cfg.Provider {
	case "ses":
		return sesemail.NewSESSender(cfg.Region, cfg.FromAddress, cfg.FromName)
	case "noop":
		return noopemail.NewNoopSender(), nil
	default:
		return nil, fmt.Errorf("unknown email provider: %q", cfg.Provider)
	}
}

// newDocumentParser builds the provider fallback chain. Providers without an
// API key are skipped; a nil parser is valid and disables extraction.
func newDocumentParser(cfg *config.ParserConfig) (port.DocumentParser, error) {
	var parsers []port.DocumentParser
	var names []string
	for _, pc := range cfg.Providers() {
		if pc.APIKey == "" {
			log.Warn().Str("provider", pc.Provider).Msg("parser provider has no API key, skipping")
			continue
		}
		p, err := parser.NewParser(pc)
		if err != nil {
			return nil, err
		}
		parsers = append(parsers, p)
		names = append(names, pc.Provider)
	}
	if len(parsers) == 0 {
		log.Warn().Msg("no parser providers configured, document extraction disabled")
		return nil, nil
	}
	return parser.NewFallbackParser(parsers, names), nil
}
