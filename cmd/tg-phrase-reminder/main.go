package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/smith3v/tg-phrase-reminder/pkg/bot/handlers"
	"github.com/smith3v/tg-phrase-reminder/pkg/bot/reminders"
	"github.com/smith3v/tg-phrase-reminder/pkg/config"
	"github.com/smith3v/tg-phrase-reminder/pkg/db"
	"github.com/smith3v/tg-phrase-reminder/pkg/logger"
	"github.com/smith3v/tg-phrase-reminder/pkg/openai"
	"github.com/smith3v/tg-phrase-reminder/pkg/phrases"
	"github.com/smith3v/tg-phrase-reminder/pkg/translate"
	"github.com/smith3v/tg-phrase-reminder/pkg/ui"
	"github.com/smith3v/tg-phrase-reminder/pkg/vocab"
)

func main() {
	configPath := "config.json"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}
	if err := config.LoadConfig(configPath); err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.AppConfig
	if err := logger.Configure(logger.Options{
		Level: cfg.Logging.Level,
		File:  cfg.Logging.File,
	}); err != nil {
		logger.Error("failed to configure logger", "error", err)
	}

	if err := db.InitDB(cfg.Database, cfg.Logging); err != nil {
		logger.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}

	var llm *openai.Client
	if cfg.OpenAI.Enabled() {
		llm = openai.New(cfg.OpenAI.APIKey,
			openai.WithBaseURL(cfg.OpenAI.BaseURL),
			openai.WithModel(cfg.OpenAI.Model),
		)
	}

	var translator translate.Provider = translate.Disabled{}
	if llm != nil {
		cache, err := translate.NewCache(
			translate.NewLLM(llm, cfg.Translation.TargetLanguage, cfg.OpenAI.Timeout()),
			cfg.Translation.CacheSize,
			cfg.Translation.CacheTTL(),
		)
		if err != nil {
			logger.Error("failed to create translation cache", "error", err)
			os.Exit(1)
		}
		defer cache.Close()
		translator = cache
	} else {
		logger.Warn("OpenAI API key is not set, translations are disabled")
	}

	fallback, err := phrases.ParseFallback(cfg.Phrases.Fallback)
	if err != nil {
		logger.Error("invalid phrase fallback", "value", cfg.Phrases.Fallback, "error", err)
		os.Exit(1)
	}
	corpus := phrases.NewCorpus(fallback)
	var generator phrases.Provider
	if cfg.Phrases.Generate && llm != nil {
		generator = phrases.NewGenerator(llm, cfg.OpenAI.Timeout())
	}
	svc := vocab.NewService(phrases.NewProvider(corpus, generator), translator)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	b, err := bot.New(cfg.Telegram.Token, bot.WithDefaultHandler(handlers.DefaultHandler))
	if err != nil {
		logger.Error("failed to create bot", "error", err)
		os.Exit(1)
	}

	scheduler := reminders.New(svc, reminders.TelegramSender{Bot: b}, reminders.Options{
		Location:        cfg.Reminders.Location(),
		CatchUpWindow:   cfg.Reminders.CatchUpWindow(),
		DispatchTimeout: cfg.Reminders.DispatchTimeout(),
		Concurrency:     cfg.Reminders.DispatchConcurrency,
		LogRetention:    cfg.Reminders.LogRetention(),
	})
	handlers.Configure(handlers.Services{Vocab: svc, Reminders: scheduler})

	b.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, handlers.HandleStart)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/menu", bot.MatchTypeExact, handlers.HandleMenu)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/words", bot.MatchTypeExact, handlers.HandleWords)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/delete", bot.MatchTypePrefix, handlers.HandleDelete)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/clear", bot.MatchTypeExact, handlers.HandleClear)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/export", bot.MatchTypeExact, handlers.HandleExport)
	b.RegisterHandler(bot.HandlerTypeCallbackQueryData, ui.CallbackPrefix, bot.MatchTypePrefix, handlers.HandleWizardCallback)

	if err := scheduler.Start(ctx); err != nil {
		logger.Error("failed to start reminder scheduler", "error", err)
		os.Exit(1)
	}
	defer scheduler.Stop()

	logger.Info("Starting bot...")
	b.Start(ctx)
}
