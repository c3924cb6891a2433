// pitchside turns Premier League drama into short-form video scripts.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/banterworks/pitchside/internal/config"
	"github.com/banterworks/pitchside/internal/llm"
	"github.com/banterworks/pitchside/internal/news"
	"github.com/banterworks/pitchside/internal/notify"
	"github.com/banterworks/pitchside/internal/runner"
	"github.com/banterworks/pitchside/internal/sched"
	"github.com/banterworks/pitchside/internal/sheets"
	"github.com/banterworks/pitchside/internal/trends"
	"github.com/banterworks/pitchside/internal/writer"
	"github.com/banterworks/pitchside/pkg/utils"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config and logger
var (
	cfg *config.Config
	log zerolog.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pitchside",
	Short: "Premier League drama to short-form video scripts",
	Long: `pitchside collects trending Premier League posts and news, scores
the day's drama, picks the single juiciest topic, and turns it into
three short-form video scripts delivered to a Google Sheet, with
progress updates over Telegram.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; real deployments use the environment directly.
		_ = godotenv.Load()

		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if override, _ := cmd.Flags().GetString("log-level"); override != "" {
			cfg.Logging.Level = override
		}
		log = newLogger(cfg.Logging)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(botCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(statusCmd)
}

// newLogger builds the process logger from config.
func newLogger(lc config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(lc.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	var out = os.Stderr
	if lc.Format == "json" {
		return zerolog.New(out).Level(level).With().Timestamp().Logger()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: out}).Level(level).With().Timestamp().Logger()
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pitchside %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Run Command ---

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the content pipeline once",
	Long:  "Collect trends and news, pick the day's topic, generate scripts, and archive them.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		app, err := buildApp(ctx)
		if err != nil {
			return err
		}

		result, err := app.runner.Run(ctx)
		if err != nil {
			return err
		}
		if result.NoTopics {
			fmt.Println("😴 Nothing dramatic enough today.")
			return nil
		}

		fmt.Printf("📌 Topic:  %s\n", result.Topic)
		fmt.Printf("🔥 Score:  %d/10 (%s)\n", result.Score, result.Reasoning)
		for i, s := range result.Scripts {
			fmt.Printf("\n🎬 Script %d\n   Hook:      %s\n   Premise:   %s\n   Punchline: %s\n",
				i+1, s.Hook, s.Premise, s.Punchline)
		}
		fmt.Printf("\n✅ Done in %s (%d posts, %d articles considered)\n",
			utils.FormatDuration(result.Duration), result.TrendCount, result.NewsCount)
		return nil
	},
}

// --- Bot Command ---

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the Telegram bot (manual triggers, no schedule)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		app, err := buildApp(ctx)
		if err != nil {
			return err
		}
		if app.bot == nil {
			return fmt.Errorf("telegram.bot_token is not configured")
		}

		fmt.Println("🤖 Bot is running. Press Ctrl+C to stop.")
		if err := app.bot.Run(ctx); err != nil && ctx.Err() == nil {
			return err
		}
		return nil
	},
}

// --- Schedule Command ---

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run on the daily schedule, with the bot if configured",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		app, err := buildApp(ctx)
		if err != nil {
			return err
		}

		scheduler, err := sched.New(cfg.Schedule.Cron, cfg.Schedule.Timezone, func(jobCtx context.Context) {
			if _, err := app.runner.Run(jobCtx); err != nil {
				log.Error().Err(err).Msg("scheduled run failed")
			}
		}, log)
		if err != nil {
			return err
		}
		scheduler.Start()
		defer scheduler.Stop()
		fmt.Printf("⏰ Scheduled runs: %s (%s). Press Ctrl+C to stop.\n", cfg.Schedule.Cron, cfg.Schedule.Timezone)

		if app.bot != nil {
			app.bot.SetPauser(scheduler)
			if err := app.bot.Run(ctx); err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		}

		<-ctx.Done()
		return nil
	},
}

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show system status and configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("═══════════════════════════════════════")
		fmt.Println("  pitchside - System Status")
		fmt.Println("═══════════════════════════════════════")
		fmt.Printf("  Version:    %s (%s)\n", version, commit)
		fmt.Printf("  Time (UK):  %s\n", utils.NowUK().Format("Mon 02 Jan 2006 15:04"))
		fmt.Printf("  Next run:   %s\n", utils.NextMorningSlot(utils.NowUK()).Format("Mon 02 Jan 2006 15:04"))
		fmt.Println()

		fmt.Println("  Configuration:")
		fmt.Printf("    LLM Provider:  %s (model: %s)\n", cfg.LLM.Primary, cfg.LLM.Model)
		fmt.Printf("    Schedule:      %s (%s)\n", cfg.Schedule.Cron, cfg.Schedule.Timezone)
		fmt.Printf("    Sheet:         %s\n", orUnset(cfg.Sheets.SpreadsheetID))
		fmt.Println()

		fmt.Println("  API Keys:")
		keys := config.CheckAPIKeys(cfg)
		for _, k := range keys {
			status := "❌ not set"
			if k.IsSet {
				status = fmt.Sprintf("✅ set (%s: %s)", k.Source, k.Masked)
			}
			fmt.Printf("    %-25s %s\n", k.Name+":", status)
		}

		if missing := cfg.Validate(); len(missing) > 0 {
			fmt.Println()
			fmt.Printf("  ⚠️  Missing required settings: %s\n", strings.Join(missing, ", "))
		}
		fmt.Println("═══════════════════════════════════════")
		return nil
	},
}

func orUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

// --- Wiring ---

// app holds the wired collaborators of a process.
type app struct {
	runner *runner.Runner
	bot    *notify.Bot
}

// buildApp wires the pipeline from configuration. Optional pieces
// (sheet, Telegram) degrade to nil rather than failing the build; the
// hard requirements are the trend source and at least one LLM key.
func buildApp(ctx context.Context) (*app, error) {
	if missing := cfg.Validate(); len(missing) > 0 {
		log.Warn().Strs("missing", missing).Msg("running with incomplete configuration")
	}

	provider, err := buildProvider()
	if err != nil {
		return nil, err
	}
	scriptWriter := writer.New(provider, log)

	trendClient, err := trends.NewClient(cfg.Trends.APIKey, log,
		trends.WithQueries(cfg.Trends.Queries),
		trends.WithMaxResults(cfg.Trends.MaxResults))
	if err != nil {
		return nil, err
	}
	newsClient := news.NewClient(cfg.News.RapidAPIKey, log,
		news.WithFeeds(cfg.News.Feeds),
		news.WithMaxResults(cfg.News.MaxResults))

	opts := []runner.Option{}

	var archive *sheets.Client
	if cfg.Sheets.SpreadsheetID != "" {
		archive, err = sheets.NewClient(ctx, cfg.Sheets.CredentialsFile,
			cfg.Sheets.SpreadsheetID, cfg.Sheets.SheetName, log)
		if err != nil {
			return nil, err
		}
		opts = append(opts, runner.WithSink(archive))
	} else {
		log.Warn().Msg("no spreadsheet configured, results will not be archived")
	}

	var bot *notify.Bot
	if cfg.Telegram.BotToken != "" {
		api, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
		if err != nil {
			return nil, fmt.Errorf("telegram: %w", err)
		}
		store, err := notify.NewChatStore(cfg.Telegram.ChatsFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, runner.WithNotifier(
			notify.NewNotifier(api, store, cfg.Telegram.ChatIDs, log)))

		r := runner.New(trendClient, newsClient, scriptWriter, log, opts...)
		var botArchive notify.Archive
		if archive != nil {
			botArchive = archive
		}
		bot = notify.NewBot(api, store, r, botArchive, nil, log)
		return &app{runner: r, bot: bot}, nil
	}

	return &app{runner: runner.New(trendClient, newsClient, scriptWriter, log, opts...)}, nil
}

// buildProvider assembles the LLM router from the configured keys.
func buildProvider() (llm.Provider, error) {
	var fallbacks []string
	if cfg.LLM.GeminiKey != "" && cfg.LLM.OpenAIKey != "" {
		switch cfg.LLM.Primary {
		case llm.ProviderOpenAI:
			fallbacks = []string{llm.ProviderGemini}
		default:
			fallbacks = []string{llm.ProviderOpenAI}
		}
	}
	router := llm.NewRouter(cfg.LLM.Primary, log, fallbacks...)

	registered := 0
	if cfg.LLM.GeminiKey != "" {
		var gopts []llm.GeminiOption
		if cfg.LLM.Primary == llm.ProviderGemini && cfg.LLM.Model != "" {
			gopts = append(gopts, llm.WithGeminiModel(cfg.LLM.Model))
		}
		gemini, err := llm.NewGeminiProvider(cfg.LLM.GeminiKey, gopts...)
		if err != nil {
			return nil, err
		}
		router.Register(gemini)
		registered++
	}
	if cfg.LLM.OpenAIKey != "" {
		var oopts []llm.OpenAIOption
		if cfg.LLM.Primary == llm.ProviderOpenAI && cfg.LLM.Model != "" {
			oopts = append(oopts, llm.WithOpenAIModel(cfg.LLM.Model))
		}
		openai, err := llm.NewOpenAIProvider(cfg.LLM.OpenAIKey, oopts...)
		if err != nil {
			return nil, err
		}
		router.Register(openai)
		registered++
	}
	if registered == 0 {
		return nil, llm.ErrNoProviders
	}
	return router, nil
}
