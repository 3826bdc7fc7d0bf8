package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/leftoffsum/internal/app"
	"github.com/hyperifyio/leftoffsum/internal/guard"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// .env is optional; the cron deployment ships one next to the binary.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("dotenv load failed; continuing with process environment")
	}

	var (
		basePath       string
		targetFile     string
		targetFileID   string
		applicationID  string
		clientSecret   string
		refreshToken   string
		llmBaseURL     string
		llmModel       string
		llmKey         string
		promptPath     string
		outputPDF      string
		cacheDir       string
		refDate        string
		guardStart     int
		guardEnd       int
		configPath     string
		verbose        bool
	)

	flag.StringVar(&basePath, "base", os.Getenv("PATH_LEFT_OFF_SUMMARIZER"), "Working directory for the journal copy, prompt template, and artifacts")
	flag.StringVar(&targetFile, "file", os.Getenv("NAME_TARGET_FILE"), "Local name for the downloaded journal (default LEFT-OFF.docx)")
	flag.StringVar(&targetFileID, "file.id", os.Getenv("TARGET_FILE_ID"), "OneDrive drive-item id of the journal")
	flag.StringVar(&applicationID, "msal.app", os.Getenv("APPLICATION_ID"), "Microsoft application (client) id")
	flag.StringVar(&clientSecret, "msal.secret", os.Getenv("CLIENT_SECRET"), "Microsoft client secret")
	flag.StringVar(&refreshToken, "msal.refresh", os.Getenv("REFRESH_TOKEN"), "Stored OAuth refresh token")
	flag.StringVar(&llmBaseURL, "llm.base", os.Getenv("URL_BASE_OPENAI"), "OpenAI-compatible base URL")
	flag.StringVar(&llmModel, "llm.model", os.Getenv("LLM_MODEL"), "Model name (default gpt-4o-mini)")
	flag.StringVar(&llmKey, "llm.key", os.Getenv("KEY_OPENAI"), "API key for the OpenAI-compatible server")
	flag.StringVar(&promptPath, "prompt", os.Getenv("PROMPT_PATH"), "Path to the prompt template (default <base>/prompt.md)")
	flag.StringVar(&outputPDF, "output.pdf", "", "Optional path for a PDF copy of the summary")
	flag.StringVar(&cacheDir, "cache.dir", os.Getenv("CACHE_DIR"), "Optional summary cache directory")
	flag.StringVar(&refDate, "date", "", "Reference date YYYY-MM-DD (default today); fixes the window cutoff for reproducible runs")
	flag.IntVar(&guardStart, "guard.start", envInt("GUARD_START_HOUR"), "Execution window start hour, local time")
	flag.IntVar(&guardEnd, "guard.end", envInt("GUARD_END_HOUR"), "Execution window end hour (exclusive), local time")
	flag.StringVar(&configPath, "config", os.Getenv("LEFTOFFSUM_CONFIG"), "Optional YAML/JSON config file")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	cfg := app.Config{
		BasePath:       basePath,
		TargetFileName: targetFile,
		TargetFileID:   targetFileID,
		ApplicationID:  applicationID,
		ClientSecret:   clientSecret,
		RefreshToken:   refreshToken,
		LLMBaseURL:     llmBaseURL,
		LLMModel:       llmModel,
		LLMAPIKey:      llmKey,
		PromptPath:     promptPath,
		OutputPDFPath:  outputPDF,
		CacheDir:       cacheDir,
		GuardStartHour: guardStart,
		GuardEndHour:   guardEnd,
		Verbose:        verbose,
	}

	if strings.TrimSpace(configPath) != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Error().Err(err).Str("path", configPath).Msg("config file unreadable")
			os.Exit(1)
		}
		app.ApplyFileConfig(&cfg, fc)
	}

	if strings.TrimSpace(refDate) != "" {
		d, err := time.ParseInLocation("2006-01-02", refDate, time.Local)
		if err != nil {
			log.Error().Err(err).Str("date", refDate).Msg("invalid -date")
			os.Exit(1)
		}
		cfg.ReferenceDate = d
	}

	if err := app.ValidateConfig(cfg); err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("run failed")
		// Exit code policy: 2 when the execution-window guard rejects the
		// run, 1 for any operational failure.
		if errors.Is(err, guard.ErrOutsideWindow) {
			os.Exit(2)
		}
		os.Exit(1)
	}
	log.Info().Msg("run complete")
}

func run(cfg app.Config) error {
	ctx := context.Background()

	// Guard first: a rejected run must not touch the network.
	g := guard.Guard{StartHour: cfg.GuardStartHour, EndHour: cfg.GuardEndHour}
	if err := g.Check(time.Now()); err != nil {
		return err
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	defer a.Close()

	return a.Run(ctx)
}

func envInt(key string) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
