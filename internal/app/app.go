// Package app wires the pipeline: download the journal from OneDrive, scan
// its block structure, extract the trailing seven-day window, render it to
// markdown, and hand the rendered activities to the summarizer.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/hyperifyio/leftoffsum/internal/cache"
	"github.com/hyperifyio/leftoffsum/internal/document"
	"github.com/hyperifyio/leftoffsum/internal/llm"
	"github.com/hyperifyio/leftoffsum/internal/markdown"
	"github.com/hyperifyio/leftoffsum/internal/onedrive"
	"github.com/hyperifyio/leftoffsum/internal/summarize"
	"github.com/hyperifyio/leftoffsum/internal/window"
)

// documentSource abstracts the OneDrive download for tests.
type documentSource interface {
	Download(ctx context.Context, fileID string) ([]byte, error)
}

type App struct {
	cfg Config
	ai  llm.Client
	src documentSource
	// load parses the downloaded file into blocks; tests substitute it to
	// avoid fabricating docx archives.
	load func(path string) ([]document.Block, error)
}

func New(ctx context.Context, cfg Config) (*App, error) {
	transportCfg := openai.DefaultConfig(cfg.LLMAPIKey)
	if cfg.LLMBaseURL != "" {
		transportCfg.BaseURL = cfg.LLMBaseURL
	}
	provider := &llm.OpenAIProvider{Inner: openai.NewClientWithConfig(transportCfg)}

	// Connectivity preflight is best-effort: warn and continue, the
	// summarize step surfaces real failures.
	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if models, err := provider.ListModels(pctx); err != nil {
		log.Warn().Err(err).Msg("LLM model list failed; continuing")
	} else {
		log.Debug().Int("count", len(models.Models)).Msg("LLM models available")
	}

	src, err := onedrive.New(ctx, onedrive.Credentials{
		ApplicationID: cfg.ApplicationID,
		ClientSecret:  cfg.ClientSecret,
		RefreshToken:  cfg.RefreshToken,
	})
	if err != nil {
		return nil, fmt.Errorf("onedrive auth: %w", err)
	}

	return &App{cfg: cfg, ai: provider, src: src, load: document.Load}, nil
}

func (a *App) Close() {
	// nothing yet
}

// Run executes one full pipeline pass.
func (a *App) Run(ctx context.Context) error {
	ref := a.cfg.referenceDate()

	// 1) Download the journal
	data, err := a.src.Download(ctx, a.cfg.TargetFileID)
	if err != nil {
		return fmt.Errorf("download journal: %w", err)
	}
	docxPath := a.cfg.docxPath()
	if err := os.WriteFile(docxPath, data, 0o644); err != nil {
		return fmt.Errorf("write journal copy: %w", err)
	}
	log.Info().Str("path", docxPath).Int("bytes", len(data)).Msg("journal downloaded")

	// 2) Scan and extract the trailing window
	blocks, err := a.load(docxPath)
	if err != nil {
		return fmt.Errorf("scan journal: %w", err)
	}
	ex := &window.Extractor{Diag: zerologSink{}}
	kept := ex.Extract(blocks, ref)
	log.Info().Int("blocks", len(blocks)).Int("kept", len(kept)).Str("cutoff", window.Cutoff(ref).Format("2006-01-02")).Msg("window extracted")

	// 3) Render and write the activities artifact
	activities := markdown.Render(kept)
	activitiesPath := a.cfg.activitiesPath()
	if err := os.WriteFile(activitiesPath, []byte(activities), 0o644); err != nil {
		return fmt.Errorf("write activities: %w", err)
	}
	log.Info().Str("path", activitiesPath).Msg("activities written")

	// 4) Summarize and write the summary artifact
	s := &summarize.Summarizer{
		Client: a.ai,
		Model:  a.cfg.LLMModel,
		Cache:  &cache.SummaryCache{Dir: a.cfg.CacheDir},
	}
	summary, err := s.Summarize(ctx, a.cfg.promptPath(), activities, ref)
	if err != nil {
		return fmt.Errorf("summarize: %w", err)
	}
	summaryPath := a.cfg.summaryPath()
	if err := os.WriteFile(summaryPath, []byte(summary), 0o644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	log.Info().Str("path", summaryPath).Int("chars", len(summary)).Msg("summary written")

	// 5) Optional PDF copy of the summary
	if a.cfg.OutputPDFPath != "" {
		if err := writeSummaryPDF(summary, a.cfg.OutputPDFPath); err != nil {
			log.Warn().Err(err).Str("path", a.cfg.OutputPDFPath).Msg("summary PDF failed; markdown artifacts are complete")
		} else {
			log.Info().Str("path", a.cfg.OutputPDFPath).Msg("summary PDF written")
		}
	}

	return nil
}

// zerologSink routes extractor diagnostics to the process logger.
type zerologSink struct{}

func (zerologSink) Record(level, message string) {
	switch level {
	case "warn":
		log.Warn().Msg(message)
	case "error":
		log.Error().Msg(message)
	default:
		log.Info().Msg(message)
	}
}
