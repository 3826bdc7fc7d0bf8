package app

import (
	"path/filepath"
	"time"
)

// Artifact names under the base path, fixed by the deployment's cron and
// downstream consumers.
const (
	defaultTargetFile = "LEFT-OFF.docx"
	activitiesName    = "last-7-days-activities.md"
	summaryName       = "last-7-days-activities-summary.md"
	promptName        = "prompt.md"
)

// Config holds runtime configuration for one pipeline run.
type Config struct {
	// BasePath is the working directory holding the downloaded document,
	// the prompt template, and both output artifacts.
	BasePath string
	// TargetFileName is the local name for the downloaded journal.
	TargetFileName string
	// TargetFileID is the OneDrive drive-item id of the journal.
	TargetFileID string

	// Microsoft identity
	ApplicationID string
	ClientSecret  string
	RefreshToken  string

	// LLM
	LLMBaseURL string
	LLMModel   string
	LLMAPIKey  string

	// PromptPath overrides the default prompt template location.
	PromptPath string
	// OutputPDFPath, when set, additionally renders the summary as PDF.
	OutputPDFPath string
	// CacheDir, when set, enables the on-disk summary cache.
	CacheDir string

	// ReferenceDate fixes "today" for the window cutoff and the summary
	// date prefix. Zero means the wall clock at run start.
	ReferenceDate time.Time

	// Execution window in local hours; both zero disables the guard.
	GuardStartHour int
	GuardEndHour   int

	Verbose bool
}

func (c Config) docxPath() string {
	name := c.TargetFileName
	if name == "" {
		name = defaultTargetFile
	}
	return filepath.Join(c.BasePath, name)
}

func (c Config) activitiesPath() string {
	return filepath.Join(c.BasePath, activitiesName)
}

func (c Config) summaryPath() string {
	return filepath.Join(c.BasePath, summaryName)
}

func (c Config) promptPath() string {
	if c.PromptPath != "" {
		return c.PromptPath
	}
	return filepath.Join(c.BasePath, promptName)
}

func (c Config) referenceDate() time.Time {
	if c.ReferenceDate.IsZero() {
		return time.Now()
	}
	return c.ReferenceDate
}
