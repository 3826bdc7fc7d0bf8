package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig is the single-file configuration schema. Nested sections map
// naturally to flags and environment variables. Secrets normally come from
// the environment; file values fill whatever is still unset.
type FileConfig struct {
	BasePath   string `yaml:"basePath" json:"basePath"`
	TargetFile string `yaml:"targetFile" json:"targetFile"`

	OneDrive struct {
		FileID        string `yaml:"fileID" json:"fileID"`
		ApplicationID string `yaml:"applicationID" json:"applicationID"`
		ClientSecret  string `yaml:"clientSecret" json:"clientSecret"`
		RefreshToken  string `yaml:"refreshToken" json:"refreshToken"`
	} `yaml:"onedrive" json:"onedrive"`

	LLM struct {
		BaseURL string `yaml:"base" json:"base"`
		Model   string `yaml:"model" json:"model"`
		APIKey  string `yaml:"key" json:"key"`
	} `yaml:"llm" json:"llm"`

	Prompt    string `yaml:"prompt" json:"prompt"`
	OutputPDF string `yaml:"outputPDF" json:"outputPDF"`
	CacheDir  string `yaml:"cacheDir" json:"cacheDir"`

	Guard struct {
		StartHour int `yaml:"startHour" json:"startHour"`
		EndHour   int `yaml:"endHour" json:"endHour"`
	} `yaml:"guard" json:"guard"`

	Verbose bool `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays FileConfig values into cfg for any fields that
// are still zero. Flags and environment take precedence; the file supplies
// defaults only.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if cfg.BasePath == "" && fc.BasePath != "" {
		cfg.BasePath = fc.BasePath
	}
	if cfg.TargetFileName == "" && fc.TargetFile != "" {
		cfg.TargetFileName = fc.TargetFile
	}
	if cfg.TargetFileID == "" && fc.OneDrive.FileID != "" {
		cfg.TargetFileID = fc.OneDrive.FileID
	}
	if cfg.ApplicationID == "" && fc.OneDrive.ApplicationID != "" {
		cfg.ApplicationID = fc.OneDrive.ApplicationID
	}
	if cfg.ClientSecret == "" && fc.OneDrive.ClientSecret != "" {
		cfg.ClientSecret = fc.OneDrive.ClientSecret
	}
	if cfg.RefreshToken == "" && fc.OneDrive.RefreshToken != "" {
		cfg.RefreshToken = fc.OneDrive.RefreshToken
	}
	if cfg.LLMBaseURL == "" && fc.LLM.BaseURL != "" {
		cfg.LLMBaseURL = fc.LLM.BaseURL
	}
	if cfg.LLMModel == "" && fc.LLM.Model != "" {
		cfg.LLMModel = fc.LLM.Model
	}
	if cfg.LLMAPIKey == "" && fc.LLM.APIKey != "" {
		cfg.LLMAPIKey = fc.LLM.APIKey
	}
	if cfg.PromptPath == "" && fc.Prompt != "" {
		cfg.PromptPath = fc.Prompt
	}
	if cfg.OutputPDFPath == "" && fc.OutputPDF != "" {
		cfg.OutputPDFPath = fc.OutputPDF
	}
	if cfg.CacheDir == "" && fc.CacheDir != "" {
		cfg.CacheDir = fc.CacheDir
	}
	if cfg.GuardStartHour == 0 && fc.Guard.StartHour != 0 {
		cfg.GuardStartHour = fc.Guard.StartHour
	}
	if cfg.GuardEndHour == 0 && fc.Guard.EndHour != 0 {
		cfg.GuardEndHour = fc.Guard.EndHour
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
}

// ValidateConfig checks the settings every run needs before any network
// call is made.
func ValidateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.BasePath) == "" {
		return errors.New("config: base path is required (set PATH_LEFT_OFF_SUMMARIZER)")
	}
	if strings.TrimSpace(cfg.TargetFileID) == "" {
		return errors.New("config: target file id is required (set TARGET_FILE_ID)")
	}
	if strings.TrimSpace(cfg.ApplicationID) == "" {
		return errors.New("config: application id is required (set APPLICATION_ID)")
	}
	if strings.TrimSpace(cfg.ClientSecret) == "" {
		return errors.New("config: client secret is required (set CLIENT_SECRET)")
	}
	if strings.TrimSpace(cfg.RefreshToken) == "" {
		return errors.New("config: refresh token is required (set REFRESH_TOKEN)")
	}
	if strings.TrimSpace(cfg.LLMAPIKey) == "" {
		return errors.New("config: llm api key is required (set KEY_OPENAI)")
	}
	if cfg.GuardStartHour < 0 || cfg.GuardStartHour > 23 || cfg.GuardEndHour < 0 || cfg.GuardEndHour > 23 {
		return errors.New("config: guard hours must be within 0..23")
	}
	return nil
}
