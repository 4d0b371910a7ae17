package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Sampling holds the generation parameters for one pipeline task.
type Sampling struct {
	Temperature float32
	TopP        float32
	MaxTokens   int32
}

type PipelineConfig struct {
	Provider   string // "gemini" or "openrouter"
	Workers    int
	RatePerSec float64
	Burst      int
	DumpPath   string

	Roles    Sampling
	Validate Sampling
	Score    Sampling
	Bio      Sampling
	Email    Sampling
}

type rawSampling struct {
	Temperature *float32 `yaml:"temperature"`
	TopP        *float32 `yaml:"top_p"`
	MaxTokens   *int32   `yaml:"max_tokens"`
}

type rawPipelineConfig struct {
	Provider string `yaml:"provider"`
	Workers  int    `yaml:"workers"`
	Rate     struct {
		PerSecond float64 `yaml:"per_second"`
		Burst     int     `yaml:"burst"`
	} `yaml:"rate_limit"`
	DumpPath string `yaml:"dump_path"`
	Tasks    struct {
		Roles    rawSampling `yaml:"roles"`
		Validate rawSampling `yaml:"validate"`
		Score    rawSampling `yaml:"score"`
		Bio      rawSampling `yaml:"bio"`
		Email    rawSampling `yaml:"email"`
	} `yaml:"tasks"`
}

var (
	pipelineConfig *PipelineConfig
	pipelineOnce   sync.Once
)

// DefaultPipelineConfig mirrors the sampling the prompts were tuned with.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Provider:   "openrouter",
		Workers:    4,
		RatePerSec: 2,
		Burst:      4,
		Roles:      Sampling{Temperature: 0.3, MaxTokens: 600},
		Validate:   Sampling{Temperature: 0.6, MaxTokens: 400},
		Score:      Sampling{Temperature: 0, MaxTokens: 8},
		Bio:        Sampling{Temperature: 0.35, TopP: 0.95, MaxTokens: 800},
		Email:      Sampling{Temperature: 0.7, MaxTokens: 800},
	}
}

// LoadPipelineConfig reads PIPELINE_CONFIG_PATH when set and applies
// environment overrides on top. A broken file is logged and ignored.
func LoadPipelineConfig() *PipelineConfig {
	pipelineOnce.Do(func() {
		cfg := DefaultPipelineConfig()
		if path := os.Getenv("PIPELINE_CONFIG_PATH"); path != "" {
			data, err := os.ReadFile(path)
			if err != nil {
				log.Printf("Warning: read pipeline config %s: %v", path, err)
			} else if parsed, err := ParsePipelineConfig(data); err != nil {
				log.Printf("Warning: %v", err)
			} else {
				cfg = parsed
			}
		}
		cfg.Provider = strings.ToLower(envString("LLM_PROVIDER", cfg.Provider))
		cfg.Workers = envInt("PIPELINE_WORKERS", cfg.Workers)
		cfg.RatePerSec = envFloat("LLM_RATE_PER_SEC", cfg.RatePerSec)
		cfg.Burst = envInt("LLM_BURST", cfg.Burst)
		cfg.DumpPath = envString("DUMP_PATH", cfg.DumpPath)
		pipelineConfig = &cfg
	})
	return pipelineConfig
}

// ParsePipelineConfig overlays a YAML document on the defaults.
// ${VAR} references are expanded before parsing.
func ParsePipelineConfig(data []byte) (PipelineConfig, error) {
	cfg := DefaultPipelineConfig()

	var raw rawPipelineConfig
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &raw); err != nil {
		return cfg, fmt.Errorf("parse pipeline config YAML: %w", err)
	}

	if p := strings.TrimSpace(raw.Provider); p != "" {
		cfg.Provider = strings.ToLower(p)
	}
	if raw.Workers > 0 {
		cfg.Workers = raw.Workers
	}
	if raw.Rate.PerSecond > 0 {
		cfg.RatePerSec = raw.Rate.PerSecond
	}
	if raw.Rate.Burst > 0 {
		cfg.Burst = raw.Rate.Burst
	}
	cfg.DumpPath = raw.DumpPath

	cfg.Roles = raw.Tasks.Roles.overlay(cfg.Roles)
	cfg.Validate = raw.Tasks.Validate.overlay(cfg.Validate)
	cfg.Score = raw.Tasks.Score.overlay(cfg.Score)
	cfg.Bio = raw.Tasks.Bio.overlay(cfg.Bio)
	cfg.Email = raw.Tasks.Email.overlay(cfg.Email)

	switch cfg.Provider {
	case "gemini", "openrouter":
	default:
		return cfg, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
	return cfg, nil
}

func (r rawSampling) overlay(base Sampling) Sampling {
	if r.Temperature != nil {
		base.Temperature = *r.Temperature
	}
	if r.TopP != nil {
		base.TopP = *r.TopP
	}
	if r.MaxTokens != nil {
		base.MaxTokens = *r.MaxTokens
	}
	return base
}
