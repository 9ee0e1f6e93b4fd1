package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/wolfca/internal/automaton"
)

const (
	DefaultRule        = "30"
	DefaultStates      = 2
	DefaultNeighbors   = 1
	DefaultWidth       = 201
	DefaultGenerations = 100
	DefaultInitMode    = InitRandom
	DefaultOutput      = "automaton.png"
)

// Initial-generation modes.
const (
	InitRandom  = "random"
	InitSingle  = "single"
	InitPattern = "pattern"
)

type Config struct {
	Rule        string     `yaml:"rule"`
	States      int        `yaml:"states"`
	Neighbors   int        `yaml:"neighbors"`
	Width       int        `yaml:"width"`
	Generations int        `yaml:"generations"`
	Seed        int64      `yaml:"seed"`
	Init        InitConfig `yaml:"init"`
	Palette     []string   `yaml:"palette,omitempty"`
	Output      string     `yaml:"output"`
}

type InitConfig struct {
	Mode    string `yaml:"mode"`
	Pattern string `yaml:"pattern,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Rule:        DefaultRule,
		States:      DefaultStates,
		Neighbors:   DefaultNeighbors,
		Width:       DefaultWidth,
		Generations: DefaultGenerations,
		Init:        InitConfig{Mode: DefaultInitMode},
		Output:      DefaultOutput,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the settings that can be judged without deriving the rule.
func (c *Config) Validate() error {
	if _, err := automaton.ParseRuleID(c.Rule); err != nil {
		return err
	}
	if c.States < 2 || c.States > automaton.MaxStates {
		return fmt.Errorf("states must be in [2, %d], got %d", automaton.MaxStates, c.States)
	}
	if c.Neighbors < 1 {
		return fmt.Errorf("neighbors must be at least 1, got %d", c.Neighbors)
	}
	if c.Width < 2 {
		return fmt.Errorf("width must be at least 2, got %d", c.Width)
	}
	if c.Generations < 1 {
		return fmt.Errorf("generations must be positive, got %d", c.Generations)
	}
	switch c.Init.Mode {
	case InitRandom, InitSingle:
	case InitPattern:
		if c.Init.Pattern == "" {
			return fmt.Errorf("init mode %q requires a pattern", InitPattern)
		}
	default:
		return fmt.Errorf("unknown init mode: %s", c.Init.Mode)
	}
	return nil
}

// Table derives the rule table the configuration names.
func (c *Config) Table() (*automaton.Table, error) {
	id, err := automaton.ParseRuleID(c.Rule)
	if err != nil {
		return nil, err
	}
	return automaton.DeriveRule(id, c.States, c.Neighbors)
}
