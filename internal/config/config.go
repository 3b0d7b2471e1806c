package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"snakeevo/internal/env"
	"snakeevo/internal/ga"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid config")

// OutputSize is the number of network outputs: turn left, straight, turn right
const OutputSize = 3

// Config is the root configuration structure
type Config struct {
	Seed    int64        `yaml:"seed"`
	Env     EnvConfig    `yaml:"env"`
	Reward  RewardConfig `yaml:"reward"`
	NN      NNConfig     `yaml:"nn"`
	GA      GAConfig     `yaml:"ga"`
	Logging LogConfig    `yaml:"logging"`
}

// EnvConfig defines the arena
type EnvConfig struct {
	Columns     int `yaml:"columns"`
	Rows        int `yaml:"rows"`
	CellSize    int `yaml:"cell_size"`
	StartLength int `yaml:"start_length"`
	TickCap     int `yaml:"tick_cap"` // 0 disables
}

// RewardConfig defines the score rules
type RewardConfig struct {
	Food           float64 `yaml:"food"`
	FoodGrowth     int     `yaml:"food_growth"`
	Closer         float64 `yaml:"closer"`
	FartherPenalty float64 `yaml:"farther_penalty"`
	MinScore       float64 `yaml:"min_score"`
}

// NNConfig defines the network architecture
type NNConfig struct {
	Layers []int `yaml:"layers"` // first must be env.FeatureSize, last OutputSize
}

// GAConfig defines genetic algorithm parameters
type GAConfig struct {
	Population      int     `yaml:"population"`
	MutateProb      float64 `yaml:"mutate_prob"`
	RetainUnfitProb float64 `yaml:"retain_unfit_prob"`
	SelectFraction  float64 `yaml:"select_fraction"`
	Generations     int     `yaml:"generations"`
}

// LogConfig defines logging parameters
type LogConfig struct {
	Every             int    `yaml:"every"`
	CSVPath           string `yaml:"csv_path"`
	JSONPath          string `yaml:"json_path"`
	PlotPath          string `yaml:"plot_path"`
	ChampionPath      string `yaml:"champion_path"`
	SaveChampionEvery int    `yaml:"save_champion_every"`
	ReplayEvery       int    `yaml:"replay_every"`
	ArtifactsDir      string `yaml:"artifacts_dir"`
}

// Load reads a YAML config file and returns a validated Config
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML over the built-in defaults and validates. Keys absent
// from data keep their default; explicit zeros are kept and validated.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the built-in configuration
func Default() *Config {
	cfg := &Config{
		Seed: 1337,
		Env: EnvConfig{
			Columns:     64,
			Rows:        48,
			CellSize:    10,
			StartLength: 5,
		},
		Reward: RewardConfig{
			Food:           10,
			FoodGrowth:     2,
			Closer:         1,
			FartherPenalty: 1.5,
			MinScore:       -1000,
		},
		NN: NNConfig{
			Layers: []int{env.FeatureSize, 18, 18, OutputSize},
		},
		GA: GAConfig{
			Population:      20,
			MutateProb:      0.03,
			RetainUnfitProb: 0.01,
			SelectFraction:  0.25,
			Generations:     100,
		},
	}
	applyDefaults(cfg)
	return cfg
}

// applyDefaults fills logging fields where the zero value means unset
func applyDefaults(cfg *Config) {
	if cfg.Logging.Every <= 0 {
		cfg.Logging.Every = 1
	}
	if cfg.Logging.ArtifactsDir == "" {
		cfg.Logging.ArtifactsDir = "artifacts"
	}
	if cfg.Logging.CSVPath == "" {
		cfg.Logging.CSVPath = "runs/run.csv"
	}
	if cfg.Logging.JSONPath == "" {
		cfg.Logging.JSONPath = "runs/run.jsonl"
	}
	if cfg.Logging.PlotPath == "" {
		cfg.Logging.PlotPath = "runs/fitness.png"
	}
	if cfg.Logging.ChampionPath == "" {
		cfg.Logging.ChampionPath = "artifacts/champion_final.json"
	}
}

// Validate reports configuration contract violations
func (c *Config) Validate() error {
	if c.Env.Columns <= 0 || c.Env.Rows <= 0 {
		return fmt.Errorf("%w: grid %dx%d", ErrInvalid, c.Env.Columns, c.Env.Rows)
	}
	if c.Env.StartLength <= 0 || c.Env.StartLength > c.Env.Rows/2+1 {
		return fmt.Errorf("%w: start length %d does not fit %d rows", ErrInvalid, c.Env.StartLength, c.Env.Rows)
	}
	if c.Env.CellSize <= 0 {
		return fmt.Errorf("%w: cell size %d", ErrInvalid, c.Env.CellSize)
	}
	if c.Env.TickCap < 0 {
		return fmt.Errorf("%w: tick cap %d", ErrInvalid, c.Env.TickCap)
	}
	if c.Reward.FoodGrowth < 0 {
		return fmt.Errorf("%w: food growth %d", ErrInvalid, c.Reward.FoodGrowth)
	}
	layers := c.NN.Layers
	if len(layers) < 2 || layers[0] != env.FeatureSize || layers[len(layers)-1] != OutputSize {
		return fmt.Errorf("%w: layers %v must start at %d features and end at %d outputs",
			ErrInvalid, layers, env.FeatureSize, OutputSize)
	}
	if c.GA.Generations < 0 {
		return fmt.Errorf("%w: generations %d", ErrInvalid, c.GA.Generations)
	}
	if err := c.Population().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Params returns the episode rules
func (c *Config) Params() env.Params {
	return env.Params{
		Columns:        c.Env.Columns,
		Rows:           c.Env.Rows,
		StartLength:    c.Env.StartLength,
		FoodValue:      c.Reward.Food,
		FoodGrowth:     c.Reward.FoodGrowth,
		CloserReward:   c.Reward.Closer,
		FartherPenalty: c.Reward.FartherPenalty,
		MinScore:       c.Reward.MinScore,
		TickCap:        c.Env.TickCap,
	}
}

// Population returns the GA hyperparameters
func (c *Config) Population() ga.Config {
	return ga.Config{
		Size:            c.GA.Population,
		MutateProb:      c.GA.MutateProb,
		RetainUnfitProb: c.GA.RetainUnfitProb,
		SelectFraction:  c.GA.SelectFraction,
		Layers:          c.NN.Layers,
	}
}
