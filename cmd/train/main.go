package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"snakeevo/internal/config"
	"snakeevo/internal/eval"
	"snakeevo/internal/ga"
	"snakeevo/internal/logging"
)

func main() {
	configPath := flag.String("config", "", "path to config file (built-in defaults if empty)")
	generations := flag.Int("generations", 0, "number of generations to run (overrides config)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	if *generations > 0 {
		cfg.GA.Generations = *generations
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	fmt.Printf("Snake GA Trainer - grid %dx%d, layers %v\n", cfg.Env.Columns, cfg.Env.Rows, cfg.NN.Layers)
	fmt.Printf("Population: %d, Select: %.2f, Mutate: %.3f, Retain unfit: %.3f\n",
		cfg.GA.Population, cfg.GA.SelectFraction, cfg.GA.MutateProb, cfg.GA.RetainUnfitProb)
	fmt.Println("---")

	rng := rand.New(rand.NewSource(cfg.Seed))
	params := cfg.Params()

	pop, err := ga.NewPopulation(cfg.Population(), params, rng)
	if err != nil {
		return err
	}

	evaluator := eval.NewEvaluator(nil)

	logger, err := logging.NewLogger(cfg.Logging.CSVPath, cfg.Logging.JSONPath, os.Stdout, cfg.Logging.Every)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	if err := logger.Init(); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	startTime := time.Now()
	completed := 0

	for completed < cfg.GA.Generations {
		gen := pop.Generation

		// 1. Evaluate every individual sequentially
		if err := evaluator.EvaluatePopulation(ctx, pop); err != nil {
			if errors.Is(err, context.Canceled) {
				fmt.Printf("Stop requested, discarding generation %d\n", gen)
				break
			}
			return err
		}

		// 2. Grade and log
		pop.Grade()
		if err := logger.LogGeneration(pop); err != nil {
			return fmt.Errorf("log generation %d: %w", gen, err)
		}
		if cfg.Logging.Every > 0 && gen%(cfg.Logging.Every*10) == 0 {
			ga.SortByFitness(pop.Individuals)
			logger.LogTopK(pop.Individuals, 5)
		}

		// 3. Artifacts
		if cfg.Logging.SaveChampionEvery > 0 && gen%cfg.Logging.SaveChampionEvery == 0 {
			path := filepath.Join(cfg.Logging.ArtifactsDir, fmt.Sprintf("champion_gen%d.json", gen))
			if err := logging.SaveChampion(path, logger.RunID, pop.Champion, params, pop.BestEver, gen); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to save champion: %v\n", err)
			}
		}
		if cfg.Logging.ReplayEvery > 0 && gen%cfg.Logging.ReplayEvery == 0 {
			replay, _, err := evaluator.EvaluateWithReplay(pop.Champion, params, cfg.Seed+int64(gen))
			if err == nil {
				path := filepath.Join(cfg.Logging.ArtifactsDir, fmt.Sprintf("replay_gen%d.json", gen))
				err = replay.Save(path)
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to save replay: %v\n", err)
			}
		}

		completed++

		// 4. Selection and breeding
		if err := pop.Reproduce(); err != nil {
			return err
		}
	}

	fmt.Println("---")
	fmt.Printf("Training finished: %d generations in %v\n", completed, time.Since(startTime))
	if pop.Champion == nil {
		return nil
	}
	fmt.Printf("Best ever fitness: %.1f\n", pop.BestEver)

	if err := logging.SaveChampion(cfg.Logging.ChampionPath, logger.RunID, pop.Champion, params, pop.BestEver, completed); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to save final champion: %v\n", err)
	}
	title := fmt.Sprintf("run %s", logger.RunID)
	if err := logging.PlotHistory(pop.History, pop.Mean, title, cfg.Logging.PlotPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to plot history: %v\n", err)
	}
	return nil
}
