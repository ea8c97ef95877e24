package main

import (
	"flag"
	"log"

	"github.com/tmyeomans/RS2.1/internal/config"
	"github.com/tmyeomans/RS2.1/internal/database"
	"github.com/tmyeomans/RS2.1/internal/models"
	"github.com/tmyeomans/RS2.1/internal/pipeline"
)

func main() {
	kind := flag.String("run", "", "pipeline to run: lines, pads or matrix")
	seed := flag.Int64("seed", 0, "random seed (0 uses the clock)")
	root := flag.String("root", "", "override the data root folder")
	flag.Parse()

	if *kind == "" {
		log.Fatal("missing -run flag: choose lines, pads or matrix")
	}

	cfg := config.Load()
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *root != "" {
		cfg.RootFolder = *root
	}

	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()

	runner := pipeline.NewRunner(cfg, database.GetDB())

	run, err := runner.Execute(models.RunKind(*kind))
	if err != nil {
		log.Fatalf("Run failed: %v", err)
	}
	log.Printf("Run %s finished with status %s", run.ID, run.Status)
}
