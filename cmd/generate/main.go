package main

import (
	"log"
	"math/rand/v2"
	"time"

	"FundBench/internal/config"
	"FundBench/internal/dataset"
	"FundBench/internal/recorder"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := config.LoadDotenv(".env"); err != nil {
		log.Fatalf("[FATAL] %v", err)
	}
	cfg, err := config.Load(config.Path())
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	params := cfg.Generator.Params()
	seed := cfg.Generator.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log.Printf("[INFO] generating %s (%d sources, %d requirements, %d balance pools, seed %d)",
		params.Name, params.SourceCount, params.RequirementCount, params.PoolCount, seed)

	ds, err := dataset.Generate(params, rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
	if err != nil {
		log.Fatalf("[FATAL] generate: %v", err)
	}
	if problems := dataset.Check(ds, params); len(problems) > 0 {
		for _, p := range problems {
			log.Printf("[ERROR] %s", p)
		}
		log.Fatalf("[FATAL] generated dataset failed %d checks", len(problems))
	}

	dir := cfg.Paths.DataDir
	if err := dataset.Write(dir, ds); err != nil {
		log.Fatalf("[FATAL] write dataset: %v", err)
	}
	for _, p := range []string{
		dataset.SourcesPath(dir, ds.Name),
		dataset.RequirementsPath(dir, ds.Name),
		dataset.BalancePoolsPath(dir, ds.Name),
	} {
		log.Printf("[INFO] wrote %s", p)
	}

	if cfg.Database.SQLitePath == "" {
		return
	}
	rec, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
	if err != nil {
		log.Printf("[WARN] init sqlite recorder failed, generation not recorded: %v", err)
		return
	}
	defer rec.Close()
	if err := rec.RecordGeneration(&recorder.GenerationEvent{
		Name:           ds.Name,
		Dir:            dir,
		Seed:           seed,
		Sources:        len(ds.Sources),
		Requirements:   len(ds.Requirements),
		BalancePools:   len(ds.BalancePools),
		DurationMonths: params.DurationMonths,
		MaxTenor:       params.MaxTenor,
	}); err != nil {
		log.Printf("[ERROR] record generation: %v", err)
	}
}
