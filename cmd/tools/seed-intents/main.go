// cmd/tools/seed-intents/main.go
//
// Seeds the admin chatbot intent catalog in Redis from a JSON file, so a
// fresh environment starts with a usable chatbot configuration.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"insurance-api/internal/common/config"
	"insurance-api/internal/common/database"
	"insurance-api/internal/common/logger"
	"insurance-api/internal/intents"
	"insurance-api/internal/models"
)

func main() {
	seedPath := flag.String("file", "configs/intents-seed.json", "Path to the intents seed file")
	flag.Parse()

	zapLog := logger.New("info", "console")
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("config load failed: %v\n", err)
		os.Exit(1)
	}

	data, err := os.ReadFile(*seedPath)
	if err != nil {
		fmt.Printf("cannot read seed file: %v\n", err)
		os.Exit(1)
	}

	var seed []models.Intent
	if err := json.Unmarshal(data, &seed); err != nil {
		fmt.Printf("seed file is not a JSON intent array: %v\n", err)
		os.Exit(1)
	}

	rdb, err := database.NewRedis(cfg.Database.Redis)
	if err != nil {
		fmt.Printf("redis connection failed: %v\n", err)
		os.Exit(1)
	}
	defer rdb.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store := intents.NewStore(rdb.Client, log)
	merged, err := store.Import(ctx, seed)
	if err != nil {
		fmt.Printf("seeding failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Seeded %d intents (%d total in catalog).\n", len(seed), len(merged))
}
