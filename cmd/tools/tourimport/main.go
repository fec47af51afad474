package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/zhouzirui/natours/backend/internal/config"
	"github.com/zhouzirui/natours/backend/internal/storage/jsonfile"
	"github.com/zhouzirui/natours/backend/internal/storage/sqlite"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if err := godotenv.Load(); err != nil {
		log.Printf("[WARN] failed to load .env, using system environment: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	mode := flag.String("mode", "import", "import: JSON file -> sqlite; export: sqlite -> JSON file")
	dataFile := flag.String("file", cfg.Store.DataFile, "tours JSON file")
	dbPath := flag.String("db", cfg.Store.SQLitePath, "sqlite database path")
	timeout := flag.Duration("timeout", 30*time.Second, "operation timeout")
	flag.Parse()

	if *mode != "import" && *mode != "export" {
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	db, err := sqlite.OpenDB(*dbPath)
	if err != nil {
		log.Fatalf("failed to open db %s: %v", *dbPath, err)
	}
	defer db.Close()
	store := sqlite.NewStore(db)

	switch *mode {
	case "import":
		items, err := jsonfile.Load(*dataFile)
		if err != nil {
			log.Fatalf("load %s: %v", *dataFile, err)
		}
		n, err := store.Import(ctx, items)
		if err != nil {
			log.Fatalf("import: %v", err)
		}
		log.Printf("imported %d tours from %s into %s", n, *dataFile, *dbPath)

	case "export":
		items, err := store.List(ctx)
		if err != nil {
			log.Fatalf("list: %v", err)
		}
		if err := jsonfile.Save(*dataFile, items); err != nil {
			log.Fatalf("export: %v", err)
		}
		log.Printf("exported %d tours from %s into %s", len(items), *dbPath, *dataFile)
	}
}
