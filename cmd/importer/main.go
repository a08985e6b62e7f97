package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"warung/internal/config"
	"warung/internal/db"
	"warung/internal/importer"
	categoryrepo "warung/internal/repository/category"
	dishrepo "warung/internal/repository/dish"
)

func main() {
	logger := log.New(os.Stdout, "[importer] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	var (
		path    = flag.String("file", "", "path to menu CSV file")
		timeout = flag.Duration("timeout", 2*time.Minute, "import timeout")
	)
	flag.Parse()

	if *path == "" {
		logger.Fatal("missing -file flag")
	}

	cfg, err := config.DBFromEnv()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	pool, err := db.Connect(ctx, cfg.ConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	f, err := os.Open(*path)
	if err != nil {
		logger.Fatalf("open csv: %v", err)
	}
	defer f.Close()

	imp := importer.NewCSVImporter(f, dishrepo.NewPostgres(pool, logger), categoryrepo.NewPostgres(pool))
	n, err := imp.Run(ctx)
	if err != nil {
		logger.Fatalf("import failed after %d dishes: %v", n, err)
	}

	logger.Printf("imported %d dishes", n)
}
