package main

import (
	"context"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/carebase/terminology/loader"
)

// termload imports terminology resources from remote FHIR endpoints into
// the resource table. Each argument is the URL of a CodeSystem, ValueSet
// or ConceptMap to fetch.
func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment")
	}

	dsn := os.Getenv("TERMLOAD_DB_DSN")
	if dsn == "" {
		log.Fatal().Msg("TERMLOAD_DB_DSN is required")
	}

	project := os.Getenv("TERMLOAD_PROJECT")
	if project == "" {
		log.Fatal().Msg("TERMLOAD_PROJECT is required")
	}

	if len(os.Args) < 2 {
		log.Fatal().Msg("Usage: termload <resource-url> [<resource-url>...]")
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	l := loader.New(db, log)
	ctx := context.Background()

	failed := 0
	for _, sourceURL := range os.Args[1:] {
		if _, err := l.Load(ctx, project, sourceURL); err != nil {
			log.Error().Err(err).Str("url", sourceURL).Msg("Import failed")
			failed++
		}
	}

	if failed > 0 {
		log.Fatal().Int("failed", failed).Msg("Some imports failed")
	}
	log.Info().Int("imported", len(os.Args)-1).Msg("Import complete")
}
