package main

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/carebase/terminology/search"
	"github.com/carebase/terminology/terminology"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment")
	}

	dsn := os.Getenv("TERMSRV_DB_DSN")
	if dsn == "" {
		log.Fatal().Msg("TERMSRV_DB_DSN is required")
	}

	addr := os.Getenv("TERMSRV_LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	searcher := search.NewPostgresSearcher(db, log)
	resolver := terminology.NewResolver(searcher, os.Getenv("TERMSRV_BASE_PROJECT"), log)

	srv := newServer(db, resolver, log)

	r := mux.NewRouter()
	r.HandleFunc("/CodeSystem/$subsumes", srv.handleSubsumes).Methods(http.MethodGet)
	r.HandleFunc("/{resourceType}/$resolve", srv.handleResolve).Methods(http.MethodGet)

	log.Info().Str("addr", addr).Msg("Starting terminology server")
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}
