package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/fingerspell/internal/events"
	"github.com/robalobadob/fingerspell/internal/game"
	"github.com/robalobadob/fingerspell/internal/httpserver"
	"github.com/robalobadob/fingerspell/internal/store"
	"github.com/robalobadob/fingerspell/internal/words"
)

func main() {
	_ = godotenv.Load()
	cfg := loadConfig()
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}

// run loads the word bank, wires the publisher and serves until ctx ends.
func run(ctx context.Context, cfg config) error {
	bank, err := loadBank(ctx, cfg)
	if err != nil {
		return fmt.Errorf("load word bank: %w", err)
	}
	// Fail at start-up rather than on the first new game.
	if _, err := game.New(bank); err != nil {
		return fmt.Errorf("word bank cannot supply a full game: %w", err)
	}
	stats := bank.Stats()
	log.Info().
		Int("easy", stats[words.Easy]).
		Int("medium", stats[words.Medium]).
		Int("hard", stats[words.Hard]).
		Msg("word bank loaded")

	var pub events.Publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		pub = events.NewKafka(cfg.KafkaBrokers, cfg.KafkaTopic)
		log.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.KafkaTopic).Msg("publishing events to kafka")
	}
	defer func() {
		if err := pub.Close(); err != nil {
			log.Warn().Err(err).Msg("close event publisher")
		}
	}()

	st := store.NewMemoryStore(store.WithTTL(cfg.Server.SessionTTL))
	srv := httpserver.New(st, bank, pub, cfg.Server)
	log.Info().Str("port", cfg.Port).Msg("starting fingerspell server")
	return srv.Run(ctx, ":"+cfg.Port)
}

// loadBank picks the word source: WORDS_DB, then WORDS_FILE, then the
// embedded default.
func loadBank(ctx context.Context, cfg config) (*words.Bank, error) {
	switch {
	case cfg.WordsDB != "":
		db, err := openDB(cfg.WordsDB)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		if err := migrate(db); err != nil {
			return nil, err
		}
		return words.LoadSQL(ctx, db)
	case cfg.WordsFile != "":
		return words.LoadFile(cfg.WordsFile)
	default:
		return words.Default()
	}
}
