package main

import (
	"context"
	"os"
	"strings"

	"go-catalog-ms/internal/config"
	"go-catalog-ms/internal/repository"
	"go-catalog-ms/internal/service"
	"go-catalog-ms/pkg/database"
	"go-catalog-ms/pkg/logger"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// check-cycles walks every product's question tree and reports the
// product paths that lead back into themselves. Exit code 1 when any exist.
func main() {
	// 1. Load Env
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.New(cfg.Logger())
	if envErr != nil {
		log.Warn().Msg(".env file not found, relying on system env")
	}

	// 2. Setup Database
	db, err := database.ConnectDB(cfg.Database(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("database unavailable")
	}

	ctx := context.Background()
	products := repository.NewProductRepo(db)
	expander := service.NewQuestionTreeExpander(repository.NewQuestionProductRepo(db))

	// 3. Walk every product
	ids, err := products.IDs(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to list products")
	}

	seen := make(map[string]bool)
	found := 0
	for _, id := range ids {
		cycle, err := expander.FindCycle(ctx, id)
		if err != nil {
			log.Fatal().Err(err).Str("product_id", id.String()).Msg("failed to walk question tree")
		}
		if cycle == nil {
			continue
		}

		key := cycleKey(cycle)
		if seen[key] {
			continue
		}
		seen[key] = true
		found++
		log.Warn().Str("root", id.String()).Str("cycle", formatPath(cycle)).Msg("question tree cycle")
	}

	if found > 0 {
		log.Error().Int("cycles", found).Int("products", len(ids)).Msg("❌ question tree cycles found")
		os.Exit(1)
	}
	log.Info().Int("products", len(ids)).Msg("✅ No question tree cycles")
}

func formatPath(path []uuid.UUID) string {
	parts := make([]string, len(path))
	for i, id := range path {
		parts[i] = id.String()
	}
	return strings.Join(parts, " -> ")
}

// cycleKey identifies a cycle regardless of where it was entered.
func cycleKey(cycle []uuid.UUID) string {
	ring := cycle[:len(cycle)-1]
	start := 0
	for i, id := range ring {
		if id.String() < ring[start].String() {
			start = i
		}
	}
	rotated := append(append([]uuid.UUID{}, ring[start:]...), ring[:start]...)
	return formatPath(rotated)
}
