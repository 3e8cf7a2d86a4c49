package main

import (
	"math/rand"
	"os"
	"time"

	"github.com/bfontes/chess-scorekeeper/internal/database"
	"github.com/bfontes/chess-scorekeeper/internal/kvstore"
	"github.com/bfontes/chess-scorekeeper/internal/tournament"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Simplified config loading for the script
func loadConfig() (dbName, primaryURL, authToken string) {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	dbName = os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "chess.db"
	}
	return dbName, os.Getenv("TURSO_PRIMARY_URL"), os.Getenv("TURSO_AUTH_TOKEN")
}

func main() {
	log.Info("Starting database seeder...")
	dbName, primaryURL, authToken := loadConfig()

	db, teardown, err := database.InitDB(dbName, primaryURL, authToken)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	store, err := tournament.New(kvstore.New(db))
	if err != nil {
		log.Fatalf("Failed to load tournament store: %s", err)
	}

	seedPlayers := []struct {
		name  string
		email string
	}{
		{"Ana Beatriz", "ana@clube.org"},
		{"Bruno Costa", "bruno@clube.org"},
		{"Carla Mendes", "carla@clube.org"},
		{"Diego Rocha", "diego@clube.org"},
		{"Elisa Ferreira", "elisa@clube.org"},
		{"Felipe Tavares", "felipe@clube.org"},
	}

	players := make([]tournament.Player, 0, len(seedPlayers))
	for _, sp := range seedPlayers {
		p, err := store.AddPlayer(sp.name, sp.email)
		if err != nil {
			log.Warn("Skipping player", "name", sp.name, "error", err)
			continue
		}
		players = append(players, p)
	}
	log.Info("Seeded players", "count", len(players))

	if len(players) < 2 {
		log.Fatal("Not enough players to seed matches")
	}

	const numMatches = 30
	results := []tournament.Result{tournament.ResultPlayer1, tournament.ResultPlayer2, tournament.ResultDraw}

	startTime := time.Now()
	seeded := 0
	for i := 0; i < numMatches; i++ {
		a := rand.Intn(len(players))
		b := rand.Intn(len(players))
		if a == b {
			continue
		}
		date := time.Now().AddDate(0, 0, -rand.Intn(180)).Format("2006-01-02")
		_, err := store.RecordMatch(players[a].ID, players[b].ID, results[rand.Intn(len(results))], date, "")
		if err != nil {
			log.Warn("Failed to record seeded match", "error", err)
			continue
		}
		seeded++
	}

	log.Info("Seeding complete", "matches", seeded, "duration", time.Since(startTime))
}
