package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/raushan22882917/f-7556/internal/config"
	"github.com/raushan22882917/f-7556/internal/db"
	"github.com/raushan22882917/f-7556/internal/engine"
	"github.com/raushan22882917/f-7556/internal/models"
)

func main() {
	limit := flag.Int("limit", engine.DefaultLeaderboardLimit, "number of entries to show")
	hackathonID := flag.String("hackathon", "", "optional hackathon UUID to scope the leaderboard")
	flag.Parse()

	cfg := config.Load()
	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	store := db.NewStore(pool)

	var records []models.ParticipantRecord
	if *hackathonID != "" {
		id, err := uuid.Parse(*hackathonID)
		if err != nil {
			log.Fatalf("Invalid hackathon ID: %v", err)
		}
		records, err = store.ListHackathonParticipants(ctx, id, *limit)
		if err != nil {
			log.Fatal(err)
		}
	} else {
		records, err = store.ListParticipants(ctx, *limit)
		if err != nil {
			log.Fatal(err)
		}
	}

	entries := engine.Rank(records, *limit)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Rank", "Participant", "Score", "Solved", "Time Spent"})
	for _, e := range entries {
		t.AppendRow(table.Row{e.Rank, e.UserName, e.Score, e.SolvedProblems, e.TimeSpent})
	}
	t.Render()
}
