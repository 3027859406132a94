package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"xiangqi/internal/engine"
	"xiangqi/internal/notation"
	"xiangqi/internal/storage"
)

func main() {
	totalGames := flag.Int("games", 2, "number of games to play")
	redDepth := flag.Int("red-depth", engine.DefaultDepth, "search depth for the first player")
	blackDepth := flag.Int("black-depth", engine.DefaultDepth, "search depth for the second player")
	think := flag.Duration("think", 2*time.Second, "time limit per move")
	vcf := flag.Int("vcf", 0, "forced-check mate search depth for both players (0: off)")
	maxPlies := flag.Int("maxplies", 300, "stop a game after this many half-moves")
	styleName := flag.String("style", "chinese", "transcript style: chinese or wxf")
	dataDir := flag.String("data", "", "results database directory (empty: do not store)")
	flag.Parse()

	style, err := notation.ParseStyle(*styleName)
	if err != nil {
		log.Fatal(err)
	}

	var store *storage.Storage
	if *dataDir != "" {
		store, err = storage.Open(*dataDir)
		if err != nil {
			log.Fatalf("open store: %v", err)
		}
		defer store.Close()
	}

	a := Player{
		Name:  fmt.Sprintf("Alpha-Beta (Depth %d)", *redDepth),
		Mover: engine.NewEngine(engine.SearchConfig{MaxDepth: *redDepth, TimeLimit: *think, VCFDepth: *vcf}),
	}
	b := Player{
		Name:  fmt.Sprintf("Alpha-Beta (Depth %d)", *blackDepth),
		Mover: engine.NewEngine(engine.SearchConfig{MaxDepth: *blackDepth, TimeLimit: *think, VCFDepth: *vcf}),
	}

	m := &Match{MaxPlies: *maxPlies, Style: style, Store: store, Out: os.Stdout}
	score, err := m.Run(context.Background(), a, b, *totalGames)
	if err != nil {
		log.Fatalf("selfplay: %v", err)
	}

	fmt.Printf("\n=== Final Score ===\n")
	fmt.Printf("%s: %d\n", a.Name, score.A)
	fmt.Printf("%s: %d\n", b.Name, score.B)
	fmt.Printf("Draws: %d\n", score.Draws)
}
