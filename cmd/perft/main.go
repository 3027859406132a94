package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"xiangqi/internal/notation"
	"xiangqi/internal/xiangqi"
)

// TestCase 一个局面及其全部合法着法，供其它实现对照走法生成
type TestCase struct {
	FEN   string   `json:"fen"`
	Legal []string `json:"legal"` // ICCS，按生成顺序
	Check bool     `json:"in_check"`
}

func main() {
	fen := flag.String("fen", xiangqi.InitialFEN, "position to count from")
	depth := flag.Int("depth", 3, "perft depth")
	divide := flag.Bool("divide", false, "print the count below each root move")
	dump := flag.String("dump", "", "write legal-move test cases from random games to this JSON file")
	games := flag.Int("games", 10, "random games for -dump")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed for -dump")
	flag.Parse()

	if *dump != "" {
		n, err := writeTestCases(*dump, *games, *seed)
		if err != nil {
			log.Fatalf("dump: %v", err)
		}
		fmt.Printf("Generated %d test cases from %d random games to %s\n", n, *games, *dump)
		return
	}

	pos, err := xiangqi.DecodePosition(*fen)
	if err != nil {
		log.Fatalf("bad fen: %v", err)
	}

	start := time.Now()
	counts, err := perftDivide(pos, *depth)
	if err != nil {
		log.Fatal(err)
	}
	var total uint64
	for _, c := range counts {
		total += c.nodes
		if *divide {
			fmt.Printf("%s: %d\n", c.move, c.nodes)
		}
	}
	elapsed := time.Since(start)
	fmt.Printf("perft(%d) = %d  (%v, %.0f nodes/s)\n", *depth, total, elapsed.Round(time.Millisecond), float64(total)/elapsed.Seconds())
}

type rootCount struct {
	move  string
	nodes uint64
}

// perftDivide 根节点每个着法一个 goroutine
func perftDivide(pos *xiangqi.Position, depth int) ([]rootCount, error) {
	if depth < 1 {
		return []rootCount{{move: "-", nodes: 1}}, nil
	}
	moves := pos.LegalMoves()
	counts := make([]rootCount, len(moves))

	var g errgroup.Group
	for i, mv := range moves {
		i, mv := i, mv
		g.Go(func() error {
			child, ok := pos.ApplyMove(mv)
			if !ok {
				return fmt.Errorf("apply %s failed", mv)
			}
			counts[i] = rootCount{move: notation.ICCS(mv), nodes: xiangqi.Perft(child, depth-1)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].move < counts[j].move })
	return counts, nil
}

func writeTestCases(path string, games int, seed int64) (int, error) {
	rng := rand.New(rand.NewSource(seed))
	var cases []TestCase
	for g := 0; g < games; g++ {
		pos := xiangqi.NewInitialPosition()
		for ply := 0; ply < 300; ply++ { // 防死循环
			moves := pos.LegalMoves()
			tc := TestCase{
				FEN:   pos.Encode(),
				Legal: make([]string, 0, len(moves)),
				Check: pos.Board.IsInCheck(pos.SideToMove),
			}
			for _, mv := range moves {
				tc.Legal = append(tc.Legal, notation.ICCS(mv))
			}
			cases = append(cases, tc)
			if len(moves) == 0 {
				break
			}
			next, ok := pos.ApplyMove(moves[rng.Intn(len(moves))])
			if !ok {
				break
			}
			pos = next
		}
	}

	data, err := json.MarshalIndent(cases, "", "  ")
	if err != nil {
		return 0, err
	}
	return len(cases), os.WriteFile(path, data, 0o644)
}
