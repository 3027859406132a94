package main

import (
	"flag"
	"fmt"
	"log"

	"xiangqi/internal/notation"
	"xiangqi/internal/xiangqi"
)

func main() {
	fen := flag.String("fen", xiangqi.InitialFEN, "position to inspect")
	flag.Parse()

	pos, err := xiangqi.DecodePosition(*fen)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("FEN:", pos.Encode())
	fmt.Print(pos.Board.String())

	moves := pos.Board.AllLegalMoves(pos.SideToMove)
	fmt.Println("Side to move:", pos.SideToMove)
	fmt.Println("In check:", pos.Board.IsInCheck(pos.SideToMove))
	fmt.Println("Legal moves:", len(moves))
	for _, m := range moves {
		text, err := notation.Traditional(&pos.Board, m, notation.Chinese)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("  %s  %s\n", notation.ICCS(m), text)
	}
	v := xiangqi.Evaluate(pos, xiangqi.NewHistory(pos))
	fmt.Printf("Verdict: %s winner=%s\n", v.State, v.Winner)
}
