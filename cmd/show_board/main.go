package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lk16/flippy/referee/internal/othello"
	"github.com/lk16/flippy/referee/internal/referee"
)

func main() {
	boardString := flag.String("board", "", "the board to show")
	playerString := flag.String("player", "black", "the player to show legal moves for")
	flag.Parse()

	if err := run(*boardString, *playerString); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func run(boardString, playerString string) error {
	board, err := othello.NewBoardFromString(boardString)
	if err != nil {
		return err
	}

	player, err := othello.ParsePlayer(playerString)
	if err != nil {
		return err
	}

	engine := referee.New()
	defer engine.Shutdown() //nolint: errcheck

	moves, err := engine.LegalMoves(board, player)
	if err != nil {
		return err
	}

	board.Print(moves.Coordinates())

	score := referee.GetScore(board)
	fmt.Printf("%s to move, %d legal moves, black %d white %d\n", player, moves.Len(), score.Black, score.White)

	return nil
}
