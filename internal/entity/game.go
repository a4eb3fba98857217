package entity

import (
	"fmt"

	"github.com/rocketscienceinc/pencilgames-backend/internal/apperror"
)

// GameKind names one of the pencil games a player can have a session of.
type GameKind string

const (
	TicTacToe  GameKind = "tictactoe"
	Battleship GameKind = "battleship"
	Hangman    GameKind = "hangman"
	WordSearch GameKind = "wordsearch"
)

var GameKinds = []GameKind{TicTacToe, Battleship, Hangman, WordSearch}

// ParseGameKind validates a game name coming from a client.
func ParseGameKind(name string) (GameKind, error) {
	for _, kind := range GameKinds {
		if string(kind) == name {
			return kind, nil
		}
	}

	return "", fmt.Errorf("%w: %q", apperror.ErrUnknownGame, name)
}

func (that GameKind) String() string {
	return string(that)
}
