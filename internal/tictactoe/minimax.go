package tictactoe

import (
	"math"

	"github.com/rocketscienceinc/pencilgames-backend/internal/entity"
)

const winScore = 10

// BestMove runs an exhaustive minimax search for ai on board. The first best cell in
// row-major order wins ties. ok is false when no move is possible.
func BestMove(board Board, ai Mark) (entity.Coord, bool) {
	if _, _, won := board.Winner(); won || board.Full() {
		return entity.Coord{}, false
	}

	bestScore := math.MinInt
	bestIndex := -1

	for i := range board {
		if board[i] != Empty {
			continue
		}

		board[i] = ai
		score := minimax(&board, 0, false, ai)
		board[i] = Empty

		if score > bestScore {
			bestScore = score
			bestIndex = i
		}
	}

	return coord(bestIndex), true
}

// minimax scores a position from ai's point of view; depth favours quick wins and slow losses.
func minimax(board *Board, depth int, maximizing bool, ai Mark) int {
	if winner, _, won := board.Winner(); won {
		if winner == ai {
			return winScore - depth
		}
		return -winScore + depth
	}

	if board.Full() {
		return 0
	}

	mark, best := toggleMark(ai), math.MaxInt
	if maximizing {
		mark, best = ai, math.MinInt
	}

	for i := range board {
		if board[i] != Empty {
			continue
		}

		board[i] = mark
		score := minimax(board, depth+1, !maximizing, ai)
		board[i] = Empty

		if maximizing {
			best = max(best, score)
		} else {
			best = min(best, score)
		}
	}

	return best
}
