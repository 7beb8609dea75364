package board_test

import (
	"sort"
	"strings"
	"testing"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPseudoLegalMoves(t *testing.T) {
	t.Run("pawns", func(t *testing.T) {
		tests := []struct {
			turn      board.Color
			pieces    []board.Placement
			enpassant board.Square
			expected  []board.Move
		}{
			{ // No pawns
				board.White,
				[]board.Placement{
					{board.A1, board.White, board.King},
					{board.H8, board.Black, board.King},
				},
				board.NoSquare,
				nil,
			},
			{ // Pawn @ E2,G5
				board.White,
				[]board.Placement{
					{board.A1, board.White, board.King},
					{board.H8, board.Black, board.King},
					{board.E2, board.White, board.Pawn},
					{board.G5, board.White, board.Pawn},
				},
				board.NoSquare,
				[]board.Move{
					board.NewMove(board.E2, board.E3, board.Quiet),
					board.NewMove(board.E2, board.E4, board.DoublePawnPush),
					board.NewMove(board.G5, board.G6, board.Quiet),
				},
			},
			{ // Pawn @ D7 -- promotion
				board.White,
				[]board.Placement{
					{board.A1, board.White, board.King},
					{board.H8, board.Black, board.King},
					{board.D7, board.White, board.Pawn},
				},
				board.NoSquare,
				[]board.Move{
					board.NewMove(board.D7, board.D8, board.QueenPromotion),
					board.NewMove(board.D7, board.D8, board.RookPromotion),
					board.NewMove(board.D7, board.D8, board.BishopPromotion),
					board.NewMove(board.D7, board.D8, board.KnightPromotion),
				},
			},
			{ // Pawn @ C4,E4,F4 -- en passant
				board.Black,
				[]board.Placement{
					{board.A1, board.White, board.King},
					{board.H8, board.Black, board.King},
					{board.C4, board.Black, board.Pawn},
					{board.D4, board.White, board.Pawn},
					{board.E4, board.Black, board.Pawn},
					{board.F4, board.Black, board.Pawn},
				},
				board.D3,
				[]board.Move{
					board.NewMove(board.C4, board.C3, board.Quiet),
					board.NewMove(board.C4, board.D3, board.EnPassant),
					board.NewMove(board.E4, board.E3, board.Quiet),
					board.NewMove(board.E4, board.D3, board.EnPassant),
					board.NewMove(board.F4, board.F3, board.Quiet),
				},
			},
		}

		for _, tt := range tests {
			pos, err := board.NewPosition(tt.pieces, 0, tt.enpassant)
			require.NoError(t, err)

			actual := filterMoves(pos.PseudoLegalMoves(tt.turn).Slice(), func(m board.Move) bool {
				_, piece, _ := pos.Square(m.From())
				return piece == board.Pawn
			})
			assertSameMoves(t, tt.expected, actual)
		}
	})

	t.Run("officers", func(t *testing.T) {
		tests := []struct {
			pieces   []board.Placement
			expected []board.Move
		}{
			{ // King @ A3
				[]board.Placement{
					{board.A3, board.White, board.King},
					{board.B3, board.Black, board.Rook},
					{board.A2, board.Black, board.Bishop},
					{board.H8, board.Black, board.King},
				},
				[]board.Move{
					board.NewMove(board.A3, board.A4, board.Quiet),
					board.NewMove(board.A3, board.B4, board.Quiet),
					board.NewMove(board.A3, board.B2, board.Quiet),
					board.NewMove(board.A3, board.A2, board.Capture),
					board.NewMove(board.A3, board.B3, board.Capture),
				},
			},
			{ // Knight @ A3
				[]board.Placement{
					{board.A3, board.White, board.Knight},
					{board.B1, board.Black, board.Rook},
					{board.B2, board.Black, board.Bishop},
					{board.C2, board.Black, board.Queen},
					{board.H1, board.White, board.King},
					{board.H8, board.Black, board.King},
				},
				[]board.Move{
					board.NewMove(board.A3, board.B1, board.Capture),
					board.NewMove(board.A3, board.C2, board.Capture),
					board.NewMove(board.A3, board.C4, board.Quiet),
					board.NewMove(board.A3, board.B5, board.Quiet),
					board.NewMove(board.H1, board.G1, board.Quiet),
					board.NewMove(board.H1, board.G2, board.Quiet),
					board.NewMove(board.H1, board.H2, board.Quiet),
				},
			},
		}

		for _, tt := range tests {
			pos, err := board.NewPosition(tt.pieces, 0, board.NoSquare)
			require.NoError(t, err)

			actual := pos.PseudoLegalMoves(board.White)
			assertSameMoves(t, tt.expected, actual.Slice())
		}
	})

	t.Run("castling", func(t *testing.T) {
		tests := []struct {
			turn     board.Color
			pieces   []board.Placement
			castling board.Castling
			expected []board.Move
		}{
			{ // No rights
				board.White,
				[]board.Placement{
					{board.E1, board.White, board.King},
					{board.H1, board.White, board.Rook},
					{board.A1, board.White, board.Rook},
					{board.E8, board.Black, board.King},
				},
				0,
				nil,
			},
			{ // Full rights.
				board.White,
				[]board.Placement{
					{board.E1, board.White, board.King},
					{board.H1, board.White, board.Rook},
					{board.A1, board.White, board.Rook},
					{board.E8, board.Black, board.King},
				},
				board.FullCastingRights,
				[]board.Move{
					board.NewMove(board.E1, board.G1, board.KingCastle),
					board.NewMove(board.E1, board.C1, board.QueenCastle),
				},
			},
			{ // Obstructed king-side.
				board.Black,
				[]board.Placement{
					{board.E8, board.Black, board.King},
					{board.H8, board.Black, board.Rook},
					{board.G8, board.White, board.Bishop},
					{board.A8, board.Black, board.Rook},
					{board.E1, board.White, board.King},
				},
				board.FullCastingRights,
				[]board.Move{
					board.NewMove(board.E8, board.C8, board.QueenCastle),
				},
			},
		}

		for _, tt := range tests {
			pos, err := board.NewPosition(tt.pieces, tt.castling, board.NoSquare)
			require.NoError(t, err)

			actual := filterMoves(pos.PseudoLegalMoves(tt.turn).Slice(), func(m board.Move) bool {
				return m.IsCastle()
			})
			assertSameMoves(t, tt.expected, actual)
		}
	})
}

func TestPerft1(t *testing.T) {
	tests := []struct {
		fen      string
		expected int
	}{
		{"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/1PB1P1b1/P1NP1N2/2P1QPPP/R4RK1 b - b3 0 10", 45},
	}

	for _, tt := range tests {
		pos, turn, _, _, err := fen.Decode(tt.fen)
		assert.NoError(t, err)

		moves := pos.PseudoLegalMoves(turn)
		assert.Equal(t, tt.expected, moves.Len)
	}
}

func filterMoves(ms []board.Move, fn func(board.Move) bool) []board.Move {
	var list []board.Move
	for _, m := range ms {
		if fn(m) {
			list = append(list, m)
		}
	}
	return list
}

func assertSameMoves(t *testing.T, expected, actual []board.Move) {
	t.Helper()
	assert.Equal(t, sortMoves(expected), sortMoves(actual))
}

func sortMoves(ms []board.Move) string {
	list := make([]string, len(ms))
	for i, m := range ms {
		list[i] = m.String() + "/" + m.Flag().String()
	}
	sort.Strings(list)
	return strings.Join(list, "\n")
}
