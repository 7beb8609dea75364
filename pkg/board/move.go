package board

import "fmt"

// MoveFlag occupies the top 4 bits of a Move and classifies it. The encoding
// follows the standard from-to-flag scheme: bit 3 (0x8) marks a promotion,
// bit 2 (0x4) marks a capture (en passant counts as a capture). The no-progress
// counter is reset by captures and by pawn moves.
type MoveFlag uint16

const (
	Quiet MoveFlag = iota
	DoublePawnPush
	KingCastle
	QueenCastle
	Capture
	EnPassant
	_ // reserved
	_ // reserved
	KnightPromotion
	BishopPromotion
	RookPromotion
	QueenPromotion
	KnightPromotionCapture
	BishopPromotionCapture
	RookPromotionCapture
	QueenPromotionCapture
)

func (f MoveFlag) IsCapture() bool {
	return f&Capture != 0
}

func (f MoveFlag) IsPromotion() bool {
	return f&KnightPromotion != 0
}

// PromotionPiece returns the piece a pawn promotes to for this flag, or
// NoPiece if the flag is not a promotion.
func (f MoveFlag) PromotionPiece() Piece {
	if !f.IsPromotion() {
		return NoPiece
	}
	switch f & 0x3 {
	case 0:
		return Knight
	case 1:
		return Bishop
	case 2:
		return Rook
	default:
		return Queen
	}
}

func (f MoveFlag) String() string {
	switch f {
	case Quiet:
		return "quiet"
	case DoublePawnPush:
		return "double-push"
	case KingCastle:
		return "O-O"
	case QueenCastle:
		return "O-O-O"
	case Capture:
		return "capture"
	case EnPassant:
		return "en-passant"
	case KnightPromotion, BishopPromotion, RookPromotion, QueenPromotion:
		return fmt.Sprintf("promo=%v", f.PromotionPiece())
	case KnightPromotionCapture, BishopPromotionCapture, RookPromotionCapture, QueenPromotionCapture:
		return fmt.Sprintf("promo-capture=%v", f.PromotionPiece())
	default:
		return "?"
	}
}

// Move is a packed, not-necessarily-legal chess move: 6 bits From, 6 bits To,
// 4 bit MoveFlag. The zero value is the null move and never a legal move,
// because From==To==A1 cannot arise from any pseudo-legal generator.
type Move uint16

const NullMove Move = 0

func NewMove(from, to Square, flag MoveFlag) Move {
	return Move(from) | Move(to)<<6 | Move(flag)<<12
}

func (m Move) From() Square {
	return Square(m & 0x3f)
}

func (m Move) To() Square {
	return Square((m >> 6) & 0x3f)
}

func (m Move) Flag() MoveFlag {
	return MoveFlag(m >> 12)
}

func (m Move) IsCapture() bool {
	return m.Flag().IsCapture()
}

func (m Move) IsPromotion() bool {
	return m.Flag().IsPromotion()
}

func (m Move) IsNull() bool {
	return m == NullMove
}

func (m Move) IsCastle() bool {
	return m.Flag() == KingCastle || m.Flag() == QueenCastle
}

func (m Move) IsEnPassant() bool {
	return m.Flag() == EnPassant
}

// ParseMove parses a move in pure algebraic coordinate notation, such as "a2a4"
// or "a7a8q". The flag is always Quiet unless a promotion suffix is present;
// callers reconstructing a move from a position must re-derive Capture,
// DoublePawnPush, EnPassant and castle flags from board context, as pure
// coordinate notation does not carry them.
func ParseMove(str string) (Move, error) {
	runes := []rune(str)

	if len(runes) < 4 || len(runes) > 5 {
		return NullMove, fmt.Errorf("invalid move: '%v'", str)
	}

	from, err := ParseSquare(runes[0], runes[1])
	if err != nil {
		return NullMove, fmt.Errorf("invalid from: '%v': %v", str, err)
	}
	to, err := ParseSquare(runes[2], runes[3])
	if err != nil {
		return NullMove, fmt.Errorf("invalid to: '%v': %v", str, err)
	}

	flag := Quiet
	if len(runes) == 5 {
		promo, ok := ParsePiece(runes[4])
		if !ok || promo == Pawn || promo == King {
			return NullMove, fmt.Errorf("invalid promotion: '%v'", str)
		}
		switch promo {
		case Knight:
			flag = KnightPromotion
		case Bishop:
			flag = BishopPromotion
		case Rook:
			flag = RookPromotion
		case Queen:
			flag = QueenPromotion
		}
	}
	return NewMove(from, to, flag), nil
}

func (m Move) String() string {
	if m.IsNull() {
		return "0000"
	}
	if promo := m.Flag().PromotionPiece(); promo != NoPiece {
		return fmt.Sprintf("%v%v%v", m.From(), m.To(), promo)
	}
	return fmt.Sprintf("%v%v", m.From(), m.To())
}
