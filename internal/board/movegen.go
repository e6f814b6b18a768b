package board

// GeneratePseudoLegalMoves generates all pseudo-legal moves. King safety is
// resolved later by MakeMove.
func (p *Position) GeneratePseudoLegalMoves() *MoveList {
	ml := NewMoveList()
	p.GenerateMoves(ml)
	return ml
}

// GenerateMoves appends all pseudo-legal moves to ml.
func (p *Position) GenerateMoves(ml *MoveList) {
	us := p.SideToMove
	occupied := p.Occupied()
	targets := ^p.Sides[us]

	p.generatePawnMoves(ml, us, occupied, false)
	p.generatePieceMoves(ml, us, occupied, targets)
	p.generateCastlingMoves(ml, us, occupied)
}

// GenerateCaptures appends pseudo-legal captures to ml, including en passant
// and capturing promotions.
func (p *Position) GenerateCaptures(ml *MoveList) {
	us := p.SideToMove
	occupied := p.Occupied()

	p.generatePawnMoves(ml, us, occupied, true)
	p.generatePieceMoves(ml, us, occupied, p.Sides[us.Other()])
}

// generatePieceMoves adds knight, bishop, rook, queen and king moves landing
// on targets.
func (p *Position) generatePieceMoves(ml *MoveList, us Color, occupied, targets Bitboard) {
	enemies := p.Sides[us.Other()]
	own := p.Sides[us]

	for pt := Knight; pt <= King; pt++ {
		pieces := p.Pieces[pt] & own
		for pieces != 0 {
			from := pieces.PopMSB()
			var attacks Bitboard
			switch pt {
			case Knight:
				attacks = knightAttacks[from]
			case Bishop:
				attacks = BishopAttacks(from, occupied)
			case Rook:
				attacks = RookAttacks(from, occupied)
			case Queen:
				attacks = QueenAttacks(from, occupied)
			case King:
				attacks = kingAttacks[from]
			}
			attacks &= targets
			for attacks != 0 {
				to := attacks.PopMSB()
				if enemies.IsSet(to) {
					ml.Add(NewMove(from, to, Attack, FlagNone))
				} else {
					ml.Add(NewMove(from, to, Quiet, FlagNone))
				}
			}
		}
	}
}

// generatePawnMoves adds pawn pushes, captures, promotions and en passant.
// With capturesOnly set, quiet pushes and non-capturing promotions are skipped.
func (p *Position) generatePawnMoves(ml *MoveList, us Color, occupied Bitboard, capturesOnly bool) {
	pawns := p.Pieces[Pawn] & p.Sides[us]
	enemies := p.Sides[us.Other()]
	empty := ^occupied

	startRank, promotionRank := Rank2, Rank8
	if us == Black {
		startRank, promotionRank = Rank7, Rank1
	}

	for bb := pawns; bb != 0; {
		from := bb.PopMSB()

		if !capturesOnly {
			if single := pawnPushes[us][from] & empty; single != 0 {
				to := single.MSB()
				switch {
				case promotionRank.IsSet(to):
					addPromotions(ml, from, to)
				default:
					ml.Add(NewMove(from, to, Quiet, FlagNone))
					// The double push needs both corridor squares empty.
					if startRank.IsSet(from) {
						if double := pawnPushes[us][to] & empty; double != 0 {
							ml.Add(NewMove(from, double.MSB(), Quiet, FlagNone))
						}
					}
				}
			}
		}

		for hits := pawnAttacks[us][from] & enemies; hits != 0; {
			to := hits.PopMSB()
			if promotionRank.IsSet(to) {
				addPromotions(ml, from, to)
			} else {
				ml.Add(NewMove(from, to, Attack, FlagNone))
			}
		}
	}

	if p.EnPassant != NoSquare {
		// Our pawns that attack the target are the squares an enemy pawn on
		// the target would attack.
		attackers := pawnAttacks[us.Other()][p.EnPassant] & pawns
		for attackers != 0 {
			ml.Add(NewMove(attackers.PopMSB(), p.EnPassant, Attack, FlagEnPassant))
		}
	}
}

// addPromotions adds all four promotion moves.
func addPromotions(ml *MoveList, from, to Square) {
	ml.Add(NewPromotion(from, to, Queen))
	ml.Add(NewPromotion(from, to, Rook))
	ml.Add(NewPromotion(from, to, Bishop))
	ml.Add(NewPromotion(from, to, Knight))
}

// castlingPaths lists, per right, the king move and the squares that must be
// empty. Attacks on the king's path are checked in MakeMove.
var castlingPaths = [...]struct {
	right    CastlingRights
	color    Color
	from, to Square
	empty    Bitboard
}{
	{WhiteKingSideCastle, White, E1, G1, SquareBB(F1) | SquareBB(G1)},
	{WhiteQueenSideCastle, White, E1, C1, SquareBB(B1) | SquareBB(C1) | SquareBB(D1)},
	{BlackKingSideCastle, Black, E8, G8, SquareBB(F8) | SquareBB(G8)},
	{BlackQueenSideCastle, Black, E8, C8, SquareBB(B8) | SquareBB(C8) | SquareBB(D8)},
}

// generateCastlingMoves generates castling moves.
func (p *Position) generateCastlingMoves(ml *MoveList, us Color, occupied Bitboard) {
	for _, c := range castlingPaths {
		if c.color != us || p.CastlingRights&c.right == 0 {
			continue
		}
		if occupied&c.empty == 0 {
			ml.Add(NewMove(c.from, c.to, Castle, FlagNone))
		}
	}
}

// MakeMove applies a pseudo-legal move in place and reports whether it was
// legal. inCheck, kingSq and pinned describe the position before the move
// for the side making it; kingSq may be NoSquare when only king moves and
// castling are being played. On false the position is left in an undefined
// state and must be discarded.
func (p *Position) MakeMove(m Move, inCheck bool, kingSq Square, pinned Bitboard) bool {
	us := p.SideToMove
	them := us.Other()
	from, to := m.From(), m.To()
	moved := p.PieceTypeAt(from)

	if m.Type() == Castle {
		cross := Square((int(from) + int(to)) / 2)
		if inCheck || p.IsSquareAttacked(from, them) ||
			p.IsSquareAttacked(cross, them) || p.IsSquareAttacked(to, them) {
			return false
		}
	}

	p.Hash ^= keys.castling[p.CastlingRights]
	if p.EnPassant != NoSquare {
		p.Hash ^= keys.enPassant[p.EnPassant.File()]
		p.EnPassant = NoSquare
	}
	p.HalfMoveClock++

	switch m.Type() {
	case Quiet:
		p.RemovePiece(moved, us, from)
		p.PlacePiece(moved, us, to)
		if moved == Pawn {
			p.HalfMoveClock = 0
			if abs(int(to)-int(from)) == 16 {
				p.EnPassant = Square((int(from) + int(to)) / 2)
				p.Hash ^= keys.enPassant[p.EnPassant.File()]
			}
		}

	case Attack:
		if m.Flag() == FlagEnPassant {
			captured := to - 8
			if us == Black {
				captured = to + 8
			}
			p.RemovePiece(Pawn, them, captured)
		} else {
			p.RemovePiece(p.PieceTypeAt(to), them, to)
		}
		p.RemovePiece(moved, us, from)
		p.PlacePiece(moved, us, to)
		p.HalfMoveClock = 0

	case Castle:
		p.RemovePiece(King, us, from)
		p.PlacePiece(King, us, to)
		rookFrom, rookTo := from+3, from+1
		if to < from {
			rookFrom, rookTo = from-4, from-1
		}
		p.RemovePiece(Rook, us, rookFrom)
		p.PlacePiece(Rook, us, rookTo)

	case Promotion:
		if p.Sides[them].IsSet(to) {
			p.RemovePiece(p.PieceTypeAt(to), them, to)
		}
		p.RemovePiece(Pawn, us, from)
		p.PlacePiece(m.Promotion(), us, to)
		p.HalfMoveClock = 0
	}

	p.CastlingRights &= castlingSpoilers[from] & castlingSpoilers[to]
	p.Hash ^= keys.castling[p.CastlingRights]

	if us == Black {
		p.FullMoveNumber++
	}
	p.SideToMove = them
	p.Hash ^= keys.whiteToMove

	if inCheck || moved == King || pinned.IsSet(from) || m.IsEnPassant() {
		king := kingSq
		if moved == King {
			king = to
		}
		return !p.IsSquareAttacked(king, them)
	}
	return true
}

// MakeMoveChecked applies a move after computing the check and pin state
// itself. It is meant for callers outside the search.
func (p *Position) MakeMoveChecked(m Move) bool {
	us := p.SideToMove
	return p.MakeMove(m, p.InCheck(), p.KingSquare(us), p.PinnedPieces(us))
}

// GenerateLegalMoves generates all legal moves for the position.
func (p *Position) GenerateLegalMoves() *MoveList {
	pseudo := p.GeneratePseudoLegalMoves()
	legal := NewMoveList()

	us := p.SideToMove
	inCheck := p.InCheck()
	kingSq := p.KingSquare(us)
	pinned := p.PinnedPieces(us)

	for _, m := range pseudo.Slice() {
		child := *p
		if child.MakeMove(m, inCheck, kingSq, pinned) {
			legal.Add(m)
		}
	}
	return legal
}

// HasLegalMoves returns true if the side to move has any legal moves.
func (p *Position) HasLegalMoves() bool {
	pseudo := p.GeneratePseudoLegalMoves()

	us := p.SideToMove
	inCheck := p.InCheck()
	kingSq := p.KingSquare(us)
	pinned := p.PinnedPieces(us)

	for _, m := range pseudo.Slice() {
		child := *p
		if child.MakeMove(m, inCheck, kingSq, pinned) {
			return true
		}
	}
	return false
}

// IsCheckmate returns true if the position is checkmate.
func (p *Position) IsCheckmate() bool {
	return p.InCheck() && !p.HasLegalMoves()
}

// IsStalemate returns true if the position is stalemate.
func (p *Position) IsStalemate() bool {
	return !p.InCheck() && !p.HasLegalMoves()
}

// IsInsufficientMaterial returns true if neither side can checkmate.
func (p *Position) IsInsufficientMaterial() bool {
	if p.Pieces[Pawn]|p.Pieces[Rook]|p.Pieces[Queen] != 0 {
		return false
	}

	whiteMinors := ((p.Pieces[Knight] | p.Pieces[Bishop]) & p.Sides[White]).PopCount()
	blackMinors := ((p.Pieces[Knight] | p.Pieces[Bishop]) & p.Sides[Black]).PopCount()

	// K vs K, K+minor vs K
	return whiteMinors+blackMinors <= 1
}
