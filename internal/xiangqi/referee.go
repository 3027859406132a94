package xiangqi

// ActionKind 一步棋的性质：将军、捉子或其它。长将、长捉判负用。
type ActionKind int8

const (
	ActionOther ActionKind = iota
	ActionCheck
	ActionChaseUnprotected // 捉无根子
	ActionChaseProtected   // 捉有根子
)

var actionKindNames = [...]string{
	ActionOther:            "other",
	ActionCheck:            "check",
	ActionChaseUnprotected: "chase_unprotected",
	ActionChaseProtected:   "chase_protected",
}

func (k ActionKind) String() string {
	if k < 0 || int(k) >= len(actionKindNames) {
		return "unknown"
	}
	return actionKindNames[k]
}

// Action is what a move threatens once it has been played. Target is the
// checked General or the chased piece's square, NoSquare for ActionOther.
type Action struct {
	Kind   ActionKind
	Piece  Piece  // 走动的子
	From   Square // 走动前的位置
	Target Square
	Victim Piece // 被捉的子；将军时为对方将帅
}

// IsChase reports either kind of chase.
func (a Action) IsChase() bool {
	return a.Kind == ActionChaseUnprotected || a.Kind == ActionChaseProtected
}

// Restricted reports whether repeating a may lose the game. Checks always are;
// chases are, unless made by a General or a Pawn.
func (a Action) Restricted() bool {
	switch {
	case a.Kind == ActionCheck:
		return true
	case a.IsChase():
		pt := a.Piece.Type()
		return pt != General && pt != Pawn
	}
	return false
}

// sameAs compares the parts that make two actions "the same" for repetition: a
// check is identified by the General it hits, a chase also by the chaser and
// where it came from.
func (a Action) sameAs(o Action) bool {
	if a.Kind != o.Kind || a.Target != o.Target {
		return false
	}
	if a.Kind == ActionCheck {
		return true
	}
	return a.Victim == o.Victim && a.Piece == o.Piece && a.From == o.From
}

// ClassifyMove plays m on a copy of before and reports what it threatens. A check
// wins over a chase; among several chased pieces the first in generation order is
// taken. Generals are never chased.
func ClassifyMove(before *Board, m Move) Action {
	mustBeOnBoard(m.From)
	mustBeOnBoard(m.To)
	pc := before.Squares[m.From]
	act := Action{Kind: ActionOther, Piece: pc, From: m.From, Target: NoSquare}
	if pc == NoPiece {
		return act
	}

	after := *before
	after.makeMove(Move{From: m.From, To: m.To, Piece: pc, Captured: after.Squares[m.To]})
	side := pc.Color()
	opp := side.Opponent()

	if g, ok := after.FindGeneral(opp); ok && after.IsSquareAttacked(g, side) {
		act.Kind, act.Target, act.Victim = ActionCheck, g, after.Squares[g]
		return act
	}

	var buf [32]Square
	tos := buf[:0]
	after.targets(m.To, false, &tos)
	for _, to := range tos {
		v := after.Squares[to]
		if v == NoPiece || v.Color() != opp || v.Type() == General {
			continue
		}
		act.Target, act.Victim = to, v
		act.Kind = ActionChaseUnprotected
		if after.IsSquareProtected(to) {
			act.Kind = ActionChaseProtected
		}
		return act
	}
	return act
}

// IsSquareProtected reports whether the piece on sq could be recaptured by its
// own side if an enemy took it. The recapture must itself be legal. Empty
// squares and Generals are never protected.
func (b *Board) IsSquareProtected(sq Square) bool {
	mustBeOnBoard(sq)
	pc := b.Squares[sq]
	if pc == NoPiece || pc.Type() == General {
		return false
	}
	side := pc.Color()

	// 假设对方吃掉了这个子，看己方能不能吃回来
	scratch := *b
	scratch.Squares[sq] = MakePiece(side.Opponent(), pc.Type())

	var buf [32]Square
	for from := Square(0); from < NumSquares; from++ {
		p := scratch.Squares[from]
		if from == sq || p == NoPiece || p.Color() != side {
			continue
		}
		tos := buf[:0]
		scratch.targets(from, false, &tos)
		for _, to := range tos {
			if to != sq {
				continue
			}
			mv := Move{From: from, To: sq, Piece: p, Captured: scratch.Squares[sq]}
			if scratch.keepsGeneralSafe(mv, side) {
				return true
			}
		}
	}
	return false
}

// PerpetualOffender reports the side that just repeated a restricted action
// (长将 or 长捉) into p for the RepetitionLimit-th time. p must be the last
// recorded position; otherwise nothing is reported.
func (h *History) PerpetualOffender(p *Position) (Color, bool) {
	if h.Len() < RepetitionLimit {
		return NoColor, false
	}
	last := &h.entries[len(h.entries)-1]
	if last.Board != p.Board || last.ToMove != p.SideToMove || !last.Action.Restricted() {
		return NoColor, false
	}

	n := 0
	for i := range h.entries {
		e := &h.entries[i]
		if e.Hash != last.Hash || e.Mover != last.Mover || e.ToMove != last.ToMove {
			continue
		}
		if e.Board == last.Board && e.Action.sameAs(last.Action) {
			n++
		}
	}
	if n < RepetitionLimit {
		return NoColor, false
	}
	return last.Mover, true
}
