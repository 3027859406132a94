package xiangqi

// RepetitionLimit is the number of occurrences of one position, same side to
// move, that draws the game.
const RepetitionLimit = 3

// Snapshot is one recorded board state. Mover is the side whose move produced it,
// NoColor for the starting position. Action is what that move threatened.
type Snapshot struct {
	Board  Board
	Mover  Color
	ToMove Color
	Hash   uint64
	Action Action
}

// History is append-only; entry 0 is the starting position.
type History struct {
	entries []Snapshot
}

func NewHistory(start *Position) *History {
	h := &History{}
	h.entries = append(h.entries, snapshotOf(start, NoColor))
	return h
}

// snapshotOf hashes the board itself; p.Hash may be stale if the board was
// edited after the position was built.
func snapshotOf(p *Position, mover Color) Snapshot {
	return Snapshot{
		Board:  p.Board,
		Mover:  mover,
		ToMove: p.SideToMove,
		Hash:   p.CalculateHash(),
		Action: Action{Kind: ActionOther, Target: NoSquare},
	}
}

// Record appends the position reached by mover's move without classifying the
// move; it never counts towards a perpetual check or chase.
func (h *History) Record(p *Position, mover Color) {
	h.entries = append(h.entries, snapshotOf(p, mover))
}

// RecordMove appends after, reached by playing m in before, together with what
// m threatened.
func (h *History) RecordMove(before *Position, m Move, after *Position) {
	s := snapshotOf(after, before.SideToMove)
	s.Action = ClassifyMove(&before.Board, m)
	h.entries = append(h.entries, s)
}

func (h *History) Len() int {
	if h == nil {
		return 0
	}
	return len(h.entries)
}

func (h *History) At(i int) Snapshot { return h.entries[i] }

// Occurrences counts recorded snapshots equal to p: same board, same side to
// move. The hash only narrows the candidates.
func (h *History) Occurrences(p *Position) int {
	if h == nil {
		return 0
	}
	key := p.CalculateHash()
	n := 0
	for i := range h.entries {
		e := &h.entries[i]
		if e.Hash != key || e.ToMove != p.SideToMove {
			continue
		}
		if e.Board == p.Board {
			n++
		}
	}
	return n
}

// IsRepetition reports a threefold repetition of p. Histories too short to hold
// RepetitionLimit entries never repeat.
func (h *History) IsRepetition(p *Position) bool {
	if h.Len() < RepetitionLimit {
		return false
	}
	return h.Occurrences(p) >= RepetitionLimit
}
