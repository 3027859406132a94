package engine

import (
	"context"
	"sort"

	"xiangqi/internal/xiangqi"
)

const (
	vcfDepthCap         = 15
	vcfNodeBudgetBase   = 20000
	vcfNodeBudgetPerPly = 4000
)

const (
	vcfModeAttack uint64 = 0xA5A5A5A5A5A5A5A5
	vcfModeDefend uint64 = 0x5A5A5A5A5A5A5A5A
)

type vcfTTEntry struct {
	Depth  int
	Result bool
	Move   xiangqi.Move // 记录最佳走法用于排序
}

type vcfContext struct {
	ctx        context.Context
	tt         map[uint64]vcfTTEntry
	inPath     map[uint64]bool
	nodes      int
	nodeBudget int
}

// VCFResult 连将搜索结果
type VCFResult struct {
	CanWin bool
	Move   xiangqi.Move
	Plies  int // 到将死为止的半回合数
	Nodes  int
}

// VCFSearch looks for a forced mate in which every attacking move gives check.
// maxDepth counts plies of the whole line; it is capped and the search also
// stops when its node budget or ctx runs out, reporting no win.
func VCFSearch(ctx context.Context, pos *xiangqi.Position, maxDepth int) VCFResult {
	if maxDepth > vcfDepthCap {
		maxDepth = vcfDepthCap
	}
	c := &vcfContext{
		ctx:        ctx,
		tt:         make(map[uint64]vcfTTEntry, 1<<12),
		inPath:     make(map[uint64]bool, 1<<6),
		nodeBudget: vcfNodeBudgetBase + maxDepth*vcfNodeBudgetPerPly,
	}

	// 迭代加深：进攻方走奇数层
	for d := 1; d <= maxDepth; d += 2 {
		if mv, ok := c.rootSearch(pos, d); ok {
			return VCFResult{CanWin: true, Move: mv, Plies: d, Nodes: c.nodes}
		}
		if c.exhausted() {
			break
		}
	}
	return VCFResult{Nodes: c.nodes}
}

func (c *vcfContext) rootSearch(pos *xiangqi.Position, depth int) (xiangqi.Move, bool) {
	for _, mv := range c.checkingMoves(pos) {
		next, ok := pos.ApplyMove(mv)
		if !ok {
			continue
		}
		if !c.defenderCanEscape(next, depth-1) {
			return mv, true
		}
	}
	return xiangqi.Move{}, false
}

// checkingMoves 只留下将军的着法，按启发式排序：车 > 炮 > 马 > 兵
func (c *vcfContext) checkingMoves(pos *xiangqi.Position) []xiangqi.Move {
	key := pos.Hash ^ vcfModeAttack
	ttMove := xiangqi.Move{From: xiangqi.NoSquare}
	if entry, ok := c.tt[key]; ok {
		ttMove = entry.Move
	}

	type scored struct {
		mv    xiangqi.Move
		score int
	}
	var list []scored
	for _, mv := range pos.LegalMoves() {
		next, ok := pos.ApplyMove(mv)
		if !ok || !next.Board.IsInCheck(next.SideToMove) {
			continue
		}
		s := 0
		switch {
		case mv.From == ttMove.From && mv.To == ttMove.To:
			s = 1000
		default:
			// 吃子将军优先
			if mv.IsCapture() {
				s = 100 + int(mv.Captured.Type())
			}
			switch mv.Piece.Type() {
			case xiangqi.Chariot:
				s += 80
			case xiangqi.Cannon:
				s += 60
			case xiangqi.Horse:
				s += 40
			case xiangqi.Pawn:
				s += 20
			}
		}
		list = append(list, scored{mv, s})
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].score > list[j].score })

	moves := make([]xiangqi.Move, len(list))
	for i := range list {
		moves[i] = list[i].mv
	}
	return moves
}

func (c *vcfContext) attackerCanForce(pos *xiangqi.Position, depth int) bool {
	if depth <= 0 || c.exhausted() {
		return false
	}
	key := pos.Hash ^ vcfModeAttack
	if c.inPath[key] {
		return false // 长将不算
	}
	if entry, ok := c.tt[key]; ok && entry.Depth >= depth {
		return entry.Result
	}
	c.inPath[key] = true
	defer delete(c.inPath, key)

	result := false
	var bestMove xiangqi.Move
	for _, mv := range c.checkingMoves(pos) {
		next, ok := pos.ApplyMove(mv)
		if !ok {
			continue
		}
		if !c.defenderCanEscape(next, depth-1) {
			result, bestMove = true, mv
			break
		}
	}
	c.tt[key] = vcfTTEntry{Depth: depth, Result: result, Move: bestMove}
	return result
}

// defenderCanEscape is called right after a check. Having no legal move there
// is mate.
func (c *vcfContext) defenderCanEscape(pos *xiangqi.Position, depth int) bool {
	moves := pos.LegalMoves()
	if len(moves) == 0 {
		return false
	}
	if depth <= 0 || c.exhausted() {
		return true
	}
	key := pos.Hash ^ vcfModeDefend
	if c.inPath[key] {
		return true
	}
	if entry, ok := c.tt[key]; ok && entry.Depth >= depth {
		return entry.Result
	}
	c.inPath[key] = true
	defer delete(c.inPath, key)

	result := false
	var bestMove xiangqi.Move
	for _, mv := range moves {
		next, ok := pos.ApplyMove(mv)
		if !ok {
			continue
		}
		// 防守方只要找到一个不被连将杀的走法就算逃脱
		if !c.attackerCanForce(next, depth-1) {
			result, bestMove = true, mv
			break
		}
	}
	c.tt[key] = vcfTTEntry{Depth: depth, Result: result, Move: bestMove}
	return result
}

func (c *vcfContext) exhausted() bool {
	c.nodes++
	return c.nodes > c.nodeBudget || c.ctx.Err() != nil
}
