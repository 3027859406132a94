package engine

import (
	"context"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"xiangqi/internal/xiangqi"
)

const (
	// 一个足够大的值，当成正负无穷
	scoreInf  = 1_000_000_000
	mateScore = 10_000_000

	DefaultDepth = 2
)

// 搜索配置
type SearchConfig struct {
	MaxDepth  int           // 最大搜索深度（ply）
	TimeLimit time.Duration // 搜索时间上限（0 表示不限制）
	VCFDepth  int           // 连将杀搜索深度，0 关闭
}

// 搜索结果
type SearchResult struct {
	BestMove xiangqi.Move
	Score    int // 红方视角：正数红方好
	Depth    int // 完整搜完的深度
	Nodes    int64
	TimeUsed time.Duration
}

// Search picks a move for pos.SideToMove. plies is the number of half-moves
// already played and only feeds the phase used by Evaluate. When the time limit
// runs out the best move of the last finished depth is returned; cancelling ctx
// aborts with ctx.Err().
func (e *Engine) Search(ctx context.Context, pos *xiangqi.Position, plies int) (SearchResult, error) {
	start := time.Now()
	moves := pos.LegalMoves()
	if len(moves) == 0 {
		return SearchResult{}, ErrNoMoves
	}

	// 一步杀：不用再搜
	for _, mv := range moves {
		child, ok := pos.ApplyMove(mv)
		if !ok {
			continue
		}
		if xiangqi.Evaluate(child, nil).State == xiangqi.Checkmate {
			return SearchResult{
				BestMove: mv,
				Score:    signed(pos.SideToMove, mateScore),
				Depth:    1,
				Nodes:    int64(len(moves)),
				TimeUsed: time.Since(start),
			}, nil
		}
	}

	parent := ctx
	if e.cfg.TimeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.TimeLimit)
		defer cancel()
	}

	if e.cfg.VCFDepth > 0 {
		vcf := VCFSearch(ctx, pos, e.cfg.VCFDepth)
		if err := parent.Err(); err != nil {
			return SearchResult{}, err
		}
		if vcf.CanWin {
			return SearchResult{
				BestMove: vcf.Move,
				Score:    signed(pos.SideToMove, mateScore-vcf.Plies),
				Depth:    vcf.Plies,
				Nodes:    int64(vcf.Nodes),
				TimeUsed: time.Since(start),
			}, nil
		}
	}

	res := SearchResult{BestMove: moves[0], Score: Evaluate(pos, plies)}
	for depth := 1; depth <= e.cfg.MaxDepth; depth++ {
		score, mv, nodes, ok := e.searchRoot(ctx, pos, moves, depth, plies)
		res.Nodes += nodes
		if !ok {
			if err := parent.Err(); err != nil {
				return SearchResult{}, err
			}
			break // 超时：用上一层的结果
		}
		res.BestMove, res.Score, res.Depth = mv, score, depth
	}
	res.TimeUsed = time.Since(start)

	e.mu.Lock()
	e.nodes += res.Nodes
	e.mu.Unlock()
	return res, nil
}

// searchRoot 根节点：每个着法一个 goroutine，各自用局部 TT。结果按着法顺序比较，
// 同分取先生成的，保证同一局面结果确定。
func (e *Engine) searchRoot(ctx context.Context, pos *xiangqi.Position, moves []xiangqi.Move, depth, plies int) (int, xiangqi.Move, int64, bool) {
	ordered := append([]xiangqi.Move(nil), moves...)
	orderCapturesFirst(ordered)
	if entry, ok := e.probeTT(pos.Hash); ok {
		moveToFront(ordered, entry.Move)
	}

	scores := make([]int, len(ordered))
	nodes := make([]int64, len(ordered))
	aborted := make([]bool, len(ordered))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, mv := range ordered {
		i := i
		child, ok := pos.ApplyMove(mv)
		if !ok {
			continue
		}
		g.Go(func() error {
			s := &searcher{ctx: ctx, plies: plies, tt: make(map[uint64]ttEntry, 1<<10)}
			scores[i] = s.alphaBeta(child, depth-1, 1, -scoreInf, scoreInf)
			nodes[i] = s.nodes
			aborted[i] = s.aborted
			return nil
		})
	}
	_ = g.Wait()

	var total int64
	for _, n := range nodes {
		total += n
	}
	for _, a := range aborted {
		if a {
			return 0, xiangqi.Move{}, total, false
		}
	}

	maximize := pos.SideToMove == xiangqi.Red
	best := 0
	for i := 1; i < len(ordered); i++ {
		if (maximize && scores[i] > scores[best]) || (!maximize && scores[i] < scores[best]) {
			best = i
		}
	}
	e.storeTT(pos.Hash, depth, scores[best], ordered[best])
	return scores[best], ordered[best], total, true
}

// searcher 每个根着法独占一个，不需要加锁
type searcher struct {
	ctx     context.Context
	plies   int
	tt      map[uint64]ttEntry
	nodes   int64
	aborted bool
}

// 内部递归：标准 alpha-beta，红方取极大，黑方取极小
func (s *searcher) alphaBeta(pos *xiangqi.Position, depth, ply, alpha, beta int) int {
	s.nodes++
	if s.aborted {
		return 0
	}
	if depth <= 0 {
		return Evaluate(pos, s.plies+ply)
	}
	if s.ctx.Err() != nil {
		s.aborted = true
		return 0
	}

	moves := pos.LegalMoves()
	if len(moves) == 0 {
		if pos.Board.IsInCheck(pos.SideToMove) {
			return signed(pos.SideToMove, -(mateScore - ply))
		}
		return 0 // 困毙按和棋算
	}
	orderCapturesFirst(moves)
	if entry, ok := s.tt[pos.Hash]; ok {
		moveToFront(moves, entry.Move)
	}

	maximize := pos.SideToMove == xiangqi.Red
	best := scoreInf
	if maximize {
		best = -scoreInf
	}
	var bestMove xiangqi.Move
	for _, mv := range moves {
		child, ok := pos.ApplyMove(mv)
		if !ok {
			continue
		}
		score := s.alphaBeta(child, depth-1, ply+1, alpha, beta)
		if s.aborted {
			return 0
		}
		if maximize {
			if score > best {
				best, bestMove = score, mv
			}
			alpha = max(alpha, best)
		} else {
			if score < best {
				best, bestMove = score, mv
			}
			beta = min(beta, best)
		}
		if alpha >= beta {
			break
		}
	}
	s.tt[pos.Hash] = ttEntry{Depth: depth, Score: best, Move: bestMove}
	return best
}

// 吃子招提前，吃大子优先；稳定排序保持生成顺序
func orderCapturesFirst(moves []xiangqi.Move) {
	sort.SliceStable(moves, func(i, j int) bool {
		return captureValue(moves[i]) > captureValue(moves[j])
	})
}

func captureValue(mv xiangqi.Move) int {
	if !mv.IsCapture() {
		return 0
	}
	return mv.Captured.Value(xiangqi.Midgame, mv.To)
}

func moveToFront(moves []xiangqi.Move, mv xiangqi.Move) {
	for i := range moves {
		if moves[i].From == mv.From && moves[i].To == mv.To {
			found := moves[i]
			copy(moves[1:i+1], moves[:i])
			moves[0] = found
			return
		}
	}
}

func signed(c xiangqi.Color, v int) int {
	if c == xiangqi.Black {
		return -v
	}
	return v
}
