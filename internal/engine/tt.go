package engine

import "xiangqi/internal/xiangqi"

const ttCap = 1 << 20

// 简单 TT 条目，只用来给根节点排序
type ttEntry struct {
	Depth int
	Score int
	Move  xiangqi.Move
}

func (e *Engine) storeTT(key uint64, depth int, score int, mv xiangqi.Move) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.tt) > ttCap {
		e.tt = make(map[uint64]ttEntry, 1<<14)
	}
	old, ok := e.tt[key]
	if !ok || depth >= old.Depth {
		e.tt[key] = ttEntry{Depth: depth, Score: score, Move: mv}
	}
}

func (e *Engine) probeTT(key uint64) (ttEntry, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	entry, ok := e.tt[key]
	return entry, ok
}

// Nodes returns the number of positions searched since the engine was created.
func (e *Engine) Nodes() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.nodes
}
