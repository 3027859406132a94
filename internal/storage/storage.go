// Package storage keeps finished-game results and running totals in BadgerDB.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"xiangqi/internal/xiangqi"
)

// Storage keys
const (
	keyStats     = "stats"
	resultPrefix = "result/"
)

var ErrNotFound = errors.New("result not found")

// Result is the outcome of one finished game.
type Result struct {
	GameID   string    `json:"game_id"`
	State    string    `json:"state"`
	Winner   string    `json:"winner"` // red / black / none
	Plies    int       `json:"plies"`
	FinalFEN string    `json:"final_fen"`
	Finished time.Time `json:"finished"`
}

// NewResult builds the stored form of a terminal verdict.
func NewResult(id string, v xiangqi.Verdict, plies int, final *xiangqi.Position) Result {
	r := Result{
		GameID:   id,
		State:    v.State.String(),
		Winner:   v.Winner.String(),
		Plies:    plies,
		Finished: time.Now().UTC(),
	}
	if final != nil {
		r.FinalFEN = final.Encode()
	}
	return r
}

// Stats 累计战绩
type Stats struct {
	Games     int            `json:"games"`
	RedWins   int            `json:"red_wins"`
	BlackWins int            `json:"black_wins"`
	Draws     int            `json:"draws"`
	ByState   map[string]int `json:"by_state"`
}

func NewStats() *Stats {
	return &Stats{ByState: make(map[string]int)}
}

func (s *Stats) add(r Result) {
	s.Games++
	switch r.Winner {
	case xiangqi.Red.String():
		s.RedWins++
	case xiangqi.Black.String():
		s.BlackWins++
	default:
		s.Draws++
	}
	s.ByState[r.State]++
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// Open opens (or creates) the database in dir.
func Open(dir string) (*Storage, error) {
	return open(badger.DefaultOptions(dir))
}

// OpenInMemory is for tests and for running without a data directory.
func OpenInMemory() (*Storage, error) {
	return open(badger.DefaultOptions("").WithInMemory(true))
}

func open(opts badger.Options) (*Storage, error) {
	opts.Logger = nil // Disable logging
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordResult stores r and folds it into the totals in one transaction. A game
// id is only counted once; recording it again reports false.
func (s *Storage) RecordResult(r Result) (bool, error) {
	if r.GameID == "" {
		return false, errors.New("record result: empty game id")
	}
	data, err := json.Marshal(r)
	if err != nil {
		return false, err
	}

	added := false
	err = s.db.Update(func(txn *badger.Txn) error {
		key := []byte(resultPrefix + r.GameID)
		_, err := txn.Get(key)
		if err == nil {
			return nil // 已记录过
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		stats, err := loadStats(txn)
		if err != nil {
			return err
		}
		stats.add(r)
		statsData, err := json.Marshal(stats)
		if err != nil {
			return err
		}
		if err := txn.Set(key, data); err != nil {
			return err
		}
		if err := txn.Set([]byte(keyStats), statsData); err != nil {
			return err
		}
		added = true
		return nil
	})
	return added, err
}

// Result loads the stored result for a game.
func (s *Storage) Result(id string) (Result, error) {
	var r Result
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(resultPrefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &r)
		})
	})
	return r, err
}

// Results returns every stored result in key order.
func (s *Storage) Results() ([]Result, error) {
	var out []Result
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(resultPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			var r Result
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &r)
			}); err != nil {
				return err
			}
			out = append(out, r)
		}
		return nil
	})
	return out, err
}

// Stats loads the totals, empty if nothing was recorded yet.
func (s *Storage) Stats() (*Stats, error) {
	var stats *Stats
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		stats, err = loadStats(txn)
		return err
	})
	return stats, err
}

func loadStats(txn *badger.Txn) (*Stats, error) {
	stats := NewStats()
	item, err := txn.Get([]byte(keyStats))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return stats, nil
	}
	if err != nil {
		return nil, err
	}
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, stats)
	})
	if stats.ByState == nil {
		stats.ByState = make(map[string]int)
	}
	return stats, err
}
