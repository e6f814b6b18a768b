package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/klauspost/compress/zstd"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("storage: not found")

// Storage keys
const (
	keyPreferences    = "preferences"
	analysisKeyPrefix = "analysis/"
)

// Preferences are the engine settings kept between runs.
type Preferences struct {
	DefaultDepth    int           `json:"default_depth"`
	DefaultMoveTime time.Duration `json:"default_move_time"`
	Evaluation      string        `json:"evaluation"`
	SaveAnalysis    bool          `json:"save_analysis"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// DefaultPreferences returns the preferences used before anything is saved.
func DefaultPreferences() *Preferences {
	return &Preferences{
		DefaultDepth:    6,
		DefaultMoveTime: 0,
		Evaluation:      "psqt",
		SaveAnalysis:    false,
	}
}

// AnalysisRecord is the result of one finished search.
type AnalysisRecord struct {
	Hash      uint64        `json:"hash"`
	FEN       string        `json:"fen"`
	Depth     int           `json:"depth"`
	Score     int           `json:"score"`
	BestMove  string        `json:"best_move"`
	PV        []string      `json:"pv"`
	SAN       []string      `json:"san,omitempty"`
	Nodes     uint64        `json:"nodes"`
	Elapsed   time.Duration `json:"elapsed"`
	CreatedAt time.Time     `json:"created_at"`
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db  *badger.DB
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// Open opens (or creates) the database rooted at dataDir.
func Open(dataDir string) (*Storage, error) {
	dbDir, err := GetDatabaseDir(dataDir)
	if err != nil {
		return nil, err
	}

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", dbDir, err)
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		db.Close()
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		db.Close()
		return nil, err
	}

	return &Storage{db: db, enc: enc, dec: dec}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.dec != nil {
		s.dec.Close()
	}
	if s.enc != nil {
		s.enc.Close()
	}
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SavePreferences saves engine preferences
func (s *Storage) SavePreferences(prefs *Preferences) error {
	prefs.UpdatedAt = time.Now()

	data, err := json.Marshal(prefs)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPreferences), data)
	})
}

// LoadPreferences loads engine preferences, returns defaults if not found
func (s *Storage) LoadPreferences() (*Preferences, error) {
	prefs := DefaultPreferences()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPreferences))
		if err == badger.ErrKeyNotFound {
			return nil // Use defaults
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, prefs)
		})
	})

	return prefs, err
}

func analysisKey(hash uint64) []byte {
	return []byte(analysisKeyPrefix + fmt.Sprintf("%016x", hash))
}

// SaveAnalysis stores rec under its position hash, replacing any earlier
// record for the same position.
func (s *Storage) SaveAnalysis(rec AnalysisRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	compressed := s.enc.EncodeAll(data, nil)

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(analysisKey(rec.Hash), compressed)
	})
}

// LoadAnalysis returns the record stored for a position hash.
func (s *Storage) LoadAnalysis(hash uint64) (*AnalysisRecord, error) {
	var rec AnalysisRecord

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(analysisKey(hash))
		if err == badger.ErrKeyNotFound {
			return fmt.Errorf("analysis %016x: %w", hash, ErrNotFound)
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return s.decodeAnalysis(val, &rec)
		})
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListAnalyses returns up to limit records, newest first. A limit of 0
// returns everything.
func (s *Storage) ListAnalyses(limit int) ([]AnalysisRecord, error) {
	var recs []AnalysisRecord

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(analysisKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var rec AnalysisRecord
			err := it.Item().Value(func(val []byte) error {
				return s.decodeAnalysis(val, &rec)
			})
			if err != nil {
				return err
			}
			recs = append(recs, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(recs, func(i, j int) bool {
		return recs[i].CreatedAt.After(recs[j].CreatedAt)
	})
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}

// DeleteAnalysis removes the record for a position hash.
func (s *Storage) DeleteAnalysis(hash uint64) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(analysisKey(hash))
	})
}

func (s *Storage) decodeAnalysis(val []byte, rec *AnalysisRecord) error {
	data, err := s.dec.DecodeAll(val, nil)
	if err != nil {
		return fmt.Errorf("decompress analysis: %w", err)
	}
	return json.Unmarshal(data, rec)
}

// ParseHash parses a hash as printed in analysis keys.
func ParseHash(s string) (uint64, error) {
	return strconv.ParseUint(s, 16, 64)
}
