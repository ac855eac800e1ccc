package main

// Per-day writing statistics persisted in a bbolt database inside the notes
// directory. Each day is one key ("2006-01-02") holding a small YAML record.

import (
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
	"gopkg.in/yaml.v3"
)

const (
	statsFileName = ".river-stats.db"
	bucketDays    = "days"
)

// DailyStats is the record kept for one calendar day.
type DailyStats struct {
	TypingSeconds int64 `yaml:"typing_seconds"`
	WordCount     int   `yaml:"word_count"`
}

// StatsStore reads and writes DailyStats records.
type StatsStore struct {
	db *bolt.DB
}

// ErrStatsLocked is returned when another river instance holds the database.
var ErrStatsLocked = errors.New("stats database is locked by another process")

// OpenStatsStore opens (creating if needed) the database at path.
func OpenStatsStore(path string) (*StatsStore, error) {
	db, err := bolt.Open(path, 0644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		if errors.Is(err, bolt.ErrTimeout) {
			return nil, ErrStatsLocked
		}
		return nil, fmt.Errorf("open stats %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketDays))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize stats: %w", err)
	}
	return &StatsStore{db: db}, nil
}

// Close releases the database file.
func (s *StatsStore) Close() error {
	return s.db.Close()
}

// Get returns the record for day. Missing and malformed records both come
// back as a zero record; ok reports whether a usable record was found.
func (s *StatsStore) Get(day string) (stats DailyStats, ok bool, err error) {
	err = s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketDays)).Get([]byte(day))
		if v == nil {
			return nil
		}
		var rec DailyStats
		if yaml.Unmarshal(v, &rec) != nil || rec.TypingSeconds < 0 || rec.WordCount < 0 {
			return nil
		}
		stats, ok = rec, true
		return nil
	})
	return stats, ok, err
}

// Put stores the record for day, replacing any previous one.
func (s *StatsStore) Put(day string, stats DailyStats) error {
	data, err := yaml.Marshal(stats)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketDays)).Put([]byte(day), data)
	})
}

// Range returns the records of the days count days ending at (and including)
// end, newest first. Days without a usable record are zero.
func (s *StatsStore) Range(end time.Time, days int) ([]DayRecord, error) {
	out := make([]DayRecord, 0, days)
	for i := 0; i < days; i++ {
		day := end.AddDate(0, 0, -i).Format(dayLayout)
		stats, _, err := s.Get(day)
		if err != nil {
			return nil, err
		}
		out = append(out, DayRecord{Day: day, DailyStats: stats})
	}
	return out, nil
}

// DayRecord pairs a day key with its stats.
type DayRecord struct {
	Day string
	DailyStats
}
