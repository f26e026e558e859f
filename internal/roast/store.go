package roast

import "sync"

// Record последний успешный результат.
type Record struct {
	Name  string `json:"name"`
	Roast string `json:"roast"`
}

// LatestStore ячейка на одну запись. Каждый Set перезаписывает предыдущее значение.
type LatestStore interface {
	Set(rec Record)
	// Get возвращает false, пока не было ни одного Set.
	Get() (Record, bool)
}

// MemoryLatestStore потокобезопасная in-memory ячейка; при конкурентных Set побеждает последний.
type MemoryLatestStore struct {
	mu  sync.RWMutex
	rec Record
	set bool
}

func NewMemoryLatestStore() *MemoryLatestStore {
	return &MemoryLatestStore{}
}

func (s *MemoryLatestStore) Set(rec Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec = rec
	s.set = true
}

func (s *MemoryLatestStore) Get() (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rec, s.set
}
