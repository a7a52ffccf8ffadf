package printer

import (
	"sync"
	"time"
)

// Stats accumulates the search counters of one run. It is safe for
// concurrent use: the walker adds each worker's totals as files finish, so
// every mutating method takes an internal lock.
type Stats struct {
	mu sync.Mutex

	elapsed            time.Duration
	searches           uint64
	searchesWithMatch  uint64
	bytesSearched      uint64
	bytesPrinted       uint64
	matchedLines       uint64
	matches            uint64
}

func NewStats() *Stats { return &Stats{} }

func (s *Stats) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed
}

func (s *Stats) Searches() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searches
}

func (s *Stats) SearchesWithMatch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchesWithMatch
}

func (s *Stats) BytesSearched() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bytesSearched
}

func (s *Stats) BytesPrinted() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bytesPrinted
}

func (s *Stats) MatchedLines() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.matchedLines
}

func (s *Stats) Matches() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.matches
}

func (s *Stats) AddElapsed(d time.Duration) {
	s.mu.Lock()
	s.elapsed += d
	s.mu.Unlock()
}

func (s *Stats) AddSearches(n uint64) {
	s.mu.Lock()
	s.searches += n
	s.mu.Unlock()
}

func (s *Stats) AddSearchesWithMatch(n uint64) {
	s.mu.Lock()
	s.searchesWithMatch += n
	s.mu.Unlock()
}

func (s *Stats) AddBytesSearched(n uint64) {
	s.mu.Lock()
	s.bytesSearched += n
	s.mu.Unlock()
}

func (s *Stats) AddBytesPrinted(n uint64) {
	s.mu.Lock()
	s.bytesPrinted += n
	s.mu.Unlock()
}

func (s *Stats) AddMatchedLines(n uint64) {
	s.mu.Lock()
	s.matchedLines += n
	s.mu.Unlock()
}

func (s *Stats) AddMatches(n uint64) {
	s.mu.Lock()
	s.matches += n
	s.mu.Unlock()
}
