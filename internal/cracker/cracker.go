// Package cracker matches candidate digests against a credential snapshot,
// either by hashing the candidate space live or by scanning a prebuilt
// table.
package cracker

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lth/htcrack/internal/charset"
	"github.com/lth/htcrack/internal/digest"
	"github.com/lth/htcrack/internal/parallel"
)

// progressEvery is how many candidates a worker handles between progress
// reports and cancellation checks.
const progressEvery = 1 << 16

type Match struct {
	User string
	// Password is the candidate as text, or charset.NotUTF8.
	Password  string
	Candidate []byte
	Index     uint64
	Elapsed   time.Duration
}

type Result struct {
	Matches  []Match
	Attempts uint64
	Duration time.Duration
}

type Progress struct {
	Attempts    uint64
	Total       uint64
	Rate        float64
	ElapsedTime time.Duration
}

// Cracker holds an immutable digest index built from a credential
// snapshot. Searches on one Cracker must not run concurrently.
type Cracker struct {
	index   digest.Index
	workers int

	attempts  uint64
	total     uint64
	startTime time.Time

	progressCb func(Progress)
	progressMu sync.Mutex

	matchCb func(Match)
	matches []Match
	mu      sync.Mutex
}

// New indexes records, a snapshot the caller must not mutate during a
// search.
func New(records map[string]digest.Digest, workers int) *Cracker {
	return &Cracker{
		index:   digest.NewIndex(records),
		workers: parallel.Workers(workers),
	}
}

func (c *Cracker) SetProgressCallback(cb func(Progress)) {
	c.progressCb = cb
}

// SetMatchCallback registers cb to be called for every match as it is
// found. Calls are serialized.
func (c *Cracker) SetMatchCallback(cb func(Match)) {
	c.matchCb = cb
}

func (c *Cracker) Workers() int {
	return c.workers
}

func (c *Cracker) Attempts() uint64 {
	return atomic.LoadUint64(&c.attempts)
}

// Check returns the users whose stored digest is the digest of candidate.
func (c *Cracker) Check(candidate []byte) []string {
	return c.index.Lookup(digest.Sum(candidate))
}

func (c *Cracker) start(total uint64) {
	c.startTime = time.Now()
	c.total = total
	atomic.StoreUint64(&c.attempts, 0)
	c.mu.Lock()
	c.matches = nil
	c.mu.Unlock()
}

func (c *Cracker) result() Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Result{
		Matches:  c.matches,
		Attempts: atomic.LoadUint64(&c.attempts),
		Duration: time.Since(c.startTime),
	}
}

// found records one match per user sharing the matched digest. candidate
// is copied since workers reuse their buffers.
func (c *Cracker) found(users []string, candidate []byte, index uint64) {
	elapsed := time.Since(c.startTime)
	cand := append([]byte(nil), candidate...)

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, u := range users {
		m := Match{
			User:      u,
			Password:  charset.Display(cand),
			Candidate: cand,
			Index:     index,
			Elapsed:   elapsed,
		}
		c.matches = append(c.matches, m)
		if c.matchCb != nil {
			c.matchCb(m)
		}
	}
}

func (c *Cracker) addAttempts(n uint64) {
	if n == 0 {
		return
	}
	attempts := atomic.AddUint64(&c.attempts, n)
	c.reportProgress(attempts)
}

func (c *Cracker) reportProgress(attempts uint64) {
	if c.progressCb == nil {
		return
	}

	elapsed := time.Since(c.startTime)
	rate := float64(attempts) / elapsed.Seconds()

	c.progressMu.Lock()
	defer c.progressMu.Unlock()
	c.progressCb(Progress{
		Attempts:    attempts,
		Total:       c.total,
		Rate:        rate,
		ElapsedTime: elapsed,
	})
}
