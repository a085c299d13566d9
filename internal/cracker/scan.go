package cracker

import (
	"context"

	"github.com/lth/htcrack/internal/parallel"
	"github.com/lth/htcrack/internal/table"
)

// ScanTable compares every digest in t against the snapshot. Candidates are
// decoded only for entries that match. Each matching (user, index) pair is
// reported exactly once, in no particular order. On error the result
// carries no matches; the match callback has already seen them.
func (c *Cracker) ScanTable(ctx context.Context, t *table.Table, chunkBytes int64) (Result, error) {
	c.start(t.Entries)

	cs := t.Header.Charset
	length := int(t.Header.Length)

	err := t.Windows(ctx, chunkBytes, func(first uint64, v table.DigestView) error {
		return parallel.Ranges(ctx, c.workers, uint64(v.Len()), func(lo, hi uint64) error {
			var buf []byte
			var pending uint64
			for j := lo; j < hi; j++ {
				if users := c.index.Lookup(v.At(int(j))); users != nil {
					if buf == nil {
						buf = make([]byte, length)
					}
					cs.Decode(first+j, buf)
					c.found(users, buf, first+j)
				}

				pending++
				if pending == progressEvery {
					c.addAttempts(pending)
					pending = 0
					if err := ctx.Err(); err != nil {
						return err
					}
				}
			}
			c.addAttempts(pending)
			return nil
		})
	})
	res := c.result()
	if err != nil {
		res.Matches = nil
	}
	return res, err
}
