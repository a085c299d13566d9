package cracker

import (
	"context"
	"fmt"

	"github.com/lth/htcrack/internal/charset"
	"github.com/lth/htcrack/internal/parallel"
)

type BruteforceConfig struct {
	Charset   charset.Charset
	MinLength int
	MaxLength int
}

func (cfg BruteforceConfig) validate() error {
	if len(cfg.Charset) == 0 {
		return charset.ErrEmpty
	}
	if cfg.MinLength < 1 || cfg.MaxLength < cfg.MinLength {
		return fmt.Errorf("invalid length range %d-%d", cfg.MinLength, cfg.MaxLength)
	}
	return nil
}

// Bruteforce hashes every candidate of each length in [MinLength,
// MaxLength], shortest first, and reports those whose digest is in the
// snapshot. Matches found before a cancellation are returned along with the
// context error.
func (c *Cracker) Bruteforce(ctx context.Context, cfg BruteforceConfig) (Result, error) {
	if err := cfg.validate(); err != nil {
		return Result{}, err
	}
	total, err := charset.EstimateCombinations(cfg.Charset, cfg.MinLength, cfg.MaxLength)
	if err != nil {
		return Result{}, err
	}

	c.start(total)
	for length := cfg.MinLength; length <= cfg.MaxLength; length++ {
		if err := c.searchLength(ctx, cfg.Charset, length); err != nil {
			return c.result(), err
		}
	}
	return c.result(), nil
}

func (c *Cracker) searchLength(ctx context.Context, cs charset.Charset, length int) error {
	space, err := cs.Space(length)
	if err != nil {
		return err
	}

	return parallel.Ranges(ctx, c.workers, space, func(lo, hi uint64) error {
		buf := make([]byte, length)
		var pending uint64
		for i := lo; i < hi; i++ {
			cs.Decode(i, buf)
			if users := c.Check(buf); users != nil {
				c.found(users, buf, i)
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
}
