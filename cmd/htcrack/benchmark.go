package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lth/htcrack/internal/charset"
	"github.com/lth/htcrack/internal/cracker"
)

func newBenchmarkCmd() *cobra.Command {
	var duration time.Duration

	cmd := &cobra.Command{
		Use:   "benchmark",
		Short: "Measure candidate hashing throughput",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cs, err := charset.New(charset.Resolve(cfg.Charset))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Benchmarking with %d workers for %s...\n", cfg.Workers, duration)

			ctx, cancel := context.WithTimeout(context.Background(), duration)
			defer cancel()

			c := cracker.New(nil, cfg.Workers)
			res, err := c.Bruteforce(ctx, cracker.BruteforceConfig{
				Charset:   cs,
				MinLength: cfg.MaxLength,
				MaxLength: cfg.MaxLength,
			})
			if err != nil && !errors.Is(err, context.DeadlineExceeded) {
				return err
			}

			rate := float64(res.Attempts) / res.Duration.Seconds()
			numbers.Fprintf(out, "CPU Mode: %.0f hashes/second\n", rate)
			return nil
		},
	}
	cmd.Flags().DurationVar(&duration, "duration", 10*time.Second, "how long to run")
	return cmd
}
