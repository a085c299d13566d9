package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/p7r0x7/vainpath"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/lth/htcrack/internal/charset"
	"github.com/lth/htcrack/internal/cracker"
	"github.com/lth/htcrack/internal/digest"
	"github.com/lth/htcrack/internal/logging"
	"github.com/lth/htcrack/internal/store"
	"github.com/lth/htcrack/internal/table"
)

func newBruteforceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bruteforce",
		Short: "Try to brute-force user accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cs, err := charset.New(charset.Resolve(cfg.Charset))
			if err != nil {
				return err
			}
			bf := cracker.BruteforceConfig{Charset: cs, MinLength: cfg.MinLength, MaxLength: cfg.MaxLength}
			total, err := charset.EstimateCombinations(cs, bf.MinLength, bf.MaxLength)
			if err != nil {
				return err
			}

			records, err := loadRecords()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Charset: %s (%d characters), Length: %d-%d\n", cs, len(cs), bf.MinLength, bf.MaxLength)
			numbers.Fprintf(out, "Candidates: %d, Workers: %d\n", total, cfg.Workers)

			ctx, cancel := signalContext()
			defer cancel()

			c := newCracker(records, total, "bruteforce")
			res, err := c.Bruteforce(ctx, bf)
			report(out, res)
			return err
		},
	}
}

func newUseHtableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use-htable",
		Short: "Look up the credential store in a hash table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tbl, err := openTable(cfg.TablePath)
			if err != nil {
				return err
			}
			defer tbl.Close()

			records, err := loadRecords()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			numbers.Fprintf(out, "Table: %s, %d entries of length %d over %s\n",
				vainpath.Clean(tbl.Path), tbl.Entries, tbl.Header.Length, tbl.Header.Charset)

			ctx, cancel := signalContext()
			defer cancel()

			c := newCracker(records, tbl.Entries, "scan")
			res, err := c.ScanTable(ctx, tbl, cfg.ChunkBytes())
			if err != nil {
				logStage(log.With("table", tbl.Path), "table scan failed", err)
				return err
			}
			fmt.Fprintf(out, "Spent %s going through whole table\n", formatDuration(res.Duration))
			report(out, res)
			return nil
		},
	}
}

// openTable opens path and rewords the two failures a user can act on.
func openTable(path string) (*table.Table, error) {
	tlog := log.With("table", path)
	tbl, err := table.Open(path)
	logStage(tlog, "table failed validation", err)
	switch {
	case errors.Is(err, table.ErrNotFound):
		return nil, fmt.Errorf("no table built yet, run gen-htable first: %w", err)
	case errors.Is(err, table.ErrCorrupt):
		return nil, fmt.Errorf("table is corrupt, rebuild it with gen-htable: %w", err)
	case err != nil:
		return nil, err
	}
	tlog.Debug(context.Background(), "table opened", "entries", tbl.Entries)
	return tbl, nil
}

// logStage logs err at error level with the stage that failed, if any.
func logStage(l logging.Logger, msg string, err error) {
	var se *table.StageError
	if errors.As(err, &se) {
		l.Error(context.Background(), msg, "stage", se.Stage, "err", se.Err)
	}
}

func loadRecords() (map[string]digest.Digest, error) {
	records, err := store.Snapshot(cfg.StorePath)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		log.With("store", cfg.StorePath).Warn(context.Background(), "credential store is empty, nothing to crack")
	}
	return records, nil
}

func newCracker(records map[string]digest.Digest, total uint64, what string) *cracker.Cracker {
	c := cracker.New(records, cfg.Workers)

	bar := newProgressBar(total, what)
	c.SetProgressCallback(func(p cracker.Progress) {
		_ = bar.Set64(int64(p.Attempts))
	})
	c.SetMatchCallback(func(m cracker.Match) {
		_ = bar.Clear()
		pterm.Success.Printf("[CRACKED in %s] user (%s) has password (%s)\n", formatDuration(m.Elapsed), m.User, m.Password)
	})
	return c
}

func report(out io.Writer, res cracker.Result) {
	fmt.Fprintln(out)
	numbers.Fprintf(out, "Attempts: %d, Time: %s, Rate: %.0f hashes/second\n",
		res.Attempts, formatDuration(res.Duration), float64(res.Attempts)/res.Duration.Seconds())
	if len(res.Matches) == 0 {
		fmt.Fprintln(out, "No passwords found.")
		return
	}
	fmt.Fprintf(out, "Cracked %d account(s).\n", len(res.Matches))
}
