package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/p7r0x7/vainpath"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/lth/htcrack/internal/charset"
	"github.com/lth/htcrack/internal/table"
)

func newGenHtableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gen-htable",
		Short: "Generate a hash table of every candidate of one length",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cs, err := charset.New(charset.Resolve(cfg.Charset))
			if err != nil {
				return err
			}
			total, err := cs.Space(cfg.TableLength)
			if err != nil {
				return err
			}

			numbers.Fprintf(cmd.OutOrStdout(), "Generating %d hashes for all items of length %d, with characters %s\n",
				total, cfg.TableLength, cs)

			ctx, cancel := signalContext()
			defer cancel()

			tlog := log.With("table", cfg.TablePath)
			bar := newProgressBar(total, "gen-htable")
			start := time.Now()
			err = table.Build(ctx, cfg.TablePath, table.BuildOptions{
				Charset:    cs,
				Length:     cfg.TableLength,
				ChunkBytes: cfg.ChunkBytes(),
				Workers:    cfg.Workers,
				Progress: func(done, _ uint64) {
					_ = bar.Set64(int64(done))
				},
			})
			if err != nil {
				logStage(tlog, "table build failed", err)
				return err
			}
			_ = bar.Finish()
			fmt.Fprintln(cmd.OutOrStdout())

			tlog.Info(context.Background(), "table built",
				"entries", total, "took", formatDuration(time.Since(start)))
			pterm.Success.Printf("Table written to %s\n", vainpath.Clean(cfg.TablePath))
			return nil
		},
	}
}

func newHtableInfoCmd() *cobra.Command {
	var fingerprint bool

	cmd := &cobra.Command{
		Use:   "htable-info",
		Short: "Display hash table header and integrity information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tbl, err := openTable(cfg.TablePath)
			if err != nil {
				return err
			}
			defer tbl.Close()

			st, err := os.Stat(tbl.Path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Hash Table Information")
			fmt.Fprintln(out, "======================")
			fmt.Fprintf(out, "File:       %s\n", vainpath.Clean(tbl.Path))
			fmt.Fprintf(out, "Length:     %d\n", tbl.Header.Length)
			fmt.Fprintf(out, "Charset:    %s (%d characters)\n", tbl.Header.Charset, len(tbl.Header.Charset))
			numbers.Fprintf(out, "Entries:    %d\n", tbl.Entries)
			numbers.Fprintf(out, "Size:       %d bytes\n", st.Size())
			if fingerprint {
				sum, err := table.Fingerprint(tbl.Path)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "XXH3-128:   %s\n", sum)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&fingerprint, "fingerprint", false, "hash the whole table file (reads every byte)")
	return cmd
}
