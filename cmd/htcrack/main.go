package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/lth/htcrack/internal/config"
	"github.com/lth/htcrack/internal/logging"
)

var (
	version = "1.0.0"

	cfg *config.Config
	// log is replaced once flags are parsed.
	log logging.Logger = logging.Nop()

	// numbers prints counts with thousands separators.
	numbers = message.NewPrinter(language.English)
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "htcrack",
		Short: "Recover MD5 passwords by brute force or precomputed hash table",
		Long: `htcrack v` + version + `
Keeps a small MD5 credential store and recovers its passwords either by
hashing every candidate of a length range on the fly (bruteforce) or by
scanning a precomputed table of digests (gen-htable, use-htable).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			l, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
			if err != nil {
				return err
			}
			log = l
			return nil
		},
	}

	config.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		newAddUserCmd(),
		newListUsersCmd(),
		newAuthCmd(),
		newBruteforceCmd(),
		newGenHtableCmd(),
		newUseHtableCmd(),
		newHtableInfoCmd(),
		newBenchmarkCmd(),
	)
	return rootCmd
}

// signalContext is cancelled on the first SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigChan:
			fmt.Println("\nInterrupted - stopping...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh%dm", h, m)
}
