package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lth/htcrack/internal/store"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// passwordArg returns args[1] when present, otherwise prompts for the
// password without echo.
func passwordArg(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 1 {
		return args[1], nil
	}
	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(pw), nil
}

func newAddUserCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-user <username> [password]",
		Short: "Add a user to the credential store",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			user := args[0]
			password, err := passwordArg(cmd, args)
			if err != nil {
				return err
			}

			err = store.Update(cfg.StorePath, func(s *store.Store) error {
				s.Add(user, password)
				return nil
			})
			if err != nil {
				return err
			}

			log.With("store", cfg.StorePath).Debug(context.Background(), "store updated", "user", user)
			pterm.Success.Printf("User %s added to database\n", user)
			return nil
		},
	}
}

func newListUsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-users",
		Short: "List users in the credential store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := store.Snapshot(cfg.StorePath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "users:")
			for _, u := range (&store.Store{Records: records}).Users() {
				fmt.Fprintf(out, " - %s\n", u)
			}
			return nil
		},
	}
}

func newAuthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "auth <username> [password]",
		Short: "Authenticate as a user",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := passwordArg(cmd, args)
			if err != nil {
				return err
			}
			records, err := store.Snapshot(cfg.StorePath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch (&store.Store{Records: records}).Authenticate(args[0], password) {
			case store.AuthOK:
				fmt.Fprintln(out, "Authentication successful!")
			case store.AuthBadPassword:
				fmt.Fprintln(out, "Bad password.")
			default:
				fmt.Fprintln(out, "No such user")
			}
			return nil
		},
	}
}
