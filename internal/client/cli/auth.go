package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/portfolio/internal/client/models"
	"github.com/dmitrijs2005/portfolio/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

func (a *App) credentials(cmd *cobra.Command, args []string) (string, []byte, error) {
	email := ""
	if len(args) > 0 {
		email = args[0]
	} else {
		var err error
		email, err = getSimpleText(a.reader, "Enter email", cmd.OutOrStdout())
		if err != nil {
			return "", nil, err
		}
	}
	password, err := getPassword(cmd.OutOrStdout())
	if err != nil {
		return "", nil, err
	}
	return email, password, nil
}

func (a *App) authCommands() []*cobra.Command {
	login := &cobra.Command{
		Use:   "login [email]",
		Short: "Sign in",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email, password, err := a.credentials(cmd, args)
			if err != nil {
				return err
			}
			defer common.WipeByteArray(password)

			u, err := a.auth.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s, now at %s\n", u.Email, a.router.Current().Path)
			return nil
		},
	}

	var role string
	register := &cobra.Command{
		Use:   "register [email]",
		Short: "Create an account and sign in",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email, password, err := a.credentials(cmd, args)
			if err != nil {
				return err
			}
			defer common.WipeByteArray(password)

			u, err := a.auth.Register(cmd.Context(), email, password, models.Role(role))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s (%s)\n", u.Email, u.Role)
			return nil
		},
	}
	register.Flags().StringVar(&role, "role", "", "account role (user or admin)")

	var purge bool
	logout := &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if purge {
				if err := a.auth.Purge(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Logged out, local data removed")
				return nil
			}
			if err := a.auth.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
	logout.Flags().BoolVar(&purge, "purge", false, "also remove everything stored locally for this API")

	var remote bool
	whoami := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if remote {
				u, err := a.auth.Me(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s %s (%s)\n", u.ID, u.Email, u.Role)
				return nil
			}
			id, err := a.auth.WhoAmI()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s %s (%s)\ntoken: %s\n", id.User.ID, id.User.Email, id.User.Role, id.Token)
			if id.ExpiresAt != nil {
				fmt.Fprintf(out, "expires: %s\n", id.ExpiresAt.Local().Format(time.RFC1123))
			}
			return nil
		},
	}
	whoami.Flags().BoolVar(&remote, "remote", false, "ask the API instead of the local session")

	return []*cobra.Command{login, register, logout, whoami}
}

func (a *App) navCommands() []*cobra.Command {
	printLoc := func(cmd *cobra.Command) {
		loc := a.router.Current()
		if loc.From != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "%s (from %s)\n", loc.Path, loc.From)
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), loc.Path)
	}
	return []*cobra.Command{
		{
			Use:   "goto <path>",
			Short: "Navigate to a page",
			Args:  cobra.ExactArgs(1),
			Run: func(cmd *cobra.Command, args []string) {
				a.router.Navigate(args[0])
				printLoc(cmd)
			},
		},
		{
			Use:   "back",
			Short: "Go back one page",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, _ []string) {
				a.router.Back()
				printLoc(cmd)
			},
		},
		{
			Use:   "where",
			Short: "Show the current page and history",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, _ []string) {
				for _, loc := range a.router.History() {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", loc.Path)
				}
				printLoc(cmd)
			},
		},
	}
}
