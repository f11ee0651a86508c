package cli

import (
	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/portfolio/internal/buildinfo"
)

func (a *App) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "portfolio",
		Short:         "Portfolio admin console",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(
		&cobra.Command{
			Use:     "exit",
			Aliases: []string{"quit"},
			Short:   "Leave the console",
			RunE:    func(*cobra.Command, []string) error { return errQuit },
		},
		&cobra.Command{
			Use:   "version",
			Short: "Show build information",
			Run: func(cmd *cobra.Command, _ []string) {
				buildinfo.PrintBuildData(cmd.OutOrStdout())
			},
		},
	)
	root.AddCommand(a.authCommands()...)
	root.AddCommand(a.navCommands()...)
	root.AddCommand(
		a.dashboardCmd(),
		a.projectsCmd(),
		a.postsCmd(),
		a.skillsCmd(),
		a.certificatesCmd(),
		a.messagesCmd(),
		a.aboutCmd(),
		a.profileCmd(),
		a.publicCmd(),
	)
	return root
}
