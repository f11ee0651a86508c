package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/portfolio/internal/client/client"
	"github.com/dmitrijs2005/portfolio/internal/client/media"
	"github.com/dmitrijs2005/portfolio/internal/client/models"
	"github.com/dmitrijs2005/portfolio/internal/client/views"
	"github.com/dmitrijs2005/portfolio/internal/common"
)

func (a *App) dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show site statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.enter(common.DashboardRoute); err != nil {
				return err
			}
			data, err := a.dashboard.Load(cmd.Context())
			if err != nil {
				return reported(err)
			}
			printDashboard(cmd.OutOrStdout(), data)
			return nil
		},
	}
}

func (a *App) messagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "messages",
		Aliases:           []string{"inbox"},
		Short:             "Read contact form messages",
		PersistentPreRunE: a.admin("/admin/messages"),
	}

	unread := &cobra.Command{
		Use:   "unread",
		Short: "Count unread messages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.inbox.Refresh(cmd.Context()); err != nil {
				return reported(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d unread\n", a.inbox.Unread())
			return nil
		},
	}

	mark := func(use, short string, fn func(*cobra.Command, string) error) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <id>",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return reported(fn(cmd, args[0]))
			},
		}
	}

	list := listCmd(a.inbox.Synchronizer, "List messages", printMessages)
	list.PostRun = func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%d unread\n", a.inbox.Unread())
	}

	cmd.AddCommand(
		list,
		unread,
		showCmd(a, a.api.Contact, "Message", printMessage),
		mark("read", "Mark a message as read", func(cmd *cobra.Command, id string) error {
			return a.inbox.MarkRead(cmd.Context(), id)
		}),
		mark("replied", "Mark a message as replied", func(cmd *cobra.Command, id string) error {
			return a.inbox.MarkReplied(cmd.Context(), id)
		}),
		deleteCmd(a.inbox.Synchronizer, "Message"),
	)
	return cmd
}

func (a *App) aboutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "about",
		Short:             "Manage the about section",
		PersistentPreRunE: a.admin("/admin/about"),
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the about section",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			about, err := a.api.About.Get(cmd.Context())
			if errors.Is(err, client.ErrNotFound) {
				fmt.Fprintln(cmd.OutOrStdout(), "No about section yet")
				return nil
			}
			if err != nil {
				return err
			}
			printAbout(cmd.OutOrStdout(), about)
			return nil
		},
	}

	var (
		intro      string
		highlights []string
		image      string
	)
	edit := &cobra.Command{
		Use:   "edit",
		Short: "Replace the about section",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			img, err := a.image(cmd, image, media.KindImage)
			if err != nil {
				return err
			}
			_, err = a.api.About.Update(cmd.Context(), models.UpdateAboutRequest{
				Introduction: intro,
				Highlights:   highlights,
				Image:        img,
			})
			if err != nil {
				views.Failed(a.notify, "Failed to save about section", err)
				return reported(err)
			}
			a.notify.Success("About section saved")
			return nil
		},
	}
	edit.Flags().StringVar(&intro, "intro", "", "introduction text")
	edit.Flags().StringArrayVar(&highlights, "highlight", nil, "a highlight line, repeatable")
	edit.Flags().StringVar(&image, "image", "", "image URL, or @file to upload")

	remove := &cobra.Command{
		Use:   "delete",
		Short: "Delete the about section",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.api.About.Delete(cmd.Context()); err != nil {
				return err
			}
			a.notify.Success("About section deleted")
			return nil
		},
	}

	cmd.AddCommand(show, edit, remove)
	return cmd
}

func (a *App) profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "profile",
		Short:             "Manage the public profile",
		PersistentPreRunE: a.admin("/admin/profile"),
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.api.Profile.Get(cmd.Context())
			if errors.Is(err, client.ErrNotFound) {
				fmt.Fprintln(cmd.OutOrStdout(), "No profile yet")
				return nil
			}
			if err != nil {
				return err
			}
			printProfile(cmd.OutOrStdout(), p)
			return nil
		},
	}

	var (
		name, avatar, bio                        string
		contact                                  models.Contact
		github, linkedin, twitter, portfolioLink string
	)
	edit := &cobra.Command{
		Use:   "edit",
		Short: "Change profile fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			av, err := a.imagePtr(cmd, changed(cmd, "avatar", avatar), media.KindAvatar)
			if err != nil {
				return err
			}
			req := models.UpdateProfileRequest{
				Name:   changed(cmd, "name", name),
				Bio:    changed(cmd, "bio", bio),
				Avatar: av,
			}
			fs := cmd.Flags()
			if fs.Changed("email") || fs.Changed("phone") || fs.Changed("location") || fs.Changed("website") {
				req.Contact = &contact
			}
			if fs.Changed("github") || fs.Changed("linkedin") || fs.Changed("twitter") || fs.Changed("portfolio") {
				req.SocialLinks = &models.SocialLinks{GitHub: github, LinkedIn: linkedin, Twitter: twitter, Portfolio: portfolioLink}
			}
			if _, err := a.api.Profile.Update(cmd.Context(), req); err != nil {
				views.Failed(a.notify, "Failed to save profile", err)
				return reported(err)
			}
			a.notify.Success("Profile saved")
			return nil
		},
	}
	fs := edit.Flags()
	fs.StringVar(&name, "name", "", "display name")
	fs.StringVar(&avatar, "avatar", "", "avatar URL, or @file to upload")
	fs.StringVar(&bio, "bio", "", "short biography")
	fs.StringVar(&contact.Email, "email", "", "contact email")
	fs.StringVar(&contact.Phone, "phone", "", "contact phone")
	fs.StringVar(&contact.Location, "location", "", "location")
	fs.StringVar(&contact.Website, "website", "", "website")
	fs.StringVar(&github, "github", "", "GitHub URL")
	fs.StringVar(&linkedin, "linkedin", "", "LinkedIn URL")
	fs.StringVar(&twitter, "twitter", "", "Twitter URL")
	fs.StringVar(&portfolioLink, "portfolio", "", "portfolio URL")

	cmd.AddCommand(show, edit)
	return cmd
}
