package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/portfolio/internal/client/client"
	"github.com/dmitrijs2005/portfolio/internal/client/models"
	"github.com/dmitrijs2005/portfolio/internal/client/views"
)

// publicCmd groups the pages any visitor can open. None of these calls
// carries the session token.
func (a *App) publicCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "public",
		Short: "Browse the public site",
	}

	var lf listFlags
	blog := &cobra.Command{
		Use:   "blog",
		Short: "List published posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.visit("/blog")
			params := lf.params()
			params.Status = string(models.PostPublished)
			posts, page, err := a.api.Posts.List(cmd.Context(), params, client.Anonymous())
			if err != nil {
				return err
			}
			printPosts(cmd.OutOrStdout(), posts)
			printPagination(cmd.OutOrStdout(), page)
			return nil
		},
	}
	lf.register(blog, "tags")

	post := &cobra.Command{
		Use:   "post <id>",
		Short: "Read a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.visit("/blog/" + args[0])
			p, err := a.postDetail.Load(cmd.Context(), args[0])
			if a.postDetail.NotFound() {
				fmt.Fprintln(cmd.OutOrStdout(), "Post not found")
				return nil
			}
			if err != nil {
				return reported(err)
			}
			printPost(cmd.OutOrStdout(), p)
			return nil
		},
	}

	var plf listFlags
	projects := &cobra.Command{
		Use:   "projects",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.visit("/projects")
			items, page, err := a.api.Projects.List(cmd.Context(), plf.params(), client.Anonymous())
			if err != nil {
				return err
			}
			printProjects(cmd.OutOrStdout(), items)
			printPagination(cmd.OutOrStdout(), page)
			return nil
		},
	}
	plf.register(projects, "status", "tags")

	skills := &cobra.Command{
		Use:   "skills",
		Short: "Show skills by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.visit("/skills")
			groups, err := a.api.Skills.ByCategory(cmd.Context(), client.Anonymous())
			if err != nil {
				return err
			}
			printGroups(cmd.OutOrStdout(), groups, printSkills)
			return nil
		},
	}

	certificates := &cobra.Command{
		Use:   "certificates",
		Short: "List certificates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.visit("/certificates")
			items, _, err := a.api.Certificates.List(cmd.Context(), models.ListParams{}, client.Anonymous())
			if err != nil {
				return err
			}
			stats, err := a.api.Certificates.Stats(cmd.Context(), client.Anonymous())
			if err != nil {
				return err
			}
			printCertificates(cmd.OutOrStdout(), items)
			printCertificateStats(cmd.OutOrStdout(), stats)
			return nil
		},
	}

	about := &cobra.Command{
		Use:   "about <userId>",
		Short: "Show a user's about section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.visit("/about")
			about, err := a.api.About.GetByUser(cmd.Context(), args[0], client.Anonymous())
			if err != nil {
				return err
			}
			printAbout(cmd.OutOrStdout(), about)
			return nil
		},
	}

	profile := &cobra.Command{
		Use:   "profile <userId>",
		Short: "Show a user's profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.visit("/")
			p, err := a.api.Profile.GetByUser(cmd.Context(), args[0], client.Anonymous())
			if err != nil {
				return err
			}
			printProfile(cmd.OutOrStdout(), p)
			return nil
		},
	}

	var msg models.CreateContactRequest
	contact := &cobra.Command{
		Use:   "contact",
		Short: "Send a message through the contact form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.visit("/contact")
			if !cmd.Flags().Changed("message") {
				text, err := GetMultiline(a.reader, "Your message", cmd.OutOrStdout())
				if err != nil {
					return err
				}
				msg.Message = text
			}
			if _, err := a.api.Contact.Submit(cmd.Context(), msg); err != nil {
				views.Failed(a.notify, "Failed to send message", err)
				return reported(err)
			}
			a.notify.Success("Message sent successfully")
			return nil
		},
	}
	contact.Flags().StringVar(&msg.Name, "name", "", "your name")
	contact.Flags().StringVar(&msg.Email, "email", "", "your email")
	contact.Flags().StringVar(&msg.Message, "message", "", "message text; prompted for when omitted")

	cmd.AddCommand(blog, post, projects, skills, certificates, about, profile, contact)
	return cmd
}
