package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/portfolio/internal/client/media"
	"github.com/dmitrijs2005/portfolio/internal/client/models"
)

// image turns an "@path" flag value into an uploaded URL.
func (a *App) image(cmd *cobra.Command, value string, kind media.Kind) (string, error) {
	return a.media.Resolve(cmd.Context(), value, kind)
}

func (a *App) imagePtr(cmd *cobra.Command, v *string, kind media.Kind) (*string, error) {
	if v == nil {
		return nil, nil
	}
	url, err := a.image(cmd, *v, kind)
	if err != nil {
		return nil, err
	}
	return &url, nil
}

type projectFlags struct {
	title, description, thumbnail, link, status string
	tags                                        []string
}

func (f *projectFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.title, "title", "", "project title")
	fs.StringVar(&f.description, "description", "", "project description")
	fs.StringSliceVar(&f.tags, "tags", nil, "comma separated tags")
	fs.StringVar(&f.thumbnail, "thumbnail", "", "thumbnail URL, or @file to upload")
	fs.StringVar(&f.link, "link", "", "project link")
	fs.StringVar(&f.status, "status", "", "active, completed or archived")
}

func (a *App) projectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "projects",
		Short:             "Manage projects",
		PersistentPreRunE: a.admin("/admin/projects"),
	}

	var add projectFlags
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Create a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			thumb, err := a.image(cmd, add.thumbnail, media.KindThumbnail)
			if err != nil {
				return err
			}
			p, err := a.projects.Create(cmd.Context(), models.CreateProjectRequest{
				Title:       add.title,
				Description: add.description,
				Tags:        add.tags,
				Thumbnail:   thumb,
				Link:        add.link,
				Status:      models.ProjectStatus(add.status),
			})
			if err != nil {
				return reported(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s\n", p.ID)
			return nil
		},
	}
	add.register(addCmd)

	var edit projectFlags
	editCmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			thumb, err := a.imagePtr(cmd, changed(cmd, "thumbnail", edit.thumbnail), media.KindThumbnail)
			if err != nil {
				return err
			}
			req := models.UpdateProjectRequest{
				Title:       changed(cmd, "title", edit.title),
				Description: changed(cmd, "description", edit.description),
				Tags:        changed(cmd, "tags", edit.tags),
				Thumbnail:   thumb,
				Link:        changed(cmd, "link", edit.link),
			}
			if cmd.Flags().Changed("status") {
				req.Status = models.Ptr(models.ProjectStatus(edit.status))
			}
			_, err = a.projects.Update(cmd.Context(), args[0], req)
			return reported(err)
		},
	}
	edit.register(editCmd)

	cmd.AddCommand(
		listCmd(a.projects, "List projects", printProjects, "status", "tags"),
		showCmd(a, a.api.Projects, "Project", printProject),
		addCmd,
		editCmd,
		deleteCmd(a.projects, "Project"),
	)
	return cmd
}

type postFlags struct {
	title, content, cover, status string
	tags                          []string
}

func (f *postFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.title, "title", "", "post title")
	fs.StringVar(&f.content, "content", "", "post body; prompted for when omitted on add")
	fs.StringVar(&f.cover, "cover", "", "cover image URL, or @file to upload")
	fs.StringSliceVar(&f.tags, "tags", nil, "comma separated tags")
	fs.StringVar(&f.status, "status", "", "draft or published")
}

func (a *App) postsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "posts",
		Short:             "Manage blog posts",
		PersistentPreRunE: a.admin("/admin/posts"),
	}

	var add postFlags
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Write a post",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			content := add.content
			if !cmd.Flags().Changed("content") {
				var err error
				if content, err = GetMultiline(a.reader, "Post content", cmd.OutOrStdout()); err != nil {
					return err
				}
			}
			cover, err := a.image(cmd, add.cover, media.KindCover)
			if err != nil {
				return err
			}
			p, err := a.posts.Create(cmd.Context(), models.CreatePostRequest{
				Title:      add.title,
				Content:    content,
				CoverImage: cover,
				Tags:       add.tags,
				Status:     models.PostStatus(add.status),
			})
			if err != nil {
				return reported(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created post %s\n", p.ID)
			return nil
		},
	}
	add.register(addCmd)

	var edit postFlags
	editCmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cover, err := a.imagePtr(cmd, changed(cmd, "cover", edit.cover), media.KindCover)
			if err != nil {
				return err
			}
			req := models.UpdatePostRequest{
				Title:      changed(cmd, "title", edit.title),
				Content:    changed(cmd, "content", edit.content),
				CoverImage: cover,
				Tags:       changed(cmd, "tags", edit.tags),
			}
			if cmd.Flags().Changed("status") {
				req.Status = models.Ptr(models.PostStatus(edit.status))
			}
			_, err = a.posts.Update(cmd.Context(), args[0], req)
			return reported(err)
		},
	}
	edit.register(editCmd)

	publish := func(use string, status models.PostStatus) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <id>",
			Short: "Set a post to " + string(status),
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				_, err := a.posts.Update(cmd.Context(), args[0], models.UpdatePostRequest{Status: models.Ptr(status)})
				return reported(err)
			},
		}
	}

	cmd.AddCommand(
		listCmd(a.posts, "List posts", printPosts, "status", "tags"),
		showCmd(a, a.api.Posts, "Post", printPost),
		addCmd,
		editCmd,
		publish("publish", models.PostPublished),
		publish("unpublish", models.PostDraft),
		deleteCmd(a.posts, "Post"),
	)
	return cmd
}

type skillFlags struct {
	name, category, icon string
	level                int
}

func (f *skillFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.name, "name", "", "skill name")
	fs.StringVar(&f.category, "category", "", "skill category")
	fs.IntVar(&f.level, "level", 0, "proficiency from 0 to 100")
	fs.StringVar(&f.icon, "icon", "", "icon URL, or @file to upload")
}

func (a *App) skillsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "skills",
		Short:             "Manage skills",
		PersistentPreRunE: a.admin("/admin/skills"),
	}

	var add skillFlags
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a skill",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			icon, err := a.image(cmd, add.icon, media.KindIcon)
			if err != nil {
				return err
			}
			s, err := a.skills.Create(cmd.Context(), models.CreateSkillRequest{
				Name:     add.name,
				Level:    add.level,
				Icon:     icon,
				Category: add.category,
			})
			if err != nil {
				return reported(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created skill %s\n", s.ID)
			return nil
		},
	}
	add.register(addCmd)

	var edit skillFlags
	editCmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a skill",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			icon, err := a.imagePtr(cmd, changed(cmd, "icon", edit.icon), media.KindIcon)
			if err != nil {
				return err
			}
			_, err = a.skills.Update(cmd.Context(), args[0], models.UpdateSkillRequest{
				Name:     changed(cmd, "name", edit.name),
				Level:    changed(cmd, "level", edit.level),
				Icon:     icon,
				Category: changed(cmd, "category", edit.category),
			})
			return reported(err)
		},
	}
	edit.register(editCmd)

	categories := &cobra.Command{
		Use:   "categories",
		Short: "List skills grouped by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			groups, err := a.api.Skills.ByCategory(cmd.Context())
			if err != nil {
				return err
			}
			printGroups(cmd.OutOrStdout(), groups, printSkills)
			return nil
		},
	}

	cmd.AddCommand(
		listCmd(a.skills, "List skills", printSkills, "category"),
		showCmd(a, a.api.Skills, "Skill", printSkill),
		addCmd,
		editCmd,
		categories,
		deleteCmd(a.skills, "Skill"),
	)
	return cmd
}

type certificateFlags struct {
	title, issuer, date, url, icon string
}

func (f *certificateFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.title, "title", "", "certificate title")
	fs.StringVar(&f.issuer, "issuer", "", "issuing organisation")
	fs.StringVar(&f.date, "date", "", "issue date, YYYY-MM-DD")
	fs.StringVar(&f.url, "url", "", "credential URL")
	fs.StringVar(&f.icon, "icon", "", "icon URL, or @file to upload")
}

func (a *App) certificatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "certificates",
		Aliases:           []string{"certs"},
		Short:             "Manage certificates",
		PersistentPreRunE: a.admin("/admin/certificates"),
	}

	var add certificateFlags
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a certificate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			icon, err := a.image(cmd, add.icon, media.KindIcon)
			if err != nil {
				return err
			}
			c, err := a.certificates.Create(cmd.Context(), models.CreateCertificateRequest{
				Title:         add.title,
				Issuer:        add.issuer,
				IssueDate:     add.date,
				CredentialURL: add.url,
				Icon:          icon,
			})
			if err != nil {
				return reported(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created certificate %s\n", c.ID)
			return nil
		},
	}
	add.register(addCmd)

	var edit certificateFlags
	editCmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a certificate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			icon, err := a.imagePtr(cmd, changed(cmd, "icon", edit.icon), media.KindIcon)
			if err != nil {
				return err
			}
			_, err = a.certificates.Update(cmd.Context(), args[0], models.UpdateCertificateRequest{
				Title:         changed(cmd, "title", edit.title),
				Issuer:        changed(cmd, "issuer", edit.issuer),
				IssueDate:     changed(cmd, "date", edit.date),
				CredentialURL: changed(cmd, "url", edit.url),
				Icon:          icon,
			})
			return reported(err)
		},
	}
	edit.register(editCmd)

	issuers := &cobra.Command{
		Use:   "issuers",
		Short: "List certificates grouped by issuer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			groups, err := a.api.Certificates.ByIssuer(cmd.Context())
			if err != nil {
				return err
			}
			printGroups(cmd.OutOrStdout(), groups, printCertificates)
			return nil
		},
	}

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Show certificate statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.api.Certificates.Stats(cmd.Context())
			if err != nil {
				return err
			}
			printCertificateStats(cmd.OutOrStdout(), s)
			return nil
		},
	}

	search := &cobra.Command{
		Use:   "search <query>",
		Short: "Search certificates by title or issuer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.api.Certificates.Search(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printCertificates(cmd.OutOrStdout(), items)
			return nil
		},
	}

	between := &cobra.Command{
		Use:   "range <start> <end>",
		Short: "List certificates issued between two dates (YYYY-MM-DD)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.api.Certificates.DateRange(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			printCertificates(cmd.OutOrStdout(), items)
			return nil
		},
	}

	cmd.AddCommand(
		listCmd(a.certificates, "List certificates", printCertificates, "issuer"),
		showCmd(a, a.api.Certificates, "Certificate", printCertificate),
		addCmd,
		editCmd,
		issuers,
		stats,
		search,
		between,
		deleteCmd(a.certificates, "Certificate"),
	)
	return cmd
}
