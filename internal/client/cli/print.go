package cli

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/portfolio/internal/client/models"
	"github.com/dmitrijs2005/portfolio/internal/client/views"
)

func newTable(w io.Writer, columns ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(columns, "\t"))
	return tw
}

func row(w io.Writer, cells ...any) {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = fmt.Sprint(c)
	}
	fmt.Fprintln(w, strings.Join(parts, "\t"))
}

func day(t models.Timestamp) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(models.DateLayout)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func printPagination(w io.Writer, p *models.Pagination) {
	if p == nil {
		return
	}
	fmt.Fprintf(w, "page %d of %d, %d total\n", p.CurrentPage, p.TotalPages, p.TotalItems)
}

func printProjects(w io.Writer, items []models.Project) {
	tw := newTable(w, "ID", "TITLE", "STATUS", "TAGS", "CREATED")
	for _, p := range items {
		row(tw, p.ID, p.Title, p.Status, orDash(strings.Join(p.Tags, ",")), day(p.CreatedAt))
	}
	tw.Flush()
}

func printProject(w io.Writer, p models.Project) {
	fmt.Fprintf(w, "%s  %s [%s]\n%s\n", p.ID, p.Title, p.Status, p.Description)
	if len(p.Tags) > 0 {
		fmt.Fprintf(w, "tags: %s\n", strings.Join(p.Tags, ", "))
	}
	if p.Link != "" {
		fmt.Fprintf(w, "link: %s\n", p.Link)
	}
	if p.Thumbnail != "" {
		fmt.Fprintf(w, "thumbnail: %s\n", p.Thumbnail)
	}
}

func printPosts(w io.Writer, items []models.Post) {
	tw := newTable(w, "ID", "TITLE", "STATUS", "VIEWS", "PUBLISHED")
	for _, p := range items {
		published := "-"
		if p.PublishedAt != nil {
			published = day(*p.PublishedAt)
		}
		row(tw, p.ID, p.Title, p.Status, p.Views, published)
	}
	tw.Flush()
}

func printPost(w io.Writer, p models.Post) {
	fmt.Fprintf(w, "%s  %s [%s] %d views\n", p.ID, p.Title, p.Status, p.Views)
	if len(p.Tags) > 0 {
		fmt.Fprintf(w, "tags: %s\n", strings.Join(p.Tags, ", "))
	}
	if p.CoverImage != "" {
		fmt.Fprintf(w, "cover: %s\n", p.CoverImage)
	}
	fmt.Fprintf(w, "\n%s\n", p.Content)
}

func printSkills(w io.Writer, items []models.Skill) {
	tw := newTable(w, "ID", "NAME", "CATEGORY", "LEVEL")
	for _, s := range items {
		row(tw, s.ID, s.Name, s.Category, s.Level)
	}
	tw.Flush()
}

func printSkill(w io.Writer, s models.Skill) {
	fmt.Fprintf(w, "%s  %s (%s) level %d\n", s.ID, s.Name, s.Category, s.Level)
	if s.Icon != "" {
		fmt.Fprintf(w, "icon: %s\n", s.Icon)
	}
}

func printCertificates(w io.Writer, items []models.Certificate) {
	tw := newTable(w, "ID", "TITLE", "ISSUER", "ISSUED")
	for _, c := range items {
		row(tw, c.ID, c.Title, c.Issuer, c.IssueDate)
	}
	tw.Flush()
}

func printCertificate(w io.Writer, c models.Certificate) {
	fmt.Fprintf(w, "%s  %s by %s, issued %s\n", c.ID, c.Title, c.Issuer, c.IssueDate)
	if c.CredentialURL != "" {
		fmt.Fprintf(w, "credential: %s\n", c.CredentialURL)
	}
}

func printMessages(w io.Writer, items []models.ContactMessage) {
	tw := newTable(w, "ID", "FROM", "EMAIL", "STATUS", "RECEIVED")
	for _, m := range items {
		row(tw, m.ID, m.Name, m.Email, m.Status, day(m.CreatedAt))
	}
	tw.Flush()
}

func printMessage(w io.Writer, m models.ContactMessage) {
	fmt.Fprintf(w, "%s  from %s <%s> [%s]\n\n%s\n", m.ID, m.Name, m.Email, m.Status, m.Message)
}

func printAbout(w io.Writer, a models.About) {
	fmt.Fprintln(w, a.Introduction)
	for _, h := range a.Highlights {
		fmt.Fprintf(w, "  * %s\n", h)
	}
	if a.Image != "" {
		fmt.Fprintf(w, "image: %s\n", a.Image)
	}
}

func printProfile(w io.Writer, p models.Profile) {
	fmt.Fprintln(w, orDash(p.Name))
	if p.Bio != "" {
		fmt.Fprintln(w, p.Bio)
	}
	if p.Avatar != "" {
		fmt.Fprintf(w, "avatar: %s\n", p.Avatar)
	}
	if c := p.Contact; c != nil {
		for _, kv := range [][2]string{{"email", c.Email}, {"phone", c.Phone}, {"location", c.Location}, {"website", c.Website}} {
			if kv[1] != "" {
				fmt.Fprintf(w, "%s: %s\n", kv[0], kv[1])
			}
		}
	}
	if s := p.SocialLinks; s != nil {
		for _, kv := range [][2]string{{"github", s.GitHub}, {"linkedin", s.LinkedIn}, {"twitter", s.Twitter}, {"portfolio", s.Portfolio}} {
			if kv[1] != "" {
				fmt.Fprintf(w, "%s: %s\n", kv[0], kv[1])
			}
		}
	}
}

func printGroups[T any](w io.Writer, groups map[string][]T, print func(io.Writer, []T)) {
	for _, name := range slices.Sorted(maps.Keys(groups)) {
		fmt.Fprintf(w, "== %s ==\n", name)
		print(w, groups[name])
	}
}

func printCertificateStats(w io.Writer, s models.CertificateStats) {
	fmt.Fprintf(w, "total: %d\nissuers: %d\nthis year: %d\n", s.TotalCertificates, s.UniqueIssuers, s.ThisYearCertificates)
	if s.MostRecentIssueDate != "" {
		fmt.Fprintf(w, "most recent: %s\n", s.MostRecentIssueDate)
	}
	if len(s.TopIssuers) > 0 {
		fmt.Fprintf(w, "top issuers: %s\n", strings.Join(s.TopIssuers, ", "))
	}
}

func printDashboard(w io.Writer, d views.DashboardData) {
	s := d.Stats
	fmt.Fprintf(w, "views %d  projects %d  posts %d  skills %d  certificates %d\n",
		s.TotalViews, s.TotalProjects, s.TotalPosts, s.TotalSkills, s.TotalCertificates)
	fmt.Fprintf(w, "growth: projects %+.1f%%  posts %+.1f%%  views %+.1f%%\n",
		s.GrowthRates.ProjectsGrowth, s.GrowthRates.PostsGrowth, s.GrowthRates.ViewsGrowth)

	tw := newTable(w, "WEEK", "VIEWS")
	for _, v := range d.Weekly {
		row(tw, v.Week, v.Views)
	}
	tw.Flush()

	tw = newTable(w, "MONTH", "CREATED", "COMPLETED")
	for _, p := range d.Timeline {
		row(tw, p.Month, p.Created, p.Completed)
	}
	tw.Flush()
}
