package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/portfolio/internal/client/models"
	"github.com/dmitrijs2005/portfolio/internal/client/views"
)

// reportedError wraps an error the Notifier has already shown, so the
// REPL does not print it a second time.
type reportedError struct{ error }

func (e reportedError) Unwrap() error { return e.error }

func reported(err error) error {
	if err == nil {
		return nil
	}
	return reportedError{err}
}

type listFlags struct {
	page, limit       int
	sortBy, sortOrder string
	status, tags      string
	category, issuer  string
}

func (f *listFlags) register(cmd *cobra.Command, filters ...string) {
	fs := cmd.Flags()
	fs.IntVar(&f.page, "page", 0, "page number")
	fs.IntVar(&f.limit, "limit", 0, "items per page")
	fs.StringVar(&f.sortBy, "sort", "", "field to sort by")
	fs.StringVar(&f.sortOrder, "order", "", "sort order, ASC or DESC")
	for _, name := range filters {
		switch name {
		case "status":
			fs.StringVar(&f.status, "status", "", "filter by status")
		case "tags":
			fs.StringVar(&f.tags, "tags", "", "filter by comma separated tags")
		case "category":
			fs.StringVar(&f.category, "category", "", "filter by category")
		case "issuer":
			fs.StringVar(&f.issuer, "issuer", "", "filter by issuer")
		}
	}
}

func (f *listFlags) params() models.ListParams {
	return models.ListParams{
		Page:      f.page,
		Limit:     f.limit,
		Status:    f.status,
		SortBy:    f.sortBy,
		SortOrder: models.SortOrder(strings.ToUpper(f.sortOrder)),
		Tags:      f.tags,
		Category:  f.category,
		Issuer:    f.issuer,
	}
}

// changed returns &v if the flag was given on the command line.
func changed[T any](cmd *cobra.Command, name string, v T) *T {
	if cmd.Flags().Changed(name) {
		return &v
	}
	return nil
}

func listCmd[T models.Record, C, U any](s *views.Synchronizer[T, C, U], short string, print func(io.Writer, []T), filters ...string) *cobra.Command {
	var lf listFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s.SetParams(lf.params())
			if err := s.Refresh(cmd.Context()); err != nil {
				return reported(err)
			}
			out := cmd.OutOrStdout()
			print(out, s.View().Items())
			printPagination(out, s.View().Pagination())
			return nil
		},
	}
	lf.register(cmd, filters...)
	return cmd
}

func showCmd[T any](a *App, src views.Getter[T], noun string, print func(io.Writer, T)) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one " + strings.ToLower(noun),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := views.NewDetailView(src, noun, a.notify)
			item, err := d.Load(cmd.Context(), args[0])
			if d.NotFound() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s not found\n", noun, args[0])
				return nil
			}
			if err != nil {
				return reported(err)
			}
			print(cmd.OutOrStdout(), item)
			return nil
		},
	}
}

func deleteCmd[T models.Record, C, U any](s *views.Synchronizer[T, C, U], noun string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a " + strings.ToLower(noun),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return reported(s.Delete(cmd.Context(), args[0]))
		},
	}
}
