package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/portfolio/internal/client/client"
	"github.com/dmitrijs2005/portfolio/internal/client/media"
	"github.com/dmitrijs2005/portfolio/internal/client/nav"
	"github.com/dmitrijs2005/portfolio/internal/client/services"
	"github.com/dmitrijs2005/portfolio/internal/client/session"
	"github.com/dmitrijs2005/portfolio/internal/client/views"
	"github.com/dmitrijs2005/portfolio/internal/logging"
)

var errLoginRequired = errors.New("login required, use 'login'")

// Deps are the collaborators the console drives. Media may be nil when
// uploads are not configured.
type Deps struct {
	API     *client.Client
	Session *session.Store
	Router  *nav.Router
	Auth    services.AuthService
	Media   *media.Uploader
	Log     logging.Logger
}

type App struct {
	api     *client.Client
	session *session.Store
	router  *nav.Router
	auth    services.AuthService
	media   *media.Uploader
	log     logging.Logger

	reader *bufio.Reader
	out    io.Writer
	notify views.Notifier

	projects     *views.ProjectList
	posts        *views.PostList
	skills       *views.SkillList
	certificates *views.CertificateList
	inbox        *views.Inbox
	dashboard    *views.Dashboard
	postDetail   *views.PostDetail
}

func NewApp(d Deps, in io.Reader, out io.Writer) *App {
	log := d.Log
	if log == nil {
		log = logging.Nop()
	}
	notify := views.NewConsoleNotifier(out)
	return &App{
		api:     d.API,
		session: d.Session,
		router:  d.Router,
		auth:    d.Auth,
		media:   d.Media,
		log:     log,
		reader:  bufio.NewReader(in),
		out:     out,
		notify:  notify,

		projects:     views.NewProjectList(d.API.Projects, notify, log),
		posts:        views.NewPostList(d.API.Posts, notify, log),
		skills:       views.NewSkillList(d.API.Skills, notify, log),
		certificates: views.NewCertificateList(d.API.Certificates, notify, log),
		inbox:        views.NewInbox(d.API.Contact, notify),
		dashboard:    views.NewDashboard(d.API.Dashboard, notify),
		postDetail:   views.NewPostDetail(d.API.Posts, notify),
	}
}

// Run starts the REPL and blocks until the user exits or ctx is done.
func (a *App) Run(ctx context.Context) {
	cancel := a.session.Subscribe(a.onSessionChange)
	defer cancel()

	fmt.Fprintln(a.out, "Welcome to the portfolio console (type 'help' for commands)")
	runREPL(ctx, a, a.reader, a.out)
}

func (a *App) onSessionChange(t session.Transition) {
	if t.Reason == session.ReasonExpired {
		a.notify.Error("Session expired, please log in again")
	}
}

// Execute runs one console line, already split into words.
func (a *App) Execute(ctx context.Context, args []string) error {
	root := a.newRootCmd()
	root.SetArgs(args)
	root.SetIn(a.reader)
	root.SetOut(a.out)
	root.SetErr(a.out)
	return root.ExecuteContext(ctx)
}

func (a *App) status() string {
	s := a.router.Current().Path
	if u, ok := a.session.User(); ok {
		s += " (" + u.Email + ")"
	}
	return s
}

// enter navigates to an admin page and fails if the guard sends the user
// to the login page instead.
func (a *App) enter(path string) error {
	if a.router.Current().Path == path && a.session.IsAuthenticated() {
		return nil
	}
	if loc := a.router.Navigate(path); loc.Path != path {
		return errLoginRequired
	}
	return nil
}

// visit navigates to a public page.
func (a *App) visit(path string) {
	if a.router.Current().Path != path {
		a.router.Navigate(path)
	}
}

func (a *App) admin(path string) func(*cobra.Command, []string) error {
	return func(*cobra.Command, []string) error {
		return a.enter(path)
	}
}
