package ui

import (
	"context"
	"log"
	"os/exec"
	"runtime"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fragmede/tutor/internal/api"
	"github.com/fragmede/tutor/internal/auth"
	"github.com/fragmede/tutor/internal/cache"
	"github.com/fragmede/tutor/internal/config"
	"github.com/fragmede/tutor/internal/route"
	"github.com/fragmede/tutor/internal/ui/dashboard"
	"github.com/fragmede/tutor/internal/ui/landing"
	"github.com/fragmede/tutor/internal/ui/messages"
	"github.com/fragmede/tutor/internal/ui/signin"
	"github.com/fragmede/tutor/internal/ui/statusbar"
	"github.com/fragmede/tutor/internal/ui/tutor"
)

var defaultTopic = api.Topic{ID: "general", Name: "General"}

// App is the root Bubble Tea model. It owns one load at a time: a history
// rooted at the start location, an auth store and the single resolution
// that settles it. While the store is pending every view shows the loading
// placeholder and the guard is not consulted.
type App struct {
	// Load state
	load     int
	store    *auth.Store
	router   *route.Router
	decision route.Decision
	shown    route.View

	// Child models
	spinner   spinner.Model
	landing   landing.Model
	tutor     tutor.Model
	tutorKey  string
	dashboard dashboard.Model
	signIn    signin.Model
	signingIn bool
	statusBar statusbar.Model

	// Shared state
	cfg    config.Config
	client *api.Client
	cache  *cache.DB
	logger *log.Logger

	openURL func(string)

	// Dimensions
	width  int
	height int
}

// NewApp creates the root model for a load starting at start.
func NewApp(cfg config.Config, client *api.Client, db *cache.DB, start route.Location, logger *log.Logger) *App {
	if logger == nil {
		logger = log.Default()
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = SpinnerStyle

	return &App{
		store:     auth.NewStore(client, logger),
		router:    route.NewRouter(route.NewHistory(start)),
		spinner:   sp,
		landing:   landing.New(cfg, client, db),
		statusBar: statusbar.New(),
		cfg:       cfg,
		client:    client,
		cache:     db,
		logger:    logger,
		openURL:   openBrowser,
	}
}

// Init starts the session resolution alongside the topic catalogue.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.resolveSession(), a.landing.Init())
}

// resolveSession runs the resolver once for the current load and settles
// its store. The resolver reads the entry the load started on, not
// whichever entry is on top when the command runs.
func (a *App) resolveSession() tea.Cmd {
	resolver := auth.NewResolver(a.client, a.logger)
	store := a.store
	start := a.router.History().Pin()
	load := a.load
	return func() tea.Msg {
		o := resolver.Resolve(context.Background(), start)
		store.Settle(o)
		return messages.SessionResolvedMsg{Outcome: o, Load: load}
	}
}

// Outcome returns the current load's identity outcome.
func (a *App) Outcome() auth.Outcome {
	return a.store.Outcome()
}

// Location returns the current history entry.
func (a *App) Location() route.Location {
	return a.router.Current()
}

// Update handles all messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		contentHeight := msg.Height - 1 // Reserve 1 line for status bar.
		a.landing.SetSize(msg.Width, contentHeight)
		a.signIn.SetSize(msg.Width, contentHeight)
		a.statusBar.SetSize(msg.Width)
		if a.tutorKey != "" {
			a.tutor.SetSize(msg.Width, contentHeight)
		}
		if a.shown == route.Dashboard {
			a.dashboard.SetSize(msg.Width, contentHeight)
		}
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		return a, a.handleKey(msg)

	case messages.SessionResolvedMsg:
		if msg.Load != a.load {
			return a, nil
		}
		o := a.store.Outcome()
		a.logger.Printf("session resolved: %s", o)
		if o.State() == auth.Authenticated {
			if err := a.cache.SaveCookies(a.client.Cookies()); err != nil {
				a.logger.Printf("saving cookies: %v", err)
			}
		}
		a.setUser(o.User())
		return a, a.evaluate()

	case messages.LogoutMsg:
		store := a.store
		load := a.load
		timeout := a.cfg.RequestTimeout
		return a, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			store.Logout(ctx)
			return messages.LoggedOutMsg{Load: load}
		}

	case messages.LoggedOutMsg:
		if msg.Load != a.load {
			return a, nil
		}
		if err := a.cache.ClearCookies(); err != nil {
			a.logger.Printf("clearing cookies: %v", err)
		}
		a.setUser(nil)
		a.statusBar.SetStatus("Signed out", false)
		return a, a.evaluate()

	case messages.NavigateMsg:
		return a, a.navigate(msg.To)

	case messages.GoBackMsg:
		return a, a.back()

	case messages.OpenSignInMsg:
		if a.store.Outcome().State() == auth.Authenticated {
			return a, nil
		}
		url := a.cfg.LoginURL()
		a.signingIn = true
		a.signIn = signin.New(url)
		a.signIn.SetSize(a.width, a.height-1)
		open := a.openURL
		return a, func() tea.Msg {
			open(url)
			return nil
		}

	case messages.ReloadMsg:
		return a, a.reload(msg.URL)

	case messages.StatusMsg:
		a.statusBar.SetStatus(msg.Text, msg.IsError)
		return a, nil
	}

	// Page-private messages go to every live page.
	var cmd tea.Cmd
	a.landing, cmd = a.landing.Update(msg)
	cmds = append(cmds, cmd)
	if a.tutorKey != "" {
		a.tutor, cmd = a.tutor.Update(msg)
		cmds = append(cmds, cmd)
	}
	if a.shown == route.Dashboard {
		a.dashboard, cmd = a.dashboard.Update(msg)
		cmds = append(cmds, cmd)
	}
	if a.signingIn {
		a.signIn, cmd = a.signIn.Update(msg)
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, Keys.ForceQuit) {
		return tea.Quit
	}

	if a.signingIn {
		if key.Matches(msg, Keys.Back) {
			a.signingIn = false
			return nil
		}
		var cmd tea.Cmd
		a.signIn, cmd = a.signIn.Update(msg)
		return cmd
	}

	if a.rendering() && a.capturing() {
		if key.Matches(msg, Keys.Back) && a.pageReleasesEsc() {
			return a.back()
		}
		return a.updatePage(msg)
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return tea.Quit
	case key.Matches(msg, Keys.Back):
		return a.back()
	case key.Matches(msg, Keys.Home):
		return a.navigate(route.At(string(route.Landing)))
	case key.Matches(msg, Keys.Tutor):
		loc := route.At(string(route.Tutor))
		if a.tutorKey != "" {
			loc = loc.WithQuery("topic", a.tutor.Topic().ID)
		}
		return a.navigate(loc)
	case key.Matches(msg, Keys.Dashboard):
		return a.navigate(route.At(string(route.Dashboard)))
	case key.Matches(msg, Keys.SignIn):
		return func() tea.Msg { return messages.OpenSignInMsg{} }
	case key.Matches(msg, Keys.Logout):
		if a.store.Outcome().State() != auth.Authenticated {
			return nil
		}
		return func() tea.Msg { return messages.LogoutMsg{} }
	}

	if a.rendering() {
		return a.updatePage(msg)
	}
	return nil
}

// rendering reports whether a page is on screen rather than the loading
// placeholder.
func (a *App) rendering() bool {
	return a.store.Outcome().Settled() && a.decision.Action != route.Loading
}

// capturing reports whether the shown page takes raw keystrokes.
func (a *App) capturing() bool {
	switch a.shown {
	case route.Landing:
		return a.landing.Filtering()
	case route.Tutor:
		return true
	case route.Dashboard:
		return a.dashboard.Editing()
	}
	return false
}

// pageReleasesEsc reports whether esc means back on a capturing page.
func (a *App) pageReleasesEsc() bool {
	return a.shown == route.Tutor && !a.tutor.InQuiz()
}

func (a *App) updatePage(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.shown {
	case route.Landing:
		a.landing, cmd = a.landing.Update(msg)
	case route.Tutor:
		a.tutor, cmd = a.tutor.Update(msg)
	case route.Dashboard:
		a.dashboard, cmd = a.dashboard.Update(msg)
	}
	return cmd
}

// navigate pushes loc. While the session is pending the entry waits for
// the outcome.
func (a *App) navigate(loc route.Location) tea.Cmd {
	o := a.store.Outcome()
	if !o.Settled() {
		a.router.History().Push(loc)
		return nil
	}
	return a.apply(a.router.Navigate(loc, o))
}

// back pops one entry. At the bottom of the history it opens the landing
// view instead.
func (a *App) back() tea.Cmd {
	o := a.store.Outcome()
	if !o.Settled() {
		a.router.History().Back()
		return nil
	}
	if a.router.History().Len() <= 1 {
		if a.shown == route.Landing {
			return nil
		}
		return a.navigate(route.At(string(route.Landing)))
	}
	return a.apply(a.router.Back(o))
}

// evaluate runs the guard on the current entry once the session has
// settled.
func (a *App) evaluate() tea.Cmd {
	o := a.store.Outcome()
	if !o.Settled() {
		return nil
	}
	requested, _ := route.Lookup(a.router.Current().Path)
	d := a.router.Evaluate(o)
	if d.Action == route.Redirect && requested.Protected() {
		a.statusBar.SetStatus("Sign in to open "+strings.TrimPrefix(string(requested), "/"), false)
	}
	return a.apply(d)
}

// apply shows the page a guard decision selects.
func (a *App) apply(d route.Decision) tea.Cmd {
	a.decision = d
	if d.Action == route.Loading {
		return nil
	}
	if d.Action == route.Redirect {
		a.logger.Printf("route: redirected to %s", d.View)
	}

	prev := a.shown
	a.shown = d.View
	a.statusBar.SetActive(d.View)
	contentHeight := a.height - 1

	switch d.View {
	case route.Tutor:
		loc := a.router.Current()
		k := loc.Path + "?" + loc.Query.Encode()
		if k == a.tutorKey {
			return nil
		}
		a.tutorKey = k
		a.tutor = tutor.New(a.cfg, a.client, a.topicFor(loc.Param("topic")), loc.Param("chat"))
		a.tutor.SetSize(a.width, contentHeight)
		return a.tutor.Init()

	case route.Dashboard:
		if prev == route.Dashboard {
			return nil
		}
		a.dashboard = dashboard.New(a.cfg, a.client, a.cache, a.store.User())
		a.dashboard.SetSize(a.width, contentHeight)
		return a.dashboard.Init()
	}
	return nil
}

// topicFor finds a catalogue topic by ID or name.
func (a *App) topicFor(param string) api.Topic {
	topics := a.landing.Topics()
	if param == "" {
		if len(topics) > 0 {
			return topics[0]
		}
		return defaultTopic
	}
	for _, t := range topics {
		if t.ID == param || strings.EqualFold(t.Name, param) {
			return t
		}
	}
	return api.Topic{ID: param, Name: param}
}

func (a *App) setUser(u *api.User) {
	name := u.DisplayName()
	a.statusBar.SetUser(name)
	a.landing.SetUser(name)
	if u == nil {
		a.tutorKey = ""
	}
}

// reload starts a fresh load at raw: new history, new store in pending
// and one resolution. Results of the previous load are dropped.
func (a *App) reload(raw string) tea.Cmd {
	a.signingIn = false
	a.load++
	a.store = auth.NewStore(a.client, a.logger)
	a.router = route.NewRouter(route.NewHistory(route.Parse(raw)))
	a.decision = route.Decision{}
	a.shown = ""
	a.tutorKey = ""
	a.setUser(nil)
	a.statusBar.SetStatus("", false)
	return tea.Batch(a.spinner.Tick, a.resolveSession())
}

// View renders the application.
func (a *App) View() string {
	var content string
	switch {
	case a.signingIn:
		content = a.signIn.View()
	case !a.rendering():
		content = a.loadingView()
	default:
		switch a.shown {
		case route.Tutor:
			content = a.tutor.View()
		case route.Dashboard:
			content = a.dashboard.View()
		default:
			content = a.landing.View()
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, content, a.statusBar.View())
}

func (a *App) loadingView() string {
	msg := lipgloss.JoinVertical(lipgloss.Center,
		TitleStyle.Render("AI Tutor"),
		LoadingStyle.Render(a.spinner.View()+" Restoring your session..."),
		DimStyle.Render("ctrl+c to quit"),
	)
	return lipgloss.Place(a.width, a.height-1, lipgloss.Center, lipgloss.Center, msg)
}

func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	default:
		return
	}
	cmd.Run()
}
