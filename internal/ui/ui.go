package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/olivier-stoked/cinebase/internal/api"
	"github.com/olivier-stoked/cinebase/internal/models"
	"github.com/olivier-stoked/cinebase/internal/services"
	"github.com/olivier-stoked/cinebase/internal/session"
)

// Messages emitted by the model's async commands.
type (
	sessionRestoredMsg struct{ sess session.Session }

	loginResultMsg struct {
		sess session.Session
		err  error
	}

	logoutMsg struct{ err error }

	moviesFetchedMsg struct {
		movies []models.Movie
		err    error
	}

	movieDetailMsg struct {
		movie   *models.Movie
		reviews []models.Review
		average float64
		err     error
	}

	reviewSubmittedMsg struct{ err error }

	movieSavedMsg struct{ err error }

	movieDeletedMsg struct{ err error }
)

// Model is the application root. Navigation always passes through navigate,
// which consults the route guard before any view is rendered.
type Model struct {
	ctx        context.Context
	controller *session.Controller
	movies     *services.MovieService
	reviews    *services.ReviewService
	logger     *log.Logger

	route    Route
	intended Route

	movieList  list.Model
	reviewList list.Model
	selected   *models.Movie
	average    float64

	login     loginForm
	review    reviewForm
	movieForm movieForm
	reviewing bool
	editing   bool

	keys   keyMap
	help   help.Model
	status string
	errMsg string
	width  int
	height int
}

type ModelOpts struct {
	Context    context.Context
	Controller *session.Controller
	Movies     *services.MovieService
	Reviews    *services.ReviewService
	Logger     *log.Logger
}

func NewModel(opts ModelOpts) Model {
	movieList := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	movieList.Title = "Movies"
	movieList.SetShowHelp(false)

	reviewList := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	reviewList.Title = "Reviews"
	reviewList.SetShowHelp(false)

	return Model{
		ctx:        opts.Context,
		controller: opts.Controller,
		movies:     opts.Movies,
		reviews:    opts.Reviews,
		logger:     opts.Logger,
		route:      RouteHome,
		movieList:  movieList,
		reviewList: reviewList,
		login:      newLoginForm(),
		keys:       newKeyMap(),
		help:       help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return m.restoreCmd()
}

// navigate applies the guard decision for the target route. Redirects replace
// the target, and the intended route is remembered so a successful login can
// resume it.
func (m Model) navigate(to Route) (Model, tea.Cmd) {
	if role, ok := isProtected(to); ok {
		switch session.Decide(m.controller.Session(), role) {
		case session.ShowLoading:
			m.route = to
			return m, nil
		case session.RedirectLogin:
			m.intended = to
			m.route = RouteLogin
			m.login = newLoginForm()
			return m, nil
		case session.RedirectForbidden:
			m.route = RouteForbidden
			return m, nil
		}
	}

	m.route = to
	m.errMsg = ""
	m.reviewing = false
	m.editing = false

	switch to {
	case RouteMovies, RouteAdmin:
		m.selected = nil
		return m, m.fetchMoviesCmd()
	case RouteLogin:
		m.login = newLoginForm()
	}
	return m, nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.movieList.SetSize(msg.Width-4, msg.Height-8)
		m.reviewList.SetSize(msg.Width-4, msg.Height-12)
		return m, nil

	case sessionRestoredMsg:
		if m.route == RouteMovies || m.route == RouteAdmin {
			return toTea(m.navigate(m.route))
		}
		return m, nil

	case loginResultMsg:
		m.login.submitting = false
		if msg.err != nil {
			m.login.errMsg = msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("Signed in as %s", msg.sess.User.Username)
		target := m.intended
		if target == "" {
			target = RouteMovies
		}
		m.intended = ""
		return toTea(m.navigate(target))

	case logoutMsg:
		if msg.err != nil {
			m.logger.Warn("logout failed to clear storage", "error", msg.err)
		}
		m.status = "Signed out"
		return toTea(m.navigate(RouteHome))

	case moviesFetchedMsg:
		if handled, next, cmd := m.handleUnauthorized(msg.err); handled {
			return next, cmd
		}
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		items := make([]list.Item, len(msg.movies))
		for i, movie := range msg.movies {
			items[i] = movieItem{movie: movie}
		}
		m.errMsg = ""
		return m, m.movieList.SetItems(items)

	case movieDetailMsg:
		if handled, next, cmd := m.handleUnauthorized(msg.err); handled {
			return next, cmd
		}
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.selected = msg.movie
		m.average = msg.average
		items := make([]list.Item, len(msg.reviews))
		for i, review := range msg.reviews {
			items[i] = reviewItem{review: review}
		}
		m.errMsg = ""
		return m, m.reviewList.SetItems(items)

	case reviewSubmittedMsg:
		m.review.submitting = false
		if handled, next, cmd := m.handleUnauthorized(msg.err); handled {
			return next, cmd
		}
		if msg.err != nil {
			m.review.errMsg = msg.err.Error()
			return m, nil
		}
		m.reviewing = false
		m.status = "Review submitted"
		return m, m.fetchDetailCmd(m.selected.ID)

	case movieSavedMsg:
		m.movieForm.submitting = false
		if handled, next, cmd := m.handleUnauthorized(msg.err); handled {
			return next, cmd
		}
		if msg.err != nil {
			m.movieForm.errMsg = msg.err.Error()
			return m, nil
		}
		m.editing = false
		m.status = "Movie saved"
		return m, m.fetchMoviesCmd()

	case movieDeletedMsg:
		if handled, next, cmd := m.handleUnauthorized(msg.err); handled {
			return next, cmd
		}
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.status = "Movie deleted"
		return m, m.fetchMoviesCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleUnauthorized routes every expired-session error to the login view.
// Storage teardown already happened inside the gateway's hook, so the only
// job left here is navigation.
func (m Model) handleUnauthorized(err error) (bool, tea.Model, tea.Cmd) {
	if !api.IsUnauthorized(err) {
		return false, m, nil
	}
	m.status = "Session expired, please sign in again"
	next, cmd := m.navigate(RouteLogin)
	return true, next, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.quit) && !m.typing() {
		return m, tea.Quit
	}

	switch m.route {
	case RouteLogin:
		return m.updateLogin(msg)
	case RouteMovies:
		if m.reviewing {
			return m.updateReviewForm(msg)
		}
		return m.updateMovies(msg)
	case RouteAdmin:
		if m.editing {
			return m.updateMovieForm(msg)
		}
		return m.updateAdmin(msg)
	}

	switch {
	case key.Matches(msg, m.keys.home):
		return toTea(m.navigate(RouteHome))
	case key.Matches(msg, m.keys.movies):
		return toTea(m.navigate(RouteMovies))
	case key.Matches(msg, m.keys.admin):
		return toTea(m.navigate(RouteAdmin))
	case key.Matches(msg, m.keys.logout):
		return m, m.logoutCmd()
	case key.Matches(msg, m.keys.back):
		return toTea(m.navigate(RouteHome))
	}
	return m, nil
}

// typing reports whether a text input currently owns the keyboard, so plain
// letter shortcuts stay usable outside forms.
func (m Model) typing() bool {
	return m.route == RouteLogin || m.reviewing || m.editing
}

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		identifier, secret := m.login.Values()
		if identifier == "" || secret == "" {
			m.login.errMsg = "both fields are required"
			return m, nil
		}
		m.login.submitting = true
		m.login.errMsg = ""
		return m, m.loginCmd(identifier, secret)
	case "esc":
		m.intended = ""
		return toTea(m.navigate(RouteHome))
	}

	var cmd tea.Cmd
	m.login, cmd = m.login.Update(msg)
	return m, cmd
}

func (m Model) updateMovies(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.selected != nil {
		switch {
		case key.Matches(msg, m.keys.back):
			m.selected = nil
			return m, nil
		case key.Matches(msg, m.keys.review):
			m.reviewing = true
			m.review = newReviewForm(m.selected.ID)
			return m, nil
		}
		var cmd tea.Cmd
		m.reviewList, cmd = m.reviewList.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.movieList.SelectedItem().(movieItem); ok {
			return m, m.fetchDetailCmd(item.movie.ID)
		}
		return m, nil
	case key.Matches(msg, m.keys.refresh):
		return m, m.fetchMoviesCmd()
	case key.Matches(msg, m.keys.admin):
		return toTea(m.navigate(RouteAdmin))
	case key.Matches(msg, m.keys.logout):
		return m, m.logoutCmd()
	case key.Matches(msg, m.keys.back), key.Matches(msg, m.keys.home):
		return toTea(m.navigate(RouteHome))
	}

	var cmd tea.Cmd
	m.movieList, cmd = m.movieList.Update(msg)
	return m, cmd
}

func (m Model) updateAdmin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.create):
		m.editing = true
		m.movieForm = newMovieForm(nil)
		return m, nil
	case key.Matches(msg, m.keys.edit):
		if item, ok := m.movieList.SelectedItem().(movieItem); ok {
			m.editing = true
			movie := item.movie
			m.movieForm = newMovieForm(&movie)
		}
		return m, nil
	case key.Matches(msg, m.keys.delete):
		if item, ok := m.movieList.SelectedItem().(movieItem); ok {
			return m, m.deleteMovieCmd(item.movie.ID)
		}
		return m, nil
	case key.Matches(msg, m.keys.refresh):
		return m, m.fetchMoviesCmd()
	case key.Matches(msg, m.keys.movies):
		return toTea(m.navigate(RouteMovies))
	case key.Matches(msg, m.keys.logout):
		return m, m.logoutCmd()
	case key.Matches(msg, m.keys.back), key.Matches(msg, m.keys.home):
		return toTea(m.navigate(RouteHome))
	}

	var cmd tea.Cmd
	m.movieList, cmd = m.movieList.Update(msg)
	return m, cmd
}

func (m Model) updateReviewForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		review := m.review.Review()
		if err := review.Validate(); err != nil {
			m.review.errMsg = err.Error()
			return m, nil
		}
		m.review.submitting = true
		m.review.errMsg = ""
		return m, m.submitReviewCmd(review)
	case "esc":
		m.reviewing = false
		return m, nil
	}

	var cmd tea.Cmd
	m.review, cmd = m.review.Update(msg)
	return m, cmd
}

func (m Model) updateMovieForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		movie, err := m.movieForm.Movie()
		if err != nil {
			m.movieForm.errMsg = err.Error()
			return m, nil
		}
		m.movieForm.submitting = true
		m.movieForm.errMsg = ""
		return m, m.saveMovieCmd(movie)
	case "esc":
		m.editing = false
		return m, nil
	}

	var cmd tea.Cmd
	m.movieForm, cmd = m.movieForm.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	sess := m.controller.Session()
	if sess.Loading {
		return styles.warn.Render("Restoring session...") + "\n"
	}

	var body string
	switch m.route {
	case RouteHome:
		body = m.viewHome(sess)
	case RouteLogin:
		body = m.login.View()
	case RouteForbidden:
		body = styles.err.Render("403") + "\n\nYou do not have permission to view this page.\n\n" +
			styles.help.Render("g: home • q: quit")
	case RouteMovies:
		body = m.viewMovies()
	case RouteAdmin:
		body = m.viewAdmin()
	default:
		body = styles.err.Render("404") + "\n\nNothing here.\n\n" + styles.help.Render("g: home")
	}

	var footer strings.Builder
	if m.status != "" {
		footer.WriteString("\n" + styles.ok.Render(m.status))
	}
	if m.errMsg != "" {
		footer.WriteString("\n" + styles.err.Render(m.errMsg))
	}

	return body + footer.String() + "\n"
}

func (m Model) viewHome(sess session.Session) string {
	var b strings.Builder
	b.WriteString(styles.title.Render("CINEBASE"))
	b.WriteString("\n\n")

	if sess.Authenticated && sess.User != nil {
		b.WriteString(fmt.Sprintf("Signed in as %s (%s)\n\n", sess.User.Username, sess.User.Role))
		if sess.User.IsAdmin() {
			b.WriteString(styles.help.Render("m: movies • a: admin • L: logout • q: quit"))
		} else {
			b.WriteString(styles.help.Render("m: movies • L: logout • q: quit"))
		}
	} else {
		b.WriteString("Browse the movie catalog and share your reviews.\n\n")
		b.WriteString(styles.help.Render("m: movies (sign in required) • q: quit"))
	}
	return b.String()
}

func (m Model) viewMovies() string {
	if m.reviewing {
		return m.review.View()
	}

	if m.selected != nil {
		return m.viewDetail()
	}

	return m.movieList.View() + "\n" +
		styles.help.Render("enter: details • R: refresh • a: admin • L: logout • esc: home")
}

func (m Model) viewDetail() string {
	movie := m.selected
	var b strings.Builder
	b.WriteString(styles.title.Render(fmt.Sprintf("%s (%d)", movie.Title, movie.ReleaseYear)))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Director:  %s\n", movie.Director))
	b.WriteString(fmt.Sprintf("Genre:     %s\n", movie.Genre))
	b.WriteString(fmt.Sprintf("Jury:      %s (%.1f/10)\n", Stars(movie.Rating), movie.Rating))
	b.WriteString(fmt.Sprintf("Community: %s (%s/10)\n", Stars(m.average), movie.FormatAverage()))
	if movie.Description != "" {
		b.WriteString("\n" + movie.Description + "\n")
	}
	b.WriteString("\n" + m.reviewList.View() + "\n")
	b.WriteString(styles.help.Render("r: add review • esc: back"))
	return b.String()
}

func (m Model) viewAdmin() string {
	if m.editing {
		return m.movieForm.View()
	}

	return styles.title.Render("Catalog administration") + "\n" + m.movieList.View() + "\n" +
		styles.help.Render("n: new • e: edit • d: delete • R: refresh • m: movies • esc: home")
}

// Commands.

func (m Model) restoreCmd() tea.Cmd {
	return func() tea.Msg {
		return sessionRestoredMsg{sess: m.controller.Restore()}
	}
}

func (m Model) loginCmd(identifier, secret string) tea.Cmd {
	return func() tea.Msg {
		sess, err := m.controller.Login(m.ctx, identifier, secret)
		return loginResultMsg{sess: sess, err: err}
	}
}

func (m Model) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		return logoutMsg{err: m.controller.Logout()}
	}
}

func (m Model) fetchMoviesCmd() tea.Cmd {
	return func() tea.Msg {
		movies, err := m.movies.List(m.ctx)
		return moviesFetchedMsg{movies: movies, err: err}
	}
}

func (m Model) fetchDetailCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		movie, err := m.movies.Get(m.ctx, id)
		if err != nil {
			return movieDetailMsg{err: err}
		}
		reviews, err := m.reviews.ListByMovie(m.ctx, id)
		if err != nil {
			return movieDetailMsg{err: err}
		}
		average := m.reviews.AverageRating(m.ctx, id)
		return movieDetailMsg{movie: movie, reviews: reviews, average: average}
	}
}

func (m Model) submitReviewCmd(review *models.Review) tea.Cmd {
	return func() tea.Msg {
		_, err := m.reviews.Add(m.ctx, review)
		return reviewSubmittedMsg{err: err}
	}
}

func (m Model) saveMovieCmd(movie *models.Movie) tea.Cmd {
	return func() tea.Msg {
		var err error
		if movie.ID > 0 {
			_, err = m.movies.Update(m.ctx, movie.ID, movie)
		} else {
			_, err = m.movies.Create(m.ctx, movie)
		}
		return movieSavedMsg{err: err}
	}
}

func (m Model) deleteMovieCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		return movieDeletedMsg{err: m.movies.Delete(m.ctx, id)}
	}
}

// toTea adapts navigate's concrete return type to the tea.Model interface.
func toTea(m Model, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	return m, cmd
}
