package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nkhaled/moviedeck/internal/formatter"
	"github.com/nkhaled/moviedeck/internal/language"
	"github.com/nkhaled/moviedeck/internal/models"
	"github.com/nkhaled/moviedeck/internal/notify"
	"github.com/nkhaled/moviedeck/internal/services"
	"github.com/nkhaled/moviedeck/internal/session"
	"github.com/nkhaled/moviedeck/internal/tasks"
	"github.com/nkhaled/moviedeck/internal/wishlist"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	BrowseView ViewState = iota
	SearchView
	DetailView
	WishlistView
	LoginView
	RegisterView
)

// Feed selects which catalog listing the browse view shows.
type Feed int

const (
	FeedNowPlaying Feed = iota
	FeedPopular
	FeedTopRated
)

func (f Feed) String() string {
	switch f {
	case FeedNowPlaying:
		return "Now Playing"
	case FeedPopular:
		return "Popular"
	case FeedTopRated:
		return "Top Rated"
	default:
		return ""
	}
}

// Model represents the TUI application state.
type Model struct {
	ctx      context.Context
	catalog  services.Catalog
	session  *session.Manager
	wishlist *wishlist.Store
	language *language.Service
	center   *notify.Center
	engine   *tasks.Engine
	searcher *tasks.Searcher

	view   ViewState
	width  int
	height int

	feed      Feed
	movieList list.Model
	listReady bool

	searchForm *form
	searchList list.Model
	searchChan chan tasks.SearchResult

	detail     *models.MovieDetail
	trailer    *models.Video
	detailFrom ViewState

	wishlistList list.Model
	progressChan chan tasks.ProgressUpdate
	progress     tasks.ProgressUpdate
	refreshing   bool
	refreshDone  *tasks.RefreshResult
	refreshErr   error

	loginForm    *form
	registerForm *form

	toast *notify.Toast
	err   error
	help  help.Model
	keys  keyMap
}

// Opts contains the dependencies for constructing a Model.
type Opts struct {
	Catalog  services.Catalog
	Session  *session.Manager
	Wishlist *wishlist.Store
	Language *language.Service
	Center   *notify.Center
	Engine   *tasks.Engine
	// Theme selects the palette, "dark" (default) or "light".
	Theme string
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, opts Opts) *Model {
	applyTheme(opts.Theme)
	m := &Model{
		ctx:        ctx,
		catalog:    opts.Catalog,
		session:    opts.Session,
		wishlist:   opts.Wishlist,
		language:   opts.Language,
		center:     opts.Center,
		engine:     opts.Engine,
		view:       BrowseView,
		help:       help.New(),
		keys:       newKeyMap(),
		searchChan: make(chan tasks.SearchResult, 8),
		searchForm: newForm("Search Movies", formField{label: "Title", placeholder: "type to search"}),
		loginForm: newForm("Login",
			formField{label: "Email", placeholder: "you@example.com"},
			formField{label: "Password", secret: true},
		),
		registerForm: newForm("Create Account",
			formField{label: "Name", placeholder: "Your name"},
			formField{label: "Email", placeholder: "you@example.com"},
			formField{label: "Password", secret: true},
			formField{label: "Confirm Password", secret: true},
		),
	}

	m.searcher = tasks.NewSearcher(opts.Catalog, tasks.DefaultDebounce, func(r tasks.SearchResult) {
		select {
		case m.searchChan <- r:
		default:
		}
	})

	// The footer bar shows the latest toast until it expires.
	m.center.Subscribe(func(t notify.Toast) {
		m.toast = &t
	})

	return m
}

// Init starts the TUI by fetching the default feed.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.fetchFeed(m.feed), m.waitForSearch())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case BrowseView:
			return m.handleBrowseKeys(msg)
		case SearchView:
			return m.handleSearchKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		case WishlistView:
			return m.handleWishlistKeys(msg)
		case LoginView:
			return m.handleLoginKeys(msg)
		case RegisterView:
			return m.handleRegisterKeys(msg)
		}

	case moviesFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.feed = msg.feed
		m.movieList = list.New(movieItems(msg.page.Results), list.NewDefaultDelegate(), 0, 0)
		m.movieList.Title = msg.feed.String()
		m.listReady = true
		m.resizeLists()
		return m, nil

	case searchResultMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, m.waitForSearch()
		}
		m.err = nil
		var results []models.Movie
		if msg.Page != nil {
			results = msg.Page.Results
		}
		m.searchList = list.New(movieItems(results), list.NewDefaultDelegate(), 0, 0)
		m.searchList.Title = fmt.Sprintf("Results for %q", msg.Query)
		if msg.Query == "" {
			m.searchList.Title = "Search"
		}
		m.resizeLists()
		return m, m.waitForSearch()

	case detailFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = m.detailFrom
			return m, nil
		}
		m.err = nil
		m.detail = msg.detail
		m.trailer = nil
		if msg.videos != nil {
			m.trailer = msg.videos.Trailer()
		}
		m.view = DetailView
		return m, nil

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case refreshCompleteMsg:
		m.refreshing = false
		m.progressChan = nil
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		if msg.result != nil {
			m.wishlist.ReplaceItems(msg.result.Movies)
			m.reloadWishlistList()
		}
		return m, nil

	case toastExpiredMsg:
		if m.toast != nil && m.toast.ID == msg.id {
			m.toast = nil
		}
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	var body string
	switch m.view {
	case BrowseView:
		body = m.renderBrowse()
	case SearchView:
		body = m.renderSearch()
	case DetailView:
		body = m.renderDetail()
	case WishlistView:
		body = m.renderWishlist()
	case LoginView:
		body = m.loginForm.render() + m.helpLine(m.keys.enter, m.keys.back)
	case RegisterView:
		body = m.registerForm.render() + m.helpLine(m.keys.enter, m.keys.back)
	}

	return body + m.renderFooter()
}

func (m *Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.feed):
		next := (m.feed + 1) % 3
		return m, m.fetchFeed(next)
	case key.Matches(msg, m.keys.search):
		m.view = SearchView
		m.searchForm.reset()
		m.searcher.Reset()
		return m, nil
	case key.Matches(msg, m.keys.wishlist):
		return m.openWishlist()
	case key.Matches(msg, m.keys.language):
		return m, m.cycleLanguage()
	case key.Matches(msg, m.keys.toggle):
		if movie, ok := selectedMovie(m.movieList); ok {
			return m, m.toggleWishlist(movie)
		}
		return m, nil
	case key.Matches(msg, m.keys.enter):
		if movie, ok := selectedMovie(m.movieList); ok {
			m.detailFrom = BrowseView
			return m, m.fetchDetail(movie.ID)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.movieList, cmd = m.movieList.Update(msg)
	return m, cmd
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = BrowseView
		m.searcher.Reset()
		return m, nil
	case "enter":
		if movie, ok := selectedMovie(m.searchList); ok {
			m.detailFrom = SearchView
			return m, m.fetchDetail(movie.ID)
		}
		return m, nil
	case "down", "up":
		var cmd tea.Cmd
		m.searchList, cmd = m.searchList.Update(msg)
		return m, cmd
	}

	cmd := m.searchForm.update(msg)
	m.searcher.Query(m.ctx, m.searchForm.value(0))
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = m.detailFrom
		m.detail = nil
		return m, nil
	case key.Matches(msg, m.keys.toggle):
		if m.detail != nil {
			return m, m.toggleWishlist(m.detail.AsMovie())
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handleWishlistKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = BrowseView
		return m, nil
	case key.Matches(msg, m.keys.toggle):
		if movie, ok := selectedMovie(m.wishlistList); ok {
			cmd := m.toggleWishlist(movie)
			m.reloadWishlistList()
			return m, cmd
		}
		return m, nil
	case key.Matches(msg, m.keys.refresh):
		return m, m.startRefresh()
	case key.Matches(msg, m.keys.enter):
		if movie, ok := selectedMovie(m.wishlistList); ok {
			m.detailFrom = WishlistView
			return m, m.fetchDetail(movie.ID)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.wishlistList, cmd = m.wishlistList.Update(msg)
	return m, cmd
}

func (m *Model) handleLoginKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = BrowseView
		return m, nil
	case "ctrl+n":
		m.view = RegisterView
		m.registerForm.reset()
		return m, nil
	case "tab":
		m.loginForm.next()
		return m, nil
	case "shift+tab":
		m.loginForm.prev()
		return m, nil
	case "enter":
		if !m.loginForm.next() {
			return m, nil
		}
		result := m.session.Login(m.ctx, models.LoginCredentials{
			Email:    m.loginForm.value(0),
			Password: m.loginForm.inputs[1].Value(),
		})
		return m.finishAuth(result)
	}
	return m, m.loginForm.update(msg)
}

func (m *Model) handleRegisterKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = LoginView
		return m, nil
	case "tab":
		m.registerForm.next()
		return m, nil
	case "shift+tab":
		m.registerForm.prev()
		return m, nil
	case "enter":
		if !m.registerForm.next() {
			return m, nil
		}
		result := m.session.Register(m.ctx, models.RegisterData{
			Name:            m.registerForm.value(0),
			Email:           m.registerForm.value(1),
			Password:        m.registerForm.inputs[2].Value(),
			ConfirmPassword: m.registerForm.inputs[3].Value(),
		})
		return m.finishAuth(result)
	}
	return m, m.registerForm.update(msg)
}

// finishAuth routes back to browse on success and surfaces the failure
// message as a toast otherwise.
func (m *Model) finishAuth(result models.AuthResult) (tea.Model, tea.Cmd) {
	if !result.Success {
		m.center.Errorf("%s", result.Message)
		return m, m.expireToast()
	}
	m.center.Successf("Welcome, %s!", result.User.Name)
	m.view = BrowseView
	return m, m.expireToast()
}

func (m *Model) openWishlist() (tea.Model, tea.Cmd) {
	if !m.session.IsAuthenticated() {
		m.center.Errorf("Please login to view your wishlist")
		m.view = LoginView
		m.loginForm.reset()
		return m, m.expireToast()
	}
	m.reloadWishlistList()
	m.view = WishlistView
	return m, nil
}

func (m *Model) reloadWishlistList() {
	m.wishlistList = list.New(movieItems(m.wishlist.Items()), list.NewDefaultDelegate(), 0, 0)
	m.wishlistList.Title = fmt.Sprintf("Wishlist (%d)", m.wishlist.Count())
	m.resizeLists()
}

// toggleWishlist flips membership and, when the user is anonymous, routes to
// the login form. The store has already emitted the explanatory toast.
func (m *Model) toggleWishlist(movie models.Movie) tea.Cmd {
	m.wishlist.Toggle(m.ctx, movie)
	if !m.session.IsAuthenticated() {
		m.view = LoginView
		m.loginForm.reset()
	}
	return m.expireToast()
}

// cycleLanguage advances to the next configured language and refreshes
// localized data: the current feed and, when signed in, the wishlist.
func (m *Model) cycleLanguage() tea.Cmd {
	supported := m.language.Supported()
	if len(supported) < 2 {
		return nil
	}
	current := m.language.Current()
	next := supported[0]
	for i, code := range supported {
		if code == current {
			next = supported[(i+1)%len(supported)]
			break
		}
	}
	if err := m.language.Set(m.ctx, next); err != nil {
		m.err = err
		return nil
	}
	m.center.Infof("Language: %s", m.language.Name(next))

	cmds := []tea.Cmd{m.fetchFeed(m.feed), m.expireToast()}
	if m.session.IsAuthenticated() && m.wishlist.Count() > 0 {
		cmds = append(cmds, m.startRefresh())
	}
	return tea.Batch(cmds...)
}

func (m *Model) startRefresh() tea.Cmd {
	if m.refreshing || m.wishlist.Count() == 0 {
		return nil
	}
	m.refreshing = true
	m.refreshDone = nil
	m.refreshErr = nil
	m.progressChan = make(chan tasks.ProgressUpdate, 50)

	items := m.wishlist.Items()
	go func() {
		result, err := m.engine.RefreshWishlist(m.ctx, m.progressChan, items, tasks.RefreshOpts{})
		m.refreshDone = result
		m.refreshErr = err
		close(m.progressChan)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		if m.progressChan == nil {
			return refreshCompleteMsg{result: m.refreshDone, err: m.refreshErr}
		}
		update, ok := <-m.progressChan
		if !ok {
			return refreshCompleteMsg{result: m.refreshDone, err: m.refreshErr}
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) waitForSearch() tea.Cmd {
	return func() tea.Msg {
		return searchResultMsg(<-m.searchChan)
	}
}

func (m *Model) fetchFeed(feed Feed) tea.Cmd {
	return func() tea.Msg {
		var page *models.MoviePage
		var err error
		switch feed {
		case FeedPopular:
			page, err = m.catalog.Popular(m.ctx, 1)
		case FeedTopRated:
			page, err = m.catalog.TopRated(m.ctx, 1)
		default:
			page, err = m.catalog.NowPlaying(m.ctx, 1)
		}
		return moviesFetchedMsg{feed: feed, page: page, err: err}
	}
}

func (m *Model) fetchDetail(movieID int) tea.Cmd {
	return func() tea.Msg {
		detail, err := m.catalog.MovieDetails(m.ctx, movieID)
		if err != nil {
			return detailFetchedMsg{err: err}
		}
		// Trailer lookup failures are not fatal to the detail view.
		videos, err := m.catalog.Videos(m.ctx, movieID)
		if err != nil {
			videos = nil
		}
		return detailFetchedMsg{detail: detail, videos: videos}
	}
}

// expireToast schedules clearing the footer toast after its duration.
func (m *Model) expireToast() tea.Cmd {
	if m.toast == nil {
		return nil
	}
	id := m.toast.ID
	return tea.Tick(m.toast.Duration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case BrowseView:
		if m.listReady {
			m.movieList, cmd = m.movieList.Update(msg)
		}
	case SearchView:
		m.searchList, cmd = m.searchList.Update(msg)
	case WishlistView:
		m.wishlistList, cmd = m.wishlistList.Update(msg)
	}
	return m, cmd
}

func (m *Model) resizeLists() {
	if m.width == 0 {
		return
	}
	for _, l := range []*list.Model{&m.movieList, &m.searchList, &m.wishlistList} {
		l.SetSize(m.width-4, m.height-8)
	}
}

func (m *Model) renderBrowse() string {
	if !m.listReady {
		return styles.help.Render("Loading catalog...")
	}
	return fmt.Sprintf("%s\n\n%s", m.movieList.View(),
		m.helpLine(m.keys.enter, m.keys.feed, m.keys.search, m.keys.wishlist, m.keys.toggle, m.keys.language, m.keys.quit))
}

func (m *Model) renderSearch() string {
	return fmt.Sprintf("%s\n%s\n\n%s", m.searchForm.render(), m.searchList.View(),
		m.helpLine(m.keys.enter, m.keys.back))
}

func (m *Model) renderDetail() string {
	if m.detail == nil {
		return styles.help.Render("Loading...")
	}

	body := string(formatter.DetailToText(m.detail))
	var marker string
	if m.wishlist.Contains(m.detail.ID) {
		marker = styles.ok.Render("♥ In your wishlist")
	}
	var trailer string
	if m.trailer != nil {
		trailer = styles.help.Render("Trailer: " + services.YouTubeURL(m.trailer.Key))
	}

	return fmt.Sprintf("%s\n%s\n%s\n\n%s", body, marker, trailer,
		m.helpLine(m.keys.toggle, m.keys.back, m.keys.quit))
}

func (m *Model) renderWishlist() string {
	if m.refreshing {
		title := styles.title.Render("Refreshing Wishlist")
		phase := m.progress.Message
		if m.progress.Total > 0 {
			phase = fmt.Sprintf("(%d/%d) %s", m.progress.Step, m.progress.Total, m.progress.Message)
		}
		return fmt.Sprintf("%s\n\n%s", title, phase)
	}
	return fmt.Sprintf("%s\n\n%s", m.wishlistList.View(),
		m.helpLine(m.keys.enter, m.keys.toggle, m.keys.refresh, m.keys.back, m.keys.quit))
}

func (m *Model) renderFooter() string {
	var footer string
	if m.err != nil {
		footer = "\n" + styles.err.Render(fmt.Sprintf("Error: %v", m.err))
	}
	if m.toast != nil {
		style := styles.ok
		switch m.toast.Level {
		case notify.Error:
			style = styles.err
		case notify.Warning:
			style = styles.warn
		case notify.Info:
			style = styles.help
		}
		footer += "\n" + style.Render(m.toast.Message)
	}
	return footer
}

func (m *Model) helpLine(bindings ...key.Binding) string {
	return m.help.ShortHelpView(bindings)
}
