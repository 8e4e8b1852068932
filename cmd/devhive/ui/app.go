package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vxrdhxn/dev-hive-2nd-version/internal/api"
)

// App is the navigation shell. It maps the four routes to their page models
// and renders the persistent nav bar around whichever page is active. Each
// page owns its own request state; the shell only routes messages.
type App struct {
	styles Styles
	route  Route

	dashboard    DashboardModel
	search       SearchModel
	ask          AskModel
	integrations IntegrationsModel

	initCmd tea.Cmd
	width   int
	height  int
	ready   bool
}

// NewApp wires the four pages to one transport client. The dashboard and
// integrations pages begin their stats fetch as soon as the program starts.
func NewApp(client *api.Client, styles Styles) App {
	dashboard, dashCmd := NewDashboardModel(client, styles)
	integrations, integrationsCmd := NewIntegrationsModel(client, styles)

	return App{
		styles:       styles,
		route:        RouteDashboard,
		dashboard:    dashboard,
		search:       NewSearchModel(client, styles),
		ask:          NewAskModel(client, styles),
		integrations: integrations,
		initCmd:      tea.Batch(dashCmd, integrationsCmd),
	}
}

// Route returns the currently active route.
func (a App) Route() Route { return a.route }

// Init starts the automatic fetches.
func (a App) Init() tea.Cmd {
	return a.initCmd
}

// Navigate switches to the route for the given path. Unknown paths land on
// the dashboard.
func (a App) Navigate(path string) App {
	a.route = RouteForPath(path)
	return a
}

// setSizes propagates the window size to every page.
func (a *App) setSizes() {
	contentHeight := max(5, a.height-6)
	a.dashboard.SetSize(a.width, contentHeight)
	a.search.SetSize(a.width, contentHeight)
	a.ask.SetSize(a.width, contentHeight)
	a.integrations.SetSize(a.width, contentHeight)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.setSizes()
		return a, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return a, tea.Quit
		case tea.KeyTab:
			a.route = a.route.next()
			return a, nil
		case tea.KeyShiftTab:
			a.route = a.route.prev()
			return a, nil
		}
		if msg.Alt && len(msg.Runes) == 1 {
			switch msg.Runes[0] {
			case '1':
				a.route = RouteDashboard
				return a, nil
			case '2':
				a.route = RouteSearch
				return a, nil
			case '3':
				a.route = RouteAsk
				return a, nil
			case '4':
				a.route = RouteIntegrations
				return a, nil
			}
		}
		// Keys go only to the active page.
		return a.updateActive(msg)
	}

	// Everything else (responses, spinner ticks) is fanned out to all
	// pages: a page may receive its response while another is active.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	a.dashboard, cmd = a.dashboard.Update(msg)
	cmds = append(cmds, cmd)
	a.search, cmd = a.search.Update(msg)
	cmds = append(cmds, cmd)
	a.ask, cmd = a.ask.Update(msg)
	cmds = append(cmds, cmd)
	a.integrations, cmd = a.integrations.Update(msg)
	cmds = append(cmds, cmd)
	return a, tea.Batch(cmds...)
}

func (a App) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.route {
	case RouteSearch:
		a.search, cmd = a.search.Update(msg)
	case RouteAsk:
		a.ask, cmd = a.ask.Update(msg)
	case RouteIntegrations:
		a.integrations, cmd = a.integrations.Update(msg)
	default:
		a.dashboard, cmd = a.dashboard.Update(msg)
	}
	return a, cmd
}

// renderNav renders the persistent navigation bar. Exactly the active
// route's link is highlighted.
func (a App) renderNav() string {
	items := make([]string, 0, len(routeOrder)*2)
	for i, route := range routeOrder {
		if i > 0 {
			items = append(items, " ")
		}
		if route == a.route {
			items = append(items, a.styles.NavActive.Render(route.Title()))
		} else {
			items = append(items, a.styles.NavInactive.Render(route.Title()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, items...)
}

func (a App) renderHeader() string {
	title := a.styles.Header.Render(" DevHive ")
	subtitle := a.styles.Subtitle.Render("Unified Knowledge Hub")
	top := lipgloss.JoinHorizontal(lipgloss.Center, title, " ", subtitle)
	return lipgloss.JoinVertical(lipgloss.Left, top, a.renderNav(), a.styles.RenderDivider(a.width))
}

func (a App) renderFooter() string {
	return a.styles.Footer.Render("Tab: next page | Shift+Tab: previous | Alt+1..4: jump | Ctrl+C: quit")
}

// View implements tea.Model.
func (a App) View() string {
	if !a.ready {
		return "Initializing..."
	}

	var page string
	switch a.route {
	case RouteSearch:
		page = a.search.View()
	case RouteAsk:
		page = a.ask.View()
	case RouteIntegrations:
		page = a.integrations.View()
	default:
		page = a.dashboard.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		a.renderHeader(),
		a.styles.Content.Render(page),
		a.renderFooter(),
	)
}
