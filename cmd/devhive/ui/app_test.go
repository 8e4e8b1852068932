package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestApp() App {
	app := NewApp(testClient(), NewStyles(LightTheme()))
	model, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return model.(App)
}

func TestRouteForPathCatchAll(t *testing.T) {
	cases := map[string]Route{
		"/":             RouteDashboard,
		"/search":       RouteSearch,
		"/ask":          RouteAsk,
		"/integrations": RouteIntegrations,
		"/flashcards":   RouteDashboard, // unknown paths redirect to the default view
		"":              RouteDashboard,
	}
	for path, want := range cases {
		if got := RouteForPath(path); got != want {
			t.Errorf("RouteForPath(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestNavigateUnknownPathLandsOnDashboard(t *testing.T) {
	app := newTestApp()
	app = app.Navigate("/does-not-exist")
	if app.Route() != RouteDashboard {
		t.Fatalf("unknown path must land on dashboard, got %v", app.Route())
	}
}

func TestTabCyclesThroughAllFourRoutes(t *testing.T) {
	app := newTestApp()

	want := []Route{RouteSearch, RouteAsk, RouteIntegrations, RouteDashboard}
	for _, expected := range want {
		model, _ := app.Update(tea.KeyMsg{Type: tea.KeyTab})
		app = model.(App)
		if app.Route() != expected {
			t.Fatalf("expected route %v after tab, got %v", expected, app.Route())
		}
	}

	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	app = model.(App)
	if app.Route() != RouteIntegrations {
		t.Fatalf("shift+tab must cycle backwards, got %v", app.Route())
	}
}

func TestAltDigitJumpsDirectly(t *testing.T) {
	app := newTestApp()
	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'3'}, Alt: true})
	app = model.(App)
	if app.Route() != RouteAsk {
		t.Fatalf("alt+3 must open the ask page, got %v", app.Route())
	}
}

func TestNavBarListsAllFourLinks(t *testing.T) {
	app := newTestApp()
	view := app.View()
	for _, label := range []string{"Dashboard", "Search", "Ask", "Integrations"} {
		if !strings.Contains(view, label) {
			t.Errorf("nav bar missing %q", label)
		}
	}
}

func TestShellStaysInteractiveWhilePagePending(t *testing.T) {
	// The dashboard is pending at start; navigation must still work and the
	// other pages must render their own state, not the dashboard's.
	app := newTestApp()
	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app = model.(App)
	if app.Route() != RouteSearch {
		t.Fatal("navigation must work while a sibling request is in flight")
	}
	if !strings.Contains(app.View(), "Type a query") {
		t.Fatalf("search page must render idle, not the dashboard's pending state: %q", app.View())
	}
}

func TestResponsesReachBackgroundPages(t *testing.T) {
	// A stats response arriving while the user is on another page must
	// still complete the dashboard's request.
	app := newTestApp()
	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyTab}) // move to search
	app = model.(App)

	model, _ = app.Update(statsLoadedMsg{page: RouteDashboard, seq: 1, snap: testSnapshot()})
	app = model.(App)

	if app.dashboard.Loading() {
		t.Fatal("background page must receive its response")
	}
	app = app.Navigate("/")
	if !strings.Contains(app.View(), "120") {
		t.Fatal("dashboard must show the data fetched in the background")
	}
}
