package ui

// Route identifies one of the four pages.
type Route int

const (
	RouteDashboard Route = iota
	RouteSearch
	RouteAsk
	RouteIntegrations
)

// routeOrder is the nav bar order.
var routeOrder = []Route{RouteDashboard, RouteSearch, RouteAsk, RouteIntegrations}

// Path returns the navigable path for the route.
func (r Route) Path() string {
	switch r {
	case RouteSearch:
		return "/search"
	case RouteAsk:
		return "/ask"
	case RouteIntegrations:
		return "/integrations"
	default:
		return "/"
	}
}

// Title returns the nav label for the route.
func (r Route) Title() string {
	switch r {
	case RouteSearch:
		return "Search"
	case RouteAsk:
		return "Ask"
	case RouteIntegrations:
		return "Integrations"
	default:
		return "Dashboard"
	}
}

// RouteForPath maps a path to its route. Anything unrecognized falls back to
// the dashboard; there is no dedicated not-found page.
func RouteForPath(path string) Route {
	switch path {
	case "/search":
		return RouteSearch
	case "/ask":
		return RouteAsk
	case "/integrations":
		return RouteIntegrations
	default:
		return RouteDashboard
	}
}

// next returns the route after r in nav order, wrapping around.
func (r Route) next() Route {
	for i, route := range routeOrder {
		if route == r {
			return routeOrder[(i+1)%len(routeOrder)]
		}
	}
	return RouteDashboard
}

// prev returns the route before r in nav order, wrapping around.
func (r Route) prev() Route {
	for i, route := range routeOrder {
		if route == r {
			return routeOrder[(i+len(routeOrder)-1)%len(routeOrder)]
		}
	}
	return RouteDashboard
}
