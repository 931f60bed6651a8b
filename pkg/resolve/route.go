package resolve

import "strings"

// RouteKind classifies the navigation paths the guard cares about. Anything
// else (landing page, account settings, unknown) is RouteOther.
type RouteKind string

const (
	RouteLogin          RouteKind = "login"
	RouteSignup         RouteKind = "signup"
	RouteOnboarding     RouteKind = "onboarding"
	RoutePropertyPicker RouteKind = "property-picker"
	RouteDashboard      RouteKind = "dashboard"
	RouteAnalytics      RouteKind = "analytics"
	RouteSettings       RouteKind = "settings"
	RouteOther          RouteKind = "other"
)

const (
	PathLogin          = "/login"
	PathSignup         = "/signup"
	PathOnboarding     = "/onboarding"
	PathPropertyPicker = "/property-picker"
)

// Route is a classified navigation path. PropertyID is set only for
// property-scoped kinds and is whatever the path segment carried; ownership
// is checked by the resolver, not here.
type Route struct {
	Kind       RouteKind
	PropertyID string
}

func (r Route) IsPropertyScoped() bool {
	switch r.Kind {
	case RouteDashboard, RouteAnalytics, RouteSettings:
		return true
	}
	return false
}

// Classify parses a navigation path into a Route. Trailing slashes and
// query strings are ignored.
func Classify(path string) Route {
	path = strings.TrimSuffix(strings.SplitN(path, "?", 2)[0], "/")
	if path == "" {
		return Route{Kind: RouteOther}
	}

	switch path {
	case PathLogin:
		return Route{Kind: RouteLogin}
	case PathSignup:
		return Route{Kind: RouteSignup}
	case PathOnboarding:
		return Route{Kind: RouteOnboarding}
	case PathPropertyPicker:
		return Route{Kind: RoutePropertyPicker}
	}

	segments := strings.Split(strings.TrimPrefix(path, "/"), "/")
	if len(segments) == 2 && segments[1] != "" {
		switch segments[0] {
		case "dashboard":
			return Route{Kind: RouteDashboard, PropertyID: segments[1]}
		case "analytics":
			return Route{Kind: RouteAnalytics, PropertyID: segments[1]}
		case "settings":
			return Route{Kind: RouteSettings, PropertyID: segments[1]}
		}
	}

	return Route{Kind: RouteOther}
}

// DashboardPath builds the dashboard path for a property.
func DashboardPath(propertyID string) string {
	return "/dashboard/" + propertyID
}
