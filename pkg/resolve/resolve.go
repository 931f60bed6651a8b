// Package resolve decides which property context an authenticated user
// should land on for a given navigation path. It is pure: callers gather
// session state, owned properties, and stored preferences; Resolve returns
// either an allow (with the active property, possibly unset) or a redirect.
package resolve

type DecisionKind string

const (
	DecisionAllow    DecisionKind = "allow"
	DecisionRedirect DecisionKind = "redirect"
)

type Decision struct {
	Kind DecisionKind

	// PropertyID is the active property context for an allow decision.
	// Empty means no context could be derived and the caller must show a
	// picker.
	PropertyID string

	// Path is the redirect target for a redirect decision. ReturnTo carries
	// the originally requested path so sign-in can bounce back.
	Path     string
	ReturnTo string
}

func Allow(propertyID string) Decision {
	return Decision{Kind: DecisionAllow, PropertyID: propertyID}
}

func Redirect(path string) Decision {
	return Decision{Kind: DecisionRedirect, Path: path}
}

type Input struct {
	Authenticated bool

	// OwnedPropertyIDs is the set of properties owned by the session user.
	// When the ownership fetch failed upstream, the caller passes an empty
	// set: absence of proof of ownership fails closed.
	OwnedPropertyIDs []string

	// ProfilePreferredID is the preference stored on the user profile,
	// LocalCachedID the locally cached last-used id. Either may be empty.
	ProfilePreferredID string
	LocalCachedID      string

	Path string
}

// Resolve evaluates the guard rules in precedence order, first match wins.
func Resolve(in Input) Decision {
	route := Classify(in.Path)

	// 1. No session: to login, carrying the original path for the bounce.
	if !in.Authenticated {
		d := Redirect(PathLogin)
		d.ReturnTo = in.Path
		return d
	}

	owned := make(map[string]bool, len(in.OwnedPropertyIDs))
	for _, id := range in.OwnedPropertyIDs {
		owned[id] = true
	}

	// 2. Already has a property but sits on onboarding: bounce away so the
	// user cannot re-onboard.
	if route.Kind == RouteOnboarding && len(owned) > 0 {
		if len(owned) == 1 {
			return Redirect(DashboardPath(in.OwnedPropertyIDs[0]))
		}
		return Redirect(PathPropertyPicker)
	}

	// 3. Nothing owned yet: everything funnels into onboarding.
	if len(owned) == 0 && route.Kind != RouteOnboarding {
		return Redirect(PathOnboarding)
	}

	// 4. Multiple properties force an explicit pick, but never interrupt a
	// user already inside a specific property's pages.
	if len(owned) > 1 && route.Kind != RoutePropertyPicker && route.Kind != RouteOnboarding && !route.IsPropertyScoped() {
		return Redirect(PathPropertyPicker)
	}

	// 5. Allow; derive the context from the path first, then the stored
	// preferences. Ids not in the owned set are ignored rather than trusted.
	if route.IsPropertyScoped() && owned[route.PropertyID] {
		return Allow(route.PropertyID)
	}
	if owned[in.ProfilePreferredID] {
		return Allow(in.ProfilePreferredID)
	}
	if owned[in.LocalCachedID] {
		return Allow(in.LocalCachedID)
	}
	if len(in.OwnedPropertyIDs) == 1 {
		return Allow(in.OwnedPropertyIDs[0])
	}
	return Allow("")
}
