package resolve

import (
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		path     string
		wantKind RouteKind
		wantID   string
	}{
		{"/login", RouteLogin, ""},
		{"/signup", RouteSignup, ""},
		{"/onboarding", RouteOnboarding, ""},
		{"/onboarding/", RouteOnboarding, ""},
		{"/property-picker", RoutePropertyPicker, ""},
		{"/dashboard/p1", RouteDashboard, "p1"},
		{"/analytics/p2?range=week", RouteAnalytics, "p2"},
		{"/settings/p3/", RouteSettings, "p3"},
		{"/dashboard", RouteOther, ""},
		{"/", RouteOther, ""},
		{"", RouteOther, ""},
		{"/pricing", RouteOther, ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := Classify(tt.path)
			if got.Kind != tt.wantKind {
				t.Errorf("Classify(%q).Kind = %q, want %q", tt.path, got.Kind, tt.wantKind)
			}
			if got.PropertyID != tt.wantID {
				t.Errorf("Classify(%q).PropertyID = %q, want %q", tt.path, got.PropertyID, tt.wantID)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		want Decision
	}{
		{
			name: "unauthenticated redirects to login with return path",
			in:   Input{Authenticated: false, Path: "/dashboard/p1"},
			want: Decision{Kind: DecisionRedirect, Path: PathLogin, ReturnTo: "/dashboard/p1"},
		},
		{
			name: "zero properties on dashboard goes to onboarding",
			in:   Input{Authenticated: true, Path: "/dashboard/abc"},
			want: Decision{Kind: DecisionRedirect, Path: PathOnboarding},
		},
		{
			name: "zero properties already on onboarding is allowed",
			in:   Input{Authenticated: true, Path: "/onboarding"},
			want: Decision{Kind: DecisionAllow},
		},
		{
			name: "single property on onboarding bounces to its dashboard",
			in: Input{
				Authenticated:    true,
				OwnedPropertyIDs: []string{"p1"},
				Path:             "/onboarding",
			},
			want: Decision{Kind: DecisionRedirect, Path: "/dashboard/p1"},
		},
		{
			name: "multiple properties on onboarding bounce to picker",
			in: Input{
				Authenticated:    true,
				OwnedPropertyIDs: []string{"p1", "p2"},
				Path:             "/onboarding",
			},
			want: Decision{Kind: DecisionRedirect, Path: PathPropertyPicker},
		},
		{
			name: "multiple properties on a neutral path forces the picker",
			in: Input{
				Authenticated:    true,
				OwnedPropertyIDs: []string{"p1", "p2"},
				Path:             "/",
			},
			want: Decision{Kind: DecisionRedirect, Path: PathPropertyPicker},
		},
		{
			name: "property-scoped route is never interrupted by the multi-property redirect",
			in: Input{
				Authenticated:    true,
				OwnedPropertyIDs: []string{"p1", "p2"},
				Path:             "/dashboard/p1",
			},
			want: Decision{Kind: DecisionAllow, PropertyID: "p1"},
		},
		{
			name: "path id wins over stored preferences",
			in: Input{
				Authenticated:      true,
				OwnedPropertyIDs:   []string{"p1", "p2"},
				ProfilePreferredID: "p2",
				LocalCachedID:      "p2",
				Path:               "/analytics/p1",
			},
			want: Decision{Kind: DecisionAllow, PropertyID: "p1"},
		},
		{
			name: "unowned path id falls back to profile preference",
			in: Input{
				Authenticated:      true,
				OwnedPropertyIDs:   []string{"p1", "p2"},
				ProfilePreferredID: "p2",
				Path:               "/dashboard/stranger",
			},
			want: Decision{Kind: DecisionAllow, PropertyID: "p2"},
		},
		{
			name: "local cache used when profile preference is stale",
			in: Input{
				Authenticated:      true,
				OwnedPropertyIDs:   []string{"p1", "p2"},
				ProfilePreferredID: "gone",
				LocalCachedID:      "p1",
				Path:               "/settings/ghost",
			},
			want: Decision{Kind: DecisionAllow, PropertyID: "p1"},
		},
		{
			name: "single property always resolves its own context",
			in: Input{
				Authenticated:    true,
				OwnedPropertyIDs: []string{"p1"},
				Path:             "/property-picker",
			},
			want: Decision{Kind: DecisionAllow, PropertyID: "p1"},
		},
		{
			name: "multi property scoped route with no usable hint leaves context unset",
			in: Input{
				Authenticated:    true,
				OwnedPropertyIDs: []string{"p1", "p2"},
				Path:             "/dashboard/ghost",
			},
			want: Decision{Kind: DecisionAllow, PropertyID: ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.in)
			if got.Kind != tt.want.Kind {
				t.Fatalf("Kind = %q, want %q", got.Kind, tt.want.Kind)
			}
			if got.PropertyID != tt.want.PropertyID {
				t.Errorf("PropertyID = %q, want %q", got.PropertyID, tt.want.PropertyID)
			}
			if got.Path != tt.want.Path {
				t.Errorf("Path = %q, want %q", got.Path, tt.want.Path)
			}
			if got.ReturnTo != tt.want.ReturnTo {
				t.Errorf("ReturnTo = %q, want %q", got.ReturnTo, tt.want.ReturnTo)
			}
		})
	}
}

// Resolution must be stable: the same inputs always produce the same
// decision, no matter how often the guard re-evaluates on navigation.
func TestResolveDeterministic(t *testing.T) {
	in := Input{
		Authenticated:      true,
		OwnedPropertyIDs:   []string{"p1", "p2", "p3"},
		ProfilePreferredID: "p2",
		Path:               "/analytics/p3",
	}
	first := Resolve(in)
	for i := 0; i < 100; i++ {
		if got := Resolve(in); got != first {
			t.Fatalf("Resolve is not deterministic: %+v != %+v", got, first)
		}
	}
}
