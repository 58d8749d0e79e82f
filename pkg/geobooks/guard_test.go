package geobooks

import "testing"

func TestGuard_PendingWhileLoading(t *testing.T) {
	// Loading wins even when a user is already present from a previous state.
	states := []SessionState{
		{User: nil, Loading: true},
		{User: &Identity{Email: "a@example.com"}, Loading: true},
	}
	for _, state := range states {
		res := Guard(state, "/dashboard")
		if res.Decision != Pending {
			t.Fatalf("expected pending for %+v, got %s", state, res.Decision)
		}
		if res.RedirectTo != "" {
			t.Fatalf("pending must not redirect, got %q", res.RedirectTo)
		}
	}
}

func TestGuard_DeniedRedirectsWithRequestedPath(t *testing.T) {
	res := Guard(SessionState{User: nil, Loading: false}, "/dashboard/addbook")
	if res.Decision != Denied {
		t.Fatalf("expected denied, got %s", res.Decision)
	}
	if res.RedirectTo != "/login?from=%2Fdashboard%2Faddbook" {
		t.Fatalf("unexpected redirect target: %q", res.RedirectTo)
	}
}

func TestGuard_GrantedWithSession(t *testing.T) {
	res := Guard(SessionState{User: &Identity{Email: "a@example.com"}, Loading: false}, "/dashboard")
	if res.Decision != Granted {
		t.Fatalf("expected granted, got %s", res.Decision)
	}
	if res.RedirectTo != "" {
		t.Fatalf("granted must not redirect, got %q", res.RedirectTo)
	}
}
