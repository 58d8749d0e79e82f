package geobooks

import "context"

// NavLink is one navigation entry.
type NavLink struct {
	Label string
	Path  string
}

// NavSet is the derived navigation for the current visitor.
type NavSet struct {
	// Top is the main navigation: Home always, Dashboard only with a session.
	Top []NavLink
	// Dashboard is the sidebar menu, shaped by the visitor's role.
	Dashboard []NavLink
}

// NavComposer derives navigation from session presence and the fetched role.
type NavComposer struct {
	client *Client
}

func NewNavComposer(client *Client) *NavComposer {
	return &NavComposer{client: client}
}

// Compose builds the navigation for state. The role lookup is keyed by the
// session email and only issued once an email is known; a missing profile
// record falls back to the plain user menu.
func (n *NavComposer) Compose(ctx context.Context, state SessionState) (NavSet, error) {
	set := NavSet{Top: []NavLink{{Label: "Home", Path: "/"}}}

	if state.Loading || state.User == nil || state.User.Email == "" {
		return set, nil
	}

	set.Top = append(set.Top, NavLink{Label: "Dashboard", Path: "/dashboard"})

	role := RoleUser
	profile, err := n.client.UserByEmail(ctx, state.User.Email)
	switch {
	case err == nil:
		role = profile.Role
	case IsNotFound(err):
		// no profile record yet
	default:
		return set, err
	}

	set.Dashboard = DashboardLinks(role)
	return set, nil
}

// DashboardLinks returns the sidebar entries for a role: the admin actions,
// or the borrower's own history.
func DashboardLinks(role string) []NavLink {
	if role == RoleAdmin {
		return []NavLink{
			{Label: "Add Book", Path: "/dashboard/addbook"},
			{Label: "Borrow Book", Path: "/dashboard/borrowbook"},
			{Label: "Return Book", Path: "/dashboard/returnbook"},
		}
	}
	return []NavLink{
		{Label: "Borrowed Book", Path: "/dashboard/myborrowedbook"},
	}
}
