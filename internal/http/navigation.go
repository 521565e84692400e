package httpx

import (
	"net/http"

	domainauth "github.com/salesops/so-ui-api/internal/domain/auth"
)

// NavItem is one entry in the side menu.
type NavItem struct {
	Label string `json:"label"`
	Path  string `json:"path"`
	Icon  string `json:"icon,omitempty"`
}

// navItemsByRole is the role-keyed menu. Admins see everything the sales
// force sees plus account administration.
var navItemsByRole = map[domainauth.Role][]NavItem{
	domainauth.RoleSalesPerson: {
		{Label: "Dashboard", Path: "/", Icon: "home"},
		{Label: "Leads", Path: "/leads", Icon: "target"},
		{Label: "Opportunities", Path: "/opportunities", Icon: "trending-up"},
		{Label: "Sales Requests", Path: "/sales-requests", Icon: "inbox"},
		{Label: "Sales Orders", Path: "/sales-orders", Icon: "clipboard"},
		{Label: "Customers", Path: "/customers", Icon: "users"},
	},
	domainauth.RoleAdmin: {
		{Label: "Dashboard", Path: "/", Icon: "home"},
		{Label: "Leads", Path: "/leads", Icon: "target"},
		{Label: "Opportunities", Path: "/opportunities", Icon: "trending-up"},
		{Label: "Sales Requests", Path: "/sales-requests", Icon: "inbox"},
		{Label: "Sales Orders", Path: "/sales-orders", Icon: "clipboard"},
		{Label: "Customers", Path: "/customers", Icon: "users"},
		{Label: "Users", Path: "/users", Icon: "shield"},
	},
	domainauth.RoleCustomer: {
		{Label: "Dashboard", Path: "/", Icon: "home"},
		{Label: "Sales Orders", Path: "/sales-orders", Icon: "clipboard"},
	},
}

// Navigation returns the menu for the session role.
// GET /api/navigation.
func Navigation(w http.ResponseWriter, r *http.Request) {
	session, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		WriteData(w, http.StatusOK, map[string]any{"items": []NavItem{}})
		return
	}

	items := navItemsByRole[session.Role]
	if items == nil {
		items = []NavItem{}
	}
	WriteData(w, http.StatusOK, map[string]any{"items": items})
}
