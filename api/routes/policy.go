package routes

import (
	"net/http"

	"venuebook/internal/shared/constants"
	"venuebook/internal/shared/middleware"
)

var (
	customersOnly = []string{constants.RoleCustomer}
	staffOnly     = constants.StaffRoles
	adminOnly     = []string{constants.RoleAdmin}
)

func public(method, path string) middleware.Rule {
	return middleware.Rule{Method: method, Path: path, Public: true}
}

func authed(method, path string, roles ...string) middleware.Rule {
	return middleware.Rule{Method: method, Path: path, Roles: roles}
}

// Policies is the access table for every API route. A route missing from it
// is refused by the guard.
func Policies(basePath string) *middleware.PolicyTable {
	return middleware.NewPolicyTable(basePath,
		// customer accounts
		public(http.MethodPost, "/users/register"),
		public(http.MethodPost, "/users/login"),
		public(http.MethodPost, "/users/refresh"),
		authed(http.MethodGet, "/users/profile", customersOnly...),
		authed(http.MethodPut, "/users/profile", customersOnly...),
		authed(http.MethodPut, "/users/change-password", customersOnly...),

		// organizer accounts
		public(http.MethodPost, "/organizer/register"),
		public(http.MethodPost, "/organizer/login"),
		public(http.MethodPost, "/organizer/refresh"),
		authed(http.MethodGet, "/organizer/profile", staffOnly...),

		// catalog
		public(http.MethodGet, "/venues"),
		public(http.MethodGet, "/venues/:id"),
		public(http.MethodGet, "/venues/:id/availability"),
		authed(http.MethodPost, "/venues", staffOnly...),
		authed(http.MethodPut, "/venues/:id", staffOnly...),
		authed(http.MethodDelete, "/venues/:id", staffOnly...),

		public(http.MethodGet, "/meals"),
		public(http.MethodGet, "/meals/:id"),
		authed(http.MethodPost, "/meals", staffOnly...),
		authed(http.MethodPut, "/meals/:id", staffOnly...),
		authed(http.MethodDelete, "/meals/:id", staffOnly...),

		// bookings
		public(http.MethodPost, "/events/check-availability"),
		authed(http.MethodGet, "/events"),
		authed(http.MethodGet, "/events/:id"),
		authed(http.MethodPost, "/events/:id/cancel"),
		authed(http.MethodPatch, "/admin/events/:id/status", staffOnly...),

		// payments
		public(http.MethodGet, "/payments/methods"),
		public(http.MethodPost, "/payments/calculate-cost"),
		public(http.MethodPost, "/payments/webhook"),
		authed(http.MethodPost, "/payments/process", customersOnly...),
		authed(http.MethodGet, "/payments"),
		authed(http.MethodGet, "/payments/:id"),
		authed(http.MethodPost, "/payments/:id/refund"),

		// reporting
		authed(http.MethodGet, "/admin/analytics/dashboard", staffOnly...),
		authed(http.MethodGet, "/admin/analytics/revenue", staffOnly...),
		authed(http.MethodGet, "/admin/analytics/venues", staffOnly...),
		authed(http.MethodGet, "/admin/users", adminOnly...),
		authed(http.MethodGet, "/admin/payments/reconciliation", adminOnly...),
	)
}
