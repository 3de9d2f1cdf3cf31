package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// stat is one dashboard overview card.
type stat struct {
	Label  string
	Value  string
	Change string
}

// dashboardPage is the view model of the dashboard template.
type dashboardPage struct {
	Title  string
	Active string
	Stats  []stat
}

// staticPage is the view model of content-only pages.
type staticPage struct {
	Title string
}

// PageHandler serves the static and overview pages.
type PageHandler struct{}

// NewPageHandler is the constructor for PageHandler.
func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// Home forwards the root path to the dashboard; the navigation guard
// bounces unauthenticated visitors on to the login view from there.
func (h *PageHandler) Home(c echo.Context) error {
	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

// Dashboard renders the account overview.
func (h *PageHandler) Dashboard(c echo.Context) error {
	return c.Render(http.StatusOK, "dashboard.html", dashboardPage{
		Title:  "Dashboard",
		Active: "dashboard",
		Stats: []stat{
			{Label: "Total Projects", Value: "12", Change: "+2 this month"},
			{Label: "Active Tasks", Value: "34", Change: "+5 this week"},
			{Label: "Completed", Value: "89", Change: "+12 this month"},
			{Label: "Team Members", Value: "8", Change: "+1 this month"},
		},
	})
}

// CheckEmail renders the post-signup confirmation page.
func (h *PageHandler) CheckEmail(c echo.Context) error {
	return c.Render(http.StatusOK, "check_email.html", staticPage{Title: "Check Your Email"})
}

// CheckResetEmail renders the post-reset-request confirmation page.
func (h *PageHandler) CheckResetEmail(c echo.Context) error {
	return c.Render(http.StatusOK, "check_reset_email.html", staticPage{Title: "Check Your Email"})
}

// HealthCheck responds to liveness probes.
func (h *PageHandler) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
