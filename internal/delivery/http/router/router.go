// Package router registers the application routes on the echo instance.
package router

import (
	"portal/internal/delivery/http/middleware"
	"portal/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RouterParams contains the dependencies needed for registering routes.
type RouterParams struct {
	fx.In

	AuthMiddleware *middleware.AuthMiddleware
	AuthHandler    *handler.AuthHandler
	ChatHandler    *handler.ChatHandler
	PageHandler    *handler.PageHandler
}

// NewRouter registers every route of the portal. Views behind the
// navigation guard never render without a session token.
func NewRouter(e *echo.Echo, params RouterParams) {
	e.GET("/health", params.PageHandler.HealthCheck)

	e.GET("/", params.PageHandler.Home)

	e.GET("/login", params.AuthHandler.ShowLogin)
	e.POST("/login", params.AuthHandler.Login)
	e.GET("/signup", params.AuthHandler.ShowSignup)
	e.POST("/signup", params.AuthHandler.Signup)
	e.POST("/logout", params.AuthHandler.Logout)

	e.GET("/forgot-password", params.AuthHandler.ShowForgotPassword)
	e.POST("/forgot-password", params.AuthHandler.ForgotPassword)
	e.GET("/check-email", params.PageHandler.CheckEmail)
	e.GET("/check-reset-email", params.PageHandler.CheckResetEmail)
	e.GET("/reset-password", params.AuthHandler.ShowResetPassword)
	e.POST("/reset-password", params.AuthHandler.ResetPassword)
	e.GET("/reset-password/:token", params.AuthHandler.ResetRedirect)

	e.GET("/verify-email/:token", params.AuthHandler.VerifyEmail)

	guarded := e.Group("", params.AuthMiddleware.RequireSession)
	guarded.GET("/dashboard", params.PageHandler.Dashboard)
	guarded.GET("/chat", params.ChatHandler.Show)
	guarded.POST("/chat", params.ChatHandler.Send)
}
