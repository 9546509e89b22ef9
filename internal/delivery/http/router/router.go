// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"newsroom/internal/delivery/http/middleware"
	"newsroom/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	userGroup := e.Group("/api/users")
	{
		userGroup.POST("/register", r.userHandler.Signup)
		userGroup.POST("/login", r.userHandler.Login)

		userGroup.GET("", r.userHandler.ListUsers)
		userGroup.POST("", r.userHandler.CreateUser)
		userGroup.PUT("/:id", r.userHandler.UpdateUser)
		userGroup.DELETE("/:id", r.userHandler.DeleteUser)
		userGroup.PUT("/:id/username", r.userHandler.UpdateUsername)
		userGroup.PUT("/:id/password", r.userHandler.ChangePassword)
	}

	// Routes that should require a valid bearer token can be grouped behind
	// r.authMiddleware.Authenticate (and RequireRole for role checks), e.g.:
	//
	//	adminGroup := e.Group("/api/admin")
	//	adminGroup.Use(r.authMiddleware.Authenticate)
	//	adminGroup.Use(r.authMiddleware.RequireRole("admin"))
}
