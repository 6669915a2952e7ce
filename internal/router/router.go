// Package router maps the HTTP surface onto handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/prajwalrk/seatmaster/internal/handler"
	"github.com/prajwalrk/seatmaster/internal/middleware"
)

// RegisterRoutes registers routes that need neither authentication nor
// shared state. Currently that is only the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the /v1/auth group. The limiter middleware is
// optional; when nil the endpoints run unthrottled, which keeps local
// setups working without Redis.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, limiter echo.MiddlewareFunc) {
	g := e.Group("/v1/auth")
	if limiter != nil {
		g.Use(limiter)
	}
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout parses its own bearer so it stays outside the JWT group.
	g.POST("/logout", a.Logout)
}

// RegisterAPI registers the protected /v1 surface. Dataset uploads and
// run creation require the ADMIN role; reads are open to VIEWER as
// well. Run reports are immutable once generated, so their GET routes
// sit behind the response cache when one is configured.
func RegisterAPI(e *echo.Echo, a *handler.AuthHandler, d *handler.DatasetHandler, r *handler.RunHandler, jwtSecret string, cache, limiter echo.MiddlewareFunc) {
	v1 := e.Group("/v1")
	v1.Use(middleware.JWTAuth(jwtSecret))
	v1.Use(middleware.RequireRole("ADMIN", "VIEWER"))

	v1.GET("/me", a.Me)

	admin := v1.Group("", middleware.RequireRole("ADMIN"))
	admin.POST("/rooms", d.UploadRooms)
	admin.POST("/students", d.UploadRoster)
	admin.POST("/qp-map", d.UploadQPMap)
	admin.POST("/qp-docs", d.UploadQPDocs)
	// Generation is the expensive endpoint; it shares the auth throttle.
	if limiter != nil {
		admin.POST("/runs", r.CreateRun, limiter)
	} else {
		admin.POST("/runs", r.CreateRun)
	}

	v1.GET("/rooms", d.ListRooms)
	v1.GET("/students", d.GetRoster)
	v1.GET("/students/days", d.GetDays)
	v1.GET("/qp-map", d.GetQPMap)
	v1.GET("/qp-docs", d.ListQPDocs)

	runs := v1.Group("/runs")
	if cache != nil {
		runs.Use(cache)
	}
	runs.GET("/:id/seating", r.GetSeating)
	runs.GET("/:id/seating/detail", r.GetSeatingDetail)
	runs.GET("/:id/summary", r.GetSummary)
	runs.GET("/:id/qp", r.GetQP)
	runs.GET("/:id/bundles/:room", r.GetBundle)
}
