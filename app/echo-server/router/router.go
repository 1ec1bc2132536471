package router

import (
	"modshop/internal/middleware"
	"modshop/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupNudgeRoutes(api *echo.Group, handler *rest.NudgeHandler) {
	nudges := api.Group("/nudges", middleware.AuthMiddleware())

	nudges.POST("/trigger", handler.Trigger)
	nudges.POST("/interactions", handler.RecordInteraction)
	nudges.GET("/interactions", handler.ListInteractions)
	nudges.GET("/block", handler.Block)
	nudges.GET("/stats", handler.Stats)
}

func SetupProductRoutes(api *echo.Group, handler *rest.ProductHandler) {
	products := api.Group("/products")

	products.GET("", handler.GetAllProducts)
	products.GET("/cheapest", handler.GetCheapestInCategory)
	products.GET("/:slug", handler.GetProductBySlug)
}
