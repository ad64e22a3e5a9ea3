// Package routes wires every API endpoint to its handler.
package routes

import (
	"fashionexpress/handlers"
	"fashionexpress/middleware"
	"fashionexpress/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

func SetupRoutes(app *fiber.App, store storage.Store, sessionStore *session.Store) {
	authHandler := handlers.NewAuthHandler(store, sessionStore)
	userHandler := handlers.NewUserHandler(store, sessionStore)
	categoryHandler := handlers.NewCategoryHandler(store)
	productHandler := handlers.NewProductHandler(store)
	cartHandler := handlers.NewCartHandler(store)
	orderHandler := handlers.NewOrderHandler(store)
	wishlistHandler := handlers.NewWishlistHandler(store)
	reviewHandler := handlers.NewReviewHandler(store)

	api := app.Group("/api")
	authRequired := middleware.RequireAuth(sessionStore)

	// Auth
	api.Post("/auth/login", authHandler.Login)
	api.Post("/auth/logout", authHandler.Logout)
	api.Get("/auth/user", authHandler.CurrentUser)

	// Users
	api.Post("/users/register", userHandler.Register)
	api.Get("/users/profile", authRequired, userHandler.GetProfile)
	api.Put("/users/profile", authRequired, userHandler.UpdateProfile)

	// Categories
	api.Get("/categories", categoryHandler.GetCategories)
	api.Get("/categories/:id", categoryHandler.GetCategory)

	// Products and reviews
	api.Get("/products", productHandler.GetProducts)
	api.Get("/products/:id", productHandler.GetProduct)
	api.Get("/products/:id/reviews", reviewHandler.GetProductReviews)
	api.Post("/products/:id/reviews", authRequired, reviewHandler.CreateReview)

	// Cart
	api.Get("/cart", authRequired, cartHandler.GetCart)
	api.Post("/cart", authRequired, cartHandler.AddToCart)
	api.Put("/cart/:id", authRequired, cartHandler.UpdateCartItem)
	api.Delete("/cart/:id", authRequired, cartHandler.RemoveFromCart)
	api.Delete("/cart", authRequired, cartHandler.ClearCart)

	// Orders
	api.Post("/orders", authRequired, orderHandler.CreateOrder)
	api.Get("/orders", authRequired, orderHandler.GetOrders)
	api.Get("/orders/:id", authRequired, orderHandler.GetOrder)
	api.Get("/orders/:id/tracking", authRequired, orderHandler.GetOrderTracking)

	// Wishlist
	api.Get("/wishlist", authRequired, wishlistHandler.GetWishlist)
	api.Post("/wishlist", authRequired, wishlistHandler.AddToWishlist)
	api.Delete("/wishlist/:id", authRequired, wishlistHandler.RemoveFromWishlist)
}
