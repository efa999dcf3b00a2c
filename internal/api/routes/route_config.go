package routes

import (
	"FoodShare-Backend/internal/api/handlers"
	"FoodShare-Backend/internal/middleware"
	"FoodShare-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App                *fiber.App
	UserHandler        handlers.UserHandler
	ListingHandler     handlers.ListingHandler
	ReservationHandler handlers.ReservationHandler
	MessageHandler     handlers.MessageHandler
	Middleware         middleware.Middleware
	JWTService         jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Listings()
	c.Reservations()
	c.Messages()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

func (c *Config) Listings() {
	listings := c.App.Group("/api/v1/listings", c.Middleware.AuthMiddleware(c.JWTService))

	listings.Get("/feed", c.ListingHandler.BrowseFeed)
	listings.Get("/mine", c.ListingHandler.GetMyListings)
	listings.Get("/stats", c.ListingHandler.GetListingStats)

	listings.Post("", c.ListingHandler.CreateListing)
	listings.Get("/:id", c.ListingHandler.GetListingDetails)
	listings.Patch("/:id/status", c.ListingHandler.UpdateListingStatus)
	listings.Delete("/:id", c.ListingHandler.DeleteListing)
}

func (c *Config) Reservations() {
	reservations := c.App.Group("/api/v1/reservations", c.Middleware.AuthMiddleware(c.JWTService))

	reservations.Post("", c.ReservationHandler.CreateReservation)
	reservations.Get("/mine", c.ReservationHandler.GetMyReservations)
	reservations.Get("/incoming", c.ReservationHandler.GetIncomingReservations)
	reservations.Get("/stats", c.ReservationHandler.GetReservationStats)
	reservations.Post("/:id/confirm", c.ReservationHandler.ConfirmReservation)
	reservations.Post("/:id/complete", c.ReservationHandler.CompleteReservation)
	reservations.Post("/:id/cancel", c.ReservationHandler.CancelReservation)
}

func (c *Config) Messages() {
	messages := c.App.Group("/api/v1/messages", c.Middleware.AuthMiddleware(c.JWTService))

	messages.Get("/threads", c.MessageHandler.GetThreads)
	messages.Get("/threads/:id", c.MessageHandler.GetThreadMessages)
	messages.Post("", c.MessageHandler.SendMessage)
	messages.Post("/threads/:id/read", c.MessageHandler.MarkThreadRead)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong, its works"})
	})
}
