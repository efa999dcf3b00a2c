package config

import (
	"FoodShare-Backend/internal/api/handlers"
	"FoodShare-Backend/internal/api/routes"
	"FoodShare-Backend/internal/cache"
	"FoodShare-Backend/internal/middleware"
	"FoodShare-Backend/internal/utils"
	"FoodShare-Backend/internal/utils/mailing"
	"FoodShare-Backend/internal/utils/storage"
	"FoodShare-Backend/pkg/jwt"
	"FoodShare-Backend/pkg/listing"
	"FoodShare-Backend/pkg/messaging"
	"FoodShare-Backend/pkg/reservation"
	"FoodShare-Backend/pkg/user"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "America/Santiago",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	mailer := mailing.NewMailer()
	feedCache := cache.NewRedisStore()

	// Repository
	userRepository := user.NewUserRepository(db)
	listingRepository := listing.NewListingRepository(db)
	reservationRepository := reservation.NewReservationRepository(db)
	messagingRepository := messaging.NewMessagingRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	listingService := listing.NewListingService(listingRepository, userRepository, s3, feedCache)
	reservationService := reservation.NewReservationService(reservationRepository, listingRepository, userRepository, mailer)
	messagingService := messaging.NewMessagingService(messagingRepository, reservationRepository)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	listingHandler := handlers.NewListingHandler(listingService, validator)
	reservationHandler := handlers.NewReservationHandler(reservationService, validator)
	messageHandler := handlers.NewMessageHandler(messagingService, validator)

	// routes
	routesConfig := routes.Config{
		App:                app,
		UserHandler:        userHandler,
		ListingHandler:     listingHandler,
		ReservationHandler: reservationHandler,
		MessageHandler:     messageHandler,
		Middleware:         middlewares,
		JWTService:         jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
