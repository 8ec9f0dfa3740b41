package api

import (
	"github.com/gin-contrib/cors"
	"github.com/wb-go/wbf/ginext"

	"jiggermix/cmd/middleware"
	"jiggermix/internal/service"
)

type Routers struct {
	Service service.Service
}

func NewRouters(r *Routers) *ginext.Engine {
	app := ginext.New("release")

	app.Use(middleware.LoggingMiddleware())
	app.Use(cors.Default())

	apiGroup := app.Group("/api")

	apiGroup.GET("/health", r.Service.Health)

	contact := apiGroup.Group("/contact")
	contact.POST("/submit", r.Service.SubmitContact)
	contact.GET("/list", r.Service.ListContacts)
	contact.GET("/:id", r.Service.GetContact)
	contact.PUT("/:id/status", r.Service.UpdateContactStatus)

	newsletter := apiGroup.Group("/newsletter")
	newsletter.POST("/subscribe", r.Service.Subscribe)
	newsletter.GET("/subscribers", r.Service.ListSubscribers)
	newsletter.POST("/unsubscribe/:email", r.Service.Unsubscribe)

	booking := apiGroup.Group("/booking")
	booking.POST("/create", r.Service.CreateBooking)
	booking.GET("/list", r.Service.ListBookings)
	booking.GET("/:id", r.Service.GetBooking)
	booking.PUT("/:id/status", r.Service.UpdateBookingStatus)

	admin := apiGroup.Group("/admin")
	admin.GET("/statistics", r.Service.Statistics)
	admin.GET("/email-logs", r.Service.EmailLogs)
	admin.GET("/contacts", r.Service.AdminContacts)
	admin.GET("/subscribers", r.Service.AdminSubscribers)
	admin.GET("/bookings", r.Service.AdminBookings)

	app.GET("/", func(c *ginext.Context) {
		c.File("./frontend/index.html")
	})
	app.Static("/frontend", "./frontend")

	return app
}
