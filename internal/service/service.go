package service

import (
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/ginext"

	"jiggermix/internal/dto"
	"jiggermix/internal/mailer"
	"jiggermix/internal/repo"
)

const (
	defaultListLimit     = 50
	defaultEmailLogLimit = 100
)

type Service interface {
	SubmitContact(ctx *ginext.Context)
	ListContacts(ctx *ginext.Context)
	GetContact(ctx *ginext.Context)
	UpdateContactStatus(ctx *ginext.Context)

	Subscribe(ctx *ginext.Context)
	ListSubscribers(ctx *ginext.Context)
	Unsubscribe(ctx *ginext.Context)

	CreateBooking(ctx *ginext.Context)
	ListBookings(ctx *ginext.Context)
	GetBooking(ctx *ginext.Context)
	UpdateBookingStatus(ctx *ginext.Context)

	Statistics(ctx *ginext.Context)
	EmailLogs(ctx *ginext.Context)
	AdminContacts(ctx *ginext.Context)
	AdminSubscribers(ctx *ginext.Context)
	AdminBookings(ctx *ginext.Context)

	Health(ctx *ginext.Context)
}

type service struct {
	repo     repo.Repository
	notifier mailer.Notifier
	log      *zerolog.Logger
}

func NewService(repository repo.Repository, notifier mailer.Notifier, logger *zerolog.Logger) Service {
	return &service{
		repo:     repository,
		notifier: notifier,
		log:      logger,
	}
}

// queryLimit reads ?limit=, falling back to def when absent or unusable.
func queryLimit(ctx *ginext.Context, def int) int {
	raw := ctx.Query("limit")
	if raw == "" {
		return def
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return def
	}
	return limit
}

func (s *service) Health(ctx *ginext.Context) {
	ctx.JSON(http.StatusOK, dto.HealthData{
		Status:    "ok",
		Message:   "JiggerOnTheMix API is running",
		Timestamp: time.Now().UTC(),
	})
}
