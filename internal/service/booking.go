package service

import (
	"errors"
	"strconv"

	"github.com/wb-go/wbf/ginext"

	"jiggermix/internal/dto"
	"jiggermix/internal/model"
	"jiggermix/internal/repo"
)

var bookingStatuses = map[string]struct{}{
	"pending":   {},
	"confirmed": {},
	"cancelled": {},
}

type packagePrice struct {
	Min float64
	Max float64
}

// Quotes always use the package minimum. Max is the reserved upper bound
// of a negotiated-quote range that is not offered yet.
var packagePricing = map[string]packagePrice{
	"professional": {Min: 6000, Max: 10000},
	"elite":        {Min: 7000, Max: 50000},
}

func (s *service) CreateBooking(ctx *ginext.Context) {
	var req dto.CreateBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadRequestError(ctx, "Invalid JSON format")
		return
	}

	if _, err := s.repo.GetContactByID(ctx.Request.Context(), int64(req.ContactID)); err != nil {
		if errors.Is(err, repo.ErrContactNotFound) {
			dto.NotFoundError(ctx, "Contact not found")
			return
		}
		s.log.Error().Err(err).Msg("failed to verify contact for booking")
		dto.InternalServerError(ctx, "Failed to create booking")
		return
	}

	pricing, ok := packagePricing[req.PackageType]
	if !ok {
		dto.BadRequestError(ctx, "Invalid package type")
		return
	}

	booking := &model.Booking{
		ContactID:   req.ContactID,
		PackageType: req.PackageType,
		EventDate:   req.EventDate,
		GuestCount:  req.GuestCount,
		PriceQuote:  pricing.Min,
	}

	id, err := s.repo.CreateBooking(ctx.Request.Context(), booking)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to insert booking")
		dto.InternalServerError(ctx, "Failed to create booking")
		return
	}

	created, err := s.repo.GetBookingByID(ctx.Request.Context(), id)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to fetch created booking")
		dto.InternalServerError(ctx, "Failed to create booking")
		return
	}

	s.log.Info().Int64("booking_id", id).Str("package", req.PackageType).Msg("booking created")
	dto.SuccessCreatedResponse(ctx, dto.MsgBookingCreated, dto.BookingData{Booking: created})
}

func (s *service) ListBookings(ctx *ginext.Context) {
	status := ctx.Query("status")
	limit := queryLimit(ctx, defaultListLimit)

	bookings, err := s.repo.GetBookings(ctx.Request.Context(), status, limit)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to fetch bookings")
		dto.InternalServerError(ctx, "Failed to fetch bookings")
		return
	}
	if bookings == nil {
		bookings = []model.Booking{}
	}

	dto.SuccessResponse(ctx, dto.MsgBookingsRetrieved, dto.BookingListData{
		Count:    len(bookings),
		Bookings: bookings,
	})
}

func (s *service) GetBooking(ctx *ginext.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		dto.NotFoundError(ctx, "Booking not found")
		return
	}

	booking, err := s.repo.GetBookingByID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrBookingNotFound) {
			dto.NotFoundError(ctx, "Booking not found")
			return
		}
		s.log.Error().Err(err).Msg("failed to fetch booking")
		dto.InternalServerError(ctx, "Failed to fetch booking")
		return
	}

	dto.SuccessResponse(ctx, dto.MsgBookingRetrieved, dto.BookingData{Booking: booking})
}

func (s *service) UpdateBookingStatus(ctx *ginext.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		dto.NotFoundError(ctx, "Booking not found")
		return
	}

	var req dto.UpdateBookingStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadRequestError(ctx, "Invalid JSON format")
		return
	}

	if _, ok := bookingStatuses[req.Status]; !ok {
		dto.BadRequestError(ctx, "Invalid status")
		return
	}

	if _, err := s.repo.GetBookingByID(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, repo.ErrBookingNotFound) {
			dto.NotFoundError(ctx, "Booking not found")
			return
		}
		s.log.Error().Err(err).Msg("failed to fetch booking for status update")
		dto.InternalServerError(ctx, "Failed to update booking")
		return
	}

	if err := s.repo.UpdateBookingStatus(ctx.Request.Context(), id, req.Status); err != nil {
		s.log.Error().Err(err).Msg("failed to update booking status")
		dto.InternalServerError(ctx, "Failed to update booking")
		return
	}

	updated, err := s.repo.GetBookingByID(ctx.Request.Context(), id)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to fetch updated booking")
		dto.InternalServerError(ctx, "Failed to update booking")
		return
	}

	s.log.Info().Int64("booking_id", id).Str("status", req.Status).Msg("booking status updated")
	dto.SuccessResponse(ctx, dto.MsgBookingUpdated, dto.BookingData{Booking: updated})
}
