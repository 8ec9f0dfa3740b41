package service

import (
	"github.com/wb-go/wbf/ginext"

	"jiggermix/internal/dto"
	"jiggermix/internal/mailer"
	"jiggermix/internal/model"
)

func (s *service) Statistics(ctx *ginext.Context) {
	stats, err := s.repo.GetStatistics(ctx.Request.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("failed to fetch statistics")
		dto.InternalServerError(ctx, "Failed to fetch statistics")
		return
	}

	dto.SuccessResponse(ctx, dto.MsgStatisticsRetrieved, dto.Statistics{
		TotalContacts:     stats.TotalContacts,
		NewContacts:       stats.NewContacts,
		TotalSubscribers:  stats.TotalSubscribers,
		TotalBookings:     stats.TotalBookings,
		ConfirmedBookings: stats.ConfirmedBookings,
		TotalRevenue:      stats.TotalRevenue,
	})
}

func (s *service) EmailLogs(ctx *ginext.Context) {
	status := ctx.Query("status")
	limit := queryLimit(ctx, defaultEmailLogLimit)

	logs, err := s.repo.GetEmailLogs(ctx.Request.Context(), status, limit)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to fetch email logs")
		dto.InternalServerError(ctx, "Failed to fetch email logs")
		return
	}
	if logs == nil {
		logs = []model.EmailLog{}
	}

	sent, err := s.repo.CountEmailLogsByStatus(ctx.Request.Context(), mailer.StatusSent)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to count sent emails")
		dto.InternalServerError(ctx, "Failed to fetch email logs")
		return
	}
	failed, err := s.repo.CountEmailLogsByStatus(ctx.Request.Context(), mailer.StatusFailed)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to count failed emails")
		dto.InternalServerError(ctx, "Failed to fetch email logs")
		return
	}

	dto.SuccessResponse(ctx, dto.MsgEmailLogsRetrieved, dto.EmailLogListData{
		Count: len(logs),
		Logs:  logs,
		Summary: dto.EmailLogSummary{
			Sent:   sent,
			Failed: failed,
		},
	})
}

func (s *service) AdminContacts(ctx *ginext.Context) {
	limit := queryLimit(ctx, defaultListLimit)

	contacts, err := s.repo.GetContacts(ctx.Request.Context(), "", limit)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to fetch contacts")
		dto.InternalServerError(ctx, "Failed to fetch contacts")
		return
	}
	if contacts == nil {
		contacts = []model.ContactMessage{}
	}

	dto.SuccessResponse(ctx, dto.MsgAdminContacts, dto.ContactListData{
		Count:    len(contacts),
		Contacts: contacts,
	})
}

func (s *service) AdminSubscribers(ctx *ginext.Context) {
	limit := queryLimit(ctx, defaultListLimit)

	subscribers, err := s.repo.GetRecentSubscribers(ctx.Request.Context(), limit)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to fetch subscribers")
		dto.InternalServerError(ctx, "Failed to fetch subscribers")
		return
	}
	if subscribers == nil {
		subscribers = []model.NewsletterSubscriber{}
	}

	dto.SuccessResponse(ctx, dto.MsgAdminSubscribers, dto.SubscriberListData{
		Count:       len(subscribers),
		Subscribers: subscribers,
	})
}

func (s *service) AdminBookings(ctx *ginext.Context) {
	limit := queryLimit(ctx, defaultListLimit)

	bookings, err := s.repo.GetBookings(ctx.Request.Context(), "", limit)
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
