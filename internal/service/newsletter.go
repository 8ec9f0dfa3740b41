package service

import (
	"errors"
	"strings"

	"github.com/wb-go/wbf/ginext"

	"jiggermix/internal/dto"
	"jiggermix/internal/model"
	"jiggermix/internal/repo"
	"jiggermix/pkg/validator"
)

func (s *service) Subscribe(ctx *ginext.Context) {
	var req dto.SubscribeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadRequestError(ctx, "Invalid JSON format")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !validator.IsValidEmail(email) {
		dto.BadRequestError(ctx, "Valid email required")
		return
	}

	existing, err := s.repo.GetSubscriberByEmail(ctx.Request.Context(), email)
	switch {
	case err == nil && existing.Active:
		dto.ConflictError(ctx, "Already subscribed")
		return

	case err == nil:
		// Soft-deleted row: reactivate in place, keep id and
		// subscribed_at, skip the welcome email.
		if err := s.repo.SetSubscriberActive(ctx.Request.Context(), email, true); err != nil {
			s.log.Error().Err(err).Msg("failed to reactivate subscriber")
			dto.InternalServerError(ctx, "Failed to subscribe")
			return
		}
		s.log.Info().Int("subscriber_id", existing.ID).Msg("subscriber reactivated")
		dto.SuccessResponse(ctx, dto.MsgResubscribed, dto.IDData{ID: int64(existing.ID)})
		return

	case !errors.Is(err, repo.ErrSubscriberNotFound):
		s.log.Error().Err(err).Msg("failed to look up subscriber")
		dto.InternalServerError(ctx, "Failed to subscribe")
		return
	}

	id, err := s.repo.CreateSubscriber(ctx.Request.Context(), email)
	if err != nil {
		// A concurrent subscribe can win the insert between our lookup
		// and here; the unique email constraint reports it.
		if errors.Is(err, repo.ErrDuplicateSubscriber) {
			dto.ConflictError(ctx, "Already subscribed")
			return
		}
		s.log.Error().Err(err).Msg("failed to insert subscriber")
		dto.InternalServerError(ctx, "Failed to subscribe")
		return
	}

	s.notifier.SendNewsletterWelcome(ctx.Request.Context(), email)

	s.log.Info().Int64("subscriber_id", id).Msg("newsletter subscription created")
	dto.SuccessCreatedResponse(ctx, dto.MsgSubscribed, dto.IDData{ID: id})
}

func (s *service) ListSubscribers(ctx *ginext.Context) {
	active := ctx.Query("active")
	if active == "" {
		active = "true"
	}
	activeOnly := strings.ToLower(active) == "true"

	subscribers, err := s.repo.GetSubscribers(ctx.Request.Context(), activeOnly)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to fetch subscribers")
		dto.InternalServerError(ctx, "Failed to fetch subscribers")
		return
	}
	if subscribers == nil {
		subscribers = []model.NewsletterSubscriber{}
	}

	dto.SuccessResponse(ctx, dto.MsgSubscribersRetrieved, dto.SubscriberListData{
		Count:       len(subscribers),
		Subscribers: subscribers,
	})
}

func (s *service) Unsubscribe(ctx *ginext.Context) {
	email := strings.ToLower(strings.TrimSpace(ctx.Param("email")))

	if _, err := s.repo.GetSubscriberByEmail(ctx.Request.Context(), email); err != nil {
		if errors.Is(err, repo.ErrSubscriberNotFound) {
			dto.NotFoundError(ctx, "Subscriber not found")
			return
		}
		s.log.Error().Err(err).Msg("failed to look up subscriber")
		dto.InternalServerError(ctx, "Failed to unsubscribe")
		return
	}

	// Re-unsubscribing an inactive row succeeds and rewrites active=0.
	if err := s.repo.SetSubscriberActive(ctx.Request.Context(), email, false); err != nil {
		s.log.Error().Err(err).Msg("failed to deactivate subscriber")
		dto.InternalServerError(ctx, "Failed to unsubscribe")
		return
	}

	s.log.Info().Str("email", email).Msg("newsletter unsubscribed")
	dto.SuccessResponse(ctx, dto.MsgUnsubscribed, struct{}{})
}
