package service

import (
	"errors"
	"strconv"
	"strings"

	"github.com/wb-go/wbf/ginext"

	"jiggermix/internal/dto"
	"jiggermix/internal/model"
	"jiggermix/internal/repo"
	"jiggermix/pkg/validator"
)

var contactStatuses = map[string]struct{}{
	"new":       {},
	"viewed":    {},
	"responded": {},
}

func (s *service) SubmitContact(ctx *ginext.Context) {
	var req dto.SubmitContactRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		s.log.Error().Err(err).Msg("failed to parse contact submission")
		dto.BadRequestError(ctx, "Invalid JSON format")
		return
	}

	errs := validator.ValidateContactForm(validator.ContactForm{
		EventName: req.EventName,
		Email:     req.Email,
		Name:      req.Name,
		Details:   req.Details,
	})
	if len(errs) > 0 {
		dto.BadRequestError(ctx, errs...)
		return
	}

	contact := &model.ContactMessage{
		Name:      validator.Sanitize(req.Name),
		Email:     strings.ToLower(req.Email),
		EventName: validator.Sanitize(req.EventName),
		Details:   validator.Sanitize(req.Details),
	}
	if req.Package != nil {
		pkg := validator.Sanitize(*req.Package)
		contact.Package = &pkg
	}

	id, err := s.repo.CreateContact(ctx.Request.Context(), contact)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to insert contact message")
		dto.InternalServerError(ctx, "Failed to submit contact form")
		return
	}

	// Best effort: the contact row is already persisted, a failed reply
	// only lands in email_logs.
	s.notifier.SendContactReply(ctx.Request.Context(), req.Email, req.Name, req.EventName)

	s.log.Info().Int64("contact_id", id).Msg("contact form submitted")
	dto.SuccessCreatedResponse(ctx, dto.MsgContactSubmitted, dto.IDData{ID: id})
}

func (s *service) ListContacts(ctx *ginext.Context) {
	status := ctx.Query("status")
	limit := queryLimit(ctx, defaultListLimit)

	contacts, err := s.repo.GetContacts(ctx.Request.Context(), status, limit)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to fetch contacts")
		dto.InternalServerError(ctx, "Failed to fetch contacts")
		return
	}
	if contacts == nil {
		contacts = []model.ContactMessage{}
	}

	dto.SuccessResponse(ctx, dto.MsgContactsRetrieved, dto.ContactListData{
		Count:    len(contacts),
		Contacts: contacts,
	})
}

func (s *service) GetContact(ctx *ginext.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		dto.NotFoundError(ctx, "Contact not found")
		return
	}

	contact, err := s.repo.GetContactByID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrContactNotFound) {
			dto.NotFoundError(ctx, "Contact not found")
			return
		}
		s.log.Error().Err(err).Msg("failed to fetch contact")
		dto.InternalServerError(ctx, "Failed to fetch contact")
		return
	}

	dto.SuccessResponse(ctx, dto.MsgContactRetrieved, dto.ContactData{Contact: contact})
}

func (s *service) UpdateContactStatus(ctx *ginext.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		dto.NotFoundError(ctx, "Contact not found")
		return
	}

	var req dto.UpdateContactStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadRequestError(ctx, "Invalid JSON format")
		return
	}

	if _, ok := contactStatuses[req.Status]; !ok {
		dto.BadRequestError(ctx, "Invalid status")
		return
	}

	if _, err := s.repo.GetContactByID(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, repo.ErrContactNotFound) {
			dto.NotFoundError(ctx, "Contact not found")
			return
		}
		s.log.Error().Err(err).Msg("failed to fetch contact for status update")
		dto.InternalServerError(ctx, "Failed to update contact")
		return
	}

	// Notes are attached only when supplied with the transition.
	var notes *string
	if req.Notes != nil && strings.TrimSpace(*req.Notes) != "" {
		n := validator.Sanitize(*req.Notes)
		notes = &n
	}

	if err := s.repo.UpdateContactStatus(ctx.Request.Context(), id, req.Status, notes); err != nil {
		s.log.Error().Err(err).Msg("failed to update contact status")
		dto.InternalServerError(ctx, "Failed to update contact")
		return
	}

	updated, err := s.repo.GetContactByID(ctx.Request.Context(), id)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to fetch updated contact")
		dto.InternalServerError(ctx, "Failed to update contact")
		return
	}

	s.log.Info().Int64("contact_id", id).Str("status", req.Status).Msg("contact status updated")
	dto.SuccessResponse(ctx, dto.MsgContactUpdated, dto.ContactData{Contact: updated})
}
