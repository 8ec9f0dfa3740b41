package dto

import (
	"net/http"
	"time"

	"jiggermix/internal/model"

	"github.com/wb-go/wbf/ginext"
)

const (
	MsgContactSubmitted  = "Contact form submitted successfully"
	MsgContactsRetrieved = "Contacts retrieved successfully"
	MsgContactRetrieved  = "Contact retrieved successfully"
	MsgContactUpdated    = "Contact status updated"

	MsgSubscribed           = "Subscribed successfully"
	MsgResubscribed         = "Resubscribed successfully"
	MsgSubscribersRetrieved = "Subscribers retrieved successfully"
	MsgUnsubscribed         = "Unsubscribed successfully"

	MsgBookingCreated    = "Booking created successfully"
	MsgBookingsRetrieved = "Bookings retrieved successfully"
	MsgBookingRetrieved  = "Booking retrieved successfully"
	MsgBookingUpdated    = "Booking status updated"

	MsgStatisticsRetrieved = "Statistics retrieved successfully"
	MsgEmailLogsRetrieved  = "Email logs retrieved successfully"
	MsgAdminContacts       = "Contact messages retrieved successfully"
	MsgAdminSubscribers    = "Newsletter subscribers retrieved successfully"
)

type SubmitContactRequest struct {
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	EventName string  `json:"event_name"`
	Package   *string `json:"package,omitempty"`
	Details   string  `json:"details"`
}

type UpdateContactStatusRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes,omitempty"`
}

type SubscribeRequest struct {
	Email string `json:"email"`
}

type CreateBookingRequest struct {
	ContactID   int     `json:"contact_id"`
	PackageType string  `json:"package_type"`
	EventDate   *string `json:"event_date,omitempty"`
	GuestCount  *int    `json:"guest_count,omitempty"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status"`
}

type IDData struct {
	ID int64 `json:"id"`
}

type ContactData struct {
	Contact *model.ContactMessage `json:"contact"`
}

type ContactListData struct {
	Count    int                    `json:"count"`
	Contacts []model.ContactMessage `json:"contacts"`
}

type SubscriberListData struct {
	Count       int                          `json:"count"`
	Subscribers []model.NewsletterSubscriber `json:"subscribers"`
}

type BookingData struct {
	Booking *model.Booking `json:"booking"`
}

type BookingListData struct {
	Count    int             `json:"count"`
	Bookings []model.Booking `json:"bookings"`
}

type Statistics struct {
	TotalContacts     int     `json:"total_contacts"`
	NewContacts       int     `json:"new_contacts"`
	TotalSubscribers  int     `json:"total_subscribers"`
	TotalBookings     int     `json:"total_bookings"`
	ConfirmedBookings int     `json:"confirmed_bookings"`
	TotalRevenue      float64 `json:"total_revenue"`
}

type EmailLogSummary struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

type EmailLogListData struct {
	Count   int              `json:"count"`
	Logs    []model.EmailLog `json:"logs"`
	Summary EmailLogSummary  `json:"summary"`
}

type HealthData struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Response is the success envelope every endpoint returns.
type Response struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Data       any    `json:"data"`
	StatusCode int    `json:"statusCode"`
}

// ErrorResponse is the failure envelope every endpoint returns.
type ErrorResponse struct {
	Success    bool     `json:"success"`
	Errors     []string `json:"errors"`
	StatusCode int      `json:"statusCode"`
}

func SuccessResponse(c *ginext.Context, message string, data any) {
	c.JSON(http.StatusOK, Response{
		Success:    true,
		Message:    message,
		Data:       data,
		StatusCode: http.StatusOK,
	})
}

func SuccessCreatedResponse(c *ginext.Context, message string, data any) {
	c.JSON(http.StatusCreated, Response{
		Success:    true,
		Message:    message,
		Data:       data,
		StatusCode: http.StatusCreated,
	})
}

func errorResponse(c *ginext.Context, status int, errs []string) {
	c.JSON(status, ErrorResponse{
		Success:    false,
		Errors:     errs,
		StatusCode: status,
	})
}

func BadRequestError(c *ginext.Context, errs ...string) {
	errorResponse(c, http.StatusBadRequest, errs)
}

func NotFoundError(c *ginext.Context, desc string) {
	errorResponse(c, http.StatusNotFound, []string{desc})
}

func ConflictError(c *ginext.Context, desc string) {
	errorResponse(c, http.StatusConflict, []string{desc})
}

func InternalServerError(c *ginext.Context, desc string) {
	errorResponse(c, http.StatusInternalServerError, []string{desc})
}
