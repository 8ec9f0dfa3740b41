package repo

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jiggermix/internal/model"
)

func newTestRepository(t *testing.T) Repository {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	log := zerolog.Nop()
	r, err := NewRepository(db, &log)
	require.NoError(t, err)
	require.NoError(t, r.InitSchema(context.Background()))

	t.Cleanup(func() { _ = r.Close() })
	return r
}

func strPtr(s string) *string { return &s }

func TestInitSchemaIsIdempotent(t *testing.T) {
	r := newTestRepository(t)
	require.NoError(t, r.InitSchema(context.Background()))
}

func TestContactRoundTrip(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()

	id, err := r.CreateContact(ctx, &model.ContactMessage{
		Name:      "Jo",
		Email:     "jo@x.com",
		EventName: "Wedding",
		Package:   strPtr("elite"),
		Details:   "Need a full bar setup for 100 guests",
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), id)

	contact, err := r.GetContactByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Jo", contact.Name)
	assert.Equal(t, "new", contact.Status)
	assert.False(t, contact.CreatedAt.IsZero())
	assert.Nil(t, contact.Notes)
	require.NotNil(t, contact.Package)
	assert.Equal(t, "elite", *contact.Package)
}

func TestGetContactByIDNotFound(t *testing.T) {
	r := newTestRepository(t)

	_, err := r.GetContactByID(context.Background(), 404)
	require.ErrorIs(t, err, ErrContactNotFound)
}

func TestGetContactsFilterAndLimit(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, err := r.CreateContact(ctx, &model.ContactMessage{
			Name:      "Jo",
			Email:     "jo@x.com",
			EventName: "Wedding",
			Details:   "details details",
		})
		require.NoError(t, err)
	}
	require.NoError(t, r.UpdateContactStatus(ctx, 1, "responded", nil))

	newOnes, err := r.GetContacts(ctx, "new", 50)
	require.NoError(t, err)
	assert.Len(t, newOnes, 3)

	limited, err := r.GetContacts(ctx, "", 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	// Newest first.
	assert.Equal(t, 4, limited[0].ID)
}

func TestUpdateContactStatusNotes(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()

	_, err := r.CreateContact(ctx, &model.ContactMessage{
		Name: "Jo", Email: "jo@x.com", EventName: "Wedding", Details: "details details",
	})
	require.NoError(t, err)

	require.NoError(t, r.UpdateContactStatus(ctx, 1, "viewed", strPtr("called back")))
	contact, err := r.GetContactByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "viewed", contact.Status)
	require.NotNil(t, contact.Notes)
	assert.Equal(t, "called back", *contact.Notes)

	// Omitting notes keeps the stored value.
	require.NoError(t, r.UpdateContactStatus(ctx, 1, "responded", nil))
	contact, err = r.GetContactByID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, contact.Notes)
	assert.Equal(t, "called back", *contact.Notes)

	require.ErrorIs(t, r.UpdateContactStatus(ctx, 99, "viewed", nil), ErrContactNotFound)
}

func TestSubscriberUniqueEmail(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()

	id, err := r.CreateSubscriber(ctx, "fan@example.com")
	require.NoError(t, err)
	require.Equal(t, int64(1), id)

	_, err = r.CreateSubscriber(ctx, "fan@example.com")
	require.ErrorIs(t, err, ErrDuplicateSubscriber)
}

func TestSubscriberActivationFlow(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()

	_, err := r.CreateSubscriber(ctx, "fan@example.com")
	require.NoError(t, err)

	sub, err := r.GetSubscriberByEmail(ctx, "fan@example.com")
	require.NoError(t, err)
	assert.True(t, sub.Active)
	assert.Nil(t, sub.UnsubscribeToken)

	require.NoError(t, r.SetSubscriberActive(ctx, "fan@example.com", false))
	sub, err = r.GetSubscriberByEmail(ctx, "fan@example.com")
	require.NoError(t, err)
	assert.False(t, sub.Active)

	active, err := r.GetSubscribers(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := r.GetSubscribers(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.ErrorIs(t, r.SetSubscriberActive(ctx, "ghost@example.com", false), ErrSubscriberNotFound)

	_, err = r.GetSubscriberByEmail(ctx, "ghost@example.com")
	require.ErrorIs(t, err, ErrSubscriberNotFound)
}

func TestBookingRoundTrip(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()

	_, err := r.CreateContact(ctx, &model.ContactMessage{
		Name: "Jo", Email: "jo@x.com", EventName: "Wedding", Details: "details details",
	})
	require.NoError(t, err)

	guests := 100
	id, err := r.CreateBooking(ctx, &model.Booking{
		ContactID:   1,
		PackageType: "professional",
		EventDate:   strPtr("2026-10-17"),
		GuestCount:  &guests,
		PriceQuote:  6000,
	})
	require.NoError(t, err)

	booking, err := r.GetBookingByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "pending", booking.Status)
	assert.Equal(t, 6000.0, booking.PriceQuote)
	require.NotNil(t, booking.GuestCount)
	assert.Equal(t, 100, *booking.GuestCount)

	require.NoError(t, r.UpdateBookingStatus(ctx, id, "confirmed"))
	booking, err = r.GetBookingByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", booking.Status)

	require.ErrorIs(t, r.UpdateBookingStatus(ctx, 42, "confirmed"), ErrBookingNotFound)

	_, err = r.GetBookingByID(ctx, 42)
	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestBookingRequiresExistingContact(t *testing.T) {
	r := newTestRepository(t)

	_, err := r.CreateBooking(context.Background(), &model.Booking{
		ContactID:   5,
		PackageType: "elite",
		PriceQuote:  7000,
	})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrBookingNotFound))
}

func TestEmailLogAppendAndCount(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, r.InsertEmailLog(ctx, "jo@x.com", "Welcome", "newsletter_welcome", "sent", nil))
	require.NoError(t, r.InsertEmailLog(ctx, "jo@x.com", "Reply", "contact_reply", "failed", strPtr("timeout")))

	logs, err := r.GetEmailLogs(ctx, "", 10)
	require.NoError(t, err)
	require.Len(t, logs, 2)

	failed, err := r.GetEmailLogs(ctx, "failed", 10)
	require.NoError(t, err)
	require.Len(t, failed, 1)
	require.NotNil(t, failed[0].ErrorMessage)
	assert.Equal(t, "timeout", *failed[0].ErrorMessage)

	sent, err := r.CountEmailLogsByStatus(ctx, "sent")
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
}

func TestStatisticsEmpty(t *testing.T) {
	r := newTestRepository(t)

	stats, err := r.GetStatistics(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalContacts)
	assert.Zero(t, stats.NewContacts)
	assert.Zero(t, stats.TotalSubscribers)
	assert.Zero(t, stats.TotalBookings)
	assert.Zero(t, stats.ConfirmedBookings)
	assert.Zero(t, stats.TotalRevenue)
}

func TestStatisticsAggregates(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()

	_, err := r.CreateContact(ctx, &model.ContactMessage{
		Name: "Jo", Email: "jo@x.com", EventName: "Wedding", Details: "details details",
	})
	require.NoError(t, err)

	_, err = r.CreateSubscriber(ctx, "fan@example.com")
	require.NoError(t, err)

	for _, quote := range []float64{6000, 7000} {
		id, err := r.CreateBooking(ctx, &model.Booking{
			ContactID:   1,
			PackageType: "professional",
			PriceQuote:  quote,
		})
		require.NoError(t, err)
		require.NoError(t, r.UpdateBookingStatus(ctx, id, "confirmed"))
	}

	stats, err := r.GetStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalContacts)
	assert.Equal(t, 1, stats.NewContacts)
	assert.Equal(t, 1, stats.TotalSubscribers)
	assert.Equal(t, 2, stats.TotalBookings)
	assert.Equal(t, 2, stats.ConfirmedBookings)
	assert.Equal(t, 13000.0, stats.TotalRevenue)
}
