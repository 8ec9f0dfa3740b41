package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jiggermix/internal/dto"
	"jiggermix/internal/mailer"
)

func TestSubscribeLifecycle(t *testing.T) {
	sender := &stubSender{}
	app, repository := newTestApp(t, sender)
	ctx := context.Background()

	// First subscribe: new row plus welcome email.
	w := doRequest(t, app, http.MethodPost, "/api/newsletter/subscribe", map[string]any{"email": "Fan@Example.COM"})
	require.Equal(t, http.StatusCreated, w.Code)

	env := decodeEnvelope(t, w)
	var data dto.IDData
	decodeData(t, env, &data)
	require.Equal(t, int64(1), data.ID)

	first, err := repository.GetSubscriberByEmail(ctx, "fan@example.com")
	require.NoError(t, err)
	assert.True(t, first.Active)

	logs, err := repository.GetEmailLogs(ctx, "", 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, mailer.TypeNewsletterWelcome, logs[0].EmailType)

	// Second subscribe while active: conflict, no new row.
	w = doRequest(t, app, http.MethodPost, "/api/newsletter/subscribe", map[string]any{"email": "fan@example.com"})
	require.Equal(t, http.StatusConflict, w.Code)
	env = decodeEnvelope(t, w)
	assert.Contains(t, env.Errors, "Already subscribed")

	all, err := repository.GetSubscribers(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 1)

	// Unsubscribe flips active off.
	w = doRequest(t, app, http.MethodPost, "/api/newsletter/unsubscribe/fan@example.com", nil)
	require.Equal(t, http.StatusOK, w.Code)

	inactive, err := repository.GetSubscriberByEmail(ctx, "fan@example.com")
	require.NoError(t, err)
	assert.False(t, inactive.Active)

	// Resubscribe reuses the row: same id, same subscribed_at, no second
	// welcome email.
	w = doRequest(t, app, http.MethodPost, "/api/newsletter/subscribe", map[string]any{"email": "fan@example.com"})
	require.Equal(t, http.StatusOK, w.Code)
	env = decodeEnvelope(t, w)
	decodeData(t, env, &data)
	assert.Equal(t, int64(first.ID), data.ID)

	reactivated, err := repository.GetSubscriberByEmail(ctx, "fan@example.com")
	require.NoError(t, err)
	assert.True(t, reactivated.Active)
	assert.Equal(t, first.ID, reactivated.ID)
	assert.True(t, first.SubscribedAt.Equal(reactivated.SubscribedAt))

	logs, err = repository.GetEmailLogs(ctx, "", 10)
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestSubscribeInvalidEmail(t *testing.T) {
	app, _ := newTestApp(t, &stubSender{})

	for _, email := range []string{"", "nope", "a@b", "a@b."} {
		w := doRequest(t, app, http.MethodPost, "/api/newsletter/subscribe", map[string]any{"email": email})
		require.Equal(t, http.StatusBadRequest, w.Code, "email %q", email)

		env := decodeEnvelope(t, w)
		assert.Contains(t, env.Errors, "Valid email required")
	}
}

func TestUnsubscribeUnknownEmail(t *testing.T) {
	app, repository := newTestApp(t, &stubSender{})

	w := doRequest(t, app, http.MethodPost, "/api/newsletter/unsubscribe/ghost@example.com", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	all, err := repository.GetSubscribers(context.Background(), false)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestUnsubscribeTwiceSucceeds(t *testing.T) {
	app, _ := newTestApp(t, &stubSender{})

	doRequest(t, app, http.MethodPost, "/api/newsletter/subscribe", map[string]any{"email": "fan@example.com"})

	for i := 0; i < 2; i++ {
		w := doRequest(t, app, http.MethodPost, "/api/newsletter/unsubscribe/fan@example.com", nil)
		require.Equal(t, http.StatusOK, w.Code)
	}
}

func TestListSubscribersActiveFilter(t *testing.T) {
	app, _ := newTestApp(t, &stubSender{})

	doRequest(t, app, http.MethodPost, "/api/newsletter/subscribe", map[string]any{"email": "active@example.com"})
	doRequest(t, app, http.MethodPost, "/api/newsletter/subscribe", map[string]any{"email": "gone@example.com"})
	doRequest(t, app, http.MethodPost, "/api/newsletter/unsubscribe/gone@example.com", nil)

	// Default view is active rows only.
	w := doRequest(t, app, http.MethodGet, "/api/newsletter/subscribers", nil)
	require.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	var data dto.SubscriberListData
	decodeData(t, env, &data)
	require.Equal(t, 1, data.Count)
	assert.Equal(t, "active@example.com", data.Subscribers[0].Email)

	// Anything but "true" lifts the filter.
	w = doRequest(t, app, http.MethodGet, "/api/newsletter/subscribers?active=false", nil)
	env = decodeEnvelope(t, w)
	decodeData(t, env, &data)
	assert.Equal(t, 2, data.Count)
}
