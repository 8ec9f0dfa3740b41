package model

import "time"

type ContactMessage struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	EventName string    `db:"event_name" json:"event_name"`
	Package   *string   `db:"package,omitempty" json:"package,omitempty"`
	Details   string    `db:"details" json:"details"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	Notes     *string   `db:"notes,omitempty" json:"notes,omitempty"`
}

type NewsletterSubscriber struct {
	ID           int       `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	SubscribedAt time.Time `db:"subscribed_at" json:"subscribed_at"`
	Active       bool      `db:"active" json:"active"`
	// unsubscribe_token is reserved in the schema but not issued or
	// checked anywhere yet.
	UnsubscribeToken *string `db:"unsubscribe_token,omitempty" json:"unsubscribe_token,omitempty"`
}

type Booking struct {
	ID          int       `db:"id" json:"id"`
	ContactID   int       `db:"contact_id" json:"contact_id"`
	PackageType string    `db:"package_type" json:"package_type"`
	EventDate   *string   `db:"event_date,omitempty" json:"event_date,omitempty"`
	GuestCount  *int      `db:"guest_count,omitempty" json:"guest_count,omitempty"`
	PriceQuote  float64   `db:"price_quote" json:"price_quote"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type EmailLog struct {
	ID           int       `db:"id" json:"id"`
	Recipient    string    `db:"recipient" json:"recipient"`
	Subject      string    `db:"subject" json:"subject"`
	EmailType    string    `db:"email_type" json:"email_type"`
	Status       string    `db:"status" json:"status"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	ErrorMessage *string   `db:"error_message,omitempty" json:"error_message,omitempty"`
}
