package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"jiggermix/internal/model"
)

var (
	ErrContactNotFound     = errors.New("contact not found")
	ErrSubscriberNotFound  = errors.New("subscriber not found")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrDuplicateSubscriber = errors.New("duplicate subscriber")
)

type Statistics struct {
	TotalContacts     int
	NewContacts       int
	TotalSubscribers  int
	TotalBookings     int
	ConfirmedBookings int
	TotalRevenue      float64
}

type Repository interface {
	InitSchema(ctx context.Context) error
	Close() error

	CreateContact(ctx context.Context, c *model.ContactMessage) (int64, error)
	GetContactByID(ctx context.Context, id int64) (*model.ContactMessage, error)
	GetContacts(ctx context.Context, status string, limit int) ([]model.ContactMessage, error)
	UpdateContactStatus(ctx context.Context, id int64, status string, notes *string) error

	GetSubscriberByEmail(ctx context.Context, email string) (*model.NewsletterSubscriber, error)
	CreateSubscriber(ctx context.Context, email string) (int64, error)
	SetSubscriberActive(ctx context.Context, email string, active bool) error
	GetSubscribers(ctx context.Context, activeOnly bool) ([]model.NewsletterSubscriber, error)
	GetRecentSubscribers(ctx context.Context, limit int) ([]model.NewsletterSubscriber, error)

	CreateBooking(ctx context.Context, b *model.Booking) (int64, error)
	GetBookingByID(ctx context.Context, id int64) (*model.Booking, error)
	GetBookings(ctx context.Context, status string, limit int) ([]model.Booking, error)
	UpdateBookingStatus(ctx context.Context, id int64, status string) error

	InsertEmailLog(ctx context.Context, recipient, subject, emailType, status string, errorMessage *string) error
	GetEmailLogs(ctx context.Context, status string, limit int) ([]model.EmailLog, error)
	CountEmailLogsByStatus(ctx context.Context, status string) (int, error)

	GetStatistics(ctx context.Context) (*Statistics, error)
}

type repository struct {
	db  *sql.DB
	log *zerolog.Logger
}

// Open opens the single-file SQLite database at path. Foreign keys are
// switched on per connection through the DSN pragma.
func Open(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func NewRepository(db *sql.DB, log *zerolog.Logger) (Repository, error) {
	if db == nil {
		return nil, fmt.Errorf("db cannot be nil")
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}
	return &repository{db: db, log: log}, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS contact_messages (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    email TEXT NOT NULL,
    event_name TEXT NOT NULL,
    package TEXT,
    details TEXT NOT NULL,
    status TEXT DEFAULT 'new',
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    notes TEXT
);

CREATE TABLE IF NOT EXISTS newsletter_subscribers (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    email TEXT UNIQUE NOT NULL,
    subscribed_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    active INTEGER DEFAULT 1,
    unsubscribe_token TEXT UNIQUE
);

CREATE TABLE IF NOT EXISTS bookings (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    contact_id INTEGER NOT NULL,
    package_type TEXT NOT NULL,
    event_date DATETIME,
    guest_count INTEGER,
    price_quote REAL,
    status TEXT DEFAULT 'pending',
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (contact_id) REFERENCES contact_messages(id)
);

CREATE TABLE IF NOT EXISTS email_logs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    recipient TEXT NOT NULL,
    subject TEXT NOT NULL,
    email_type TEXT NOT NULL,
    status TEXT DEFAULT 'sent',
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    error_message TEXT
);
`

// InitSchema creates all tables. Safe to call on every start, the
// statements use IF NOT EXISTS.
func (r *repository) InitSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	r.log.Info().Msg("database schema initialized")
	return nil
}

func (r *repository) Close() error {
	return r.db.Close()
}

func (r *repository) CreateContact(ctx context.Context, c *model.ContactMessage) (int64, error) {
	query := `
		INSERT INTO contact_messages (name, email, event_name, package, details)
		VALUES (?, ?, ?, ?, ?)
	`
	res, err := r.db.ExecContext(ctx, query, c.Name, c.Email, c.EventName, c.Package, c.Details)
	if err != nil {
		return 0, fmt.Errorf("failed to insert contact: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted contact id: %w", err)
	}
	return id, nil
}

func (r *repository) GetContactByID(ctx context.Context, id int64) (*model.ContactMessage, error) {
	query := `
		SELECT id, name, email, event_name, package, details, status, created_at, notes
		FROM contact_messages WHERE id = ?
	`
	row := r.db.QueryRowContext(ctx, query, id)

	var c model.ContactMessage
	if err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.EventName, &c.Package,
		&c.Details, &c.Status, &c.CreatedAt, &c.Notes,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrContactNotFound
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}
	return &c, nil
}

func (r *repository) GetContacts(ctx context.Context, status string, limit int) ([]model.ContactMessage, error) {
	query := `
		SELECT id, name, email, event_name, package, details, status, created_at, notes
		FROM contact_messages
	`
	var params []any
	if status != "" {
		query += " WHERE status = ?"
		params = append(params, status)
	}
	query += " ORDER BY created_at DESC, id DESC LIMIT ?"
	params = append(params, limit)

	rows, err := r.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("failed to get contacts: %w", err)
	}
	defer rows.Close()

	var contacts []model.ContactMessage
	for rows.Next() {
		var c model.ContactMessage
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Email, &c.EventName, &c.Package,
			&c.Details, &c.Status, &c.CreatedAt, &c.Notes,
		); err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

func (r *repository) UpdateContactStatus(ctx context.Context, id int64, status string, notes *string) error {
	query := "UPDATE contact_messages SET status = ?"
	params := []any{status}
	if notes != nil {
		query += ", notes = ?"
		params = append(params, *notes)
	}
	query += " WHERE id = ?"
	params = append(params, id)

	res, err := r.db.ExecContext(ctx, query, params...)
	if err != nil {
		return fmt.Errorf("failed to update contact status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrContactNotFound
	}
	return nil
}

func (r *repository) GetSubscriberByEmail(ctx context.Context, email string) (*model.NewsletterSubscriber, error) {
	query := `
		SELECT id, email, subscribed_at, active, unsubscribe_token
		FROM newsletter_subscribers WHERE email = ?
	`
	row := r.db.QueryRowContext(ctx, query, email)

	var s model.NewsletterSubscriber
	if err := row.Scan(&s.ID, &s.Email, &s.SubscribedAt, &s.Active, &s.UnsubscribeToken); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSubscriberNotFound
		}
		return nil, fmt.Errorf("failed to get subscriber: %w", err)
	}
	return &s, nil
}

func (r *repository) CreateSubscriber(ctx context.Context, email string) (int64, error) {
	query := `INSERT INTO newsletter_subscribers (email, active) VALUES (?, 1)`
	res, err := r.db.ExecContext(ctx, query, email)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return 0, ErrDuplicateSubscriber
		}
		return 0, fmt.Errorf("failed to insert subscriber: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted subscriber id: %w", err)
	}
	return id, nil
}

func (r *repository) SetSubscriberActive(ctx context.Context, email string, active bool) error {
	query := `UPDATE newsletter_subscribers SET active = ? WHERE email = ?`
	res, err := r.db.ExecContext(ctx, query, active, email)
	if err != nil {
		return fmt.Errorf("failed to update subscriber: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrSubscriberNotFound
	}
	return nil
}

func (r *repository) GetSubscribers(ctx context.Context, activeOnly bool) ([]model.NewsletterSubscriber, error) {
	query := `
		SELECT id, email, subscribed_at, active, unsubscribe_token
		FROM newsletter_subscribers
	`
	if activeOnly {
		query += " WHERE active = 1"
	}
	query += " ORDER BY subscribed_at DESC, id DESC"

	return r.querySubscribers(ctx, query)
}

func (r *repository) GetRecentSubscribers(ctx context.Context, limit int) ([]model.NewsletterSubscriber, error) {
	query := `
		SELECT id, email, subscribed_at, active, unsubscribe_token
		FROM newsletter_subscribers
		ORDER BY subscribed_at DESC, id DESC LIMIT ?
	`
	return r.querySubscribers(ctx, query, limit)
}

func (r *repository) querySubscribers(ctx context.Context, query string, params ...any) ([]model.NewsletterSubscriber, error) {
	rows, err := r.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscribers: %w", err)
	}
	defer rows.Close()

	var subs []model.NewsletterSubscriber
	for rows.Next() {
		var s model.NewsletterSubscriber
		if err := rows.Scan(&s.ID, &s.Email, &s.SubscribedAt, &s.Active, &s.UnsubscribeToken); err != nil {
			return nil, fmt.Errorf("failed to scan subscriber: %w", err)
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

func (r *repository) CreateBooking(ctx context.Context, b *model.Booking) (int64, error) {
	query := `
		INSERT INTO bookings (contact_id, package_type, event_date, guest_count, price_quote, status)
		VALUES (?, ?, ?, ?, ?, 'pending')
	`
	res, err := r.db.ExecContext(ctx, query, b.ContactID, b.PackageType, b.EventDate, b.GuestCount, b.PriceQuote)
	if err != nil {
		return 0, fmt.Errorf("failed to insert booking: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted booking id: %w", err)
	}
	return id, nil
}

func (r *repository) GetBookingByID(ctx context.Context, id int64) (*model.Booking, error) {
	query := `
		SELECT id, contact_id, package_type, event_date, guest_count, price_quote, status, created_at
		FROM bookings WHERE id = ?
	`
	row := r.db.QueryRowContext(ctx, query, id)

	var b model.Booking
	if err := row.Scan(
		&b.ID, &b.ContactID, &b.PackageType, &b.EventDate,
		&b.GuestCount, &b.PriceQuote, &b.Status, &b.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &b, nil
}

func (r *repository) GetBookings(ctx context.Context, status string, limit int) ([]model.Booking, error) {
	query := `
		SELECT id, contact_id, package_type, event_date, guest_count, price_quote, status, created_at
		FROM bookings
	`
	var params []any
	if status != "" {
		query += " WHERE status = ?"
		params = append(params, status)
	}
	query += " ORDER BY created_at DESC, id DESC LIMIT ?"
	params = append(params, limit)

	rows, err := r.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}
	defer rows.Close()

	var bookings []model.Booking
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(
			&b.ID, &b.ContactID, &b.PackageType, &b.EventDate,
			&b.GuestCount, &b.PriceQuote, &b.Status, &b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *repository) UpdateBookingStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE bookings SET status = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func (r *repository) InsertEmailLog(ctx context.Context, recipient, subject, emailType, status string, errorMessage *string) error {
	query := `
		INSERT INTO email_logs (recipient, subject, email_type, status, error_message)
		VALUES (?, ?, ?, ?, ?)
	`
	if _, err := r.db.ExecContext(ctx, query, recipient, subject, emailType, status, errorMessage); err != nil {
		return fmt.Errorf("failed to insert email log: %w", err)
	}
	return nil
}

func (r *repository) GetEmailLogs(ctx context.Context, status string, limit int) ([]model.EmailLog, error) {
	query := `
		SELECT id, recipient, subject, email_type, status, created_at, error_message
		FROM email_logs
	`
	var params []any
	if status != "" {
		query += " WHERE status = ?"
		params = append(params, status)
	}
	query += " ORDER BY created_at DESC, id DESC LIMIT ?"
	params = append(params, limit)

	rows, err := r.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("failed to get email logs: %w", err)
	}
	defer rows.Close()

	var logs []model.EmailLog
	for rows.Next() {
		var l model.EmailLog
		if err := rows.Scan(
			&l.ID, &l.Recipient, &l.Subject, &l.EmailType,
			&l.Status, &l.CreatedAt, &l.ErrorMessage,
		); err != nil {
			return nil, fmt.Errorf("failed to scan email log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (r *repository) CountEmailLogsByStatus(ctx context.Context, status string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM email_logs WHERE status = ?`
	if err := r.db.QueryRowContext(ctx, query, status).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count email logs: %w", err)
	}
	return count, nil
}

func (r *repository) GetStatistics(ctx context.Context) (*Statistics, error) {
	var s Statistics

	counts := []struct {
		query string
		dest  *int
	}{
		{`SELECT COUNT(*) FROM contact_messages`, &s.TotalContacts},
		{`SELECT COUNT(*) FROM contact_messages WHERE status = 'new'`, &s.NewContacts},
		{`SELECT COUNT(*) FROM newsletter_subscribers WHERE active = 1`, &s.TotalSubscribers},
		{`SELECT COUNT(*) FROM bookings`, &s.TotalBookings},
		{`SELECT COUNT(*) FROM bookings WHERE status = 'confirmed'`, &s.ConfirmedBookings},
	}
	for _, c := range counts {
		if err := r.db.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("failed to count statistics: %w", err)
		}
	}

	revenue := `SELECT COALESCE(SUM(price_quote), 0) FROM bookings WHERE status = 'confirmed'`
	if err := r.db.QueryRowContext(ctx, revenue).Scan(&s.TotalRevenue); err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}
	return &s, nil
}
