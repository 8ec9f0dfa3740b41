package mailer

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/rs/zerolog"

	"jiggermix/internal/repo"
)

const (
	TypeContactReply      = "contact_reply"
	TypeNewsletterWelcome = "newsletter_welcome"

	StatusSent   = "sent"
	StatusFailed = "failed"

	subjectContactReply      = "We Received Your Booking Request - JiggerOnTheMix"
	subjectNewsletterWelcome = "Welcome to JiggerOnTheMix Newsletter!"
)

type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	Sender   string
}

// Sender delivers one message to one recipient. Implementations report
// delivery failure through the returned error only.
type Sender interface {
	Send(to, subject, htmlBody string) error
}

type smtpSender struct {
	cfg Config
}

func NewSMTPSender(cfg Config) Sender {
	return &smtpSender{cfg: cfg}
}

func (s *smtpSender) Send(to, subject, htmlBody string) error {
	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		s.cfg.Sender, to, subject, htmlBody,
	)

	addr := s.cfg.Host + ":" + s.cfg.Port
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	if err := smtp.SendMail(addr, auth, s.cfg.Username, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

// Notifier sends transactional email best-effort: one attempt, one
// email_logs row per attempt, and a bool instead of an error so a failed
// send never fails the request that triggered it.
type Notifier interface {
	SendContactReply(ctx context.Context, recipient, contactName, eventName string) bool
	SendNewsletterWelcome(ctx context.Context, recipient string) bool
}

type notifier struct {
	sender Sender
	repo   repo.Repository
	log    *zerolog.Logger
}

func NewNotifier(sender Sender, repository repo.Repository, log *zerolog.Logger) Notifier {
	return &notifier{
		sender: sender,
		repo:   repository,
		log:    log,
	}
}

func (n *notifier) SendContactReply(ctx context.Context, recipient, contactName, eventName string) bool {
	body := fmt.Sprintf(contactReplyBody, contactName, eventName)
	return n.send(ctx, recipient, subjectContactReply, body, TypeContactReply)
}

func (n *notifier) SendNewsletterWelcome(ctx context.Context, recipient string) bool {
	return n.send(ctx, recipient, subjectNewsletterWelcome, newsletterWelcomeBody, TypeNewsletterWelcome)
}

func (n *notifier) send(ctx context.Context, recipient, subject, body, emailType string) bool {
	if err := n.sender.Send(recipient, subject, body); err != nil {
		errMsg := err.Error()
		if logErr := n.repo.InsertEmailLog(ctx, recipient, subject, emailType, StatusFailed, &errMsg); logErr != nil {
			n.log.Error().Err(logErr).Msg("failed to record failed email attempt")
		}
		n.log.Warn().Err(err).Str("recipient", recipient).Str("type", emailType).Msg("email delivery failed")
		return false
	}

	if err := n.repo.InsertEmailLog(ctx, recipient, subject, emailType, StatusSent, nil); err != nil {
		n.log.Error().Err(err).Msg("failed to record sent email")
	}
	n.log.Info().Str("recipient", recipient).Str("type", emailType).Msg("email sent")
	return true
}

const contactReplyBody = `<html>
    <body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
        <div style="max-width: 600px; margin: 0 auto; background: #f9f9f9; padding: 20px; border-radius: 8px;">
            <h2 style="color: #dd0000;">Thank You, %s!</h2>
            <p>We received your booking request for <strong>%s</strong>.</p>
            <p>Our team is reviewing your details and will get back to you within 24 hours with a personalized quote and availability.</p>
            <h3 style="color: #dd0000; margin-top: 30px;">What's Next?</h3>
            <ul>
                <li>We'll contact you via email or phone to confirm details</li>
                <li>We'll provide a custom quote based on your event</li>
                <li>Once confirmed, we'll send a booking confirmation</li>
            </ul>
            <p style="color: #dd0000; font-weight: bold; margin-top: 20px;">
                JiggerOnTheMix - Premium Mobile Bar Service
            </p>
        </div>
    </body>
</html>`

const newsletterWelcomeBody = `<html>
    <body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
        <div style="max-width: 600px; margin: 0 auto; background: #f9f9f9; padding: 20px; border-radius: 8px;">
            <h2 style="color: #dd0000;">Welcome to Our Newsletter!</h2>
            <p>Thank you for subscribing to JiggerOnTheMix updates.</p>
            <p>You'll now receive:</p>
            <ul>
                <li>Exclusive event package deals</li>
                <li>New cocktail menu updates</li>
                <li>Special promotions and discounts</li>
                <li>Event planning tips from our experts</li>
            </ul>
            <p style="margin-top: 30px; color: #666; font-size: 12px;">
                Not interested? You can unsubscribe anytime by replying to this email.
            </p>
            <p style="color: #dd0000; font-weight: bold; margin-top: 20px;">
                JiggerOnTheMix - Premium Mobile Bar Service
            </p>
        </div>
    </body>
</html>`
