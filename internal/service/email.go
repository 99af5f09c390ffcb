package service

import (
	"context"
	"fmt"

	"gracehub-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
	disabled  bool
}

func NewEmailService(apiKey, fromEmail, fromName string, disabled bool) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
		disabled:  disabled,
	}
}

func (s *emailService) SendAssignmentNotification(ctx context.Context, email, name, pastorName string) error {
	subject := "Your bible card request has been assigned"
	body := fmt.Sprintf("Hello %s,\n\nYour bible card request has been assigned to %s, who will prepare your card.\n\nGrace and peace,\nThe GraceHub Team", name, pastorName)
	return s.send(email, name, subject, body)
}

func (s *emailService) SendDeliveryNotification(ctx context.Context, email, name string) error {
	subject := "Your bible card is ready"
	body := fmt.Sprintf("Hello %s,\n\nYour bible card is finished. Sign in to GraceHub to find the delivery links on your application.\n\nGrace and peace,\nThe GraceHub Team", name)
	return s.send(email, name, subject, body)
}

func (s *emailService) SendBulkAssignmentSummary(ctx context.Context, pastorEmail, pastorName, groupName string, count int) error {
	subject := fmt.Sprintf("New bible card assignments for %s", groupName)
	body := fmt.Sprintf("Hello %s,\n\n%d bible card request(s) from group %s have been assigned to you.\n\nGrace and peace,\nThe GraceHub Team", pastorName, count, groupName)
	return s.send(pastorEmail, pastorName, subject, body)
}

func (s *emailService) SendPendingReminder(ctx context.Context, pastorEmail, pastorName, groupName string, pendingCount int) error {
	subject := fmt.Sprintf("Pending bible card requests in %s", groupName)
	body := fmt.Sprintf("Hello %s,\n\nGroup %s still has %d pending bible card request(s) awaiting assignment.\n\nGrace and peace,\nThe GraceHub Team", pastorName, groupName, pendingCount)
	return s.send(pastorEmail, pastorName, subject, body)
}

func (s *emailService) send(to, toName, subject, plainText string) error {
	if s.disabled {
		logger.Debug("email disabled, skipping send", "to", to, "subject", subject)
		return nil
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}
