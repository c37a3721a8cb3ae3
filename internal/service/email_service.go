package service

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"

	"hero-forge/internal/config"
)

// EmailService is the outbound notifier. One call per terminal transition;
// callers treat every method as best-effort.
type EmailService interface {
	SendWelcome(ctx context.Context, toEmail, displayName string) error
	SendCharacterApproved(ctx context.Context, toEmail, displayName, characterName string) error
	SendCharacterRejected(ctx context.Context, toEmail, displayName, characterName, reason string) error
	SendCommentApproved(ctx context.Context, toEmail, displayName, characterName string) error
	SendCommentRejected(ctx context.Context, toEmail, displayName, characterName, reason string) error
	SendAccountSuspended(ctx context.Context, toEmail, displayName string) error
}

type emailService struct {
	client *resend.Client
	config *config.Config
}

func NewEmailService(cfg *config.Config) EmailService {
	return &emailService{
		client: resend.NewClient(cfg.ResendAPIKey),
		config: cfg,
	}
}

func (s *emailService) SendWelcome(ctx context.Context, toEmail, displayName string) error {
	body := fmt.Sprintf(`
		<p>Hello %s,</p>
		<p>Welcome to <strong>Hero Forge</strong>! Your account is ready.
		Build your first character, submit it for review, and share it with
		the community once it is approved.</p>
		<p><a href="http://%s/builder">Start building</a></p>`,
		displayName, s.config.Domain)

	return s.send(toEmail, "Welcome to Hero Forge", body)
}

func (s *emailService) SendCharacterApproved(ctx context.Context, toEmail, displayName, characterName string) error {
	body := fmt.Sprintf(`
		<p>Hello %s,</p>
		<p>Good news: your character <strong>%s</strong> has been approved by
		our moderation team. You can now share it publicly and receive
		ratings from other players.</p>`,
		displayName, characterName)

	return s.send(toEmail, fmt.Sprintf("%s has been approved", characterName), body)
}

func (s *emailService) SendCharacterRejected(ctx context.Context, toEmail, displayName, characterName, reason string) error {
	body := fmt.Sprintf(`
		<p>Hello %s,</p>
		<p>Your character <strong>%s</strong> was not approved.</p>
		<p>Moderator note: %s</p>
		<p>You can edit the character and submit it again at any time.</p>`,
		displayName, characterName, reason)

	return s.send(toEmail, fmt.Sprintf("%s needs changes", characterName), body)
}

func (s *emailService) SendCommentApproved(ctx context.Context, toEmail, displayName, characterName string) error {
	body := fmt.Sprintf(`
		<p>Hello %s,</p>
		<p>Your comment on <strong>%s</strong> has been approved and is now
		publicly visible.</p>`,
		displayName, characterName)

	return s.send(toEmail, "Your comment has been approved", body)
}

func (s *emailService) SendCommentRejected(ctx context.Context, toEmail, displayName, characterName, reason string) error {
	body := fmt.Sprintf(`
		<p>Hello %s,</p>
		<p>Your comment on <strong>%s</strong> was not approved.</p>
		<p>Moderator note: %s</p>`,
		displayName, characterName, reason)

	return s.send(toEmail, "Your comment was not approved", body)
}

func (s *emailService) SendAccountSuspended(ctx context.Context, toEmail, displayName string) error {
	body := fmt.Sprintf(`
		<p>Hello %s,</p>
		<p>Your Hero Forge account has been suspended by an administrator.
		While suspended you cannot sign in. Contact support if you believe
		this is a mistake.</p>`,
		displayName)

	return s.send(toEmail, "Your account has been suspended", body)
}

func (s *emailService) send(toEmail, subject, body string) error {
	html := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<div style="background: #1f2937; padding: 24px; text-align: center; border-radius: 8px 8px 0 0;">
		<h1 style="color: #f9fafb; margin: 0; font-size: 24px;">Hero Forge</h1>
	</div>
	<div style="background: #ffffff; padding: 24px; border: 1px solid #e5e7eb; border-top: none; border-radius: 0 0 8px 8px;">
		%s
		<hr style="border: none; border-top: 1px solid #e5e7eb; margin: 24px 0;">
		<p style="font-size: 13px; color: #6b7280;">The Hero Forge team</p>
	</div>
</body>
</html>`, body)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Hero Forge <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    html,
		Subject: subject,
	}

	_, err := s.client.Emails.Send(params)
	return err
}
