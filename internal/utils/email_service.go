package utils

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// EmailService provides email delivery functionality
type EmailService struct {
	smtpHost     string
	smtpPort     int
	smtpUsername string
	smtpPassword string
}

// NewEmailService creates a new EmailService
func NewEmailService(smtpHost string, smtpPort int, smtpUsername, smtpPassword string) *EmailService {
	return &EmailService{
		smtpHost:     smtpHost,
		smtpPort:     smtpPort,
		smtpUsername: smtpUsername,
		smtpPassword: smtpPassword,
	}
}

// SendEmail sends a single HTML email.
func (s *EmailService) SendEmail(from, to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(from, "Tracker"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(s.smtpHost, s.smtpPort, s.smtpUsername, s.smtpPassword)

	return d.DialAndSend(m)
}

// SendTeamInvitationEmail sends the invitation notification to the invited
// address.
func (s *EmailService) SendTeamInvitationEmail(from, to, teamName, inviterName, inviteURL string) error {
	subject := fmt.Sprintf("%s invited you to join %s", inviterName, teamName)
	body := generateInvitationEmailHTML(teamName, inviterName, inviteURL)
	return s.SendEmail(from, to, subject, body)
}

func generateInvitationEmailHTML(teamName, inviterName, inviteURL string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
	<meta http-equiv="Content-Type" content="text/html; charset=UTF-8" />
	<meta name="viewport" content="width=device-width, initial-scale=1.0" />
	<title>Team invitation</title>
</head>
<body style="margin: 0; padding: 0; font-family: Helvetica, Arial, sans-serif; background-color: #f7f9fc;">
	<table border="0" cellpadding="0" cellspacing="0" width="100%%" style="border-collapse: collapse;">
		<tr>
			<td style="padding: 40px 0;">
				<table align="center" border="0" cellpadding="0" cellspacing="0" width="600" style="border-collapse: collapse; background-color: #ffffff; box-shadow: 0 4px 15px rgba(0, 0, 0, 0.08);">
					<tr>
						<td style="padding: 40px 30px; color: #333333; font-size: 16px; line-height: 1.6;">
							<p style="margin-top: 0;"><strong>%s</strong> invited you to join the team <strong>%s</strong>.</p>
							<p>
								<a href="%s" style="display: inline-block; padding: 12px 24px; background-color: #5271ff; color: #ffffff; text-decoration: none; border-radius: 6px;">View invitation</a>
							</p>
							<p style="color: #888888; font-size: 13px;">If you were not expecting this invitation, you can ignore this email.</p>
						</td>
					</tr>
				</table>
			</td>
		</tr>
	</table>
</body>
</html>`, inviterName, teamName, inviteURL)
}
