package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"complyhub/internal/domain"
	"complyhub/internal/port"
)

type sesNotifier struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESNotifier creates a new SES-backed Notifier.
func NewSESNotifier(region, fromAddress, fromName string) (port.Notifier, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesNotifier{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

var statusPhrases = map[domain.ComplianceStatus]string{
	domain.ComplianceCompliant:    "fully compliant",
	domain.ComplianceNonCompliant: "non-compliant",
	domain.CompliancePending:      "pending review",
}

func (s *sesNotifier) NotifyComplianceStatusChange(ctx context.Context, toEmail, toName, startupName string, status domain.ComplianceStatus) error {
	phrase, ok := statusPhrases[status]
	if !ok {
		phrase = string(status)
	}

	subject := fmt.Sprintf("Compliance status update for %s", startupName)
	htmlBody := buildStatusChangeHTML(toName, startupName, phrase)
	textBody := fmt.Sprintf("Hi %s,\n\nThe overall compliance status of %s is now: %s.\n\nLog in to review the checklist and any outstanding tasks.\n\nComplyHub Team", toName, startupName, phrase)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildStatusChangeHTML(name, startupName, phrase string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Compliance status update</h2>
  <p>Hi %s,</p>
  <p>The overall compliance status of <strong>%s</strong> is now: <strong>%s</strong>.</p>
  <p>Log in to review the checklist and any outstanding tasks.</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">ComplyHub - Startup Compliance Platform</p>
</body>
</html>`, name, startupName, phrase)
}
