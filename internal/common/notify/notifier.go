// Package notify sends order-confirmation notifications over SES and SNS.
// Both channels are optional and disabled by default; a failed notification
// never fails the order.
package notify

import (
	"context"
	"fmt"

	"medisearch/internal/common/config"
	"medisearch/internal/common/logger"
	"medisearch/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// SESService is the slice of the SES client the notifier uses.
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SNSService is the slice of the SNS client the notifier uses.
type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type Notifier struct {
	cfg    config.NotificationConfig
	ses    SESService
	sns    SNSService
	logger logger.Logger
}

// New builds a Notifier backed by real AWS clients. Returns a disabled
// notifier when neither channel is enabled.
func New(ctx context.Context, cfg config.NotificationConfig, log logger.Logger) (*Notifier, error) {
	n := &Notifier{cfg: cfg, logger: log.WithFields(map[string]interface{}{"component": "notify"})}

	if !cfg.Email.Enabled && !cfg.SMS.Enabled {
		return n, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	if cfg.Email.Enabled {
		n.ses = ses.NewFromConfig(awsCfg)
	}
	if cfg.SMS.Enabled {
		n.sns = sns.NewFromConfig(awsCfg)
	}
	return n, nil
}

// NewWithClients builds a Notifier with injected channel clients (tests).
func NewWithClients(cfg config.NotificationConfig, sesClient SESService, snsClient SNSService, log logger.Logger) *Notifier {
	return &Notifier{cfg: cfg, ses: sesClient, sns: snsClient, logger: log}
}

// OrderPlaced sends confirmation over the enabled channels. Errors are
// logged, not returned: the order is already persisted.
func (n *Notifier) OrderPlaced(ctx context.Context, order *models.Order, orderID string) {
	if n.cfg.Email.Enabled && n.ses != nil && order.ContactEmail != "" {
		if err := n.sendEmail(ctx, order, orderID); err != nil {
			n.logger.Warn("order confirmation email failed", map[string]interface{}{
				"orderId": orderID,
				"error":   err.Error(),
			})
		}
	}

	if n.cfg.SMS.Enabled && n.sns != nil && order.ContactPhone != "" {
		if err := n.sendSMS(ctx, order, orderID); err != nil {
			n.logger.Warn("order confirmation SMS failed", map[string]interface{}{
				"orderId": orderID,
				"error":   err.Error(),
			})
		}
	}
}

func (n *Notifier) sendEmail(ctx context.Context, order *models.Order, orderID string) error {
	subject := fmt.Sprintf("Order %s confirmed at %s", orderID, order.Store.Store.Name)
	body := fmt.Sprintf(
		"Your order of %d medicines totals Rs %.2f (delivery Rs %.2f). Delivery type: %s.",
		len(order.Store.AvailableMedicines), order.TotalAmount, order.DeliveryCharge, order.DeliveryType,
	)

	_, err := n.ses.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &sestypes.Destination{
			ToAddresses: []string{order.ContactEmail},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(subject)},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(n.cfg.Email.FromEmail),
	})
	return err
}

func (n *Notifier) sendSMS(ctx context.Context, order *models.Order, orderID string) error {
	message := fmt.Sprintf("Order %s confirmed. Total Rs %.2f.", orderID, order.TotalAmount)

	_, err := n.sns.Publish(ctx, &sns.PublishInput{
		Message:     aws.String(message),
		PhoneNumber: aws.String(order.ContactPhone),
	})
	return err
}
