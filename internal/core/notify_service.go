package core

import (
	"context"
	"fmt"

	"crewclock.service/internal/payroll"
	"crewclock.service/pkg/telemetry"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type NotifyService interface {
	SendPaySummary(ctx context.Context, to string, result payroll.EarningsResult) error
}

type SESNotifyService struct {
	client *ses.Client
	sender string
}

func NewSESNotifyService(client *ses.Client, sender string) *SESNotifyService {
	return &SESNotifyService{client: client, sender: sender}
}

func (s *SESNotifyService) SendPaySummary(ctx context.Context, to string, result payroll.EarningsResult) error {
	tracer := otel.Tracer("ses-notify-service")
	ctx, span := tracer.Start(ctx, "send_pay_summary", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	// Enrich span with the contractor ID if available in context
	if contractorID := telemetry.GetContractorIDFromContext(ctx); contractorID != "" {
		span.SetAttributes(attribute.String("app.contractor_id", contractorID))
	}

	// Amounts are rounded to pennies here, at display time only.
	body := fmt.Sprintf(
		"Hello,\n\nYour shift is complete. Hours worked: %s.\n\nGross pay: £%s\nPunctuality deduction: £%s\nCIS deduction: £%s\nNet pay: £%s\n",
		result.HoursWorked.StringFixed(2),
		result.GrossEarnings.StringFixed(2),
		result.PunctualityDeduction.StringFixed(2),
		result.CISDeduction.StringFixed(2),
		result.NetEarnings.StringFixed(2),
	)

	input := &ses.SendEmailInput{
		Source: aws.String(s.sender),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String("Shift Pay Summary"),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data: aws.String(body),
				},
			},
		},
	}

	_, err := s.client.SendEmail(ctx, input)
	return err
}
