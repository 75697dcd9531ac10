package service

import (
	"context"
	"fmt"

	"github.com/ITGlobers/return-app-pmi-poc/internal/clients/mail"
	"github.com/ITGlobers/return-app-pmi-poc/internal/domains/returnrequest/model"
	"github.com/ITGlobers/return-app-pmi-poc/pkg/logger"
)

// Mail is a best-effort side channel. Every failure in here is logged and
// swallowed: by the time mail is attempted the request is already durably
// persisted, so the creation/transition contract never depends on it.

func confirmationTemplateName(locale string) string {
	return fmt.Sprintf("oms-return-request-confirmation_%s", locale)
}

func statusUpdateTemplateName(locale string) string {
	return fmt.Sprintf("oms-return-request-status-update_%s", locale)
}

func (s *returnRequestService) sendConfirmationMail(ctx context.Context, request *model.ReturnRequest) {
	templateName := confirmationTemplateName(request.CultureInfoData.Locale)

	if err := s.ensureTemplate(ctx, templateName, "Return request confirmation"); err != nil {
		logger.Warn(fmt.Sprintf("failed to prepare confirmation template for request %s", request.ID), err)
		return
	}

	message := mail.Message{
		TemplateName: templateName,
		To:           request.CustomerProfileData.Email,
		JSONData: map[string]interface{}{
			"data": map[string]interface{}{
				"status":        string(request.Status),
				"name":          request.CustomerProfileData.Name,
				"DocumentId":    request.ID,
				"email":         request.CustomerProfileData.Email,
				"phoneNumber":   request.CustomerProfileData.PhoneNumber,
				"country":       request.PickupReturnData.Country,
				"locality":      request.PickupReturnData.City,
				"address":       request.PickupReturnData.Address,
				"paymentMethod": request.RefundPaymentData.RefundPaymentMethod,
			},
			"products":         request.Items,
			"refundStatusData": request.RefundStatusData,
		},
	}

	if err := s.mail.Send(ctx, message); err != nil {
		logger.Warn(fmt.Sprintf("failed to send confirmation email for return request %s", request.ID), err)
	}
}

func (s *returnRequestService) sendStatusUpdateMail(ctx context.Context, request *model.ReturnRequest) {
	templateName := statusUpdateTemplateName(request.CultureInfoData.Locale)

	if err := s.ensureTemplate(ctx, templateName, "Return request status update"); err != nil {
		logger.Warn(fmt.Sprintf("failed to prepare status template for request %s", request.ID), err)
		return
	}

	message := mail.Message{
		TemplateName: templateName,
		To:           request.CustomerProfileData.Email,
		JSONData: map[string]interface{}{
			"data": map[string]interface{}{
				"status":         string(request.Status),
				"name":           request.CustomerProfileData.Name,
				"DocumentId":     request.ID,
				"sequenceNumber": request.SequenceNumber,
			},
			"refundStatusData": request.RefundStatusData,
		},
	}

	if err := s.mail.Send(ctx, message); err != nil {
		logger.Warn(fmt.Sprintf("failed to send status email for return request %s", request.ID), err)
	}
}

// ensureTemplate publishes the locale template on first use.
func (s *returnRequestService) ensureTemplate(ctx context.Context, name, friendlyName string) error {
	exists, err := s.mail.TemplateExists(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	return s.mail.PublishTemplate(ctx, mail.Template{
		Name:         name,
		FriendlyName: friendlyName,
		Subject:      friendlyName,
		Body:         "{{data.name}}, your return request {{data.DocumentId}} is {{data.status}}.",
		IsDefault:    true,
	})
}
