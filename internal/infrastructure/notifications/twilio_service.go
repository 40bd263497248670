package notifications

import (
	"fmt"
	"strings"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"github.com/you/phoneauthsvc/domain"
	"go.uber.org/zap"
)

// TwilioServiceImpl implements domain.NotificationService over Twilio's
// WhatsApp channel.
type TwilioServiceImpl struct {
	client      *twilio.RestClient
	fromNumber  string
	countryCode string
	logger      *zap.Logger
}

// NewTwilioService creates a new Twilio WhatsApp notification service
func NewTwilioService(accountSID, authToken, fromNumber, countryCode string, logger *zap.Logger) domain.NotificationService {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &TwilioServiceImpl{
		client:      client,
		fromNumber:  fromNumber,
		countryCode: countryCode,
		logger:      logger,
	}
}

// Send implements domain.NotificationService. If credentials are not
// configured the code is logged instead of sent, which keeps local
// development working without a Twilio account.
func (t *TwilioServiceImpl) Send(to, code string) error {
	if t.fromNumber == "" {
		t.logger.Info("mock otp delivery",
			zap.String("to", domain.NormalizePhone(to)),
			zap.String("code", code))
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(t.whatsappAddr(to))
	params.SetFrom("whatsapp:" + t.fromNumber)
	params.SetBody(fmt.Sprintf("Your verification code is: %s", code))

	if _, err := t.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, err)
	}

	return nil
}

// whatsappAddr converts a local phone input into the whatsapp:+<E.164> form
// Twilio expects, applying the configured country code to bare 10-digit
// numbers.
func (t *TwilioServiceImpl) whatsappAddr(phone string) string {
	if strings.HasPrefix(phone, "+") {
		return "whatsapp:" + phone
	}
	return "whatsapp:" + t.countryCode + domain.NormalizePhone(phone)
}
