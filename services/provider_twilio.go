package services

import (
	"errors"
	"fmt"

	"salonbook-backend/models"
	"salonbook-backend/utils"

	"github.com/twilio/twilio-go"
	twilioclient "github.com/twilio/twilio-go/client"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// TwilioProvider sends WhatsApp messages through the Twilio Messages API
// (form POST to /2010-04-01/Accounts/{sid}/Messages.json, basic auth).
type TwilioProvider struct {
	sender string
	rest   *twilio.RestClient
}

func NewTwilioProvider(cfg *models.ReminderConfig) *TwilioProvider {
	return &TwilioProvider{
		sender: cfg.SenderNumber,
		rest: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.AccountID,
			Password: cfg.AuthToken,
		}),
	}
}

func (p *TwilioProvider) Send(phone, body string) (string, error) {
	params := &twilioApi.CreateMessageParams{}
	params.SetFrom("whatsapp:" + p.sender)
	params.SetTo("whatsapp:" + utils.DigitsOnly(phone))
	params.SetBody(body)

	resp, err := p.rest.Api.CreateMessage(params)
	if err != nil {
		var restErr *twilioclient.TwilioRestError
		if errors.As(err, &restErr) {
			if restErr.Message != "" {
				return "", errors.New(restErr.Message)
			}
			return "", fmt.Errorf("API Error: %d", restErr.Status)
		}
		return "", err
	}
	if resp.Sid == nil {
		return "", nil
	}
	return *resp.Sid, nil
}
