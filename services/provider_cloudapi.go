package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"salonbook-backend/models"
	"salonbook-backend/utils"
)

// CloudAPIProvider sends WhatsApp messages through the Meta Cloud API
// (JSON POST to {base}/messages, bearer auth).
type CloudAPIProvider struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewCloudAPIProvider(cfg *models.ReminderConfig) *CloudAPIProvider {
	return &CloudAPIProvider{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.AuthToken,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type cloudAPIText struct {
	Body string `json:"body"`
}

type cloudAPIRequest struct {
	MessagingProduct string       `json:"messaging_product"`
	To               string       `json:"to"`
	Type             string       `json:"type"`
	Text             cloudAPIText `json:"text"`
}

type cloudAPIResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (p *CloudAPIProvider) Send(phone, body string) (string, error) {
	payload := cloudAPIRequest{
		MessagingProduct: "whatsapp",
		To:               utils.DigitsOnly(phone),
		Type:             "text",
		Text:             cloudAPIText{Body: body},
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, p.baseURL+"/messages", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+p.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out cloudAPIResponse
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if json.NewDecoder(resp.Body).Decode(&out) == nil &&
			out.Error != nil && out.Error.Message != "" {
			return "", errors.New(out.Error.Message)
		}
		return "", fmt.Errorf("API Error: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Messages) == 0 {
		return "", nil
	}
	return out.Messages[0].ID, nil
}
