package services

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twilio/twilio-go"
	twilioclient "github.com/twilio/twilio-go/client"
)

// fakeTwilioTransport stands in for the SDK's HTTP client so the test can
// inspect the exact form fields and URL the adapter produces.
type fakeTwilioTransport struct {
	status int
	body   string
	err    error

	gotMethod string
	gotURL    string
	gotData   url.Values
}

func (f *fakeTwilioTransport) AccountSid() string         { return "AC123" }
func (f *fakeTwilioTransport) SetTimeout(_ time.Duration) {}

func (f *fakeTwilioTransport) SendRequest(method string, rawURL string, data url.Values,
	headers map[string]interface{}) (*http.Response, error) {
	f.gotMethod = method
	f.gotURL = rawURL
	f.gotData = data
	if f.err != nil {
		return nil, f.err
	}
	return &http.Response{
		StatusCode: f.status,
		Body:       io.NopCloser(strings.NewReader(f.body)),
	}, nil
}

func newTestTwilioProvider(transport *fakeTwilioTransport) *TwilioProvider {
	return &TwilioProvider{
		sender: "+14155238886",
		rest: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: "AC123",
			Password: "token",
			Client:   transport,
		}),
	}
}

func TestTwilioProviderSend(t *testing.T) {
	transport := &fakeTwilioTransport{status: 201, body: `{"sid": "SM123"}`}
	provider := newTestTwilioProvider(transport)

	messageID, err := provider.Send("+39 333 123 4567", "Ciao Giulia")
	require.NoError(t, err)
	assert.Equal(t, "SM123", messageID)

	assert.Equal(t, http.MethodPost, transport.gotMethod)
	assert.Equal(t, "https://api.twilio.com/2010-04-01/Accounts/AC123/Messages.json", transport.gotURL)
	assert.Equal(t, "whatsapp:+14155238886", transport.gotData.Get("From"))
	assert.Equal(t, "whatsapp:393331234567", transport.gotData.Get("To"),
		"recipient must be whatsapp-prefixed bare digits")
	assert.Equal(t, "Ciao Giulia", transport.gotData.Get("Body"))
}

func TestTwilioProviderSendErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "provider error message captured verbatim",
			err:      &twilioclient.TwilioRestError{Status: 401, Code: 20003, Message: "Authenticate"},
			expected: "Authenticate",
		},
		{
			name:     "blank message falls back to status",
			err:      &twilioclient.TwilioRestError{Status: 503},
			expected: "API Error: 503",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := newTestTwilioProvider(&fakeTwilioTransport{err: tt.err})

			_, err := provider.Send("+393331234567", "Ciao")
			require.Error(t, err)
			assert.Equal(t, tt.expected, err.Error())
		})
	}
}
