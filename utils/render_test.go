package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRenderTemplate(t *testing.T) {
	date := time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		body     string
		data     RenderData
		expected string
	}{
		{
			name: "all tokens present",
			body: "Ciao {nome} {cognome}, domani {data} alle {ora}: {servizio} presso {location}",
			data: RenderData{
				FirstName: "Giulia",
				LastName:  "Rossi",
				Time:      "16:00",
				Treatment: "Manicure",
				Location:  "Via Roma 1",
				Date:      date,
			},
			expected: "Ciao Giulia Rossi, domani 14/03/2026 alle 16:00: Manicure presso Via Roma 1",
		},
		{
			name: "missing time falls back",
			body: "Appuntamento alle {ora}",
			data: RenderData{
				FirstName: "Giulia",
			},
			expected: "Appuntamento alle orario da confermare",
		},
		{
			name: "missing treatment falls back",
			body: "Per {servizio}",
			data: RenderData{
				Treatment: "",
			},
			expected: "Per trattamento",
		},
		{
			name: "repeated tokens all replaced",
			body: "{nome} {nome} {nome}",
			data: RenderData{
				FirstName: "Giulia",
			},
			expected: "Giulia Giulia Giulia",
		},
		{
			name: "unknown tokens pass through",
			body: "Ciao {nome}, {sconto} per te",
			data: RenderData{
				FirstName: "Giulia",
			},
			expected: "Ciao Giulia, {sconto} per te",
		},
		{
			name:     "empty template",
			body:     "",
			data:     RenderData{FirstName: "Giulia"},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RenderTemplate(tt.body, tt.data))
		})
	}
}

func TestRenderTemplateNoRecognizedTokenSurvives(t *testing.T) {
	body := "{nome}{cognome}{ora}{servizio}{location}{data}"
	rendered := RenderTemplate(body, RenderData{
		FirstName: "Giulia",
		LastName:  "Rossi",
		Location:  "Via Roma 1",
		Date:      time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC),
	})

	for _, token := range []string{"{nome}", "{cognome}", "{ora}", "{servizio}", "{location}", "{data}"} {
		assert.False(t, strings.Contains(rendered, token), "token %s survived rendering", token)
	}
}
