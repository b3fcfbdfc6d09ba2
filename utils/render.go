// utils/render.go
package utils

import (
	"strings"
	"time"
)

const (
	// Shown in place of {ora} when the appointment has no time yet.
	TimeToBeConfirmed = "orario da confermare"
	// Shown in place of {servizio} when no treatment was booked.
	GenericTreatment = "trattamento"
)

// RenderData carries everything a reminder template can reference.
type RenderData struct {
	FirstName string
	LastName  string
	Time      string // "HH:MM", empty = to be confirmed
	Treatment string // empty = generic label
	Location  string
	Date      time.Time
}

// RenderTemplate substitutes the recognized placeholders. Every occurrence
// of a token is replaced; tokens it does not know pass through unchanged.
// It never fails.
func RenderTemplate(body string, data RenderData) string {
	ora := data.Time
	if ora == "" {
		ora = TimeToBeConfirmed
	}
	servizio := data.Treatment
	if servizio == "" {
		servizio = GenericTreatment
	}

	body = strings.ReplaceAll(body, "{nome}", data.FirstName)
	body = strings.ReplaceAll(body, "{cognome}", data.LastName)
	body = strings.ReplaceAll(body, "{ora}", ora)
	body = strings.ReplaceAll(body, "{servizio}", servizio)
	body = strings.ReplaceAll(body, "{location}", data.Location)
	body = strings.ReplaceAll(body, "{data}", data.Date.Format("02/01/2006"))
	return body
}
