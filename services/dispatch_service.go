// services/dispatch_service.go
package services

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"salonbook-backend/models"
	"salonbook-backend/utils"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// Used when no template is flagged as default.
const defaultTemplateBody = "Ciao {nome}, ti ricordiamo il tuo appuntamento di domani {data} alle {ora} per {servizio} presso {location}. A presto!"

const defaultPacing = 2 * time.Second

// RunSummary is the aggregate outcome of one dispatch run. Skipped counts
// candidates that already had a sent record; sent + failed + skipped
// always equals the number of candidates selected.
type RunSummary struct {
	Sent    int
	Failed  int
	Skipped int
	Errors  []string
}

// DispatchConfig is the run-level configuration resolved once at startup.
type DispatchConfig struct {
	// Salon address interpolated into {location}.
	Location string
	// Business timezone deciding which calendar day is "tomorrow".
	Timezone *time.Location
	// Fixed delay after every provider attempt.
	Pacing time.Duration
}

// DispatchConfigFromEnv reads SALON_LOCATION, SALON_TIMEZONE and
// REMINDER_PACING_MS. The timezone defaults to Europe/Rome, the salon's
// business timezone.
func DispatchConfigFromEnv() DispatchConfig {
	cfg := DispatchConfig{
		Location: os.Getenv("SALON_LOCATION"),
		Pacing:   defaultPacing,
	}

	tz := os.Getenv("SALON_TIMEZONE")
	if tz == "" {
		tz = "Europe/Rome"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("Invalid SALON_TIMEZONE %q, falling back to Europe/Rome", tz)
		loc, _ = time.LoadLocation("Europe/Rome")
	}
	cfg.Timezone = loc

	if ms := os.Getenv("REMINDER_PACING_MS"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v >= 0 {
			cfg.Pacing = time.Duration(v) * time.Millisecond
		}
	}
	return cfg
}

// DispatchService runs the appointment-reminder pipeline over one tenant's
// store: resolve config, select tomorrow's pending appointments, and for
// each candidate dedup, render, record, send, finalize.
type DispatchService struct {
	store       Store
	newProvider func(*models.ReminderConfig) (Provider, error)
	location    string
	timezone    *time.Location
	pacing      time.Duration
}

func NewDispatchService(store Store, cfg DispatchConfig) *DispatchService {
	if cfg.Timezone == nil {
		cfg.Timezone = time.UTC
	}
	if cfg.Pacing <= 0 {
		cfg.Pacing = defaultPacing
	}
	return &DispatchService{
		store:       store,
		newProvider: NewProvider,
		location:    cfg.Location,
		timezone:    cfg.Timezone,
		pacing:      cfg.Pacing,
	}
}

// Run processes every candidate for the day after now. Only a missing
// configuration or a failing selection query return an error; every
// per-candidate fault is folded into the summary and the loop continues.
func (s *DispatchService) Run(now time.Time) (*RunSummary, error) {
	summary := &RunSummary{Errors: []string{}}

	cfg, err := s.store.ActiveConfig()
	if err != nil {
		return nil, err
	}
	provider, err := s.newProvider(cfg)
	if err != nil {
		return nil, err
	}

	template, err := s.store.DefaultTemplate()
	if errors.Is(err, gorm.ErrRecordNotFound) {
		template = defaultTemplateBody
	} else if err != nil {
		return nil, fmt.Errorf("resolving template: %w", err)
	}

	from := utils.Tomorrow(now, s.timezone)
	to := from.AddDate(0, 0, 1)
	iter, err := s.store.Candidates(from, to)
	if err != nil {
		return nil, fmt.Errorf("selecting candidates: %w", err)
	}
	defer iter.Close()

	log.Printf("Starting reminder run for %s via %s", from.Format("2006-01-02"), cfg.Provider)

	for {
		candidate, ok := iter.Next()
		if !ok {
			break
		}
		s.process(provider, template, candidate, summary)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("selecting candidates: %w", err)
	}

	log.Printf("Reminder run completed: sent=%d failed=%d skipped=%d",
		summary.Sent, summary.Failed, summary.Skipped)
	return summary, nil
}

func (s *DispatchService) process(provider Provider, template string, candidate Candidate, summary *RunSummary) {
	// Dedup check runs fresh per candidate so overlapping runs stay safe.
	already, err := s.store.HasSentRecord(candidate.AppointmentID)
	if err != nil {
		s.fail(summary, candidate, fmt.Errorf("dedup check: %w", err))
		return
	}
	if already {
		summary.Skipped++
		return
	}

	body := utils.RenderTemplate(template, utils.RenderData{
		FirstName: candidate.FirstName,
		LastName:  candidate.LastName,
		Time:      deref(candidate.Time),
		Treatment: deref(candidate.Treatment),
		Location:  s.location,
		Date:      candidate.Date,
	})

	record := &models.DispatchRecord{
		ClientID:      candidate.ClientID,
		AppointmentID: candidate.AppointmentID,
		Phone:         candidate.Phone,
		Body:          body,
		Status:        models.DispatchPending,
	}
	if err := s.store.CreatePending(record); err != nil {
		s.fail(summary, candidate, fmt.Errorf("recording attempt: %w", err))
		return
	}

	// A provider attempt happens from here on; pace before moving to the
	// next candidate regardless of outcome.
	defer time.Sleep(s.pacing)

	messageID, sendErr := provider.Send(candidate.Phone, body)
	if sendErr != nil {
		record.Status = models.DispatchFailed
		record.ErrorMessage = sendErr.Error()
		if err := s.store.Finalize(record); err != nil {
			log.Printf("Failed to finalize record %s: %v", record.ID, err)
		}
		s.fail(summary, candidate, sendErr)
		return
	}

	sentAt := time.Now()
	record.Status = models.DispatchSent
	record.SentAt = &sentAt
	record.ProviderMessageID = messageID
	if err := s.store.Finalize(record); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// An overlapping run won the sent slot; benign.
			summary.Skipped++
			record.Status = models.DispatchFailed
			record.SentAt = nil
			record.ProviderMessageID = ""
			record.ErrorMessage = "appointment already has a sent reminder"
			if err := s.store.Finalize(record); err != nil {
				log.Printf("Failed to finalize record %s: %v", record.ID, err)
			}
			return
		}
		s.fail(summary, candidate, fmt.Errorf("finalizing record: %w", err))
		return
	}

	summary.Sent++
	log.Printf("Reminder sent to %s %s (message id %s)",
		candidate.FirstName, candidate.LastName, messageID)
}

func (s *DispatchService) fail(summary *RunSummary, candidate Candidate, err error) {
	summary.Failed++
	summary.Errors = append(summary.Errors,
		fmt.Sprintf("%s %s: %v", candidate.FirstName, candidate.LastName, err))
	log.Printf("Failed to send reminder to %s %s: %v",
		candidate.FirstName, candidate.LastName, err)
}

// StartScheduler runs the pipeline every day at 9 AM salon time.
func (s *DispatchService) StartScheduler() *cron.Cron {
	c := cron.New(cron.WithLocation(s.timezone))

	c.AddFunc("0 9 * * *", func() {
		if _, err := s.Run(time.Now()); err != nil {
			log.Printf("Scheduled reminder run failed: %v", err)
		}
	})

	c.Start()
	log.Println("Reminder scheduler started")
	return c
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
