package services

import (
	"database/sql"
	"errors"
	"time"

	"salonbook-backend/config"
	"salonbook-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrConfigMissing means no single active ReminderConfig exists. It is the
// one error that aborts a run before any candidate is touched.
var ErrConfigMissing = errors.New("no active reminder configuration")

// Candidate is one appointment+client pair eligible for a reminder.
type Candidate struct {
	AppointmentID uuid.UUID
	ClientID      uuid.UUID
	Date          time.Time
	Time          *string
	Treatment     *string
	FirstName     string
	LastName      string
	Phone         string
}

// CandidateIter walks the selection result row by row. It is consumed
// once; after Next returns false, check Err.
type CandidateIter interface {
	Next() (Candidate, bool)
	Err() error
	Close() error
}

// Store is everything the dispatch pipeline needs from persistence.
type Store interface {
	ActiveConfig() (*models.ReminderConfig, error)
	// DefaultTemplate returns gorm.ErrRecordNotFound when no template is
	// flagged default; the caller falls back to the built-in body.
	DefaultTemplate() (string, error)
	Candidates(from, to time.Time) (CandidateIter, error)
	HasSentRecord(appointmentID uuid.UUID) (bool, error)
	CreatePending(rec *models.DispatchRecord) error
	Finalize(rec *models.DispatchRecord) error
}

type gormStore struct {
	db     *gorm.DB
	tenant config.Tenant
}

func NewStore(db *gorm.DB, tenant config.Tenant) Store {
	return &gormStore{db: db, tenant: tenant}
}

func (s *gormStore) table(name string) string {
	return s.tenant.Table(name)
}

func (s *gormStore) ActiveConfig() (*models.ReminderConfig, error) {
	var configs []models.ReminderConfig
	err := s.db.Table(s.table("reminder_configs")).
		Where("is_active = ? AND deleted_at IS NULL", true).
		Limit(2).
		Find(&configs).Error
	if err != nil {
		return nil, err
	}
	// Zero actives and multiple actives are both configuration errors.
	if len(configs) != 1 {
		return nil, ErrConfigMissing
	}
	return &configs[0], nil
}

func (s *gormStore) DefaultTemplate() (string, error) {
	var template models.MessageTemplate
	err := s.db.Table(s.table("message_templates")).
		Where("is_default = ? AND deleted_at IS NULL", true).
		First(&template).Error
	if err != nil {
		return "", err
	}
	return template.Body, nil
}

func (s *gormStore) Candidates(from, to time.Time) (CandidateIter, error) {
	appointments := s.table("appointments")
	clients := s.table("clients")

	rows, err := s.db.Table(appointments).
		Select(appointments + ".id AS appointment_id, " +
			appointments + ".client_id, " +
			appointments + ".date, " +
			appointments + ".time, " +
			appointments + ".treatment, " +
			clients + ".first_name, " +
			clients + ".last_name, " +
			clients + ".phone").
		Joins("JOIN " + clients + " ON " + clients + ".id = " + appointments + ".client_id").
		Where(appointments+".date >= ? AND "+appointments+".date < ?", from, to).
		Where(appointments+".status = ?", models.AppointmentPending).
		Where(clients + ".phone IS NOT NULL AND " + clients + ".phone <> ''").
		Where(appointments + ".deleted_at IS NULL AND " + clients + ".deleted_at IS NULL").
		Order(appointments + ".date, " + appointments + ".time").
		Rows()
	if err != nil {
		return nil, err
	}
	return &gormCandidateIter{db: s.db, rows: rows}, nil
}

type gormCandidateIter struct {
	db   *gorm.DB
	rows *sql.Rows
	err  error
}

func (it *gormCandidateIter) Next() (Candidate, bool) {
	if it.err != nil || !it.rows.Next() {
		return Candidate{}, false
	}
	var c Candidate
	if err := it.db.ScanRows(it.rows, &c); err != nil {
		it.err = err
		return Candidate{}, false
	}
	return c, true
}

func (it *gormCandidateIter) Err() error {
	if it.err != nil {
		return it.err
	}
	return it.rows.Err()
}

func (it *gormCandidateIter) Close() error {
	return it.rows.Close()
}

func (s *gormStore) HasSentRecord(appointmentID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.Table(s.table("dispatch_records")).
		Where("appointment_id = ? AND status = ? AND deleted_at IS NULL", appointmentID, models.DispatchSent).
		Count(&count).Error
	return count > 0, err
}

func (s *gormStore) CreatePending(rec *models.DispatchRecord) error {
	rec.Status = models.DispatchPending
	return s.db.Table(s.table("dispatch_records")).Create(rec).Error
}

// Finalize writes the record's terminal state. A gorm.ErrDuplicatedKey
// here means another run already holds the sent slot for this appointment.
func (s *gormStore) Finalize(rec *models.DispatchRecord) error {
	return s.db.Table(s.table("dispatch_records")).
		Where("id = ?", rec.ID).
		Updates(map[string]interface{}{
			"status":              rec.Status,
			"error_message":       rec.ErrorMessage,
			"provider_message_id": rec.ProviderMessageID,
			"sent_at":             rec.SentAt,
			"updated_at":          time.Now(),
		}).Error
}
