// Package notification records (simulated) confirmation emails. Delivery
// is attempted through an EmailSender collaborator; whatever the outcome,
// exactly one EmailLog is stored per attempt, and a failed delivery never
// propagates to the caller that triggered it.
package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sanvicente/frontdesk/internal/platform/apperr"
	"github.com/sanvicente/frontdesk/internal/platform/registry"
)

// Delivery statuses recorded on an EmailLog.
const (
	StatusSent    = "Sent"
	StatusNotSent = "Not sent"
)

// EmailLog is one recorded delivery attempt.
type EmailLog struct {
	ID      uuid.UUID `json:"id"`
	To      string    `json:"to"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	Status  string    `json:"status"`
	SentAt  time.Time `json:"sent_at"`
	Error   string    `json:"error,omitempty"`
}

// EntityID implements registry.Entity.
func (l *EmailLog) EntityID() uuid.UUID { return l.ID }

// EmailSender is the outbound delivery collaborator.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// NopSender accepts every message without delivering anything. Used when
// outbound email is disabled.
type NopSender struct{}

func (NopSender) SendEmail(context.Context, string, string, string) error { return nil }

// ---------------------------------------------------------------------------
// Template Engine
// ---------------------------------------------------------------------------

// TemplateID of the built-in booking confirmation template.
const TemplateAppointmentConfirmation = "appointment-confirmation"

// Template defines a reusable notification template.
type Template struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// TemplateEngine manages notification templates and renders them with data.
type TemplateEngine struct {
	mu        sync.RWMutex
	templates map[string]*Template
}

// NewTemplateEngine creates a TemplateEngine with the built-in templates
// pre-registered.
func NewTemplateEngine() *TemplateEngine {
	e := &TemplateEngine{templates: make(map[string]*Template)}
	e.RegisterTemplate(Template{
		ID:      TemplateAppointmentConfirmation,
		Name:    "Appointment Confirmation",
		Subject: "Medical appointment confirmation - San Vicente Hospital",
		Body: "Hello {{patient_name}},\n\n" +
			"Your appointment has been successfully scheduled.\n\n" +
			"Doctor: {{doctor_name}}\n" +
			"Date: {{date}}\n" +
			"Time: {{start}} - {{end}}\n" +
			"Reason: {{reason}}\n\n" +
			"Thank you for trusting San Vicente Hospital.",
	})
	return e
}

// RegisterTemplate adds or replaces a template in the engine.
func (e *TemplateEngine) RegisterTemplate(t Template) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.templates[t.ID] = &t
}

// Render looks up a template by ID and performs {{key}} replacement using
// the supplied data map. Keys present in the template but absent from
// data are left as-is.
func (e *TemplateEngine) Render(templateID string, data map[string]string) (subject, body string, err error) {
	e.mu.RLock()
	t, ok := e.templates[templateID]
	e.mu.RUnlock()
	if !ok {
		return "", "", fmt.Errorf("template %q not found", templateID)
	}

	subject = t.Subject
	body = t.Body
	for k, v := range data {
		placeholder := "{{" + k + "}}"
		subject = strings.ReplaceAll(subject, placeholder, v)
		body = strings.ReplaceAll(body, placeholder, v)
	}
	return subject, body, nil
}

// ---------------------------------------------------------------------------
// Mock Sender (test double)
// ---------------------------------------------------------------------------

// EmailCall records a single call to SendEmail.
type EmailCall struct {
	To      string
	Subject string
	Body    string
}

// MockEmailSender is a test double for EmailSender.
type MockEmailSender struct {
	mu         sync.Mutex
	calls      []EmailCall
	ShouldFail bool
	FailError  string
}

// SendEmail records the call and optionally returns an error.
func (m *MockEmailSender) SendEmail(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, EmailCall{To: to, Subject: subject, Body: body})
	if m.ShouldFail {
		return errors.New(m.FailError)
	}
	return nil
}

// Calls returns a copy of recorded email calls.
func (m *MockEmailSender) Calls() []EmailCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]EmailCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// ---------------------------------------------------------------------------
// Recorder
// ---------------------------------------------------------------------------

// ConfirmationData carries the fields rendered into a booking
// confirmation email.
type ConfirmationData struct {
	RecipientEmail string
	PatientName    string
	DoctorName     string
	Start          time.Time
	End            time.Time
	Reason         string
}

// Recorder renders confirmation messages, attempts delivery, and owns the
// email log store.
type Recorder struct {
	sender    EmailSender
	templates *TemplateEngine
	logs      *registry.Store[*EmailLog]
}

// NewRecorder constructs a Recorder around the given sender.
func NewRecorder(sender EmailSender, templates *TemplateEngine) *Recorder {
	return &Recorder{
		sender:    sender,
		templates: templates,
		logs:      registry.NewStore[*EmailLog](),
	}
}

// SendAppointmentConfirmation renders the confirmation template, attempts
// delivery, and records the outcome. It always returns the log entry;
// delivery failure is captured in the entry's status and error fields,
// never returned.
func (r *Recorder) SendAppointmentConfirmation(ctx context.Context, data ConfirmationData) *EmailLog {
	subject, body, err := r.templates.Render(TemplateAppointmentConfirmation, map[string]string{
		"patient_name": data.PatientName,
		"doctor_name":  data.DoctorName,
		"date":         data.Start.Format("Monday, 02 Jan 2006"),
		"start":        data.Start.Format("15:04"),
		"end":          data.End.Format("15:04"),
		"reason":       data.Reason,
	})

	log := &EmailLog{
		ID:      uuid.New(),
		To:      data.RecipientEmail,
		Subject: subject,
		Body:    body,
		Status:  StatusNotSent,
		SentAt:  time.Now(),
	}
	if err == nil {
		err = r.sender.SendEmail(ctx, data.RecipientEmail, subject, body)
	}
	if err != nil {
		log.Error = err.Error()
	} else {
		log.Status = StatusSent
	}

	r.logs.Add(log)
	return log
}

// GetLog retrieves a log entry by ID.
func (r *Recorder) GetLog(_ context.Context, id uuid.UUID) (*EmailLog, error) {
	l, ok := r.logs.Get(id)
	if !ok {
		return nil, apperr.NotFound("email log %s not found", id)
	}
	return l, nil
}

// ListLogs returns every recorded delivery attempt in order.
func (r *Recorder) ListLogs(context.Context) []*EmailLog {
	return r.logs.All()
}

// Stats returns counts of log entries grouped by delivery status.
func (r *Recorder) Stats(context.Context) map[string]int {
	stats := make(map[string]int)
	for _, l := range r.logs.All() {
		stats[l.Status]++
	}
	return stats
}
