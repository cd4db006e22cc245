package mail

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/xavierca1/recruit-pipeline/internal/entity"
	"github.com/xavierca1/recruit-pipeline/internal/infra/queue"
)

// Outbox receives rendered MIME messages. Nothing here speaks SMTP.
type Outbox interface {
	Open(name string) (io.WriteCloser, error)
}

// DirOutbox writes one .eml file per message.
type DirOutbox struct {
	Dir string
}

func (o DirOutbox) Open(name string) (io.WriteCloser, error) {
	if err := os.MkdirAll(o.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create outbox dir: %w", err)
	}
	return os.Create(filepath.Join(o.Dir, name))
}

// WriterOutbox appends every message to a single writer.
type WriterOutbox struct {
	mu sync.Mutex
	W  io.Writer
}

func (o *WriterOutbox) Open(string) (io.WriteCloser, error) {
	o.mu.Lock()
	return lockedWriter{o}, nil
}

type lockedWriter struct{ o *WriterOutbox }

func (w lockedWriter) Write(p []byte) (int, error) { return w.o.W.Write(p) }

func (w lockedWriter) Close() error {
	w.o.mu.Unlock()
	return nil
}

type OutboxSender struct {
	From   string
	Outbox Outbox
	Ledger *Ledger
	Now    func() time.Time
}

func NewOutboxSender(from string, outbox Outbox, ledger *Ledger) *OutboxSender {
	return &OutboxSender{
		From:   from,
		Outbox: outbox,
		Ledger: ledger,
		Now:    time.Now,
	}
}

// Deliver renders the payload's template and hands the message to the outbox.
// Candidates without an address are skipped, not failed.
func (s *OutboxSender) Deliver(ctx context.Context, p queue.NotificationPayload) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.Email == "" {
		log.Printf("[MAIL] candidate %s has no email, skipping %s", p.CandidateID, p.Template)
		return nil
	}

	m, err := s.compose(p)
	if err != nil {
		return err
	}

	w, err := s.Outbox.Open(fmt.Sprintf("%s-%s.eml", p.Template, p.ID))
	if err != nil {
		return fmt.Errorf("failed to open outbox: %w", err)
	}
	if _, err := m.WriteTo(w); err != nil {
		w.Close()
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close outbox entry: %w", err)
	}

	s.Ledger.Record(entity.AutomationEvent{
		CandidateID: p.CandidateID,
		Template:    p.Template,
		At:          s.Now(),
	})
	return nil
}

func (s *OutboxSender) compose(p queue.NotificationPayload) (*gomail.Message, error) {
	tmpl, ok := templates[p.Template]
	if !ok {
		return nil, fmt.Errorf("%w: %q", entity.ErrInvalidTemplate, p.Template)
	}

	data := NotificationData{
		Name:          p.CandidateName,
		Position:      p.Position,
		Stage:         string(p.Stage),
		InterviewType: p.InterviewType,
	}
	if p.InterviewDate != nil {
		data.InterviewDate = p.InterviewDate.Format("Mon, 02 Jan 2006 15:04 MST")
	}

	var subject, body bytes.Buffer
	if err := tmpl.subject.Execute(&subject, data); err != nil {
		return nil, fmt.Errorf("failed to render subject: %w", err)
	}
	if err := tmpl.body.Execute(&body, data); err != nil {
		return nil, fmt.Errorf("failed to render body: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetAddressHeader("To", p.Email, p.CandidateName)
	m.SetHeader("Subject", subject.String())
	m.SetHeader("X-Candidate-Id", p.CandidateID)
	m.SetDateHeader("Date", p.QueuedAt)
	m.SetBody("text/plain", body.String())
	return m, nil
}
