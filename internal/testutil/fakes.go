package testutil

import (
	"context"
	"fmt"
	"sync"

	"childrenlk/internal/mailer"
	"childrenlk/internal/storage"
)

// MediaHostStub records uploads in memory.
type MediaHostStub struct {
	mu      sync.Mutex
	Files   []storage.File
	Err     error
	counter int
}

func (m *MediaHostStub) Provider() string { return "stub" }

// Upload stores f and returns a predictable URL, or Err when set.
func (m *MediaHostStub) Upload(_ context.Context, f storage.File) (*storage.Uploaded, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if len(f.Data) == 0 {
		return nil, storage.ErrEmptyFile
	}
	m.counter++
	m.Files = append(m.Files, f)
	id := fmt.Sprintf("%s/file-%d", f.Folder, m.counter)
	return &storage.Uploaded{URL: "https://media.example.com/" + id, PublicID: id}, nil
}

// MailerStub captures sent messages.
type MailerStub struct {
	mu   sync.Mutex
	Sent []mailer.Message
	Err  error
}

func (m *MailerStub) Send(_ context.Context, msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, msg)
	return nil
}

// Last returns the most recent message and whether there was one.
func (m *MailerStub) Last() (mailer.Message, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return mailer.Message{}, false
	}
	return m.Sent[len(m.Sent)-1], true
}
