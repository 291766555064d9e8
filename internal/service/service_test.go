package service

import (
	"errors"
	"sync"
)

// fakeMailer records sent emails so tests can assert on them without a
// network call.
type fakeMailer struct {
	mu          sync.Mutex
	welcomes    []string
	resetLinks  []string
	invitations []string
	fail        bool
}

func (f *fakeMailer) SendWelcomeEmail(to, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("mailer unavailable")
	}
	f.welcomes = append(f.welcomes, to)
	return nil
}

func (f *fakeMailer) SendPasswordResetEmail(to, resetLink string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("mailer unavailable")
	}
	f.resetLinks = append(f.resetLinks, resetLink)
	return nil
}

func (f *fakeMailer) SendInvitationEmail(to, eventName, invitationLink string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("mailer unavailable")
	}
	f.invitations = append(f.invitations, invitationLink)
	return nil
}

func (f *fakeMailer) sentResetLinks() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.resetLinks...)
}

func (f *fakeMailer) sentInvitations() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.invitations...)
}
