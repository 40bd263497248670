package mocks

import "github.com/you/phoneauthsvc/domain"

// MockNotificationService implements domain.NotificationService interface for testing
type MockNotificationService struct {
	SendFunc func(to, code string) error

	// Sent records every delivery attempt when SendFunc is unset.
	Sent []struct{ To, Code string }
}

// NewMockNotificationService creates a new MockNotificationService with default behaviors
func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

// Send delivers a code
func (m *MockNotificationService) Send(to, code string) error {
	if m.SendFunc != nil {
		return m.SendFunc(to, code)
	}
	m.Sent = append(m.Sent, struct{ To, Code string }{to, code})
	return nil
}

// Compile-time interface compliance verification
var _ domain.NotificationService = (*MockNotificationService)(nil)
