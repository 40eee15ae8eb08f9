package service

import (
	"context"
	"io"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ada-support/helpdesk/internal/domain"
	"github.com/ada-support/helpdesk/internal/events"
	"github.com/ada-support/helpdesk/internal/repository"
)

type mockUserRepo struct {
	createFn     func(ctx context.Context, user *domain.User) error
	updateFn     func(ctx context.Context, user *domain.User) error
	deleteFn     func(ctx context.Context, id string) (int64, error)
	getByIDFn    func(ctx context.Context, id string) (*domain.User, error)
	getByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	getByEmpIDFn func(ctx context.Context, empID int64) (*domain.User, error)
	listAllFn    func(ctx context.Context) ([]domain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) Update(ctx context.Context, user *domain.User) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) (int64, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return 1, nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockUserRepo) GetByEmpID(ctx context.Context, empID int64) (*domain.User, error) {
	if m.getByEmpIDFn != nil {
		return m.getByEmpIDFn(ctx, empID)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockUserRepo) ListAll(ctx context.Context) ([]domain.User, error) {
	if m.listAllFn != nil {
		return m.listAllFn(ctx)
	}
	return nil, nil
}

type mockTicketRepo struct {
	createFn         func(ctx context.Context, ticket *domain.Ticket) error
	updateFn         func(ctx context.Context, ticket *domain.Ticket) error
	deleteFn         func(ctx context.Context, id string) (int64, error)
	getByIDFn        func(ctx context.Context, id string) (*domain.Ticket, error)
	listWithFilterFn func(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error)
	countFn          func(ctx context.Context, filter repository.TicketFilter) (int64, error)
}

func (m *mockTicketRepo) Create(ctx context.Context, ticket *domain.Ticket) error {
	if m.createFn != nil {
		return m.createFn(ctx, ticket)
	}
	return nil
}

func (m *mockTicketRepo) Update(ctx context.Context, ticket *domain.Ticket) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, ticket)
	}
	return nil
}

func (m *mockTicketRepo) Delete(ctx context.Context, id string) (int64, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return 1, nil
}

func (m *mockTicketRepo) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockTicketRepo) ListWithFilter(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	if m.listWithFilterFn != nil {
		return m.listWithFilterFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockTicketRepo) CountWithFilter(ctx context.Context, filter repository.TicketFilter) (int64, error) {
	if m.countFn != nil {
		return m.countFn(ctx, filter)
	}
	return 0, nil
}

// mockOTPRepo keeps passcodes in a map, ignoring TTL.
type mockOTPRepo struct {
	codes  map[string]string
	saveFn func(ctx context.Context, email, code string, ttl time.Duration) error
}

func newMockOTPRepo() *mockOTPRepo {
	return &mockOTPRepo{codes: make(map[string]string)}
}

func (m *mockOTPRepo) Save(ctx context.Context, email, code string, ttl time.Duration) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, email, code, ttl)
	}
	m.codes[email] = code
	return nil
}

func (m *mockOTPRepo) Get(ctx context.Context, email string) (string, error) {
	code, ok := m.codes[email]
	if !ok {
		return "", repository.ErrOTPNotFound
	}
	return code, nil
}

func (m *mockOTPRepo) Delete(ctx context.Context, email string) error {
	delete(m.codes, email)
	return nil
}

type mockMailer struct {
	sendFn func(to, subject, htmlBody string) error
	sent   []string
}

func (m *mockMailer) Send(to, subject, htmlBody string) error {
	if m.sendFn != nil {
		return m.sendFn(to, subject, htmlBody)
	}
	m.sent = append(m.sent, to)
	return nil
}

type mockUploader struct {
	uploadFn func(ctx context.Context, fileName string, content io.Reader, size int64, contentType string) (string, error)
}

func (m *mockUploader) UploadImage(ctx context.Context, fileName string, content io.Reader, size int64, contentType string) (string, error) {
	if m.uploadFn != nil {
		return m.uploadFn(ctx, fileName, content, size, contentType)
	}
	return "http://storage.local/tickets/" + fileName, nil
}

type mockDispatcher struct {
	published []events.Event
}

func (m *mockDispatcher) Publish(ctx context.Context, event events.Event) error {
	m.published = append(m.published, event)
	return nil
}

func (m *mockDispatcher) Subscribe(eventType events.EventType, handler events.EventHandler) {}
