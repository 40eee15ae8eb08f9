package service

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/ada-support/helpdesk/internal/domain"
	"github.com/ada-support/helpdesk/internal/events"
	"github.com/ada-support/helpdesk/internal/repository"
	"github.com/ada-support/helpdesk/internal/storage"
	apperrors "github.com/ada-support/helpdesk/pkg/util"
)

// ImageInput describes an uploaded ticket image.
type ImageInput struct {
	FileName    string
	Content     io.Reader
	Size        int64
	ContentType string
}

// TicketCreateInput carries the creation payload.
type TicketCreateInput struct {
	DeskNo      string
	Issue       string
	Description string
	Image       *ImageInput
}

// TicketUpdateInput carries the admin-only update. The three mutable text
// fields are a full-replace contract, not a partial patch.
type TicketUpdateInput struct {
	Issue       string
	Description string
	Status      domain.TicketStatus
	Note        string
}

// TicketListFilter mirrors the query grammar of the list and report
// endpoints. The date range applies only when both ends are present.
type TicketListFilter struct {
	EmpID     *int64
	Status    *domain.TicketStatus
	StartDate *time.Time
	EndDate   *time.Time
}

// Pagination holds normalized page/limit values.
type Pagination struct {
	Page  int
	Limit int
}

// PageInfo is the pagination payload returned alongside a page of results.
type PageInfo struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalCount int64 `json:"totalCount"`
	TotalPages int64 `json:"totalPages"`
}

// TicketService orchestrates the ticket lifecycle: creation with snapshot
// submitter fields, role-gated listing, status updates and deletion.
type TicketService struct {
	tickets    repository.TicketRepository
	uploader   storage.Uploader
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// TicketDependencies encapsulates requirements for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	Uploader   storage.Uploader
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewTicketService builds the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		uploader:   deps.Uploader,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// CreateTicket validates input, uploads the optional image first (the ticket
// is never created without its image if one was supplied), snapshots the
// submitter fields from the acting user and persists with status Open.
func (s *TicketService) CreateTicket(ctx context.Context, actor *domain.User, input TicketCreateInput) (*domain.Ticket, error) {
	if input.DeskNo == "" || input.Issue == "" || input.Description == "" {
		return nil, apperrors.NewValidationError("Please fill in all fields")
	}

	imageURL := ""
	if input.Image != nil {
		if s.uploader == nil {
			return nil, apperrors.NewUpstreamFailure("Failed to upload image", errors.New("image storage not configured"))
		}
		url, err := s.uploader.UploadImage(ctx, input.Image.FileName, input.Image.Content, input.Image.Size, input.Image.ContentType)
		if err != nil {
			return nil, apperrors.NewUpstreamFailure("Failed to upload image", err)
		}
		imageURL = url
	}

	ticket := &domain.Ticket{
		Name:        actor.FullName(),
		Email:       actor.Email,
		Process:     actor.Process,
		DeskNo:      input.DeskNo,
		Issue:       input.Issue,
		Description: input.Description,
		Status:      domain.TicketStatusOpen,
		ImageURL:    imageURL,
		EmpID:       actor.EmpID,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.NewUpstreamFailure("Internal server error", err)
	}

	s.publishEvent(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventTicketCreated,
		TicketID:  ticket.ID,
		EmpID:     ticket.EmpID,
		Timestamp: time.Now(),
		Payload: events.TicketCreatedPayload{
			Issue:         ticket.Issue,
			Process:       ticket.Process,
			SubmitterName: ticket.Name,
		},
	})

	return ticket, nil
}

// ListTickets returns the filtered, paginated admin view. An empty filtered
// result set is reported as a not-found condition.
func (s *TicketService) ListTickets(ctx context.Context, filter TicketListFilter, page Pagination) ([]domain.Ticket, *PageInfo, error) {
	tickets, info, err := s.listPage(ctx, filter, page)
	if err != nil {
		return nil, nil, err
	}
	if len(tickets) == 0 {
		return nil, nil, apperrors.NewNotFound("You have not raised any tickets yet.")
	}
	return tickets, info, nil
}

// ListMyTickets returns the acting user's own tickets, paginated.
func (s *TicketService) ListMyTickets(ctx context.Context, actor *domain.User, page Pagination) ([]domain.Ticket, *PageInfo, error) {
	empID := actor.EmpID
	tickets, info, err := s.listPage(ctx, TicketListFilter{EmpID: &empID}, page)
	if err != nil {
		return nil, nil, err
	}
	if len(tickets) == 0 {
		return nil, nil, apperrors.NewNotFound("You Dont Have Tickets")
	}
	return tickets, info, nil
}

func (s *TicketService) listPage(ctx context.Context, filter TicketListFilter, page Pagination) ([]domain.Ticket, *PageInfo, error) {
	page = normalizePagination(page)

	repoFilter := repositoryFilter(filter)
	repoFilter.Limit = page.Limit
	repoFilter.Offset = (page.Page - 1) * page.Limit

	tickets, err := s.tickets.ListWithFilter(ctx, repoFilter)
	if err != nil {
		return nil, nil, apperrors.NewUpstreamFailure("Internal server error", err)
	}

	count, err := s.tickets.CountWithFilter(ctx, repoFilter)
	if err != nil {
		return nil, nil, apperrors.NewUpstreamFailure("Internal server error", err)
	}

	info := &PageInfo{
		Page:       page.Page,
		Limit:      page.Limit,
		TotalCount: count,
		TotalPages: (count + int64(page.Limit) - 1) / int64(page.Limit),
	}
	return tickets, info, nil
}

// GetTicketByID fetches a single ticket. Any authenticated caller may fetch
// any ticket; no ownership check is applied here.
func (s *TicketService) GetTicketByID(ctx context.Context, id string) (*domain.Ticket, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NewInvalidID("Invalid ticket ID format")
	}

	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Ticket not found")
		}
		return nil, apperrors.NewUpstreamFailure("Internal server error", err)
	}
	return ticket, nil
}

// UpdateTicket replaces the mutable field set. Issue, description and status
// must all be present even when the caller intends to change only one.
func (s *TicketService) UpdateTicket(ctx context.Context, id string, input TicketUpdateInput) (*domain.Ticket, error) {
	if input.Issue == "" || input.Description == "" || input.Status == "" {
		return nil, apperrors.NewValidationError("All ticket fields are required")
	}
	if !input.Status.Valid() {
		return nil, apperrors.NewValidationError("Validation error")
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NewInvalidID("Invalid ticket ID format")
	}

	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Ticket not found")
		}
		return nil, apperrors.NewUpstreamFailure("Internal server error", err)
	}

	oldStatus := ticket.Status
	ticket.Issue = input.Issue
	ticket.Description = input.Description
	ticket.Status = input.Status
	ticket.Note = input.Note

	if err := s.tickets.Update(ctx, ticket); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Ticket not found")
		}
		return nil, apperrors.NewUpstreamFailure("Internal server error", err)
	}

	if oldStatus != ticket.Status {
		s.publishEvent(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventTicketStatusChanged,
			TicketID:  ticket.ID,
			EmpID:     ticket.EmpID,
			Timestamp: time.Now(),
			Payload: events.TicketStatusChangedPayload{
				OldStatus: oldStatus,
				NewStatus: ticket.Status,
			},
		})
	}

	return ticket, nil
}

// DeleteTicket removes a ticket; deletion and existence check are combined
// through the deleted-row count.
func (s *TicketService) DeleteTicket(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.NewInvalidID("Invalid ticket ID format")
	}

	deleted, err := s.tickets.Delete(ctx, id)
	if err != nil {
		return apperrors.NewUpstreamFailure("Internal server error", err)
	}
	if deleted == 0 {
		return apperrors.NewNotFound("Ticket not found")
	}

	s.publishEvent(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventTicketDeleted,
		TicketID:  id,
		Timestamp: time.Now(),
	})
	return nil
}

// ReportTickets fetches the full filtered set for export, unpaginated. An
// empty set still yields a report with only the header row.
func (s *TicketService) ReportTickets(ctx context.Context, filter TicketListFilter) ([]domain.Ticket, error) {
	tickets, err := s.tickets.ListWithFilter(ctx, repositoryFilter(filter))
	if err != nil {
		return nil, apperrors.NewUpstreamFailure("Internal server error", err)
	}
	return tickets, nil
}

func repositoryFilter(filter TicketListFilter) repository.TicketFilter {
	repoFilter := repository.TicketFilter{
		EmpID:  filter.EmpID,
		Status: filter.Status,
	}
	// the range applies only when both ends are present
	if filter.StartDate != nil && filter.EndDate != nil {
		repoFilter.CreatedFrom = filter.StartDate
		repoFilter.CreatedTo = filter.EndDate
	}
	return repoFilter
}

func normalizePagination(page Pagination) Pagination {
	if page.Page <= 0 {
		page.Page = 1
	}
	if page.Limit <= 0 {
		page.Limit = 10
	}
	return page
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event publish failed", zap.String("type", string(event.Type)), zap.Error(err))
	}
}
