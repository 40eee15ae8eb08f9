package handlers

import (
	"bytes"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ada-support/helpdesk/internal/api/dto"
	"github.com/ada-support/helpdesk/internal/auth"
	"github.com/ada-support/helpdesk/internal/domain"
	"github.com/ada-support/helpdesk/internal/report"
	"github.com/ada-support/helpdesk/internal/service"
	apperrors "github.com/ada-support/helpdesk/pkg/util"
)

// TicketsHandler manages ticket lifecycle endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// CreateTicket handles POST /api/ticket/create-ticket (multipart, optional
// single image field).
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("Unauthorized access")
	}

	input := service.TicketCreateInput{
		DeskNo:      c.FormValue("deskNo"),
		Issue:       c.FormValue("issue"),
		Description: c.FormValue("description"),
	}

	if fileHeader, err := c.FormFile("image"); err == nil && fileHeader != nil {
		file, err := fileHeader.Open()
		if err != nil {
			return apperrors.NewUpstreamFailure("Failed to upload image", err)
		}
		defer file.Close()

		input.Image = &service.ImageInput{
			FileName:    fileHeader.Filename,
			Content:     file,
			Size:        fileHeader.Size,
			ContentType: fileHeader.Header.Get("Content-Type"),
		}
	}

	ticket, err := h.service.CreateTicket(c.Context(), actor, input)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Ticket created successfully",
		"ticket":  dto.NewTicketResponse(ticket),
	})
}

// GetAllTickets handles GET /api/ticket/get-all-tickets (admin only).
func (h *TicketsHandler) GetAllTickets(c *fiber.Ctx) error {
	filter, err := parseTicketFilter(c)
	if err != nil {
		return err
	}

	tickets, info, err := h.service.ListTickets(c.Context(), filter, parsePagination(c))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"message":    "Tickets fetched successfully",
		"tickets":    dto.NewTicketResponses(tickets),
		"pagination": info,
	})
}

// GetMyTickets handles GET /api/user/getMyTickets.
func (h *TicketsHandler) GetMyTickets(c *fiber.Ctx) error {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("Unauthorized access")
	}

	tickets, info, err := h.service.ListMyTickets(c.Context(), actor, parsePagination(c))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"message":    "My tickets fetched successfully",
		"data":       dto.NewTicketResponses(tickets),
		"pagination": info,
	})
}

// GetTicketByID handles GET /api/ticket/get-ticket-by-id/:id.
func (h *TicketsHandler) GetTicketByID(c *fiber.Ctx) error {
	ticket, err := h.service.GetTicketByID(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Ticket found",
		"ticket":  dto.NewTicketResponse(ticket),
	})
}

// UpdateTicket handles PATCH /api/ticket/update-ticket/:id (admin only).
func (h *TicketsHandler) UpdateTicket(c *fiber.Ctx) error {
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("All ticket fields are required")
	}

	ticket, err := h.service.UpdateTicket(c.Context(), c.Params("id"), service.TicketUpdateInput{
		Issue:       req.Ticket.Issue,
		Description: req.Ticket.Description,
		Status:      domain.TicketStatus(req.Ticket.Status),
		Note:        req.Ticket.Note,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"message":       "Ticket updated successfully",
		"updatedTicket": dto.NewTicketResponse(ticket),
	})
}

// DeleteTicket handles DELETE /api/ticket/delete-ticket/:id (admin only).
func (h *TicketsHandler) DeleteTicket(c *fiber.Ctx) error {
	if err := h.service.DeleteTicket(c.Context(), c.Params("id")); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Ticket deleted successfully",
	})
}

// DownloadReport handles GET /api/ticket/download-report (admin only). The
// CSV is built in memory and streamed as an attachment.
func (h *TicketsHandler) DownloadReport(c *fiber.Ctx) error {
	filter, err := parseTicketFilter(c)
	if err != nil {
		return err
	}

	tickets, err := h.service.ReportTickets(c.Context(), filter)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := report.WriteTickets(&buf, tickets, time.Local); err != nil {
		return apperrors.NewUpstreamFailure("Error generating report", err)
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+report.FileName+`"`)
	return c.Send(buf.Bytes())
}

func parseTicketFilter(c *fiber.Ctx) (service.TicketListFilter, error) {
	filter := service.TicketListFilter{}

	if empStr := c.Query("empID"); empStr != "" {
		empID, err := strconv.ParseInt(empStr, 10, 64)
		if err != nil {
			return filter, apperrors.NewValidationError("Invalid ID")
		}
		filter.EmpID = &empID
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status := domain.TicketStatus(statusStr)
		filter.Status = &status
	}
	if from := parseDate(c.Query("startDate")); from != nil {
		filter.StartDate = from
	}
	if to := parseDate(c.Query("endDate")); to != nil {
		filter.EndDate = to
	}
	return filter, nil
}

func parsePagination(c *fiber.Ctx) service.Pagination {
	return service.Pagination{
		Page:  parseInt(c.Query("page"), 1),
		Limit: parseInt(c.Query("limit"), 10),
	}
}

func parseDate(val string) *time.Time {
	if val == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, val); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", val); err == nil {
		return &t
	}
	return nil
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}
