package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/scholarhub/scholarhub-backend/internal/dto"
	"github.com/scholarhub/scholarhub-backend/internal/middleware"
	"github.com/scholarhub/scholarhub-backend/internal/models"
	"github.com/scholarhub/scholarhub-backend/internal/services"
)

type ApplicationHandler struct {
	service     *services.ApplicationService
	userService *services.UserService
}

func NewApplicationHandler(service *services.ApplicationService, userService *services.UserService) *ApplicationHandler {
	return &ApplicationHandler{service: service, userService: userService}
}

func (h *ApplicationHandler) Submit(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.SubmitApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	applicant, err := h.userService.GetByID(userID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	app, err := h.service.Submit(c.Context(), applicant, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrScholarshipNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Scholarship not found",
			})
		case errors.Is(err, services.ErrPaymentIncomplete),
			errors.Is(err, services.ErrPaymentMismatch):
			return c.Status(fiber.StatusPaymentRequired).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrPaymentAlreadyUsed):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		default:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(app)
}

func (h *ApplicationHandler) ListAll(c *fiber.Ctx) error {
	list, err := h.service.ListAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch applications",
		})
	}
	return c.JSON(list)
}

// ListByUser serves an owner's applications. Moderators and admins may read
// any user's list; others only their own.
func (h *ApplicationHandler) ListByUser(c *fiber.Ctx) error {
	callerID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	targetID, err := uuid.Parse(c.Params("uid"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid user id",
		})
	}

	if targetID != callerID && !h.callerIsStaff(c, callerID) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Not permitted to view these applications",
		})
	}

	list, err := h.service.ListByUser(targetID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch applications",
		})
	}
	return c.JSON(list)
}

func (h *ApplicationHandler) Update(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid application id",
		})
	}

	var req dto.UpdateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	app, err := h.service.UpdateByOwner(c.Context(), id, userID, &req)
	if err != nil {
		return h.applicationError(c, err)
	}
	return c.JSON(app)
}

func (h *ApplicationHandler) Cancel(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid application id",
		})
	}

	app, err := h.service.Cancel(c.Context(), id, userID)
	if err != nil {
		return h.applicationError(c, err)
	}
	return c.JSON(app)
}

func (h *ApplicationHandler) ChangeStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid application id",
		})
	}

	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	app, err := h.service.ChangeStatus(c.Context(), id, models.ApplicationStatus(req.Status))
	if err != nil {
		return h.applicationError(c, err)
	}
	return c.JSON(app)
}

func (h *ApplicationHandler) Feedback(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid application id",
		})
	}

	var req dto.FeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	app, err := h.service.SendFeedback(c.Context(), id, req.Feedback)
	if err != nil {
		return h.applicationError(c, err)
	}
	return c.JSON(app)
}

func (h *ApplicationHandler) callerIsStaff(c *fiber.Ctx, callerID uuid.UUID) bool {
	role := middleware.GetUserRole(c)
	if role == "" {
		if user, err := h.userService.GetByID(callerID); err == nil {
			role = user.EffectiveRole()
		}
	}
	return role == models.RoleModerator || role == models.RoleAdmin
}

func (h *ApplicationHandler) applicationError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrApplicationNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Application not found",
		})
	case errors.Is(err, services.ErrNotOwner):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrNotEditable),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrFeedbackBlocked),
		errors.Is(err, services.ErrPaymentAlreadyUsed):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
}
