package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ozgurkara/event-gallery-backend/internal/models"
	"github.com/ozgurkara/event-gallery-backend/internal/service"
	"github.com/ozgurkara/event-gallery-backend/pkg/utils"
)

// Multipart form field names and the upload cap of the public API contract.
const (
	imagesFormField   = "images"
	captionsFormField = "captions"
	maxEventImages    = 10
)

type EventHandler struct {
	eventService *service.EventService
	validator    *utils.Validator
}

func NewEventHandler(eventService *service.EventService, validator *utils.Validator) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		validator:    validator,
	}
}

func (h *EventHandler) CreateEvent(c *fiber.Ctx) error {
	var req models.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid date"))
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid form data"))
	}

	files := form.File[imagesFormField]
	if len(files) > maxEventImages {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Too many images"))
	}
	captions := form.Value[captionsFormField]

	event, err := h.eventService.CreateEvent(c.Context(), req.Title, date, files, captions)
	if err != nil {
		if errors.Is(err, models.ErrFileTooLarge) || errors.Is(err, models.ErrUnsupportedFileType) {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	return c.Status(fiber.StatusCreated).JSON(event)
}

func (h *EventHandler) GetEvents(c *fiber.Ctx) error {
	events, err := h.eventService.ListEvents(c.Context(), c.Query("type"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}
	return c.JSON(events)
}

func (h *EventHandler) GetEventTypes(c *fiber.Ctx) error {
	types, err := h.eventService.ListEventTypes(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}
	return c.JSON(types)
}

func (h *EventHandler) DeleteImage(c *fiber.Ctx) error {
	eventID, err := primitive.ObjectIDFromHex(c.Params("eventId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid event ID"))
	}
	imageID, err := primitive.ObjectIDFromHex(c.Params("imageId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid image ID"))
	}

	if err := h.eventService.DeleteImage(c.Context(), eventID, imageID); err != nil {
		switch {
		case errors.Is(err, models.ErrEventNotFound):
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Event not found"))
		case errors.Is(err, models.ErrImageNotFound):
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Image not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.MessageResponse("Image deleted successfully"))
}

func (h *EventHandler) DeleteEvent(c *fiber.Ctx) error {
	eventID, err := primitive.ObjectIDFromHex(c.Params("eventId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid event ID"))
	}

	if err := h.eventService.DeleteEvent(c.Context(), eventID); err != nil {
		if errors.Is(err, models.ErrEventNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Event not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.MessageResponse("Event deleted successfully"))
}

// parseDate accepts the date formats the frontend sends.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
