package http

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/weatherwidget/backend/internal/domain"
	"github.com/weatherwidget/backend/internal/service"
	"github.com/weatherwidget/backend/internal/view"
	"github.com/weatherwidget/backend/pkg/utils"
)

const (
	serviceName = "weather-widget"
	version     = "1.0.0"
)

// Handler contains all HTTP handlers
type Handler struct {
	searchSvc    *service.SearchService
	store        domain.CityStore
	iconTemplate string
}

// NewHandler creates a new handler. store may be nil.
func NewHandler(searchSvc *service.SearchService, store domain.CityStore, iconTemplate string) *Handler {
	return &Handler{
		searchSvc:    searchSvc,
		store:        store,
		iconTemplate: iconTemplate,
	}
}

type searchRequest struct {
	City string `json:"city" form:"city"`
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	storage := "ok"
	status := fiber.StatusOK
	if h.store != nil {
		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()
		if err := h.store.Health(ctx); err != nil {
			log.Printf("health: store check failed: %v", err)
			storage = "unavailable"
			status = fiber.StatusServiceUnavailable
		}
	} else {
		storage = "disabled"
	}

	overall := "ok"
	if status != fiber.StatusOK {
		overall = "degraded"
	}
	return c.Status(status).JSON(fiber.Map{
		"status":  overall,
		"service": serviceName,
		"version": version,
		"storage": storage,
	})
}

// Index renders the widget page
func (h *Handler) Index(c *fiber.Ctx) error {
	body, err := view.RenderHTML(h.searchSvc.State(), h.iconTemplate)
	if err != nil {
		log.Printf("index: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to render widget")
	}
	c.Type("html", "utf-8")
	return c.Send(body)
}

// GetWeather returns the current session snapshot
func (h *Handler) GetWeather(c *fiber.Ctx) error {
	return c.JSON(h.searchSvc.State())
}

// Search runs a city lookup. Lookup failures are reported in the returned
// state, not as an HTTP error.
func (h *Handler) Search(c *fiber.Ctx) error {
	var req searchRequest
	if err := c.BodyParser(&req); err != nil && !errors.Is(err, fiber.ErrUnprocessableEntity) {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	city := utils.NormalizeCity(req.City)
	if city == "" {
		return fiber.NewError(fiber.StatusBadRequest, "City name is required")
	}

	// the outcome is already committed to the session
	_ = h.searchSvc.Search(c.Context(), city)

	if isFormPost(c) {
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	return c.JSON(h.searchSvc.State())
}

func isFormPost(c *fiber.Ctx) bool {
	ct := strings.ToLower(c.Get(fiber.HeaderContentType))
	return strings.HasPrefix(ct, fiber.MIMEApplicationForm) || strings.HasPrefix(ct, fiber.MIMEMultipartForm)
}

// ErrorHandler renders errors as {"error": true, "message": ...}
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
