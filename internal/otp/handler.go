package otp

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/amirx1991/patient-auth/internal/identity"
)

// Handler exposes the OTP endpoints.
type Handler struct {
	svc      *Service
	validate *validator.Validate
}

// NewHandler builds the OTP handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc, validate: validator.New()}
}

type sendRequest struct {
	Phone string `json:"phone" validate:"required"`
}

type verifyRequest struct {
	Phone string `json:"phone" validate:"required"`
	OTP   string `json:"otp" validate:"required"`
}

type patientSummary struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// Send issues a verification code for the phone number in the request body.
func (h *Handler) Send(c *fiber.Ctx) error {
	var req sendRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"message": "phone is required"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"message": "phone is required"})
	}

	if err := h.svc.RequestCode(c.UserContext(), req.Phone); err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"message": "no patient registered under this phone"})
		}
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"message": "could not send verification code"})
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "verification code sent"})
}

// Verify validates a presented code and returns a token pair plus the patient
// summary on success.
func (h *Handler) Verify(c *fiber.Ctx) error {
	var req verifyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"message": "phone and otp are required"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"message": "phone and otp are required"})
	}

	pair, patient, err := h.svc.VerifyCode(c.UserContext(), req.Phone, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoPendingCode), errors.Is(err, ErrCodeMismatch):
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"message": "invalid verification code"})
		case errors.Is(err, identity.ErrNotFound):
			return c.Status(http.StatusNotFound).JSON(fiber.Map{"message": "patient not found"})
		default:
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"token":   pair.Access,
		"refresh": pair.Refresh,
		"patient": patientSummary{
			ID:        patient.ID,
			FirstName: patient.FirstName,
			LastName:  patient.LastName,
			Phone:     patient.Phone,
		},
	})
}
