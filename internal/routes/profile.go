package routes

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/amirx1991/patient-auth/internal/identity"
	"github.com/amirx1991/patient-auth/internal/middleware"
)

// RegisterProfileRoutes wires the authenticated patient profile endpoint.
func RegisterProfileRoutes(r fiber.Router, patientAuth fiber.Handler) {
	r.Get("/profile", patientAuth, func(c *fiber.Ctx) error {
		patient, ok := c.Locals(middleware.PatientLocal).(identity.User)
		if !ok {
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "patient missing from request context"})
		}
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"id":         patient.ID,
			"first_name": patient.FirstName,
			"last_name":  patient.LastName,
			"phone":      patient.Phone,
		})
	})
}
