package middleware

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/amirx1991/patient-auth/internal/identity"
	"github.com/amirx1991/patient-auth/internal/token"
)

// PatientLocal is the fiber.Ctx locals key holding the authenticated patient.
const PatientLocal = "patient"

// PatientAuth validates "Authorization: Token <jwt>" headers, enforces the
// patient principal type and re-resolves the identity from the directory.
// Every failure branch denies with 403; nothing propagates as a panic.
func PatientAuth(authenticator *token.Authenticator, directory identity.Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := authenticator.Authenticate(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return c.Status(http.StatusForbidden).JSON(fiber.Map{"message": "permission denied"})
		}

		patient, err := directory.FindByID(c.UserContext(), claims.PatientID)
		if err != nil {
			return c.Status(http.StatusForbidden).JSON(fiber.Map{"message": "permission denied"})
		}

		c.Locals(PatientLocal, patient)
		return c.Next()
	}
}
