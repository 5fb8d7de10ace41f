package routes

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/amirx1991/patient-auth/internal/config"
	"github.com/amirx1991/patient-auth/internal/logging"
)

// Dev-mode wiring seeds this patient and pins the generated code to 12345.
const (
	demoPhone = "+989120000000"
	demoCode  = "12345"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	cfg := config.Config{
		AppName:         "PatientAuth",
		AppEnv:          "development",
		JWTSecret:       "access-secret",
		RefreshSecret:   "refresh-secret",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
		OTPTTL:          120 * time.Second,
		OTPLength:       5,
	}

	app := fiber.New()
	if err := Setup(app, Deps{Cfg: cfg, Logger: logging.Discard()}); err != nil {
		t.Fatalf("setup routes: %v", err)
	}
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	resp.Body.Close()
	var decoded map[string]any
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("decode body %q: %v", string(payload), err)
	}
	return decoded
}

func TestSendVerifyProfileFlow(t *testing.T) {
	app := setupApp(t)

	resp := postJSON(t, app, "/otp/send", `{"phone":"`+demoPhone+`"}`)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("send: expected 200, got %d", resp.StatusCode)
	}
	if body := decodeBody(t, resp); body["message"] == "" {
		t.Fatalf("send: expected a message, got %v", body)
	}

	resp = postJSON(t, app, "/otp/verify", `{"phone":"`+demoPhone+`","otp":"`+demoCode+`"}`)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("verify: expected 200, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	access, _ := body["token"].(string)
	refresh, _ := body["refresh"].(string)
	if access == "" || refresh == "" {
		t.Fatalf("verify: expected token pair, got %v", body)
	}
	patient, ok := body["patient"].(map[string]any)
	if !ok || patient["phone"] != demoPhone {
		t.Fatalf("verify: expected patient summary for %s, got %v", demoPhone, body)
	}

	req := httptest.NewRequest(fiber.MethodGet, "/profile", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Token "+access)
	profileResp, err := app.Test(req)
	if err != nil {
		t.Fatalf("GET /profile: %v", err)
	}
	if profileResp.StatusCode != fiber.StatusOK {
		t.Fatalf("profile: expected 200, got %d", profileResp.StatusCode)
	}
	profile := decodeBody(t, profileResp)
	if profile["id"] != patient["id"] {
		t.Fatalf("profile: expected id %v, got %v", patient["id"], profile["id"])
	}
	if profile["phone"] != demoPhone {
		t.Fatalf("profile: expected phone %s, got %v", demoPhone, profile["phone"])
	}

	// Replay of the consumed code must fail.
	resp = postJSON(t, app, "/otp/verify", `{"phone":"`+demoPhone+`","otp":"`+demoCode+`"}`)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("replay: expected 400, got %d", resp.StatusCode)
	}
}

func TestSendValidation(t *testing.T) {
	app := setupApp(t)

	resp := postJSON(t, app, "/otp/send", `{}`)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for missing phone, got %d", resp.StatusCode)
	}

	resp = postJSON(t, app, "/otp/send", `{"phone":"+989999999999"}`)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for unknown phone, got %d", resp.StatusCode)
	}
}

func TestVerifyValidation(t *testing.T) {
	app := setupApp(t)

	resp := postJSON(t, app, "/otp/verify", `{"phone":"`+demoPhone+`"}`)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for missing otp, got %d", resp.StatusCode)
	}

	// Nothing issued yet.
	resp = postJSON(t, app, "/otp/verify", `{"phone":"`+demoPhone+`","otp":"`+demoCode+`"}`)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 with no pending code, got %d", resp.StatusCode)
	}

	resp = postJSON(t, app, "/otp/send", `{"phone":"`+demoPhone+`"}`)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("send: expected 200, got %d", resp.StatusCode)
	}
	resp = postJSON(t, app, "/otp/verify", `{"phone":"`+demoPhone+`","otp":"00000"}`)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for mismatched code, got %d", resp.StatusCode)
	}

	// Mismatch did not consume the pending code.
	resp = postJSON(t, app, "/otp/verify", `{"phone":"`+demoPhone+`","otp":"`+demoCode+`"}`)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 after mismatch retry, got %d", resp.StatusCode)
	}
}

func TestProfileDeniesWithoutValidToken(t *testing.T) {
	app := setupApp(t)

	cases := map[string]string{
		"no header":     "",
		"bearer prefix": "Bearer whatever",
		"garbage token": "Token not.a.jwt",
	}
	for name, header := range cases {
		req := httptest.NewRequest(fiber.MethodGet, "/profile", nil)
		if header != "" {
			req.Header.Set(fiber.HeaderAuthorization, header)
		}
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if resp.StatusCode != fiber.StatusForbidden {
			t.Fatalf("%s: expected 403, got %d", name, resp.StatusCode)
		}
	}
}
