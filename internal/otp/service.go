package otp

import (
	"context"
	"log/slog"
	"time"

	"github.com/amirx1991/patient-auth/internal/identity"
	"github.com/amirx1991/patient-auth/internal/notification"
	"github.com/amirx1991/patient-auth/internal/token"
)

// Sink accepts notification messages for asynchronous delivery. Dispatch must
// not block; delivery is fire-and-forget.
type Sink interface {
	Dispatch(message notification.Message)
}

// Service issues and verifies one-time codes for patients.
type Service struct {
	directory identity.Repository
	store     Store
	generator Generator
	sink      Sink
	minter    *token.Minter
	ttl       time.Duration
	logger    *slog.Logger
}

// NewService builds the OTP service.
func NewService(directory identity.Repository, store Store, generator Generator, sink Sink, minter *token.Minter, ttl time.Duration, logger *slog.Logger) *Service {
	return &Service{
		directory: directory,
		store:     store,
		generator: generator,
		sink:      sink,
		minter:    minter,
		ttl:       ttl,
		logger:    logger,
	}
}

// RequestCode issues a fresh code for the patient registered under the phone
// number, replacing any prior pending code, and hands it to the SMS channel.
// Issuance succeeds once the code is stored; delivery is not awaited.
func (s *Service) RequestCode(ctx context.Context, phone string) error {
	patient, err := s.directory.FindByPhone(ctx, phone, identity.RolePatient)
	if err != nil {
		return err
	}

	code, err := s.generator.Generate()
	if err != nil {
		return err
	}

	if err := s.store.Set(ctx, phone, code, s.ttl); err != nil {
		return err
	}

	s.sink.Dispatch(notification.Message{
		Phone:    patient.Phone,
		Template: notification.TemplateAuthenticate,
		Tokens:   map[string]string{"token": code},
	})

	s.logger.Info("otp issued", "phone", phone, "patient_id", patient.ID, "ttl", s.ttl)
	return nil
}

// VerifyCode checks the presented code against the pending one. On match the
// pending code is consumed and a token pair is minted for the patient. A
// mismatch leaves the pending code in place so the caller may retry until it
// expires.
func (s *Service) VerifyCode(ctx context.Context, phone, code string) (token.Pair, identity.User, error) {
	stored, err := s.store.Get(ctx, phone)
	if err != nil {
		return token.Pair{}, identity.User{}, err
	}
	if stored != code {
		return token.Pair{}, identity.User{}, ErrCodeMismatch
	}

	patient, err := s.directory.FindByPhone(ctx, phone, identity.RolePatient)
	if err != nil {
		return token.Pair{}, identity.User{}, err
	}

	// Single use: consume before handing out tokens so a replay with the
	// same code sees no pending entry.
	if err := s.store.Delete(ctx, phone); err != nil {
		return token.Pair{}, identity.User{}, err
	}

	pair, err := s.minter.Mint(patient.ID, token.PrincipalPatient)
	if err != nil {
		return token.Pair{}, identity.User{}, err
	}

	s.logger.Info("otp verified", "phone", phone, "patient_id", patient.ID)
	return pair, patient, nil
}
