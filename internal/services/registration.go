package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/zikashaLLP/Rotery-Club-sub000/internal/logger"
	"github.com/zikashaLLP/Rotery-Club-sub000/internal/models"
)

// RegistrationService serializes a validated checkout into the two-phase
// register-then-pay transaction. The two calls are strictly sequential and
// there is no retry or rollback: a payment-creation failure leaves the
// participants registered server-side, which the backend owns reconciling.
type RegistrationService struct {
	api         RegistrationAPI
	phonePrefix string
	log         logger.Logger
}

// NewRegistrationService creates a new registration submitter
func NewRegistrationService(api RegistrationAPI, phonePrefix string, log logger.Logger) *RegistrationService {
	return &RegistrationService{
		api:         api,
		phonePrefix: phonePrefix,
		log:         log,
	}
}

// SubmissionResult carries what the checkout needs after a successful
// submission: the gateway URL to navigate to, plus the server-side
// identifiers for logging
type SubmissionResult struct {
	PaymentURL      string
	MerchantOrderID string
	ParticipantIDs  []string
	TotalAmount     float64
}

// ErrMalformedResponse marks a nominally successful backend response that
// is missing the identifiers the payment step depends on
var ErrMalformedResponse = errors.New("registration response missing participant ids or total amount")

// Submit registers every participant in one request, then creates the
// payment order from the identifiers and total the backend returned. The
// client-computed cart total is never sent to the payment endpoint.
func (s *RegistrationService) Submit(ctx context.Context, cs *models.CheckoutSession) (*SubmissionResult, error) {
	req := &RegisterRequest{
		Registrations: make([]RegistrationRecord, 0, len(cs.Slots)),
	}
	for i := range cs.Slots {
		req.Registrations = append(req.Registrations, s.buildRecord(&cs.Slots[i]))
	}

	regResp, err := s.api.RegisterParticipants(ctx, req)
	if err != nil {
		s.log.Error("participant registration failed", "participants", len(req.Registrations), "error", err)
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	// A 200 with no participant ids or a non-positive total is still a
	// failure; the payment step must never run on it.
	if len(regResp.Data.ParticipantIDs) == 0 || regResp.Data.TotalAmount <= 0 {
		s.log.Error("registration response malformed",
			"participant_ids", len(regResp.Data.ParticipantIDs),
			"total_amount", regResp.Data.TotalAmount)
		return nil, ErrMalformedResponse
	}

	s.log.Info("participants registered",
		"count", len(regResp.Data.ParticipantIDs),
		"total_amount", regResp.Data.TotalAmount)

	payResp, err := s.api.CreatePayment(ctx, &CreatePaymentRequest{
		ParticipantIDs: regResp.Data.ParticipantIDs,
		TotalAmount:    regResp.Data.TotalAmount,
	})
	if err != nil {
		// Participants are already registered server-side at this point.
		s.log.Error("payment creation failed after registration",
			"participant_ids", regResp.Data.ParticipantIDs, "error", err)
		return nil, fmt.Errorf("payment creation failed: %w", err)
	}

	if payResp.Data.PaymentURL == "" {
		s.log.Error("payment creation response missing payment url")
		return nil, errors.New("payment creation response missing payment url")
	}

	s.log.Info("payment order created",
		"merchant_order_id", payResp.Data.MerchantOrderID,
		"total_amount", regResp.Data.TotalAmount)

	return &SubmissionResult{
		PaymentURL:      payResp.Data.PaymentURL,
		MerchantOrderID: payResp.Data.MerchantOrderID,
		ParticipantIDs:  regResp.Data.ParticipantIDs,
		TotalAmount:     regResp.Data.TotalAmount,
	}, nil
}

// buildRecord maps a checkout slot onto the backend's registration shape:
// canonical gender, country-prefixed phone, blank optionals omitted.
func (s *RegistrationService) buildRecord(slot *models.ParticipantSlot) RegistrationRecord {
	return RegistrationRecord{
		MarathonID: slot.TicketID,
		ParticipantData: ParticipantData{
			FullName:           slot.FullName,
			Email:              slot.Email,
			Phone:              s.phonePrefix + slot.DigitsOnlyPhone(),
			DateOfBirth:        slot.DateOfBirth,
			Gender:             slot.Gender.Canonical(),
			Address:            slot.Address,
			City:               slot.City,
			Pincode:            slot.Pincode,
			State:              slot.State,
			TShirtSize:         slot.TShirtSize,
			BloodGroup:         slot.BloodGroup,
			RunningClub:        slot.RunningClub,
			DisclaimerAccepted: slot.DisclaimerAccepted,
		},
	}
}
