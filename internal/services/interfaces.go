package services

import (
	"context"

	"github.com/zikashaLLP/Rotery-Club-sub000/internal/models"
)

// CatalogAPI is the backend's catalog endpoint
type CatalogAPI interface {
	GetMarathons(ctx context.Context) ([]MarathonRecord, error)
}

// RegistrationAPI covers the two sequential calls of a submission
type RegistrationAPI interface {
	RegisterParticipants(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error)
	CreatePayment(ctx context.Context, req *CreatePaymentRequest) (*CreatePaymentResponse, error)
}

// PaymentVerifierAPI is the backend's payment status endpoint
type PaymentVerifierAPI interface {
	VerifyPayment(ctx context.Context, merchantOrderID string) (*PaymentVerification, error)
}

// CatalogServiceInterface defines the interface for the catalog service
type CatalogServiceInterface interface {
	Catalog(ctx context.Context) []models.Ticket
}

// RegistrationServiceInterface defines the interface for the registration
// submitter
type RegistrationServiceInterface interface {
	Submit(ctx context.Context, cs *models.CheckoutSession) (*SubmissionResult, error)
}
