package services

import (
	"context"

	"github.com/zikashaLLP/Rotery-Club-sub000/internal/models"
)

// MockBackendAPI is a scriptable backend for tests. Call counts are
// recorded so tests can assert which phases ran.
type MockBackendAPI struct {
	MarathonsFn     func(ctx context.Context) ([]MarathonRecord, error)
	RegisterFn      func(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error)
	CreatePaymentFn func(ctx context.Context, req *CreatePaymentRequest) (*CreatePaymentResponse, error)
	VerifyFn        func(ctx context.Context, merchantOrderID string) (*PaymentVerification, error)
	RegisterCalls   int
	PaymentCalls    int
	VerifyCalls     int
	LastRegisterReq *RegisterRequest
	LastPaymentReq  *CreatePaymentRequest
	LastVerifyOrder string
}

func (m *MockBackendAPI) GetMarathons(ctx context.Context) ([]MarathonRecord, error) {
	if m.MarathonsFn != nil {
		return m.MarathonsFn(ctx)
	}
	return nil, nil
}

func (m *MockBackendAPI) RegisterParticipants(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error) {
	m.RegisterCalls++
	m.LastRegisterReq = req
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, req)
	}
	return &RegisterResponse{Success: true}, nil
}

func (m *MockBackendAPI) CreatePayment(ctx context.Context, req *CreatePaymentRequest) (*CreatePaymentResponse, error) {
	m.PaymentCalls++
	m.LastPaymentReq = req
	if m.CreatePaymentFn != nil {
		return m.CreatePaymentFn(ctx, req)
	}
	return &CreatePaymentResponse{Success: true}, nil
}

func (m *MockBackendAPI) VerifyPayment(ctx context.Context, merchantOrderID string) (*PaymentVerification, error) {
	m.VerifyCalls++
	m.LastVerifyOrder = merchantOrderID
	if m.VerifyFn != nil {
		return m.VerifyFn(ctx, merchantOrderID)
	}
	return &PaymentVerification{MerchantOrderID: merchantOrderID, PaymentStatus: "SUCCESS"}, nil
}

// MockRegistrationService records submissions for handler tests
type MockRegistrationService struct {
	SubmitFn    func(ctx context.Context, cs *models.CheckoutSession) (*SubmissionResult, error)
	SubmitCalls int
}

func (m *MockRegistrationService) Submit(ctx context.Context, cs *models.CheckoutSession) (*SubmissionResult, error) {
	m.SubmitCalls++
	if m.SubmitFn != nil {
		return m.SubmitFn(ctx, cs)
	}
	return &SubmissionResult{PaymentURL: "https://gateway.example.com/pay/mock"}, nil
}

// MockCatalogService serves a fixed catalog without any network
type MockCatalogService struct {
	Tickets []models.Ticket
}

func (m *MockCatalogService) Catalog(ctx context.Context) []models.Ticket {
	if m.Tickets != nil {
		return m.Tickets
	}
	return FallbackCatalog()
}
