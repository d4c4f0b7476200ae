package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/zikashaLLP/Rotery-Club-sub000/internal/logger"
)

// BackendClient talks to the race-registration backend: the marathon
// catalog, participant registration and the payment endpoints.
type BackendClient struct {
	baseURL string
	client  *http.Client
	log     logger.Logger
}

// NewBackendClient creates a backend API client
func NewBackendClient(baseURL string, log logger.Logger) *BackendClient {
	return &BackendClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		log:     log,
	}
}

// MarathonRecord is a race category as the backend returns it
type MarathonRecord struct {
	ID                 int    `json:"Id"`
	Name               string `json:"Name"`
	TrackLength        string `json:"Track_Length"`
	Description        string `json:"Description"`
	FeesAmount         int    `json:"Fees_Amount"`
	DiscountPercentage int    `json:"Discount_Percentage"`
}

type marathonListResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    []MarathonRecord `json:"data"`
}

// ParticipantData is one participant's registration payload. Optional
// fields carry omitempty so blanks are left out of the request entirely.
type ParticipantData struct {
	FullName           string `json:"fullName"`
	Email              string `json:"email"`
	Phone              string `json:"phone"`
	DateOfBirth        string `json:"dateOfBirth"`
	Gender             string `json:"gender"`
	Address            string `json:"address,omitempty"`
	City               string `json:"city"`
	Pincode            string `json:"pincode"`
	State              string `json:"state,omitempty"`
	TShirtSize         string `json:"tshirtSize"`
	BloodGroup         string `json:"bloodGroup,omitempty"`
	RunningClub        string `json:"runningClub,omitempty"`
	DisclaimerAccepted string `json:"disclaimerAccepted"`
}

// RegistrationRecord pairs one participant with the race they entered
type RegistrationRecord struct {
	MarathonID      int             `json:"marathonId"`
	ParticipantData ParticipantData `json:"participantData"`
}

// RegisterRequest submits every participant of a checkout in one request
type RegisterRequest struct {
	Registrations []RegistrationRecord `json:"registrations"`
}

// RegisterResponse is the backend's answer to a registration request
type RegisterResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		ParticipantIDs []string `json:"participantIds"`
		TotalAmount    float64  `json:"totalAmount"`
	} `json:"data"`
}

// CreatePaymentRequest asks the backend to create a gateway payment order
type CreatePaymentRequest struct {
	ParticipantIDs []string `json:"participantIds"`
	TotalAmount    float64  `json:"totalAmount"`
}

// CreatePaymentResponse carries the gateway redirect URL
type CreatePaymentResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		PaymentURL      string `json:"paymentUrl"`
		MerchantOrderID string `json:"merchantOrderId"`
	} `json:"data"`
}

// PaymentSummary is one participant's line in a verified payment
type PaymentSummary struct {
	ParticipantName string  `json:"participantName"`
	MarathonName    string  `json:"marathonName"`
	Amount          float64 `json:"amount"`
	Status          string  `json:"status"`
}

// PaymentVerification is the final status snapshot for a merchant order
type PaymentVerification struct {
	MerchantOrderID  string           `json:"merchantOrderId"`
	PaymentStatus    string           `json:"paymentStatus"`
	TransactionID    string           `json:"transactionId"`
	ParticipantCount int              `json:"participantCount"`
	Payments         []PaymentSummary `json:"payments"`
}

type paymentVerifyResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    PaymentVerification `json:"data"`
}

// BackendError is an application-level error from the backend
type BackendError struct {
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend error (status %d)", e.StatusCode)
}

// GetMarathons fetches the race catalog
func (c *BackendClient) GetMarathons(ctx context.Context) ([]MarathonRecord, error) {
	var resp marathonListResponse
	if err := c.get(ctx, "/marathon", &resp); err != nil {
		return nil, err
	}
	if !resp.Success || resp.Data == nil {
		return nil, &BackendError{Message: messageOr(resp.Message, "marathon catalog unavailable")}
	}
	return resp.Data, nil
}

// RegisterParticipants submits all participants in a single request
func (c *BackendClient) RegisterParticipants(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error) {
	var resp RegisterResponse
	if err := c.post(ctx, "/participant/register", req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &BackendError{Message: messageOr(resp.Message, "registration failed")}
	}
	return &resp, nil
}

// CreatePayment creates a payment order for already-registered participants
func (c *BackendClient) CreatePayment(ctx context.Context, req *CreatePaymentRequest) (*CreatePaymentResponse, error) {
	var resp CreatePaymentResponse
	if err := c.post(ctx, "/payment/create", req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &BackendError{Message: messageOr(resp.Message, "payment creation failed")}
	}
	return &resp, nil
}

// VerifyPayment fetches the final payment status for a merchant order id.
// One snapshot read, no polling.
func (c *BackendClient) VerifyPayment(ctx context.Context, merchantOrderID string) (*PaymentVerification, error) {
	path := "/payment/verify?merchantOrderId=" + url.QueryEscape(merchantOrderID)
	var resp paymentVerifyResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &BackendError{Message: messageOr(resp.Message, "payment verification failed")}
	}
	return &resp.Data, nil
}

func (c *BackendClient) get(ctx context.Context, path string, out any) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	return c.do(httpReq, out)
}

func (c *BackendClient) post(ctx context.Context, path string, body, out any) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	return c.do(httpReq, out)
}

func (c *BackendClient) do(req *http.Request, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach backend: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return c.handleAPIError(resp.StatusCode, bodyBytes)
	}

	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// handleAPIError surfaces the server-provided message when there is one
func (c *BackendClient) handleAPIError(statusCode int, body []byte) error {
	var apiErr struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &apiErr); err != nil || apiErr.Message == "" {
		return &BackendError{StatusCode: statusCode}
	}
	return &BackendError{StatusCode: statusCode, Message: apiErr.Message}
}

func messageOr(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}
