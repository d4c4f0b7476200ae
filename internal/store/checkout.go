package store

import (
	"context"
	"errors"
	"time"

	"github.com/zikashaLLP/Rotery-Club-sub000/internal/models"
)

// ErrNotFound is returned when a checkout session is missing or expired
var ErrNotFound = errors.New("checkout session not found")

// SessionTTL bounds how long an abandoned checkout survives
const SessionTTL = 2 * time.Hour

// CheckoutStore persists checkout sessions between requests. The in-memory
// implementation is the default; Redis backs multi-instance deployments.
type CheckoutStore interface {
	Save(ctx context.Context, cs *models.CheckoutSession) error
	Get(ctx context.Context, id string) (*models.CheckoutSession, error)
	Delete(ctx context.Context, id string) error
}
