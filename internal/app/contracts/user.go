package contracts

import (
	"context"

	"medika-service/internal/app/models"
)

// UserRepository reads account records; checkout uses it to hand the payer's
// name and email to the gateway.
type UserRepository interface {
	FindByID(ctx context.Context, userID string) (*models.User, error)
}
