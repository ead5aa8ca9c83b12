package port

import (
	"context"

	"skyflyBff/internal/modules/profile/domain"
	"skyflyBff/internal/platform/rest"
)

// ProfileGateway fetches and updates the caller's profile on the backend.
type ProfileGateway interface {
	GetProfile(ctx context.Context, token string) (domain.Record, error)
	EditProfile(ctx context.Context, token string, update domain.Update) rest.Result
}
