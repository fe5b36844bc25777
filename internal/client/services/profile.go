package services

import (
	"context"

	"github.com/skilllink/skilllink/internal/client/backend"
	"github.com/skilllink/skilllink/internal/client/models"
	"github.com/skilllink/skilllink/internal/client/tables"
	"github.com/skilllink/skilllink/internal/common"
	"github.com/skilllink/skilllink/internal/logging"
)

// ProfileService exposes profile rows through the typed table layer. One
// row per user; the row id doubles as the foreign key to the user identity.
type ProfileService struct {
	profiles *tables.Table[string, models.Profile, models.ProfileInsert, models.ProfileUpdate]
	log      logging.Logger
}

func NewProfileService(api backend.TableAPI, log logging.Logger) *ProfileService {
	return &ProfileService{profiles: tables.Profiles(api), log: log}
}

// List returns every profile.
func (p *ProfileService) List(ctx context.Context) ([]models.Profile, error) {
	return p.profiles.FetchAll(ctx)
}

// GetByID returns the profile owned by userID. common.ErrNotFound when the
// user has no profile row yet.
func (p *ProfileService) GetByID(ctx context.Context, userID string) (models.Profile, error) {
	if userID == "" {
		return models.Profile{}, &common.ValidationError{Field: "user_id", Message: "user id is required"}
	}
	return p.profiles.FetchByID(ctx, userID)
}

// Create inserts a profile row. The id must be the authenticated user's
// identity id; a profile without a matching identity must never exist, so
// an empty id is rejected before any network call.
func (p *ProfileService) Create(ctx context.Context, insert models.ProfileInsert) (models.Profile, error) {
	if insert.ID == "" {
		return models.Profile{}, &common.ValidationError{Field: "id", Message: "profile id must be the owning user's id"}
	}
	return p.profiles.Insert(ctx, insert)
}

// Update patches the profile owned by userID.
func (p *ProfileService) Update(ctx context.Context, userID string, patch models.ProfileUpdate) (models.Profile, error) {
	if userID == "" {
		return models.Profile{}, &common.ValidationError{Field: "user_id", Message: "user id is required"}
	}
	return p.profiles.Update(ctx, userID, patch)
}

// Delete removes the profile owned by userID.
func (p *ProfileService) Delete(ctx context.Context, userID string) error {
	if userID == "" {
		return &common.ValidationError{Field: "user_id", Message: "user id is required"}
	}
	return p.profiles.Remove(ctx, userID)
}
