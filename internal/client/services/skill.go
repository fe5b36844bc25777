package services

import (
	"context"
	"strings"

	"github.com/skilllink/skilllink/internal/client/backend"
	"github.com/skilllink/skilllink/internal/client/models"
	"github.com/skilllink/skilllink/internal/client/tables"
	"github.com/skilllink/skilllink/internal/common"
	"github.com/skilllink/skilllink/internal/logging"
)

// SkillInput is what the post form collects. The author id is resolved
// from the session cache, never taken from the form.
type SkillInput struct {
	Title       string
	Description string
	ImageURL    string
	Category    string
}

// SkillService exposes skill listings and their category reference data.
type SkillService struct {
	skills     *tables.Table[int64, models.Skill, models.SkillInsert, models.SkillUpdate]
	categories *tables.Table[int64, models.Category, models.CategoryInsert, models.CategoryUpdate]
	sessions   *SessionService
	log        logging.Logger
}

func NewSkillService(api backend.TableAPI, sessions *SessionService, log logging.Logger) *SkillService {
	return &SkillService{
		skills:     tables.Skills(api),
		categories: tables.Categories(api),
		sessions:   sessions,
		log:        log,
	}
}

// ListAll returns every skill post, newest first.
func (s *SkillService) ListAll(ctx context.Context) ([]models.Skill, error) {
	return s.skills.FetchAll(ctx, tables.WithOrderDesc("created_at"))
}

// ListByUser returns userID's posts, newest first.
func (s *SkillService) ListByUser(ctx context.Context, userID string) ([]models.Skill, error) {
	if userID == "" {
		return nil, &common.ValidationError{Field: "user_id", Message: "user id is required"}
	}
	return s.skills.FetchAll(ctx,
		tables.WithEq("user_id", userID),
		tables.WithOrderDesc("created_at"))
}

// GetByID returns one post; common.ErrNotFound when it does not exist.
func (s *SkillService) GetByID(ctx context.Context, id int64) (models.Skill, error) {
	return s.skills.FetchByID(ctx, id)
}

// Create posts a new listing for the authenticated user. Title and
// category are required; both checks fail before any network call.
func (s *SkillService) Create(ctx context.Context, input SkillInput) (models.Skill, error) {
	if strings.TrimSpace(input.Title) == "" {
		return models.Skill{}, &common.ValidationError{Field: "title", Message: "title is required"}
	}
	if strings.TrimSpace(input.Category) == "" {
		return models.Skill{}, &common.ValidationError{Field: "category", Message: "category is required"}
	}

	sess, err := s.sessions.GetSession(ctx)
	if err != nil {
		return models.Skill{}, err
	}
	if sess == nil {
		return models.Skill{}, common.ErrNotAuthenticated
	}

	user, err := s.sessions.GetCurrentUser(ctx)
	if err != nil {
		return models.Skill{}, err
	}

	insert := models.SkillInsert{
		Title:    input.Title,
		ImageURL: input.ImageURL,
		Category: input.Category,
		UserID:   user.ID,
	}
	if input.Description != "" {
		insert.Description = models.Ptr(input.Description)
	}

	return s.skills.Insert(ctx, insert)
}

// Delete removes one of the caller's posts. Row-level rules on the backend
// reject deletes of other authors' posts; no client-side re-check.
func (s *SkillService) Delete(ctx context.Context, id int64) error {
	return s.skills.Remove(ctx, id)
}

// Categories returns the reference categories for the post form.
func (s *SkillService) Categories(ctx context.Context) ([]models.Category, error) {
	return s.categories.FetchAll(ctx)
}
