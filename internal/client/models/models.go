// Package models defines the row shapes the SkillLink client exchanges with
// the backend. Every table has an explicit Row, Insert, and Update shape so
// the typed table layer is checked against a fixed set of schemas instead of
// passing open-ended maps around.
package models

import "time"

// User is the backend-assigned identity of a signed-in actor. The client
// never creates or deletes these; it only mirrors what the auth surface
// returns.
type User struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	CreatedAt    time.Time      `json:"created_at"`
	LastSignInAt *time.Time     `json:"last_sign_in_at,omitempty"`
	Metadata     map[string]any `json:"user_metadata,omitempty"`
}

// Session is a time-bounded proof of authentication. At most one live
// session exists per client process.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         *User     `json:"user,omitempty"`
}

// Expired reports whether the session's access token is past its expiry at
// the given instant.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// UserUpdate is the partial-update shape accepted by the auth surface.
type UserUpdate struct {
	Email    string         `json:"email,omitempty"`
	Password string         `json:"password,omitempty"`
	Metadata map[string]any `json:"data,omitempty"`
}

// Profile is one row of the profiles table. Its id equals the owning user's
// identity id (primary key and foreign key at once); the client never
// creates a profile for an id it did not get from the auth surface.
type Profile struct {
	ID        string     `json:"id"`
	Username  *string    `json:"username"`
	FullName  *string    `json:"full_name"`
	AvatarURL *string    `json:"avatar_url"`
	Bio       *string    `json:"bio"`
	Skills    *string    `json:"skills"`
	Location  *string    `json:"location"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// ProfileInsert is the insert shape for profiles. ID is required and must
// come from the authenticated user.
type ProfileInsert struct {
	ID       string  `json:"id"`
	Username *string `json:"username,omitempty"`
	FullName *string `json:"full_name,omitempty"`
	Bio      *string `json:"bio,omitempty"`
	Skills   *string `json:"skills,omitempty"`
	Location *string `json:"location,omitempty"`
}

// ProfileUpdate is the partial-update shape for profiles. Nil fields are
// omitted from the patch and left untouched by the backend.
type ProfileUpdate struct {
	Username  *string `json:"username,omitempty"`
	FullName  *string `json:"full_name,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	Skills    *string `json:"skills,omitempty"`
	Location  *string `json:"location,omitempty"`
}

// Skill is one row of the skills table: a posted listing. Category carries
// the category *name*, not its id; renaming a category leaves existing rows
// with the old text. That looseness is inherited from the schema and kept.
type Skill struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	ImageURL    string    `json:"image_url"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	UserID      string    `json:"user_id"`
}

// SkillInsert is the insert shape for skills. UserID must be the
// authenticated actor's id; the backend's row rules reject anything else.
type SkillInsert struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	ImageURL    string  `json:"image_url"`
	Category    string  `json:"category"`
	UserID      string  `json:"user_id"`
}

// SkillUpdate is the partial-update shape for skills.
type SkillUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	Category    *string `json:"category,omitempty"`
}

// Category is read-only reference data for the post form.
type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// CategoryInsert and CategoryUpdate exist so the categories table binds to
// the same generic access layer; the client itself never mutates categories.
type CategoryInsert struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type CategoryUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Ptr returns a pointer to v. Convenience for building optional fields of
// insert and update shapes.
func Ptr[T any](v T) *T {
	return &v
}
