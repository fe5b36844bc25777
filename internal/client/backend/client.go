package backend

import (
	"context"
	"encoding/json"
	"io"

	"github.com/skilllink/skilllink/internal/client/models"
)

// AuthAPI is the authentication surface of the project endpoint.
//
// GetSession returns (nil, nil) when no session exists; it never fabricates
// a session for an anonymous client.
type AuthAPI interface {
	SignUp(ctx context.Context, email, password string, metadata map[string]any) (*models.Session, *models.User, error)
	SignIn(ctx context.Context, email, password string) (*models.Session, error)
	SignOut(ctx context.Context) error
	GetSession(ctx context.Context) (*models.Session, error)
	GetUser(ctx context.Context) (*models.User, error)
	UpdateUser(ctx context.Context, update models.UserUpdate) (*models.User, error)
	ResetPassword(ctx context.Context, email string) error
}

// Filter is an equality predicate on one column. Equality and
// descending-time ordering are the only predicates this system needs.
type Filter struct {
	Column string
	Value  string
}

// Query describes column projection, equality filters, and ordering for a
// table operation. Zero value selects every column of every row.
type Query struct {
	Columns    []string
	Filters    []Filter
	OrderBy    string
	Descending bool
}

// TableAPI is the relational surface of the project endpoint. Rows travel
// as raw JSON; the typed table layer binds them to concrete schemas.
type TableAPI interface {
	Select(ctx context.Context, table string, q Query) ([]json.RawMessage, error)
	Insert(ctx context.Context, table string, row any) ([]json.RawMessage, error)
	Update(ctx context.Context, table string, q Query, patch any) ([]json.RawMessage, error)
	Delete(ctx context.Context, table string, q Query) error
}

// UploadOptions carries blob metadata for a storage upload. With Overwrite
// unset, uploading to an existing key fails instead of replacing it.
type UploadOptions struct {
	ContentType string
	Overwrite   bool
}

// StorageAPI is the blob-storage surface of the project endpoint.
type StorageAPI interface {
	Upload(ctx context.Context, bucket, key string, body io.Reader, opts UploadOptions) error
	PublicURL(bucket, key string) string
}
