package backend

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/skilllink/skilllink/internal/client/models"
	"github.com/skilllink/skilllink/internal/common"
)

// sessionResponse is the token-grant payload returned by the auth surface.
// A sign-up that still needs email confirmation returns the user with no
// token material.
type sessionResponse struct {
	AccessToken  string       `json:"access_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int          `json:"expires_in"`
	RefreshToken string       `json:"refresh_token"`
	User         *models.User `json:"user"`
}

// adoptSession stores the token pair from a successful grant and returns
// the session view of it. Expiry comes from the token's own exp claim,
// falling back to expires_in when the token is not parseable.
func (c *RestClient) adoptSession(resp *sessionResponse) *models.Session {
	expiresAt := time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second)
	if _, exp, err := tokenClaims(resp.AccessToken); err == nil && !exp.IsZero() {
		expiresAt = exp
	}

	c.mu.Lock()
	c.accessToken = resp.AccessToken
	c.refreshToken = resp.RefreshToken
	c.expiresAt = expiresAt
	c.currentUser = resp.User
	c.mu.Unlock()

	return &models.Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		TokenType:    resp.TokenType,
		ExpiresAt:    expiresAt,
		User:         resp.User,
	}
}

// clearSession drops the token pair, returning the client to anonymous.
func (c *RestClient) clearSession() {
	c.mu.Lock()
	c.accessToken = ""
	c.refreshToken = ""
	c.expiresAt = time.Time{}
	c.currentUser = nil
	c.mu.Unlock()
}

// SignUp creates an account. Optional metadata is forwarded to the auth
// backend and lands in the user's metadata, not in any table row. When the
// project requires email confirmation the returned session is nil.
func (c *RestClient) SignUp(ctx context.Context, email, password string, metadata map[string]any) (*models.Session, *models.User, error) {
	body := map[string]any{"email": email, "password": password}
	if len(metadata) > 0 {
		body["data"] = metadata
	}

	var resp sessionResponse
	err := c.do(ctx, restRequest{
		method: http.MethodPost,
		path:   "/auth/v1/signup",
		body:   body,
	}, &resp)
	if err != nil {
		return nil, nil, err
	}

	if resp.AccessToken == "" {
		return nil, resp.User, nil
	}
	return c.adoptSession(&resp), resp.User, nil
}

// SignIn exchanges credentials for a session via the password grant.
func (c *RestClient) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	q := url.Values{}
	q.Set("grant_type", "password")

	var resp sessionResponse
	err := c.do(ctx, restRequest{
		method: http.MethodPost,
		path:   "/auth/v1/token",
		query:  q,
		body:   map[string]string{"email": email, "password": password},
	}, &resp)
	if err != nil {
		return nil, err
	}
	return c.adoptSession(&resp), nil
}

// refreshSession exchanges the refresh token for a new token pair.
func (c *RestClient) refreshSession(ctx context.Context) error {
	c.mu.Lock()
	refresh := c.refreshToken
	c.mu.Unlock()
	if refresh == "" {
		return &common.RemoteError{Message: "no refresh token", Class: common.ClassUnauthorized}
	}

	q := url.Values{}
	q.Set("grant_type", "refresh_token")

	var resp sessionResponse
	err := c.doOnce(ctx, restRequest{
		method: http.MethodPost,
		path:   "/auth/v1/token",
		query:  q,
		body:   map[string]string{"refresh_token": refresh},
	}, &resp)
	if err != nil {
		return err
	}

	c.adoptSession(&resp)
	c.log.Debug(ctx, "access token refreshed")
	return nil
}

// SignOut revokes the session on the backend and drops the local token
// pair. The tokens are kept on failure so the caller can retry.
func (c *RestClient) SignOut(ctx context.Context) error {
	err := c.do(ctx, restRequest{
		method: http.MethodPost,
		path:   "/auth/v1/logout",
		authed: true,
	}, nil)
	if err != nil {
		return err
	}
	c.clearSession()
	return nil
}

// GetSession returns the current session, refreshing an expired access
// token first. (nil, nil) means anonymous. A failed refresh clears the
// token pair: expiry without a usable refresh token ends the session.
func (c *RestClient) GetSession(ctx context.Context) (*models.Session, error) {
	c.mu.Lock()
	if c.accessToken == "" {
		c.mu.Unlock()
		return nil, nil
	}
	expired := !c.expiresAt.IsZero() && !time.Now().Before(c.expiresAt)
	session := &models.Session{
		AccessToken:  c.accessToken,
		RefreshToken: c.refreshToken,
		TokenType:    "bearer",
		ExpiresAt:    c.expiresAt,
		User:         c.currentUser,
	}
	c.mu.Unlock()

	if !expired {
		return session, nil
	}

	if err := c.refreshSession(ctx); err != nil {
		c.clearSession()
		return nil, err
	}

	c.mu.Lock()
	session = &models.Session{
		AccessToken:  c.accessToken,
		RefreshToken: c.refreshToken,
		TokenType:    "bearer",
		ExpiresAt:    c.expiresAt,
		User:         c.currentUser,
	}
	c.mu.Unlock()
	return session, nil
}

// GetUser fetches the authenticated user from the auth surface.
func (c *RestClient) GetUser(ctx context.Context) (*models.User, error) {
	var user models.User
	err := c.do(ctx, restRequest{
		method: http.MethodGet,
		path:   "/auth/v1/user",
		authed: true,
	}, &user)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.currentUser = &user
	c.mu.Unlock()
	return &user, nil
}

// UpdateUser applies a partial update to the authenticated user's auth
// record (email, password, metadata).
func (c *RestClient) UpdateUser(ctx context.Context, update models.UserUpdate) (*models.User, error) {
	var user models.User
	err := c.do(ctx, restRequest{
		method: http.MethodPut,
		path:   "/auth/v1/user",
		body:   update,
		authed: true,
	}, &user)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.currentUser = &user
	c.mu.Unlock()
	return &user, nil
}

// ResetPassword asks the backend to send a recovery email. It does not
// touch the current session.
func (c *RestClient) ResetPassword(ctx context.Context, email string) error {
	return c.do(ctx, restRequest{
		method: http.MethodPost,
		path:   "/auth/v1/recover",
		body:   map[string]string{"email": email},
	}, nil)
}
