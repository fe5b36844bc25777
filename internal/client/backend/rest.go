package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/skilllink/skilllink/internal/client/models"
	"github.com/skilllink/skilllink/internal/common"
	"github.com/skilllink/skilllink/internal/logging"
)

// RestClient talks JSON over HTTP to one fixed project endpoint. It
// implements AuthAPI and TableAPI. The current token pair lives here, so a
// single RestClient carries at most one live session.
type RestClient struct {
	baseURL string
	anonKey string
	http    *http.Client
	log     logging.Logger

	mu           sync.Mutex
	accessToken  string
	refreshToken string
	expiresAt    time.Time
	currentUser  *models.User
}

// NewRestClient constructs a client bound to the given project URL and
// anonymous key. The timeout applies per request.
func NewRestClient(projectURL, anonKey string, timeout time.Duration, log logging.Logger) *RestClient {
	return &RestClient{
		baseURL: strings.TrimRight(projectURL, "/"),
		anonKey: anonKey,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// restRequest describes one HTTP call against the project endpoint.
type restRequest struct {
	method string
	path   string
	query  url.Values
	prefer string
	body   any
	authed bool
}

// errorBody covers the error payload shapes the auth and table surfaces
// return; whichever field is populated becomes the surfaced message.
type errorBody struct {
	Msg       string `json:"msg"`
	Message   string `json:"message"`
	ErrorDesc string `json:"error_description"`
	ErrorCode string `json:"error_code"`
}

func (e *errorBody) text() string {
	switch {
	case e.Msg != "":
		return e.Msg
	case e.Message != "":
		return e.Message
	case e.ErrorDesc != "":
		return e.ErrorDesc
	}
	return ""
}

// classify maps an HTTP status to an error class. Everything the caller
// could fix by re-authenticating is unauthorized; everything worth a retry
// is transient.
func classify(status int) common.ErrorClass {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return common.ClassUnauthorized
	case status == http.StatusRequestTimeout ||
		status == http.StatusTooManyRequests ||
		status >= http.StatusInternalServerError:
		return common.ClassTransient
	default:
		return common.ClassOther
	}
}

// do executes one request, decoding a JSON response into out when out is
// non-nil. On a 401 for an authed request it refreshes the access token once
// and retries, mirroring the usual expired-token interceptor pattern.
func (c *RestClient) do(ctx context.Context, r restRequest, out any) error {
	err := c.doOnce(ctx, r, out)
	if err == nil || !r.authed {
		return err
	}
	if !common.IsUnauthorized(err) {
		return err
	}

	c.mu.Lock()
	hasRefresh := c.refreshToken != ""
	c.mu.Unlock()
	if !hasRefresh {
		return err
	}

	if rerr := c.refreshSession(ctx); rerr != nil {
		return err
	}
	return c.doOnce(ctx, r, out)
}

func (c *RestClient) doOnce(ctx context.Context, r restRequest, out any) error {
	var body io.Reader
	if r.body != nil {
		data, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	u := c.baseURL + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u, body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+c.bearerToken())
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.prefer != "" {
		req.Header.Set("Prefer", r.prefer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return &common.RemoteError{Message: err.Error(), Class: common.ClassTransient}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var eb errorBody
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		msg := eb.text()
		if msg == "" {
			msg = resp.Status
		}
		return &common.RemoteError{Message: msg, Class: classify(resp.StatusCode)}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &common.RemoteError{Message: "malformed response: " + err.Error(), Class: common.ClassOther}
	}
	return nil
}

// bearerToken returns the access token when a session is live, falling back
// to the anonymous key the way the hosted backend expects.
func (c *RestClient) bearerToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.accessToken != "" {
		return c.accessToken
	}
	return c.anonKey
}

// tokenClaims extracts subject and expiry from an access token without
// verifying the signature; the signing secret never leaves the backend, so
// the client treats the claims as advisory only.
func tokenClaims(token string) (subject string, expiresAt time.Time, err error) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", time.Time{}, err
	}
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	return claims.Subject, expiresAt, nil
}
