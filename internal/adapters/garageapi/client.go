// Package garageapi is the HTTP client for the remote GarageOnWheels user
// API. It owns no policy: statuses come back as data for the caller to
// branch on, and only network-level failures surface as errors.
package garageapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/garageonwheels/gow-web/internal/domain/user"
	"gitlab.com/garageonwheels/gow-web/internal/domain/valueobject/role"
	"gitlab.com/garageonwheels/gow-web/pkg/errorx"
	"gitlab.com/garageonwheels/gow-web/pkg/logging"
)

var (
	tracer = otel.Tracer("gow-web/internal/adapters/garageapi")
	logger = otelslog.NewLogger("gow-web/internal/adapters/garageapi")
)

const defaultTimeout = 15 * time.Second

type Client struct {
	tracer  trace.Tracer
	logger  *slog.Logger
	baseURL string
	httpc   *http.Client
}

type Args struct {
	Tracer     trace.Tracer
	Logger     *slog.Logger
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

func NewClient(args Args) (*Client, error) {
	if args.BaseURL == "" {
		return nil, errors.New("garageapi: base URL is required")
	}
	if _, err := url.Parse(args.BaseURL); err != nil {
		return nil, fmt.Errorf("garageapi: invalid base URL: %w", err)
	}
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}
	if args.Timeout == 0 {
		args.Timeout = defaultTimeout
	}
	if args.HTTPClient == nil {
		args.HTTPClient = &http.Client{
			Timeout:   args.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	return &Client{
		tracer:  args.Tracer,
		logger:  args.Logger,
		baseURL: strings.TrimRight(args.BaseURL, "/") + "/",
		httpc:   args.HTTPClient,
	}, nil
}

// Response carries the raw outcome of a mutating call. Non-2xx statuses are
// not errors; the workflow layer branches on them.
type Response struct {
	StatusCode int
	Body       []byte
}

func (r Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// GetUser fetches one user by id. A 404 yields (nil, nil) so the caller can
// distinguish absence from failure.
func (c *Client) GetUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var u user.User
	found, err := c.getJSON(ctx, "user/"+id.String(), &u)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &u, nil
}

func (c *Client) AllUsers(ctx context.Context) ([]user.User, error) {
	return c.getUsers(ctx, "user/all")
}

func (c *Client) AllCustomers(ctx context.Context) ([]user.User, error) {
	return c.getUsers(ctx, "user/allCustomer")
}

func (c *Client) AllGarageOwners(ctx context.Context) ([]user.User, error) {
	return c.getUsers(ctx, "user/allgarageowner")
}

func (c *Client) UsersByRole(ctx context.Context, r role.Role) ([]user.User, error) {
	return c.getUsers(ctx, "user/by-role?role="+url.QueryEscape(r.String()))
}

func (c *Client) getUsers(ctx context.Context, path string) ([]user.User, error) {
	var users []user.User
	found, err := c.getJSON(ctx, path, &users)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return users, nil
}

// CreateUser submits a new user record. The caller branches on the status;
// 201 means created.
func (c *Client) CreateUser(ctx context.Context, u user.User) (Response, error) {
	return c.send(ctx, http.MethodPost, "user/create", u)
}

// UpdateUser replaces the record with the given id. 204 means updated.
func (c *Client) UpdateUser(ctx context.Context, id uuid.UUID, u user.User) (Response, error) {
	return c.send(ctx, http.MethodPut, "user/update/"+id.String(), u)
}

// DeleteUser removes the record with the given id. 204 means deleted.
func (c *Client) DeleteUser(ctx context.Context, id uuid.UUID) (Response, error) {
	return c.send(ctx, http.MethodDelete, "user/delete/"+id.String(), nil)
}

// EmailExists asks the remote API whether an account already uses the email.
func (c *Client) EmailExists(ctx context.Context, email string) (bool, error) {
	ctx, span := c.tracer.Start(ctx, "garageapi.EmailExists")
	defer span.End()

	resp, err := c.send(ctx, http.MethodGet, "user/search?email="+url.QueryEscape(email), nil)
	if err != nil {
		return false, err
	}
	if !resp.IsSuccess() {
		return false, errorx.NewUpstreamServiceError().
			WithCause(fmt.Errorf("email search returned status %d", resp.StatusCode))
	}

	var exists bool
	if err := json.Unmarshal(resp.Body, &exists); err != nil {
		return false, errorx.NewUpstreamServiceError().
			WithCause(fmt.Errorf("email search returned a non-boolean body: %w", err))
	}
	return exists, nil
}

// SendOTP triggers a one-time code email for the address.
func (c *Client) SendOTP(ctx context.Context, email string) error {
	ctx, span := c.tracer.Start(ctx, "garageapi.SendOTP")
	defer span.End()

	resp, err := c.send(ctx, http.MethodPost, "auth/send-otp?email="+url.QueryEscape(email), nil)
	if err != nil {
		return err
	}
	if !resp.IsSuccess() {
		return errorx.NewUpstreamServiceError().
			WithCause(fmt.Errorf("send otp returned status %d", resp.StatusCode))
	}

	c.logger.DebugContext(ctx, "otp sent", "email", logging.RedactEmail(email))
	return nil
}

// VerifyEmail submits the (email, otp) pair for verification.
func (c *Client) VerifyEmail(ctx context.Context, email, otp string) (Response, error) {
	path := fmt.Sprintf("auth/verify-email?email=%s&otp=%s", url.QueryEscape(email), url.QueryEscape(otp))
	return c.send(ctx, http.MethodPost, path, nil)
}

// ChangePassword forwards the password pair for the target user. A 400
// response body carries a human-readable reason.
func (c *Client) ChangePassword(ctx context.Context, id uuid.UUID, currentPassword, newPassword string) (Response, error) {
	body := map[string]string{
		"currentPassword": currentPassword,
		"newPassword":     newPassword,
	}
	return c.send(ctx, http.MethodPost, "user/change-password/"+id.String(), body)
}

// getJSON performs a GET and decodes a 200 body into v. A 404 reports
// found=false without error; other non-200 statuses are upstream errors.
func (c *Client) getJSON(ctx context.Context, path string, v any) (found bool, err error) {
	resp, err := c.send(ctx, http.MethodGet, path, nil)
	if err != nil {
		return false, err
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		if err := json.Unmarshal(resp.Body, v); err != nil {
			return false, errorx.NewUpstreamServiceError().
				WithCause(fmt.Errorf("decode %s response: %w", path, err))
		}
		return true, nil
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	default:
		return false, errorx.NewUpstreamServiceError().
			WithCause(fmt.Errorf("GET %s returned status %d", path, resp.StatusCode))
	}
}

func (c *Client) send(ctx context.Context, method, path string, body any) (Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return Response{}, fmt.Errorf("garageapi: encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return Response{}, fmt.Errorf("garageapi: build %s %s request: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return Response{}, errorx.NewUpstreamTimeout().WithCause(err)
		}
		return Response{}, errorx.NewUpstreamServiceError().WithCause(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return Response{}, errorx.NewUpstreamServiceError().
			WithCause(fmt.Errorf("read %s %s response: %w", method, path, err))
	}

	return Response{StatusCode: resp.StatusCode, Body: data}, nil
}
