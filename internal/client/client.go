// Package client talks to the wheel API on behalf of one participant. It
// implements session.Backend, so a session can run against a remote server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/osse101/LuckyWheel_Go/internal/domain"
	"github.com/osse101/LuckyWheel_Go/internal/handler"
	"github.com/osse101/LuckyWheel_Go/internal/logger"
	"github.com/osse101/LuckyWheel_Go/internal/session"
)

// APIError is a non-2xx answer. Message is the server's localized text and
// Unwrap yields the matching domain error when the code is known.
type APIError struct {
	Status  int
	Code    string
	Message string
	err     error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %d", ErrMsgUnexpectedStatus, e.Status)
}

func (e *APIError) Unwrap() error {
	return e.err
}

// Client handles communication with the wheel API
type Client struct {
	BaseURL  string
	APIKey   string
	Language string
	Client   *http.Client

	MaxRetries int
	RetryDelay time.Duration
}

var _ session.Backend = (*Client)(nil)

// New creates a new API client. apiKey is only needed for Authenticate.
func New(baseURL, apiKey string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout: DefaultTimeout,
		},
		MaxRetries: DefaultMaxRetries,
		RetryDelay: DefaultRetryDelay,
	}
}

// Authenticate exchanges a verified identity for a participant token. This
// is the trusted login front end's call and needs the API key.
func (c *Client) Authenticate(ctx context.Context, p domain.Participant) (session.Identity, error) {
	req := handler.CreateSessionRequest{Email: strings.TrimSpace(p.Key), Name: p.Name, AvatarURL: p.AvatarURL}
	var resp handler.SessionResponse
	if err := c.doJSON(ctx, http.MethodPost, PathSession, "", req, &resp, http.StatusCreated); err != nil {
		return session.Identity{}, err
	}
	p.Key = domain.NormalizeParticipantKey(p.Key)
	return session.Identity{Participant: p, Token: resp.Token, ExpiresAt: resp.ExpiresAt}, nil
}

// LoadWheel fetches the public wheel. Weights are not exposed, so prizes
// come back with zero weight and a stock of either 0 or unlimited; that is
// enough for slice layout and advisory gating.
func (c *Client) LoadWheel(ctx context.Context, id session.Identity, code string) (*domain.Wheel, error) {
	var view handler.WheelView
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf(PathWheel, url.PathEscape(code)), id.Token, nil, &view, http.StatusOK); err != nil {
		return nil, err
	}
	w := &domain.Wheel{
		Code:      view.Code,
		Title:     view.Title,
		HostName:  view.HostName,
		Paused:    view.Paused,
		StartTime: view.StartTime,
		EndTime:   view.EndTime,
		Prizes:    make([]domain.Prize, 0, len(view.Prizes)),
	}
	for _, p := range view.Prizes {
		w.Prizes = append(w.Prizes, prizeFromView(p))
	}
	return w, nil
}

// Eligibility asks whether the participant may draw now
func (c *Client) Eligibility(ctx context.Context, id session.Identity, code string) (*handler.EligibilityResponse, error) {
	var resp handler.EligibilityResponse
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf(PathEligibility, url.PathEscape(code)), id.Token, nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ResolveDraw performs the participant's draw. It is never retried here.
func (c *Client) ResolveDraw(ctx context.Context, id session.Identity, code string) (*domain.DrawResult, error) {
	var resp handler.DrawResponse
	if err := c.doJSON(ctx, http.MethodPost, fmt.Sprintf(PathDraw, url.PathEscape(code)), id.Token, nil, &resp, http.StatusCreated); err != nil {
		return nil, err
	}
	return &domain.DrawResult{
		Spin:       resp.Spin,
		Prize:      prizeFromView(resp.Prize),
		SliceIndex: resp.SliceIndex,
		SliceCount: resp.SliceCount,
	}, nil
}

// RecentWinners lists a wheel's latest winners. limit 0 takes the server
// default.
func (c *Client) RecentWinners(ctx context.Context, id session.Identity, code string, limit int) ([]handler.WinnerView, error) {
	path := fmt.Sprintf(PathWinners, url.PathEscape(code))
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var resp handler.WinnersResponse
	if err := c.doJSON(ctx, http.MethodGet, path, id.Token, nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return resp.Winners, nil
}

func (c *Client) ListPendingSpins(ctx context.Context, id session.Identity) ([]domain.SpinRecord, error) {
	var resp handler.PendingSpinsResponse
	if err := c.doJSON(ctx, http.MethodGet, PathPendingSpins, id.Token, nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return resp.Spins, nil
}

// SubmitProof uploads a proof image as multipart form data
func (c *Client) SubmitProof(ctx context.Context, id session.Identity, spinID uuid.UUID, proof io.Reader) (*domain.SpinRecord, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(handler.FormFieldProof, proofFileName)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgBuildUpload, err)
	}
	if _, err := io.Copy(fw, proof); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrUploadFailure, ErrMsgBuildUpload, err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgBuildUpload, err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, fmt.Sprintf(PathProof, spinID), id.Token, buf.Bytes(), mw.FormDataContentType())
	if err != nil {
		return nil, err
	}
	resp, err := c.doRequest(req, false)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var rec domain.SpinRecord
	if err := decode(resp, http.StatusOK, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *Client) doJSON(ctx context.Context, method, path, token string, in, out interface{}, want int) error {
	var body []byte
	if in != nil {
		var err error
		body, err = json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgMarshalBody, err)
		}
	}
	req, err := c.newRequest(ctx, method, path, token, body, ContentTypeJSON)
	if err != nil {
		return err
	}
	resp, err := c.doRequest(req, method == http.MethodGet)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return decode(resp, want, out)
}

func (c *Client) newRequest(ctx context.Context, method, path, token string, body []byte, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgCreateRequest, err)
	}
	// replayable for retries
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(body)), nil
	}
	if body != nil {
		req.Header.Set(HeaderContentType, contentType)
	}
	if token != "" {
		req.Header.Set(HeaderAuthorization, BearerPrefix+token)
	} else if c.APIKey != "" {
		req.Header.Set(HeaderAPIKey, c.APIKey)
	}
	if c.Language != "" {
		req.Header.Set(HeaderAcceptLanguage, c.Language)
	}
	return req, nil
}

// doRequest sends req. Idempotent requests are retried with exponential
// backoff on transport errors and 5xx answers; everything else gets one
// attempt. The last 5xx answer is returned as is so its body can be decoded.
// Transport failures come back as domain.ErrNetworkFailure.
func (c *Client) doRequest(req *http.Request, idempotent bool) (*http.Response, error) {
	ctx := req.Context()
	log := logger.FromContext(ctx)

	attempts := 1
	if idempotent {
		attempts += c.MaxRetries
	}

	attempt := 0
	operation := func() (*http.Response, error) {
		attempt++
		if attempt > 1 {
			body, err := req.GetBody()
			if err != nil {
				return nil, backoff.Permanent(err)
			}
			req.Body = body
		}

		resp, err := c.Client.Do(req)
		if err != nil {
			log.Warn(LogMsgRequestFailed, "error", err, "attempt", attempt)
			return nil, err
		}
		if resp.StatusCode >= http.StatusInternalServerError && attempt < attempts {
			resp.Body.Close()
			log.Warn(LogMsgServerError, "status", resp.StatusCode, "attempt", attempt)
			return nil, fmt.Errorf("%s: %d", ErrMsgUnexpectedStatus, resp.StatusCode)
		}
		return resp, nil
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = c.RetryDelay
	exp.Multiplier = 2
	exp.RandomizationFactor = 0
	exp.MaxElapsedTime = 0
	policy := backoff.WithContext(backoff.WithMaxRetries(exp, uint64(attempts-1)), ctx)

	resp, err := backoff.RetryNotifyWithData(operation, policy, func(err error, delay time.Duration) {
		log.Info(LogMsgRetrying, "attempt", attempt, "path", req.URL.Path, "delay", delay, "error", err)
	})
	if err == nil {
		return resp, nil
	}
	if attempts > 1 {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrNetworkFailure, ErrMsgMaxRetries, err)
	}
	return nil, fmt.Errorf("%w: %v", domain.ErrNetworkFailure, err)
}

// decode reads a want-status JSON body into out, or turns the answer into
// an *APIError.
func decode(resp *http.Response, want int, out interface{}) error {
	if resp.StatusCode != want {
		return apiError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgDecodeResponse, err)
	}
	return nil
}

func apiError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	var body handler.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Code = body.Code
		apiErr.Message = body.Error
	}

	switch {
	case apiErr.Code != "" && apiErr.Code != domain.ErrCodeInternal:
		apiErr.err = domain.ErrorFromCode(apiErr.Code)
	case resp.StatusCode == http.StatusUnauthorized:
		apiErr.err = domain.ErrUnauthorized
	case resp.StatusCode == http.StatusBadGateway,
		resp.StatusCode == http.StatusServiceUnavailable,
		resp.StatusCode == http.StatusGatewayTimeout:
		apiErr.err = domain.ErrNetworkFailure
	}
	if apiErr.err == nil && resp.StatusCode == http.StatusRequestEntityTooLarge {
		apiErr.err = domain.ErrInvalidInput
	}
	return apiErr
}

func prizeFromView(p handler.PrizeView) domain.Prize {
	stock := 0
	if p.Available {
		stock = domain.UnlimitedStock
	}
	return domain.Prize{ID: p.ID, Label: p.Label, Color: p.Color, Stock: stock}
}

// IsTransient reports whether err is worth retrying later
func IsTransient(err error) bool {
	return errors.Is(err, domain.ErrNetworkFailure) || errors.Is(err, domain.ErrUploadFailure)
}
