package remotesync

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
	"time"

	"notefiber-editor/internal/dto"
	"notefiber-editor/internal/entity"
	"notefiber-editor/internal/mapper"
	"notefiber-editor/internal/pkg/apperror"
	"notefiber-editor/internal/pkg/logger"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
)

const (
	module         = "RemoteSync"
	defaultTimeout = 10 * time.Second
	maxErrorBody   = 4096
)

var tracer = otel.Tracer("notefiber-editor/pkg/remotesync")

// HTTPClient talks to the notes REST API (GET/POST/PUT under /notes).
type HTTPClient struct {
	baseURL string
	token   string
	client  *http.Client
	timeout time.Duration
	mapper  *mapper.NoteMapper
	logger  logger.ILogger
}

type Option func(*HTTPClient)

// WithToken sends Authorization: Bearer <token> on every request.
func WithToken(token string) Option {
	return func(c *HTTPClient) { c.token = token }
}

// WithTimeout bounds every request. It applies to a client passed with
// WithHTTPClient as well, in either order.
func WithTimeout(timeout time.Duration) Option {
	return func(c *HTTPClient) { c.timeout = timeout }
}

// WithHTTPClient replaces the underlying client. The caller's client is not
// modified.
func WithHTTPClient(client *http.Client) Option {
	return func(c *HTTPClient) { c.client = client }
}

func WithLogger(log logger.ILogger) Option {
	return func(c *HTTPClient) { c.logger = log }
}

func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: defaultTimeout},
		mapper:  mapper.NewNoteMapper(),
		logger:  logger.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		client := *c.client
		client.Timeout = c.timeout
		c.client = &client
	}
	return c
}

func (c *HTTPClient) Fetch(ctx context.Context, id string) (entity.StoredNote, error) {
	return c.do(ctx, "Fetch", http.MethodGet, "/notes/"+url.PathEscape(id), id, nil)
}

func (c *HTTPClient) Create(ctx context.Context, id string, note entity.Note) (entity.StoredNote, error) {
	return c.do(ctx, "Create", http.MethodPost, "/notes", id, c.mapper.ToCreateRequest(id, note))
}

func (c *HTTPClient) Update(ctx context.Context, id string, note entity.Note) (entity.StoredNote, error) {
	return c.do(ctx, "Update", http.MethodPut, "/notes/"+url.PathEscape(id), id, c.mapper.ToUpdateRequest(note))
}

func (c *HTTPClient) do(ctx context.Context, op, method, path, id string, body any) (entity.StoredNote, error) {
	ctx, span := tracer.Start(ctx, "remotesync."+op)
	defer span.End()
	span.SetAttributes(
		attribute.String("note.id", id),
		attribute.String("http.method", method),
	)

	stored, err := c.roundTrip(ctx, method, path, body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, apperror.MessageOf(err))
		c.logger.Warn(module, op+" failed", map[string]interface{}{
			"note_id": id,
			"kind":    string(apperror.KindOf(err)),
			"error":   err.Error(),
		})
		return entity.StoredNote{}, err
	}

	c.logger.Debug(module, op+" succeeded", map[string]interface{}{"note_id": stored.Id})
	return stored, nil
}

func (c *HTTPClient) roundTrip(ctx context.Context, method, path string, body any) (entity.StoredNote, error) {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return entity.StoredNote{}, apperror.Transport("failed to encode request", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return entity.StoredNote{}, apperror.Transport("failed to build request", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.client.Do(req)
	if err != nil {
		return entity.StoredNote{}, apperror.Transport("notes store unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return entity.StoredNote{}, statusError(resp)
	}

	var res dto.NoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return entity.StoredNote{}, apperror.Transport("undecodable response from notes store", err)
	}
	return *c.mapper.FromResponse(&res), nil
}

// statusError classifies a non-2xx answer, surfacing the store's message verbatim.
func statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	message := strings.TrimSpace(string(raw))
	var body dto.ErrorResponse
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		message = body.Message
	}
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return apperror.NotFound(message)
	case http.StatusBadRequest, http.StatusUnprocessableEntity, http.StatusConflict:
		return apperror.Validation(message)
	default:
		return apperror.Transport(message, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
}

// IsTimeout reports whether err came from a deadline rather than the store.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
