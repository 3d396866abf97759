package commerce

import (
	"StreamBot/internal/config"
	"StreamBot/internal/lib/sl"
	"StreamBot/internal/metrics"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	defaultTimeout     = 10 * time.Second
	defaultOrdersLimit = 5
	maxResponseBody    = 1 << 20
)

type Service struct {
	baseURL     string
	apiKey      string
	timeout     time.Duration
	ordersLimit int
	client      *http.Client
	validate    *validator.Validate
	log         *slog.Logger
}

func NewCommerceService(conf *config.Config, logger *slog.Logger) *Service {
	timeout := conf.Commerce.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	limit := conf.Commerce.OrdersLimit
	if limit <= 0 {
		limit = defaultOrdersLimit
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterCustomTypeFunc(func(v reflect.Value) interface{} {
		if d, ok := v.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	return &Service{
		baseURL:     strings.TrimRight(conf.Commerce.BaseURL, "/"),
		apiKey:      conf.Commerce.ApiKey,
		timeout:     timeout,
		ordersLimit: limit,
		client:      &http.Client{},
		validate:    validate,
		log:         logger.With(sl.Module("commerce")),
	}
}

// do performs one API exchange and maps every outcome onto nil, *Rejection or *Failure.
func (s *Service) do(ctx context.Context, op, method, path string, query url.Values, payload, out any) error {
	start := time.Now()
	requestID := uuid.NewString()

	err := s.exchange(ctx, op, method, path, query, payload, out, requestID)

	metrics.CommerceLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
	log := s.log.With(
		slog.String("op", op),
		slog.String("request_id", requestID),
		slog.Duration("duration", time.Since(start)),
	)
	if rej, ok := AsRejection(err); ok {
		metrics.CommerceRequests.WithLabelValues(op, metrics.OutcomeRejected).Inc()
		log.With(
			slog.Int("status", rej.Status),
			slog.String("detail", rej.Detail),
		).Debug("request rejected")
		return err
	}
	if err != nil {
		metrics.CommerceRequests.WithLabelValues(op, metrics.OutcomeFailed).Inc()
		log.With(sl.Err(err)).Warn("request failed")
		return err
	}
	metrics.CommerceRequests.WithLabelValues(op, metrics.OutcomeOK).Inc()
	log.Debug("request completed")
	return nil
}

func (s *Service) exchange(ctx context.Context, op, method, path string, query url.Values, payload, out any, requestID string) error {
	var body io.Reader
	if payload != nil {
		if err := s.validate.Struct(payload); err != nil {
			return &Failure{Op: op, Kind: FailureInvalid, Err: err}
		}
		data, err := json.Marshal(payload)
		if err != nil {
			return &Failure{Op: op, Kind: FailureInvalid, Err: fmt.Errorf("marshal request body: %w", err)}
		}
		body = bytes.NewReader(data)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	endpoint := s.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return &Failure{Op: op, Kind: FailureInvalid, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("X-API-Key", s.apiKey)
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return &Failure{Op: op, Kind: transportKind(err), Err: err}
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return &Failure{Op: op, Kind: transportKind(err), Status: resp.StatusCode, Err: fmt.Errorf("read response body: %w", err)}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err = json.Unmarshal(data, out); err != nil {
			return &Failure{Op: op, Kind: FailureDecode, Status: resp.StatusCode, Err: err}
		}
		return nil
	}

	return classify(op, resp.StatusCode, data)
}

func transportKind(err error) FailureKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return FailureTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return FailureTimeout
	}
	return FailureUnreachable
}

// classify turns a non-2xx answer into a Rejection when the API refused on business grounds.
func classify(op string, status int, body []byte) error {
	if status == http.StatusUnauthorized || status == http.StatusForbidden || status >= 500 || status < 400 {
		return &Failure{Op: op, Kind: FailureStatus, Status: status, Err: fmt.Errorf("%s", snippet(body))}
	}
	detail := parseDetail(body)
	if detail == "" {
		detail = http.StatusText(status)
	}
	return &Rejection{Op: op, Status: status, Detail: detail}
}

// parseDetail reads FastAPI's {"detail": ...}, which is a string or a list of {"msg": ...}.
func parseDetail(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(envelope.Detail, &text); err == nil {
		return text
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, "; ")
		}
	}

	return string(envelope.Detail)
}

func snippet(body []byte) string {
	const limit = 200
	s := strings.TrimSpace(string(body))
	if len(s) > limit {
		s = s[:limit] + "..."
	}
	if s == "" {
		s = "empty body"
	}
	return s
}
