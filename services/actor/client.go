package actor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"homeserve/metrics"

	"go.uber.org/zap"
)

// PrincipalHeader carries the caller principal to the actor.
const PrincipalHeader = "X-Caller-Principal"

// HTTPActor speaks the actor's JSON-over-HTTP RPC protocol.
type HTTPActor struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewHTTPActor builds a client for the actor at baseURL. A zero timeout leaves calls bounded by ctx only.
func NewHTTPActor(baseURL string, timeout time.Duration, logger *zap.Logger) *HTTPActor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPActor{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type envelope struct {
	OK    json.RawMessage `json:"ok"`
	Error string          `json:"error"`
}

// call posts args to /rpc/{method} and decodes the "ok" payload into out (which may be nil).
func (a *HTTPActor) call(ctx context.Context, method string, args any, out any) (err error) {
	start := time.Now()
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		metrics.ObserveActorCall(method, outcome, time.Since(start).Seconds())
	}()

	caller, ok := CallerFrom(ctx)
	if !ok {
		return ErrNoCaller
	}

	if args == nil {
		args = struct{}{}
	}
	body, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("%s: encode arguments: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/rpc/"+method, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s: build request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(PrincipalHeader, string(caller.Principal))
	if caller.Token != "" {
		req.Header.Set("Authorization", "Bearer "+caller.Token)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Warn("actor call failed", zap.String("method", method), zap.Error(err))
		return &CallError{Method: method, Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return &CallError{Method: method, Status: resp.StatusCode, Message: err.Error()}
	}

	var env envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil && resp.StatusCode < 300 {
			return &CallError{Method: method, Status: resp.StatusCode, Message: "malformed reply: " + err.Error()}
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := env.Error
		if msg == "" {
			msg = strings.TrimSpace(string(raw))
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		a.logger.Debug("actor rejected call",
			zap.String("method", method),
			zap.Int("status", resp.StatusCode),
			zap.String("message", msg))
		return &CallError{Method: method, Status: resp.StatusCode, Message: msg}
	}
	if env.Error != "" {
		return &CallError{Method: method, Status: resp.StatusCode, Message: env.Error}
	}

	if out == nil || len(env.OK) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.OK, out); err != nil {
		return &CallError{Method: method, Status: resp.StatusCode, Message: "decode reply: " + err.Error()}
	}
	return nil
}

// Ping checks that the actor answers HTTP at all.
func (a *HTTPActor) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode >= 500 {
		return fmt.Errorf("actor health: %s", resp.Status)
	}
	return nil
}
