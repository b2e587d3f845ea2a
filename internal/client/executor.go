package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
	"github.com/valyala/fastjson"

	"ucs/internal/filter"
	"ucs/pkg/logging"
)

const (
	statusSuccess      = "F"
	statusFailedResult = "FE"
	statusError        = "E"

	proxyRetryMessage = "Could not connect to server. Retrying by bypassing proxy env variables...\n"
)

// Executor sends one query and returns the server's return code and payload.
type Executor interface {
	Send(ctx context.Context, method, path string, fragments []string, timeout time.Duration) (int, string, error)
}

// Options configures an HTTPExecutor.
type Options struct {
	// BaseURL is the server root, e.g. "http://localhost:4567/".
	BaseURL string
	Logger  *logging.Logger
	// Stderr receives the proxy retry notice. Nil discards it.
	Stderr io.Writer
	// Transport overrides the proxied transport, for tests.
	Transport http.RoundTripper
	// DirectTransport overrides the proxy bypassing transport, for tests.
	DirectTransport http.RoundTripper
}

// HTTPExecutor is the Executor backed by the REST server.
type HTTPExecutor struct {
	baseURL string
	proxied *http.Client
	direct  *http.Client
	logger  *logging.Logger
	stderr  io.Writer
}

// NewHTTPExecutor creates an HTTPExecutor.
func NewHTTPExecutor(opts Options) *HTTPExecutor {
	proxied := opts.Transport
	if proxied == nil {
		t := http.DefaultTransport.(*http.Transport).Clone()
		t.Proxy = http.ProxyFromEnvironment
		proxied = t
	}
	direct := opts.DirectTransport
	if direct == nil {
		t := http.DefaultTransport.(*http.Transport).Clone()
		t.Proxy = nil
		direct = t
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = io.Discard
	}

	base := opts.BaseURL
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}

	return &HTTPExecutor{
		baseURL: base,
		proxied: &http.Client{Transport: proxied},
		direct:  &http.Client{Transport: direct},
		logger:  opts.Logger,
		stderr:  stderr,
	}
}

// BaseURL returns the server root requests are sent to.
func (e *HTTPExecutor) BaseURL() string {
	return e.baseURL
}

// Send implements Executor.
func (e *HTTPExecutor) Send(ctx context.Context, method, path string, fragments []string, timeout time.Duration) (int, string, error) {
	target := e.baseURL + strings.TrimLeft(path, "/")
	encoded := filter.EncodeFragments(fragments)

	var body string
	switch method {
	case http.MethodGet, http.MethodDelete:
		if encoded != "" {
			target += "?" + encoded
		}
	case http.MethodPut, http.MethodPost:
		body = encoded
	default:
		return 0, "", fmt.Errorf("unsupported method %s", method)
	}
	e.logger.Debug("HttpClient", "%s request to %s", method, target)

	status, payload, err := e.do(ctx, e.proxied, method, target, body, timeout)
	if err == nil && shouldBypassProxy(status) {
		fmt.Fprint(e.stderr, proxyRetryMessage)
		e.logger.Warn("HttpClient", "Got HTTP %d, retrying %s without proxy", status, target)
		status, payload, err = e.do(ctx, e.direct, method, target, body, timeout)
	}
	if err != nil {
		return 0, "", err
	}
	e.logger.Debug("HttpClient", "HTTP %d from %s", status, target)

	return unwrapResult(payload)
}

func shouldBypassProxy(status int) bool {
	ok := status >= 200 && status < 300
	return !ok && status != http.StatusBadRequest && status < 500
}

func (e *HTTPExecutor) do(ctx context.Context, c *http.Client, method, target, body string, timeout time.Duration) (int, string, error) {
	reqCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(reqCtx, method, target, reader)
	if err != nil {
		return 0, "", ClassifyTransportError(err, e.baseURL)
	}
	if reader != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("X-Request-ID", uuid.New().String())

	resp, err := c.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, "", ctxErr
		}
		return 0, "", ClassifyTransportError(err, e.baseURL)
	}
	defer resp.Body.Close()

	payload, err := readBody(resp)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, "", ctxErr
		}
		if isTimeoutError(err) {
			return 0, "", &TransportError{Endpoint: e.baseURL, Kind: TransportTimeout, Reason: err}
		}
		return 0, "", &TransportError{Endpoint: e.baseURL, Kind: TransportMalformed, Reason: err}
	}
	return resp.StatusCode, payload, nil
}

func readBody(resp *http.Response) (string, error) {
	var r io.Reader = resp.Body
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return "", fmt.Errorf("failed to decode gzip body: %w", err)
		}
		defer gz.Close()
		r = gz
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// unwrapResult maps the server's {"Status", "Result"} wrapper to a return
// code and payload.
func unwrapResult(payload string) (int, string, error) {
	v, err := fastjson.Parse(payload)
	if err != nil || v.Type() != fastjson.TypeObject || !v.Exists("Status") {
		return 0, "", &ServerError{Message: payload}
	}

	result := ""
	if rv := v.Get("Result"); rv != nil {
		if rv.Type() == fastjson.TypeString {
			result = string(rv.GetStringBytes())
		} else {
			result = rv.String()
		}
	}

	switch string(v.GetStringBytes("Status")) {
	case statusSuccess:
		return 0, result, nil
	case statusFailedResult:
		return 1, result, nil
	case statusError:
		return 0, "", &ServerError{Message: result}
	default:
		return 0, "", &ServerError{Message: payload}
	}
}

// IsInterrupted reports whether err is a cancellation of the caller's context.
func IsInterrupted(err error) bool {
	return errors.Is(err, context.Canceled)
}
