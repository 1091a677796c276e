package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/zephyrtronium/rpn/internal/report"
)

func setupServerTest(t *testing.T) *Server {
	gin.SetMode(gin.TestMode)

	return NewServer(Options{
		Logger: zaptest.NewLogger(t).Sugar().Named("server"),
	})
}

func do(t *testing.T, server *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) report.Report {
	var r report.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &r), "body: %s", rec.Body.String())
	return r
}

func TestHealth(t *testing.T) {
	server := setupServerTest(t)

	rec := do(t, server, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, healthOK, rec.Body.String())
}

func TestEvalQuery(t *testing.T) {
	server := setupServerTest(t)

	cases := []struct {
		expr   string
		result string
	}{
		{"3 + 4 * 2", "11"},
		{"(3 + 4) * 2", "14"},
		{"10 - 2 - 3", "5"},
		{"8 / 4 / 2", "1"},
		{"5 / 0", "+Inf"},
	}

	for _, c := range cases {
		t.Run(c.expr, func(t *testing.T) {
			target := "/eval?expr=" + url.QueryEscape(c.expr)
			rec := do(t, server, httptest.NewRequest(http.MethodGet, target, nil))

			require.Equal(t, http.StatusOK, rec.Code)
			r := decode(t, rec)
			assert.Equal(t, c.expr, r.Input)
			assert.Equal(t, c.result, r.Result)
			assert.Empty(t, r.Error)
		})
	}
}

func TestEvalQueryInputError(t *testing.T) {
	server := setupServerTest(t)

	rec := do(t, server, httptest.NewRequest(http.MethodGet, "/eval?expr="+url.QueryEscape("3 ^ 2"), nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	r := decode(t, rec)
	assert.Equal(t, 3, r.Pos)
	assert.Contains(t, r.Error, "unexpected symbol")
}

func TestEvalQueryMissing(t *testing.T) {
	server := setupServerTest(t)

	rec := do(t, server, httptest.NewRequest(http.MethodGet, "/eval", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "expr")
}

func TestEvalBody(t *testing.T) {
	server := setupServerTest(t)

	req := httptest.NewRequest(http.MethodPost, "/eval", strings.NewReader(`{"expr": "(1 + 2) * 3"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := do(t, server, req)

	require.Equal(t, http.StatusOK, rec.Code)
	r := decode(t, rec)
	assert.Equal(t, "9", r.Result)
	assert.Len(t, r.Postfix, 5)
}

func TestEvalBodyUnmatched(t *testing.T) {
	server := setupServerTest(t)

	req := httptest.NewRequest(http.MethodPost, "/eval", strings.NewReader(`{"expr": "(1+2"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := do(t, server, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	r := decode(t, rec)
	assert.Equal(t, 1, r.Pos)
	assert.Len(t, r.Tokens, 4)
}

func TestEvalBodyInvalid(t *testing.T) {
	server := setupServerTest(t)

	for _, body := range []string{`{}`, `not json`} {
		req := httptest.NewRequest(http.MethodPost, "/eval", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := do(t, server, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)
		assert.Contains(t, rec.Body.String(), "invalid request")
	}
}

// getFreePort asks the kernel for a free open port that is ready to use.
func getFreePort() (int, error) {
	addr, err := net.ResolveTCPAddr("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}

	l, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}

func TestStartShutdown(t *testing.T) {
	gin.SetMode(gin.TestMode)

	port, err := getFreePort()
	require.NoError(t, err)

	server := NewServer(Options{
		Address: fmt.Sprintf("127.0.0.1:%d", port),
		Logger:  zaptest.NewLogger(t).Sugar(),
	})
	errs := server.Start()

	healthURL := fmt.Sprintf("http://127.0.0.1:%d/health", port)
	require.Eventually(t, func() bool {
		resp, err := http.Get(healthURL)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, server.Shutdown(ctx))

	assert.NoError(t, <-errs)
}
