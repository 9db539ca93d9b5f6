package backend

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medisupply.com/portal/internal/shared/apperr"
)

type item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestGetAttachesBearerToken(t *testing.T) {
	var gotAuth, gotRID, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRID = r.Header.Get("X-Request-ID")
		gotQuery = r.URL.RawQuery
		_, _ = io.WriteString(w, `[{"id":"1","name":"Gauze"}]`)
	}))
	defer srv.Close()

	c := New(Config{Service: "products", BaseURL: srv.URL + "/"})
	ctx := WithRequestID(WithAccessToken(context.Background(), "tok-123"), "rid-1")

	var out []item
	err := c.Get(ctx, "/search", url.Values{"q": {"gauze"}}, &out)
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "rid-1", gotRID)
	assert.Equal(t, "q=gauze", gotQuery)
	assert.Equal(t, []item{{ID: "1", Name: "Gauze"}}, out)
}

func TestRequestWithoutTokenIsUnchanged(t *testing.T) {
	var hasAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasAuth = r.Header["Authorization"]
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(Config{Service: "clients", BaseURL: srv.URL})
	require.NoError(t, c.Get(context.Background(), "/", nil, nil))
	assert.False(t, hasAuth)
}

func TestNon2xxBecomesStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(Config{Service: "orders-test", BaseURL: srv.URL})
	err := c.Post(context.Background(), "/orders/", map[string]string{"a": "b"}, nil)
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadGateway, se.Status)
	assert.Equal(t, "boom", se.Body)
	assert.True(t, IsStatus(err, http.StatusBadGateway))
	assert.Equal(t, 1.0, testutil.ToFloat64(requestsTotal.WithLabelValues("orders-test", "5xx")))
}

func TestPatchSendsJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		b, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"status":"CANCELLED"}`, string(b))
		_, _ = io.WriteString(w, `{"id":"o1"}`)
	}))
	defer srv.Close()

	c := New(Config{Service: "orders", BaseURL: srv.URL})
	var out item
	require.NoError(t, c.Patch(context.Background(), "/orders/o1/status", map[string]string{"status": "CANCELLED"}, &out))
	assert.Equal(t, "o1", out.ID)
}

func TestUploadSendsMultipartFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f, hdr, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			return
		}
		defer f.Close()
		b, _ := io.ReadAll(f)
		assert.Equal(t, "products.csv", hdr.Filename)
		assert.Equal(t, "sku,name\n", string(b))
		_, _ = io.WriteString(w, `{"created":1}`)
	}))
	defer srv.Close()

	c := New(Config{Service: "products", BaseURL: srv.URL})
	var out map[string]int
	require.NoError(t, c.Upload(context.Background(), "/bulk", "file", "products.csv", strings.NewReader("sku,name\n"), &out))
	assert.Equal(t, 1, out["created"])
}

func TestGetBytesReturnsContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = io.WriteString(w, "%PDF-1.4")
	}))
	defer srv.Close()

	c := New(Config{Service: "vendors", BaseURL: srv.URL})
	b, ct, err := c.GetBytes(context.Background(), "/reports/export/pdf", nil)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", ct)
	assert.Equal(t, "%PDF-1.4", string(b))
}

func TestOrReturnsFallbackOnError(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, []int{1}, Or(ctx, nil, "s", "op", []int{1}, nil, []int{}))
	assert.Equal(t, []int{}, Or(ctx, nil, "s", "op", []int(nil), errors.New("down"), []int{}))
}

func TestCommandErrorKinds(t *testing.T) {
	cases := map[int]apperr.Kind{
		http.StatusBadRequest:          apperr.Invalid,
		http.StatusUnprocessableEntity: apperr.Invalid,
		http.StatusNotFound:            apperr.NotFound,
		http.StatusConflict:            apperr.Conflict,
		http.StatusForbidden:           apperr.Forbidden,
		http.StatusInternalServerError: apperr.Unavailable,
	}
	for status, kind := range cases {
		err := CommandError("Could not save.", &StatusError{Status: status})
		assert.True(t, apperr.IsKind(err, kind), "status %d", status)
		assert.Equal(t, "Could not save.", apperr.PublicMessage(err))
	}

	err := CommandError("Could not save.", errors.New("dial tcp: refused"))
	assert.True(t, apperr.IsKind(err, apperr.Unavailable))
	assert.Nil(t, CommandError("x", nil))
}

func TestAnonymousClientNeverSendsToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
	}))
	defer srv.Close()

	c := New(Config{Service: "mapbox", BaseURL: srv.URL, Anonymous: true})
	_, _, err := c.GetBytes(WithAccessToken(context.Background(), "secret"), "/x.json", nil)
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}
