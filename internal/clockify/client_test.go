//nolint:bodyclose // Test file uses mock responses with NopCloser bodies
package clockify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingDoer implements HTTPDoer, remembering every request it saw.
type recordingDoer struct {
	response *http.Response
	err      error
	requests []*http.Request
	bodies   []string
}

func (m *recordingDoer) Do(req *http.Request) (*http.Response, error) {
	m.requests = append(m.requests, req)
	if req.Body != nil {
		data, _ := io.ReadAll(req.Body)
		m.bodies = append(m.bodies, string(data))
	} else {
		m.bodies = append(m.bodies, "")
	}
	return m.response, m.err
}

// mockResponse creates a mock HTTP response with the given status and body.
func mockResponse(statusCode int, body string) *http.Response {
	return &http.Response{
		StatusCode: statusCode,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}
}

func TestDo_MissingAPIKeyFailsBeforeNetwork(t *testing.T) {
	doer := &recordingDoer{response: mockResponse(http.StatusOK, `{}`)}
	client := New("", WithHTTPClient(doer))

	_, err := client.Get(context.Background(), "/workspaces", nil)
	require.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Empty(t, doer.requests, "no request should be sent without a key")
}

func TestDo_SetsHeaders(t *testing.T) {
	doer := &recordingDoer{response: mockResponse(http.StatusOK, `[]`)}
	client := New("secret-key", WithHTTPClient(doer))

	_, err := client.Post(context.Background(), "/workspaces/ws1/tags", map[string]string{"name": "billable"})
	require.NoError(t, err)
	require.Len(t, doer.requests, 1)

	req := doer.requests[0]
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "secret-key", req.Header.Get("X-Api-Key"))
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
	assert.NotEmpty(t, req.Header.Get("X-Request-Id"))
	assert.Equal(t, DefaultBaseURL+"/workspaces/ws1/tags", req.URL.String())
	assert.JSONEq(t, `{"name":"billable"}`, doer.bodies[0])
}

func TestDo_NoBodyNoContentType(t *testing.T) {
	doer := &recordingDoer{response: mockResponse(http.StatusOK, `[]`)}
	client := New("k", WithHTTPClient(doer))

	_, err := client.Get(context.Background(), "/workspaces", nil)
	require.NoError(t, err)
	assert.Empty(t, doer.requests[0].Header.Get("Content-Type"))
	assert.Empty(t, doer.bodies[0])
}

func TestDo_EncodesQuery(t *testing.T) {
	doer := &recordingDoer{response: mockResponse(http.StatusOK, `[]`)}
	client := New("k", WithHTTPClient(doer), WithBaseURL("https://example.test/api/v1/"))

	query := url.Values{}
	query.Set("name", "Acme Corp")
	query.Set("page-size", "50")
	_, err := client.Get(context.Background(), "workspaces/ws1/clients", query)
	require.NoError(t, err)

	got := doer.requests[0].URL
	assert.Equal(t, "example.test", got.Host)
	assert.Equal(t, "/api/v1/workspaces/ws1/clients", got.Path)
	assert.Equal(t, "Acme Corp", got.Query().Get("name"))
	assert.Equal(t, "50", got.Query().Get("page-size"))
}

func TestDo_NonSuccessStatus(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
	}{
		{name: "bad request", statusCode: http.StatusBadRequest, body: `{"message":"name is required","code":501}`},
		{name: "unauthorized", statusCode: http.StatusUnauthorized, body: `{"message":"Api key does not exist"}`},
		{name: "not found", statusCode: http.StatusNotFound, body: `{"message":"Project not found"}`},
		{name: "server error", statusCode: http.StatusInternalServerError, body: `oops`},
		{name: "redirect", statusCode: http.StatusMultipleChoices, body: ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := New("k", WithHTTPClient(&recordingDoer{response: mockResponse(tt.statusCode, tt.body)}))

			_, err := client.Delete(context.Background(), "/workspaces/ws1/projects/p1")
			require.Error(t, err)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.statusCode, apiErr.StatusCode)
			assert.Equal(t, tt.body, apiErr.Body)
			assert.Equal(t, http.MethodDelete, apiErr.Method)
			assert.Contains(t, err.Error(), "status "+strconv.Itoa(tt.statusCode))
		})
	}
}

func TestDo_AcceptsAll2xx(t *testing.T) {
	for _, code := range []int{http.StatusOK, http.StatusCreated, http.StatusNoContent} {
		client := New("k", WithHTTPClient(&recordingDoer{response: mockResponse(code, "")}))
		_, err := client.Delete(context.Background(), "/workspaces/ws1/tags/t1")
		assert.NoError(t, err, "status %d", code)
	}
}

func TestDo_LargeSuccessBodyIsComplete(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("[")
	for i := 0; buf.Len() <= 3*maxErrorBodySize/2; i++ {
		if i > 0 {
			buf.WriteString(",")
		}
		buf.WriteString(`{"id":"p` + strconv.Itoa(i) + `","name":"Project with a reasonably long name"}`)
	}
	buf.WriteString("]")
	want := buf.String()

	client := New("k", WithHTTPClient(&recordingDoer{response: mockResponse(http.StatusOK, want)}))
	got, err := client.Get(context.Background(), "/workspaces/ws1/projects", nil)
	require.NoError(t, err)
	assert.Len(t, got, len(want))
	assert.True(t, json.Valid(got), "large list should arrive as valid JSON")
}

func TestDo_ErrorBodyIsCapped(t *testing.T) {
	body := strings.Repeat("x", maxErrorBodySize+100)
	client := New("k", WithHTTPClient(&recordingDoer{response: mockResponse(http.StatusBadGateway, body)}))

	_, err := client.Get(context.Background(), "/user", nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Len(t, apiErr.Body, maxErrorBodySize)
}

func TestDo_TransportError(t *testing.T) {
	client := New("k", WithHTTPClient(&recordingDoer{err: errors.New("connection refused")}))

	_, err := client.Get(context.Background(), "/user", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, 0, StatusCode(err))
}

func TestCurrentUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"id":               "u1",
			"name":             "Ada",
			"email":            "ada@example.com",
			"activeWorkspace":  "ws-active",
			"defaultWorkspace": "ws-default",
		})
	}))
	defer server.Close()

	client := New("k", WithBaseURL(server.URL))
	user, err := client.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "ws-active", user.Workspace())
}

func TestCurrentUser_MissingID(t *testing.T) {
	client := New("k", WithHTTPClient(&recordingDoer{response: mockResponse(http.StatusOK, `{"name":"x"}`)}))

	_, err := client.CurrentUser(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no id")
}

func TestWithAPIKey_DoesNotMutateOriginal(t *testing.T) {
	base := New("")
	bound := base.WithAPIKey("  abc  ")

	assert.False(t, base.HasAPIKey())
	assert.True(t, bound.HasAPIKey())
	assert.Equal(t, base.BaseURL(), bound.BaseURL())
}

func TestUserWorkspace_FallsBackToDefault(t *testing.T) {
	user := &User{ID: "u1", DefaultWorkspace: "ws-default"}
	assert.Equal(t, "ws-default", user.Workspace())
}

func TestStatusHelpers(t *testing.T) {
	notFound := &APIError{StatusCode: http.StatusNotFound}
	forbidden := &APIError{StatusCode: http.StatusForbidden}

	assert.True(t, IsNotFound(notFound))
	assert.False(t, IsNotFound(forbidden))
	assert.True(t, IsUnauthorized(forbidden))
	assert.False(t, IsUnauthorized(errors.New("plain")))
}
