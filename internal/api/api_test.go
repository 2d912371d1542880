package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homelists/homelists/internal/auth"
	"github.com/homelists/homelists/internal/store/sqlite"
)

const testBaseURL = "http://lists.test"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	st, err := sqlite.New(filepath.Join(t.TempDir(), "api_test.db"))
	require.NoError(t, err)

	tokens := auth.NewTokens("api-test-secret", time.Hour)
	srv := httptest.NewServer(NewRouter(st, tokens, testBaseURL))
	t.Cleanup(srv.Close)
	return srv
}

// doJSON issues a request with an optional bearer token and decodes the JSON
// body into out (when out is non-nil and the body is non-empty).
func doJSON(t *testing.T, method, url, token string, body interface{}, out interface{}) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(buf)
	}
	req, err := http.NewRequest(method, url, rd)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if out != nil && len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, out), "body: %s", raw)
	}
	return resp
}

func signup(t *testing.T, srv *httptest.Server, email string) string {
	t.Helper()
	var out struct {
		Token string `json:"token"`
	}
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/auth/signup", "",
		map[string]string{"email": email, "password": "hunter2-long"}, &out)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotEmpty(t, out.Token)
	return out.Token
}

func TestAuthFlow(t *testing.T) {
	srv := newTestServer(t)
	tok := signup(t, srv, "anna@example.com")

	var me struct {
		Email string `json:"email"`
	}
	resp := doJSON(t, http.MethodGet, srv.URL+"/api/auth/me", tok, nil, &me)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "anna@example.com", me.Email)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/auth/login", "",
		map[string]string{"email": "anna@example.com", "password": "wrong-password"}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/auth/login", "",
		map[string]string{"email": "anna@example.com", "password": "hunter2-long"}, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	srv := newTestServer(t)
	signup(t, srv, "anna@example.com")

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/auth/signup", "",
		map[string]string{"email": "ANNA@example.com", "password": "hunter2-long"}, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/lists", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/lists", "", map[string]interface{}{"name": "x"}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestListLifecycle(t *testing.T) {
	srv := newTestServer(t)
	tok := signup(t, srv, "anna@example.com")

	var created struct {
		ListID string `json:"listId"`
		Name   string `json:"name"`
	}
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/lists", tok,
		map[string]interface{}{"name": "Groceries"}, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotEmpty(t, created.ListID)

	// Duplicate name, case-insensitive.
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/lists", tok,
		map[string]interface{}{"name": "gROCERIES"}, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var ov struct {
		Personal []struct {
			ListID string `json:"listId"`
		} `json:"personal"`
	}
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/lists", tok, nil, &ov)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, ov.Personal, 1)
	assert.Equal(t, created.ListID, ov.Personal[0].ListID)

	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/lists/"+created.ListID, tok, nil, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/lists/"+created.ListID, tok, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPublicView(t *testing.T) {
	srv := newTestServer(t)
	tok := signup(t, srv, "anna@example.com")

	var created struct {
		ListID string `json:"listId"`
	}
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/lists", tok,
		map[string]interface{}{"name": "Party"}, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/lists/"+created.ListID+"/items", tok,
		map[string]string{"content": "cake"}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// A private list is not viewable, and the response is byte-identical to
	// the one for a list that does not exist at all.
	respPrivate := doJSON(t, http.MethodGet, srv.URL+"/api/view/"+created.ListID, "", nil, nil)
	respMissing := doJSON(t, http.MethodGet, srv.URL+"/api/view/does-not-exist", "", nil, nil)
	assert.Equal(t, http.StatusNotFound, respPrivate.StatusCode)
	assert.Equal(t, http.StatusNotFound, respMissing.StatusCode)

	var toggled struct {
		ShareURL string `json:"shareUrl"`
	}
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/lists/"+created.ListID+"/public", tok, nil, &toggled)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, testBaseURL+"/view/"+created.ListID, toggled.ShareURL)

	var view struct {
		Name  string `json:"name"`
		Items []struct {
			Content string `json:"content"`
		} `json:"items"`
	}
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/view/"+created.ListID, "", nil, &view)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Party", view.Name)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "cake", view.Items[0].Content)

	// Toggling back makes the view disappear again.
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/lists/"+created.ListID+"/public", tok, nil, &toggled)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, toggled.ShareURL)
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/view/"+created.ListID, "", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTemplateWorkflow(t *testing.T) {
	srv := newTestServer(t)
	tok := signup(t, srv, "anna@example.com")

	var created struct {
		ListID string `json:"listId"`
	}
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/lists", tok,
		map[string]interface{}{"name": "Weekly Shop"}, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	for _, content := range []string{"milk", "eggs"} {
		resp = doJSON(t, http.MethodPost, srv.URL+"/api/lists/"+created.ListID+"/items", tok,
			map[string]string{"content": content}, nil)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	var tpl struct {
		ListID     string `json:"listId"`
		Name       string `json:"name"`
		IsTemplate bool   `json:"isTemplate"`
	}
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/lists/"+created.ListID+"/template", tok, nil, &tpl)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Weekly Shop (T)", tpl.Name)
	assert.True(t, tpl.IsTemplate)

	// Saving again conflicts on the derived name.
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/lists/"+created.ListID+"/template", tok, nil, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var clone struct {
		ListID string `json:"listId"`
		Name   string `json:"name"`
	}
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/lists/"+tpl.ListID+"/use", tok,
		map[string]string{}, &clone)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Weekly Shop (T) (copy)", clone.Name)

	var items struct {
		Items []struct {
			ItemID  string `json:"itemId"`
			Content string `json:"content"`
			Checked bool   `json:"checked"`
		} `json:"items"`
	}
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/lists/"+clone.ListID+"/items", tok, nil, &items)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, items.Items, 2)
	for _, it := range items.Items {
		assert.False(t, it.Checked)
	}
}

func TestItemLifecycle(t *testing.T) {
	srv := newTestServer(t)
	tok := signup(t, srv, "anna@example.com")

	var created struct {
		ListID string `json:"listId"`
	}
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/lists", tok,
		map[string]interface{}{"name": "Chores"}, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Whitespace-only content is rejected.
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/lists/"+created.ListID+"/items", tok,
		map[string]string{"content": "   "}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var item struct {
		ItemID  string `json:"itemId"`
		Checked bool   `json:"checked"`
	}
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/lists/"+created.ListID+"/items", tok,
		map[string]string{"content": "vacuum"}, &item)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.False(t, item.Checked)

	itemURL := srv.URL + "/api/lists/" + created.ListID + "/items/" + item.ItemID
	resp = doJSON(t, http.MethodPatch, itemURL, tok, map[string]bool{"checked": true}, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	var items struct {
		Items []struct {
			Checked bool `json:"checked"`
		} `json:"items"`
	}
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/lists/"+created.ListID+"/items", tok, nil, &items)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, items.Items, 1)
	assert.True(t, items.Items[0].Checked)

	resp = doJSON(t, http.MethodDelete, itemURL, tok, nil, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = doJSON(t, http.MethodDelete, itemURL, tok, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteList_NonOwnerForbidden(t *testing.T) {
	srv := newTestServer(t)
	annaTok := signup(t, srv, "anna@example.com")
	benTok := signup(t, srv, "ben@example.com")

	var created struct {
		ListID string `json:"listId"`
	}
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/lists", annaTok,
		map[string]interface{}{"name": "Mine"}, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/lists/"+created.ListID, benTok, nil, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestSharedListVisibleToOthers(t *testing.T) {
	srv := newTestServer(t)
	annaTok := signup(t, srv, "anna@example.com")
	benTok := signup(t, srv, "ben@example.com")

	var created struct {
		ListID string `json:"listId"`
	}
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/lists", annaTok,
		map[string]interface{}{"name": "Household", "shared": true}, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var ov struct {
		Shared []struct {
			ListID string `json:"listId"`
		} `json:"shared"`
	}
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/lists", benTok, nil, &ov)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, ov.Shared, 1)
	assert.Equal(t, created.ListID, ov.Shared[0].ListID)
}
