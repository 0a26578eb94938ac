package fakeapp

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newClient(t *testing.T, s *Server) (*httptest.Server, *http.Client) {
	t.Helper()
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return ts, &http.Client{Jar: jar}
}

func doJSON(t *testing.T, c *http.Client, method, urlstr string, body, res interface{}) int {
	t.Helper()
	var r io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(buf)
	}
	req, err := http.NewRequest(method, urlstr, r)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if res != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(res))
	}
	return resp.StatusCode
}

func TestIndex(t *testing.T) {
	t.Parallel()

	ts, c := newClient(t, New(WithTitle("Test enduser")))
	resp, err := c.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	buf, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	page := string(buf)
	assert.Contains(t, page, "<title>Test enduser</title>")
	assert.Contains(t, page, `ng-model="credentials.username"`)
	assert.Equal(t, len(DefaultLanguages), strings.Count(page, "<option value="))

	resp, err = c.Get(ts.URL + "/static/app.js")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	ts, c := newClient(t, New())

	var res map[string]interface{}
	status := doJSON(t, c, "POST", ts.URL+"/api/login", loginRequest{Username: "bellini", Password: "wrong"}, &res)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "invalid username or password", res["error"])

	status = doJSON(t, c, "POST", ts.URL+"/api/login", loginRequest{Username: "bellini", Password: "password", Language: "xx"}, &res)
	assert.Equal(t, http.StatusBadRequest, status)

	var u User
	status = doJSON(t, c, "POST", ts.URL+"/api/login", loginRequest{Username: "bellini", Password: "password", Language: "it"}, &u)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "bellini", u.Username)
	assert.Empty(t, u.Password)
	assert.Equal(t, "Vincenzo Bellini", u.PlainAttrs["fullname"])

	status = doJSON(t, c, "GET", ts.URL+"/api/self", nil, &u)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "bellini", u.Username)
}

func TestSelfRequiresSession(t *testing.T) {
	t.Parallel()

	ts, c := newClient(t, New())
	status := doJSON(t, c, "POST", ts.URL+"/api/self", User{Username: "bellini"}, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestSearchGroups(t *testing.T) {
	t.Parallel()

	ts, c := newClient(t, New())
	tests := []struct {
		q    string
		want []string
	}{
		{"root", []string{"root"}},
		{"ROO", []string{"root"}},
		{"ad", []string{"additional"}},
		{"zzz", []string{}},
	}
	for _, test := range tests {
		var names []string
		status := doJSON(t, c, "GET", ts.URL+"/api/groups?q="+test.q, nil, &names)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, test.want, names, "query %q", test.q)
	}

	var schemas []string
	status := doJSON(t, c, "GET", ts.URL+"/api/groups/additional/schemas", nil, &schemas)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"postalAddress", "cool"}, schemas)

	status = doJSON(t, c, "GET", ts.URL+"/api/groups/nope/schemas", nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestSaveSelf(t *testing.T) {
	t.Parallel()

	s := New(WithUser(User{Username: "rossini", Password: "password"}))
	ts, c := newClient(t, s)

	status := doJSON(t, c, "POST", ts.URL+"/api/login", loginRequest{Username: "bellini", Password: "password"}, nil)
	require.Equal(t, http.StatusOK, status)

	// taken username
	status = doJSON(t, c, "POST", ts.URL+"/api/self", User{Username: "rossini"}, nil)
	assert.Equal(t, http.StatusConflict, status)

	// unknown group
	status = doJSON(t, c, "POST", ts.URL+"/api/self", User{Username: "bellini", Groups: []string{"nope"}}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	var u User
	status = doJSON(t, c, "POST", ts.URL+"/api/self", User{
		Username:         "bellini",
		Password:         "Password123",
		SecurityQuestion: "birth-city",
		SecurityAnswer:   "Agata Ferlito",
		Groups:           []string{"root"},
		PlainAttrs:       map[string]string{"ctype": "bellinictype"},
	}, &u)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"root"}, u.Groups)
	assert.Equal(t, "bellinictype", u.PlainAttrs["ctype"])
	assert.Equal(t, "Vincenzo Bellini", u.PlainAttrs["fullname"], "unsent attributes are kept")

	saved := s.Saved()
	require.Len(t, saved, 1)
	assert.Equal(t, "Password123", saved[0].Password)
	assert.Equal(t, "Agata Ferlito", saved[0].SecurityAnswer)

	// the new password is effective
	_, c2 := newClient(t, s)
	status = doJSON(t, c2, "POST", ts.URL+"/api/login", loginRequest{Username: "bellini", Password: "Password123"}, nil)
	assert.Equal(t, http.StatusOK, status)
}
