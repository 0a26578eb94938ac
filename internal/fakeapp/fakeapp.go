// Package fakeapp is an in-memory stand-in for the enduser web application.
//
// It serves the same markup the enduser scenarios locate (Angular model,
// options and repeater attributes, the ui-select group picker, the wizard
// buttons and the loading indicator) backed by a small JSON API, and records
// every saved user.
package fakeapp

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

//go:embed static templates
var assets embed.FS

// SessionCookie is the name of the session cookie set on login.
const SessionCookie = "ngdp_session"

// User is an enduser account.
type User struct {
	Username         string            `json:"username"`
	Password         string            `json:"password,omitempty"`
	SecurityQuestion string            `json:"securityQuestion,omitempty"`
	SecurityAnswer   string            `json:"securityAnswer,omitempty"`
	Groups           []string          `json:"groups"`
	PlainAttrs       map[string]string `json:"plainAttrs"`
}

// clone returns a deep copy of u.
func (u User) clone() User {
	c := u
	c.Groups = append([]string(nil), u.Groups...)
	c.PlainAttrs = make(map[string]string, len(u.PlainAttrs))
	for k, v := range u.PlainAttrs {
		c.PlainAttrs[k] = v
	}
	return c
}

// Language is a selectable display language.
type Language struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SecurityQuestion is a selectable security question.
type SecurityQuestion struct {
	Key     string `json:"key"`
	Content string `json:"content"`
}

// DefaultLanguages are the languages offered on the login page.
var DefaultLanguages = []Language{
	{ID: "en", Name: "English"},
	{ID: "it", Name: "Italiano"},
	{ID: "ja", Name: "日本語"},
}

// DefaultSecurityQuestions are the security questions offered by the
// credentials step.
var DefaultSecurityQuestions = []SecurityQuestion{
	{Key: "mother-maiden-name", Content: "What's your mother's maiden name?"},
	{Key: "first-pet", Content: "What was the name of your first pet?"},
	{Key: "birth-city", Content: "In which city were you born?"},
}

// DefaultGroups maps the known groups to the plain schemas they add to their
// members.
var DefaultGroups = map[string][]string{
	"root":        nil,
	"child":       nil,
	"citizen":     nil,
	"employee":    {"badge"},
	"artDirector": {"portfolio"},
	"additional":  {"postalAddress", "cool"},
}

// DefaultUsers are the accounts known to a new server.
var DefaultUsers = []User{{
	Username: "bellini",
	Password: "password",
	PlainAttrs: map[string]string{
		"fullname":  "Vincenzo Bellini",
		"userId":    "bellini@apache.org",
		"loginDate": "2009-06-24",
		"firstname": "Vincenzo",
		"ctype":     "G",
	},
}}

// Server is the fake enduser application.
type Server struct {
	engine *gin.Engine

	title     string
	latency   time.Duration
	languages []Language
	questions []SecurityQuestion
	groups    map[string][]string

	mu       sync.Mutex
	users    map[string]User
	sessions map[string]string
	saved    []User

	logf func(string, ...interface{})
}

// Option is a server option.
type Option func(*Server)

// WithLatency is a server option to delay every API response by d, so that
// the page's loading indicator stays up long enough to be observed.
func WithLatency(d time.Duration) Option {
	return func(s *Server) {
		s.latency = d
	}
}

// WithUser is a server option to add or replace an account.
func WithUser(u User) Option {
	return func(s *Server) {
		s.users[u.Username] = u.clone()
	}
}

// WithLanguages is a server option to set the languages offered on the login
// page.
func WithLanguages(langs ...Language) Option {
	return func(s *Server) {
		s.languages = langs
	}
}

// WithTitle is a server option to set the page title.
func WithTitle(title string) Option {
	return func(s *Server) {
		s.title = title
	}
}

// WithLogf is a server option to log every request.
func WithLogf(f func(string, ...interface{})) Option {
	return func(s *Server) {
		s.logf = f
	}
}

// New creates a fake enduser application.
func New(opts ...Option) *Server {
	s := &Server{
		title:     "Enduser",
		languages: DefaultLanguages,
		questions: DefaultSecurityQuestions,
		groups:    DefaultGroups,
		users:     make(map[string]User),
		sessions:  make(map[string]string),
	}
	for _, u := range DefaultUsers {
		s.users[u.Username] = u.clone()
	}
	for _, o := range opts {
		o(s)
	}

	e := gin.New()
	e.Use(gin.Recovery())
	if s.logf != nil {
		e.Use(s.logRequests)
	}
	e.SetHTMLTemplate(template.Must(template.New("").ParseFS(assets, "templates/*.html")))
	static, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	e.StaticFS("/static", http.FS(static))
	e.GET("/", s.index)

	api := e.Group("/api", s.delay)
	api.POST("/login", s.login)
	api.GET("/securityQuestions", s.securityQuestions)
	api.GET("/groups", s.searchGroups)
	api.GET("/groups/:name/schemas", s.groupSchemas)
	api.GET("/captcha", s.captcha)
	api.GET("/self", s.requireSession, s.self)
	api.POST("/self", s.requireSession, s.saveSelf)

	s.engine = e
	return s
}

// Handler returns the application's http.Handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Saved returns the users saved so far, in order.
func (s *Server) Saved() []User {
	s.mu.Lock()
	defer s.mu.Unlock()
	saved := make([]User, len(s.saved))
	for i, u := range s.saved {
		saved[i] = u.clone()
	}
	return saved
}

// User returns the account named username.
func (s *Server) User(username string) (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[username]
	if !ok {
		return User{}, false
	}
	return u.clone(), true
}

func (s *Server) logRequests(c *gin.Context) {
	start := time.Now()
	c.Next()
	s.logf("%s %s %d %v", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
}

func (s *Server) delay(c *gin.Context) {
	if s.latency <= 0 {
		return
	}
	t := time.NewTimer(s.latency)
	defer t.Stop()
	select {
	case <-t.C:
	case <-c.Request.Context().Done():
		c.AbortWithStatus(http.StatusServiceUnavailable)
	}
}

func (s *Server) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Title":     s.title,
		"Languages": s.languages,
	})
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Language string `json:"language"`
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Language != "" && !s.knownLanguage(req.Language) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown language " + req.Language})
		return
	}

	s.mu.Lock()
	u, ok := s.users[req.Username]
	if !ok || u.Password != req.Password {
		s.mu.Unlock()
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		return
	}
	id := uuid.NewString()
	s.sessions[id] = u.Username
	s.mu.Unlock()

	c.SetCookie(SessionCookie, id, 0, "/", "", false, true)
	c.JSON(http.StatusOK, public(u))
}

func (s *Server) knownLanguage(id string) bool {
	for _, l := range s.languages {
		if l.ID == id {
			return true
		}
	}
	return false
}

func (s *Server) securityQuestions(c *gin.Context) {
	c.JSON(http.StatusOK, s.questions)
}

func (s *Server) searchGroups(c *gin.Context) {
	q := strings.ToLower(c.Query("q"))
	names := []string{}
	for name := range s.groups {
		if strings.Contains(strings.ToLower(name), q) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	c.JSON(http.StatusOK, names)
}

func (s *Server) groupSchemas(c *gin.Context) {
	schemas, ok := s.groups[c.Param("name")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown group " + c.Param("name")})
		return
	}
	if schemas == nil {
		schemas = []string{}
	}
	c.JSON(http.StatusOK, schemas)
}

func (s *Server) captcha(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"enabled": false})
}

const usernameKey = "username"

func (s *Server) requireSession(c *gin.Context) {
	id, err := c.Cookie(SessionCookie)
	if err == nil {
		s.mu.Lock()
		username, ok := s.sessions[id]
		s.mu.Unlock()
		if ok {
			c.Set(usernameKey, username)
			return
		}
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
}

func (s *Server) self(c *gin.Context) {
	u, ok := s.User(c.GetString(usernameKey))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown user"})
		return
	}
	c.JSON(http.StatusOK, public(u))
}

func (s *Server) saveSelf(c *gin.Context) {
	var req User
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username is required"})
		return
	}
	for _, g := range req.Groups {
		if _, ok := s.groups[g]; !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown group " + g})
			return
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	current := c.GetString(usernameKey)
	u, ok := s.users[current]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown user"})
		return
	}
	if _, taken := s.users[req.Username]; taken && req.Username != current {
		c.JSON(http.StatusConflict, gin.H{"error": "username " + req.Username + " is taken"})
		return
	}

	u.Username = req.Username
	if req.Password != "" {
		u.Password = req.Password
	}
	u.SecurityQuestion = req.SecurityQuestion
	u.SecurityAnswer = req.SecurityAnswer
	u.Groups = req.Groups
	if u.PlainAttrs == nil {
		u.PlainAttrs = make(map[string]string)
	}
	for k, v := range req.PlainAttrs {
		u.PlainAttrs[k] = v
	}
	u = u.clone()

	delete(s.users, current)
	s.users[u.Username] = u
	for id, name := range s.sessions {
		if name == current {
			s.sessions[id] = u.Username
		}
	}
	s.saved = append(s.saved, u.clone())

	c.JSON(http.StatusOK, public(u))
}

// public strips the secrets from u.
func public(u User) User {
	p := u.clone()
	p.Password = ""
	p.SecurityAnswer = ""
	if p.Groups == nil {
		p.Groups = []string{}
	}
	return p
}
