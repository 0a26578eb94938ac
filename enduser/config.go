package enduser

import (
	"time"

	"github.com/chromedp/ngdp"
)

// Selectors are the configurable parts of the markup contract.
type Selectors struct {
	// Spinner is the CSS selector of the loading indicator.
	Spinner string `mapstructure:"spinner"`
	// Next and Save are the ids of the wizard navigation buttons.
	Next string `mapstructure:"next"`
	Save string `mapstructure:"save"`
}

// User is the data entered in the user edit wizard.
type User struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`

	// SecurityQuestion is the position of the picked security question,
	// or ngdp.Last.
	SecurityQuestion int    `mapstructure:"security_question"`
	SecurityAnswer   string `mapstructure:"security_answer"`

	// Group is typed in the group search; the first suggestion is picked.
	Group string `mapstructure:"group"`

	FullName  string `mapstructure:"fullname"`
	UserID    string `mapstructure:"user_id"`
	Date      string `mapstructure:"date"`
	FirstName string `mapstructure:"firstname"`
	CType     string `mapstructure:"ctype"`
}

// Config is the configuration of the enduser scenarios.
type Config struct {
	BaseURL  string `mapstructure:"base_url"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`

	// Language is the position of the language picked at login, among
	// exactly Languages.
	Language  int `mapstructure:"language"`
	Languages int `mapstructure:"languages"`

	// GroupSchemas is the number of group schema entries expected once the
	// group is added.
	GroupSchemas int `mapstructure:"group_schemas"`

	// SpinnerSettle is passed to ngdp.WaitSpinner.
	SpinnerSettle time.Duration `mapstructure:"spinner_settle"`

	User      User      `mapstructure:"user"`
	Selectors Selectors `mapstructure:"selectors"`
}

// DefaultConfig returns the configuration editing the bellini user of a
// local enduser application.
func DefaultConfig() Config {
	return Config{
		BaseURL:       "http://localhost:9080/syncope-enduser/",
		Username:      "bellini",
		Password:      "password",
		Language:      1,
		Languages:     3,
		GroupSchemas:  1,
		SpinnerSettle: ngdp.DefaultSpinnerSettle,
		User: User{
			Username:         "bellini",
			Password:         "Password123",
			SecurityQuestion: ngdp.Last,
			SecurityAnswer:   "Agata Ferlito",
			Group:            "root",
			FullName:         "Vincenzo Bellini",
			UserID:           "bellini@apache.org",
			Date:             "2009-06-21",
			FirstName:        "Vincenzo",
			CType:            "bellinictype",
		},
		Selectors: Selectors{
			Spinner: ".loader",
			Next:    "next",
			Save:    "save",
		},
	}
}
