// Package enduser contains the scenarios driving the enduser web UI: login,
// then edit the logged in user through the user edit wizard and save it.
package enduser

import (
	"github.com/chromedp/ngdp"
)

// Locators of the enduser markup.
var (
	loginUsername = ngdp.ByModel("credentials.username")
	loginPassword = ngdp.ByModel("credentials.password")
	languages     = ngdp.ByOptions("language.name for language in languages.availableLanguages track by language.id")
	loginButton   = ngdp.ByID("login-btn")

	wizardUsername    = ngdp.ByID("user.username")
	userUsername      = ngdp.ByModel("user.username")
	userPassword      = ngdp.ByModel("user.password")
	confirmPassword   = ngdp.ByModel("confirmPassword.value")
	securityQuestion  = ngdp.ByModel("user.securityQuestion")
	securityQuestions = securityQuestion.Within(ngdp.ByOptions("securityQuestion.key as securityQuestion.content for securityQuestion in availableSecurityQuestions"))
	securityAnswer    = ngdp.ByModel("user.securityAnswer")

	selectedGroups = ngdp.ByModel("dynamicForm.selectedGroups")
	groupSearch    = selectedGroups.Within(ngdp.ByCSS(".ui-select-search"))
	groupChoices   = ngdp.ByCSS(".ui-select-choices-row-inner span")

	groupSchemas = ngdp.ByRepeater("groupSchema in dynamicForm.groupSchemas")
	fullName     = ngdp.ByName("fullname")
	userID       = ngdp.ByName("userId")
	selectedDate = ngdp.ByModel("selectedDate")
	firstName    = ngdp.ByName("firstname")
	ctype        = ngdp.ByName("ctype")
)

// GoHome navigates to the application home page.
func GoHome(cfg Config) ngdp.Action {
	return ngdp.Step("home", ngdp.Navigate(cfg.BaseURL))
}

// Login fills in the login form, checks the number of available languages,
// picks the configured one and logs in.
func Login(cfg Config) ngdp.Action {
	return ngdp.Step("login",
		ngdp.SendKeys(loginUsername, cfg.Username),
		ngdp.SendKeys(loginPassword, cfg.Password),
		ngdp.ExpectCount(languages, cfg.Languages),
		ngdp.Click(languages.Nth(cfg.Language)),
		ngdp.Click(loginButton),
	)
}

// WaitWizard waits for the user edit wizard to show up after login.
func WaitWizard() ngdp.Action {
	return ngdp.WaitPresent(wizardUsername)
}

// Next advances the wizard to its next step.
func Next(cfg Config) ngdp.Action {
	return ngdp.Click(ngdp.ByID(cfg.Selectors.Next))
}

// WaitSpinner waits for the loading indicator to go away.
func WaitSpinner(cfg Config) ngdp.Action {
	return ngdp.WaitSpinner(ngdp.ByCSS(cfg.Selectors.Spinner), cfg.SpinnerSettle)
}

// EditCredentials fills in the credentials step.
func EditCredentials(cfg Config) ngdp.Action {
	u := cfg.User
	return ngdp.Step(StepCredentials.String(),
		WaitWizard(),
		ngdp.ClearAndSendKeys(userUsername, u.Username),
		ngdp.ClearAndSendKeys(userPassword, u.Password),
		ngdp.SendKeys(confirmPassword, u.Password),
		ngdp.Click(securityQuestions.Nth(u.SecurityQuestion)),
		ngdp.SendKeys(securityAnswer, u.SecurityAnswer),
		Next(cfg),
	)
}

// SelectGroup searches the configured group and adds the first suggestion.
func SelectGroup(cfg Config) ngdp.Action {
	return ngdp.Step(StepGroups.String(),
		ngdp.Click(selectedGroups),
		ngdp.SendKeys(groupSearch, cfg.User.Group),
		ngdp.Click(groupChoices.First()),
		WaitSpinner(cfg),
		Next(cfg),
	)
}

// FillPlainSchemas checks the group schemas and fills in the plain
// attributes.
func FillPlainSchemas(cfg Config) ngdp.Action {
	u := cfg.User
	return ngdp.Step(StepPlainSchemas.String(),
		ngdp.ExpectCount(groupSchemas, cfg.GroupSchemas),
		ngdp.ClearAndSendKeys(fullName, u.FullName),
		ngdp.ClearAndSendKeys(userID, u.UserID),
		ngdp.ClearAndSendKeys(selectedDate, u.Date),
		ngdp.ClearAndSendKeys(firstName, u.FirstName),
		ngdp.ClearAndSendKeys(ctype, u.CType),
		Next(cfg),
	)
}

// Skip advances past a wizard step without changing anything.
func Skip(cfg Config, step WizardStep) ngdp.Action {
	return ngdp.Step(step.String(), Next(cfg))
}

// Save saves the user from the captcha step.
func Save(cfg Config) ngdp.Action {
	return ngdp.Step(StepCaptcha.String(),
		WaitSpinner(cfg),
		ngdp.Click(ngdp.ByID(cfg.Selectors.Save).Last()),
		WaitSpinner(cfg),
	)
}

// EditUser logs in and edits the user through every wizard step.
func EditUser(cfg Config) ngdp.Action {
	return ngdp.Tasks{
		GoHome(cfg),
		Login(cfg),
		EditCredentials(cfg),
		SelectGroup(cfg),
		FillPlainSchemas(cfg),
		Skip(cfg, StepDerSchemas),
		Skip(cfg, StepVirSchemas),
		Skip(cfg, StepResources),
		Save(cfg),
	}
}

// LoginOnly logs in and waits for the wizard.
func LoginOnly(cfg Config) ngdp.Action {
	return ngdp.Tasks{
		GoHome(cfg),
		Login(cfg),
		ngdp.Step("wizard", WaitWizard()),
	}
}
