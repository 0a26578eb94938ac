package enduser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chromedp/ngdp"
)

// testConfig is DefaultConfig without spinner settle delays.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.BaseURL = "http://enduser.test/"
	cfg.SpinnerSettle = time.Millisecond
	return cfg
}

func defaultCounts() map[string]int {
	return map[string]int{
		languages.Selector():    3,
		groupSchemas.Selector(): 1,
	}
}

func countCalls(calls []string, call string) int {
	n := 0
	for _, c := range calls {
		if c == call {
			n++
		}
	}
	return n
}

func indexOf(t *testing.T, calls []string, call string) int {
	t.Helper()
	for i, c := range calls {
		if c == call {
			return i
		}
	}
	t.Fatalf("missing call %q in:\n%s", call, strings.Join(calls, "\n"))
	return -1
}

func TestEditUserOrder(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	d := newFakeDriver(defaultCounts())
	require.NoError(t, ngdp.NewRunner(d, ngdp.WithLogf(t.Logf)).Run(context.Background(), EditUser(cfg)))

	calls := d.Calls()
	assert.Equal(t, "navigate http://enduser.test/", calls[0])

	next := fmt.Sprintf("click %s 0", ngdp.ByID("next").Selector())
	// credentials, groups, then four from the plain schemas to the captcha
	assert.Equal(t, 6, countCalls(calls, next))

	// the sequence of the wizard, as observed by the driver
	ordered := []string{
		fmt.Sprintf("send keys %s 0 %q", loginUsername.Selector(), "bellini"),
		fmt.Sprintf("send keys %s 0 %q", loginPassword.Selector(), "password"),
		"count " + languages.Selector(),
		fmt.Sprintf("click %s 1", languages.Selector()),
		fmt.Sprintf("click %s 0", loginButton.Selector()),
		fmt.Sprintf("wait present %s 0", wizardUsername.Selector()),
		fmt.Sprintf("clear %s 0", userUsername.Selector()),
		fmt.Sprintf("send keys %s 0 %q", userUsername.Selector(), "bellini"),
		fmt.Sprintf("send keys %s 0 %q", userPassword.Selector(), "Password123"),
		fmt.Sprintf("send keys %s 0 %q", confirmPassword.Selector(), "Password123"),
		fmt.Sprintf("click %s %d", securityQuestions.Selector(), ngdp.Last),
		fmt.Sprintf("send keys %s 0 %q", securityAnswer.Selector(), "Agata Ferlito"),
		fmt.Sprintf("click %s 0", selectedGroups.Selector()),
		fmt.Sprintf("send keys %s 0 %q", groupSearch.Selector(), "root"),
		fmt.Sprintf("click %s 0", groupChoices.Selector()),
		"wait not visible .loader",
		"count " + groupSchemas.Selector(),
		fmt.Sprintf("send keys %s 0 %q", fullName.Selector(), "Vincenzo Bellini"),
		fmt.Sprintf("send keys %s 0 %q", userID.Selector(), "bellini@apache.org"),
		fmt.Sprintf("send keys %s 0 %q", selectedDate.Selector(), "2009-06-21"),
		fmt.Sprintf("send keys %s 0 %q", firstName.Selector(), "Vincenzo"),
		fmt.Sprintf("send keys %s 0 %q", ctype.Selector(), "bellinictype"),
		fmt.Sprintf("click %s %d", ngdp.ByID("save").Selector(), ngdp.Last),
	}
	prev := -1
	for _, call := range ordered {
		i := indexOf(t, calls[prev+1:], call) + prev + 1
		prev = i
	}

	// the save is followed by a spinner wait
	assert.Equal(t, "wait not visible .loader", calls[len(calls)-1])
}

func TestEditUserSteps(t *testing.T) {
	t.Parallel()

	var names []string
	d := newFakeDriver(defaultCounts())
	r := ngdp.NewRunner(d, ngdp.WithLogf(t.Logf), ngdp.WithStepListener(func(ev ngdp.StepEvent) {
		if ev.Done {
			names = append(names, ev.Name)
		}
	}))
	require.NoError(t, r.Run(context.Background(), EditUser(testConfig())))

	want := []string{"home", "login"}
	for _, step := range WizardSteps {
		want = append(want, step.String())
	}
	assert.Equal(t, want, names)
}

func TestLanguageCountMismatch(t *testing.T) {
	t.Parallel()

	counts := defaultCounts()
	counts[languages.Selector()] = 2
	d := newFakeDriver(counts)
	err := ngdp.NewRunner(d, ngdp.WithLogf(t.Logf)).Run(context.Background(), EditUser(testConfig()))
	require.Error(t, err)

	var cerr *ngdp.CountError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, 3, cerr.Want)
	assert.Equal(t, 2, cerr.Got)
	assert.True(t, strings.HasPrefix(err.Error(), "login: "), "got %v", err)

	// no retry, nothing after the failed expectation
	for _, call := range d.Calls() {
		assert.NotEqual(t, fmt.Sprintf("click %s 0", loginButton.Selector()), call)
	}
}

func TestGroupSchemaMismatch(t *testing.T) {
	t.Parallel()

	counts := defaultCounts()
	counts[groupSchemas.Selector()] = 2
	d := newFakeDriver(counts)
	err := ngdp.NewRunner(d, ngdp.WithLogf(t.Logf)).Run(context.Background(), EditUser(testConfig()))
	assert.True(t, errors.Is(err, ngdp.ErrCountMismatch), "got %v", err)
	assert.True(t, strings.HasPrefix(err.Error(), "plainSchemas: "), "got %v", err)
}

func TestGroupChoiceNotFound(t *testing.T) {
	t.Parallel()

	d := newFakeDriver(defaultCounts())
	d.fail[fmt.Sprintf("click %s", groupChoices.Selector())] = fmt.Errorf("%v: %w", groupChoices.First(), ngdp.ErrNotFound)
	err := ngdp.NewRunner(d, ngdp.WithLogf(t.Logf)).Run(context.Background(), EditUser(testConfig()))
	assert.True(t, errors.Is(err, ngdp.ErrNotFound), "got %v", err)
	assert.True(t, strings.HasPrefix(err.Error(), "groups: "), "got %v", err)

	// the run stops at the failed click
	calls := d.Calls()
	assert.Equal(t, fmt.Sprintf("click %s 0", groupChoices.Selector()), calls[len(calls)-1])
	assert.Equal(t, 0, countCalls(calls, "count "+groupSchemas.Selector()))
}

func TestConfiguredSelectors(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Selectors = Selectors{Spinner: "#busy", Next: "forward", Save: "submit"}
	d := newFakeDriver(defaultCounts())
	require.NoError(t, ngdp.NewRunner(d, ngdp.WithLogf(t.Logf)).Run(context.Background(), EditUser(cfg)))

	calls := d.Calls()
	assert.Equal(t, 6, countCalls(calls, fmt.Sprintf("click %s 0", ngdp.ByID("forward").Selector())))
	indexOf(t, calls, fmt.Sprintf("click %s %d", ngdp.ByID("submit").Selector(), ngdp.Last))
	indexOf(t, calls, "wait not visible #busy")
}

func TestLoginOnly(t *testing.T) {
	t.Parallel()

	d := newFakeDriver(defaultCounts())
	require.NoError(t, ngdp.NewRunner(d, ngdp.WithLogf(t.Logf)).Run(context.Background(), LoginOnly(testConfig())))

	calls := d.Calls()
	assert.Equal(t, fmt.Sprintf("wait present %s 0", wizardUsername.Selector()), calls[len(calls)-1])
}
