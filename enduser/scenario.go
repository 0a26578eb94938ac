package enduser

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/chromedp/ngdp"
)

// ErrUnknownScenario is the error returned by Lookup for unknown names.
var ErrUnknownScenario = errors.New("unknown scenario")

// Scenario is a named sequence of actions against the enduser UI.
type Scenario struct {
	Name        string
	Description string
	Actions     func(Config) ngdp.Action
}

var scenarios = map[string]Scenario{}

func register(s Scenario) {
	if _, ok := scenarios[s.Name]; ok {
		panic(fmt.Sprintf("scenario %q registered twice", s.Name))
	}
	scenarios[s.Name] = s
}

func init() {
	register(Scenario{
		Name:        "edituser",
		Description: "log in, edit the user through the wizard and save it",
		Actions:     EditUser,
	})
	register(Scenario{
		Name:        "login",
		Description: "log in and wait for the user edit wizard",
		Actions:     LoginOnly,
	})
}

// Lookup returns the scenario registered as name.
func Lookup(name string) (Scenario, error) {
	s, ok := scenarios[name]
	if !ok {
		return Scenario{}, fmt.Errorf("%w %q", ErrUnknownScenario, name)
	}
	return s, nil
}

// Names returns the sorted names of the registered scenarios.
func Names() []string {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
