package enduser

import (
	"errors"

	"github.com/mailru/easyjson"
	"github.com/mailru/easyjson/jlexer"
	"github.com/mailru/easyjson/jwriter"
)

// WizardStep is a step of the user edit wizard.
type WizardStep string

// WizardStep values, in wizard order.
const (
	StepCredentials  WizardStep = "credentials"
	StepGroups       WizardStep = "groups"
	StepPlainSchemas WizardStep = "plainSchemas"
	StepDerSchemas   WizardStep = "derSchemas"
	StepVirSchemas   WizardStep = "virSchemas"
	StepResources    WizardStep = "resources"
	StepCaptcha      WizardStep = "captcha"
)

// WizardSteps are the wizard steps in order.
var WizardSteps = []WizardStep{
	StepCredentials,
	StepGroups,
	StepPlainSchemas,
	StepDerSchemas,
	StepVirSchemas,
	StepResources,
	StepCaptcha,
}

// String satisfies stringer.
func (s WizardStep) String() string {
	return string(s)
}

// Next returns the step following s, and false when s is the last step or
// not a wizard step.
func (s WizardStep) Next() (WizardStep, bool) {
	for i, step := range WizardSteps {
		if step == s && i+1 < len(WizardSteps) {
			return WizardSteps[i+1], true
		}
	}
	return "", false
}

// MarshalEasyJSON satisfies easyjson.Marshaler.
func (s WizardStep) MarshalEasyJSON(out *jwriter.Writer) {
	out.String(string(s))
}

// MarshalJSON satisfies json.Marshaler.
func (s WizardStep) MarshalJSON() ([]byte, error) {
	return easyjson.Marshal(s)
}

// UnmarshalEasyJSON satisfies easyjson.Unmarshaler.
func (s *WizardStep) UnmarshalEasyJSON(in *jlexer.Lexer) {
	v := WizardStep(in.String())
	for _, step := range WizardSteps {
		if v == step {
			*s = step
			return
		}
	}
	in.AddError(errors.New("unknown WizardStep"))
}

// UnmarshalJSON satisfies json.Unmarshaler.
func (s *WizardStep) UnmarshalJSON(buf []byte) error {
	return easyjson.Unmarshal(buf, s)
}
