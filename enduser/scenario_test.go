package enduser

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"edituser", "login"}, Names())
}

func TestLookup(t *testing.T) {
	t.Parallel()

	s, err := Lookup("edituser")
	require.NoError(t, err)
	assert.Equal(t, "edituser", s.Name)
	assert.NotNil(t, s.Actions)

	_, err = Lookup("deleteuser")
	assert.True(t, errors.Is(err, ErrUnknownScenario))
}

func TestWizardStepNext(t *testing.T) {
	t.Parallel()

	tests := []struct {
		step WizardStep
		want WizardStep
		ok   bool
	}{
		{StepCredentials, StepGroups, true},
		{StepPlainSchemas, StepDerSchemas, true},
		{StepResources, StepCaptcha, true},
		{StepCaptcha, "", false},
		{"unknown", "", false},
	}
	for _, test := range tests {
		got, ok := test.step.Next()
		if got != test.want || ok != test.ok {
			t.Errorf("%s: want %q %t, got %q %t", test.step, test.want, test.ok, got, ok)
		}
	}
}

func TestWizardStepJSON(t *testing.T) {
	t.Parallel()

	var v struct {
		Step WizardStep `json:"step"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"step":"virSchemas"}`), &v))
	assert.Equal(t, StepVirSchemas, v.Step)

	buf, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"step":"virSchemas"}`, string(buf))

	assert.Error(t, json.Unmarshal([]byte(`{"step":"summary"}`), &v))
}
