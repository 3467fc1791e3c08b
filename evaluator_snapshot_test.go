package exprsafe

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

func TestProcessTemplateSnapshot(t *testing.T) {
	ev := testEvaluator(t)
	ev.RegisterVariablesMerge(map[string]Scalar{"name": "Sergei", "age": 45.0})

	rendered := ev.ProcessTemplate("Hello {name}! In five years you'll be {age + 5}.", 0)
	snaps.MatchSnapshot(t, "greeting_template", rendered)
}

func TestProcessTemplateErrorSubstitutionSnapshot(t *testing.T) {
	ev := testEvaluator(t)

	rendered := ev.ProcessTemplate("Result: {undefinedName + 1}", 0)
	snaps.MatchSnapshot(t, "unknown_name_template", rendered)
}
