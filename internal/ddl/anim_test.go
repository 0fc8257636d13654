package ddl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAnimChart(t *testing.T) {
	chart, err := ParseAnimChart("[#actions: [#Wait:[1,2,3], #suck, [4,5], 6, #Mystery:[7]], #paths: [ ]]")
	require.NoError(t, err)
	require.Equal(t, "actions", chart.ActionsKey)
	require.Equal(t, "paths", chart.PathsKey)
	require.Equal(t, []Action{
		Step{Name: "Wait", Kind: ActionWait, Actions: []Action{Frame(1), Frame(2), Frame(3)}},
		Step{Name: "suck", Kind: ActionSuck},
		Step{Actions: []Action{Frame(4), Frame(5)}},
		Frame(6),
		Step{Name: "Mystery", Kind: ActionUnknown, Actions: []Action{Frame(7)}},
	}, chart.Actions)
}

func TestParseAnimChartRejectsPaths(t *testing.T) {
	_, err := ParseAnimChart("[#actions: [1], #paths: [1]]")
	require.ErrorIs(t, err, ErrParse)
}

func TestActionKindNames(t *testing.T) {
	require.Equal(t, ActionWalkLeftStart, ActionKindOf("WalkLeftStart"))
	require.Equal(t, ActionUnknown, ActionKindOf("wait"))
	require.Equal(t, "buffa", ActionBuffa.String())
	require.Equal(t, "unknown", ActionUnknown.String())
}
