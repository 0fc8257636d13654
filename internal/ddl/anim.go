package ddl

import "strings"

// ActionKind is a named animation step.
type ActionKind uint8

const (
	ActionUnknown ActionKind = iota
	ActionStill
	ActionWait
	ActionRndHold
	ActionWaveFromCar
	ActionBuffa
	ActionTalk
	ActionSuck
	ActionYr
	ActionLookAround
	ActionScratch
	ActionScratchHead
	ActionTalkWait
	ActionTalkToMe
	ActionVink
	ActionSvag
	ActionSitt
	ActionFreeze
	ActionShrug
	ActionSleep
	ActionGetUp
	ActionWalkRight
	ActionWalkRightStart
	ActionWalkLeft
	ActionWalkLeftStart
	ActionGetDown
)

var actionKindNames = [...]string{
	"", "Still", "Wait", "RndHold", "WaveFromCar", "buffa", "Talk", "suck",
	"yr", "LookAround", "Scratch", "ScratchHead", "TalkWait", "TalkToMe",
	"Vink", "Svag", "Sitt", "freeze", "Shrug", "Sleep", "GetUp", "WalkRight",
	"WalkRightStart", "WalkLeft", "WalkLeftStart", "GetDown",
}

var actionKinds = func() map[string]ActionKind {
	m := make(map[string]ActionKind, len(actionKindNames))
	for i, name := range actionKindNames[1:] {
		m[name] = ActionKind(i + 1)
	}
	return m
}()

func (k ActionKind) String() string {
	if int(k) < len(actionKindNames) && k != ActionUnknown {
		return actionKindNames[k]
	}
	return "unknown"
}

// ActionKindOf maps a tag name to its kind. Names are case-sensitive.
func ActionKindOf(name string) ActionKind {
	return actionKinds[name]
}

// Action is one entry of an animation chart: a Frame or a Step.
type Action interface {
	isAction()
}

// Frame shows a single cast frame.
type Frame int32

// Step is a named or anonymous group of actions. Name is empty for an
// anonymous bracket list.
type Step struct {
	Name    string     `json:"name,omitempty"`
	Kind    ActionKind `json:"kind"`
	Actions []Action   `json:"actions,omitempty"`
}

func (Frame) isAction() {}
func (Step) isAction()  {}

// AnimChart is a parsed "*AnimChart" text member. Only the action list is
// decoded; the path list must be empty.
type AnimChart struct {
	ActionsKey string   `json:"actionsKey"`
	Actions    []Action `json:"actions"`
	PathsKey   string   `json:"pathsKey"`
}

// ParseAnimChart decodes [key: actions, key: [ ]].
func ParseAnimChart(text string) (*AnimChart, error) {
	s := newScanner(strings.TrimLeft(text, " \t\r\n"))
	chart := &AnimChart{}
	ok := s.fields(
		func() bool {
			k, ok := s.keyed()
			if !ok {
				return false
			}
			chart.ActionsKey = k
			chart.Actions, ok = s.actionList()
			return ok
		},
		func() bool {
			k, ok := s.keyed()
			if !ok {
				return false
			}
			chart.PathsKey = k
			return s.bracketed(func() bool {
				s.multispace()
				return true
			})
		},
	)
	if !ok {
		return nil, s.err()
	}
	return chart, nil
}

func (s *scanner) actionList() ([]Action, bool) {
	var out []Action
	ok := s.bracketed(func() bool {
		s.list(func() bool {
			a, ok := s.action()
			if ok {
				out = append(out, a)
			}
			return ok
		})
		return true
	})
	if !ok {
		return nil, false
	}
	return out, true
}

// action tries, in order: a frame number, an anonymous list, #tag: list,
// and a bare #tag.
func (s *scanner) action() (Action, bool) {
	if n, ok := s.int32(); ok {
		return Frame(n), true
	}
	if list, ok := s.actionList(); ok {
		return Step{Actions: list}, true
	}
	start := s.pos
	if name, ok := s.tag(); ok {
		mark := s.pos
		if s.char(':') {
			s.multispace()
			if list, ok := s.actionList(); ok {
				return Step{Name: name, Kind: ActionKindOf(name), Actions: list}, true
			}
		}
		s.pos = mark
		return Step{Name: name, Kind: ActionKindOf(name)}, true
	}
	s.pos = start
	return nil, false
}
