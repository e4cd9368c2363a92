package entity

// IntentKind is the closed vocabulary of actions the reasoning service may
// request. Dispatch on it is exhaustive; adding a kind is a compile-visible
// change in the executor switch.
type IntentKind string

const (
	IntentNavigate       IntentKind = "navigate"
	IntentClickAt        IntentKind = "click_at"
	IntentTypeTextAt     IntentKind = "type_text_at"
	IntentScrollDocument IntentKind = "scroll_document"
	IntentScrollAt       IntentKind = "scroll_at"
	IntentWait           IntentKind = "wait"
	IntentGoBack         IntentKind = "go_back"
	IntentGoForward      IntentKind = "go_forward"
	IntentSearch         IntentKind = "search"
	IntentKeyCombination IntentKind = "key_combination"
)

var intentKinds = map[string]IntentKind{
	string(IntentNavigate):       IntentNavigate,
	string(IntentClickAt):        IntentClickAt,
	string(IntentTypeTextAt):     IntentTypeTextAt,
	string(IntentScrollDocument): IntentScrollDocument,
	string(IntentScrollAt):       IntentScrollAt,
	string(IntentWait):           IntentWait,
	string(IntentGoBack):         IntentGoBack,
	string(IntentGoForward):      IntentGoForward,
	string(IntentSearch):         IntentSearch,
	string(IntentKeyCombination): IntentKeyCombination,
}

// ParseIntentKind maps a raw action name to its kind. The second return is
// false for names outside the vocabulary.
func ParseIntentKind(name string) (IntentKind, bool) {
	kind, ok := intentKinds[name]
	return kind, ok
}

// SafetyRequireConfirmation is the decision tag the service attaches to
// actions it wants a human to approve first.
const SafetyRequireConfirmation = "require_confirmation"

type SafetyDecision struct {
	Decision    string
	Explanation string
}

// Intent is one candidate action issued by the reasoning service for one
// turn. It is consumed and discarded within that turn.
type Intent struct {
	Name   string
	Args   map[string]any
	Safety *SafetyDecision
}

// Kind resolves the intent name against the fixed vocabulary.
func (i Intent) Kind() (IntentKind, bool) {
	return ParseIntentKind(i.Name)
}

// RequiresConfirmation reports whether the service itself flagged this
// intent for explicit approval.
func (i Intent) RequiresConfirmation() bool {
	return i.Safety != nil && i.Safety.Decision == SafetyRequireConfirmation
}

// WithArg returns a copy of the intent with one argument added, leaving the
// original args map (which may be shared with the conversation) untouched.
func (i Intent) WithArg(key string, value any) Intent {
	args := make(map[string]any, len(i.Args)+1)
	for k, v := range i.Args {
		args[k] = v
	}
	args[key] = value
	i.Args = args
	return i
}

// StringArg reads a string argument. Missing or mistyped values return
// ok = false.
func (i Intent) StringArg(key string) (string, bool) {
	v, ok := i.Args[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// IntArg reads an integer argument. JSON decoding produces float64, so both
// numeric representations are accepted.
func (i Intent) IntArg(key string) (int, bool) {
	v, ok := i.Args[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

// BoolArg reads a boolean argument, falling back to def when absent or
// mistyped.
func (i Intent) BoolArg(key string, def bool) bool {
	v, ok := i.Args[key]
	if !ok {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		return def
	}
	return b
}
