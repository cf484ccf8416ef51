package ui

// State gates whether a conversion may be submitted
type State int

const (
	StateIdle       State = iota // Submit enabled, no progress indicator
	StateConverting              // Submit disabled, progress indicator running
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConverting:
		return "converting"
	default:
		return "unknown"
	}
}

// CanSubmit reports whether a new conversion may start
func (s State) CanSubmit() bool {
	return s == StateIdle
}

// focusArea is the form control receiving key input
type focusArea int

const (
	focusText focusArea = iota
	focusLanguage
	focusSlow
	focusConvert
	focusCount
)

// statusKind selects the status line style
type statusKind int

const (
	statusInfo statusKind = iota
	statusBusy
	statusSuccess
	statusError
)
