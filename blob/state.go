package blob

// State is the position of a Decoder in the stream.
//
// States only move forward: StateHeaderRead, StateConstants, StateTimeSteps, then
// StateDone or StateError. Reset* may move a decoder on a seekable source back to
// the start of a region; StateError is final.
type State uint8

const (
	StateUnopened State = iota
	StateHeaderRead
	StateConstants
	StateTimeSteps
	StateDone
	StateError
)

func (s State) String() string {
	switch s {
	case StateUnopened:
		return "Unopened"
	case StateHeaderRead:
		return "HeaderRead"
	case StateConstants:
		return "IteratingConstants"
	case StateTimeSteps:
		return "IteratingTimeSteps"
	case StateDone:
		return "Done"
	case StateError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Status converts the result of a Next* or BeginNextTimeStep call to 1 (record
// produced), 0 (region exhausted) or -1 (error).
func Status(ok bool, err error) int {
	switch {
	case err != nil:
		return -1
	case ok:
		return 1
	default:
		return 0
	}
}
