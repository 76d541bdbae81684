package reconcile

// State is a step of a run.
type State int

const (
	StateStart State = iota
	StateDetectDisplay
	StateValidateRegistry
	StatePatchRegistry
	StateValidateIni
	StatePatchIni
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateDetectDisplay:
		return "detect_display"
	case StateValidateRegistry:
		return "validate_registry"
	case StatePatchRegistry:
		return "patch_registry"
	case StateValidateIni:
		return "validate_ini"
	case StatePatchIni:
		return "patch_ini"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
