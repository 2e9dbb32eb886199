package camera

import "fmt"

// Mode selects how the camera follows the vehicle.
type Mode uint8

const (
	ThirdPerson Mode = iota
	FirstPerson
	OverShoulder

	numModes
)

// Next returns the mode that follows m in the toggle cycle
// ThirdPerson -> FirstPerson -> OverShoulder -> ThirdPerson.
func (m Mode) Next() Mode {
	return (m + 1) % numModes
}

// FollowsHeading reports whether the mode keeps the view aligned with the
// vehicle heading.
func (m Mode) FollowsHeading() bool {
	return m == FirstPerson || m == OverShoulder
}

func (m Mode) String() string {
	switch m {
	case ThirdPerson:
		return "third_person"
	case FirstPerson:
		return "first_person"
	case OverShoulder:
		return "over_shoulder"
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// Label returns a display name for the HUD.
func (m Mode) Label() string {
	switch m {
	case ThirdPerson:
		return "Third Person"
	case FirstPerson:
		return "First Person"
	case OverShoulder:
		return "Over Shoulder"
	}
	return m.String()
}

// ParseMode parses the String form of a mode.
func ParseMode(s string) (Mode, error) {
	for m := Mode(0); m < numModes; m++ {
		if m.String() == s {
			return m, nil
		}
	}
	return ThirdPerson, fmt.Errorf("unknown camera mode %q", s)
}
