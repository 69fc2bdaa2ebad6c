package model

import "fmt"

// Status is the three-tier alignment classification.
type Status int

// Alignment tiers, best first.
const (
	StatusAtRisk Status = iota
	StatusModerate
	StatusStrong
)

var statusNames = map[Status]string{
	StatusStrong:   "Strong",
	StatusModerate: "Moderate",
	StatusAtRisk:   "AtRisk",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	name, ok := statusNames[s]
	if !ok {
		return nil, fmt.Errorf("unknown status %d", int(s))
	}
	return []byte(name), nil
}

// UnmarshalText decodes a status name.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseStatus returns the status with the given name.
func ParseStatus(name string) (Status, error) {
	for s, n := range statusNames {
		if n == name {
			return s, nil
		}
	}
	return StatusAtRisk, fmt.Errorf("unknown status %q", name)
}
