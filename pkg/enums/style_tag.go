package enums

import "fmt"

// StyleTag is the short style key the planner form sends.
type StyleTag string

const (
	StyleModerno      StyleTag = "moderno"
	StyleEjecutivo    StyleTag = "ejecutivo"
	StyleColaborativo StyleTag = "colaborativo"
	StyleClasico      StyleTag = "clasico"
)

var validStyleTags = []StyleTag{
	StyleModerno,
	StyleEjecutivo,
	StyleColaborativo,
	StyleClasico,
}

var styleLabels = map[StyleTag]string{
	StyleModerno:      "moderno y minimalista",
	StyleEjecutivo:    "ejecutivo / gerencial",
	StyleColaborativo: "colaborativo tipo cowork",
	StyleClasico:      "clásico y formal",
}

// String implements fmt.Stringer.
func (s StyleTag) String() string {
	return string(s)
}

// IsValid reports whether the value is a known StyleTag.
func (s StyleTag) IsValid() bool {
	for _, candidate := range validStyleTags {
		if candidate == s {
			return true
		}
	}
	return false
}

// Label returns the descriptive phrase used in prompts. Unknown tags are returned
// verbatim; an empty tag falls back to the modern style.
func (s StyleTag) Label() string {
	if label, ok := styleLabels[s]; ok {
		return label
	}
	if s == "" {
		return styleLabels[StyleModerno]
	}
	return string(s)
}

// ParseStyleTag converts raw input into a StyleTag.
func ParseStyleTag(value string) (StyleTag, error) {
	for _, candidate := range validStyleTags {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid style tag %q", value)
}
