package view

type FlashKind string

const (
	FlashInfo    FlashKind = "info"
	FlashSuccess FlashKind = "success"
	FlashWarning FlashKind = "warning"
	FlashError   FlashKind = "error"
)

// Flash is a one-shot notification. Key is a translation key resolved in the
// reader's language when the next page renders; Args are its name/value
// parameters.
type Flash struct {
	Kind FlashKind `json:"kind"`
	Key  string    `json:"key"`
	Args []string  `json:"args,omitempty"`
}

// NewFlash builds a flash from name/value pairs.
func NewFlash(kind FlashKind, key string, args ...string) Flash {
	return Flash{Kind: kind, Key: key, Args: args}
}

// CSSClass is the alert modifier used by the layout.
func (f Flash) CSSClass() string {
	if f.Kind == FlashError {
		return "alert-danger"
	}
	return "alert-" + string(f.Kind)
}
