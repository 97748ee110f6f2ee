package club

// Kind classifies a failure reported by the selector.
type Kind int

const (
	KindInvalidInput Kind = iota + 1
	KindUnresolvedHeading
	KindEmptyTable
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindUnresolvedHeading:
		return "unresolved_heading"
	case KindEmptyTable:
		return "empty_table"
	default:
		return "unknown"
	}
}

// Error is the structured failure value returned by the core. It carries a
// kind and, for input errors, the offending field. Rendering a user-facing
// message is left to the caller.
type Error struct {
	Kind  Kind
	Field string
}

func (e *Error) Error() string {
	if e.Field == "" {
		return "club: " + e.Kind.String()
	}
	return "club: " + e.Kind.String() + " (" + e.Field + ")"
}

// Is matches on Kind only, so errors.Is(err, ErrInvalidInput) holds for any field.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrInvalidInput      = &Error{Kind: KindInvalidInput}
	ErrUnresolvedHeading = &Error{Kind: KindUnresolvedHeading}
	ErrEmptyTable        = &Error{Kind: KindEmptyTable}
)

func invalid(field string) error {
	return &Error{Kind: KindInvalidInput, Field: field}
}
