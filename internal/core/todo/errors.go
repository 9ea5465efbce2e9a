package todo

import "errors"

var (
	// ErrNotFound is returned when no todo, tag, or category matches an ID.
	ErrNotFound = errors.New("not found")
	// ErrAmbiguousID is returned when an ID prefix matches more than one record.
	ErrAmbiguousID = errors.New("ambiguous id prefix")
	// ErrDuplicateName is returned when a tag or category name is already taken.
	ErrDuplicateName = errors.New("name already exists")
)

// ErrorKind classifies persistence failures.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// KindDataCorrupted means stored content failed to decode or validate.
	KindDataCorrupted
	// KindQuotaExceeded means the substrate rejected a write for capacity.
	KindQuotaExceeded
	// KindStorageUnavailable means the substrate cannot be used at all.
	KindStorageUnavailable
)

func (k ErrorKind) String() string {
	switch k {
	case KindDataCorrupted:
		return "data_corrupted"
	case KindQuotaExceeded:
		return "quota_exceeded"
	case KindStorageUnavailable:
		return "storage_unavailable"
	default:
		return "unknown"
	}
}

func (k ErrorKind) defaultMessage() string {
	switch k {
	case KindDataCorrupted:
		return "storage data is corrupted"
	case KindQuotaExceeded:
		return "storage quota exceeded"
	case KindStorageUnavailable:
		return "storage is unavailable"
	default:
		return "storage error"
	}
}

// Error is a persistence failure of a specific kind. Callers dispatch on
// Kind, either with errors.Is against the Err* sentinels or with KindOf.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

var (
	ErrDataCorrupted      = &Error{Kind: KindDataCorrupted}
	ErrQuotaExceeded      = &Error{Kind: KindQuotaExceeded}
	ErrStorageUnavailable = &Error{Kind: KindStorageUnavailable}
)

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Kind.defaultMessage()
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Corrupted returns a KindDataCorrupted error with the given message.
func Corrupted(msg string) error {
	return &Error{Kind: KindDataCorrupted, Msg: msg}
}

// KindOf returns the kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
