package exprerr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	Unknown Kind = iota
	InvalidCharacter
	MismatchedParentheses
	InvalidExpression
	DivisionByZero
	NumericOverflow
)

var kindNames = map[Kind]string{
	Unknown:               "unknown",
	InvalidCharacter:      "invalid_character",
	MismatchedParentheses: "mismatched_parentheses",
	InvalidExpression:     "invalid_expression",
	DivisionByZero:        "division_by_zero",
	NumericOverflow:       "numeric_overflow",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s && k != Unknown {
			return k, nil
		}
	}
	return Unknown, fmt.Errorf("unknown error kind %q", s)
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Error is the failure reported by every stage of the evaluation pipeline.
// Char and Pos are only set for InvalidCharacter.
type Error struct {
	Kind Kind
	Msg  string
	Char rune
	Pos  int
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	switch e.Kind {
	case InvalidCharacter:
		return fmt.Sprintf("invalid character %q at position %d", e.Char, e.Pos)
	case MismatchedParentheses:
		return "mismatched parentheses"
	case InvalidExpression:
		return "invalid expression"
	case DivisionByZero:
		return "division by zero"
	case NumericOverflow:
		return "numeric overflow"
	default:
		return "expression error"
	}
}

// Is matches any *Error of the same kind, so the sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrInvalidCharacter      = &Error{Kind: InvalidCharacter}
	ErrMismatchedParentheses = &Error{Kind: MismatchedParentheses}
	ErrInvalidExpression     = &Error{Kind: InvalidExpression}
	ErrDivisionByZero        = &Error{Kind: DivisionByZero}
	ErrNumericOverflow       = &Error{Kind: NumericOverflow}
)

func NewInvalidCharacter(ch rune, pos int) *Error {
	return &Error{Kind: InvalidCharacter, Char: ch, Pos: pos}
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of the first *Error in err's chain, or Unknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}
