package service

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"github.com/portfolio/backend/internal/model"
)

// ValidationKind identifies which rule a submission broke.
type ValidationKind string

const (
	KindMissingField ValidationKind = "MISSING_FIELD"
	KindInvalidEmail ValidationKind = "INVALID_EMAIL"
)

var (
	// ErrMissingField matches (via errors.Is) a ValidationError of KindMissingField.
	ErrMissingField = &ValidationError{Kind: KindMissingField}
	// ErrInvalidEmail matches (via errors.Is) a ValidationError of KindInvalidEmail.
	ErrInvalidEmail = &ValidationError{Kind: KindInvalidEmail}
)

// ValidationError is returned when a contact payload cannot be accepted.
// Its message is the one shown to the visitor.
type ValidationError struct {
	Kind ValidationKind
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case KindMissingField:
		return "Nome, email e mensagem são obrigatórios."
	case KindInvalidEmail:
		return "Formato de email inválido."
	default:
		return "invalid contact submission"
	}
}

// Is reports whether target is a ValidationError of the same kind.
func (e *ValidationError) Is(target error) bool {
	var t *ValidationError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// emailPattern accepts local@domain.tld where no part holds whitespace or '@'.
// RE2's \s is ASCII-only and misses \v, so the class also names \v, NEL,
// BOM and the Unicode separators.
var emailPattern = regexp.MustCompile(`^[^\s\v\x{85}\x{FEFF}\p{Z}@]+@[^\s\v\x{85}\x{FEFF}\p{Z}@]+\.[^\s\v\x{85}\x{FEFF}\p{Z}@]+$`)

// ValidateSubmission checks a raw payload and returns its normalized form.
// Required fields are checked before the email shape. The returned
// submission has no ID, Status or FormType; those are set at persistence time.
func ValidateSubmission(in model.ContactInput) (model.ContactSubmission, error) {
	name := trimmed(in.Name)
	email := trimmed(in.Email)
	message := trimmed(in.Message)

	if name == "" || email == "" || message == "" {
		return model.ContactSubmission{}, &ValidationError{Kind: KindMissingField}
	}
	if !emailPattern.MatchString(email) {
		return model.ContactSubmission{}, &ValidationError{Kind: KindInvalidEmail}
	}

	subject := trimmed(in.Subject)
	if subject == "" {
		subject = model.DefaultSubject
	}

	return model.ContactSubmission{
		Name:    name,
		Email:   strings.ToLower(email),
		Subject: subject,
		Message: message,
	}, nil
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimFunc(*s, isSpace)
}

// isSpace reports unicode.IsSpace runes and the byte-order mark.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}
