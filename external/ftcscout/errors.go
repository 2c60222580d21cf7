package ftcscout

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/ftc-team-stats/internal/usecase"
)

type ErrorKind string

const (
	KindTransport   ErrorKind = "transport"
	KindGraphQL     ErrorKind = "graphql"
	KindPartialData ErrorKind = "partial_data"
)

const defaultGraphQLMessage = "GraphQL query failed"

var errFTCScoutTransient = crerr.New("ftcscout transient failure")

var dsnLikeRegex = regexp.MustCompile(`(?i)(authorization|token|apikey)=[^&\s"']+`)

// QueryError is the typed failure of a GraphQL call.
type QueryError struct {
	Kind      ErrorKind
	Operation string
	Status    int
	Body      string
	Message   string
	cause     error
}

func (e *QueryError) Error() string {
	var b strings.Builder
	b.WriteString("ftcscout ")
	b.WriteString(string(e.Kind))
	if e.Operation != "" {
		b.WriteString(" error in ")
		b.WriteString(e.Operation)
	} else {
		b.WriteString(" error")
	}
	if e.Status > 0 {
		fmt.Fprintf(&b, ": status=%d", e.Status)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Body != "" {
		b.WriteString(" body=")
		b.WriteString(e.Body)
	}
	return b.String()
}

// Unwrap exposes the cause and ErrDependencyUnavailable so callers can match
// either with errors.Is.
func (e *QueryError) Unwrap() []error {
	out := []error{usecase.ErrDependencyUnavailable}
	if e.cause != nil {
		out = append(out, e.cause)
	}
	return out
}

// transportError builds a KindTransport failure. Transient failures are the
// ones that count against the circuit breaker.
func transportError(operation string, status int, body []byte, cause error, transient bool) *QueryError {
	msg := ""
	if cause != nil {
		msg = sanitizeSensitiveText(cause.Error())
	} else if status > 0 {
		msg = "unexpected HTTP status"
	}
	if transient {
		cause = crerr.Mark(orTransient(cause), errFTCScoutTransient)
	}
	return &QueryError{
		Kind:      KindTransport,
		Operation: operation,
		Status:    status,
		Body:      abbreviateBody(body),
		Message:   msg,
		cause:     cause,
	}
}

func graphQLError(operation string, errs []graphQLErrorItem) *QueryError {
	msg := defaultGraphQLMessage
	if len(errs) > 0 && strings.TrimSpace(errs[0].Message) != "" {
		msg = strings.TrimSpace(errs[0].Message)
	}
	return &QueryError{
		Kind:      KindGraphQL,
		Operation: operation,
		Message:   msg,
	}
}

func partialDataError(operation, missing string) *QueryError {
	return &QueryError{
		Kind:      KindPartialData,
		Operation: operation,
		Message:   "response is missing " + missing,
	}
}

func orTransient(err error) error {
	if err == nil {
		return errFTCScoutTransient
	}
	return err
}

// IsKind reports whether err is a QueryError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var qe *QueryError
	if !errors.As(err, &qe) {
		return false
	}
	return qe.Kind == kind
}

func isCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	var qe *QueryError
	if errors.As(err, &qe) {
		return qe.cause != nil && crerr.Is(qe.cause, errFTCScoutTransient)
	}
	return crerr.Is(err, errFTCScoutTransient)
}

func isTransientStatus(code int) bool {
	return code == 429 || code >= 500
}

func sanitizeSensitiveText(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	return dsnLikeRegex.ReplaceAllString(value, "$1=REDACTED")
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
