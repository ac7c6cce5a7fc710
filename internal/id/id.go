package id

import (
	"crypto/rand"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Kind identifies the object type an id belongs to.
type Kind string

// Object kinds and their id prefixes.
const (
	KindAssistant Kind = "asst"
	KindThread    Kind = "thread"
	KindMessage   Kind = "msg"
	KindRun       Kind = "run"
)

// SuffixLength is the number of random characters following the prefix.
const SuffixLength = 24

const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var formatPattern = regexp.MustCompile(`^([a-z]+)_([A-Za-z0-9]{24})$`)

// New generates an id for the given kind, e.g. "thread_abc...".
func New(kind Kind) string {
	return string(kind) + "_" + Alphanumeric(SuffixLength)
}

// Assistant generates an assistant id.
func Assistant() string { return New(KindAssistant) }

// Thread generates a thread id.
func Thread() string { return New(KindThread) }

// Message generates a message id.
func Message() string { return New(KindMessage) }

// Run generates a run id.
func Run() string { return New(KindRun) }

// Request generates a request id in the "req_<hex>" form used by the API.
func Request() string {
	return "req_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Is reports whether s is a well-formed id of the given kind.
func Is(s string, kind Kind) bool {
	m := formatPattern.FindStringSubmatch(s)
	return m != nil && Kind(m[1]) == kind
}

// Alphanumeric generates a random alphanumeric string of the specified length.
// Uses uppercase, lowercase letters and digits.
func Alphanumeric(length int) string {
	b := make([]byte, length)
	randBytes := make([]byte, length)
	_, _ = rand.Read(randBytes)
	for i := range b {
		b[i] = charset[int(randBytes[i])%len(charset)]
	}
	return string(b)
}
