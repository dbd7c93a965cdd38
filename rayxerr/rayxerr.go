// Package rayxerr defines the error types the tracing engine returns —
// Configuration, Resource and Host — replacing the source's mixed
// exit(1)/throw/assert style with a uniform result type at every
// compile stage. Runtime ray errors and event-capacity overflows have no
// type here: the trace loop tags the ray itself (FatalError,
// TooManyEvents), never aborting the process.
package rayxerr

import (
	"fmt"

	"github.com/cpmech/gosl/chk"
)

// Configuration reports an unparseable or geometrically impossible
// element parameter, raised at compile time. Aborts before any ray is
// emitted; partial beamlines are never produced.
type Configuration struct {
	Element string
	Msg     string
}

func (e *Configuration) Error() string {
	return fmt.Sprintf("configuration error in element %q: %s", e.Element, e.Msg)
}

// NewConfiguration builds a Configuration error naming the offending
// element, in the terse gofem/chk diagnostic style.
func NewConfiguration(element, format string, args ...interface{}) *Configuration {
	return &Configuration{Element: element, Msg: fmt.Sprintf(format, args...)}
}

// Resource reports a missing or malformed material data file.
type Resource struct {
	AtomicNumber int
	Msg          string
}

func (e *Resource) Error() string {
	return fmt.Sprintf("resource error for atomic number %d: %s", e.AtomicNumber, e.Msg)
}

func NewResource(z int, format string, args ...interface{}) *Resource {
	return &Resource{AtomicNumber: z, Msg: fmt.Sprintf(format, args...)}
}

// Host reports a device allocation or dispatch failure. Terminates the
// current trace; other batches are not attempted.
type Host struct {
	Msg string
}

func (e *Host) Error() string { return "host error: " + e.Msg }

func NewHost(format string, args ...interface{}) *Host {
	return &Host{Msg: fmt.Sprintf(format, args...)}
}

// Bug panics unconditionally: used only for states the compiler proved
// unreachable (e.g. an unhandled tagged-union case), never for data the
// caller could supply. Mirrors gofem's chk.Panic for "this is a bug"
// conditions.
func Bug(format string, args ...interface{}) {
	chk.Panic(format, args...)
}
