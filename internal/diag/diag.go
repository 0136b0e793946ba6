// Package diag implements the process-wide diagnostics sink: a logger
// accepting {Debug, Info, Warning, Error} messages tagged with a source
// location, dispatching to a caller-supplied callback and filtering by
// minimum level.
package diag

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/commschamp/dslgen/pkg/textpos"
)

// Level is the severity of a diagnostic message.
type Level int

// Severity levels, lowest to highest.
const (
	Debug Level = iota
	Info
	Warning
	Error
)

// String renders the level the way it appears in the "[LEVEL]: ..." prefix.
func (l Level) String() string {
	switch l {
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warning:
		return "WARNING"
	case Error:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Kind classifies a diagnostic beyond its severity, matching the error kinds
// of spec.md §7. Kind is zero-valued (KindNone) for plain info/debug/warning
// chatter that isn't one of the structured error categories.
type Kind int

// Error kinds.
const (
	KindNone Kind = iota
	KindBadXML
	KindSchemaRule
	KindUnresolvedReference
	KindDuplicateName
	KindVersionError
	KindConditionError
	KindIoError
)

func (k Kind) String() string {
	switch k {
	case KindBadXML:
		return "BadXml"
	case KindSchemaRule:
		return "SchemaRule"
	case KindUnresolvedReference:
		return "UnresolvedReference"
	case KindDuplicateName:
		return "DuplicateName"
	case KindVersionError:
		return "VersionError"
	case KindConditionError:
		return "ConditionError"
	case KindIoError:
		return "IoError"
	default:
		return ""
	}
}

// Entry is a single diagnostic record.
type Entry struct {
	Level   Level
	Kind    Kind
	Pos     textpos.Pos
	Message string
}

// String renders an entry as "[LEVEL]: file:line: message", the format
// spec.md §7 requires on the user-visible channel.
func (e Entry) String() string {
	return fmt.Sprintf("[%s]: %s: %s", e.Level, e.Pos, e.Message)
}

// Sink is the process-wide diagnostics collector threaded explicitly through
// the pipeline (never a package-level global, per the design notes). It
// dispatches every accepted entry to a caller-supplied callback and tracks
// whether any Error-level entry has been recorded, which is what the
// protocol driver consults to decide whether a phase has failed.
type Sink struct {
	minLevel Level
	callback func(Entry)
	logger   *log.Logger
	hadError bool
	entries  []Entry
}

// New constructs a sink filtering below minLevel. If callback is nil,
// entries are only recorded (and logged via logrus), not dispatched
// elsewhere.
func New(minLevel Level, callback func(Entry)) *Sink {
	logger := log.New()
	logger.SetLevel(log.TraceLevel)

	return &Sink{
		minLevel: minLevel,
		callback: callback,
		logger:   logger,
	}
}

// Entries returns every recorded entry, in emission order.
func (s *Sink) Entries() []Entry {
	return s.entries
}

// HadError indicates whether any Error-level diagnostic has been recorded
// since construction (or since the last Reset).
func (s *Sink) HadError() bool {
	return s.hadError
}

// Reset clears the error flag and history, e.g. between independent phases
// whose failure should be evaluated separately.
func (s *Sink) Reset() {
	s.hadError = false
	s.entries = nil
}

func (s *Sink) record(level Level, kind Kind, pos textpos.Pos, format string, args ...any) {
	if level < s.minLevel {
		return
	}

	entry := Entry{Level: level, Kind: kind, Pos: pos, Message: fmt.Sprintf(format, args...)}
	s.entries = append(s.entries, entry)

	if level == Error {
		s.hadError = true
	}

	s.logWith(entry)

	if s.callback != nil {
		s.callback(entry)
	}
}

func (s *Sink) logWith(e Entry) {
	fields := log.Fields{"pos": e.Pos.String()}
	if e.Kind != KindNone {
		fields["kind"] = e.Kind.String()
	}

	entry := s.logger.WithFields(fields)

	switch e.Level {
	case Debug:
		entry.Debug(e.Message)
	case Info:
		entry.Info(e.Message)
	case Warning:
		entry.Warning(e.Message)
	case Error:
		entry.Error(e.Message)
	}
}

// Debugf records a Debug-level diagnostic.
func (s *Sink) Debugf(pos textpos.Pos, format string, args ...any) {
	s.record(Debug, KindNone, pos, format, args...)
}

// Infof records an Info-level diagnostic.
func (s *Sink) Infof(pos textpos.Pos, format string, args ...any) {
	s.record(Info, KindNone, pos, format, args...)
}

// Warnf records a Warning-level diagnostic.
func (s *Sink) Warnf(pos textpos.Pos, format string, args ...any) {
	s.record(Warning, KindNone, pos, format, args...)
}

// Errorf records an Error-level diagnostic of the given kind. Kind should be
// one of the structured error categories from spec.md §7.
func (s *Sink) Errorf(kind Kind, pos textpos.Pos, format string, args ...any) {
	s.record(Error, kind, pos, format, args...)
}
