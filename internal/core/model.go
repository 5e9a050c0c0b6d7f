package core

import (
	"fmt"
	"strings"
	"time"
)

// Well-known record and directory field names.
const (
	FieldName        = "name"
	FieldFirstName   = "first_name"
	FieldLastName    = "last_name"
	FieldProfile     = "profile"
	FieldContactType = "contact_type"
)

// Resolution outcomes.
const (
	OutcomeResolved = "resolved"
	OutcomeSkipped  = "skipped"
	OutcomeFailed   = "failed"
)

// Record is a single inbound statement record, a flat mapping of field names
// to string values. The resolver never mutates the record it is given;
// write-backs are returned as clones.
type Record map[string]string

// Get returns the value of a field, or the empty string when the field is
// absent.
func (r Record) Get(field string) string {
	return r[field]
}

// Has reports whether the record carries a non-empty value for the field.
func (r Record) Has(field string) bool {
	return r[field] != ""
}

// Clone returns an independent copy of the record.
func (r Record) Clone() Record {
	clone := make(Record, len(r))
	for k, v := range r {
		clone[k] = v
	}
	return clone
}

// ResolvedFields accumulates the parameters handed to the contact directory
// during a single resolution. Each instance belongs to exactly one Resolve
// call and is discarded afterwards.
type ResolvedFields map[string]string

// NameMode selects how a display name is partitioned into first and last
// name candidates.
type NameMode string

const (
	// NameModeOff disables name splitting entirely.
	NameModeOff NameMode = "off"
	// NameModeFirst takes the first whitespace token as the first name and
	// the remainder as the last name.
	NameModeFirst NameMode = "first"
	// NameModeLast takes the last whitespace token as the last name and the
	// remainder as the first name.
	NameModeLast NameMode = "last"
	// NameModeDB classifies every token against the known-first-names
	// oracle.
	NameModeDB NameMode = "db"
)

// ParseNameMode converts a configuration string into a NameMode.
func ParseNameMode(s string) (NameMode, error) {
	switch NameMode(strings.ToLower(strings.TrimSpace(s))) {
	case NameModeOff, NameMode(""):
		return NameModeOff, nil
	case NameModeFirst:
		return NameModeFirst, nil
	case NameModeLast:
		return NameModeLast, nil
	case NameModeDB:
		return NameModeDB, nil
	default:
		return NameModeOff, fmt.Errorf("unknown name mode %q", s)
	}
}

// FieldMapping copies one record field into one directory parameter.
type FieldMapping struct {
	From string
	To   string
}

// ParseFieldMappings parses ordered "source:target" pairs. Order is
// preserved so that later mappings overwrite earlier ones targeting the same
// directory parameter.
func ParseFieldMappings(pairs []string) ([]FieldMapping, error) {
	mappings := make([]FieldMapping, 0, len(pairs))
	for _, pair := range pairs {
		from, to, found := strings.Cut(pair, ":")
		from = strings.TrimSpace(from)
		to = strings.TrimSpace(to)
		if !found || from == "" || to == "" {
			return nil, fmt.Errorf("invalid field mapping %q, expected \"source:target\"", pair)
		}
		mappings = append(mappings, FieldMapping{From: from, To: to})
	}
	return mappings, nil
}

// Resolution represents the result of resolving one record against the
// contact directory.
type Resolution struct {
	Outcome       string
	ContactID     string
	Fields        ResolvedFields
	Updated       bool
	UpdatedRecord Record
	ResolvedAt    time.Time
	ProcessingID  string
}
