package core

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ResolverConfig carries the rules a ContactResolver applies to every
// record. It is validated once at construction and never changes afterwards.
type ResolverConfig struct {
	// Profile selects the matching ruleset on the directory side.
	Profile string

	// NameMode controls how the record's display name is split.
	NameMode NameMode

	// ContactType is the directory contact type seeded into every request.
	ContactType string

	// OutputField is the record field that receives the resolved contact
	// identifier.
	OutputField string

	// RequiredFields must all be present and non-empty on a record before
	// resolution is attempted. A nil slice defaults to the display name
	// field; an explicitly empty slice disables the guard.
	RequiredFields []string

	// FieldMapping copies record fields into directory parameters, in
	// order, after name splitting. Mapped values overwrite split values.
	FieldMapping []FieldMapping

	// FailOpen keeps db-mode resolution going when the first-name oracle is
	// unavailable by treating every token as unknown. When false the record
	// fails instead.
	FailOpen bool
}

func (c *ResolverConfig) validate() error {
	if c.Profile == "" {
		return fmt.Errorf("resolver profile must not be empty")
	}
	if c.ContactType == "" {
		c.ContactType = "Individual"
	}
	if c.OutputField == "" {
		c.OutputField = "contact_id"
	}
	if c.RequiredFields == nil {
		c.RequiredFields = []string{FieldName}
	}
	for _, m := range c.FieldMapping {
		if m.From == "" || m.To == "" {
			return fmt.Errorf("field mapping with empty source or target")
		}
	}
	switch c.NameMode {
	case NameModeOff, NameModeFirst, NameModeLast, NameModeDB:
	default:
		return fmt.Errorf("unknown name mode %q", c.NameMode)
	}
	return nil
}

// ContactResolver is the core service that resolves statement records to
// contact identifiers.
type ContactResolver struct {
	directory ContactDirectory
	oracle    FirstNameChecker
	logger    *zap.Logger
	cfg       ResolverConfig
}

// NewContactResolver creates a new contact resolver. The oracle may be nil
// unless the configured name mode consults it.
func NewContactResolver(
	directory ContactDirectory,
	oracle FirstNameChecker,
	logger *zap.Logger,
	cfg ResolverConfig,
) (*ContactResolver, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid resolver config: %w", err)
	}
	if cfg.NameMode == NameModeDB && oracle == nil {
		return nil, fmt.Errorf("name mode %q requires a first-name oracle", cfg.NameMode)
	}
	return &ContactResolver{
		directory: directory,
		oracle:    oracle,
		logger:    logger,
		cfg:       cfg,
	}, nil
}

// Resolve matches one record against the contact directory and reports the
// outcome. Missing required fields skip the record, directory failures fail
// it; both are reported in the Resolution rather than as an error. An error
// is only returned when the first-name oracle is unavailable and the
// resolver is not configured to fail open.
func (r *ContactResolver) Resolve(ctx context.Context, record Record) (*Resolution, error) {
	processingID := uuid.NewString()

	for _, field := range r.cfg.RequiredFields {
		if !record.Has(field) {
			r.logger.Debug("Skipping record with missing required field",
				zap.String("field", field),
				zap.String("processing_id", processingID))
			return &Resolution{
				Outcome:      OutcomeSkipped,
				ResolvedAt:   time.Now(),
				ProcessingID: processingID,
			}, nil
		}
	}

	fields := ResolvedFields{
		FieldProfile:     r.cfg.Profile,
		FieldContactType: r.cfg.ContactType,
	}

	parts, err := SplitName(ctx, record.Get(FieldName), r.cfg.NameMode, r.oracle)
	if err != nil {
		if !r.cfg.FailOpen {
			return nil, fmt.Errorf("splitting name: %w", err)
		}
		r.logger.Warn("First-name oracle unavailable, treating all tokens as unknown",
			zap.Error(err),
			zap.String("processing_id", processingID))
		parts = splitAllUnknown(record.Get(FieldName))
	}
	for field, value := range parts {
		fields[field] = value
	}

	// Mapped fields win over split fields, later mappings over earlier ones.
	for _, m := range r.cfg.FieldMapping {
		fields[m.To] = record.Get(m.From)
	}

	contactID, err := r.directory.GetOrCreate(ctx, fields)
	if err != nil {
		r.logger.Error("Contact directory lookup failed",
			zap.Error(err),
			zap.String("name", record.Get(FieldName)),
			zap.String("processing_id", processingID))
		return &Resolution{
			Outcome:      OutcomeFailed,
			Fields:       fields,
			ResolvedAt:   time.Now(),
			ProcessingID: processingID,
		}, nil
	}

	resolution := &Resolution{
		Outcome:      OutcomeResolved,
		ContactID:    contactID,
		Fields:       fields,
		ResolvedAt:   time.Now(),
		ProcessingID: processingID,
	}

	if !sameContactID(record.Get(r.cfg.OutputField), contactID) {
		updated := record.Clone()
		updated[r.cfg.OutputField] = contactID
		resolution.Updated = true
		resolution.UpdatedRecord = updated
	}

	r.logger.Debug("Record resolved",
		zap.String("contact_id", contactID),
		zap.Bool("updated", resolution.Updated),
		zap.String("processing_id", processingID))

	return resolution, nil
}

// OutputField returns the record field the resolver writes contact
// identifiers to.
func (r *ContactResolver) OutputField() string {
	return r.cfg.OutputField
}

// sameContactID reports whether two contact identifiers refer to the same
// contact. Records and directories may disagree on representation ("007"
// versus "7"), so identifiers that parse as integers compare numerically.
func sameContactID(a, b string) bool {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	ai, errA := strconv.ParseInt(a, 10, 64)
	bi, errB := strconv.ParseInt(b, 10, 64)
	if errA == nil && errB == nil {
		return ai == bi
	}
	return a == b
}
