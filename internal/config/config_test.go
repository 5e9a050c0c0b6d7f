package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := NewFromViper(NewEmptyViper())

	resolver := cfg.GetResolver()
	assert.Equal(t, "default", resolver.Profile)
	assert.Equal(t, "off", resolver.NameMode)
	assert.Equal(t, "Individual", resolver.ContactType)
	assert.Equal(t, "contact_id", resolver.OutputField)
	assert.Equal(t, []string{"name"}, resolver.RequiredFields)
	assert.Empty(t, resolver.FieldMapping)
	assert.True(t, resolver.FailOpen)

	names := cfg.GetNames()
	assert.Equal(t, "static", names.Source)
	assert.Equal(t, "168h", names.TTL)
	assert.True(t, names.ExcludeDeleted)

	directory := cfg.GetDirectory()
	assert.Equal(t, "http", directory.Type)
	assert.Equal(t, "http://localhost:8080/api/contacts", directory.BaseURL)

	intake := cfg.GetIntake()
	assert.Equal(t, "csv", intake.Type)
	assert.Equal(t, "/var/spool/payermatch", intake.CSVSpoolDir)
	assert.Equal(t, int64(30*1024*1024), intake.MaxMessageBytes)

	sink := cfg.GetSink()
	assert.Equal(t, "jsonl", sink.Type)
	assert.Equal(t, "/var/lib/payermatch/resolved.jsonl", sink.Path)

	assert.Equal(t, "info", cfg.GetString("logging.level"))
	assert.Equal(t, "json", cfg.GetString("logging.format"))
}

func TestOverrides(t *testing.T) {
	v := NewEmptyViper()
	v.Set("resolver.profile", "sepa")
	v.Set("resolver.name_mode", "db")
	v.Set("resolver.required_fields", []string{"name", "iban"})
	v.Set("resolver.field_mapping", []string{"iban:custom_iban"})
	v.Set("names.source", "mysql")
	cfg := NewFromViper(v)

	resolver := cfg.GetResolver()
	assert.Equal(t, "sepa", resolver.Profile)
	assert.Equal(t, "db", resolver.NameMode)
	assert.Equal(t, []string{"name", "iban"}, resolver.RequiredFields)
	assert.Equal(t, []string{"iban:custom_iban"}, resolver.FieldMapping)
	assert.Equal(t, "mysql", cfg.GetNames().Source)
}

func TestGetDuration(t *testing.T) {
	cfg := NewFromViper(NewEmptyViper())

	ttl, err := cfg.GetDuration("names.ttl")
	require.NoError(t, err)
	assert.Equal(t, 7*24*time.Hour, ttl)

	timeout, err := cfg.GetDuration("directory.timeout")
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, timeout)

	v := NewEmptyViper()
	v.Set("names.ttl", "not a duration")
	_, err = NewFromViper(v).GetDuration("names.ttl")
	assert.Error(t, err)
}
