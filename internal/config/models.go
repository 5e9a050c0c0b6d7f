package config

// ResolverConfig represents the configuration for the contact resolver
type ResolverConfig struct {
	Profile        string
	NameMode       string
	ContactType    string
	OutputField    string
	RequiredFields []string
	FieldMapping   []string
	FailOpen       bool
}

// NamesConfig represents the configuration for the first-name oracle
type NamesConfig struct {
	Source         string
	TTL            string
	ExcludeDeleted bool
	StaticNames    []string
	MySQLDSN       string
	MySQLTable     string
	PostgresURL    string
	PostgresTable  string
}

// DirectoryConfig represents the configuration for the contact directory
type DirectoryConfig struct {
	Type    string
	BaseURL string
	APIKey  string
	Timeout string
}

// IntakeConfig represents the configuration for the record intake
type IntakeConfig struct {
	Type            string
	CSVSpoolDir     string
	CSVDoneDir      string
	SMTPListenAddr  string
	SMTPDomain      string
	MaxMessageBytes int64
}

// SinkConfig represents the configuration for the record sink
type SinkConfig struct {
	Type string
	Path string
}

// GetResolver returns the resolver configuration
func (c *Config) GetResolver() ResolverConfig {
	return ResolverConfig{
		Profile:        c.GetString("resolver.profile"),
		NameMode:       c.GetString("resolver.name_mode"),
		ContactType:    c.GetString("resolver.contact_type"),
		OutputField:    c.GetString("resolver.output_field"),
		RequiredFields: c.GetStringSlice("resolver.required_fields"),
		FieldMapping:   c.GetStringSlice("resolver.field_mapping"),
		FailOpen:       c.GetBool("resolver.fail_open"),
	}
}

// GetNames returns the first-name oracle configuration
func (c *Config) GetNames() NamesConfig {
	return NamesConfig{
		Source:         c.GetString("names.source"),
		TTL:            c.GetString("names.ttl"),
		ExcludeDeleted: c.GetBool("names.exclude_deleted"),
		StaticNames:    c.GetStringSlice("names.static_names"),
		MySQLDSN:       c.GetString("names.mysql_dsn"),
		MySQLTable:     c.GetString("names.mysql_table"),
		PostgresURL:    c.GetString("names.postgres_url"),
		PostgresTable:  c.GetString("names.postgres_table"),
	}
}

// GetDirectory returns the contact directory configuration
func (c *Config) GetDirectory() DirectoryConfig {
	return DirectoryConfig{
		Type:    c.GetString("directory.type"),
		BaseURL: c.GetString("directory.base_url"),
		APIKey:  c.GetString("directory.api_key"),
		Timeout: c.GetString("directory.timeout"),
	}
}

// GetIntake returns the record intake configuration
func (c *Config) GetIntake() IntakeConfig {
	return IntakeConfig{
		Type:            c.GetString("intake.type"),
		CSVSpoolDir:     c.GetString("intake.csv.spool_dir"),
		CSVDoneDir:      c.GetString("intake.csv.done_dir"),
		SMTPListenAddr:  c.GetString("intake.smtp.listen_address"),
		SMTPDomain:      c.GetString("intake.smtp.domain"),
		MaxMessageBytes: c.GetInt64("intake.smtp.max_message_bytes"),
	}
}

// GetSink returns the record sink configuration
func (c *Config) GetSink() SinkConfig {
	return SinkConfig{
		Type: c.GetString("sink.type"),
		Path: c.GetString("sink.path"),
	}
}
