package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"payermatch/internal/adapters/intake"
	"payermatch/internal/adapters/sink"
	"payermatch/internal/config"
	"payermatch/internal/core"
	"payermatch/internal/factory"
	"payermatch/internal/logging"
	"payermatch/internal/utils"
)

var (
	// Resolver flags
	profile        = flag.String("profile", "default", "Matching profile passed to the contact directory")
	nameMode       = flag.String("name-mode", "off", "Name splitting mode (off, first, last, db)")
	contactType    = flag.String("contact-type", "Individual", "Contact type seeded into directory requests")
	outputField    = flag.String("output-field", "contact_id", "Record field receiving the contact id")
	requiredFields = flag.String("required", "", "Comma-separated required record fields (default: name)")
	fieldMapping   = flag.String("mapping", "", "Comma-separated source:target field mappings")
	failOpen       = flag.Bool("fail-open", true, "Continue without first-name data when the oracle is unavailable")

	// First-name oracle flags
	namesSource = flag.String("names-source", "static", "First-name source (static, mysql, postgres)")
	firstNames  = flag.String("first-names", "", "Comma-separated first names for the static source")
	namesTTL    = flag.String("names-ttl", "168h", "How long a fetched first-name set stays fresh")
	cachePath   = flag.String("cache", "", "SQLite path for the first-name snapshot (in-memory if not specified)")

	// Directory flags
	directoryType = flag.String("directory", "http", "Contact directory type (http, memory)")
	directoryURL  = flag.String("directory-url", "http://localhost:8080/api/contacts", "Contact directory endpoint")
	directoryKey  = flag.String("api-key", "", "API key for the contact directory")

	// Input flags
	inputFile  = flag.String("file", "", "Input statement export (use stdin if not specified)")
	outputFile = flag.String("output", "", "Append updated records to this JSONL file")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog    = flag.Bool("json-log", false, "Output logs in JSON format")
	configFile = flag.String("config", "", "Path to config file (overrides command line flags)")
)

func main() {
	flag.Parse()

	// Initialize logger
	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Load configuration from file if specified
	var cfg *config.Config
	if *configFile != "" {
		cfg, err = config.New()
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}
		logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
	} else {
		// Create config from command line flags
		cfg = createConfigFromFlags()
	}

	text := utils.NewTextProcessor(logger)

	// First-name source, snapshot store and oracle
	nameFactory := factory.NewNameSourceFactory(cfg, logger)
	source, err := nameFactory.CreateFirstNameSource()
	if err != nil {
		logger.Fatal("Failed to create first-name source", zap.Error(err))
	}

	store, err := factory.NewKVStoreFactory(cfg, logger).CreateKVStore()
	if err != nil {
		logger.Fatal("Failed to create KV store", zap.Error(err))
	}

	oracle, err := nameFactory.CreateOracle(source, store, text)
	if err != nil {
		logger.Fatal("Failed to create first-name oracle", zap.Error(err))
	}

	// Contact directory
	dir, err := factory.NewDirectoryFactory(cfg, logger).CreateContactDirectory()
	if err != nil {
		logger.Fatal("Failed to create contact directory", zap.Error(err))
	}

	// Contact resolver
	service, err := factory.NewResolverFactory(cfg, logger).CreateResolver(dir, oracle)
	if err != nil {
		logger.Fatal("Failed to create contact resolver", zap.Error(err))
	}

	// Optional write-back sink
	var recordSink core.RecordSink
	if *outputFile != "" {
		jsonlSink, err := sink.NewJSONLSink(*outputFile, logger)
		if err != nil {
			logger.Fatal("Failed to open output file", zap.Error(err))
		}
		defer jsonlSink.Close()
		recordSink = jsonlSink
	}

	cliIntake, err := intake.NewCliIntake(service, recordSink, logger, *verbose)
	if err != nil {
		logger.Fatal("Failed to create intake", zap.Error(err))
	}

	// Read records from file or stdin
	var reader io.Reader
	if *inputFile != "" {
		file, err := os.Open(*inputFile)
		if err != nil {
			logger.Fatal("Failed to open input file", zap.Error(err), zap.String("file", *inputFile))
		}
		defer file.Close()
		reader = file
		logger.Info("Reading statement export from file", zap.String("file", *inputFile))
	} else {
		reader = os.Stdin
		logger.Info("Reading statement export from stdin")
	}

	records, err := intake.ParseCSVRecords(reader, text)
	if err != nil {
		logger.Fatal("Failed to parse statement export", zap.Error(err))
	}

	var resolved, skipped, failed int
	for _, record := range records {
		res, err := cliIntake.ProcessRecord(context.Background(), record)
		if err != nil {
			failed++
			continue
		}
		switch res.Outcome {
		case core.OutcomeResolved:
			resolved++
		case core.OutcomeSkipped:
			skipped++
		default:
			failed++
		}
	}

	// Print summary
	fmt.Printf("\n=== Summary ===\n")
	fmt.Printf("Records: %d\n", len(records))
	fmt.Printf("Resolved: %d\n", resolved)
	fmt.Printf("Skipped: %d\n", skipped)
	fmt.Printf("Failed: %d\n", failed)

	// Close any resources that need closing
	if closer, ok := source.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close first-name source", zap.Error(err))
		}
	}
	if err := store.Close(); err != nil {
		logger.Error("Failed to close KV store", zap.Error(err))
	}
}

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags() *config.Config {
	v := config.NewEmptyViper()

	// Set resolver configuration
	v.Set("resolver.profile", *profile)
	v.Set("resolver.name_mode", *nameMode)
	v.Set("resolver.contact_type", *contactType)
	v.Set("resolver.output_field", *outputField)
	v.Set("resolver.fail_open", *failOpen)
	if *requiredFields != "" {
		v.Set("resolver.required_fields", splitList(*requiredFields))
	}
	if *fieldMapping != "" {
		v.Set("resolver.field_mapping", splitList(*fieldMapping))
	}

	// Set first-name oracle configuration
	v.Set("names.source", *namesSource)
	v.Set("names.ttl", *namesTTL)
	if *firstNames != "" {
		v.Set("names.static_names", splitList(*firstNames))
	}

	// Set directory configuration
	v.Set("directory.type", *directoryType)
	v.Set("directory.base_url", *directoryURL)
	v.Set("directory.api_key", *directoryKey)

	// Persist first-name snapshots only when a cache path is given
	if *cachePath != "" {
		v.Set("cache.type", "sqlite")
		v.Set("cache.sqlite_path", *cachePath)
	}

	return config.NewFromViper(v)
}

// splitList splits a comma-separated flag value into trimmed entries.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
