package factory

import (
	"fmt"

	"go.uber.org/zap"

	"payermatch/internal/adapters/intake"
	"payermatch/internal/config"
	"payermatch/internal/core"
	"payermatch/internal/ports"
	"payermatch/internal/utils"
)

// IntakeFactory creates record intakes based on configuration
type IntakeFactory struct {
	cfg     *config.Config
	logger  *zap.Logger
	service *core.ContactResolver
	sink    core.RecordSink
	text    *utils.TextProcessor
}

// NewIntakeFactory creates a new intake factory
func NewIntakeFactory(
	cfg *config.Config,
	logger *zap.Logger,
	service *core.ContactResolver,
	sink core.RecordSink,
	text *utils.TextProcessor,
) *IntakeFactory {
	return &IntakeFactory{
		cfg:     cfg,
		logger:  logger,
		service: service,
		sink:    sink,
		text:    text,
	}
}

// CreateRecordIntake creates a record intake based on the configuration
func (f *IntakeFactory) CreateRecordIntake() (ports.RecordIntake, error) {
	intakeCfg := f.cfg.GetIntake()

	switch intakeCfg.Type {
	case "csv":
		return intake.NewCSVIntake(
			f.service,
			f.sink,
			f.text,
			f.logger,
			intakeCfg.CSVSpoolDir,
			intakeCfg.CSVDoneDir,
		), nil
	case "smtp":
		return intake.NewSMTPIntake(
			f.service,
			f.sink,
			f.text,
			f.logger,
			intakeCfg.SMTPListenAddr,
			intakeCfg.SMTPDomain,
			intakeCfg.MaxMessageBytes,
		), nil
	case "cli":
		return intake.NewCliIntake(
			f.service,
			f.sink,
			f.logger,
			f.cfg.GetBool("cli.verbose"),
		)
	default:
		return nil, fmt.Errorf("unsupported intake type: %s", intakeCfg.Type)
	}
}
