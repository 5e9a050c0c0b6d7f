package intake

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"payermatch/internal/core"
	"payermatch/internal/utils"
)

// CSVIntake watches a spool directory for CSV statement exports and resolves
// every row. Processed files move to the done directory. Exports are
// expected to land in the spool atomically (written elsewhere, then
// renamed), so a create event means a complete file.
type CSVIntake struct {
	resolver
	text     *utils.TextProcessor
	spoolDir string
	doneDir  string
	watcher  *fsnotify.Watcher
	stopCh   chan struct{}
}

// NewCSVIntake creates a new CSV spool intake
func NewCSVIntake(
	service *core.ContactResolver,
	sink core.RecordSink,
	text *utils.TextProcessor,
	logger *zap.Logger,
	spoolDir, doneDir string,
) *CSVIntake {
	return &CSVIntake{
		resolver: resolver{service: service, sink: sink, logger: logger},
		text:     text,
		spoolDir: spoolDir,
		doneDir:  doneDir,
		stopCh:   make(chan struct{}),
	}
}

// Start begins watching the spool directory. Exports already waiting in the
// spool are processed first.
func (f *CSVIntake) Start() error {
	if err := os.MkdirAll(f.spoolDir, 0o755); err != nil {
		return fmt.Errorf("failed to create spool directory: %w", err)
	}
	if err := os.MkdirAll(f.doneDir, 0o755); err != nil {
		return fmt.Errorf("failed to create done directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create spool watcher: %w", err)
	}
	if err := watcher.Add(f.spoolDir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch spool directory: %w", err)
	}
	f.watcher = watcher

	go f.run()

	f.logger.Info("CSV intake watching spool directory",
		zap.String("spool_dir", f.spoolDir),
		zap.String("done_dir", f.doneDir))

	return nil
}

// Stop stops watching the spool directory
func (f *CSVIntake) Stop() error {
	close(f.stopCh)
	if f.watcher != nil {
		return f.watcher.Close()
	}
	return nil
}

func (f *CSVIntake) run() {
	f.drainSpool()

	for {
		select {
		case event, ok := <-f.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Rename) != 0 && isCSVFile(event.Name) {
				f.processFile(event.Name)
			}
		case err, ok := <-f.watcher.Errors:
			if !ok {
				return
			}
			f.logger.Error("Spool watcher error", zap.Error(err))
		case <-f.stopCh:
			return
		}
	}
}

// drainSpool processes exports that arrived while the intake was down.
func (f *CSVIntake) drainSpool() {
	entries, err := os.ReadDir(f.spoolDir)
	if err != nil {
		f.logger.Error("Failed to scan spool directory", zap.Error(err))
		return
	}
	for _, entry := range entries {
		if entry.IsDir() || !isCSVFile(entry.Name()) {
			continue
		}
		f.processFile(filepath.Join(f.spoolDir, entry.Name()))
	}
}

func (f *CSVIntake) processFile(path string) {
	name := filepath.Base(path)

	file, err := os.Open(path)
	if err != nil {
		f.logger.Error("Failed to open statement export",
			zap.String("file", name),
			zap.Error(err))
		return
	}
	records, parseErr := ParseCSVRecords(file, f.text)
	file.Close()

	if parseErr != nil {
		f.logger.Error("Failed to parse statement export",
			zap.String("file", name),
			zap.Error(parseErr))
	}

	stats := f.processRecords(context.Background(), records, name)
	f.logger.Info("Statement export processed", stats.fields(name)...)

	f.finishFile(path)
}

// finishFile moves a processed export out of the spool so it is not picked
// up again.
func (f *CSVIntake) finishFile(path string) {
	done := filepath.Join(f.doneDir, filepath.Base(path))
	if _, err := os.Stat(done); err == nil {
		done = fmt.Sprintf("%s.%d", done, time.Now().UnixNano())
	}
	if err := os.Rename(path, done); err != nil {
		f.logger.Error("Failed to move processed export",
			zap.String("file", path),
			zap.Error(err))
	}
}

func isCSVFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".csv")
}
