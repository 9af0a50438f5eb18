package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"casetrack/application"
	"casetrack/config"
	"casetrack/database"
	"casetrack/repository"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	// Optional .env for local development; real deployments set the
	// environment directly
	_ = godotenv.Load()

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	// Check for migration subcommands
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if err := handleMigrationCommand(); err != nil {
			log.WithError(err).Fatal("Migration error")
		}
		return
	}

	// Check for import subcommand
	if len(os.Args) > 1 && os.Args[1] == "import" {
		if err := handleImportCommand(); err != nil {
			log.WithError(err).Fatal("Import error")
		}
		return
	}

	// Check for template export subcommand
	if len(os.Args) > 1 && os.Args[1] == "export-template" {
		if err := handleExportTemplateCommand(); err != nil {
			log.WithError(err).Fatal("Template export error")
		}
		return
	}

	fmt.Fprintln(os.Stderr, "usage: casetrack [migrate|import|export-template] [args...]")
	os.Exit(1)
}

func handleMigrationCommand() error {
	if len(os.Args) < 3 {
		return fmt.Errorf("usage: casetrack migrate [up|down|status] [args...]")
	}

	command := os.Args[2]
	switch command {
	case "up":
		return database.MigrateUp()
	case "down":
		steps := "1"
		if len(os.Args) > 3 {
			steps = os.Args[3]
		}
		return database.MigrateDown(steps)
	case "status":
		return database.MigrateStatus()
	default:
		return fmt.Errorf("unknown migration command: %s", command)
	}
}

// handleImportCommand parses and reconciles one workbook:
// casetrack import <file> [tenant-id]
func handleImportCommand() error {
	if len(os.Args) < 3 {
		return fmt.Errorf("usage: casetrack import <file.xlsx> [tenant-id]")
	}

	ctx, cancel := signalContext()
	defer cancel()

	cfg := config.Get()
	tenantID := cfg.DefaultTenantID
	if len(os.Args) > 3 {
		parsed, err := strconv.ParseInt(os.Args[3], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid tenant id: %w", err)
		}
		tenantID = parsed
	}

	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	f, err := os.Open(os.Args[2])
	if err != nil {
		return fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	tracker := application.NewCaseTracker(repository.NewUnitOfWorkFactory(db))

	rows, err := tracker.ParseImportFile(ctx, tenantID, f, cfg.Product)
	if err != nil {
		return err
	}

	result, err := tracker.ReconcileBulkUpload(ctx, tenantID, rows)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"batch_id":      result.BatchID,
		"uploaded":      result.TotalUploaded,
		"auto_assigned": result.AutoAssigned,
		"unassigned":    result.Unassigned,
		"errors":        len(result.Errors),
	}).Info("Import complete")
	for _, rowErr := range result.Errors {
		log.WithField("row", rowErr.RowIndex).Warn(rowErr.Message)
	}
	return nil
}

// handleExportTemplateCommand writes a blank upload template:
// casetrack export-template <file> [tenant-id]
func handleExportTemplateCommand() error {
	if len(os.Args) < 3 {
		return fmt.Errorf("usage: casetrack export-template <file.xlsx> [tenant-id]")
	}

	ctx, cancel := signalContext()
	defer cancel()

	cfg := config.Get()
	tenantID := cfg.DefaultTenantID
	if len(os.Args) > 3 {
		parsed, err := strconv.ParseInt(os.Args[3], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid tenant id: %w", err)
		}
		tenantID = parsed
	}

	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	f, err := os.Create(os.Args[2])
	if err != nil {
		return fmt.Errorf("failed to create template file: %w", err)
	}
	defer f.Close()

	tracker := application.NewCaseTracker(repository.NewUnitOfWorkFactory(db))
	return tracker.ExportTemplate(ctx, tenantID, cfg.Product, f)
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("Received shutdown signal, shutting down gracefully...")
		cancel()
	}()
	return ctx, cancel
}
