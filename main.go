package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/vocabkeep/internal/config"
	"github.com/example/vocabkeep/internal/database"
	"github.com/example/vocabkeep/internal/debt"
	"github.com/example/vocabkeep/internal/excel"
	"github.com/example/vocabkeep/internal/review"
	"github.com/example/vocabkeep/internal/scheduler"
)

func main() {
	importPath := flag.String("import", "", "import vocabulary from an .xlsx or .csv file and exit")
	showDebt := flag.Bool("debt", false, "print the current debt report and exit")
	flag.Parse()

	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	service := review.NewService(db)

	if *importPath != "" {
		runImport(db, service, *importPath)
		return
	}

	if *showDebt {
		printDebtReport(service)
		return
	}

	// Shutdown signal channel
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	sched := scheduler.New(service, &logNotifier{}, cfg.DigestHour)
	sched.Start()

	log.Printf("vocabkeep started, daily digest at %02d:00 AEST. Press Ctrl+C to stop.", cfg.DigestHour)

	sig := <-sigChan
	log.Printf("Received signal: %v", sig)

	sched.Stop()
	log.Println("vocabkeep stopped successfully")
}

// runImport loads a spreadsheet into the word store
func runImport(db *database.DB, service *review.Service, path string) {
	importConfig := excel.DefaultImportConfig()
	importConfig.FilePath = path

	importer := excel.New(db, service)
	result, err := importer.ImportFile(context.Background(), importConfig)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	log.Printf("Import completed: %d processed, %d created, %d updated, %d errors",
		result.TotalProcessed, result.Created, result.Updated, len(result.Errors))
	for _, e := range result.Errors {
		log.Printf("  %s", e)
	}
}

// printDebtReport writes the debt report to stdout
func printDebtReport(service *review.Service) {
	report, err := service.DebtReport(context.Background())
	if err != nil {
		log.Fatalf("Failed to compute debt report: %v", err)
	}

	fmt.Printf("Total debt: %d\n", report.TotalDebt)
	for _, day := range report.Breakdown {
		fmt.Printf("  %s  %+d\n", day.Date, day.Debt)
	}
}

// logNotifier writes the daily digest to the application log
type logNotifier struct{}

func (n *logNotifier) SendDigest(report debt.Report, dueWords int) error {
	log.Printf("Daily digest: total debt %d, %d words due for review", report.TotalDebt, dueWords)
	return nil
}
