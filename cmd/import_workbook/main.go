// Разовая загрузка книг из командной строки: прогоняет файлы через
// конвейер и применяет результат к хранилищу без запуска сервера.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/database"
	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/importer"
	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/logging"
	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/matching"
	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/registry"
	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/server/monitoring"
	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/server/services"
)

func main() {
	dbPath := flag.String("db", "simpilot.db", "путь к базе данных")
	projectID := flag.String("project", "", "id проекта, к которому применяется загрузка")
	parallelism := flag.Int("parallelism", 4, "число конкурентно разбираемых файлов")
	dryRun := flag.Bool("dry-run", false, "только разобрать и показать итог, без записи в базу")
	verbose := flag.Bool("v", false, "подробный лог")
	flag.Parse()

	files := flag.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "Использование: import_workbook -project <id> [-db <путь>] файл.xlsx [файл2.xlsx ...]")
		os.Exit(2)
	}
	if *projectID == "" && !*dryRun {
		log.Fatal("флаг -project обязателен (или используйте -dry-run)")
	}

	level := "warn"
	if *verbose {
		level = "debug"
	}
	logger, err := logging.New(level, true)
	if err != nil {
		log.Fatalf("Ошибка настройки логгера: %v", err)
	}
	defer logger.Sync()

	reg := registry.New()
	pipeline := importer.NewPipeline(reg, matching.DefaultScoringConfig(), logger)

	if *dryRun {
		results := pipeline.ProcessBatch(context.Background(), files, *parallelism)
		report, _ := json.MarshalIndent(results, "", "  ")
		fmt.Println(string(report))
		return
	}

	db, err := database.Open(*dbPath)
	if err != nil {
		logger.Fatalw("failed to open database", "path", *dbPath, "error", err)
	}
	defer db.Close()

	uploads := services.NewUploadService(db, pipeline, monitoring.NewMetricsCollector(),
		logger, os.TempDir(), 1024, *parallelism)

	report, err := uploads.Ingest(context.Background(), *projectID, files)
	if err != nil {
		logger.Fatalw("ingest failed", "error", err)
	}

	fmt.Printf("Прогон %s завершен\n", report.ImportRunID)
	fmt.Printf("  файлов: %d, предупреждений: %d\n", len(report.Files), len(report.Warnings))
	fmt.Printf("  станций: +%d / ~%d, роботов: +%d, инструментов: +%d\n",
		report.Stats.Cells.Added, report.Stats.Cells.Replaced,
		report.Stats.Robots.Added, report.Stats.Tools.Added)
	for _, warning := range report.Warnings {
		fmt.Printf("  ! %s\n", warning.String())
	}
}
