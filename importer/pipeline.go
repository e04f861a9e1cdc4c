package importer

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/entities"
	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/matching"
	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/profiling"
	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/registry"
)

// SheetResult итог обработки одного листа книги
type SheetResult struct {
	Profile  profiling.SheetProfile  `json:"profile"`
	Category matching.CategoryResult `json:"category"`
	FieldMap map[string][]int        `json:"field_map"`
}

// FileResult итог обработки одного файла. Неуспех одного файла не
// прерывает пакет: ошибки агрегируются и отдаются рядом с успехами.
type FileResult struct {
	File       string             `json:"file"`
	WorkbookID string             `json:"workbook_id"`
	Sheets     []SheetResult      `json:"sheets"`
	Parsed     ParsedSheet        `json:"parsed"`
	Warnings   []entities.Warning `json:"warnings,omitempty"`
	Err        string             `json:"error,omitempty"`
}

// Failed сообщает, завершилась ли обработка файла ошибкой
func (r *FileResult) Failed() bool { return r.Err != "" }

// Pipeline конвейер загрузки: чтение книги, профилирование, сопоставление,
// распознавание категории и построчный разбор
type Pipeline struct {
	registry *registry.Registry
	matcher  *matching.Matcher
	log      *zap.SugaredLogger
}

// NewPipeline собирает конвейер загрузки
func NewPipeline(reg *registry.Registry, cfg matching.ScoringConfig, log *zap.SugaredLogger) *Pipeline {
	return &Pipeline{
		registry: reg,
		matcher:  matching.NewMatcher(reg, cfg),
		log:      log,
	}
}

// ProcessFile обрабатывает одну книгу. Паника внутри обработки одного
// файла перехватывается и превращается в PARSER_ERROR: один плохой файл
// не должен ронять остальные.
func (p *Pipeline) ProcessFile(path string) (result *FileResult) {
	name := filepath.Base(path)
	result = &FileResult{
		File:       name,
		WorkbookID: entities.StableID("wb", name),
	}

	defer func() {
		if r := recover(); r != nil {
			p.log.Errorw("panic while processing workbook", "file", name, "panic", r)
			result.Err = fmt.Sprintf("panic: %v", r)
			result.Warnings = append(result.Warnings, entities.Warning{
				Code: entities.WarnParserError, File: name,
				Details: fmt.Sprintf("unexpected failure: %v", r),
			})
		}
	}()

	sheets, err := ReadWorkbook(path)
	if err != nil {
		result.Err = err.Error()
		result.Warnings = append(result.Warnings, entities.Warning{
			Code: entities.WarnParserError, File: name, Details: err.Error(),
		})
		return result
	}

	for i, sheet := range sheets {
		sheetResult := p.processSheet(result.WorkbookID, name, i, sheet, &result.Parsed)
		result.Sheets = append(result.Sheets, sheetResult)
	}
	result.Warnings = append(result.Warnings, result.Parsed.Warnings...)
	result.Parsed.Warnings = nil

	p.log.Infow("workbook processed",
		"file", name,
		"sheets", len(result.Sheets),
		"cells", len(result.Parsed.Cells),
		"robots", len(result.Parsed.Robots),
		"tools", len(result.Parsed.Tools),
		"warnings", len(result.Warnings))
	return result
}

// processSheet профилирует и разбирает один лист
func (p *Pipeline) processSheet(workbookID, source string, index int, sheet profiling.RawSheet, into *ParsedSheet) SheetResult {
	profile := profiling.ProfileSheet(workbookID, index, sheet)
	results := p.matcher.MatchSheet(profile)
	category := matching.DetectCategory(p.registry, results)

	sheetResult := SheetResult{
		Profile:  profile,
		Category: category,
		FieldMap: matching.FieldColumnMap(results),
	}

	ctx := &sheetContext{
		source:    source,
		sheet:     sheet,
		profile:   profile,
		results:   results,
		fieldCols: sheetResult.FieldMap,
	}

	var parsed ParsedSheet
	switch category.Category {
	case matching.CategorySimulationStatus:
		parsed = parseSimulationStatus(ctx)
	case matching.CategoryGunForce:
		parsed = parseGunForce(ctx)
	case matching.CategoryRobotList:
		parsed = parseRobotList(ctx)
	case matching.CategoryToolList:
		parsed = parseToolList(ctx)
	case matching.CategoryProjectList:
		parsed = parseProjectList(ctx)
	default:
		parsed = ParsedSheet{Category: matching.CategoryUnknown}
		if profile.RowCount > 0 {
			parsed.Warnings = append(parsed.Warnings, entities.Warning{
				Code: entities.WarnUnknownFileType, File: source, Sheet: sheet.Name,
				Details: fmt.Sprintf("sheet category not recognized (best score %d)", category.Score),
			})
		}
	}

	into.merge(parsed)
	return sheetResult
}

// ProcessBatch обрабатывает набор файлов конкурентно с ограничением
// параллелизма. Результаты возвращаются в порядке входных путей;
// применение результатов к хранилищу остается за вызывающим кодом и
// выполняется последовательно.
func (p *Pipeline) ProcessBatch(ctx context.Context, paths []string, parallelism int) []*FileResult {
	if parallelism < 1 {
		parallelism = 1
	}

	results := make([]*FileResult, len(paths))
	group, _ := errgroup.WithContext(ctx)
	group.SetLimit(parallelism)

	for i, path := range paths {
		i, path := i, path
		group.Go(func() error {
			select {
			case <-ctx.Done():
				// Отмена пакета: файл просто не обрабатывается, частичных
				// записей не остается, так как применение отделено от разбора
				results[i] = &FileResult{File: filepath.Base(path), Err: ctx.Err().Error()}
				return nil
			default:
			}
			results[i] = p.ProcessFile(path)
			return nil
		})
	}

	// Ошибок горутины не возвращают: неуспех файла записан в его результат
	_ = group.Wait()
	return results
}
