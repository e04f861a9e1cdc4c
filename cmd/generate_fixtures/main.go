// Генератор тестовых книг: создает нарочно неопрятные xlsx-файлы с
// мусорными строками перед заголовком, разнобоем в именах колонок и
// пропусками — такие, какие присылают из реальных проектов.
package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/xuri/excelize/v2"
)

// statusHeaders разнобой заголовков листа статуса, включая опечатки
var statusHeaders = []string{
	"Proyect", "Area", "Station", "Robotnumber (E-Number)", "Application",
	"Simulation Engineer", "1st Stage Completion [%]", "Final Deliverables [%]",
	"Robots Configured", "Guns Confirmed", "Coments",
}

var gunForceHeaders = []string{
	"Station", "Gun Name", "Gun Type", "Gun Force (kN)", "Lieferant", "Bemerkung",
}

var applications = []string{"SPOT", "SEALING", "HANDLING", "STUD", "GLUING"}

func main() {
	outDir := flag.String("out", "testdata", "каталог для сгенерированных книг")
	stations := flag.Int("stations", 40, "число станций в листе статуса")
	seed := flag.Int64("seed", 0, "зерно генератора, 0 — случайное")
	flag.Parse()

	if *seed != 0 {
		gofakeit.Seed(*seed)
	}

	if err := writeStatusWorkbook(filepath.Join(*outDir, "simulation_status.xlsx"), *stations); err != nil {
		log.Fatalf("Ошибка генерации книги статуса: %v", err)
	}
	if err := writeGunForceWorkbook(filepath.Join(*outDir, "gun_force.xlsx"), *stations/2); err != nil {
		log.Fatalf("Ошибка генерации книги клещей: %v", err)
	}
	fmt.Println("Книги записаны в", *outDir)
}

// writeStatusWorkbook лист статуса моделирования с мусором перед заголовком
func writeStatusWorkbook(path string, stations int) error {
	f := excelize.NewFile()
	sheet := "Simulation Status"
	f.SetSheetName(f.GetSheetName(0), sheet)

	// Мусорные строки до заголовка, как в реальных выгрузках
	f.SetCellValue(sheet, "A1", gofakeit.Company()+" - Simulation Tracking")
	f.SetCellValue(sheet, "A2", "Exported: "+gofakeit.Date().Format("02.01.2006"))

	for col, header := range statusHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 4)
		f.SetCellValue(sheet, cell, header)
	}

	project := gofakeit.Word()
	for i := 0; i < stations; i++ {
		row := 5 + i
		station := fmt.Sprintf("%03d0", 10+i)
		values := []interface{}{
			project,
			fmt.Sprintf("UB%d", 1+i%4),
			station,
			fmt.Sprintf("R%02d (E-%d)", 1+i%6, gofakeit.Number(100000, 999999)),
			applications[i%len(applications)],
			gofakeit.Name(),
			gofakeit.Number(0, 100),
			gofakeit.Number(0, 100),
			gofakeit.Number(0, 100),
			gofakeit.Number(0, 100),
			comment(i),
		}
		for col, value := range values {
			// Пропуски: часть ячеек остается пустой
			if gofakeit.Number(0, 9) == 0 && col > 4 {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, value)
		}
	}

	return f.SaveAs(path)
}

// writeGunForceWorkbook лист сварочных клещей с немецкими заголовками
func writeGunForceWorkbook(path string, guns int) error {
	f := excelize.NewFile()
	sheet := "Gun Force"
	f.SetSheetName(f.GetSheetName(0), sheet)

	for col, header := range gunForceHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for i := 0; i < guns; i++ {
		row := 2 + i
		values := []interface{}{
			fmt.Sprintf("%03d0", 10+i*2),
			fmt.Sprintf("GUN_%s_%02d", gofakeit.LetterN(2), i+1),
			gofakeit.RandomString([]string{"X-Gun", "C-Gun"}),
			// Часть значений приходит с запятой вместо точки
			fmt.Sprintf("%d,%d", gofakeit.Number(2, 6), gofakeit.Number(0, 9)),
			gofakeit.Company(),
			comment(i),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, value)
		}
	}

	return f.SaveAs(path)
}

func comment(i int) string {
	if i%3 != 0 {
		return ""
	}
	return gofakeit.Sentence(4)
}
