package reporttemplar

import (
	"fmt"
	"log"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	reportSheet = "Отчёт"
	blocksSheet = "Блоки"
)

// itemStatus — подпись для таблицы блоков.
func itemStatus(consumed bool) string {
	if consumed {
		return "подставлен"
	}
	return "в тексте"
}

func inlineCell(inline bool) string {
	if inline {
		return "строчный"
	}
	return "абзац"
}

// WriteReportWorkbook собирает блоки и записывает результат в Excel:
// лист "Отчёт" — итоговый текст, лист "Блоки" — по строке на каждый элемент.
func WriteReportWorkbook(destPath string, items []Item) error {
	log.Printf("📊 Начинаем запись отчёта в Excel...")
	log.Printf("📄 Выходной файл: %s", destPath)
	log.Printf("📝 Количество блоков: %d", len(items))
	startTime := time.Now()

	comp := Resolve(items)

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return err
	}
	wrap, err := f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"}})
	if err != nil {
		return err
	}
	if err := f.SetColWidth(reportSheet, "A", "A", 100); err != nil {
		return err
	}
	if err := f.SetCellValue(reportSheet, "A1", comp.Text); err != nil {
		return err
	}
	if err := f.SetCellStyle(reportSheet, "A1", "A1", wrap); err != nil {
		return err
	}

	if _, err := f.NewSheet(blocksSheet); err != nil {
		return err
	}
	header := []interface{}{"№", "Код", "Вид", "Статус", "Текст"}
	if err := f.SetSheetRow(blocksSheet, "A1", &header); err != nil {
		return err
	}
	for i, it := range items {
		addr, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{i + 1, it.Code, inlineCell(it.IsInline), itemStatus(comp.IsConsumed(i)), it.Text}
		if err := f.SetSheetRow(blocksSheet, addr, &row); err != nil {
			return fmt.Errorf("строка %d: %w", i+2, err)
		}
	}
	if err := f.SetColWidth(blocksSheet, "E", "E", 80); err != nil {
		return err
	}

	log.Printf("💾 Сохранение файла...")
	if err := f.SaveAs(destPath); err != nil {
		log.Printf("❌ Ошибка сохранения: %v", err)
		return err
	}
	log.Printf("✅ Excel файл создан за %v", time.Since(startTime))
	return nil
}
