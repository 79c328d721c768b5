package reporttemplar_test

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"

	"github.com/nikitaxru/reporttemplar"
)

// WorkbookSuite — выгрузка собранного отчёта в Excel
type WorkbookSuite struct {
	suite.Suite
}

func TestWorkbookSuite(t *testing.T) {
	suite.Run(t, new(WorkbookSuite))
}

func (s *WorkbookSuite) TestWriteReportWorkbook() {
	out := filepath.Join(s.T().TempDir(), "report.xlsx")
	items := []reporttemplar.Item{
		{ID: "b1", Code: "A", Text: "Старт {{B}}"},
		{ID: "b2", Code: "B", Text: "вставка"},
		{ID: "b3", Code: "C", Text: "хвост", IsInline: true},
	}
	s.Require().NoError(reporttemplar.WriteReportWorkbook(out, items), "write")

	f, err := excelize.OpenFile(out)
	s.Require().NoError(err, "open result")
	defer func() { _ = f.Close() }()

	v, err := f.GetCellValue("Отчёт", "A1")
	s.Require().NoError(err)
	s.Equal("Старт вставка хвост", v)

	rows, err := f.GetRows("Блоки")
	s.Require().NoError(err)
	s.Require().Len(rows, 4, "header + 3 blocks")
	s.Equal([]string{"№", "Код", "Вид", "Статус", "Текст"}, rows[0])
	s.Equal([]string{"1", "A", "абзац", "в тексте", "Старт {{B}}"}, rows[1])
	s.Equal("подставлен", rows[2][3])
	s.Equal("строчный", rows[3][2])

	// каждый блок пишется со второй строки, по строке на блок
	for i, it := range items {
		cell, err := f.GetCellValue("Блоки", fmt.Sprintf("A%d", i+2))
		s.Require().NoError(err)
		s.Equal(fmt.Sprint(i+1), cell, it.Code)
	}
}

func (s *WorkbookSuite) TestWriteToMissingDir() {
	out := filepath.Join(s.T().TempDir(), "нет", "report.xlsx")
	s.Error(reporttemplar.WriteReportWorkbook(out, nil))
}
