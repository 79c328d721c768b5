package reporttemplar_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/nikitaxru/reporttemplar"
)

// CatalogSuite — загрузка и проверка каталога шаблонов
type CatalogSuite struct {
	suite.Suite
}

func TestCatalogSuite(t *testing.T) {
	suite.Run(t, new(CatalogSuite))
}

const catalogYAML = `
templates:
  - code: RUN
    outputTemplate: "Бег {{dist}}, темп {{PACE(time, dist)}}"
    schema:
      - key: dist
        type: text
      - key: time
        type: time
  - code: LAPS
    isInline: true
    outputTemplate: "{{#each laps}}{{this}} {{/each}}"
    schema:
      - key: laps
        type: list
        itemType: time
        listSize: 4
        defaultValue: "1:30;1:30"
      - key: total
        type: time
        weight: "2 км"
`

func (s *CatalogSuite) TestLoadAndLookup() {
	path := filepath.Join(s.T().TempDir(), "templates.yaml")
	s.Require().NoError(os.WriteFile(path, []byte(catalogYAML), 0o644))

	c, err := reporttemplar.LoadCatalog(path)
	s.Require().NoError(err)
	s.Require().Len(c.Templates, 2)

	laps, err := c.Lookup("LAPS")
	s.Require().NoError(err)
	s.True(laps.IsInline)
	s.Equal(4, laps.Schema[0].ListSize)
	s.Equal(reporttemplar.FieldTime, laps.Schema[0].ItemType)
	s.Equal("2 км", laps.Schema[1].Weight)
	s.Equal("1:30 1:30 ", laps.Render(nil))

	run, err := c.Lookup("RUN")
	s.Require().NoError(err)
	s.Equal("Бег 10 км, темп 4:30", run.Render(reporttemplar.Values{"dist": "10 км", "time": "45:00"}))

	_, err = c.Lookup("NOPE")
	s.ErrorIs(err, reporttemplar.ErrUnknownTemplate)
}

func (s *CatalogSuite) TestMissingFile() {
	_, err := reporttemplar.LoadCatalog(filepath.Join(s.T().TempDir(), "none.yaml"))
	s.Error(err)
}

func (s *CatalogSuite) TestValidation() {
	cases := map[string]string{
		"no code":       "templates:\n  - outputTemplate: x\n",
		"bad type":      "templates:\n  - code: A\n    schema:\n      - key: a\n        type: date\n",
		"bad item type": "templates:\n  - code: A\n    schema:\n      - key: a\n        type: list\n        itemType: list\n",
		"no key":        "templates:\n  - code: A\n    schema:\n      - type: text\n",
		"negative size": "templates:\n  - code: A\n    schema:\n      - key: a\n        type: list\n        listSize: -1\n",
		"broken yaml":   "templates: [",
	}
	for name, doc := range cases {
		s.Run(name, func() {
			_, err := reporttemplar.ParseCatalog([]byte(doc))
			s.Error(err)
		})
	}
}

func (s *CatalogSuite) TestDuplicateField() {
	doc := "templates:\n  - code: A\n    schema:\n      - key: a\n        type: text\n      - key: a\n        type: time\n"
	_, err := reporttemplar.ParseCatalog([]byte(doc))
	s.ErrorIs(err, reporttemplar.ErrDuplicateField)
}
