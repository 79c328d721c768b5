package reporttemplar

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownTemplate — в каталоге нет шаблона с таким кодом.
	ErrUnknownTemplate = errors.New("unknown template")
	// ErrDuplicateField — ключ поля повторяется внутри одного шаблона.
	ErrDuplicateField = errors.New("duplicate field key")
)

// Catalog — набор шаблонов, загруженный из YAML. Коды могут повторяться.
type Catalog struct {
	Templates []*Template `yaml:"templates" validate:"dive,required"`
}

var validate = validator.New()

// LoadCatalog читает и проверяет каталог шаблонов из файла.
func LoadCatalog(path string) (*Catalog, error) {
	log.Printf("📁 Загрузка каталога шаблонов: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("❌ Ошибка чтения каталога: %v", err)
		return nil, err
	}
	c, err := ParseCatalog(data)
	if err != nil {
		log.Printf("❌ Ошибка разбора каталога: %v", err)
		return nil, err
	}
	log.Printf("✅ Загружено шаблонов: %d", len(c.Templates))
	return c, nil
}

// ParseCatalog разбирает YAML-документ вида:
//
//	templates:
//	  - code: RUN
//	    outputTemplate: "Бег {{dist}}"
//	    schema:
//	      - key: dist
//	        type: text
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("каталог: %w", err)
	}
	if err := validate.Struct(&c); err != nil {
		return nil, fmt.Errorf("каталог: %w", err)
	}
	for _, t := range c.Templates {
		seen := make(map[string]struct{}, len(t.Schema))
		for _, fd := range t.Schema {
			if _, ok := seen[fd.Key]; ok {
				return nil, fmt.Errorf("шаблон %s, поле %s: %w", t.Code, fd.Key, ErrDuplicateField)
			}
			seen[fd.Key] = struct{}{}
		}
	}
	return &c, nil
}

// Lookup возвращает первый шаблон с данным кодом.
func (c *Catalog) Lookup(code string) (*Template, error) {
	for _, t := range c.Templates {
		if t.Code == code {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", code, ErrUnknownTemplate)
}
