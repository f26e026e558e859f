package roast

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	NamePlaceholder = "{name}"

	promptCount      = 10
	personalityCount = 7
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Catalog фиксированные наборы шаблонов промпта и ярлыков.
type Catalog struct {
	Prompts       []string `yaml:"prompts"`
	Personalities []string `yaml:"personalities"`
}

// DefaultCatalog возвращает встроенный каталог.
func DefaultCatalog() (Catalog, error) {
	return ParseCatalog(defaultCatalog)
}

// ParseCatalog декодирует YAML и проверяет размеры наборов.
func ParseCatalog(data []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

func (c Catalog) Validate() error {
	if len(c.Prompts) != promptCount {
		return fmt.Errorf("catalog: want %d prompts, got %d", promptCount, len(c.Prompts))
	}
	for i, p := range c.Prompts {
		if !strings.Contains(p, NamePlaceholder) {
			return fmt.Errorf("catalog: prompt %d has no %s placeholder", i, NamePlaceholder)
		}
	}
	if len(c.Personalities) != personalityCount {
		return fmt.Errorf("catalog: want %d personalities, got %d", personalityCount, len(c.Personalities))
	}
	for i, p := range c.Personalities {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("catalog: personality %d is empty", i)
		}
	}
	return nil
}

// ComposePrompt подставляет имя во все вхождения плейсхолдера.
func ComposePrompt(template, name string) string {
	return strings.ReplaceAll(template, NamePlaceholder, name)
}
