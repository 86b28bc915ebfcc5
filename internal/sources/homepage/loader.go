package homepage

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Supported seed file formats.
const (
	FormatBookmarks = "bookmarks"
	FormatServices  = "services"
)

// templateVar matches Homepage template variables ({{HOMEPAGE_VAR_...}})
var templateVar = regexp.MustCompile(`\{\{[^}]+\}\}`)

// Loader reads a Homepage services.yaml or bookmarks.yaml file
type Loader struct {
	filePath string
}

// NewLoader creates a new Homepage loader
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// LoadBookmarks reads and parses a bookmarks.yaml file
func (l *Loader) LoadBookmarks() (BookmarksConfig, error) {
	var config BookmarksConfig
	if err := l.decode(&config); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadServices reads and parses a services.yaml file
func (l *Loader) LoadServices() (ServicesConfig, error) {
	var config ServicesConfig
	if err := l.decode(&config); err != nil {
		return nil, err
	}
	return config, nil
}

func (l *Loader) decode(out any) error {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", l.filePath, err)
	}

	data = stripTemplateVariables(data)

	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", l.filePath, err)
	}
	return nil
}

// stripTemplateVariables removes Homepage template variables from YAML
// Example: {{HOMEPAGE_VAR_ADGUARD_USER}} -> ""
func stripTemplateVariables(data []byte) []byte {
	return templateVar.ReplaceAll(data, []byte(`""`))
}
