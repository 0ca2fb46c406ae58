// Package config loads the removable-sections configuration of
// spec.md §6 once at startup. It is read-only after construction and may
// be shared across worker goroutines (spec.md §5 "Shared resources").
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
	"gopkg.in/yaml.v3"

	"github.com/wikimedia/cxserver-lineardoc/lineardoc"
)

// Config is the top-level configuration mapping.
type Config struct {
	RemovableSections lineardoc.RemovableSectionsConfig `yaml:"removableSections"`
}

// Load reads path and parses it as YAML, unless its extension is ".xml",
// in which case the legacy XML removable-sections format is parsed
// instead (some deployments still ship that format).
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &lineardoc.ConfigError{Field: path, Err: err}
	}
	if strings.EqualFold(filepath.Ext(path), ".xml") {
		return parseXML(data)
	}
	return parseYAML(data)
}

func parseYAML(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &lineardoc.ConfigError{Field: "removableSections", Err: err}
	}
	return &cfg, nil
}

// parseXML parses the legacy <removableSections> XML format:
//
//	<removableSections>
//	  <classes><class>ambox</class>...</classes>
//	  <rdfa><typeof>mw:Extension/ref</typeof>...</rdfa>
//	  <templates><template>Short description</template>...</templates>
//	</removableSections>
func parseXML(data []byte) (*Config, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, &lineardoc.ConfigError{Field: "removableSections", Err: err}
	}
	root := doc.SelectElement("removableSections")
	if root == nil {
		return nil, &lineardoc.ConfigError{Field: "removableSections", Err: errMissingRoot}
	}
	cfg := &Config{}
	if classes := root.SelectElement("classes"); classes != nil {
		for _, e := range classes.SelectElements("class") {
			cfg.RemovableSections.Classes = append(cfg.RemovableSections.Classes, e.Text())
		}
	}
	if rdfa := root.SelectElement("rdfa"); rdfa != nil {
		for _, e := range rdfa.SelectElements("typeof") {
			cfg.RemovableSections.RDFa = append(cfg.RemovableSections.RDFa, e.Text())
		}
	}
	if templates := root.SelectElement("templates"); templates != nil {
		for _, e := range templates.SelectElements("template") {
			cfg.RemovableSections.Templates = append(cfg.RemovableSections.Templates, e.Text())
		}
	}
	return cfg, nil
}

var errMissingRoot = xmlRootError("missing <removableSections> root element")

type xmlRootError string

func (e xmlRootError) Error() string { return string(e) }
