package lineardoc

import (
	"encoding/json"
	"regexp"
	"strings"
)

// RemovableSectionsConfig is the removableSections mapping of spec.md §6,
// loaded once at startup by internal/config and handed to
// NewMWContextualizer.
type RemovableSectionsConfig struct {
	Classes   []string
	RDFa      []string
	Templates []string
}

// templateMatcher is one entry of the templates list: either an exact
// match against a template name, or (when the source entry was wrapped
// in "/.../") a compiled regex.
type templateMatcher struct {
	literal string
	re      *regexp.Regexp
}

func (m templateMatcher) match(name string) bool {
	if m.re != nil {
		return m.re.MatchString(name)
	}
	return m.literal == name
}

func compileTemplateMatchers(entries []string) ([]templateMatcher, error) {
	out := make([]templateMatcher, 0, len(entries))
	for _, e := range entries {
		if len(e) >= 2 && strings.HasPrefix(e, "/") && strings.HasSuffix(e, "/") {
			pattern := e[1 : len(e)-1]
			re, err := regexp.Compile(pattern)
			if err != nil {
				return nil, &ConfigError{Field: "removableSections.templates", Err: err}
			}
			out = append(out, templateMatcher{re: re})
			continue
		}
		out = append(out, templateMatcher{literal: e})
	}
	return out, nil
}

// dataMW is the slice of the data-mw JSON schema needed to resolve a
// transclusion's template name (spec.md §6 "Input HTML contract").
type dataMW struct {
	Parts []struct {
		Template *struct {
			Target struct {
				Href string `json:"href"`
			} `json:"target"`
		} `json:"template"`
	} `json:"parts"`
}

// NewMWContextualizer builds a Contextualizer whose IsRemovable rule
// matches spec.md §4.5: a literal removable class, a literal removable
// typeof token, or (for transclusions) a data-mw template target matching
// one of the compiled template matchers.
func NewMWContextualizer(cfg RemovableSectionsConfig) (*Contextualizer, error) {
	classes := toSet(cfg.Classes)
	typeOfs := toSet(cfg.RDFa)
	matchers, err := compileTemplateMatchers(cfg.Templates)
	if err != nil {
		return nil, err
	}

	isRemovable := func(t *Tag) bool {
		if class, ok := t.Attrs.Get("class"); ok {
			for _, c := range field(class) {
				if classes[c] {
					return true
				}
			}
		}
		if typeOf, ok := t.Attrs.Get("typeof"); ok {
			for _, to := range field(typeOf) {
				if typeOfs[to] {
					return true
				}
			}
		}
		if IsTransclusion(t) {
			if raw, ok := t.Attrs.Get("data-mw"); ok {
				var dm dataMW
				if json.Unmarshal([]byte(raw), &dm) == nil {
					for _, part := range dm.Parts {
						if part.Template == nil {
							continue
						}
						name := strings.TrimPrefix(part.Template.Target.Href, "./Template:")
						for _, m := range matchers {
							if m.match(name) {
								return true
							}
						}
					}
				}
			}
		}
		return false
	}

	return NewContextualizer(isRemovable), nil
}

func toSet(items []string) map[string]bool {
	s := make(map[string]bool, len(items))
	for _, it := range items {
		s[it] = true
	}
	return s
}
