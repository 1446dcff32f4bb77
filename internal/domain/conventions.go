package domain

import "fmt"

// IndexPolicy says when a directory must carry an index.ts barrel file.
type IndexPolicy string

const (
	IndexAlways   IndexPolicy = "always"
	IndexNonEmpty IndexPolicy = "non_empty"
	IndexNone     IndexPolicy = "none"
)

// NameCase is a naming style for directories and files.
type NameCase string

const (
	CasePascal NameCase = "pascal"
	CaseCamel  NameCase = "camel"
)

// ConventionRule maps a directory role to the artifacts it must contain.
// Pattern is a slash path relative to the source root where "*" matches
// exactly one segment. Except lists names the last wildcard segment may
// not take.
type ConventionRule struct {
	Name             string      `yaml:"name"               json:"name"`
	Pattern          string      `yaml:"pattern"            json:"pattern"`
	Except           []string    `yaml:"except"             json:"except,omitempty"`
	Index            IndexPolicy `yaml:"index"              json:"index,omitempty"`
	DirCase          NameCase    `yaml:"dir_case"           json:"dir_case,omitempty"`
	PrimaryFile      bool        `yaml:"primary_file"       json:"primary_file,omitempty"`
	PageComponent    bool        `yaml:"page_component"     json:"page_component,omitempty"`
	NoFlatComponents bool        `yaml:"no_flat_components" json:"no_flat_components,omitempty"`
	WantTests        bool        `yaml:"want_tests"         json:"want_tests,omitempty"`
	Files            *FileRule   `yaml:"files"              json:"files,omitempty"`
}

// FileRule constrains every non-test file below a matched directory.
type FileRule struct {
	Role           string   `yaml:"role"            json:"role"`
	Ext            string   `yaml:"ext"             json:"ext,omitempty"`
	Case           NameCase `yaml:"case"            json:"case,omitempty"`
	Prefix         string   `yaml:"prefix"          json:"prefix,omitempty"`
	ExemptPrefixes []string `yaml:"exempt_prefixes" json:"exempt_prefixes,omitempty"`
	SkipNames      []string `yaml:"skip_names"      json:"skip_names,omitempty"`
	SkipSegments   []string `yaml:"skip_segments"   json:"skip_segments,omitempty"`
	SiblingTest    bool     `yaml:"sibling_test"    json:"sibling_test,omitempty"`
}

func (r ConventionRule) validate() error {
	if r.Name == "" {
		return fmt.Errorf("name must not be empty")
	}
	if r.Pattern == "" {
		return fmt.Errorf("%s: pattern must not be empty", r.Name)
	}
	switch r.Index {
	case "", IndexAlways, IndexNonEmpty, IndexNone:
	default:
		return fmt.Errorf("%s: unknown index policy %q (valid: always, non_empty, none)", r.Name, r.Index)
	}
	if err := validCase(r.DirCase); err != nil {
		return fmt.Errorf("%s: dir_case: %w", r.Name, err)
	}
	if r.Files != nil {
		if err := validCase(r.Files.Case); err != nil {
			return fmt.Errorf("%s: files.case: %w", r.Name, err)
		}
	}
	return nil
}

func validCase(c NameCase) error {
	switch c {
	case "", CasePascal, CaseCamel:
		return nil
	default:
		return fmt.Errorf("unknown case %q (valid: pascal, camel)", c)
	}
}

// componentSubdirs are the helper folders a component directory may carry.
var componentSubdirs = []string{"hooks", "utils", "constants", "config", "types"}

// DefaultConventions is the built-in domain/page layout rulebook.
func DefaultConventions() []ConventionRule {
	rules := []ConventionRule{
		{Name: "domain", Pattern: "domains/*", Index: IndexAlways},
		{Name: "domain-components", Pattern: "domains/*/components", Index: IndexNonEmpty, NoFlatComponents: true},
		{
			Name:        "component",
			Pattern:     "domains/*/components/*",
			Except:      []string{"modals", "shared"},
			Index:       IndexAlways,
			DirCase:     CasePascal,
			PrimaryFile: true,
			WantTests:   true,
		},
	}

	for _, sub := range componentSubdirs {
		fr := &FileRule{Role: "component " + sub, Ext: ".ts", SkipNames: []string{"index"}}
		if sub == "hooks" {
			fr.Prefix = "use"
		}
		rules = append(rules, ConventionRule{
			Name:    "component-" + sub,
			Pattern: "domains/*/components/*/" + sub,
			Except:  []string{"modals", "shared"},
			Index:   IndexAlways,
			Files:   fr,
		})
	}

	rules = append(rules,
		ConventionRule{
			Name:    "component-tests",
			Pattern: "domains/*/components/*/__tests__",
			Except:  []string{"modals", "shared"},
			Index:   IndexNone,
			Files:   &FileRule{Role: "component __tests__", Ext: ".ts"},
		},
		ConventionRule{
			Name:    "shared-hooks",
			Pattern: "domains/*/hooks",
			Index:   IndexNonEmpty,
			Files: &FileRule{
				Role:         "shared hook",
				Ext:          ".ts",
				Prefix:       "use",
				SkipNames:    []string{"index"},
				SkipSegments: []string{"utils", "helpers"},
				SiblingTest:  true,
			},
		},
		ConventionRule{
			Name:    "services",
			Pattern: "domains/*/services",
			Index:   IndexNonEmpty,
			Files: &FileRule{
				Role:           "service",
				Ext:            ".ts",
				Case:           CaseCamel,
				ExemptPrefixes: []string{"Base"},
				SkipNames:      []string{"index"},
				SiblingTest:    true,
			},
		},
		ConventionRule{
			Name:    "types",
			Pattern: "domains/*/types",
			Index:   IndexNonEmpty,
			Files:   &FileRule{Role: "type", Ext: ".ts"},
		},
		ConventionRule{Name: "page", Pattern: "pages/*", Index: IndexNonEmpty, PageComponent: true},
		ConventionRule{Name: "page-components", Pattern: "pages/*/components", Index: IndexNonEmpty},
	)
	return rules
}
