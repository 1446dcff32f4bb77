package structure

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/fatih/camelcase"
	"github.com/openkraft/rulegate/internal/domain"
)

var (
	pascalCase = regexp.MustCompile(`^[A-Z][a-zA-Z0-9]*$`)
	camelCase  = regexp.MustCompile(`^[a-z][a-zA-Z0-9]*$`)
)

func IsPascalCase(s string) bool { return pascalCase.MatchString(s) }

func IsCamelCase(s string) bool { return camelCase.MatchString(s) }

func matchesCase(s string, c domain.NameCase) bool {
	switch c {
	case domain.CasePascal:
		return IsPascalCase(s)
	case domain.CaseCamel:
		return IsCamelCase(s)
	default:
		return true
	}
}

// words splits a name into its alphanumeric words, "user-card_v2" becoming
// [user card v 2].
func words(name string) []string {
	var out []string
	for _, w := range camelcase.Split(name) {
		if w == "" {
			continue
		}
		r := []rune(w)[0]
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			out = append(out, w)
		}
	}
	return out
}

// ToPascalCase suggests a PascalCase spelling of name.
func ToPascalCase(name string) string {
	var b strings.Builder
	for _, w := range words(name) {
		b.WriteString(strings.ToUpper(w[:1]))
		b.WriteString(strings.ToLower(w[1:]))
	}
	return b.String()
}

// ToCamelCase suggests a camelCase spelling of name.
func ToCamelCase(name string) string {
	p := ToPascalCase(name)
	if p == "" {
		return p
	}
	return strings.ToLower(p[:1]) + p[1:]
}

func suggest(name string, c domain.NameCase) string {
	if c == domain.CasePascal {
		return ToPascalCase(name)
	}
	return ToCamelCase(name)
}

func caseLabel(c domain.NameCase) string {
	if c == domain.CasePascal {
		return "PascalCase"
	}
	return "camelCase"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
