package gen

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	rules   = ruleset()
	titler  = cases.Title(language.Und, cases.NoLower)
	acronym = make(map[string]struct{})
)

func ruleset() *inflect.Ruleset {
	rules := inflect.NewDefaultRuleset()
	for _, w := range []string{
		"API", "ID", "JSON", "SQL", "URL", "UUID",
	} {
		acronym[w] = struct{}{}
		rules.AddAcronym(w)
	}
	return rules
}

// Naming conventions enforced on datamodel identifiers. Type and field
// names are limited to 64 alphanumeric characters; enum values allow
// underscores and up to 191 characters.
var (
	typeNameRx  = regexp.MustCompile(`^[A-Z][A-Za-z0-9]{0,63}$`)
	fieldNameRx = regexp.MustCompile(`^[a-z][A-Za-z0-9]{0,63}$`)
	enumValueRx = regexp.MustCompile(`^[A-Z][A-Za-z0-9_]{0,190}$`)
)

// validTypeName reports whether the name follows the type naming convention:
// at most 64 alphanumeric characters, starting with an uppercase letter.
func validTypeName(name string) bool { return typeNameRx.MatchString(name) }

// validFieldName reports whether the name follows the field naming
// convention: at most 64 alphanumeric characters, starting lowercase.
func validFieldName(name string) bool { return fieldNameRx.MatchString(name) }

// validEnumValue reports whether the value follows the enum value naming
// convention: at most 191 characters, alphanumeric plus underscore,
// starting with an uppercase letter.
func validEnumValue(name string) bool { return enumValueRx.MatchString(name) }

// Plural returns the pluralized form of a name in its original casing.
// Used for naming list operations (User -> Users, Category -> Categories,
// Person -> People). The inflection rules match lowercase suffixes only,
// so the last word is lowercased before pluralizing and its leading case
// restored afterwards.
func Plural(name string) string {
	words := split(name)
	last := words[len(words)-1]
	if _, ok := acronym[strings.ToUpper(last)]; ok {
		return name + "s"
	}
	p := rules.Pluralize(strings.ToLower(last))
	if p == strings.ToLower(last) {
		return name + "Items"
	}
	if unicode.IsUpper(rune(last[0])) {
		p = titler.String(p)
	}
	words[len(words)-1] = p
	return strings.Join(words, "")
}

// Camel returns the lower-camel-case form of a name (User -> user).
func Camel(s string) string {
	words := split(s)
	for i, w := range words[1:] {
		words[i+1] = title(w)
	}
	words[0] = strings.ToLower(words[0])
	return strings.Join(words, "")
}

// Pascal returns the upper-camel-case form of a name (blog_post -> BlogPost).
func Pascal(s string) string {
	words := split(s)
	for i, w := range words {
		words[i] = title(w)
	}
	return strings.Join(words, "")
}

// snake converts a name to snake_case for labels and diagnostics.
func snake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) && (!unicode.IsUpper(rune(s[i-1])) || (i+1 < len(s) && !unicode.IsUpper(rune(s[i+1])))) {
			b.WriteRune('_')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

func title(s string) string {
	if _, ok := acronym[strings.ToUpper(s)]; ok {
		return strings.ToUpper(s)
	}
	return titler.String(strings.ToLower(s))
}

func split(s string) []string {
	var (
		words []string
		start int
	)
	for i := 1; i < len(s); i++ {
		switch r := rune(s[i]); {
		case r == '_':
			words = append(words, s[start:i])
			start = i + 1
			continue
		case unicode.IsUpper(r) && !unicode.IsUpper(rune(s[i-1])):
			words = append(words, s[start:i])
			start = i
		}
	}
	if start < len(s) {
		words = append(words, s[start:])
	}
	if len(words) == 0 {
		words = []string{s}
	}
	return words
}
