package achievements

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Field is a named capture inside a Schema, Rule is the regular expression
// the captured text has to match.
type Field struct {
	Name string
	Rule string
}

// Schema describes how records are laid out in a page. Template is a
// regular expression in which every field appears once as `{{name}}`.
// Fields are declared apart from the template so the page format can be
// checked on its own.
type Schema struct {
	Name     string
	Template string
	Fields   []Field

	pattern *regexp.Regexp
}

var placeholderRegex = regexp.MustCompile(`\{\{(\w+)\}\}`)

// Compile resolves the placeholders of the template into named capture
// groups.
func (s Schema) Compile() (Schema, error) {
	rules := make(map[string]string, len(s.Fields))
	for _, f := range s.Fields {
		if _, exists := rules[f.Name]; exists {
			return Schema{}, fmt.Errorf("schema %s: duplicate field %q", s.Name, f.Name)
		}
		rules[f.Name] = f.Rule
	}

	seen := map[string]bool{}
	var missing []string
	expr := placeholderRegex.ReplaceAllStringFunc(s.Template, func(placeholder string) string {
		name := placeholder[2 : len(placeholder)-2]
		rule, ok := rules[name]
		if !ok || seen[name] {
			missing = append(missing, name)
			return placeholder
		}
		seen[name] = true
		return fmt.Sprintf("(?P<%s>%s)", name, rule)
	})
	if len(missing) > 0 {
		return Schema{}, fmt.Errorf("schema %s: undeclared or repeated placeholders %v", s.Name, missing)
	}
	for _, f := range s.Fields {
		if !seen[f.Name] {
			return Schema{}, fmt.Errorf("schema %s: field %q is not used in the template", s.Name, f.Name)
		}
	}

	pattern, err := regexp.Compile(expr)
	if err != nil {
		return Schema{}, fmt.Errorf("schema %s: %w", s.Name, err)
	}
	s.pattern = pattern
	return s, nil
}

func (s Schema) MustCompile() Schema {
	compiled, err := s.Compile()
	if err != nil {
		panic(err)
	}
	return compiled
}

// Record is the text captured for each field of a schema.
type Record map[string]string

func (r Record) String(name string) string {
	return r[name]
}

func (r Record) Int(name string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(r[name]))
	if err != nil {
		return 0, fmt.Errorf("field %s: %w", name, err)
	}
	return value, nil
}

func (s Schema) record(groups []string) Record {
	names := s.pattern.SubexpNames()
	record := make(Record, len(s.Fields))
	for i, name := range names {
		if name == "" {
			continue
		}
		record[name] = groups[i]
	}
	return record
}

// Match returns the first record found in text.
func (s Schema) Match(text string) (Record, bool) {
	groups := s.pattern.FindStringSubmatch(text)
	if groups == nil {
		return nil, false
	}
	return s.record(groups), true
}

// MatchAll returns every non-overlapping record in text, from left to right.
func (s Schema) MatchAll(text string) []Record {
	matches := s.pattern.FindAllStringSubmatch(text, -1)
	records := make([]Record, len(matches))
	for i, groups := range matches {
		records[i] = s.record(groups)
	}
	return records
}
