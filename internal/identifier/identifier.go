// Package identifier derives and validates the two identifier classes a
// generated project is named by: the hyphenated service name (used for the
// project folder and manifest) and the underscored tool name (used for the
// tool source file and its registry entry).
package identifier

import (
	"regexp"
	"strings"
	"unicode"
)

// Namespace describes one identifier class: which separator it uses, what a
// valid identifier looks like, and what to fall back to when the raw input
// has nothing usable in it.
type Namespace struct {
	// Label names the class in prompts and error messages.
	Label string

	// Separator joins the fragments of a normalized identifier.
	Separator string

	// Fallback is prepended when the cleaned input contains digits but no
	// letter at all, so the result still starts with a letter.
	Fallback string

	// Default is returned when nothing survives normalization.
	Default string

	// Requirement is the human-readable validity rule, phrased to follow
	// "<Label> name ..." in messages.
	Requirement string

	pattern  *regexp.Regexp // full validity pattern
	stranger *regexp.Regexp // runs of characters outside the alphabet
	runs     *regexp.Regexp // runs of separators to collapse
}

// Service names the project: lowercase letters, digits and hyphens.
var Service = Namespace{
	Label:       "service",
	Separator:   "-",
	Fallback:    "service-",
	Default:     "service",
	Requirement: "must start with a letter and contain only lowercase letters, numbers, and hyphens",
	pattern:     regexp.MustCompile(`^[a-z][a-z0-9-]*$`),
	stranger:    regexp.MustCompile(`[^a-z0-9-]+`),
	runs:        regexp.MustCompile(`-+`),
}

// Tool names the tool module: lowercase letters, digits and underscores.
var Tool = Namespace{
	Label:       "tool",
	Separator:   "_",
	Fallback:    "tool_",
	Default:     "tool",
	Requirement: "must start with a letter and contain only lowercase letters, numbers, and underscores",
	pattern:     regexp.MustCompile(`^[a-z][a-z0-9_]*$`),
	stranger:    regexp.MustCompile(`[^a-z0-9_]+`),
	runs:        regexp.MustCompile(`_+`),
}

var firstLetter = regexp.MustCompile(`[a-z]`)

// Normalize turns arbitrary user input into a valid identifier for the given
// namespace. It never fails and never returns an empty string, and running
// it twice yields the same result as running it once:
//
//  1. Lowercase and trim surrounding whitespace.
//  2. Replace every run of characters outside the namespace alphabet with a
//     single separator.
//  3. Collapse consecutive separators and strip them from both ends.
//  4. If the result starts with a digit, cut forward to the first letter;
//     when no letter exists anywhere, prepend the namespace fallback.
//  5. If nothing is left, return the namespace default.
func Normalize(raw string, ns Namespace) string {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = ns.stranger.ReplaceAllString(normalized, ns.Separator)
	normalized = ns.runs.ReplaceAllString(normalized, ns.Separator)
	normalized = strings.Trim(normalized, ns.Separator)

	// Only bytes from the namespace alphabet remain, so a non-letter lead
	// byte can only be a digit.
	if normalized != "" && (normalized[0] < 'a' || normalized[0] > 'z') {
		if loc := firstLetter.FindStringIndex(normalized); loc != nil {
			normalized = normalized[loc[0]:]
		} else {
			normalized = ns.Fallback + normalized
		}
	}

	if normalized == "" {
		return ns.Default
	}
	return normalized
}

// Valid reports whether id already satisfies the namespace pattern.
func Valid(id string, ns Namespace) bool {
	return ns.pattern.MatchString(id)
}

var fragment = regexp.MustCompile(`[_-]`)

// Pascal converts a snake_case or kebab-case identifier to PascalCase:
// "doc_proc" becomes "DocProc".
func Pascal(id string) string {
	var b strings.Builder
	for _, part := range fragment.Split(id, -1) {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(strings.ToLower(part[1:]))
	}
	return b.String()
}

// TitleWords uppercases every letter that follows a non-letter and lowercases
// the rest, matching how the generated description renders a service name:
// "document processor" becomes "Document Processor".
func TitleWords(s string) string {
	var b strings.Builder
	prevLetter := false
	for _, r := range s {
		switch {
		case !unicode.IsLetter(r):
			b.WriteRune(r)
			prevLetter = false
		case prevLetter:
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(unicode.ToTitle(r))
			prevLetter = true
		}
	}
	return b.String()
}

// FolderName is the directory name a service is generated into.
func FolderName(serviceID string) string {
	return "mcp-" + serviceID
}

// Description is the one-line service description written into the manifest
// and the generated README.
func Description(serviceID string) string {
	return "MCP " + TitleWords(strings.ReplaceAll(serviceID, "-", " ")) + " Server"
}
