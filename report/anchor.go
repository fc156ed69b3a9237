package report

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Anchor postfixes ...
const (
	FailuresPostfix = "failures"
	SkippedPostfix  = "skipped"
)

// PlaceholderLabel replaces labels that do not produce a usable slug.
const PlaceholderLabel = "unknown"

// DefaultFragmentPrefix is the plain HTML fragment convention.
const DefaultFragmentPrefix = "#"

const (
	anchorSeparator = "-"
	backLinkPrefix  = "back-to-"
)

var (
	camelCaseBoundaryRegexp = regexp.MustCompile(`([a-z0-9])([A-Z])`)
	nonSlugCharsRegexp      = regexp.MustCompile(`[^a-z0-9]+`)
)

// Slug converts label into lowercase, separator joined word tokens:
// com.example.MyTestClass -> com-example-my-test-class
func Slug(label string) string {
	s := camelCaseBoundaryRegexp.ReplaceAllString(label, "${1}"+anchorSeparator+"${2}")
	s = cases.Lower(language.Und).String(s)
	s = nonSlugCharsRegexp.ReplaceAllString(s, anchorSeparator)
	s = strings.Trim(s, anchorSeparator)
	if s == "" {
		return PlaceholderLabel
	}
	return s
}

// Namer derives anchor ids and jump links for a rendering surface.
type Namer struct {
	// FragmentPrefix is prepended to anchor ids in links, for example
	// "#user-content-" for surfaces that namespace user supplied ids.
	FragmentPrefix string
}

// NewNamer ...
func NewNamer(fragmentPrefix string) Namer {
	if fragmentPrefix == "" {
		fragmentPrefix = DefaultFragmentPrefix
	}
	return Namer{FragmentPrefix: fragmentPrefix}
}

// AnchorID returns the id of the anchor for label and postfix.
// Back-link anchors sit on detail headings, forward anchors are what the summary links to.
func (n Namer) AnchorID(label, postfix string, isBackLink bool) string {
	id := Slug(label)
	if postfix != "" {
		id += anchorSeparator + postfix
	}
	if isBackLink {
		id = backLinkPrefix + id
	}
	return id
}

// JumpLink returns the href of the forward anchor for label and postfix.
func (n Namer) JumpLink(label, postfix string) string {
	return n.fragmentPrefix() + n.AnchorID(label, postfix, false)
}

// BackLink returns the href of the back-link anchor for label and postfix.
func (n Namer) BackLink(label, postfix string) string {
	return n.fragmentPrefix() + n.AnchorID(label, postfix, true)
}

func (n Namer) fragmentPrefix() string {
	if n.FragmentPrefix == "" {
		return DefaultFragmentPrefix
	}
	return n.FragmentPrefix
}
