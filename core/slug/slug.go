/*
Package slug validates page identifiers and turns them into links.

A slug is a normalized page identifier used as the cross-reference key
between content units. Slugs consist of ASCII letters, digits, '_' and '-',
and are between 1 and 100 characters long.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package slug

import (
	"regexp"
	"strings"
)

// MaxLength is the maximum length of a slug in bytes.
const MaxLength = 100

// LinkPrefix is prepended to a slug to form a page link.
const LinkPrefix = "?:="

var slugRE = regexp.MustCompile(`^[a-zA-Z0-9_\-]{1,100}$`)

// IsValid returns true if s is a syntactically valid slug.
func IsValid(s string) bool {
	return slugRE.MatchString(s)
}

// Link returns the relative link to the page named by slug, using the
// default link prefix.
func Link(s string) string {
	return LinkPrefix + s
}

// LinkWith returns the link to the page named by slug. If prefix contains
// a "%s", the slug is substituted there; otherwise it is appended.
func LinkWith(prefix string, s string) string {
	if strings.Contains(prefix, "%s") {
		return strings.Replace(prefix, "%s", s, 1)
	}
	return prefix + s
}
