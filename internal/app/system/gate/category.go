// internal/app/system/gate/category.go
package gate

import (
	"fmt"
	"regexp"
	"strings"
)

// RouteCategory classifies a request path for the gatekeeper.
//
// Categories are mutually exclusive. Classification checks the route table
// in a fixed priority order: Public > APIAuthPrefix > AuthOnly > Special,
// and anything unmatched is Protected. Unknown routes therefore get the
// most restrictive treatment.
type RouteCategory int

const (
	// CategoryProtected is the default for any path not in the route table.
	CategoryProtected RouteCategory = iota

	// CategoryPublic routes bypass the gate entirely (no session lookup).
	CategoryPublic

	// CategoryAPIAuthPrefix covers the auth API subtree; like Public it
	// bypasses the gate so token endpoints never recurse into it.
	CategoryAPIAuthPrefix

	// CategoryAuthOnly routes (login and friends) are reachable only when
	// the caller is NOT authenticated.
	CategoryAuthOnly

	// CategorySpecial routes require authentication but skip the
	// onboarding-completeness rules, so a user mid-funnel can reach them.
	CategorySpecial
)

// String returns the category name for logs.
func (c RouteCategory) String() string {
	switch c {
	case CategoryPublic:
		return "public"
	case CategoryAPIAuthPrefix:
		return "api_auth"
	case CategoryAuthOnly:
		return "auth_only"
	case CategorySpecial:
		return "special"
	default:
		return "protected"
	}
}

// RouteTable is the static route configuration supplied by the host app.
//
// Entries are exact paths, except that Public entries may contain
// single-segment wildcards written as bracketed segments, e.g.
// "/invite/[token]". Each bracketed segment matches exactly one path
// segment.
type RouteTable struct {
	Public        []string
	AuthOnly      []string
	Special       []string
	APIAuthPrefix string
}

// pattern is a compiled wildcard route entry.
type pattern struct {
	source string
	re     *regexp.Regexp
}

// Classifier maps request paths to route categories. It is built once at
// startup and is read-only afterwards, so it is safe for concurrent use.
type Classifier struct {
	publicExact   map[string]struct{}
	publicPattern []pattern
	authOnly      map[string]struct{}
	special       map[string]struct{}
	apiPrefix     string
}

// NewClassifier compiles the route table. Wildcard entries are compiled to
// anchored regexps up front so per-request matching is a map lookup plus a
// handful of precompiled matches.
func NewClassifier(routes RouteTable) (*Classifier, error) {
	c := &Classifier{
		publicExact: make(map[string]struct{}, len(routes.Public)),
		authOnly:    make(map[string]struct{}, len(routes.AuthOnly)),
		special:     make(map[string]struct{}, len(routes.Special)),
		apiPrefix:   routes.APIAuthPrefix,
	}

	for _, entry := range routes.Public {
		if !strings.Contains(entry, "[") {
			c.publicExact[entry] = struct{}{}
			continue
		}
		re, err := compileWildcard(entry)
		if err != nil {
			return nil, fmt.Errorf("route table: %w", err)
		}
		c.publicPattern = append(c.publicPattern, pattern{source: entry, re: re})
	}
	for _, entry := range routes.AuthOnly {
		c.authOnly[entry] = struct{}{}
	}
	for _, entry := range routes.Special {
		c.special[entry] = struct{}{}
	}
	return c, nil
}

// Classify returns exactly one category for the given request path (no
// query string). It is a pure function of the path and the compiled table.
func (c *Classifier) Classify(path string) RouteCategory {
	if _, ok := c.publicExact[path]; ok {
		return CategoryPublic
	}
	for _, p := range c.publicPattern {
		if p.re.MatchString(path) {
			return CategoryPublic
		}
	}
	if c.apiPrefix != "" && strings.HasPrefix(path, c.apiPrefix) {
		return CategoryAPIAuthPrefix
	}
	if _, ok := c.authOnly[path]; ok {
		return CategoryAuthOnly
	}
	if _, ok := c.special[path]; ok {
		return CategorySpecial
	}
	return CategoryProtected
}

// compileWildcard turns a route entry like "/invite/[token]" into an
// anchored regexp where every bracketed segment matches one path segment.
func compileWildcard(entry string) (*regexp.Regexp, error) {
	segments := strings.Split(entry, "/")
	for i, seg := range segments {
		if strings.HasPrefix(seg, "[") && strings.HasSuffix(seg, "]") && len(seg) > 2 {
			segments[i] = "[^/]+"
		} else if strings.Contains(seg, "[") || strings.Contains(seg, "]") {
			return nil, fmt.Errorf("malformed wildcard segment %q in %q", seg, entry)
		} else {
			segments[i] = regexp.QuoteMeta(seg)
		}
	}
	return regexp.Compile("^" + strings.Join(segments, "/") + "$")
}
