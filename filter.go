package adquery

import (
	"fmt"
	"strings"

	goldap "github.com/go-ldap/ldap/v3"
)

// Filter is one node of a search predicate tree. Filters are immutable
// values, freely shared and composed; the concrete variants form a closed
// set and are rendered to the RFC 4515 wire form by a single exhaustive
// switch, so an unrecognized shape cannot reach the server.
type Filter interface {
	isFilter()
}

// SubstringPosition anchors a substring fragment within the attribute value.
type SubstringPosition int

const (
	// SubstringInitial anchors the fragment at the start of the value.
	SubstringInitial SubstringPosition = iota
	// SubstringAny matches the fragment anywhere in the value.
	SubstringAny
	// SubstringFinal anchors the fragment at the end of the value.
	SubstringFinal
)

// SubstringPart is one fragment of a substring assertion.
type SubstringPart struct {
	Position SubstringPosition
	Fragment string
}

// Initial returns a fragment anchored at the start of the value.
func Initial(fragment string) SubstringPart {
	return SubstringPart{Position: SubstringInitial, Fragment: fragment}
}

// Any returns a fragment matched anywhere in the value.
func Any(fragment string) SubstringPart {
	return SubstringPart{Position: SubstringAny, Fragment: fragment}
}

// Final returns a fragment anchored at the end of the value.
func Final(fragment string) SubstringPart {
	return SubstringPart{Position: SubstringFinal, Fragment: fragment}
}

// MatchingRule identifies how an ExtensibleMatch assertion is evaluated.
// Attribute and Rule are each optional; DNAttributes additionally asserts
// against the components of the entry's DN.
type MatchingRule struct {
	Attribute    string
	Rule         string
	DNAttributes bool
}

type equalityFilter struct{ attr, value string }
type substringFilter struct {
	attr  string
	parts []SubstringPart
}
type approxFilter struct{ attr, value string }
type lessOrEqualFilter struct{ attr, value string }
type greaterOrEqualFilter struct{ attr, value string }
type presentFilter struct{ attr string }
type extensibleFilter struct {
	rule  MatchingRule
	value string
}
type andFilter struct{ children []Filter }
type orFilter struct{ children []Filter }
type notFilter struct{ child Filter }

func (equalityFilter) isFilter()       {}
func (substringFilter) isFilter()      {}
func (approxFilter) isFilter()         {}
func (lessOrEqualFilter) isFilter()    {}
func (greaterOrEqualFilter) isFilter() {}
func (presentFilter) isFilter()        {}
func (extensibleFilter) isFilter()     {}
func (andFilter) isFilter()            {}
func (orFilter) isFilter()             {}
func (notFilter) isFilter()            {}

// Equality matches entries whose attr equals value.
func Equality(attr, value string) Filter {
	return equalityFilter{attr: attr, value: value}
}

// Substring matches entries whose attr contains the given fragments in
// order. A single fragment works too: Substring("cn", Any("smith")).
func Substring(attr string, parts ...SubstringPart) Filter {
	return substringFilter{attr: attr, parts: parts}
}

// ApproxMatch matches entries whose attr approximately equals value, per the
// server's approximate-match rule.
func ApproxMatch(attr, value string) Filter {
	return approxFilter{attr: attr, value: value}
}

// LessOrEqual matches entries whose attr orders at or below value.
func LessOrEqual(attr, value string) Filter {
	return lessOrEqualFilter{attr: attr, value: value}
}

// GreaterOrEqual matches entries whose attr orders at or above value.
func GreaterOrEqual(attr, value string) Filter {
	return greaterOrEqualFilter{attr: attr, value: value}
}

// Present matches entries that carry attr at all.
func Present(attr string) Filter {
	return presentFilter{attr: attr}
}

// ExtensibleMatch matches value under the given matching rule.
func ExtensibleMatch(value string, rule MatchingRule) Filter {
	return extensibleFilter{rule: rule, value: value}
}

// And requires every child filter to match. Children are wrapped
// structurally, without revalidation.
func And(children ...Filter) Filter {
	return andFilter{children: children}
}

// Or requires at least one child filter to match.
func Or(children ...Filter) Filter {
	return orFilter{children: children}
}

// Not inverts the child filter.
func Not(child Filter) Filter {
	return notFilter{child: child}
}

// renderedFilter renders a predicate tree to its RFC 4515 string form.
func renderedFilter(f Filter) string {
	var b strings.Builder
	renderFilter(f, &b)
	return b.String()
}

func renderFilter(f Filter, b *strings.Builder) {
	switch v := f.(type) {
	case equalityFilter:
		renderAssertion(b, v.attr, "=", v.value)
	case approxFilter:
		renderAssertion(b, v.attr, "~=", v.value)
	case lessOrEqualFilter:
		renderAssertion(b, v.attr, "<=", v.value)
	case greaterOrEqualFilter:
		renderAssertion(b, v.attr, ">=", v.value)
	case presentFilter:
		b.WriteByte('(')
		b.WriteString(v.attr)
		b.WriteString("=*)")
	case substringFilter:
		renderSubstring(b, v)
	case extensibleFilter:
		renderExtensible(b, v)
	case andFilter:
		renderSet(b, '&', v.children)
	case orFilter:
		renderSet(b, '|', v.children)
	case notFilter:
		b.WriteString("(!")
		renderFilter(v.child, b)
		b.WriteByte(')')
	default:
		// Unreachable: Filter is a closed set.
		panic(fmt.Sprintf("adquery: unknown filter type %T", f))
	}
}

func renderAssertion(b *strings.Builder, attr, op, value string) {
	b.WriteByte('(')
	b.WriteString(attr)
	b.WriteString(op)
	b.WriteString(goldap.EscapeFilter(value))
	b.WriteByte(')')
}

// renderSubstring emits initial? ('*' fragment)* with a trailing '*' unless
// the last fragment is final-anchored. Positions only matter at the ends;
// interior fragments are always star-separated.
func renderSubstring(b *strings.Builder, f substringFilter) {
	b.WriteByte('(')
	b.WriteString(f.attr)
	b.WriteByte('=')
	n := len(f.parts)
	if n == 0 || f.parts[0].Position != SubstringInitial {
		b.WriteByte('*')
	}
	for i, p := range f.parts {
		if i > 0 {
			b.WriteByte('*')
		}
		b.WriteString(goldap.EscapeFilter(p.Fragment))
	}
	if n > 0 && f.parts[n-1].Position != SubstringFinal {
		b.WriteByte('*')
	}
	b.WriteByte(')')
}

func renderExtensible(b *strings.Builder, f extensibleFilter) {
	b.WriteByte('(')
	b.WriteString(f.rule.Attribute)
	if f.rule.DNAttributes {
		b.WriteString(":dn")
	}
	if f.rule.Rule != "" {
		b.WriteByte(':')
		b.WriteString(f.rule.Rule)
	}
	b.WriteString(":=")
	b.WriteString(goldap.EscapeFilter(f.value))
	b.WriteByte(')')
}

func renderSet(b *strings.Builder, op byte, children []Filter) {
	b.WriteByte('(')
	b.WriteByte(op)
	for _, c := range children {
		renderFilter(c, b)
	}
	b.WriteByte(')')
}
