package adquery

import "testing"

func TestFilterRendering(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   string
	}{
		{
			name:   "equality",
			filter: Equality("cn", "useraccount"),
			want:   "(cn=useraccount)",
		},
		{
			name:   "equality escapes special characters",
			filter: Equality("cn", `a*b(c)d\`),
			want:   `(cn=a\2ab\28c\29d\5c)`,
		},
		{
			name:   "approx match",
			filter: ApproxMatch("givenName", "Jon"),
			want:   "(givenName~=Jon)",
		},
		{
			name:   "less or equal",
			filter: LessOrEqual("uidNumber", "5000"),
			want:   "(uidNumber<=5000)",
		},
		{
			name:   "greater or equal",
			filter: GreaterOrEqual("uidNumber", "1000"),
			want:   "(uidNumber>=1000)",
		},
		{
			name:   "present",
			filter: Present("mail"),
			want:   "(mail=*)",
		},
		{
			name:   "substring any",
			filter: Substring("cn", Any("smith")),
			want:   "(cn=*smith*)",
		},
		{
			name:   "substring initial and final",
			filter: Substring("cn", Initial("jo"), Final("hn")),
			want:   "(cn=jo*hn)",
		},
		{
			name:   "substring initial any final",
			filter: Substring("cn", Initial("a"), Any("b"), Final("c")),
			want:   "(cn=a*b*c)",
		},
		{
			name:   "substring two any fragments",
			filter: Substring("cn", Any("a"), Any("b")),
			want:   "(cn=*a*b*)",
		},
		{
			name:   "substring escapes fragments",
			filter: Substring("cn", Any("a*b")),
			want:   `(cn=*a\2ab*)`,
		},
		{
			name:   "extensible match with rule",
			filter: ExtensibleMatch("jdoe", MatchingRule{Attribute: "uid", Rule: "caseExactMatch"}),
			want:   "(uid:caseExactMatch:=jdoe)",
		},
		{
			name:   "extensible match against DN attributes",
			filter: ExtensibleMatch("accounts", MatchingRule{Attribute: "ou", DNAttributes: true}),
			want:   "(ou:dn:=accounts)",
		},
		{
			name:   "extensible match rule only",
			filter: ExtensibleMatch("top", MatchingRule{Rule: "1.2.840.113556.1.4.1941"}),
			want:   "(:1.2.840.113556.1.4.1941:=top)",
		},
		{
			name:   "and",
			filter: And(Equality("objectClass", "user"), Present("mail")),
			want:   "(&(objectClass=user)(mail=*))",
		},
		{
			name:   "or",
			filter: Or(Equality("cn", "a"), Equality("cn", "b")),
			want:   "(|(cn=a)(cn=b))",
		},
		{
			name:   "not",
			filter: Not(Equality("cn", "admin")),
			want:   "(!(cn=admin))",
		},
		{
			name: "nested combinators",
			filter: And(
				Equality("objectClass", "user"),
				Or(Substring("cn", Any("smith")), Equality("sn", "Smith")),
				Not(Present("lockoutTime")),
			),
			want: "(&(objectClass=user)(|(cn=*smith*)(sn=Smith))(!(lockoutTime=*)))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderedFilter(tt.filter)
			if got != tt.want {
				t.Errorf("renderedFilter() = %q, want %q", got, tt.want)
			}
		})
	}
}

// A flat And and a left-nested And are structurally different trees but must
// express the same predicate on the wire.
func TestFilterComposition_FlatVersusNested(t *testing.T) {
	a := Equality("a", "1")
	b := Equality("b", "2")
	c := Equality("c", "3")

	flat := renderedFilter(And(a, b, c))
	nested := renderedFilter(And(And(a, b), c))

	if flat != "(&(a=1)(b=2)(c=3))" {
		t.Errorf("flat form = %q", flat)
	}
	if nested != "(&(&(a=1)(b=2))(c=3))" {
		t.Errorf("nested form = %q", nested)
	}
}

func TestFilterValuesAreShared(t *testing.T) {
	// Filters are immutable values; composing one into two parents must not
	// change what either parent renders.
	leaf := Equality("cn", "x")
	left := And(leaf, Present("mail"))
	right := Or(leaf, Present("sn"))

	if got := renderedFilter(left); got != "(&(cn=x)(mail=*))" {
		t.Errorf("left = %q", got)
	}
	if got := renderedFilter(right); got != "(|(cn=x)(sn=*))" {
		t.Errorf("right = %q", got)
	}
}
