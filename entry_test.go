package adquery

import (
	"reflect"
	"testing"
)

func TestEntryAttribute_ArityCollapse(t *testing.T) {
	entry := Entry{
		DN: "CN=useraccount,OU=Accounts,DC=example,DC=com",
		Attributes: map[string][][]byte{
			"cn":          {[]byte("only")},
			"memberOf":    {[]byte("a"), []byte("b")},
			"description": {},
		},
	}

	if got := entry.Attribute("cn"); got != "only" {
		t.Errorf("single value: got %v (%T), want scalar %q", got, got, "only")
	}
	if got := entry.Attribute("memberOf"); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("multiple values: got %v (%T), want []string{a b}", got, got)
	}
	if got := entry.Attribute("missing"); got != nil {
		t.Errorf("absent attribute: got %v, want nil", got)
	}
	if got := entry.Attribute("description"); got != nil {
		t.Errorf("attribute with no values: got %v, want nil", got)
	}
}

func TestEntryAttributeValue(t *testing.T) {
	entry := Entry{Attributes: map[string][][]byte{
		"cn": {[]byte("first"), []byte("second")},
	}}

	if got := entry.AttributeValue("cn"); got != "first" {
		t.Errorf("AttributeValue(cn) = %q, want first value", got)
	}
	if got := entry.AttributeValue("missing"); got != "" {
		t.Errorf("AttributeValue(missing) = %q, want empty", got)
	}
}

func TestEntryAttributeValues_PreservesOrder(t *testing.T) {
	entry := Entry{Attributes: map[string][][]byte{
		"memberOf": {[]byte("z"), []byte("a"), []byte("m")},
	}}

	want := []string{"z", "a", "m"}
	if got := entry.AttributeValues("memberOf"); !reflect.DeepEqual(got, want) {
		t.Errorf("AttributeValues = %v, want %v", got, want)
	}
	if got := entry.AttributeValues("missing"); got != nil {
		t.Errorf("AttributeValues(missing) = %v, want nil", got)
	}
}

func TestEntryRawValues(t *testing.T) {
	sid := []byte{1, 1, 0, 0, 0, 0, 0, 5, 18, 0, 0, 0}
	entry := Entry{Attributes: map[string][][]byte{
		"objectSid": {sid},
	}}

	raw := entry.RawValues("objectSid")
	if len(raw) != 1 {
		t.Fatalf("got %d raw values, want 1", len(raw))
	}
	text, err := SIDToString(raw[0])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "S-1-5-18" {
		t.Errorf("SIDToString = %q, want S-1-5-18", text)
	}
}

func TestEntryAttributeNamesAreCaseSensitive(t *testing.T) {
	entry := Entry{Attributes: map[string][][]byte{
		"cn": {[]byte("x")},
	}}
	if got := entry.Attribute("CN"); got != nil {
		t.Errorf("Attribute(CN) = %v, want nil (keys are case-sensitive)", got)
	}
}
