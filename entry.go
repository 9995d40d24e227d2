package adquery

// Entry is one directory record: its distinguished name and attributes as
// returned by the server. Attribute names are case-sensitive keys; values
// keep server order and are raw byte strings with no charset assumption.
type Entry struct {
	DN         string
	Attributes map[string][][]byte
}

// Attribute looks up the named attribute with arity collapsed: nil when the
// attribute is absent, a single string when exactly one value is present,
// and []string when several are. Absence is expected and is not an error.
// Callers who want static types use AttributeValue or AttributeValues.
func (e Entry) Attribute(name string) any {
	vals := e.Attributes[name]
	switch len(vals) {
	case 0:
		return nil
	case 1:
		return string(vals[0])
	default:
		return e.AttributeValues(name)
	}
}

// AttributeValue returns the first value of the named attribute, or "" when
// the attribute is absent.
func (e Entry) AttributeValue(name string) string {
	vals := e.Attributes[name]
	if len(vals) == 0 {
		return ""
	}
	return string(vals[0])
}

// AttributeValues returns all values of the named attribute as strings, in
// server order.
func (e Entry) AttributeValues(name string) []string {
	vals, ok := e.Attributes[name]
	if !ok {
		return nil
	}
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}

// RawValues returns all values of the named attribute as byte strings, for
// binary attributes such as objectSid.
func (e Entry) RawValues(name string) [][]byte {
	return e.Attributes[name]
}
