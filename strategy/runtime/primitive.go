package runtime

import "strconv"

// XSD datatypes the registry's literal values are expected to carry; any
// other (or empty) datatype is treated as a plain string.
const (
	xsdInteger = "http://www.w3.org/2001/XMLSchema#integer"
	xsdDouble  = "http://www.w3.org/2001/XMLSchema#double"
	xsdBoolean = "http://www.w3.org/2001/XMLSchema#boolean"
)

// coercePrimitive converts a Literal's lexical form into the Go type its
// datatype implies. A value that fails to parse as its declared datatype
// falls back to the raw string rather than erroring — a reflection-based
// strategy would rather let a later type mismatch surface at the assignment
// site than invent a new error kind for it here.
func coercePrimitive(value, datatype string) any {
	switch datatype {
	case xsdInteger:
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
	case xsdDouble:
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	case xsdBoolean:
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return value
}
