package jscode

import "strconv"

const (
	xsdInteger = "http://www.w3.org/2001/XMLSchema#integer"
	xsdDouble  = "http://www.w3.org/2001/XMLSchema#double"
	xsdBoolean = "http://www.w3.org/2001/XMLSchema#boolean"
)

// coercePrimitive mirrors strategy/runtime's conversion: goja.ToValue would
// happily wrap a Go string, but passing it a real int64/float64/bool lets
// JS-side arithmetic and comparisons work the way a component's script
// expects instead of every literal arriving as a string.
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
