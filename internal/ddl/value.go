// Package ddl parses the bracketed data-description language stored in the
// game's text members: generic values, part and map records, and animation
// charts.
//
// A value is one of:
//
//	42  -7            Number
//	#Tag              Tag
//	point(1, 2)       Point
//	[#a: 1, 2: #b]    Array (key/value pairs, keys optional)
//	[1, #b, "s"]      ArraySingle
//	"alnum"           String (alphanumeric only)
//	TRUE  FALSE       Bool
//	[]                Nothing
package ddl

// Value is a parsed DDL value.
type Value interface {
	isValue()
}

type (
	Number int32
	Tag    string
	String string
	Bool   bool
	// Nothing is an empty bracket list or a key without a value.
	Nothing struct{}
)

// Point is a two-dimensional coordinate.
type Point struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}

// KeyValue is one entry of an Array. Key is the tag name, the decimal
// number, or empty when the key was omitted.
type KeyValue struct {
	Key   string `json:"key"`
	Value Value  `json:"value"`
}

// Array is a bracket list of key/value pairs.
type Array []KeyValue

// ArraySingle is a bracket list of plain values.
type ArraySingle []Value

func (Number) isValue()      {}
func (Tag) isValue()         {}
func (String) isValue()      {}
func (Bool) isValue()        {}
func (Nothing) isValue()     {}
func (Point) isValue()       {}
func (Array) isValue()       {}
func (ArraySingle) isValue() {}
