package types

// Value is the dynamic value model consumed by the recursive scanner.
// It is a closed union: the only implementations are the types in this
// package, so a scan never has to handle an out-of-model shape at
// runtime. Host bindings convert native containers into this model at
// the boundary (see FromNative).
type Value interface {
	// value is the sealing marker; only types in this package implement it.
	value()
}

// String is a text leaf. Strings are the only values the matcher ever
// inspects.
type String string

// Int is a signed integer leaf. Never matched.
type Int int64

// Float is a floating-point leaf. Never matched.
type Float float64

// Bool is a boolean leaf. Never matched.
type Bool bool

// Nil is the null/none leaf. Never matched.
type Nil struct{}

// Sequence is an ordered collection of values.
type Sequence []Value

// Mapping is a string-keyed collection of values. Keys are metadata and
// are never matched; scans visit values only.
type Mapping map[string]Value

func (String) value()   {}
func (Int) value()      {}
func (Float) value()    {}
func (Bool) value()     {}
func (Nil) value()      {}
func (Sequence) value() {}
func (Mapping) value()  {}
