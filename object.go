package spiderkit

import (
	"fmt"
	"reflect"
)

// Object is a unit of extracted data: an attribute map plus a kind tag used
// by storage to group values. Equality and serialization operate on the
// attribute map only; the kind rides alongside it.
type Object struct {
	kind  string
	attrs map[string]any
}

// NewObject creates an object of the given kind. The attribute map is copied.
func NewObject(kind string, attrs map[string]any) *Object {
	return &Object{kind: kind, attrs: copyMap(attrs)}
}

// Kind returns the storage grouping tag.
func (o *Object) Kind() string { return o.kind }

// Get returns the attribute for key, or ErrNoAttribute when absent.
func (o *Object) Get(key string) (any, error) {
	v, ok := o.attrs[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoAttribute, key)
	}
	return v, nil
}

// Set stores value under key, replacing any previous value.
func (o *Object) Set(key string, value any) {
	if o.attrs == nil {
		o.attrs = make(map[string]any)
	}
	o.attrs[key] = value
}

// Delete removes key. Deleting an absent key fails with ErrNoAttribute, the
// same way a read does; a deleted key is simply gone.
func (o *Object) Delete(key string) error {
	if _, ok := o.attrs[key]; !ok {
		return fmt.Errorf("%w: %q", ErrNoAttribute, key)
	}
	delete(o.attrs, key)
	return nil
}

// Len returns the number of attributes.
func (o *Object) Len() int { return len(o.attrs) }

// Attrs returns a copy of the attribute map.
func (o *Object) Attrs() map[string]any { return copyMap(o.attrs) }

// Equal reports structural equality of the attribute maps. Kind is not
// compared.
func (o *Object) Equal(other *Object) bool {
	if o == nil || other == nil {
		return o == other
	}
	return reflect.DeepEqual(o.attrs, other.attrs)
}

// MarshalJSON emits the attribute map. The kind tag does not round-trip
// through the encoding.
func (o *Object) MarshalJSON() ([]byte, error) {
	var enc Encoder = &JSONEncoder{}
	if o.attrs == nil {
		return enc.Encode(map[string]any{})
	}
	return enc.Encode(o.attrs)
}

// UnmarshalJSON restores the attribute map.
func (o *Object) UnmarshalJSON(data []byte) error {
	var enc Encoder = &JSONEncoder{}
	attrs := make(map[string]any)
	if err := enc.Decode(data, &attrs); err != nil {
		return err
	}
	o.attrs = attrs
	return nil
}
