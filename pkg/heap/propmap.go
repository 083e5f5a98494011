package heap

import (
	"fmt"

	"github.com/dolthub/swiss"
	"github.com/redchew/aotjs/pkg/value"
)

// propKey is the normalized form of a PropertyKey (spec.md §4.6): a String
// is keyed by its content, a Symbol by its identity (its own Value, kept
// around so the map can be traced). Anything else is a misuse error at
// normalization time — the core does not coerce non-string, non-symbol
// keys (spec.md §9 Open Question (a)).
type propKey struct {
	isSymbol bool
	str      string
	sym      value.Value
}

// PropMap is an Object's key -> Value mapping, backed by a swiss-table
// hash map for O(1) average lookup/insert. Ordering is not guaranteed,
// matching spec.md §4.6 ("ordering is not a required guarantee").
type PropMap struct {
	m *swiss.Map[propKey, value.Value]
}

func newPropMap() *PropMap {
	return &PropMap{m: swiss.NewMap[propKey, value.Value](8)}
}

// KeyNormalizer resolves a PropertyKey Value down to its normalized form.
// It needs to dereference pointer Values (to read string content or
// confirm symbol-ness), which only the engine's handle table can do, so
// normalization is injected as a callback rather than hard-coded here.
type KeyNormalizer func(value.Value) (isString bool, isSymbol bool, content string, err error)

func normalize(v value.Value, norm KeyNormalizer) (propKey, error) {
	isString, isSymbol, content, err := norm(v)
	if err != nil {
		return propKey{}, err
	}
	switch {
	case isString:
		return propKey{str: content}, nil
	case isSymbol:
		return propKey{isSymbol: true, sym: v}, nil
	default:
		return propKey{}, fmt.Errorf("heap: property key must be a string or symbol")
	}
}

// Get looks up key in this map only (no prototype walk — that is the
// Object's job).
func (p *PropMap) Get(key value.Value, norm KeyNormalizer) (value.Value, bool, error) {
	pk, err := normalize(key, norm)
	if err != nil {
		return value.Value{}, false, err
	}
	v, ok := p.m.Get(pk)
	return v, ok, nil
}

// Set assigns key=val on this map, creating the key if absent.
func (p *PropMap) Set(key, val value.Value, norm KeyNormalizer) error {
	pk, err := normalize(key, norm)
	if err != nil {
		return err
	}
	p.m.Put(pk, val)
	return nil
}

// Each visits every stored key/value pair in its normalized form: a string
// key is passed back as its content only (the original heap String object
// is not kept, which is fine — content is all that matters), a symbol key
// as its own Value.
func (p *PropMap) Each(fn func(keyIsSymbol bool, keyStr string, keySym value.Value, val value.Value)) {
	p.m.Iter(func(k propKey, v value.Value) bool {
		fn(k.isSymbol, k.str, k.sym, v)
		return false
	})
}

func (p *PropMap) Count() int { return p.m.Count() }
