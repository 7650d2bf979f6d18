package fetch

// Param is a single query parameter.
type Param struct {
	Key   string
	Value any
}

// Params is an ordered set of query parameters. Keys are unique; setting an
// existing key replaces its value in place so the original position is kept.
type Params []Param

// P builds Params from alternating key-value pairs. Non-string keys are
// skipped.
//
//	fetch.P("userId", 1, "tag", []string{"a", "b"})
func P(kvs ...any) Params {
	var p Params
	for i := 0; i+1 < len(kvs); i += 2 {
		if key, ok := kvs[i].(string); ok {
			p = p.Set(key, kvs[i+1])
		}
	}
	return p
}

// Get returns the value stored under key.
func (p Params) Get(key string) (any, bool) {
	if i := p.index(key); i >= 0 {
		return p[i].Value, true
	}
	return nil, false
}

// Set stores value under key and returns the updated Params.
func (p Params) Set(key string, value any) Params {
	if i := p.index(key); i >= 0 {
		p[i].Value = value
		return p
	}
	return append(p, Param{Key: key, Value: value})
}

// Del returns Params without key. The receiver is left untouched.
func (p Params) Del(key string) Params {
	i := p.index(key)
	if i < 0 {
		return p
	}
	out := make(Params, 0, len(p)-1)
	out = append(out, p[:i]...)
	return append(out, p[i+1:]...)
}

// Keys returns the keys in insertion order.
func (p Params) Keys() []string {
	keys := make([]string, len(p))
	for i, kv := range p {
		keys[i] = kv.Key
	}
	return keys
}

// Clone returns a shallow copy.
func (p Params) Clone() Params {
	if p == nil {
		return nil
	}
	out := make(Params, len(p))
	copy(out, p)
	return out
}

func (p Params) index(key string) int {
	for i, kv := range p {
		if kv.Key == key {
			return i
		}
	}
	return -1
}
