package fetch

// DeepMerge merges sources into target from left to right and returns
// target, allocating it when nil. When a key holds a plain mapping
// (map[string]any) in both target and source the two are merged
// recursively; otherwise the source value overwrites, including nil,
// slices, functions and struct values. Nil sources are skipped.
func DeepMerge(target map[string]any, sources ...map[string]any) map[string]any {
	if target == nil {
		target = make(map[string]any)
	}
	for _, src := range sources {
		if src == nil {
			continue
		}
		for k, sv := range src {
			sm, srcIsMap := sv.(map[string]any)
			if !srcIsMap {
				target[k] = sv
				continue
			}
			tm, _ := target[k].(map[string]any)
			// Copy into a fresh map so the source is never aliased by target.
			target[k] = DeepMerge(cloneMap(tm), sm)
		}
	}
	return target
}

// MergeConfig merges configurations from left to right onto a fresh
// Config. Fields set in a later source win; Headers combine key-wise, a
// later key replacing any case variant of itself;
// Params and Extra merge with DeepMerge semantics. Sources are not
// modified.
func MergeConfig(sources ...Config) Config {
	var out Config
	for i := range sources {
		out.merge(&sources[i])
	}
	return out
}

func (c *Config) merge(src *Config) {
	if src.URL != "" {
		c.URL = src.URL
	}
	if src.BaseURL != "" {
		c.BaseURL = src.BaseURL
	}
	if src.Method != "" {
		c.Method = src.Method
	}
	if src.Headers != nil {
		if c.Headers == nil {
			c.Headers = make(map[string]string, len(src.Headers))
		}
		for k, v := range src.Headers {
			deleteHeader(c.Headers, k)
			c.Headers[k] = v
		}
	}
	if src.Params != nil {
		c.Params = mergeParams(c.Params, src.Params)
	}
	if src.Data != nil {
		sm, srcIsMap := src.Data.(map[string]any)
		tm, dstIsMap := c.Data.(map[string]any)
		if srcIsMap && dstIsMap {
			c.Data = DeepMerge(cloneMap(tm), sm)
		} else if srcIsMap {
			c.Data = DeepMerge(nil, sm)
		} else {
			c.Data = src.Data
		}
	}
	if src.ResponseType != "" {
		c.ResponseType = src.ResponseType
	}
	if src.Timeout != 0 {
		c.Timeout = src.Timeout
	}
	if src.WithCredentials != nil {
		v := *src.WithCredentials
		c.WithCredentials = &v
	}
	if src.CancelToken != nil {
		c.CancelToken = src.CancelToken
	}
	if src.RequestInterceptor != nil {
		c.RequestInterceptor = src.RequestInterceptor
	}
	if src.ResponseInterceptor != nil {
		c.ResponseInterceptor = src.ResponseInterceptor
	}
	if src.ErrorInterceptor != nil {
		c.ErrorInterceptor = src.ErrorInterceptor
	}
	if src.ParamsSerializer != nil {
		c.ParamsSerializer = src.ParamsSerializer
	}
	if src.Result != nil {
		c.Result = src.Result
	}
	if src.Extra != nil {
		c.Extra = DeepMerge(c.Extra, src.Extra)
	}
}

// mergeParams merges src into a copy of dst, keeping dst's key order and
// appending new keys in src order.
func mergeParams(dst, src Params) Params {
	out := make(Params, 0, len(dst)+len(src))
	for _, kv := range dst {
		if m, ok := kv.Value.(map[string]any); ok {
			kv.Value = DeepMerge(nil, m)
		}
		out = append(out, kv)
	}
	for _, kv := range src {
		sm, srcIsMap := kv.Value.(map[string]any)
		if !srcIsMap {
			out = out.Set(kv.Key, kv.Value)
			continue
		}
		cur, _ := out.Get(kv.Key)
		tm, _ := cur.(map[string]any)
		out = out.Set(kv.Key, DeepMerge(cloneMap(tm), sm))
	}
	return out
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		if nested, ok := v.(map[string]any); ok {
			v = cloneMap(nested)
		}
		out[k] = v
	}
	return out
}
