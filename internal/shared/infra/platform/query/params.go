package query

import (
	"fmt"
	"net/url"
	"strings"
)

// Param es un par clave/valor de la query string.
type Param struct {
	Key   string
	Value string
}

// Params es una vista ordenada de la query string. A diferencia de url.Values
// conserva el orden relativo original al volver a codificarse.
type Params []Param

// ParseParams interpreta una query string cruda (sin "?").
func ParseParams(raw string) (Params, error) {
	var params Params
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		k, err := url.QueryUnescape(key)
		if err != nil {
			return nil, fmt.Errorf("invalid query key %q: %w", key, err)
		}
		v, err := url.QueryUnescape(value)
		if err != nil {
			return nil, fmt.Errorf("invalid query value for %q: %w", k, err)
		}
		params = append(params, Param{Key: k, Value: v})
	}
	return params, nil
}

// Clone devuelve una copia independiente.
func (p Params) Clone() Params {
	if p == nil {
		return nil
	}
	out := make(Params, len(p))
	copy(out, p)
	return out
}

// Len devuelve el número de pares.
func (p Params) Len() int {
	return len(p)
}

// Get devuelve el último valor asociado a key: en "?sort=a&sort=b" manda b.
func (p Params) Get(key string) (string, bool) {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i].Key == key {
			return p[i].Value, true
		}
	}
	return "", false
}

// Has indica si key aparece al menos una vez.
func (p Params) Has(key string) bool {
	_, ok := p.Get(key)
	return ok
}

// Del elimina todos los valores de key.
func (p *Params) Del(key string) {
	out := (*p)[:0]
	for _, kv := range *p {
		if kv.Key != key {
			out = append(out, kv)
		}
	}
	*p = out
}

// Set reemplaza el primer valor de key y descarta el resto. Si key no existe
// se añade al final.
func (p *Params) Set(key, value string) {
	for i, kv := range *p {
		if kv.Key == key {
			(*p)[i].Value = value
			rest := (*p)[i+1:]
			rest.Del(key)
			*p = (*p)[:i+1+len(rest)]
			return
		}
	}
	*p = append(*p, Param{Key: key, Value: value})
}

// Encode vuelve a codificar los pares respetando su orden.
func (p Params) Encode() string {
	var b strings.Builder
	for i, kv := range p {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(kv.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(kv.Value))
	}
	return b.String()
}
