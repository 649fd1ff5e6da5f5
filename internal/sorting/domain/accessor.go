package domain

// ---------------- Capacidades de acceso ----------------

// KeyedLookup es un contenedor con acceso por clave.
type KeyedLookup interface {
	Lookup(key string) (any, bool)
}

// MemberAccessor expone campos y métodos por nombre.
type MemberAccessor interface {
	Member(name string) (Member, bool)
}

// Member es un campo (Value) o un método sin argumentos (Call). Los métodos
// marcados con AltersData nunca se invocan al resolver claves de orden.
type Member struct {
	Value      any
	Call       func() any
	AltersData bool
}

// Field envuelve un valor simple.
func Field(v any) Member {
	return Member{Value: v}
}

// Method envuelve un método de solo lectura.
func Method(fn func() any) Member {
	return Member{Call: fn}
}

// MutatingMethod envuelve un método que modifica datos.
func MutatingMethod(fn func()) Member {
	return Member{
		Call: func() any {
			fn()
			return nil
		},
		AltersData: true,
	}
}

// IsCallable indica si el miembro es un método.
func (m Member) IsCallable() bool {
	return m.Call != nil
}

type stringMap map[string]string

func (m stringMap) Lookup(key string) (any, bool) {
	v, ok := m[key]
	return v, ok
}

type anyMap map[string]any

func (m anyMap) Lookup(key string) (any, bool) {
	v, ok := m[key]
	return v, ok
}

// keyed devuelve la vista por clave de v, si la tiene. Los mapas de string
// se aceptan sin adaptador.
func keyed(v any) (KeyedLookup, bool) {
	switch c := v.(type) {
	case KeyedLookup:
		return c, true
	case map[string]any:
		return anyMap(c), true
	case map[string]string:
		return stringMap(c), true
	default:
		return nil, false
	}
}
