package domain

// Direction es el valor del parámetro "dir".
type Direction string

const (
	DirAsc  Direction = "asc"
	DirDesc Direction = "desc"
	DirNone Direction = ""
)

// DirectionEntry asocia a cada dirección su icono y la dirección siguiente.
type DirectionEntry struct {
	Icon    string
	Inverse Direction
}

// ParseDirection normaliza el valor crudo de "dir". Cualquier otra cosa se
// trata como ausente.
func ParseDirection(raw string) Direction {
	switch Direction(raw) {
	case DirAsc:
		return DirAsc
	case DirDesc:
		return DirDesc
	default:
		return DirNone
	}
}
