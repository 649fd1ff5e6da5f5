package domain

// Iconos por defecto: flechas como entidades HTML.
const (
	DefaultSortUp   = "&uarr;"
	DefaultSortDown = "&darr;"
)

// Config agrupa la configuración del ordenamiento. Se construye una vez al
// arrancar y se pasa explícitamente al codec y al orquestador.
type Config struct {
	SortUpIcon   string
	SortDownIcon string

	// InvalidFieldRaises404 convierte un campo rechazado en un 404 en vez de
	// dejar la colección sin ordenar.
	InvalidFieldRaises404 bool

	// DefaultDirection es la dirección asumida cuando la URL no trae "dir".
	DefaultDirection Direction
}

// DefaultConfig devuelve la configuración con los valores por defecto.
func DefaultConfig() Config {
	return Config{
		SortUpIcon:       DefaultSortUp,
		SortDownIcon:     DefaultSortDown,
		DefaultDirection: DirDesc,
	}
}

// Directions devuelve la tabla fija de direcciones.
func (c Config) Directions() map[Direction]DirectionEntry {
	return map[Direction]DirectionEntry{
		DirAsc:  {Icon: c.SortUpIcon, Inverse: DirDesc},
		DirDesc: {Icon: c.SortDownIcon, Inverse: DirAsc},
		DirNone: {Icon: c.SortDownIcon, Inverse: DirAsc},
	}
}

// Entry busca la entrada de d. Valores desconocidos caen en la entrada vacía.
func (c Config) Entry(d Direction) DirectionEntry {
	table := c.Directions()
	if e, ok := table[d]; ok {
		return e
	}
	return table[DirNone]
}
