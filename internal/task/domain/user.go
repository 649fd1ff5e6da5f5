package domain

import (
	"time"

	"github.com/google/uuid"

	sorting "github.com/davicafu/sortlab/internal/sorting/domain"
)

// User es el responsable de una tarea.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Nombre    string    `json:"nombre"`
	BirthDate time.Time `json:"birth_date"`
	CreatedAt time.Time `json:"created_at"`
}

// Age calcula la edad del usuario a partir de su fecha de nacimiento.
func (u *User) Age() int {
	return u.ageAt(time.Now())
}

func (u *User) ageAt(now time.Time) int {
	birth := u.BirthDate
	years := now.Year() - birth.Year()
	// Se compara (mes, día): YearDay se desplaza un día en años bisiestos.
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		years--
	}
	return years
}

// Member permite ordenar por "assignee__age", que se calcula.
func (u *User) Member(name string) (sorting.Member, bool) {
	switch name {
	case "id":
		return sorting.Field(u.ID), true
	case "email":
		return sorting.Field(u.Email), true
	case "nombre":
		return sorting.Field(u.Nombre), true
	case "birth_date":
		return sorting.Field(u.BirthDate), true
	case "created_at":
		return sorting.Field(u.CreatedAt), true
	case "age":
		return sorting.Method(func() any { return u.Age() }), true
	}
	return sorting.Member{}, false
}

var _ sorting.MemberAccessor = (*User)(nil)
