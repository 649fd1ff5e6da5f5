package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/davicafu/sortlab/internal/shared/infra/platform/query"
)

func TestStateFromParams(t *testing.T) {
	params := query.Params{{Key: "page", Value: "2"}, {Key: "sort", Value: "title"}, {Key: "dir", Value: "asc"}}

	state := StateFromParams(params)

	assert.Equal(t, SortRequestState{Field: "title", Dir: DirAsc}, state)
	assert.True(t, state.Active("title"))
	assert.False(t, state.Active("status"))
	assert.Len(t, params, 3, "los parámetros no se modifican")
}

func TestState_EmptySortIsNeverActive(t *testing.T) {
	state := StateFromParams(nil)
	assert.False(t, state.Active(""))
}

func TestState_FieldSpec(t *testing.T) {
	cases := []struct {
		name  string
		state SortRequestState
		def   Direction
		want  string
	}{
		{"asc explícito", SortRequestState{Field: "title", Dir: DirAsc}, DirDesc, "title"},
		{"desc explícito", SortRequestState{Field: "title", Dir: DirDesc}, DirAsc, "-title"},
		{"sin dir usa desc por defecto", SortRequestState{Field: "title"}, DirDesc, "-title"},
		{"sin dir usa asc por defecto", SortRequestState{Field: "title"}, DirAsc, "title"},
		{"sin sort", SortRequestState{}, DirDesc, "-"},
		{"path anidado", SortRequestState{Field: "assignee__nombre", Dir: DirDesc}, DirDesc, "-assignee__nombre"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.state.FieldSpec(tc.def))
		})
	}
}
