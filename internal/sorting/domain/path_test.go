package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------- Fixtures ----------------

type author struct {
	name    string
	resets  int
	profile map[string]any
}

func (a *author) Member(name string) (Member, bool) {
	switch name {
	case "name":
		return Field(a.name), true
	case "upper_name":
		return Method(func() any { return "UP:" + a.name }), true
	case "reset":
		return MutatingMethod(func() { a.resets++ }), true
	case "profile":
		return Field(a.profile), true
	}
	return Member{}, false
}

type book struct {
	title  string
	author *author
}

func (b *book) Member(name string) (Member, bool) {
	switch name {
	case "title":
		return Field(b.title), true
	case "author":
		return Field(b.author), true
	}
	return Member{}, false
}

// ---------------- Resolve ----------------

func TestParsePath_Segments(t *testing.T) {
	p := ParsePath("author__profile__city")
	assert.Equal(t, []string{"author", "profile", "city"}, p.Segments())
	assert.Equal(t, "author__profile__city", p.String())
}

func TestResolve_FieldChain(t *testing.T) {
	b := &book{title: "Dune", author: &author{name: "Herbert"}}
	assert.Equal(t, "Herbert", ParsePath("author__name").Resolve(b))
}

func TestResolve_KeyedLookupTakesPriority(t *testing.T) {
	obj := map[string]any{"author": map[string]string{"name": "Le Guin"}}
	assert.Equal(t, "Le Guin", ParsePath("author__name").Resolve(obj))
}

func TestResolve_MapInsideMember(t *testing.T) {
	b := &book{author: &author{profile: map[string]any{"city": "Portland"}}}
	assert.Equal(t, "Portland", ParsePath("author__profile__city").Resolve(b))
}

func TestResolve_CallsReadOnlyMethods(t *testing.T) {
	b := &book{author: &author{name: "Banks"}}
	assert.Equal(t, "UP:Banks", ParsePath("author__upper_name").Resolve(b))
}

func TestResolve_NeverCallsMutatingMethods(t *testing.T) {
	a := &author{name: "Wolfe"}
	b := &book{author: a}

	got := ParsePath("author__reset").Resolve(b)

	assert.Same(t, a, got, "el segmento mutador no cambia el valor actual")
	assert.Zero(t, a.resets, "el método mutador no debe invocarse")
}

func TestResolve_MutatingSegmentIsNoOpAndWalkContinues(t *testing.T) {
	b := &book{author: &author{name: "Wolfe"}}
	assert.Equal(t, "Wolfe", ParsePath("author__reset__name").Resolve(b))
}

func TestResolve_MissingSegmentReturnsLastValue(t *testing.T) {
	a := &author{name: "Vance"}
	b := &book{author: a}

	assert.Same(t, b, ParsePath("profile").Resolve(b))
	assert.Same(t, a, ParsePath("author__missing__name").Resolve(b))
}

func TestResolve_PlainValueWithoutCapabilities(t *testing.T) {
	assert.Equal(t, 42, ParsePath("anything").Resolve(42))
}

func TestResolve_Idempotent(t *testing.T) {
	b := &book{author: &author{name: "Gibson"}}
	key := ParsePath("author__upper_name").KeyFunc()
	assert.Equal(t, key(b), key(b))
}

// ---------------- SortBy ----------------

func TestSortBy_AscendingAndStable(t *testing.T) {
	items := []map[string]any{
		{"id": 1, "n": "b"},
		{"id": 2, "n": "a"},
		{"id": 3, "n": "b"},
		{"id": 4, "n": "a"},
	}

	out := SortBy(items, "n", false)

	ids := make([]any, len(out))
	for i, it := range out {
		ids[i] = it["id"]
	}
	assert.Equal(t, []any{2, 4, 1, 3}, ids)
	assert.Equal(t, 1, items[0]["id"], "la entrada original no se reordena")
}

func TestSortBy_ReverseKeepsTiesInOriginalOrder(t *testing.T) {
	items := []map[string]any{
		{"id": 1, "n": "a"},
		{"id": 2, "n": "b"},
		{"id": 3, "n": "a"},
	}

	out := SortBy(items, "n", true)

	require.Len(t, out, 3)
	assert.Equal(t, []any{2, 1, 3}, []any{out[0]["id"], out[1]["id"], out[2]["id"]})
}

func TestSortBy_NestedPath(t *testing.T) {
	books := []*book{
		{title: "B", author: &author{name: "Zelazny"}},
		{title: "A", author: &author{name: "Asimov"}},
		{title: "C", author: &author{name: "Moorcock"}},
	}

	out := SortBy(books, "author__name", true)

	assert.Equal(t, "B", out[0].title)
	assert.Equal(t, "C", out[1].title)
	assert.Equal(t, "A", out[2].title)
}

func TestListOf(t *testing.T) {
	l := ListOf([]string{"x", "y"})
	assert.Equal(t, []any{"x", "y"}, l.Elements())
}
