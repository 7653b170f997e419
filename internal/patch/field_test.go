package patch

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

type notePatch struct {
	Title   Field[string] `json:"title,omitzero"`
	Content Field[string] `json:"content,omitzero"`
}

func TestField_States(t *testing.T) {
	var absent Field[string]
	require.False(t, absent.IsSet())
	require.False(t, absent.IsNull())
	_, ok := absent.Get()
	require.False(t, ok)

	null := Null[string]()
	require.True(t, null.IsSet())
	require.True(t, null.IsNull())
	require.Nil(t, null.Arg())

	set := Set("hello")
	require.True(t, set.IsSet())
	require.False(t, set.IsNull())
	v, ok := set.Get()
	require.True(t, ok)
	require.Equal(t, "hello", v)
	require.Equal(t, "hello", set.Arg())
}

func TestField_MarshalOmitsAbsent(t *testing.T) {
	p := notePatch{Title: Set("a")}
	b, err := json.Marshal(p)
	require.NoError(t, err)
	require.JSONEq(t, `{"title":"a"}`, string(b))
}

func TestField_MarshalNullIsExplicit(t *testing.T) {
	p := notePatch{Content: Null[string]()}
	b, err := json.Marshal(p)
	require.NoError(t, err)
	require.JSONEq(t, `{"content":null}`, string(b))
}

func TestField_UnmarshalDistinguishesNullFromAbsent(t *testing.T) {
	var p notePatch
	require.NoError(t, json.Unmarshal([]byte(`{"title":null}`), &p))
	require.True(t, p.Title.IsNull())
	require.False(t, p.Content.IsSet())

	var q notePatch
	require.NoError(t, json.Unmarshal([]byte(`{"content":"body"}`), &q))
	v, ok := q.Content.Get()
	require.True(t, ok)
	require.Equal(t, "body", v)
}
