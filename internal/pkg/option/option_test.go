package option

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOption_Basics(t *testing.T) {
	t.Run("零值為 None", func(t *testing.T) {
		var o Option[string]
		assert.True(t, o.IsNone())
		_, ok := o.Get()
		assert.False(t, ok)
		assert.Equal(t, "fallback", o.OrElse("fallback"))
		assert.Nil(t, o.Ptr())
	})

	t.Run("Some 取值", func(t *testing.T) {
		o := Some(42)
		v, ok := o.Get()
		assert.True(t, ok)
		assert.Equal(t, 42, v)
		assert.Equal(t, 42, o.OrElse(0))
		assert.Equal(t, "Some(42)", o.String())
	})

	t.Run("可比較", func(t *testing.T) {
		assert.True(t, Some("a") == Some("a"))
		assert.False(t, Some("a") == Some("b"))
		assert.True(t, None[int]() == Option[int]{})
	})

	t.Run("FromPtr", func(t *testing.T) {
		s := "x"
		assert.Equal(t, Some("x"), FromPtr(&s))
		assert.Equal(t, None[string](), FromPtr[string](nil))
	})
}

func TestOption_JSON(t *testing.T) {
	type payload struct {
		URL   Option[string] `json:"url"`
		Count Option[int]    `json:"count"`
	}

	data, err := json.Marshal(payload{URL: Some("127.0.0.1:46821")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"url":"127.0.0.1:46821","count":null}`, string(data))

	var back payload
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, Some("127.0.0.1:46821"), back.URL)
	assert.True(t, back.Count.IsNone())
}
