package entities

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtensionMap_SetAndGet(t *testing.T) {
	var m ExtensionMap

	m.Set("branch", StringValue("Pune East"))
	m.Set("bucket", NumberValue(decimal.NewFromInt(3)))
	m.Set("branch", StringValue("Pune West")) // overwrite keeps position

	require.Len(t, m, 2)
	assert.Equal(t, "branch", m[0].Key)

	v, ok := m.Get("branch")
	require.True(t, ok)
	assert.Equal(t, "Pune West", v.String())

	_, ok = m.Get("missing")
	assert.False(t, ok)
}

func TestExtensionMap_MarshalPreservesOrder(t *testing.T) {
	var m ExtensionMap
	m.Set("zeta", StringValue("last configured, first set"))
	m.Set("alpha", NumberValue(decimal.RequireFromString("12.50")))
	m.Set("flag", BoolValue(true))
	m.Set("empty", NullValue())

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"zeta":"last configured, first set","alpha":12.5,"flag":true,"empty":null}`, string(data))
}

func TestExtensionMap_Unmarshal(t *testing.T) {
	t.Run("flat object round-trips", func(t *testing.T) {
		var m ExtensionMap
		err := json.Unmarshal([]byte(`{"branch":"Pune","bucket":3,"priority":true,"remark":null}`), &m)
		require.NoError(t, err)
		require.Len(t, m, 4)

		assert.Equal(t, ExtensionString, m[0].Value.Kind())
		assert.Equal(t, ExtensionNumber, m[1].Value.Kind())
		assert.Equal(t, "3", m[1].Value.String())
		assert.Equal(t, ExtensionBool, m[2].Value.Kind())
		assert.Equal(t, ExtensionNull, m[3].Value.Kind())
	})

	t.Run("large numbers keep precision", func(t *testing.T) {
		var m ExtensionMap
		err := json.Unmarshal([]byte(`{"sanction":123456789.123456789}`), &m)
		require.NoError(t, err)

		v, ok := m.Get("sanction")
		require.True(t, ok)
		assert.Equal(t, "123456789.123456789", v.String())
	})

	t.Run("nested object rejected", func(t *testing.T) {
		var m ExtensionMap
		err := json.Unmarshal([]byte(`{"meta":{"nested":true}}`), &m)
		assert.Error(t, err)
	})

	t.Run("array rejected", func(t *testing.T) {
		var m ExtensionMap
		err := json.Unmarshal([]byte(`{"tags":["a","b"]}`), &m)
		assert.Error(t, err)
	})

	t.Run("non-object rejected", func(t *testing.T) {
		var m ExtensionMap
		err := json.Unmarshal([]byte(`["a"]`), &m)
		assert.Error(t, err)
	})

	t.Run("empty object yields empty map", func(t *testing.T) {
		var m ExtensionMap
		err := json.Unmarshal([]byte(`{}`), &m)
		require.NoError(t, err)
		assert.Empty(t, m)
	})
}
