package reporttemplar

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize_Lists(t *testing.T) {
	schema := []FieldDescriptor{
		{Key: "a", Type: FieldList},
		{Key: "b", Type: FieldList},
		{Key: "c", Type: FieldList},
		{Key: "d", Type: FieldList},
		{Key: "n", Type: FieldNumber},
	}
	raw := Values{
		"a":     " 1:30 ;\n;1:28\r\n",
		"b":     []interface{}{"x", ""},
		"c":     12.0,
		"n":     "42",
		"extra": "сохраняется",
	}
	out := Normalize(schema, raw)
	require.Equal(t, []interface{}{"1:30", "1:28"}, out["a"])
	require.Equal(t, []interface{}{"x", ""}, out["b"])
	require.Equal(t, []interface{}{}, out["c"])
	require.Equal(t, []interface{}{}, out["d"])
	require.Equal(t, "42", out["n"])
	require.Equal(t, "сохраняется", out["extra"])
}

func TestNormalize_StringSliceList(t *testing.T) {
	out := Normalize([]FieldDescriptor{{Key: "a", Type: FieldList}}, Values{"a": []string{"p", "q"}})
	require.Equal(t, []interface{}{"p", "q"}, out["a"])
}

func TestNormalize_DefaultsSizeWeight(t *testing.T) {
	schema := []FieldDescriptor{
		{Key: "laps", Type: FieldList, ListSize: 2, DefaultValue: "400;400;400"},
		{Key: "open", Type: FieldList, DefaultValue: "a\nb\nc"},
		{Key: "time", Type: FieldTime, DefaultValue: "0:00", Weight: "10"},
		{Key: "run", Type: FieldTime, Weight: "5"},
	}
	out := Normalize(schema, Values{"run": "25:00", "run_weight": "6"})
	require.Equal(t, []interface{}{"400", "400"}, out["laps"])
	require.Equal(t, []interface{}{"a", "b", "c"}, out["open"])
	require.Equal(t, "0:00", out["time"])
	require.Equal(t, "10", out["time_weight"])
	// с формы пришло своё значение — не перетираем
	require.Equal(t, "6", out["run_weight"])
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	raw := Values{"a": "x;y"}
	_ = Normalize([]FieldDescriptor{{Key: "a", Type: FieldList}}, raw)
	require.Equal(t, "x;y", raw["a"])
}
