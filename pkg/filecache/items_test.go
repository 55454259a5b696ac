package filecache

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestItems_EncodeDecodeRoundTrip(t *testing.T) {
	items := []Item{
		ItemFromBytes([]byte{1, 2, 3}),
		ItemFromText("hello"),
		ItemFromValue(ValueNumber(42)),
		ItemNull(),
		ItemAbsent(),
	}

	buf, err := encodeItems(items)
	require.NoError(t, err)

	got, err := decodeItems(buf, len(items))
	require.NoError(t, err)
	require.Len(t, got, len(items))

	require.Equal(t, ItemOpaque, got[0].Kind)
	require.Equal(t, []byte{1, 2, 3}, got[0].Bytes)
	require.Equal(t, ItemText, got[1].Kind)
	require.Equal(t, "hello", got[1].Text)
	require.Equal(t, ItemStructured, got[2].Kind)
	require.Equal(t, ValueKindNumber, got[2].Value.Kind)
	require.Equal(t, float64(42), got[2].Value.Num)
	require.Equal(t, ItemNullValue, got[3].Kind)
	require.Equal(t, ItemAbsentValue, got[4].Kind)
}

func TestItems_EmptyStreamRoundTrips(t *testing.T) {
	buf, err := encodeItems(nil)
	require.NoError(t, err)
	require.Empty(t, buf)

	got, err := decodeItems(buf, 0)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestItems_TruncatedHeaderFailsWithRange(t *testing.T) {
	_, err := decodeItems([]byte{0, 1, 2}, 1)
	require.Error(t, err)
}

func TestItems_UnknownTagFailsWithRange(t *testing.T) {
	buf, err := encodeItems([]Item{ItemFromText("x")})
	require.NoError(t, err)
	buf[0] = 99 // corrupt the tag

	_, err = decodeItems(buf, 1)
	require.Error(t, err)
}

func TestValue_ObjectAndArrayRoundTrip(t *testing.T) {
	v := ValueObject(map[string]Value{
		"names": ValueArray([]Value{ValueString("foo"), ValueString("bar")}),
		"count": ValueNumber(2),
		"ok":    ValueBool(true),
	})

	payload, err := marshalValue(v)
	require.NoError(t, err)

	got, err := unmarshalValue(payload)
	require.NoError(t, err)
	require.Equal(t, ValueKindObject, got.Kind)
	require.Equal(t, ValueKindArray, got.Obj["names"].Kind)
	require.Len(t, got.Obj["names"].Arr, 2)
	require.Equal(t, "foo", got.Obj["names"].Arr[0].Str)
	require.Equal(t, float64(2), got.Obj["count"].Num)
	require.Equal(t, true, got.Obj["ok"].Bool)
}
