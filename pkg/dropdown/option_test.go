package dropdown

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOptionSetRejectsDuplicateKeys(t *testing.T) {
	_, err := NewOptionSet([]Option{
		NewOption("a", "A"),
		NewOption("b", "B"),
		NewOption("a", "Another A"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.Contains(t, err.Error(), "positions 0 and 2")
}

func TestKeysOfDifferentKindsDoNotCollide(t *testing.T) {
	set, err := NewOptionSet([]Option{
		{Key: StringKey("1"), Label: "string one"},
		{Key: IntKey(1), Label: "int one"},
	})
	require.NoError(t, err)

	opt, ok := set.Lookup(IntKey(1))
	require.True(t, ok)
	assert.Equal(t, "int one", opt.Label)
	assert.Equal(t, 0, set.IndexOf(StringKey("1")))
	assert.Equal(t, -1, set.IndexOf(StringKey("2")))
}

func TestKeyJSON(t *testing.T) {
	tests := []struct {
		in      string
		want    Key
		wantErr bool
	}{
		{in: `"apple"`, want: StringKey("apple")},
		{in: `42`, want: IntKey(42)},
		{in: `-3`, want: IntKey(-3)},
		{in: `1.5`, wantErr: true},
		{in: `true`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var k Key
			err := json.Unmarshal([]byte(tt.in), &k)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, k)

			out, err := json.Marshal(k)
			require.NoError(t, err)
			assert.JSONEq(t, tt.in, string(out))
		})
	}
}

func TestOptionSetOptionsIsACopy(t *testing.T) {
	set := fruits()
	opts := set.Options()
	opts[0].Label = "changed"
	assert.Equal(t, "Apple", set.At(0).Label)
}

func TestNilOptionSet(t *testing.T) {
	var set *OptionSet
	assert.Equal(t, 0, set.Len())
	assert.Equal(t, -1, set.IndexOf(StringKey("a")))
	assert.Nil(t, set.Options())
}
