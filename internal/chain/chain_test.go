package chain

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseAccountID(t *testing.T) {
	hexStr := "0x" + strings.Repeat("ab", HashLength)

	id, err := ParseAccountID(hexStr)
	require.NoError(t, err)
	require.Equal(t, hexStr, id.String())

	noPrefix, err := ParseAccountID(strings.Repeat("ab", HashLength))
	require.NoError(t, err)
	require.Equal(t, id, noPrefix)

	_, err = ParseAccountID("0x1234")
	require.ErrorIs(t, err, ErrInvalidHex)

	_, err = ParseAccountID("0x" + strings.Repeat("zz", HashLength))
	require.ErrorIs(t, err, ErrInvalidHex)
}

func TestHash_ScanAndValue(t *testing.T) {
	var h Hash
	h[0] = 0x01
	h[31] = 0xff

	v, err := h.Value()
	require.NoError(t, err)

	var fromString Hash
	require.NoError(t, fromString.Scan(v))
	require.Equal(t, h, fromString)

	var fromBytes Hash
	require.NoError(t, fromBytes.Scan([]byte(v.(string))))
	require.Equal(t, h, fromBytes)

	require.Error(t, fromBytes.Scan(int64(7)))
}

func TestAccountID_JSON(t *testing.T) {
	var a AccountID
	a[5] = 0x42

	data, err := json.Marshal(map[string]AccountID{"account": a})
	require.NoError(t, err)
	require.Contains(t, string(data), a.String())

	var decoded map[string]AccountID
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, a, decoded["account"])
	require.False(t, decoded["account"].IsZero())
	require.True(t, AccountID{}.IsZero())
}

func TestBalance_CheckedAdd(t *testing.T) {
	sum, err := Balance(700).CheckedAdd(300)
	require.NoError(t, err)
	require.Equal(t, Balance(1000), sum)

	_, err = Balance(math.MaxUint64).CheckedAdd(1)
	require.ErrorIs(t, err, ErrBalanceOverflow)
}

func TestEnsureSigned(t *testing.T) {
	var a AccountID
	a[0] = 9

	got, err := EnsureSigned(Signed(a))
	require.NoError(t, err)
	require.Equal(t, a, got)

	_, err = EnsureSigned(Unsigned())
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestGenesisClock(t *testing.T) {
	genesis := time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)
	now := genesis.Add(-time.Minute)

	clock := NewGenesisClock(genesis, 6*time.Second)
	clock.now = func() time.Time { return now }

	require.Equal(t, BlockHeight(0), clock.CurrentHeight(), "before genesis")

	now = genesis.Add(59 * time.Second)
	require.Equal(t, BlockHeight(9), clock.CurrentHeight())

	now = genesis.Add(60 * time.Second)
	require.Equal(t, BlockHeight(10), clock.CurrentHeight())

	// wall clock stepping back must not lower the height
	now = genesis.Add(12 * time.Second)
	require.Equal(t, BlockHeight(10), clock.CurrentHeight())
}

func TestManualClock(t *testing.T) {
	clock := NewManualClock(5)
	require.Equal(t, BlockHeight(5), clock.CurrentHeight())
	require.Equal(t, BlockHeight(8), clock.Advance(3))
	clock.Set(42)
	require.Equal(t, BlockHeight(42), clock.CurrentHeight())
}
