package common

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	_, cause := strconv.ParseFloat("x", 64)
	err := Classify(ErrFatalConfiguration, cause, "rates.txt:%d", 3)

	assert.ErrorIs(t, err, ErrFatalConfiguration)
	assert.False(t, errors.Is(err, ErrLookup))

	var numErr *strconv.NumError
	require.ErrorAs(t, err, &numErr)
	assert.Equal(t, "x", numErr.Num)
	assert.Equal(t, `rates.txt:3: strconv.ParseFloat: parsing "x": invalid syntax: fatal configuration error`, err.Error())

	assert.NoError(t, Classify(ErrLookup, nil, "unused"))
}

func TestPositionString(t *testing.T) {
	p := Position{ID: 7, Location: Location{Latitude: 52.95, Longitude: -1.15}}
	assert.Equal(t, "(7: 52.950000, -1.150000)", p.String())
}

func TestTSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.tsv")
	tw, file, err := CreateTSVWriter(path)
	require.NoError(t, err)
	require.NoError(t, tw.Write([]string{"a", "b"}))
	tw.Flush()
	require.NoError(t, tw.Error())
	require.NoError(t, file.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\tb\n", string(content))
}

func TestJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fleet.json")
	require.NoError(t, ToFile(path, Fleet{Size: 3, VehicleCapacity: 40}))

	var fleet Fleet
	require.NoError(t, FromFile(path, &fleet))
	assert.Equal(t, Fleet{Size: 3, VehicleCapacity: 40}, fleet)

	assert.Error(t, FromFile(filepath.Join(t.TempDir(), "missing.json"), &fleet))
}
