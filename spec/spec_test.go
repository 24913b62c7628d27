package spec

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mobius-scheduler/vrptwgen/common"
)

const timeWindowsXML = `<?xml version="1.0"?>
<time-windows-specification>
  <depot opens="0" closes="1440"/>
  <time-windows>
    <time-window opens="480" closes="720" probability="60"/>
    <time-window opens="720" closes="1080" probability="40"/>
  </time-windows>
</time-windows-specification>`

const demandsXML = `<demands-specifications>
  <delta value="25"/>
  <demands>
    <demand type="10" probability="70"/>
    <demand type="20" probability="30"/>
  </demands>
</demands-specifications>`

const serviceTimesXML = `<service-times-specifications>
  <service-times>
    <service-time type="5" probability="50"/>
    <service-time type="15" probability="50"/>
  </service-times>
</service-times-specifications>`

func TestParseTimeWindowsXML(t *testing.T) {
	s, err := ParseTimeWindows([]byte(timeWindowsXML), FormatXML)
	require.NoError(t, err)
	assert.Equal(t, DepotWindow{Opens: 0, Closes: 1440}, s.Depot)
	assert.Equal(t, []CustomerWindow{
		{Opens: 480, Closes: 720, Weight: 60},
		{Opens: 720, Closes: 1080, Weight: 40},
	}, s.Customers)
	assert.Equal(t, []uint{60, 40}, s.Weights())
}

func TestParseDemandsXML(t *testing.T) {
	s, err := ParseDemands([]byte(demandsXML), FormatXML)
	require.NoError(t, err)
	assert.Equal(t, uint(25), s.Delta)
	assert.Equal(t, []Category{{Value: 10, Weight: 70}, {Value: 20, Weight: 30}}, s.Categories)
	assert.Equal(t, []uint{70, 30}, s.Weights())
}

func TestParseServiceTimesXML(t *testing.T) {
	s, err := ParseServiceTimes([]byte(serviceTimesXML), FormatXML)
	require.NoError(t, err)
	assert.Equal(t, []Category{{Value: 5, Weight: 50}, {Value: 15, Weight: 50}}, s.Categories)
}

func TestParseXML_Errors(t *testing.T) {
	tests := map[string]struct {
		parse    func([]byte) error
		input    string
		sentinel error
		contains []string
	}{
		"wrong root": {
			parse:    func(b []byte) error { _, err := ParseDemands(b, FormatXML); return err },
			input:    `<demands><delta value="1"/></demands>`,
			sentinel: common.ErrFatalConfiguration,
			contains: []string{"demands-specifications"},
		},
		"missing depot and attribute": {
			parse: func(b []byte) error { _, err := ParseTimeWindows(b, FormatXML); return err },
			input: `<time-windows-specification><time-windows>
				<time-window opens="1" probability="100"/>
			</time-windows></time-windows-specification>`,
			sentinel: common.ErrFatalConfiguration,
			contains: []string{"<depot>", "time-window[0]/closes"},
		},
		"bad weight": {
			parse: func(b []byte) error { _, err := ParseServiceTimes(b, FormatXML); return err },
			input: `<service-times-specifications><service-times>
				<service-time type="5" probability="-3"/>
			</service-times></service-times-specifications>`,
			sentinel: common.ErrFatalConfiguration,
			contains: []string{"service-time[0]/probability"},
		},
		"empty categories": {
			parse:    func(b []byte) error { _, err := ParseServiceTimes(b, FormatXML); return err },
			input:    `<service-times-specifications><service-times/></service-times-specifications>`,
			sentinel: common.ErrFatalConfiguration,
			contains: []string{"no service-time categories"},
		},
		"NaN demand": {
			parse: func(b []byte) error { _, err := ParseDemands(b, FormatXML); return err },
			input: `<demands-specifications><delta value="10"/><demands>
				<demand type="10" probability="50"/>
				<demand type="NaN" probability="50"/>
			</demands></demands-specifications>`,
			sentinel: common.ErrFatalConfiguration,
			contains: []string{"demand[1]/type", "not a finite number"},
		},
		"infinite demand": {
			parse: func(b []byte) error { _, err := ParseDemands(b, FormatXML); return err },
			input: `<demands-specifications><delta value="10"/><demands>
				<demand type="10" probability="50"/>
				<demand type="+Inf" probability="50"/>
			</demands></demands-specifications>`,
			sentinel: common.ErrFatalConfiguration,
			contains: []string{"demand[1]/type", "not a finite number"},
		},
		"infinite window bound": {
			parse: func(b []byte) error { _, err := ParseTimeWindows(b, FormatXML); return err },
			input: `<time-windows-specification><depot opens="0" closes="-Inf"/><time-windows>
				<time-window opens="1" closes="2" probability="100"/>
			</time-windows></time-windows-specification>`,
			sentinel: common.ErrFatalConfiguration,
			contains: []string{"depot/closes"},
		},
		"delta out of range": {
			parse: func(b []byte) error { _, err := ParseDemands(b, FormatXML); return err },
			input: `<demands-specifications><delta value="120"/><demands>
				<demand type="10" probability="100"/>
			</demands></demands-specifications>`,
			sentinel: common.ErrInvalidSpecification,
			contains: []string{"delta 120"},
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			err := tc.parse([]byte(tc.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.sentinel)
			for _, s := range tc.contains {
				assert.Contains(t, err.Error(), s)
			}
		})
	}
}

func TestParseYAML(t *testing.T) {
	tw, err := ParseTimeWindows([]byte(`
depot: {opens: 0, closes: 1440}
timeWindows:
  - {opens: 480, closes: 720, probability: 100}
`), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, 1440.0, tw.Depot.Closes)
	assert.Equal(t, []CustomerWindow{{Opens: 480, Closes: 720, Weight: 100}}, tw.Customers)

	d, err := ParseDemands([]byte(`
delta: 50
demands:
  - {type: 10, probability: 40}
  - {type: 20, probability: 60}
`), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, uint(50), d.Delta)
	assert.Len(t, d.Categories, 2)

	st, err := ParseServiceTimes([]byte(`
serviceTimes:
  - {type: 12.5, probability: 100}
`), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, []Category{{Value: 12.5, Weight: 100}}, st.Categories)

	_, err = ParseDemands([]byte("demands: []\n"), FormatYAML)
	assert.ErrorIs(t, err, common.ErrFatalConfiguration)
	assert.Contains(t, err.Error(), "missing attribute delta")
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFromPath("tw.yaml"))
	assert.Equal(t, FormatYAML, FormatFromPath("TW.YML"))
	assert.Equal(t, FormatXML, FormatFromPath("tw.xml"))
	assert.Equal(t, FormatXML, FormatFromPath("tw.spec"))
}

func TestLoadFromFiles(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		return path
	}

	tw, err := LoadTimeWindows(write("tw.xml", timeWindowsXML))
	require.NoError(t, err)
	assert.Len(t, tw.Customers, 2)

	d, err := LoadDemands(write("d.xml", demandsXML))
	require.NoError(t, err)
	assert.Equal(t, uint(25), d.Delta)

	st, err := LoadServiceTimes(write("st.xml", serviceTimesXML))
	require.NoError(t, err)
	assert.Len(t, st.Categories, 2)

	_, err = LoadDemands(filepath.Join(dir, "missing.xml"))
	assert.ErrorIs(t, err, common.ErrFatalConfiguration)
	var pathErr *os.PathError
	assert.ErrorAs(t, err, &pathErr)

	_, err = LoadDemands(write("nan.yaml", "delta: 0\ndemands:\n  - {type: NaN, probability: 100}\n"))
	assert.ErrorIs(t, err, common.ErrFatalConfiguration)

	_, err = LoadDemands(write("bad.xml", "<nope/>"))
	assert.ErrorIs(t, err, common.ErrFatalConfiguration)
	assert.Contains(t, err.Error(), "bad.xml")
}
