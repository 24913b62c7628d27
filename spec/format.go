package spec

import (
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/mobius-scheduler/vrptwgen/common"
)

type Format int

const (
	FormatXML Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatXML:
		return "xml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// FormatFromPath picks the format by file extension; anything that is not
// .yaml or .yml is read as XML.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatXML
	}
}

func readSpecFile(path string) ([]byte, Format, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, 0, common.Classify(common.ErrFatalConfiguration, err, "reading %s", path)
	}
	return data, FormatFromPath(path), nil
}

// LoadTimeWindows reads a time-window specification file.
func LoadTimeWindows(path string) (*TimeWindowSpec, error) {
	data, format, err := readSpecFile(path)
	if err != nil {
		return nil, err
	}
	s, err := ParseTimeWindows(data, format)
	return s, errors.WithMessagef(err, "time-window specification %s", path)
}

// LoadDemands reads a demand specification file.
func LoadDemands(path string) (*DemandSpec, error) {
	data, format, err := readSpecFile(path)
	if err != nil {
		return nil, err
	}
	s, err := ParseDemands(data, format)
	return s, errors.WithMessagef(err, "demand specification %s", path)
}

// LoadServiceTimes reads a service-time specification file.
func LoadServiceTimes(path string) (*ServiceTimeSpec, error) {
	data, format, err := readSpecFile(path)
	if err != nil {
		return nil, err
	}
	s, err := ParseServiceTimes(data, format)
	return s, errors.WithMessagef(err, "service-time specification %s", path)
}

func ParseTimeWindows(data []byte, format Format) (*TimeWindowSpec, error) {
	if format == FormatYAML {
		return parseTimeWindowsYAML(data)
	}
	return parseTimeWindowsXML(data)
}

func ParseDemands(data []byte, format Format) (*DemandSpec, error) {
	if format == FormatYAML {
		return parseDemandsYAML(data)
	}
	return parseDemandsXML(data)
}

func ParseServiceTimes(data []byte, format Format) (*ServiceTimeSpec, error) {
	if format == FormatYAML {
		return parseServiceTimesYAML(data)
	}
	return parseServiceTimesXML(data)
}
