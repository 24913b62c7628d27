package dataset

import (
	"bufio"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/mobius-scheduler/vrptwgen/common"
)

// default dataset file names, resolved against the working directory
const (
	DefaultDistancesFile = "rawDistance.txt"
	DefaultTimesFile     = "rawTime.txt"
	DefaultIDsFile       = "idRid.txt"
	DefaultPositionsFile = "idLatLng.dat"
)

// Paths locates the four dataset files.
type Paths struct {
	Distances string `mapstructure:"distances"`
	Times     string `mapstructure:"times"`
	IDs       string `mapstructure:"ids"`
	Positions string `mapstructure:"positions"`
}

func DefaultPaths() Paths {
	return Paths{
		Distances: DefaultDistancesFile,
		Times:     DefaultTimesFile,
		IDs:       DefaultIDsFile,
		Positions: DefaultPositionsFile,
	}
}

// Load reads and validates all four dataset files.
func Load(p Paths) (*Dataset, error) {
	var (
		d   Dataset
		err error
	)
	if d.Distances, err = loadFile(p.Distances, ReadPairwise); err != nil {
		return nil, err
	}
	if d.Times, err = loadFile(p.Times, ReadPairwise); err != nil {
		return nil, err
	}
	if d.IDs, err = loadFile(p.IDs, ReadIDs); err != nil {
		return nil, err
	}
	if d.Positions, err = loadFile(p.Positions, ReadPositions); err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	log.Debugf(
		"[dataset] loaded %d distances, %d times, %d ids, %d positions",
		len(d.Distances),
		len(d.Times),
		len(d.IDs),
		len(d.Positions),
	)
	return &d, nil
}

func loadFile[T any](path string, read func(io.Reader, string) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, common.Classify(common.ErrFatalConfiguration, err, "opening %s", path)
	}
	defer f.Close()
	return read(f, path)
}

// ReadPairwise parses `from to length` rows.
func ReadPairwise(r io.Reader, name string) ([]PairwiseRecord, error) {
	var out []PairwiseRecord
	err := scanRows(r, name, 3, func(fields []string) error {
		from, err := parseID(fields[0])
		if err != nil {
			return err
		}
		to, err := parseID(fields[1])
		if err != nil {
			return err
		}
		length, err := parseFinite(fields[2])
		if err != nil {
			return err
		}
		out = append(out, PairwiseRecord{From: from, To: to, Length: length})
		return nil
	})
	return out, err
}

// ReadIDs parses `position id` rows; the position column is ignored and the
// row order defines the pool order.
func ReadIDs(r io.Reader, name string) ([]common.LocationID, error) {
	var out []common.LocationID
	err := scanRows(r, name, 2, func(fields []string) error {
		id, err := parseID(fields[1])
		if err != nil {
			return err
		}
		out = append(out, id)
		return nil
	})
	return out, err
}

// ReadPositions parses `id lat lng` rows.
func ReadPositions(r io.Reader, name string) ([]common.Position, error) {
	var out []common.Position
	err := scanRows(r, name, 3, func(fields []string) error {
		id, err := parseID(fields[0])
		if err != nil {
			return err
		}
		lat, err := parseFinite(fields[1])
		if err != nil {
			return err
		}
		lng, err := parseFinite(fields[2])
		if err != nil {
			return err
		}
		out = append(out, common.Position{
			ID:       id,
			Location: common.Location{Latitude: lat, Longitude: lng},
		})
		return nil
	})
	return out, err
}

// scanRows feeds every non-blank, non-comment line with at least `columns`
// whitespace-separated fields to parse.
func scanRows(r io.Reader, name string, columns int, parse func([]string) error) error {
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) < columns {
			return errors.Wrapf(
				common.ErrFatalConfiguration,
				"%s:%d: want %d columns, got %d",
				name, line, columns, len(fields),
			)
		}
		if err := parse(fields); err != nil {
			return common.Classify(common.ErrFatalConfiguration, err, "%s:%d", name, line)
		}
	}
	if err := sc.Err(); err != nil {
		return common.Classify(common.ErrFatalConfiguration, err, "reading %s", name)
	}
	return nil
}

func parseID(s string) (common.LocationID, error) {
	v, err := strconv.ParseUint(s, 10, 0)
	if err != nil {
		return 0, err
	}
	return common.LocationID(v), nil
}

// parseFinite parses a float and rejects NaN and infinities.
func parseFinite(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.Errorf("%q is not a finite number", s)
	}
	return v, nil
}
