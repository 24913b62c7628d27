package common

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"io/ioutil"
	"os"

	"github.com/pkg/errors"
)

// marshal data structure to JSON
func ToJSON(x interface{}) ([]byte, error) {
	bytes, err := json.MarshalIndent(x, "", "\t")
	if err != nil {
		return nil, errors.Wrapf(err, "[common] error marshaling %T to JSON", x)
	}
	return bytes, nil
}

// read JSON from file, unmarshal into data structure
func FromFile(path string, x interface{}) error {
	file, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "[common] error opening file %s", path)
	}
	defer file.Close()

	bytes, err := ioutil.ReadAll(file)
	if err != nil {
		return errors.Wrapf(err, "[common] error reading file %s", path)
	}
	if err := json.Unmarshal(bytes, x); err != nil {
		return errors.Wrapf(
			err,
			"[common] error unmarshaling json to output struct %T (%s)",
			x,
			path,
		)
	}
	return nil
}

// marshal data structure to JSON, write to file
func ToFile(path string, x interface{}) error {
	bytes, err := ToJSON(x)
	if err != nil {
		return err
	}

	// write byte array to file
	if err := ioutil.WriteFile(path, bytes, 0644); err != nil {
		return errors.Wrapf(err, "[common] error writing struct %T to file", x)
	}
	return nil
}

// create tab-separated writer on top of w
func NewTSVWriter(w io.Writer) *csv.Writer {
	tw := csv.NewWriter(w)
	tw.Comma = '\t'
	return tw
}

// create tab-separated file writer; caller closes the returned file
func CreateTSVWriter(path string) (*csv.Writer, *os.File, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "[common] error creating TSV writer for %s", path)
	}
	return NewTSVWriter(file), file, nil
}
