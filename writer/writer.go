// Package writer serialises a generated instance to the Solomon-style text
// files and the optional JSON manifest.
package writer

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"

	"github.com/mobius-scheduler/vrptwgen/common"
	"github.com/mobius-scheduler/vrptwgen/generator"
)

// output file suffixes appended to the prefix
const (
	DistanceMatrixSuffix = "DistanceMatrix.dat"
	TimeMatrixSuffix     = "TimeMatrix.dat"
	SpecsSuffix          = "Specs.dat"
	ManifestSuffix       = "Instance.json"
)

// Files lists the paths written for one prefix.
type Files struct {
	DistanceMatrix string
	TimeMatrix     string
	Specs          string
	Manifest       string
}

func FilesFor(prefix string) Files {
	return Files{
		DistanceMatrix: prefix + DistanceMatrixSuffix,
		TimeMatrix:     prefix + TimeMatrixSuffix,
		Specs:          prefix + SpecsSuffix,
		Manifest:       prefix + ManifestSuffix,
	}
}

// WriteMatrix writes one tab-separated row per matrix row.
func WriteMatrix(w io.Writer, m mat.Matrix) error {
	return writeMatrix(common.NewTSVWriter(w), m)
}

// WriteMatrixFile creates path and writes m to it.
func WriteMatrixFile(path string, m mat.Matrix) error {
	tw, file, err := common.CreateTSVWriter(path)
	if err != nil {
		return err
	}
	if err := writeMatrix(tw, m); err != nil {
		file.Close()
		return errors.WithMessagef(err, "%s", path)
	}
	return errors.Wrapf(file.Close(), "[writer] error closing %s", path)
}

func writeMatrix(tw *csv.Writer, m mat.Matrix) error {
	r, c := m.Dims()
	row := make([]string, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			row[j] = strconv.FormatFloat(m.At(i, j), 'f', -1, 64)
		}
		if err := tw.Write(row); err != nil {
			return errors.Wrapf(err, "[writer] error writing matrix row %d", i)
		}
	}
	tw.Flush()
	return errors.Wrap(tw.Error(), "[writer] error flushing matrix")
}

// WriteSpecs writes the vehicle and customer sections in Solomon layout. The
// name line carries the instance name.
func WriteSpecs(w io.Writer, name string, inst *generator.Instance) error {
	bw := bufio.NewWriter(w)
	fleet := inst.Fleet()

	fmt.Fprintf(bw, "%s\n\n", name)
	fmt.Fprintf(bw, "VEHICLE\n")
	fmt.Fprintf(bw, "NUMBER     CAPACITY\n")
	fmt.Fprintf(bw, "%d\t%s\n\n", fleet.Size, strconv.FormatFloat(fleet.VehicleCapacity, 'f', -1, 64))
	fmt.Fprintf(bw, "CUSTOMER\n")
	fmt.Fprintf(
		bw,
		"CUST NO.\tXCOORD.\tYCOORD.\tDEMAND\tREADY TIME\tDUE DATE\tSERVICE   TIME\n\n",
	)
	for _, s := range inst.Stops() {
		fmt.Fprintf(
			bw,
			"%d\t%.4f\t%.4f\t%.0f\t%.0f\t%.0f\t%.0f\n",
			s.ID,
			s.Location.Latitude,
			s.Location.Longitude,
			s.Demand,
			s.ReadyTime,
			s.DueDate,
			s.ServiceTime,
		)
	}
	return errors.Wrap(bw.Flush(), "[writer] error writing specs")
}

// Manifest is the JSON rendition of a whole instance.
type Manifest struct {
	ID             uuid.UUID                    `json:"id"`
	Name           string                       `json:"name"`
	Size           int                          `json:"size"`
	Seeds          generator.Seeds              `json:"seeds"`
	Fleet          common.Fleet                 `json:"fleet"`
	Stops          []generator.Stop             `json:"stops"`
	DistanceMatrix [][]float64                  `json:"distance_matrix"`
	TimeMatrix     [][]float64                  `json:"time_matrix"`
	Warnings       []generator.IntegrityWarning `json:"warnings,omitempty"`
}

// InstanceID derives a stable id from the instance size and seeds, so the
// same command line always yields the same id.
func InstanceID(size int, seeds generator.Seeds) uuid.UUID {
	name := fmt.Sprintf(
		"vrptw/%d/%d/%d/%d/%d",
		size, seeds.Matrix, seeds.TimeWindow, seeds.Demand, seeds.ServiceTime,
	)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name))
}

func NewManifest(name string, inst *generator.Instance) *Manifest {
	return &Manifest{
		ID:             InstanceID(inst.Size(), inst.Seeds()),
		Name:           name,
		Size:           inst.Size(),
		Seeds:          inst.Seeds(),
		Fleet:          inst.Fleet(),
		Stops:          inst.Stops(),
		DistanceMatrix: rows(inst.DistanceMatrix()),
		TimeMatrix:     rows(inst.TimeMatrix()),
		Warnings:       inst.Warnings(),
	}
}

func rows(m mat.Matrix) [][]float64 {
	r, c := m.Dims()
	out := make([][]float64, r)
	for i := range out {
		out[i] = make([]float64, c)
		mat.Row(out[i], i, m)
	}
	return out
}

// WriteAll writes the matrix and specs files for prefix, plus the manifest
// when withManifest is set. It returns the paths written.
func WriteAll(prefix string, inst *generator.Instance, withManifest bool) ([]string, error) {
	files := FilesFor(prefix)
	var written []string

	if err := WriteMatrixFile(files.DistanceMatrix, inst.DistanceMatrix()); err != nil {
		return written, err
	}
	written = append(written, files.DistanceMatrix)

	if err := WriteMatrixFile(files.TimeMatrix, inst.TimeMatrix()); err != nil {
		return written, err
	}
	written = append(written, files.TimeMatrix)

	if err := writeFile(files.Specs, func(w io.Writer) error {
		return WriteSpecs(w, prefix, inst)
	}); err != nil {
		return written, err
	}
	written = append(written, files.Specs)

	if withManifest {
		if err := common.ToFile(files.Manifest, NewManifest(prefix, inst)); err != nil {
			return written, err
		}
		written = append(written, files.Manifest)
	}

	for _, path := range written {
		log.Infof("[writer] wrote %s", path)
	}
	return written, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "[writer] error creating %s", path)
	}
	if err := write(file); err != nil {
		file.Close()
		return errors.WithMessagef(err, "%s", path)
	}
	return errors.Wrapf(file.Close(), "[writer] error closing %s", path)
}
