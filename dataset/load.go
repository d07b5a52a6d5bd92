// Package dataset loads and generates the numeric datasets searched by the
// cart engines. A dataset is a *mat.Dense with one row per sample; categorical
// columns hold 0-based category indices.
package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/pcart/pkg/errors"
)

// LoadNPY reads a 2-D float64 array from a NumPy .npy file.
func LoadNPY(path string) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open dataset %s", path)
	}
	defer f.Close()

	r, err := npyio.NewReader(f)
	if err != nil {
		return nil, errors.Wrapf(err, "read npy header of %s", path)
	}
	if len(r.Header.Descr.Shape) != 2 {
		return nil, errors.NewValidationError("dataset", "npy array must be 2-dimensional", r.Header.Descr.Shape)
	}

	data := &mat.Dense{}
	if err := r.Read(data); err != nil {
		return nil, errors.Wrapf(err, "read npy data of %s", path)
	}
	return data, nil
}

// LoadCSV reads a numeric CSV table. When hasHeader is set the first record
// is skipped. Every record must have the same number of fields.
func LoadCSV(r io.Reader, hasHeader bool) (*mat.Dense, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "read csv")
	}
	if hasHeader && len(records) > 0 {
		records = records[1:]
	}
	if len(records) == 0 {
		return nil, errors.ErrEmptyData
	}

	cols := len(records[0])
	values := make([]float64, 0, len(records)*cols)
	for i, rec := range records {
		for j, field := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, errors.Wrapf(err, "csv row %d column %d", i, j)
			}
			values = append(values, v)
		}
	}
	return mat.NewDense(len(records), cols, values), nil
}

// Load picks a loader from the file extension: .npy or .csv. hasHeader
// applies to CSV files only.
func Load(path string, hasHeader bool) (*mat.Dense, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".npy":
		return LoadNPY(path)
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrapf(err, "open dataset %s", path)
		}
		defer f.Close()
		return LoadCSV(f, hasHeader)
	default:
		return nil, errors.NewValidationError("data", "unsupported dataset extension, want .npy or .csv", path)
	}
}
