package loader

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jszwec/csvutil"

	"github.com/nzgridlab/gridsim/core/logger"
	"github.com/nzgridlab/gridsim/core/model"
)

// Loader reads source files, reporting malformed inputs as warnings and
// returning empty tables so downstream stages keep working.
type Loader struct {
	Log logger.Logger
}

func (l Loader) warnf(format string, args ...any) {
	if l.Log != nil {
		l.Log.Warnf(format, args...)
	}
}

// open returns a reader positioned past skip leading metadata lines.
// Electricity Authority demand extracts ship with an 11-line preamble
// before the header row.
func open(path string, skip int) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if skip == 0 {
		return f, nil
	}
	r := bufio.NewReader(f)
	for i := 0; i < skip; i++ {
		if _, err := r.ReadString('\n'); err != nil {
			f.Close()
			return nil, fmt.Errorf("skipping %d header lines: %w", skip, err)
		}
	}
	return struct {
		io.Reader
		io.Closer
	}{r, f}, nil
}

func decodeAll[T any](path string, skip int) ([]T, error) {
	rc, err := open(path, skip)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	cr := csv.NewReader(rc)
	cr.FieldsPerRecord = -1
	dec, err := csvutil.NewDecoder(cr)
	if err != nil {
		return nil, err
	}
	var out []T
	for {
		var row T
		if err := dec.Decode(&row); errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}

// FleetRecords loads a vehicle register extract. Malformed files yield an
// empty table and a warning, never an error.
func (l Loader) FleetRecords(path string) ([]model.VehicleRecord, Dataset) {
	ds := l.dataset(path)
	rows, err := decodeAll[fleetRow](path, 0)
	if err != nil {
		l.warnf("fleet file %s unreadable: %v", path, err)
		return nil, ds
	}
	out := make([]model.VehicleRecord, 0, len(rows))
	for _, r := range rows {
		mass, _ := strconv.ParseFloat(r.GrossMass, 64)
		year, _ := strconv.Atoi(r.Year)
		out = append(out, model.VehicleRecord{
			SubunitCode:   r.TLA,
			MotivePower:   r.MotivePower,
			GrossMassKg:   mass,
			Make:          r.Make,
			Model:         r.Model,
			Year:          year,
			IndustryClass: r.IndustryClass,
		})
	}
	ds.Rows = len(out)
	return out, ds
}

// fleetRow mirrors the register's column names; numeric fields stay
// strings so a stray blank does not abort the whole file.
type fleetRow struct {
	TLA           string `csv:"TLA"`
	MotivePower   string `csv:"MOTIVE_POWER"`
	GrossMass     string `csv:"GROSS_VEHICLE_MASS"`
	Make          string `csv:"MAKE"`
	Model         string `csv:"MODEL"`
	Year          string `csv:"VEHICLE_YEAR"`
	IndustryClass string `csv:"INDUSTRY_CLASS"`
}

// GenerationRows loads a generation extract. The TPn period columns are
// collected by header name since their count varies between months.
func (l Loader) GenerationRows(path string) ([]model.GenerationRow, Dataset) {
	ds := l.dataset(path)
	rc, err := open(path, 0)
	if err != nil {
		l.warnf("generation file %s unreadable: %v", path, err)
		return nil, ds
	}
	defer rc.Close()

	cr := csv.NewReader(rc)
	cr.FieldsPerRecord = -1
	dec, err := csvutil.NewDecoder(cr)
	if err != nil {
		l.warnf("generation file %s unreadable: %v", path, err)
		return nil, ds
	}
	header := dec.Header()

	var out []model.GenerationRow
	for {
		var row model.GenerationRow
		if err := dec.Decode(&row); errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			l.warnf("generation file %s malformed: %v", path, err)
			return nil, ds
		}
		record := dec.Record()
		for _, i := range dec.Unused() {
			n, ok := periodIndex(header[i])
			if !ok {
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(record[i]), 64)
			if err != nil {
				continue // missing supply values count as zero
			}
			row.PeriodsKWh[n-1] = v
		}
		out = append(out, row)
	}
	ds.Rows = len(out)
	return out, ds
}

// periodIndex parses a "TPn" column name into its 1-based period number.
func periodIndex(col string) (int, bool) {
	if !strings.HasPrefix(col, "TP") {
		return 0, false
	}
	n, err := strconv.Atoi(col[2:])
	if err != nil || n < 1 || n > 50 {
		return 0, false
	}
	return n, true
}

// DemandRows loads a demand trends extract, skipping the metadata preamble.
func (l Loader) DemandRows(path string, skip int) ([]model.DemandRow, Dataset) {
	ds := l.dataset(path)
	rows, err := decodeAll[model.DemandRow](path, skip)
	if err != nil {
		l.warnf("demand file %s unreadable: %v", path, err)
		return nil, ds
	}
	ds.Rows = len(rows)
	return rows, ds
}

// NetworkPoints loads the network supply points table. Rows with blank
// coordinates decode to zero and are filtered by the profile builder.
func (l Loader) NetworkPoints(path string) ([]model.NetworkPoint, Dataset) {
	ds := l.dataset(path)
	rows, err := decodeAll[networkRow](path, 0)
	if err != nil {
		l.warnf("network mapping file %s unreadable: %v", path, err)
		return nil, ds
	}
	out := make([]model.NetworkPoint, 0, len(rows))
	for _, r := range rows {
		e, _ := strconv.ParseFloat(strings.TrimSpace(r.Easting), 64)
		n, _ := strconv.ParseFloat(strings.TrimSpace(r.Northing), 64)
		out = append(out, model.NetworkPoint{POCCode: r.POCCode, Easting: e, Northing: n})
	}
	ds.Rows = len(out)
	return out, ds
}

type networkRow struct {
	POCCode  string `csv:"POC code"`
	Easting  string `csv:"NZTM easting"`
	Northing string `csv:"NZTM northing"`
}

func (l Loader) dataset(path string) Dataset {
	ds := Dataset{Path: path}
	id, err := identify(path)
	if err == nil {
		ds.ID = id
	}
	return ds
}
