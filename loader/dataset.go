// Package loader ingests the tabular and geospatial source files the
// engine consumes: fleet register extracts, generation and demand series,
// the network supply points table and region boundary GeoJSON.
package loader

import (
	"fmt"
	"os"

	"github.com/google/uuid"
)

// datasetNamespace scopes dataset identities to this application.
var datasetNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

// Dataset identifies one loaded source file. ID is derived from the path
// and modification time, so editing or replacing the file yields a new
// identity and memoized results keyed on the old one go stale harmlessly.
type Dataset struct {
	ID   uuid.UUID
	Path string
	Rows int
}

// identify computes the dataset identity for the file at path.
func identify(path string) (uuid.UUID, error) {
	info, err := os.Stat(path)
	if err != nil {
		return uuid.Nil, err
	}
	seed := fmt.Sprintf("%s|%d|%d", path, info.Size(), info.ModTime().UnixNano())
	return uuid.NewSHA1(datasetNamespace, []byte(seed)), nil
}
