package export

import (
	"encoding/json"
	"os"

	"github.com/zeebo/errs"

	"github.com/san-kum/parallax/internal/storage"
)

var Error = errs.Class("export")

type runDocument struct {
	Metadata *storage.RunMetadata `json:"metadata"`
	Offsets  []float64            `json:"offsets"`
	Series   map[string][]float64 `json:"series"`
}

// ExportJSON writes a saved run's metadata and columns as one document.
func ExportJSON(path string, meta *storage.RunMetadata, table *storage.Table) error {
	doc := runDocument{
		Metadata: meta,
		Offsets:  table.Offsets,
		Series:   make(map[string][]float64, len(table.Columns)),
	}
	for i, c := range table.Columns {
		doc.Series[c] = table.Values[i]
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return Error.Wrap(err)
	}
	return Error.Wrap(os.WriteFile(path, data, 0644))
}

// ExportCSV writes a saved run's table to path.
func ExportCSV(path string, table *storage.Table) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return Error.Wrap(err)
	}
	defer func() { err = errs.Combine(err, Error.Wrap(f.Close())) }()

	return storage.WriteCSV(f, table)
}
