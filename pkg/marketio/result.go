package marketio

import (
	"encoding/json"
	"io"
	"os"

	"github.com/clearmatch/clearmatch/pkg/errors"
	"github.com/clearmatch/clearmatch/pkg/market"
	"github.com/clearmatch/clearmatch/pkg/mechanism"
)

// ResultDocument is the wire form of a solved market: the committed pairs,
// the full object x agent relation, and the mechanism's run statistics.
type ResultDocument struct {
	Mechanism string          `json:"mechanism,omitempty"`
	Pairs     []market.Pair   `json:"pairs"`
	Relation  [][]bool        `json:"relation"`
	Stats     mechanism.Stats `json:"stats"`
}

// NewResultDocument captures a mechanism result for encoding.
func NewResultDocument(name string, res *mechanism.Result) *ResultDocument {
	return &ResultDocument{
		Mechanism: name,
		Pairs:     res.Matching.Pairs(),
		Relation:  res.Matching.Relation(),
		Stats:     res.Stats,
	}
}

// WriteJSON encodes the result as indented JSON to w.
func (rd *ResultDocument) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rd); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode result")
	}
	return nil
}

// ReadResultFile reads a result previously written with WriteFile.
func ReadResultFile(path string) (*ResultDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()

	var rd ResultDocument
	if err := json.NewDecoder(f).Decode(&rd); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse result %s", path)
	}
	return &rd, nil
}

// WriteFile writes the result as JSON to path.
func (rd *ResultDocument) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	defer f.Close()
	return rd.WriteJSON(f)
}
