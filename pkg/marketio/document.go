package marketio

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/clearmatch/clearmatch/pkg/errors"
	"github.com/clearmatch/clearmatch/pkg/market"
)

// Document is the wire form of a market definition. Preference rows keep
// the raw 0-sentinel convention; conversion to the in-memory model happens
// in ToMarket.
type Document struct {
	Agents    SideDocument `json:"agents" toml:"agents"`
	Objects   SideDocument `json:"objects" toml:"objects"`
	Priority  []int        `json:"priority,omitempty" toml:"priority"`
	Ownership [][]bool     `json:"ownership,omitempty" toml:"ownership"`
}

// SideDocument is one side of a market definition.
type SideDocument struct {
	Capacities  []int   `json:"capacities,omitempty" toml:"capacities"`
	Preferences [][]int `json:"preferences" toml:"preferences"`
}

// ReadJSON decodes a JSON market definition from r.
func ReadJSON(r io.Reader) (*Document, error) {
	var doc Document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json market")
	}
	return &doc, nil
}

// ReadTOML decodes a TOML market definition from r.
func ReadTOML(r io.Reader) (*Document, error) {
	var doc Document
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml market")
	}
	return &doc, nil
}

// ReadFile reads a market definition from path, selecting the decoder by
// file extension (.json or .toml).
func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "market file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ReadJSON(f)
	case ".toml":
		return ReadTOML(f)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"unsupported market file extension %q (want .json or .toml)", filepath.Ext(path))
	}
}

// ToMarket converts the document into the in-memory model: sentinel rows
// are trimmed, missing capacities default to 1, the priority defaults to
// ID order, and a missing ownership yields nil (fully unowned). The market
// is validated before returning.
func (d *Document) ToMarket() (*market.Market, market.Priority, *market.Ownership, error) {
	agents, err := toSide(d.Agents, "agents")
	if err != nil {
		return nil, nil, nil, err
	}
	objects, err := toSide(d.Objects, "objects")
	if err != nil {
		return nil, nil, nil, err
	}
	mkt := &market.Market{Agents: agents, Objects: objects}
	if err := mkt.Validate(); err != nil {
		return nil, nil, nil, err
	}

	prio := market.DefaultPriority(mkt.Agents.Size())
	if len(d.Priority) > 0 {
		prio = make(market.Priority, len(d.Priority))
		for i, a := range d.Priority {
			prio[i] = market.ID(a)
		}
		if err := prio.Validate(mkt.Agents.Size()); err != nil {
			return nil, nil, nil, err
		}
	}

	var own *market.Ownership
	if len(d.Ownership) > 0 {
		own, err = market.OwnershipFromRelation(d.Ownership, mkt.Agents.Size(), mkt.Objects.Size())
		if err != nil {
			return nil, nil, nil, err
		}
	}
	return mkt, prio, own, nil
}

// Canonical returns a deterministic encoding of the document, used as
// cache-key material. Encoding a Go struct to JSON is already
// deterministic; this wrapper just pins that choice in one place.
func (d *Document) Canonical() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	if err := enc.Encode(d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "canonical market encoding")
	}
	return buf.Bytes(), nil
}

func toSide(sd SideDocument, name string) (market.Side, error) {
	n := len(sd.Preferences)
	caps := sd.Capacities
	if len(caps) == 0 {
		caps = make([]int, n)
		for i := range caps {
			caps[i] = 1
		}
	}
	if len(caps) != n {
		return market.Side{}, errors.New(errors.ErrCodeDimensionMismatch,
			"%s: %d capacities for %d preference lists", name, len(caps), n)
	}
	side := market.Side{
		Capacities: make([]int, n),
		Prefs:      make([]market.PrefList, n),
	}
	copy(side.Capacities, caps)
	for i, raw := range sd.Preferences {
		side.Prefs[i] = market.TrimSentinel(raw)
	}
	return side, nil
}
