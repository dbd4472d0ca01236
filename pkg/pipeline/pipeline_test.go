package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/clearmatch/clearmatch/pkg/cache"
	"github.com/clearmatch/clearmatch/pkg/errors"
	"github.com/clearmatch/clearmatch/pkg/marketio"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"dot", false},
		{"svg", false},
		{"png", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestOptionsValidation(t *testing.T) {
	doc := testDocument()

	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{
			name: "missing mechanism",
			opts: Options{Market: doc},
			code: errors.ErrCodeInvalidMechanism,
		},
		{
			name: "unknown mechanism",
			opts: Options{Mechanism: "boston", Market: doc},
			code: errors.ErrCodeInvalidMechanism,
		},
		{
			name: "missing market",
			opts: Options{Mechanism: MechanismTTC2},
			code: errors.ErrCodeInvalidInput,
		},
		{
			name: "swap roles with ttc1",
			opts: Options{Mechanism: MechanismTTC1, Market: doc, SwapRoles: true},
			code: errors.ErrCodeUnsupported,
		},
		{
			name: "bad format",
			opts: Options{Mechanism: MechanismDA, Market: doc, Formats: []string{"pdf"}},
			code: errors.ErrCodeInvalidFormat,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Mechanism: MechanismTTC2, Market: testDocument()}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("valid options should pass: %v", err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatJSON {
		t.Errorf("Formats default = %v, want [json]", opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("Logger default should be set")
	}
}

func testDocument() *marketio.Document {
	return &marketio.Document{
		Agents: marketio.SideDocument{
			Preferences: [][]int{{2, 1}, {1, 2}},
		},
		Objects: marketio.SideDocument{
			Preferences: [][]int{{2, 1}, {1, 2}},
		},
	}
}

func TestExecuteInlineMarket(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	res, err := runner.Execute(context.Background(), Options{
		Mechanism: MechanismTTC2,
		Market:    testDocument(),
		Formats:   []string{FormatJSON, FormatDOT},
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if res.RunID == "" {
		t.Error("RunID should be set")
	}
	if res.MarketHash == "" {
		t.Error("MarketHash should be set")
	}
	if res.Document.Stats.Pairings != 2 {
		t.Errorf("pairings = %d, want 2", res.Document.Stats.Pairings)
	}
	if len(res.Artifacts[FormatJSON]) == 0 {
		t.Error("json artifact missing")
	}
	if !strings.HasPrefix(string(res.Artifacts[FormatDOT]), "digraph matching {") {
		t.Errorf("dot artifact malformed: %.40s", res.Artifacts[FormatDOT])
	}
	if res.CacheInfo.SolveHit {
		t.Error("first run should not hit the cache")
	}
}

func TestExecuteFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "market.json")
	payload := `{
	  "agents": {"preferences": [[1, 2], [2, 1]]},
	  "objects": {"preferences": [[1, 2], [2, 1]]}
	}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	res, err := runner.Execute(context.Background(), Options{
		Mechanism: MechanismDA,
		Path:      path,
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if res.Document.Stats.Pairings != 2 {
		t.Errorf("pairings = %d, want 2", res.Document.Stats.Pairings)
	}
}

func TestExecuteSolveCaching(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()

	opts := Options{
		Mechanism: MechanismTTC2,
		Market:    testDocument(),
		Formats:   []string{FormatJSON},
	}

	first, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute error: %v", err)
	}
	if first.CacheInfo.SolveHit || first.CacheInfo.RenderHit {
		t.Error("first run should miss the cache")
	}

	second, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Execute error: %v", err)
	}
	if !second.CacheInfo.SolveHit {
		t.Error("second run should hit the solve cache")
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit the artifact cache")
	}
	if second.Document.Stats.Pairings != first.Document.Stats.Pairings {
		t.Error("cached result should match the computed one")
	}

	// Refresh bypasses the cache.
	opts.Refresh = true
	third, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("third Execute error: %v", err)
	}
	if third.CacheInfo.SolveHit {
		t.Error("refresh run should not hit the cache")
	}
}

func TestExecuteInvalidMarket(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	doc := testDocument()
	doc.Agents.Preferences = [][]int{{9}, {1}}

	_, err := runner.Execute(context.Background(), Options{
		Mechanism: MechanismTTC2,
		Market:    doc,
	})
	if !errors.Is(err, errors.ErrCodeInvalidMarket) {
		t.Errorf("err = %v, want INVALID_MARKET", err)
	}
}

func TestExecuteHousingMechanism(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	doc := &marketio.Document{
		Agents: marketio.SideDocument{
			Preferences: [][]int{{2, 1}, {1, 2}},
		},
		Objects: marketio.SideDocument{
			Preferences: [][]int{{}, {}},
		},
		Ownership: [][]bool{{true, false}, {false, true}},
	}

	res, err := runner.Execute(context.Background(), Options{
		Mechanism: MechanismTTC1,
		Market:    doc,
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if res.Document.Stats.Pairings != 2 {
		t.Errorf("pairings = %d, want 2", res.Document.Stats.Pairings)
	}
	// The two tenants swap houses.
	if !res.Document.Relation[1][0] || !res.Document.Relation[0][1] {
		t.Errorf("relation = %v, want full swap", res.Document.Relation)
	}
}
