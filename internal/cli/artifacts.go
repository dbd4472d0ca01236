package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/clearmatch/clearmatch/pkg/errors"
	"github.com/clearmatch/clearmatch/pkg/pipeline"
)

// artifactPath chooses the output path for a single format. The json
// artifact gets a ".result.json" suffix so it never clobbers the input
// market file.
func artifactPath(base, format string) string {
	if format == pipeline.FormatJSON {
		return base + ".result.json"
	}
	return base + "." + format
}

// writeArtifacts writes each rendered artifact next to the input file (or
// under the output override) and returns the written paths in format order.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	if output != "" {
		if err := errors.ValidateOutputPath(output); err != nil {
			return nil, err
		}
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))

	// A single format with an explicit output goes exactly there.
	if output != "" && len(formats) == 1 {
		data := artifacts[formats[0]]
		if err := os.WriteFile(output, data, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", output, err)
		}
		return []string{output}, nil
	}
	if output != "" {
		base = output
	}

	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := artifactPath(base, format)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// pathForFormat returns the written path matching format, or "".
func pathForFormat(paths []string, formats []string, format string) string {
	for i, f := range formats {
		if f == format && i < len(paths) {
			return paths[i]
		}
	}
	return ""
}
