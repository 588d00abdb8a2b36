package domain

import (
	"fmt"
	"path"
	"strings"
)

// BlockSize returns the mosaic block size for an image of the given dimensions: one block per
// hundred pixels of the longest edge, never fewer than MinBlockSize.
func BlockSize(width, height int) int {
	return max(MinBlockSize, max(width, height)/BlockSizeDivisor)
}

// OutputName derives the download name for an upload, e.g. "photos/cat.jpg" -> "mosaic_cat.png".
func OutputName(prefix, name string) string {
	base := path.Base(strings.ReplaceAll(name, `\`, "/"))
	stem := strings.TrimSuffix(base, path.Ext(base))
	if stem == "" || stem == "." || stem == "/" {
		stem = "image"
	}

	return prefix + stem + OutputExtension
}

// OutputNames returns one output name per input name. Names that collide within the batch get a
// numeric suffix, assigned in input order.
func OutputNames(prefix string, names []string) []string {
	out := make([]string, len(names))
	seen := make(map[string]bool, len(names))

	for i, name := range names {
		candidate := OutputName(prefix, name)
		stem := strings.TrimSuffix(candidate, OutputExtension)

		for n := 2; seen[candidate]; n++ {
			candidate = fmt.Sprintf("%s_%d%s", stem, n, OutputExtension)
		}

		seen[candidate] = true
		out[i] = candidate
	}

	return out
}
