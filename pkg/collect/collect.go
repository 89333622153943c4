// Package collect turns dropped files and directories into a playlist.
package collect

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/user/framestep/pkg/media"
)

// Paths expands inputs into the ordered list of decodable media paths.
//
// A directory contributes its direct children with a supported extension,
// sorted by name. A file is kept when its extension is supported. Input
// order is preserved and duplicates are dropped.
func Paths(inputs []string) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, in := range inputs {
		st, err := os.Stat(in)
		if err != nil {
			// Missing paths that look like media still reach the decoder,
			// which reports the failure on the item itself.
			if media.IsSupported(in) {
				add(filepath.Clean(in))
			}
			continue
		}
		if !st.IsDir() {
			if media.IsSupported(in) {
				add(filepath.Clean(in))
			}
			continue
		}

		entries, err := os.ReadDir(in)
		if err != nil {
			continue
		}
		var names []string
		for _, e := range entries {
			if e.IsDir() || !media.IsSupported(e.Name()) {
				continue
			}
			names = append(names, e.Name())
		}
		sort.Strings(names)
		for _, name := range names {
			add(filepath.Join(in, name))
		}
	}
	return out
}
