package ebitenview

import (
	"io/fs"
	"path"
	"sort"
)

// fit scales a srcW x srcH image into a dstW x dstH area preserving the
// aspect ratio, and returns the scale and the offset that centres it.
func fit(srcW, srcH, dstW, dstH int) (scale, offX, offY float64) {
	if srcW <= 0 || srcH <= 0 || dstW <= 0 || dstH <= 0 {
		return 0, 0, 0
	}
	sx := float64(dstW) / float64(srcW)
	sy := float64(dstH) / float64(srcH)
	scale = min(sx, sy)
	offX = (float64(dstW) - float64(srcW)*scale) / 2
	offY = (float64(dstH) - float64(srcH)*scale) / 2
	return scale, offX, offY
}

// named is implemented by the *os.File values the desktop drop FS returns.
type named interface {
	Name() string
}

// droppedPaths lists the top-level entries of a dropped file system as
// host paths. Entries whose host path is unknown keep their FS name.
func droppedPaths(fsys fs.FS) []string {
	if fsys == nil {
		return nil
	}
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		p := path.Clean(entry.Name())
		if f, err := fsys.Open(entry.Name()); err == nil {
			if n, ok := f.(named); ok && n.Name() != "" {
				p = n.Name()
			}
			f.Close()
		}
		paths = append(paths, p)
	}
	return paths
}
