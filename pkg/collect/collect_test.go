package collect

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
}

func TestPaths(t *testing.T) {
	dir := t.TempDir()
	clips := filepath.Join(dir, "clips")
	if err := os.Mkdir(clips, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(clips, "nested.mp4"), 0755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"b.mp4", "a.WEBP", "notes.txt", "c.webp"} {
		touch(t, filepath.Join(clips, name))
	}
	single := filepath.Join(dir, "single.MP4")
	touch(t, single)
	text := filepath.Join(dir, "readme.md")
	touch(t, text)

	tests := []struct {
		name   string
		inputs []string
		want   []string
	}{
		{
			name:   "directory children sorted and filtered",
			inputs: []string{clips},
			want: []string{
				filepath.Join(clips, "a.WEBP"),
				filepath.Join(clips, "b.mp4"),
				filepath.Join(clips, "c.webp"),
			},
		},
		{
			name:   "files keep input order",
			inputs: []string{single, filepath.Join(clips, "b.mp4")},
			want:   []string{single, filepath.Join(clips, "b.mp4")},
		},
		{
			name:   "unsupported file dropped",
			inputs: []string{text},
			want:   nil,
		},
		{
			name:   "duplicates removed",
			inputs: []string{filepath.Join(clips, "c.webp"), clips},
			want: []string{
				filepath.Join(clips, "c.webp"),
				filepath.Join(clips, "a.WEBP"),
				filepath.Join(clips, "b.mp4"),
			},
		},
		{
			name:   "missing media path kept",
			inputs: []string{filepath.Join(dir, "gone.mp4")},
			want:   []string{filepath.Join(dir, "gone.mp4")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paths(tt.inputs)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
