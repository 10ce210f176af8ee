package openpmd

import "testing"

func TestFilenameForPadsIterationIndex(t *testing.T) {
	cases := []struct {
		template string
		index    uint64
		want     string
	}{
		{"data_%T.json", 100, "data_100.json"},
		{"data_%04T.json", 100, "data_0100.json"},
		{"data_%04T.json", 7, "data_0007.json"},
		{"run_%08T.h5", 42, "run_00000042.h5"},
		{"no placeholder here", 3, "no placeholder here"},
	}
	for _, c := range cases {
		if got := filenameFor(c.template, c.index); got != c.want {
			t.Errorf("filenameFor(%q, %d) = %q, want %q", c.template, c.index, got, c.want)
		}
	}
}
