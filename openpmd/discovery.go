package openpmd

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/karrick/godirwalk"

	"github.com/openPMD/openpmd-go/xerrors"
)

// backendExtensions maps a file extension to the backend name spec.md §6
// names: ".h5"->HDF5, ".bp/.bp4/.bp5"->ADIOS2, ".sst/.ssc"->ADIOS2 stream,
// ".json"->JSON, ".toml"->TOML.
var backendExtensions = map[string]string{
	".h5":   "HDF5",
	".bp":   "ADIOS2",
	".bp4":  "ADIOS2",
	".bp5":  "ADIOS2",
	".sst":  "ADIOS2",
	".ssc":  "ADIOS2",
	".json": "JSON",
	".toml": "TOML",
}

// BackendForExtension implements spec.md §6's CREATE-direction `%E`
// expansion from a literal extension.
func BackendForExtension(ext string) (string, bool) {
	name, ok := backendExtensions[ext]
	return name, ok
}

// FileDiscovery implements the `%E`/`%T` globbing rule of §6 for
// fileBased READ-mode opens, backed by karrick/godirwalk directory
// scanning (the teacher's own dependency for fast tree walks).
type FileDiscovery struct {
	Dir      string
	Template string // iterationFormat with %E/%T placeholders, e.g. "data_%T.%E" or "data_%05T.h5"
}

// templateToRegexp turns the iterationFormat template into a regexp with
// named capture groups "ext" and "iter", honoring an optional zero-padding
// width on %T (e.g. %05T).
func templateToRegexp(template string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("^")
	i := 0
	for i < len(template) {
		switch {
		case strings.HasPrefix(template[i:], "%E"):
			b.WriteString(`(?P<ext>[A-Za-z0-9]+)`)
			i += 2
		case template[i] == '%':
			j := i + 1
			for j < len(template) && template[j] >= '0' && template[j] <= '9' {
				j++
			}
			if j < len(template) && template[j] == 'T' {
				b.WriteString(`(?P<iter>[0-9]+)`)
				i = j + 1
				continue
			}
			b.WriteString(regexp.QuoteMeta(string(template[i])))
			i++
		default:
			b.WriteString(regexp.QuoteMeta(string(template[i])))
			i++
		}
	}
	b.WriteString("$")
	return regexp.Compile(b.String())
}

// Discover globs Dir for files matching Template, returning the iteration
// index of every match and, separately, the single extension all matches
// agree on -- ambiguity (more than one distinct extension present) is an
// error per spec.md §6.
func (d FileDiscovery) Discover() (iterations []uint64, ext string, err error) {
	re, err := templateToRegexp(d.Template)
	if err != nil {
		return nil, "", err
	}
	extIdx := re.SubexpIndex("ext")
	iterIdx := re.SubexpIndex("iter")

	seenExt := map[string]bool{}
	err = godirwalk.Walk(d.Dir, &godirwalk.Options{
		Unsorted: true,
		Callback: func(_ string, de *godirwalk.Dirent) error {
			if de.IsDir() {
				return nil
			}
			m := re.FindStringSubmatch(de.Name())
			if m == nil {
				return nil
			}
			if extIdx >= 0 && m[extIdx] != "" {
				seenExt[m[extIdx]] = true
			}
			if iterIdx >= 0 && m[iterIdx] != "" {
				n, convErr := strconv.ParseUint(m[iterIdx], 10, 64)
				if convErr == nil {
					iterations = append(iterations, n)
				}
			}
			return nil
		},
	})
	if err != nil {
		return nil, "", err
	}
	if len(seenExt) > 1 {
		exts := make([]string, 0, len(seenExt))
		for e := range seenExt {
			exts = append(exts, e)
		}
		return nil, "", xerrors.NewWrongAPIUsage("ambiguous %%E match: multiple extensions found %v", exts)
	}
	for e := range seenExt {
		ext = e
	}
	return iterations, ext, nil
}
