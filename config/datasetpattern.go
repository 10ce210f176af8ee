package config

import (
	"regexp"

	"github.com/openPMD/openpmd-go/xerrors"
)

// DatasetPatternEntry is one element of the array form of a backend's
// `dataset` option: `{select: <regex or [regex]>, cfg: <object>}`, or the
// single entry with no Select acting as the default (spec.md §4.6).
type DatasetPatternEntry struct {
	Select []string
	Cfg    map[string]any
}

// DatasetPattern resolves a backend's `dataset` option, which may be a
// bare object (applies to all datasets) or an array of
// DatasetPatternEntry plus at most one default entry.
type DatasetPattern struct {
	entries []compiledEntry
	def     map[string]any
	defSet  bool
}

type compiledEntry struct {
	res []*regexp.Regexp
	cfg map[string]any
}

// ParseDatasetOption builds a DatasetPattern from the raw `dataset` value,
// whatever shape it was given in.
func ParseDatasetOption(raw any) (*DatasetPattern, error) {
	if obj, ok := raw.(map[string]any); ok {
		return &DatasetPattern{def: obj, defSet: true}, nil
	}
	arr, ok := raw.([]any)
	if !ok {
		return nil, xerrors.NewBackendConfigSchema("dataset", "must be an object or an array of pattern entries")
	}
	p := &DatasetPattern{}
	for _, item := range arr {
		entryMap, ok := item.(map[string]any)
		if !ok {
			return nil, xerrors.NewBackendConfigSchema("dataset[]", "entry must be an object")
		}
		cfg, _ := entryMap["cfg"].(map[string]any)
		sel, hasSel := entryMap["select"]
		if !hasSel {
			if p.defSet {
				return nil, xerrors.NewBackendConfigSchema("dataset[]", "at most one default (no-select) entry is allowed")
			}
			p.def = cfg
			p.defSet = true
			continue
		}
		patterns, err := asStringList(sel)
		if err != nil {
			return nil, err
		}
		compiled := make([]*regexp.Regexp, 0, len(patterns))
		for _, pat := range patterns {
			re, err := regexp.Compile(pat)
			if err != nil {
				return nil, xerrors.NewBackendConfigSchema("dataset[].select", "invalid regex %q: %v", pat, err)
			}
			compiled = append(compiled, re)
		}
		p.entries = append(p.entries, compiledEntry{res: compiled, cfg: cfg})
	}
	return p, nil
}

func asStringList(v any) ([]string, error) {
	switch x := v.(type) {
	case string:
		return []string{x}, nil
	case []any:
		out := make([]string, 0, len(x))
		for _, item := range x {
			s, ok := item.(string)
			if !ok {
				return nil, xerrors.NewBackendConfigSchema("dataset[].select", "select entries must be strings")
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, xerrors.NewBackendConfigSchema("dataset[].select", "must be a string or array of strings")
	}
}

// Lookup returns the cfg for the first entry whose select regex matches
// datasetPath, in declaration order; falling back to the default entry
// (spec.md §4.6: "first matching regex wins; no match -> default").
func (p *DatasetPattern) Lookup(datasetPath string) map[string]any {
	if p == nil {
		return nil
	}
	for _, e := range p.entries {
		for _, re := range e.res {
			if re.MatchString(datasetPath) {
				return e.cfg
			}
		}
	}
	return p.def
}
