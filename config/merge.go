// Package config implements the JSON/TOML configuration merge, key-casing,
// unused-key tracing, and dataset-pattern matcher of spec.md §4.6.
/*
 * Copyright (c) 2018-2024, NVIDIA CORPORATION. All rights reserved.
 */
package config

import "strings"

// protectedPrefixes lists the dotted-key paths whose values are never
// lower-cased (spec.md §4.6: "adios2.engine.parameters,
// adios2.dataset.operators.<n>.parameters").
var protectedPrefixes = []string{
	"adios2.engine.parameters",
	"adios2.dataset.operators.",
}

func isProtected(path string) bool {
	for _, p := range protectedPrefixes {
		if len(path) >= len(p) && path[:len(p)] == p {
			return true
		}
	}
	return false
}

// Merge combines two JSON-shaped values per spec.md §4.6: if both are
// objects, merge key-wise, recursing into shared keys; keys mapped to nil
// after merge are pruned; otherwise overwrite replaces base entirely.
// Arrays are never concatenated -- overwrite's array wins outright.
func Merge(base, overwrite any) any {
	return mergeAt("", base, overwrite)
}

func mergeAt(path string, base, overwrite any) any {
	baseObj, baseIsObj := base.(map[string]any)
	overObj, overIsObj := overwrite.(map[string]any)
	if !baseIsObj || !overIsObj {
		return overwrite
	}

	out := make(map[string]any, len(baseObj)+len(overObj))
	for k, v := range baseObj {
		out[k] = v
	}
	for k, v := range overObj {
		childPath := k
		if path != "" {
			childPath = path + "." + k
		}
		if v == nil {
			delete(out, k)
			continue
		}
		if existing, ok := out[k]; ok {
			out[k] = mergeAt(childPath, existing, v)
		} else {
			out[k] = v
		}
	}
	return out
}

// LowerKeys recursively lower-cases every object key except under a
// protectedPrefixes path; string values are never transformed (spec.md
// §4.6's "Key casing" rule).
func LowerKeys(v any) any {
	return lowerKeysAt("", v)
}

func lowerKeysAt(path string, v any) any {
	obj, ok := v.(map[string]any)
	if !ok {
		return v
	}
	out := make(map[string]any, len(obj))
	for k, child := range obj {
		childPath := k
		if path != "" {
			childPath = path + "." + k
		}
		lowerKey := strings.ToLower(k)
		if isProtected(childPath) {
			out[lowerKey] = child
			continue
		}
		out[lowerKey] = lowerKeysAt(childPath, child)
	}
	return out
}
