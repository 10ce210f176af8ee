package attribute

import "fmt"

// Cardinality constrains a reserved attribute's vector length; Any means no
// length check is applied beyond the Datatype match.
type Cardinality int

const AnyCardinality Cardinality = -1

// ReservedSpec describes one standard openPMD attribute key: its expected
// Datatype, any fixed cardinality, and (for enum-valued keys) the set of
// canonical string encodings it may take -- spec.md §6's "canonical
// encoding" requirement and §3's "validation rules at get/set" contract.
type ReservedSpec struct {
	Key         string
	Dtype       Datatype
	Cardinality Cardinality
	Enum        []string // non-nil => value (as string) must be one of these
}

// Reserved is the table of every standard attribute key named in spec.md
// §3: "openPMD, basePath, meshesPath, particlesPath, iterationEncoding,
// iterationFormat, unitDimension, gridSpacing, position, axisLabels,
// unitSI, timeOffset, time, dt, timeUnitSI, geometry, dataOrder, value,
// shape" plus the companions spec.md names elsewhere (gridGlobalOffset,
// gridUnitSI, positionOffset).
var Reserved = map[string]ReservedSpec{
	"openPMD":           {Key: "openPMD", Dtype: String, Cardinality: AnyCardinality},
	"openPMDextension":  {Key: "openPMDextension", Dtype: UInt32, Cardinality: AnyCardinality},
	"basePath":          {Key: "basePath", Dtype: String, Cardinality: AnyCardinality},
	"meshesPath":        {Key: "meshesPath", Dtype: String, Cardinality: AnyCardinality},
	"particlesPath":     {Key: "particlesPath", Dtype: String, Cardinality: AnyCardinality},
	"iterationEncoding": {Key: "iterationEncoding", Dtype: String, Cardinality: AnyCardinality, Enum: []string{"fileBased", "groupBased", "variableBased"}},
	"iterationFormat":   {Key: "iterationFormat", Dtype: String, Cardinality: AnyCardinality},

	"unitDimension":    {Key: "unitDimension", Dtype: UnitDimension, Cardinality: 7},
	"gridSpacing":      {Key: "gridSpacing", Dtype: VecDouble, Cardinality: AnyCardinality},
	"gridGlobalOffset": {Key: "gridGlobalOffset", Dtype: VecDouble, Cardinality: AnyCardinality},
	"gridUnitSI":       {Key: "gridUnitSI", Dtype: Double, Cardinality: AnyCardinality},
	"position":         {Key: "position", Dtype: VecDouble, Cardinality: AnyCardinality},
	"positionOffset":   {Key: "positionOffset", Dtype: VecDouble, Cardinality: AnyCardinality},
	"axisLabels":       {Key: "axisLabels", Dtype: VecString, Cardinality: AnyCardinality},

	"unitSI":     {Key: "unitSI", Dtype: Double, Cardinality: AnyCardinality},
	"timeOffset": {Key: "timeOffset", Dtype: Double, Cardinality: AnyCardinality},
	"time":       {Key: "time", Dtype: Double, Cardinality: AnyCardinality},
	"dt":         {Key: "dt", Dtype: Double, Cardinality: AnyCardinality},
	"timeUnitSI": {Key: "timeUnitSI", Dtype: Double, Cardinality: AnyCardinality},

	"geometry":   {Key: "geometry", Dtype: String, Cardinality: AnyCardinality, Enum: []string{"cartesian", "thetaMode", "cylindrical", "spherical", "other"}},
	"dataOrder":  {Key: "dataOrder", Dtype: Char, Cardinality: AnyCardinality, Enum: []string{"C", "F"}},
	"value":      {Key: "value", Dtype: UNDEFINED, Cardinality: AnyCardinality}, // constant-component payload; dtype is the component's own
	"shape":      {Key: "shape", Dtype: VecUInt64, Cardinality: AnyCardinality},
	"fileSuffix": {Key: "fileSuffix", Dtype: String, Cardinality: AnyCardinality},
}

// ValidateReserved applies the get/set contract of spec.md §4.1 ("validate
// types and cardinalities ... translate enumeration values to/from their
// canonical string encodings"). Returns a descriptive error for the caller
// to fold into xerrors.InvalidOperation; a non-reserved key always passes.
func ValidateReserved(key string, a Attribute) error {
	spec, ok := Reserved[key]
	if !ok {
		return nil // arbitrary user attribute, no validation rule
	}
	if spec.Dtype != UNDEFINED && a.dtype != spec.Dtype {
		return fmt.Errorf("attribute %q must be %s, got %s", key, spec.Dtype, a.dtype)
	}
	if spec.Cardinality != AnyCardinality {
		n, err := cardinalityOf(a)
		if err != nil {
			return err
		}
		if n != int(spec.Cardinality) {
			return fmt.Errorf("attribute %q must have cardinality %d, got %d", key, spec.Cardinality, n)
		}
	}
	if spec.Enum != nil {
		s, ok := enumStringOf(a)
		if !ok {
			return fmt.Errorf("attribute %q enum value must encode as string", key)
		}
		found := false
		for _, e := range spec.Enum {
			if e == s {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("attribute %q value %q is not one of %v", key, s, spec.Enum)
		}
	}
	return nil
}

func cardinalityOf(a Attribute) (int, error) {
	switch v := a.value.(type) {
	case [7]float64:
		return len(v), nil
	case []float64:
		return len(v), nil
	case []int64:
		return len(v), nil
	case []uint64:
		return len(v), nil
	case []string:
		return len(v), nil
	default:
		return 0, fmt.Errorf("value has no defined cardinality")
	}
}

func enumStringOf(a Attribute) (string, bool) {
	switch v := a.value.(type) {
	case string:
		return v, true
	case byte:
		return string(rune(v)), true
	}
	return "", false
}
