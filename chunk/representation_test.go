package chunk

import (
	"testing"

	"github.com/openPMD/openpmd-go/attribute"
	"github.com/openPMD/openpmd-go/core"
)

func TestConstantFill(t *testing.T) {
	c := Constant{Value: attribute.Float64Of(3.5), Shape: core.Extent{2, 2}}
	buf := make([]float64, 4)
	if err := c.Fill(buf, core.Extent{2, 2}); err != nil {
		t.Fatalf("Fill: %v", err)
	}
	for i, v := range buf {
		if v != 3.5 {
			t.Errorf("buf[%d] = %v, want 3.5", i, v)
		}
	}
}

func TestConstantFillLengthMismatch(t *testing.T) {
	c := Constant{Value: attribute.Float64Of(1), Shape: core.Extent{2}}
	buf := make([]float64, 3)
	if err := c.Fill(buf, core.Extent{2, 2}); err == nil {
		t.Fatal("expected error on buffer/extent length mismatch")
	}
}

func TestConstantFillWrongDatatype(t *testing.T) {
	c := Constant{Value: attribute.StringOf("not a float"), Shape: core.Extent{1}}
	buf := make([]float64, 1)
	if err := c.Fill(buf, core.Extent{1}); err == nil {
		t.Fatal("expected error filling from a non-float attribute")
	}
}

func TestEmptyIsEmpty(t *testing.T) {
	e := Empty{Dtype: attribute.Double, Rank: 2}
	cases := []struct {
		extent core.Extent
		want   bool
	}{
		{core.Extent{0, 5}, true},
		{core.Extent{5, 0}, true},
		{core.Extent{}, true},
		{core.Extent{5, 5}, false},
	}
	for _, c := range cases {
		if got := e.IsEmpty(c.extent); got != c.want {
			t.Errorf("IsEmpty(%v) = %v, want %v", c.extent, got, c.want)
		}
	}
}
