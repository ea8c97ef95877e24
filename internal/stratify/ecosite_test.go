package stratify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapEcosite(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{20, "UD"}, {21, "UD"}, {22, "UD"},
		{10, "UM"}, {11, "UM"}, {12, "UM"},
		{30, "T"}, {31, "T"}, {32, "T"},
		{40, "WT"}, {41, "WT"}, {42, "WT"},
		{50, "LDT"}, {51, "LDT"}, {52, "LDT"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MapEcosite(tt.code), "gridcode %d", tt.code)
	}
}

func TestMapEcositeUnknown(t *testing.T) {
	for _, code := range []int{0, 13, 23, 33, 60, -1, 99} {
		assert.Equal(t, EcositeUnknown, MapEcosite(code), "gridcode %d", code)
	}
}

func TestEcositeLabels(t *testing.T) {
	assert.Equal(t, []string{"UD", "UM", "T", "WT", "LDT"}, EcositeLabels())
}
