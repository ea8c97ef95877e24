// Package stratify classifies features into sampling strata and partitions
// datasets by stratum and by systematic grid cell.
package stratify

// EcositeUnknown labels codes outside every configured group. Unknown
// features are excluded from all downstream per-ecosite partitioning.
const EcositeUnknown = "Unknown"

// ecositeGroups maps gridcode groups to generalized ecosite labels,
// following S. Nielsen's classification. Adjust for other study areas.
var ecositeGroups = []struct {
	codes []int
	label string
}{
	{[]int{20, 21, 22}, "UD"},
	{[]int{10, 11, 12}, "UM"},
	{[]int{30, 31, 32}, "T"},
	{[]int{40, 41, 42}, "WT"},
	{[]int{50, 51, 52}, "LDT"},
}

var ecositeByCode = func() map[int]string {
	m := make(map[int]string)
	for _, g := range ecositeGroups {
		for _, c := range g.codes {
			m[c] = g.label
		}
	}
	return m
}()

// MapEcosite returns the generalized ecosite label for a gridcode, or
// EcositeUnknown for codes not in any group. Pure membership lookup.
func MapEcosite(gridcode int) string {
	if label, ok := ecositeByCode[gridcode]; ok {
		return label
	}
	return EcositeUnknown
}

// EcositeLabels returns the configured labels in declaration order.
func EcositeLabels() []string {
	labels := make([]string, 0, len(ecositeGroups))
	for _, g := range ecositeGroups {
		labels = append(labels, g.label)
	}
	return labels
}
