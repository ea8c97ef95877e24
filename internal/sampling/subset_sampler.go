package sampling

import (
	"fmt"
	"log"
	"math/rand"
	"sort"

	"github.com/tmyeomans/RS2.1/internal/models"
)

// SampleSubset selects min(k, N) distinct features by uniform random
// sampling without replacement, preserving dataset order among the
// selected. Every original attribute is carried over except the Licence
// field, which is dropped from propagation. The returned indices are the
// selected features' positions in the input, the sample's provenance. A
// partition with zero features is skipped with a diagnostic and a nil
// result, not an error.
func SampleSubset(fc *models.FeatureCollection, k int, rng *rand.Rand) (*models.FeatureCollection, []int, error) {
	if fc == nil || fc.Empty() {
		log.Printf("Skipping empty partition, nothing to sample")
		return nil, nil, nil
	}
	if k <= 0 {
		return nil, nil, fmt.Errorf("sampling: subset size must be positive, got %d", k)
	}

	n := fc.Len()
	if k > n {
		k = n
	}
	picked := rng.Perm(n)[:k]
	sort.Ints(picked)

	out := models.NewFeatureCollection(fc.GeomType)
	for _, idx := range picked {
		f := fc.Features[idx].Clone()
		delete(f.Attrs, models.FieldLicence)
		out.Add(f)
	}
	return out, picked, nil
}
