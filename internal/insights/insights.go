// Package insights reduces raw metric samples into named scalar values.
package insights

// Sample is one (name, value) pair reported by an insights endpoint. The same
// name may appear multiple times across windows.
type Sample struct {
	Name  string
	Value float64
}

// MaxByName keeps the maximum observed value per requested name. Names with no
// samples are omitted from the result; callers must not assume zero.
func MaxByName(samples []Sample, names ...string) map[string]float64 {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}

	out := make(map[string]float64, len(names))
	seen := make(map[string]bool, len(names))
	for _, s := range samples {
		if !want[s.Name] {
			continue
		}
		if !seen[s.Name] || s.Value > out[s.Name] {
			out[s.Name] = s.Value
			seen[s.Name] = true
		}
	}
	return out
}
