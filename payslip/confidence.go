package payslip

// Confidence scores a record as the weighted fraction of importance mass
// that is present: 100 * sum(weight of populated fields) / sum(weight of
// fields applicable to the record's country). Metadata carries no weight.
// The score is a deterministic completeness measure reproducible from the
// record alone, not a model probability: an all-nil record scores 0 and a
// fully-populated one scores 100.
func Confidence(e *Extracted) float64 {
	table := synonymsFor(e.Country)

	var total, present float64
	for _, spec := range fieldSpecs {
		if _, applicable := table[spec.name]; !applicable {
			continue
		}
		total += float64(spec.weight)
		if spec.present(e) {
			present += float64(spec.weight)
		}
	}
	if total == 0 {
		return 0
	}
	return 100 * present / total
}
