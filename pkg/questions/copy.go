package questions

// Copy creates a deep copy of a question, including its choices slice.
// The merge engine's input-immutability guarantee rests on these helpers:
// every record it returns or rewrites is a fresh copy, never a view into
// caller-owned memory.
func Copy(q Question) Question {
	cp := q
	if q.Choices != nil {
		cp.Choices = make([]string, len(q.Choices))
		copy(cp.Choices, q.Choices)
	}
	return cp
}

// CopyAll creates a deep copy of a collection. Returns nil for nil input.
func CopyAll(qs []Question) []Question {
	if qs == nil {
		return nil
	}
	result := make([]Question, len(qs))
	for i, q := range qs {
		result[i] = Copy(q)
	}
	return result
}
