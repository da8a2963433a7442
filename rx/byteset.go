package rx

import "sort"

// normalizeRanges sorts ranges, merges overlapping or adjacent ones, and
// returns the canonical sorted/merged form. An empty input (or input
// covering no bytes) yields an empty result, signaling Empty to the
// caller (mk_byte: "set = ∅ ⇒ Empty").
func normalizeRanges(ranges []ByteRange) []ByteRange {
	if len(ranges) == 0 {
		return nil
	}

	sorted := make([]ByteRange, len(ranges))
	copy(sorted, ranges)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Lo != sorted[j].Lo {
			return sorted[i].Lo < sorted[j].Lo
		}
		return sorted[i].Hi < sorted[j].Hi
	})

	merged := sorted[:1]
	for _, r := range sorted[1:] {
		last := &merged[len(merged)-1]
		if r.Lo > last.Hi && r.Lo-last.Hi > 1 {
			merged = append(merged, r)
			continue
		}
		if r.Hi > last.Hi {
			last.Hi = r.Hi
		}
	}

	return merged
}
