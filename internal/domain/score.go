package domain

import "math"

// MatchScore computes the interest-overlap percentage between the requester's
// folded vocabulary and a candidate's. It is intentionally asymmetric: common
// is the requester's list filtered by membership in the candidate's, so
// duplicates on the requester's side are preserved and the denominator is the
// requester's vocabulary size.
func MatchScore(mine, theirs []string) (int, []string) {
	theirSet := make(map[string]struct{}, len(theirs))
	for _, v := range theirs {
		theirSet[v] = struct{}{}
	}

	common := make([]string, 0, len(mine))
	for _, v := range mine {
		if _, ok := theirSet[v]; ok {
			common = append(common, v)
		}
	}

	total := len(mine)
	if total < 1 {
		total = 1
	}
	score := int(math.Round(float64(len(common)) / float64(total) * 100))
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score, common
}
