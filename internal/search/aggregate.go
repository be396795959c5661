package search

const (
	contentOnlyScore = 100
	contentBonus     = 50
)

// Aggregate combines the filename outcome and content matches of one entry
// into a match decision and final score for the run's SearchType.
//
//	FileName: matched when the name scored; score is the name score.
//	Content:  matched when there are content matches; score is 100.
//	Hybrid:   matched when either side matched; score is name score + 50 for content.
func Aggregate(st SearchType, nameScore int, nameMatched bool, matches []ContentMatch) (bool, int) {
	hasContent := len(matches) > 0

	switch st {
	case SearchContent:
		if !hasContent {
			return false, 0
		}
		return true, contentOnlyScore
	case SearchHybrid:
		score := 0
		if nameMatched {
			score = nameScore
		}
		if hasContent {
			score += contentBonus
		}
		return nameMatched || hasContent, score
	default:
		if !nameMatched {
			return false, 0
		}
		return true, nameScore
	}
}
