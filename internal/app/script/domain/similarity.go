package domain

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// DefaultSimilarityThreshold is the markup similarity above which two
// snapshots count as duplicates.
const DefaultSimilarityThreshold = 0.9

// Similar reports whether next duplicates prev closely enough to be dropped
// instead of pushed. Records of different variants are never similar.
func Similar(prev, next ChangeRecord, threshold float64) bool {
	switch a := prev.(type) {
	case *FieldChange:
		b, ok := next.(*FieldChange)
		if !ok {
			return false
		}
		return a.FieldID == b.FieldID && a.OldValue == b.OldValue && a.NewValue == b.NewValue
	case *FullSnapshot:
		b, ok := next.(*FullSnapshot)
		if !ok {
			return false
		}
		if a.TitleText != b.TitleText || a.ViewMode != b.ViewMode || a.CurrentView != b.CurrentView {
			return false
		}
		if a.TableMarkup == b.TableMarkup {
			return true
		}
		return markupSimilarAbove(a.TableMarkup, b.TableMarkup, threshold)
	default:
		return false
	}
}

// MarkupSimilarity returns 1 - levenshtein(a, b)/max(len(a), len(b)) over
// whitespace-collapsed strings, measured in runes.
func MarkupSimilarity(a, b string) float64 {
	a, b = collapseWhitespace(a), collapseWhitespace(b)
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
}

// markupSimilarAbove is MarkupSimilarity(a, b) > threshold, skipping the
// quadratic distance when the length gap alone rules it out.
func markupSimilarAbove(a, b string, threshold float64) bool {
	a, b = collapseWhitespace(a), collapseWhitespace(b)
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	longest := max(la, lb)
	if longest == 0 {
		return true
	}
	gap := la - lb
	if gap < 0 {
		gap = -gap
	}
	if 1-float64(gap)/float64(longest) <= threshold {
		return false
	}
	return 1-float64(levenshtein.ComputeDistance(a, b))/float64(longest) > threshold
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
