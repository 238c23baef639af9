package service

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/sentiment_dashboard/backend/internal/models"
)

const (
	SortRank   = "rank"
	SortImpact = "impact"
	SortEffort = "effort"
)

// The sorters below never touch their input; callers may share the slice.

func SortByRank(items []models.PriorityItem) []models.PriorityItem {
	return sortedCopy(items, func(a, b models.PriorityItem) int {
		return cmp.Compare(a.Rank, b.Rank)
	})
}

func SortByImpact(items []models.PriorityItem) []models.PriorityItem {
	return sortedCopy(items, func(a, b models.PriorityItem) int {
		return cmp.Compare(b.Impact, a.Impact)
	})
}

func SortByEffort(items []models.PriorityItem) []models.PriorityItem {
	return sortedCopy(items, func(a, b models.PriorityItem) int {
		return cmp.Compare(a.Effort, b.Effort)
	})
}

// SortPriorityItems dispatches on a sort key; an empty key means rank.
func SortPriorityItems(items []models.PriorityItem, key string) ([]models.PriorityItem, error) {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", SortRank:
		return SortByRank(items), nil
	case SortImpact:
		return SortByImpact(items), nil
	case SortEffort:
		return SortByEffort(items), nil
	default:
		return nil, &ValidationError{
			Field:  "sort",
			Reason: fmt.Sprintf("sort must be one of: %s, %s, %s", SortRank, SortImpact, SortEffort),
		}
	}
}

func sortedCopy(items []models.PriorityItem, compare func(a, b models.PriorityItem) int) []models.PriorityItem {
	out := slices.Clone(items)
	if out == nil {
		out = []models.PriorityItem{}
	}
	slices.SortStableFunc(out, compare)
	return out
}
