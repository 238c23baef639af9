package service

import "github.com/sentiment_dashboard/backend/internal/models"

type Quadrant string

const (
	QuickWins     Quadrant = "Quick Wins"
	MajorProjects Quadrant = "Major Projects"
	FillIns       Quadrant = "Fill Ins"
	HardSlogs     Quadrant = "Hard Slogs"
)

// matrixMidpoint splits both axes; a value equal to it counts as low.
const matrixMidpoint = 5

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type MatrixPoint struct {
	Item     models.PriorityItem `json:"item"`
	Quadrant Quadrant            `json:"quadrant"`
	Position Position            `json:"position"`
}

type Matrix struct {
	Points []MatrixPoint    `json:"points"`
	Counts map[Quadrant]int `json:"counts"`
}

// AverageSentiment returns the mean score across regions, or 0 when there are none.
func AverageSentiment(regions []models.RegionalSentiment) float64 {
	if len(regions) == 0 {
		return 0
	}
	var sum float64
	for _, r := range regions {
		sum += r.SentimentScore
	}
	return sum / float64(len(regions))
}

func ClassifyQuadrant(impact, effort int) Quadrant {
	highImpact := impact > matrixMidpoint
	highEffort := effort > matrixMidpoint
	switch {
	case highImpact && highEffort:
		return MajorProjects
	case highImpact:
		return QuickWins
	case highEffort:
		return HardSlogs
	default:
		return FillIns
	}
}

// PlotPosition maps impact/effort (1-10) onto percentage coordinates with Y
// inverted so high impact sits at the top.
func PlotPosition(impact, effort int) Position {
	return Position{
		X: float64(effort) * 100 / 10,
		Y: 100 - float64(impact)*100/10,
	}
}

func BuildMatrix(items []models.PriorityItem) []MatrixPoint {
	out := make([]MatrixPoint, 0, len(items))
	for _, it := range items {
		out = append(out, MatrixPoint{
			Item:     it,
			Quadrant: ClassifyQuadrant(it.Impact, it.Effort),
			Position: PlotPosition(it.Impact, it.Effort),
		})
	}
	return out
}

func QuadrantCounts(items []models.PriorityItem) map[Quadrant]int {
	counts := map[Quadrant]int{
		QuickWins:     0,
		MajorProjects: 0,
		FillIns:       0,
		HardSlogs:     0,
	}
	for _, it := range items {
		counts[ClassifyQuadrant(it.Impact, it.Effort)]++
	}
	return counts
}
