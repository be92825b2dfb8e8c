package presenter

import (
	"fmt"

	"github.com/montanaflynn/stats"
	"github.com/naka-gawa/github-repos/internal/domain"
)

// Summary describes the star distribution of a rendered list.
type Summary struct {
	Count       int     `json:"count"`
	TotalStars  int     `json:"total_stars"`
	MeanStars   float64 `json:"mean_stars"`
	MedianStars float64 `json:"median_stars"`
}

// Summarize returns a zero Summary for an empty list.
func Summarize(repos []domain.Repository) (Summary, error) {
	if len(repos) == 0 {
		return Summary{}, nil
	}
	data := make(stats.Float64Data, 0, len(repos))
	total := 0
	for _, repo := range repos {
		data = append(data, float64(repo.Stars))
		total += repo.Stars
	}
	mean, err := stats.Mean(data)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to calculate mean stars: %w", err)
	}
	median, err := stats.Median(data)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to calculate median stars: %w", err)
	}
	return Summary{
		Count:       len(repos),
		TotalStars:  total,
		MeanStars:   mean,
		MedianStars: median,
	}, nil
}
