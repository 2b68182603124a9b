package sources

import (
	"cmp"
	"fmt"
	"os"
	"slices"

	"github.com/pelletier/go-toml/v2"

	"github.com/kerbaras/guya/pkg/data"
)

// Weights maps a book identifier to its priority in the catalogue. Higher
// weights come first; books without an entry weigh 0.
type Weights map[string]int

func DefaultWeights() Weights {
	return Weights{
		"Kaguya-Wants-To-Be-Confessed-To":                 1000,
		"Kaguya-Wants-To-Be-Confessed-To-Official-Doujin": 99,
		"We-Want-To-Talk-About-Kaguya":                    98,
	}
}

type weightsFile struct {
	Weights map[string]int `toml:"weights"`
}

// LoadWeights reads a TOML file with a [weights] table. An empty path
// returns the defaults.
func LoadWeights(path string) (Weights, error) {
	if path == "" {
		return DefaultWeights(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read weights: %w", err)
	}
	var f weightsFile
	if err := toml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("failed to parse weights %s: %w", path, err)
	}
	if f.Weights == nil {
		return Weights{}, nil
	}
	return Weights(f.Weights), nil
}

// Sort orders books by descending weight. Books of equal weight keep their
// relative order.
func (w Weights) Sort(books []*data.Book) {
	slices.SortStableFunc(books, func(a, b *data.Book) int {
		return cmp.Compare(w[b.ID], w[a.ID])
	})
}
