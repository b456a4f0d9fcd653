package simulator

import (
	"github.com/pkg/errors"

	"faultline/internal/domain"
)

// FlattenCategories collects the category hierarchy into an ordered name
// list for a dropdown. The seeded hierarchy carries an accidental circular
// reference, so the walk never bottoms out.
func (s *Service) FlattenCategories() ([]string, error) {
	root := domain.SeedCategoryCycle()
	names, err := root.Flatten(s.maxTreeDepth)
	if err != nil {
		return nil, errors.Wrap(err, "flatten category tree")
	}
	return names, nil
}
