package saves

import (
	"regexp"

	"github.com/KirkDiggler/rpg-inventory/internal/errors"
)

// MaxNameLength bounds save names so they stay valid file names
const MaxNameLength = 128

const (
	errNameEmpty = "save name cannot be empty"
	errDataEmpty = "save data cannot be empty"
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// ValidateName checks that name can be used by every backend
func ValidateName(name string) error {
	if name == "" {
		return errors.InvalidArgument(errNameEmpty)
	}
	if len(name) > MaxNameLength {
		return errors.InvalidArgumentf("save name must be no more than %d characters", MaxNameLength).
			WithName(name)
	}
	if name == "." || name == ".." || !namePattern.MatchString(name) {
		return errors.InvalidArgumentf("save name %q may only contain letters, digits, '.', '_' and '-'", name).
			WithName(name)
	}
	return nil
}

func validateStore(input StoreInput) error {
	if err := ValidateName(input.Name); err != nil {
		return err
	}
	if len(input.Data) == 0 {
		return errors.InvalidArgument(errDataEmpty).WithName(input.Name)
	}
	return nil
}

func notFound(name string) error {
	return errors.NotFoundf("save %s not found", name).WithName(name)
}
