package promo

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration is returned when a campaign, selector or discount is
// built from parameters the engine cannot evaluate.
var ErrInvalidConfiguration = errors.New("invalid campaign configuration")

func invalidConfig(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, fmt.Sprintf(format, args...))
}
