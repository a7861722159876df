package texture

import (
	"fmt"
	"image"

	"github.com/pkg/errors"
)

var (
	// ErrScanInProgress is returned by setters called while a scan is running.
	ErrScanInProgress = errors.New("texture: configuration is immutable while a scan is running")
	// ErrQuantizationUnset is returned when a scan starts before SetBinsAndMinMax.
	ErrQuantizationUnset = errors.New("texture: bins, min and max must be set before scanning")
)

// ConfigError reports a rejected configuration parameter.
type ConfigError struct {
	// Param names the offending parameter.
	Param string
	// Value is the rejected value.
	Value interface{}
	// Reason describes the violated constraint.
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("texture: invalid %s %v: %s", e.Param, e.Value, e.Reason)
}

// RegionError reports an output region that cannot be produced, either because
// it lies outside the source or because the source failed to supply its input.
type RegionError struct {
	// Region is the unsatisfiable region.
	Region image.Rectangle
	// Err is the underlying cause.
	Err error
}

func (e *RegionError) Error() string {
	return fmt.Sprintf("texture: region %v: %v", e.Region, e.Err)
}

// Unwrap returns the underlying cause.
func (e *RegionError) Unwrap() error { return e.Err }

// Cause returns the underlying cause for github.com/pkg/errors.
func (e *RegionError) Cause() error { return e.Err }
