package tables

import (
	"fmt"
	"sort"

	"github.com/tsawler/gridframe/grid"
	"github.com/tsawler/gridframe/model"
)

// Detector is the interface for frame detection algorithms
type Detector interface {
	// Detect finds the frames in a grid
	Detect(g grid.Grid) ([]model.Frame, error)

	// Name returns the detector name
	Name() string

	// Configure sets detector parameters
	Configure(config Config) error
}

// Ranger is implemented by detectors that can report where each frame sits
// in the grid.
type Ranger interface {
	// Ranges returns the bounding box of each frame, in the order Detect
	// returns the frames
	Ranges(g grid.Grid) ([]model.FrameRange, error)
}

// Config holds detector configuration
type Config struct {
	// Minimum rows for a frame to be kept
	MinRows int

	// Minimum columns (label included) for a frame to be kept
	MinCols int
}

// DefaultConfig returns default configuration. It keeps every frame.
func DefaultConfig() Config {
	return Config{
		MinRows: 1,
		MinCols: 1,
	}
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	if c.MinRows < 1 {
		return fmt.Errorf("min rows must be at least 1, got %d", c.MinRows)
	}
	if c.MinCols < 1 {
		return fmt.Errorf("min cols must be at least 1, got %d", c.MinCols)
	}
	return nil
}

// Factory creates a fresh detector instance.
type Factory func() Detector

// DetectorRegistry holds registered detector factories
type DetectorRegistry struct {
	factories map[string]Factory
}

// NewRegistry creates a new detector registry
func NewRegistry() *DetectorRegistry {
	return &DetectorRegistry{
		factories: make(map[string]Factory),
	}
}

// Register registers a detector factory under the name of the detector it builds
func (r *DetectorRegistry) Register(factory Factory) {
	r.factories[factory().Name()] = factory
}

// Get returns a new detector for name, or nil if none is registered
func (r *DetectorRegistry) Get(name string) Detector {
	factory, ok := r.factories[name]
	if !ok {
		return nil
	}
	return factory()
}

// List returns all registered detector names, sorted
func (r *DetectorRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Global registry
var globalRegistry = NewRegistry()

// RegisterDetector registers a detector factory globally
func RegisterDetector(factory Factory) {
	globalRegistry.Register(factory)
}

// GetDetector returns a new detector by name
func GetDetector(name string) Detector {
	return globalRegistry.Get(name)
}

// ListDetectors returns all registered detector names
func ListDetectors() []string {
	return globalRegistry.List()
}

func init() {
	RegisterDetector(func() Detector { return NewRegionDetector() })
}
