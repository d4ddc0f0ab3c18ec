package rig

// RigBuilderOption is a functional option for configuring a Rig.
// Use the With* functions to create options that are applied directly to the rig instance.
type RigBuilderOption func(*rig)

// WithScale overrides the rig's normalization scale factor.
//
// Parameters:
//   - scale: multiplier applied to center-relative landmark coordinates
//
// Returns:
//   - RigBuilderOption: option function to apply
func WithScale(scale float32) RigBuilderOption {
	return func(r *rig) {
		if scale > 0 {
			r.scale = scale
		}
	}
}

// WithCenter overrides the center of the expected source coordinate domain.
// The default is (0.5, 0.5, 0), the middle of the normalized image space the
// landmark recordings use.
//
// Parameters:
//   - x, y, z: the domain center subtracted before scaling
//
// Returns:
//   - RigBuilderOption: option function to apply
func WithCenter(x, y, z float32) RigBuilderOption {
	return func(r *rig) {
		r.center = [3]float32{x, y, z}
	}
}
