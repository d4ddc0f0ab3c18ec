package rig

import (
	"github.com/unmute-ai/signplay/sign"
)

// Kind identifies which landmark shape a rig visualizes.
type Kind int

const (
	// KindPose is the 33-joint full-body rig.
	KindPose Kind = iota

	// KindLeftHand is a 21-joint hand rig drawn left of center when both
	// hands are visible.
	KindLeftHand

	// KindRightHand is a 21-joint hand rig drawn right of center when both
	// hands are visible.
	KindRightHand
)

// Rig is a fixed set of named joints plus a fixed set of bone connections,
// one instance per landmark shape. Rigs are created once at engine
// initialization and live for the engine's lifetime; they are never recreated
// per playback session.
//
// A Rig is not safe for concurrent use. The skeleton that owns the rigs
// serializes writer (frame updates) and reader (vertex snapshots) access.
type Rig interface {
	// Kind returns the landmark shape this rig visualizes.
	Kind() Kind

	// JointCount returns the number of joints in the rig's topology.
	JointCount() int

	// JointName returns the name of the joint at the given landmark index.
	//
	// Parameters:
	//   - i: the landmark index
	//
	// Returns:
	//   - string: the joint name, or "" if the index is out of range
	JointName(i int) string

	// JointVisible reports whether the joint at the given index is currently
	// shown.
	JointVisible(i int) bool

	// JointPosition returns the normalized render-space position of the joint
	// at the given index. Only meaningful while the joint is visible.
	JointPosition(i int) [3]float32

	// SetLandmarks updates every joint from the given landmark list, applying
	// the rig's normalization transform: subtract the center of the source
	// coordinate domain, scale by the rig's factor, and invert the vertical
	// axis (the source origin is at the top of the image; render space is
	// bottom-up). Joints carrying the absence sentinel are hidden
	// individually. A wrong-length list hides the whole rig.
	//
	// Parameters:
	//   - landmarks: one landmark per joint, in topology order
	//   - offsetX: horizontal render-space offset (used to separate two
	//     simultaneously visible hands; 0 for the pose rig)
	//
	// Returns:
	//   - bool: true if at least one joint ended up visible
	SetLandmarks(landmarks []sign.Landmark, offsetX float32) bool

	// HideAll hides every joint (and therefore every bone) of the rig.
	HideAll()

	// AppendLineVertices appends two xyz vertices per drawable bone to dst. A
	// bone is drawable only if both its endpoint joints are visible; this is
	// evaluated fresh on every call.
	//
	// Parameters:
	//   - dst: the vertex slice to append to
	//
	// Returns:
	//   - []float32: dst with the bone segment vertices appended
	AppendLineVertices(dst []float32) []float32

	// AppendPointVertices appends one xyz vertex per visible joint to dst.
	//
	// Parameters:
	//   - dst: the vertex slice to append to
	//
	// Returns:
	//   - []float32: dst with the joint vertices appended
	AppendPointVertices(dst []float32) []float32
}

type rig struct {
	kind  Kind
	names []string
	bones [][2]int

	positions [][3]float32
	visible   []bool

	scale  float32
	center [3]float32
}

var _ Rig = &rig{}

// NewRig creates a rig of the given kind with its fixed topology and default
// normalization (center at the middle of the unit image domain, scale sized
// so a full-frame subject roughly fills clip space).
//
// Parameters:
//   - kind: which landmark shape the rig visualizes
//   - options: functional options to override scale or center
//
// Returns:
//   - Rig: the newly created rig, fully hidden
func NewRig(kind Kind, options ...RigBuilderOption) Rig {
	r := &rig{
		kind:   kind,
		center: [3]float32{0.5, 0.5, 0},
	}
	switch kind {
	case KindPose:
		r.names = poseJointNames
		r.bones = poseBones
		r.scale = 2.0
	case KindLeftHand, KindRightHand:
		r.names = handJointNames
		r.bones = handBones
		r.scale = 1.6
	}

	for _, opt := range options {
		opt(r)
	}

	r.positions = make([][3]float32, len(r.names))
	r.visible = make([]bool, len(r.names))
	return r
}

func (r *rig) Kind() Kind {
	return r.kind
}

func (r *rig) JointCount() int {
	return len(r.names)
}

func (r *rig) JointName(i int) string {
	if i < 0 || i >= len(r.names) {
		return ""
	}
	return r.names[i]
}

func (r *rig) JointVisible(i int) bool {
	if i < 0 || i >= len(r.visible) {
		return false
	}
	return r.visible[i]
}

func (r *rig) JointPosition(i int) [3]float32 {
	if i < 0 || i >= len(r.positions) {
		return [3]float32{}
	}
	return r.positions[i]
}

func (r *rig) SetLandmarks(landmarks []sign.Landmark, offsetX float32) bool {
	if len(landmarks) != len(r.names) {
		r.HideAll()
		return false
	}

	anyVisible := false
	for i, lm := range landmarks {
		if lm.Absent() {
			r.visible[i] = false
			continue
		}
		r.positions[i] = [3]float32{
			(float32(lm.X)-r.center[0])*r.scale + offsetX,
			// Source y grows downward; render y grows upward.
			-(float32(lm.Y) - r.center[1]) * r.scale,
			(float32(lm.Z) - r.center[2]) * r.scale,
		}
		r.visible[i] = true
		anyVisible = true
	}
	return anyVisible
}

func (r *rig) HideAll() {
	for i := range r.visible {
		r.visible[i] = false
	}
}

func (r *rig) AppendLineVertices(dst []float32) []float32 {
	for _, b := range r.bones {
		if !r.visible[b[0]] || !r.visible[b[1]] {
			continue
		}
		p0, p1 := r.positions[b[0]], r.positions[b[1]]
		dst = append(dst, p0[0], p0[1], p0[2], p1[0], p1[1], p1[2])
	}
	return dst
}

func (r *rig) AppendPointVertices(dst []float32) []float32 {
	for i, vis := range r.visible {
		if !vis {
			continue
		}
		p := r.positions[i]
		dst = append(dst, p[0], p[1], p[2])
	}
	return dst
}
