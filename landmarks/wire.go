package landmarks

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/unmute-ai/signplay/sign"
)

// payloadSchemaJSON accepts the three historical payload shapes: the current
// "pose_frames", the hand-tracking era "hand_frames" with {left, right}, and
// the oldest "frames" which carried either shape.
const payloadSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "anyOf": [
    {"required": ["pose_frames"]},
    {"required": ["hand_frames"]},
    {"required": ["frames"]}
  ],
  "properties": {
    "pose_frames": {"$ref": "#/$defs/frameList"},
    "hand_frames": {"$ref": "#/$defs/frameList"},
    "frames": {"$ref": "#/$defs/frameList"}
  },
  "$defs": {
    "frameList": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "pose": {"$ref": "#/$defs/landmarkList"},
          "left_hand": {"$ref": "#/$defs/landmarkList"},
          "right_hand": {"$ref": "#/$defs/landmarkList"},
          "left": {"$ref": "#/$defs/landmarkList"},
          "right": {"$ref": "#/$defs/landmarkList"}
        }
      }
    },
    "landmarkList": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["x", "y", "z"],
        "properties": {
          "x": {"type": "number"},
          "y": {"type": "number"},
          "z": {"type": "number"}
        }
      }
    }
  }
}`

var payloadSchema = jsonschema.MustCompileString("landmarks.schema.json", payloadSchemaJSON)

// wireEnvelope is the union of the three payload shapes. Exactly one of the
// frame lists is expected to be present.
type wireEnvelope struct {
	PoseFrames []wireFrame `json:"pose_frames"`
	HandFrames []wireFrame `json:"hand_frames"`
	Frames     []wireFrame `json:"frames"`
}

// wireFrame is the union of the per-frame shapes. The hand-tracking era used
// "left"/"right"; the current shape uses "left_hand"/"right_hand".
type wireFrame struct {
	Pose      []sign.Landmark `json:"pose"`
	LeftHand  []sign.Landmark `json:"left_hand"`
	RightHand []sign.Landmark `json:"right_hand"`
	Left      []sign.Landmark `json:"left"`
	Right     []sign.Landmark `json:"right"`
}

// canonical maps a wire frame to the canonical frame type. Wrong-shaped
// landmark lists normalize to a blank frame so they keep participating in
// sequence timing and blank-streak accounting.
func (wf wireFrame) canonical() sign.Frame {
	left := wf.LeftHand
	if left == nil {
		left = wf.Left
	}
	right := wf.RightHand
	if right == nil {
		right = wf.Right
	}

	f := sign.Frame{Pose: wf.Pose, LeftHand: left, RightHand: right}
	if !f.WellFormed() {
		return sign.Blank()
	}
	return f
}

// normalizePayload validates a raw payload against the wire schema and maps
// it into canonical frames.
//
// Parameters:
//   - data: the raw JSON payload body
//
// Returns:
//   - []sign.Frame: the canonical frame sequence
//   - error: an error if the payload is not one of the known wire shapes
func normalizePayload(data []byte) ([]sign.Frame, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("landmarks: decode payload: %w", err)
	}
	if err := payloadSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("landmarks: payload shape: %w", err)
	}

	var env wireEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("landmarks: decode payload: %w", err)
	}

	var wire []wireFrame
	switch {
	case env.PoseFrames != nil:
		wire = env.PoseFrames
	case env.HandFrames != nil:
		wire = env.HandFrames
	default:
		wire = env.Frames
	}

	frames := make([]sign.Frame, 0, len(wire))
	for _, wf := range wire {
		frames = append(frames, wf.canonical())
	}
	return frames, nil
}
