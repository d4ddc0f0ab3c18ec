package rig

// poseJointNames are the 33 full-body joints, in landmark index order.
var poseJointNames = []string{
	"nose",
	"left_eye_inner", "left_eye", "left_eye_outer",
	"right_eye_inner", "right_eye", "right_eye_outer",
	"left_ear", "right_ear",
	"mouth_left", "mouth_right",
	"left_shoulder", "right_shoulder",
	"left_elbow", "right_elbow",
	"left_wrist", "right_wrist",
	"left_pinky", "right_pinky",
	"left_index", "right_index",
	"left_thumb", "right_thumb",
	"left_hip", "right_hip",
	"left_knee", "right_knee",
	"left_ankle", "right_ankle",
	"left_heel", "right_heel",
	"left_foot_index", "right_foot_index",
}

// poseBones connects the pose joints. Index pairs into poseJointNames.
var poseBones = [][2]int{
	// Face
	{0, 1}, {1, 2}, {2, 3}, {3, 7},
	{0, 4}, {4, 5}, {5, 6}, {6, 8},
	{9, 10},
	// Arms
	{11, 12},
	{11, 13}, {13, 15}, {15, 17}, {15, 19}, {15, 21}, {17, 19},
	{12, 14}, {14, 16}, {16, 18}, {16, 20}, {16, 22}, {18, 20},
	// Torso
	{11, 23}, {12, 24}, {23, 24},
	// Legs
	{23, 25}, {24, 26}, {25, 27}, {26, 28},
	{27, 29}, {28, 30}, {29, 31}, {30, 32}, {27, 31}, {28, 32},
}

// handJointNames are the 21 single-hand joints, in landmark index order.
var handJointNames = []string{
	"wrist",
	"thumb_cmc", "thumb_mcp", "thumb_ip", "thumb_tip",
	"index_mcp", "index_pip", "index_dip", "index_tip",
	"middle_mcp", "middle_pip", "middle_dip", "middle_tip",
	"ring_mcp", "ring_pip", "ring_dip", "ring_tip",
	"pinky_mcp", "pinky_pip", "pinky_dip", "pinky_tip",
}

// handBones connects the hand joints. Index pairs into handJointNames.
var handBones = [][2]int{
	// Thumb
	{0, 1}, {1, 2}, {2, 3}, {3, 4},
	// Index
	{0, 5}, {5, 6}, {6, 7}, {7, 8},
	// Middle
	{5, 9}, {9, 10}, {10, 11}, {11, 12},
	// Ring
	{9, 13}, {13, 14}, {14, 15}, {15, 16},
	// Pinky
	{13, 17}, {17, 18}, {18, 19}, {19, 20},
	// Palm
	{0, 17},
}
