package skeleton

// Ease names the curve between two keyframes. The empty value is linear.
type Ease string

const (
	EaseLinear    Ease = ""
	EaseStep      Ease = "step"
	EaseInQuad    Ease = "inQuad"
	EaseOutQuad   Ease = "outQuad"
	EaseInOutQuad Ease = "inOutQuad"
	EaseInSine    Ease = "inSine"
	EaseOutSine   Ease = "outSine"
	EaseInOutSine Ease = "inOutSine"
	EaseOutBack   Ease = "outBack"
)

// AnimationData is a named clip.
type AnimationData struct {
	Name     string
	Duration float64 // seconds
	// PlayTimes is the default loop count; 0 loops forever.
	PlayTimes  int
	FadeInTime float64

	Bones  map[string]*BoneTimeline
	Slots  map[string]*SlotTimeline
	Events []*EventFrame
}

// BoneTimeline animates one bone with transforms relative to its setup pose.
type BoneTimeline struct {
	Frames []TransformFrame
}

// TransformFrame is a bone keyframe. Transform is a delta applied with
// Transform.Add, so unchanged frames use Identity().
type TransformFrame struct {
	Time      float64
	Transform Transform
	Ease      Ease
}

// SlotTimeline switches a slot's active display over time.
type SlotTimeline struct {
	Frames []DisplayFrame
}

// DisplayFrame sets a slot's display index at Time. -1 hides the slot.
type DisplayFrame struct {
	Time         float64
	DisplayIndex int
}

// EventKind distinguishes timeline events.
type EventKind uint8

const (
	EventKindFrame EventKind = iota
	EventKindSound
)

// EventFrame is a named event fired when playback crosses Time.
type EventFrame struct {
	Time float64
	Kind EventKind
	Name string
	Bone string
	Data any
}
