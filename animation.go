package bones

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/bones/skeleton"
)

// easeFuncs maps keyframe curve names to gween easing functions.
var easeFuncs = map[skeleton.Ease]ease.TweenFunc{
	skeleton.EaseLinear:    ease.Linear,
	skeleton.EaseInQuad:    ease.InQuad,
	skeleton.EaseOutQuad:   ease.OutQuad,
	skeleton.EaseInOutQuad: ease.InOutQuad,
	skeleton.EaseInSine:    ease.InSine,
	skeleton.EaseOutSine:   ease.OutSine,
	skeleton.EaseInOutSine: ease.InOutSine,
	skeleton.EaseOutBack:   ease.OutBack,
}

// easeProgress maps linear progress p in [0, 1] through the named curve.
func easeProgress(e skeleton.Ease, p float64) float64 {
	if e == skeleton.EaseStep {
		return 0
	}
	fn, ok := easeFuncs[e]
	if !ok {
		fn = ease.Linear
	}
	return float64(fn(float32(p), 0, 1, 1))
}

// Animation plays one clip at a time on an armature, with an optional
// fade-in from the previous pose.
type Animation struct {
	armature *Armature

	// TimeScale multiplies the delta passed to the animation.
	TimeScale float64

	current   *skeleton.AnimationData
	lastName  string
	time      float64
	playTimes int
	loops     int
	playing   bool
	completed bool
	started   bool

	fade      *gween.Tween
	weight    float64
	fadeEvent bool
}

func newAnimation(a *Armature) *Animation {
	return &Animation{armature: a, TimeScale: 1, weight: 1}
}

// AnimationNames returns the clip names declared by the armature.
func (an *Animation) AnimationNames() []string {
	return an.armature.data.AnimationNames
}

// HasAnimation reports whether the armature declares the named clip.
func (an *Animation) HasAnimation(name string) bool {
	return an.armature.data.Animation(name) != nil
}

// IsPlaying reports whether a clip is advancing.
func (an *Animation) IsPlaying() bool { return an.playing }

// IsCompleted reports whether the current clip ran all of its loops.
func (an *Animation) IsCompleted() bool { return an.completed }

// LastAnimationName returns the name of the most recently started clip.
func (an *Animation) LastAnimationName() string { return an.lastName }

// CurrentTime returns the playhead of the current clip in seconds.
func (an *Animation) CurrentTime() float64 { return an.time }

// Weight returns the fade-in weight of the current clip in [0, 1].
func (an *Animation) Weight() float64 { return an.weight }

// resolve finds a clip by name. The empty name selects the default clip.
func (an *Animation) resolve(name string) *skeleton.AnimationData {
	data := an.armature.data
	if name == "" {
		return data.DefaultAnimation
	}
	return data.Animation(name)
}

// Play starts the named clip from the beginning. An empty name plays the
// default clip; playTimes < 0 uses the clip's own loop count and 0 loops
// forever. Reports whether the clip exists.
func (an *Animation) Play(name string, playTimes int) bool {
	return an.start(name, 0, playTimes, 0)
}

// FadeIn starts the named clip and blends into it from the current pose
// over fadeTime seconds.
func (an *Animation) FadeIn(name string, fadeTime float64, playTimes int) bool {
	return an.start(name, 0, playTimes, fadeTime)
}

// GotoAndPlayByTime starts the named clip at t seconds.
func (an *Animation) GotoAndPlayByTime(name string, t float64, playTimes int) bool {
	return an.start(name, t, playTimes, 0)
}

// GotoAndStopByTime poses the armature at t seconds of the named clip and
// leaves playback stopped.
func (an *Animation) GotoAndStopByTime(name string, t float64) bool {
	if !an.start(name, t, -1, 0) {
		return false
	}
	an.playing = false
	an.apply()
	return true
}

// Stop halts playback. An empty name stops any clip; otherwise only the
// named clip is stopped.
func (an *Animation) Stop(name string) {
	if an.current == nil {
		return
	}
	if name != "" && name != an.current.Name {
		return
	}
	an.playing = false
}

func (an *Animation) start(name string, t float64, playTimes int, fadeTime float64) bool {
	mustBeLive(an.armature, "Animation.Play")
	data := an.resolve(name)
	if data == nil {
		an.armature.factory.debugf("armature %q: animation %q not found", an.armature.name, name)
		return false
	}
	if playTimes < 0 {
		playTimes = data.PlayTimes
	}
	if fadeTime < 0 {
		fadeTime = data.FadeInTime
	}

	an.current = data
	an.lastName = data.Name
	an.time = t
	an.playTimes = playTimes
	an.loops = 0
	an.playing = true
	an.completed = false
	an.started = false

	an.fade = nil
	an.weight = 1
	an.fadeEvent = false
	if fadeTime > 0 {
		for _, b := range an.armature.bones {
			b.fadeFrom = b.pose
		}
		an.fade = gween.New(0, 1, float32(fadeTime), ease.Linear)
		an.weight = 0
		an.fadeEvent = true
	}

	an.inherit(data.Name, playTimes)
	return true
}

// inherit starts the same clip on nested armatures that follow their parent.
func (an *Animation) inherit(name string, playTimes int) {
	for _, s := range an.armature.slots {
		child := s.ChildArmature()
		if child == nil || child.disposed || !child.inheritAnimation {
			continue
		}
		if child.animation.HasAnimation(name) {
			child.animation.Play(name, playTimes)
		}
	}
}

// advanceTime moves the playhead, queues timeline events and writes the pose.
func (an *Animation) advanceTime(dt float64) {
	if an.current == nil || !an.playing {
		return
	}
	a := an.armature
	dt *= an.TimeScale
	if !an.started {
		an.started = true
		a.queueEvent(EventStart, an.fillEvent)
		if an.fadeEvent {
			a.queueEvent(EventFadeIn, an.fillEvent)
		}
	}
	if an.fade != nil {
		w, done := an.fade.Update(float32(dt))
		an.weight = float64(w)
		if done {
			an.fade = nil
			an.weight = 1
			a.queueEvent(EventFadeInComplete, an.fillEvent)
		}
	}

	dur := an.current.Duration
	prev := an.time
	an.time += dt
	if dur <= 0 {
		an.time = 0
		if an.loops == 0 {
			an.queueTimelineEvents(0, 0, true)
		}
		an.loops++
		if an.playTimes > 0 {
			an.finish()
		}
		an.apply()
		return
	}

	for an.time >= dur {
		if an.playTimes > 0 && an.loops+1 >= an.playTimes {
			an.queueTimelineEvents(prev, dur, true)
			an.time = dur
			an.finish()
			an.apply()
			return
		}
		an.queueTimelineEvents(prev, dur, false)
		an.time -= dur
		an.loops++
		prev = 0
		a.queueEvent(EventLoopComplete, an.fillEvent)
	}
	an.queueTimelineEvents(prev, an.time, false)
	an.apply()
}

func (an *Animation) finish() {
	an.loops = an.playTimes
	an.playing = false
	an.completed = true
	an.armature.queueEvent(EventComplete, an.fillEvent)
}

func (an *Animation) fillEvent(e *EventObject) {
	e.Animation = an.current.Name
	e.Time = an.time
}

// queueTimelineEvents raises frame and sound events with from <= t < to, or
// t <= to when inclusive.
func (an *Animation) queueTimelineEvents(from, to float64, inclusive bool) {
	a := an.armature
	for _, ev := range an.current.Events {
		if ev.Time < from || ev.Time > to || (ev.Time == to && !inclusive) {
			continue
		}
		t := EventFrame
		if ev.Kind == skeleton.EventKindSound {
			t = EventSound
		}
		a.queueEvent(t, func(e *EventObject) {
			an.fillEvent(e)
			e.Name = ev.Name
			e.Time = ev.Time
			e.Data = ev.Data
			if ev.Bone != "" {
				e.Bone = a.Bone(ev.Bone)
			}
		})
	}
}

// apply samples every timeline at the playhead and writes bone poses and
// slot display indices.
func (an *Animation) apply() {
	a := an.armature
	for _, b := range a.bones {
		pose := skeleton.Identity()
		if tl := an.current.Bones[b.data.Name]; tl != nil {
			pose = sampleTransform(tl.Frames, an.time)
		}
		if an.weight < 1 {
			pose = b.fadeFrom.Lerp(pose, an.weight)
		}
		b.pose = pose
	}
	for name, tl := range an.current.Slots {
		s := a.Slot(name)
		if s == nil || len(tl.Frames) == 0 {
			continue
		}
		s.SetDisplayIndex(sampleDisplayIndex(tl.Frames, an.time))
	}
}

// sampleTransform interpolates bone keyframes at t.
func sampleTransform(frames []skeleton.TransformFrame, t float64) skeleton.Transform {
	if len(frames) == 0 {
		return skeleton.Identity()
	}
	if t <= frames[0].Time {
		return frames[0].Transform
	}
	for i := 0; i < len(frames)-1; i++ {
		f0, f1 := frames[i], frames[i+1]
		if t >= f1.Time {
			continue
		}
		span := f1.Time - f0.Time
		if span <= 0 {
			return f1.Transform
		}
		p := easeProgress(f0.Ease, (t-f0.Time)/span)
		return f0.Transform.Lerp(f1.Transform, p)
	}
	return frames[len(frames)-1].Transform
}

// sampleDisplayIndex returns the display index of the last frame at or before t.
func sampleDisplayIndex(frames []skeleton.DisplayFrame, t float64) int {
	idx := frames[0].DisplayIndex
	for _, f := range frames {
		if f.Time > t {
			break
		}
		idx = f.DisplayIndex
	}
	return idx
}
