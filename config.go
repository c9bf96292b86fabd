package bones

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"

	"github.com/phanxgames/bones/scene"
)

// Config holds the runtime settings of a Factory. It is usually loaded from
// YAML:
//
//	clock:
//	  delta_policy: internal
//	  time_scale: 1
//	debug:
//	  enabled: true
//	  bone_color: cyan
//	  ik_bone_color: "#ff0000"
//	pool:
//	  max_armatures: 64
type Config struct {
	Clock ClockConfig `yaml:"clock"`
	Debug DebugConfig `yaml:"debug"`
	Pool  PoolConfig  `yaml:"pool"`
}

// ClockConfig controls how the shared clock measures time.
type ClockConfig struct {
	DeltaPolicy DeltaPolicy `yaml:"delta_policy"`
	TimeScale   float64     `yaml:"time_scale"`
}

// DebugConfig controls diagnostics and the debug-draw overlay. Colors are CSS
// names or "#rrggbb". Empty colors and non-positive sizes use the defaults.
type DebugConfig struct {
	Enabled          bool    `yaml:"enabled"`
	BoneColor        string  `yaml:"bone_color"`
	IKBoneColor      string  `yaml:"ik_bone_color"`
	BoundingBoxColor string  `yaml:"bounding_box_color"`
	BoneAlpha        float64 `yaml:"bone_alpha"`
	BoundingBoxAlpha float64 `yaml:"bounding_box_alpha"`
	LineWidth        float64 `yaml:"line_width"`
	JointRadius      float64 `yaml:"joint_radius"`
}

// PoolConfig caps the idle records each factory pool keeps. Zero is unbounded.
type PoolConfig struct {
	MaxArmatures int `yaml:"max_armatures"`
	MaxAtlases   int `yaml:"max_atlases"`
	MaxEvents    int `yaml:"max_events"`
}

// DebugStyle is the resolved form of DebugConfig used when drawing.
type DebugStyle struct {
	Bone            scene.Color
	IKBone          scene.Color
	BoundingBoxFill scene.Color
	BoundingBoxLine scene.Color
	LineWidth       float64
	JointRadius     float64
}

const (
	defaultBoneAlpha        = 0.7
	defaultBoundingBoxAlpha = 0.3
	defaultLineWidth        = 2
	defaultJointRadius      = 3
)

// DefaultDebugStyle returns cyan bones, red IK bones and magenta bounding boxes.
func DefaultDebugStyle() DebugStyle {
	return DebugStyle{
		Bone:            scene.ColorFromRGBA(colornames.Cyan).WithAlpha(defaultBoneAlpha),
		IKBone:          scene.ColorFromRGBA(colornames.Red).WithAlpha(defaultBoneAlpha),
		BoundingBoxFill: scene.ColorFromRGBA(colornames.Magenta).WithAlpha(defaultBoundingBoxAlpha),
		BoundingBoxLine: scene.ColorFromRGBA(colornames.Magenta).WithAlpha(defaultBoneAlpha),
		LineWidth:       defaultLineWidth,
		JointRadius:     defaultJointRadius,
	}
}

// DefaultConfig returns internal delta accounting at normal speed, debug off
// and unbounded pools.
func DefaultConfig() Config {
	return Config{
		Clock: ClockConfig{DeltaPolicy: DeltaInternal, TimeScale: 1},
		Debug: DebugConfig{
			BoneColor:        "cyan",
			IKBoneColor:      "red",
			BoundingBoxColor: "magenta",
			BoneAlpha:        defaultBoneAlpha,
			BoundingBoxAlpha: defaultBoundingBoxAlpha,
			LineWidth:        defaultLineWidth,
			JointRadius:      defaultJointRadius,
		},
	}
}

// ParseConfig decodes YAML on top of DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("bones: unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("bones: load config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("bones: config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Clock.TimeScale < 0 || math.IsNaN(c.Clock.TimeScale) || math.IsInf(c.Clock.TimeScale, 0) {
		return fmt.Errorf("bones: clock.time_scale %v must be finite and >= 0", c.Clock.TimeScale)
	}
	if c.Pool.MaxArmatures < 0 || c.Pool.MaxAtlases < 0 || c.Pool.MaxEvents < 0 {
		return fmt.Errorf("bones: pool sizes must be >= 0")
	}
	if _, err := c.Debug.Style(); err != nil {
		return err
	}
	return nil
}

// Style resolves colors and sizes into a DebugStyle.
func (d DebugConfig) Style() (DebugStyle, error) {
	style := DefaultDebugStyle()
	boneAlpha := orDefault(d.BoneAlpha, defaultBoneAlpha)
	boxAlpha := orDefault(d.BoundingBoxAlpha, defaultBoundingBoxAlpha)

	if d.BoneColor != "" {
		c, err := parseColor(d.BoneColor)
		if err != nil {
			return DebugStyle{}, fmt.Errorf("bones: debug.bone_color: %w", err)
		}
		style.Bone = c
	}
	if d.IKBoneColor != "" {
		c, err := parseColor(d.IKBoneColor)
		if err != nil {
			return DebugStyle{}, fmt.Errorf("bones: debug.ik_bone_color: %w", err)
		}
		style.IKBone = c
	}
	if d.BoundingBoxColor != "" {
		c, err := parseColor(d.BoundingBoxColor)
		if err != nil {
			return DebugStyle{}, fmt.Errorf("bones: debug.bounding_box_color: %w", err)
		}
		style.BoundingBoxFill = c
		style.BoundingBoxLine = c
	}

	style.Bone = style.Bone.WithAlpha(boneAlpha)
	style.IKBone = style.IKBone.WithAlpha(boneAlpha)
	style.BoundingBoxFill = style.BoundingBoxFill.WithAlpha(boxAlpha)
	style.BoundingBoxLine = style.BoundingBoxLine.WithAlpha(boneAlpha)
	style.LineWidth = orDefault(d.LineWidth, defaultLineWidth)
	style.JointRadius = orDefault(d.JointRadius, defaultJointRadius)
	return style, nil
}

func orDefault(v, def float64) float64 {
	if v <= 0 || math.IsNaN(v) {
		return def
	}
	return v
}

// parseColor accepts a CSS color name or "#rrggbb".
func parseColor(s string) (scene.Color, error) {
	if c, ok := colornames.Map[strings.ToLower(strings.TrimSpace(s))]; ok {
		return scene.ColorFromRGBA(c), nil
	}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || len(hex) != 6 {
		return scene.Color{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return scene.Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return scene.ColorFromRGBA(color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}), nil
}
