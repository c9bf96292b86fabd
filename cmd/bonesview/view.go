package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/phanxgames/bones"
	"github.com/phanxgames/bones/scene"
)

// viewer holds the running factory, display and optional config watcher.
type viewer struct {
	factory *bones.Factory
	display *bones.ArmatureDisplay
	watcher *bones.ConfigWatcher
	cmd     *cobra.Command
	log     io.Writer
}

func runView(cmd *cobra.Command, args []string) error {
	cfg := bones.DefaultConfig()
	v := &viewer{cmd: cmd, log: cmd.ErrOrStderr()}

	if flagConfig != "" {
		loaded, err := bones.LoadConfig(flagConfig)
		if err != nil {
			return err
		}
		cfg = loaded
		w, err := bones.WatchConfig(flagConfig)
		if err != nil {
			return fmt.Errorf("watch config: %w", err)
		}
		defer w.Close()
		v.watcher = w
	}
	v.overrideFlags(&cfg)

	s := scene.NewScene()
	s.ClearColor = scene.Color{R: 0.118, G: 0.118, B: 0.157, A: 1}

	v.factory = bones.NewFactory(s.Ticker(), cfg)
	defer v.factory.Close()

	v.factory.AddDragonBonesData(newDemoBundle(), "")
	atlas, page := newDemoAtlas()
	v.factory.BindTextureAtlas(atlas, page, "")

	d, err := v.factory.BuildArmatureDisplay("snake", demoBundle, "", "")
	if err != nil {
		return fmt.Errorf("build armature: %w", err)
	}
	defer d.Dispose()
	v.display = d

	if !d.Animation().Play(flagAnimation, 0) {
		return fmt.Errorf("unknown animation %q (see bonesview list)", flagAnimation)
	}
	d.SetPosition(float64(flagWidth)/4, float64(flagHeight)/2)
	s.Root().AddChild(d.Node)

	d.AddEvent(bones.EventFrame, func(e *bones.EventObject) {
		v.logf("frame event %q on %s at %.2fs", e.Name, e.Animation, e.Time)
	})
	v.factory.SoundEventManager().AddEvent(bones.EventSound, func(e *bones.EventObject) {
		v.logf("sound %q from %s", e.Name, e.Armature.Name())
	})

	return scene.Run(s, scene.RunConfig{
		Title:    "bonesview - " + flagAnimation,
		Width:    flagWidth,
		Height:   flagHeight,
		ShowFPS:  flagShowFPS,
		OnUpdate: v.update,
	})
}

// overrideFlags lets explicit command-line flags win over the config file.
func (v *viewer) overrideFlags(cfg *bones.Config) {
	if v.cmd.Flags().Changed("debug") {
		cfg.Debug.Enabled = flagDebug
	}
	if flagTimeScale > 0 {
		cfg.Clock.TimeScale = flagTimeScale
	}
}

func (v *viewer) update() error {
	if v.watcher != nil {
		if cfg, ok := v.watcher.Poll(); ok {
			v.overrideFlags(&cfg)
			v.factory.ApplyConfig(cfg)
			v.logf("reloaded %s", v.watcher.Path())
		}
	}
	v.display.DebugDraw(v.factory.Config().Debug.Enabled)
	return nil
}

func (v *viewer) logf(format string, args ...any) {
	_, _ = fmt.Fprintf(v.log, "[bonesview] "+format+"\n", args...)
}
