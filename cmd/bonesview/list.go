package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/phanxgames/bones/skeleton"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the demo armatures and their animations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listBundle(cmd.OutOrStdout(), newDemoBundle())
	},
}

// listBundle prints each armature with its bone, slot and animation names.
func listBundle(w io.Writer, b *skeleton.DragonBonesData) error {
	for _, name := range b.ArmatureNames {
		a := b.Armature(name)
		if _, err := fmt.Fprintf(w, "%s (%d bones, %d slots)\n", a.Name, len(a.Bones), len(a.Slots)); err != nil {
			return err
		}
		for _, anim := range a.AnimationNames {
			data := a.Animation(anim)
			marker := ""
			if data == a.DefaultAnimation {
				marker = " *"
			}
			if _, err := fmt.Fprintf(w, "  %s %.2fs%s\n", anim, data.Duration, marker); err != nil {
				return err
			}
		}
	}
	return nil
}
