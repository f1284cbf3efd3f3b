package main

import (
	"github.com/spf13/cobra"

	"cubetea/internal/graphics"
)

var viewCmd = &cobra.Command{
	Use:   "view [SCENE]",
	Short: "Open the scene in a window",
	Long: `Open SCENE, or resume the autosave when no scene is given, in the raylib viewer.
TAB opens the console. WASD/QE move the camera, the arrow keys and Z/X turn it, M toggles
the render mode, N cycles the selection and F3 shows the FPS counter.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runView,
}

func runView(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if len(args) == 1 {
		if err := s.ed.Load(args[0]); err != nil {
			return err
		}
	} else {
		s.ed.Resume()
	}
	graphics.NewViewer(s.ed, s.log).Run()
	return nil
}
