package main

import (
	"github.com/spf13/cobra"

	"cubetea/internal/scene"
)

var newForce bool

var newCmd = &cobra.Command{
	Use:   "new PATH",
	Short: "Write the default scene to a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runNew,
}

func init() {
	newCmd.Flags().BoolVarP(&newForce, "force", "f", false, "overwrite an existing file")
}

func runNew(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()
	path := args[0]
	if !newForce && s.store.Exists(path) {
		return errExists(path)
	}
	return s.store.Save(path, scene.Default())
}
