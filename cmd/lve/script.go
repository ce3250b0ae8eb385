package main

import (
	"github.com/spf13/cobra"

	"github.com/milk9111/leveleditor/script"
)

var flagScriptOpen string

var scriptCmd = &cobra.Command{
	Use:   "run-script <script.tengo>",
	Short: "Run a tengo script against the editor",
	Long: `Run a tengo script with an editor module bound to a fresh engine and the
brush catalog. The script is responsible for saving its work.

Example script:
  editor.new(16, 9)
  editor.brush("ground.grass")
  editor.fill(0, 0)
  editor.brush("building.house")
  editor.paint(4, 8)
  editor.save("town.lve")`,
	Args: cobra.ExactArgs(1),
	RunE: runScript,
}

func init() {
	scriptCmd.Flags().StringVar(&flagScriptOpen, "open", "", "Open this level before running the script")
}

func runScript(cmd *cobra.Command, args []string) error {
	e := newEngine()
	if flagScriptOpen != "" {
		if err := e.Open(flagScriptOpen); err != nil {
			return err
		}
	}
	rt := script.New(e, loadCatalog(), logger)
	if err := rt.RunFile(cmd.Context(), args[0]); err != nil {
		return err
	}
	remember(e)
	return nil
}
