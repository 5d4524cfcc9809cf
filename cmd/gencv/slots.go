package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/gencv/internal/rendering"
)

var slotsCommand = &cobra.Command{
	Use:   "slots [template]",
	Short: "Print the slots and quotas of a template",
	Long:  "Compiles a template and prints its slots in body order. Without a template name, lists the available templates.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSlots,
}

func init() {
	rootCmd.AddCommand(slotsCommand)
}

func runSlots(cmd *cobra.Command, args []string) error {
	p := printer(cmd)

	if len(args) == 0 {
		names, err := rendering.ListTemplates(cfg.TemplateDir)
		if err != nil {
			return err
		}
		if len(names) == 0 {
			p.PrintNote("No templates in %s", cfg.TemplateDir)
		}
		for _, name := range names {
			p.PrintNote("%s", name)
		}
		return nil
	}

	tmpl, err := rendering.LoadTemplateDir(cfg.TemplateDir, args[0])
	if err != nil {
		return err
	}
	p.PrintSlots(tmpl.Name, tmpl.Template.Slots)
	return nil
}
