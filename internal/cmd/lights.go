package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gravitrone/lightman/internal/lightsync"
	"github.com/gravitrone/lightman/internal/scene"
	"github.com/gravitrone/lightman/internal/ui/components"
)

// LightCmds returns the headless light commands.
func LightCmds(p *Paths) []*cobra.Command {
	return []*cobra.Command{
		listCmd(p),
		createCmd(p),
		renameCmd(p),
		deleteCmd(p),
		setCmd(p),
		renderCmd(p),
		initCmd(p),
	}
}

var listColumns = []struct {
	col   lightsync.Column
	width int
}{
	{lightsync.ColName, 16},
	{lightsync.ColMute, 4},
	{lightsync.ColType, 5},
	{lightsync.ColColor, 7},
	{lightsync.ColExposure, 9},
	{lightsync.ColUseTemperature, 8},
	{lightsync.ColTemperature, 9},
	{lightsync.ColSoftSize, 9},
	{lightsync.ColShadow, 6},
	{lightsync.ColBounces, 7},
}

func listCmd(p *Paths) *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List lights in the scene",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(p, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			tbl := s.ctl.Table()
			if search != "" {
				s.ctl.Search(search)
			}
			visible := tbl.VisibleIndexes()
			if len(visible) == 0 {
				fmt.Fprintln(s.out, "no lights found")
				return s.finish(false)
			}

			cols := make([]components.TableColumn, 0, len(listColumns))
			width := 2
			for i, lc := range listColumns {
				cols = append(cols, components.TableColumn{Header: lc.col.String(), Width: lc.width, Align: lipgloss.Left})
				width += lc.width
				if i > 0 {
					width++
				}
			}
			rows := make([][]string, 0, len(visible))
			for _, idx := range visible {
				cells := make([]string, 0, len(listColumns))
				for _, lc := range listColumns {
					cells = append(cells, cellText(tbl, idx, lc.col))
				}
				rows = append(rows, cells)
			}
			fmt.Fprintln(s.out, components.TableGrid(cols, rows, width))
			return s.finish(false)
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "only lights whose name contains this text")
	return cmd
}

func cellText(tbl *lightsync.Table, row int, col lightsync.Column) string {
	ctrl, ok := tbl.Control(row, col)
	if !ok {
		return ""
	}
	if ctrl.Kind() == lightsync.ControlToggle {
		if ctrl.Checked() {
			return "[x]"
		}
		return "[ ]"
	}
	return ctrl.Text()
}

func createCmd(p *Paths) *cobra.Command {
	return &cobra.Command{
		Use:   "create <type> [name]",
		Short: "Create a light (POINT, SUN, SPOT or AREA)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(p, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			name := ""
			if len(args) == 2 {
				name = args[1]
			}
			_, err = s.ctl.CreateLight(name, strings.ToUpper(args[0]))
			s.report()
			if err != nil {
				_ = s.finish(false)
				return fmt.Errorf("create light: %w", err)
			}
			return s.finish(true)
		},
	}
}

func renameCmd(p *Paths) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <old> <new>",
		Short: "Rename a light",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(p, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			_, err = s.ctl.RenameLight(args[0], args[1])
			s.report()
			if err != nil {
				_ = s.finish(false)
				return fmt.Errorf("rename light: %w", err)
			}
			return s.finish(true)
		},
	}
}

func deleteCmd(p *Paths) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a light",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(p, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			err = s.ctl.DeleteLight(args[0])
			s.report()
			if err != nil {
				_ = s.finish(false)
				return fmt.Errorf("delete light: %w", err)
			}
			return s.finish(true)
		},
	}
}

func setCmd(p *Paths) *cobra.Command {
	names := make([]string, 0, 8)
	for _, a := range lightsync.Attributes() {
		names = append(names, a.String())
	}
	return &cobra.Command{
		Use:   "set <light> <attribute> <value>",
		Short: "Set a light attribute",
		Long:  "Set a light attribute. Attributes: color (#rrggbb), " + strings.Join(names, ", ") + ".",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(p, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if err := s.ctl.SetAttribute(args[0], args[1], args[2]); err != nil {
				s.report()
				_ = s.finish(false)
				return fmt.Errorf("set %s: %w", args[1], err)
			}
			s.ctl.Status().Drain()
			fmt.Fprintf(s.out, "%s %s = %s\n", args[0], args[1], args[2])
			return s.finish(true)
		},
	}
}

func renderCmd(p *Paths) *cobra.Command {
	return &cobra.Command{
		Use:   "render",
		Short: "Switch the scene to the configured render engine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(p, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			s.ctl.Render()
			s.report()
			return s.finish(true)
		},
	}
}

func initCmd(p *Paths) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a sample three-light scene",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, path, err := p.Resolve()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("scene %s already exists (use --force)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("stat scene: %w", err)
			}
			s := scene.Sample()
			if err := s.Save(path); err != nil {
				return fmt.Errorf("save scene: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sample scene with %d lights written to %s\n", s.Len(), path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing scene")
	return cmd
}
