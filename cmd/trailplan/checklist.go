package main

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vbonduro/trailplan/internal/checklist"
	"github.com/vbonduro/trailplan/internal/service"
)

var (
	checkedColor  = color.New(color.FgGreen)
	requiredColor = color.New(color.FgHiRed)
	optionalColor = color.New(color.FgYellow)
	winterColor   = color.New(color.FgCyan)
	headingColor  = color.New(color.Bold)
)

func addSelectionFlags(cmd *cobra.Command, sel *service.Selection) {
	f := cmd.Flags()
	f.StringVar(&sel.PlanID, "plan", "", "use the equipment list of this plan")
	f.StringVar(&sel.TemplateID, "template", "", "use this equipment template")
	f.BoolVar(&sel.All, "all", false, "use every equipment item")
	f.BoolVar(&sel.WinterOnly, "winter", false, "only winter equipment")
	cmd.MarkFlagsMutuallyExclusive("plan", "template", "all")
}

func newChecklistCmd(a *app) *cobra.Command {
	var sel service.Selection
	cmd := &cobra.Command{
		Use:     "checklist",
		Aliases: []string{"ls"},
		Short:   "Show the equipment checklist",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.checklistService()
			if err != nil {
				return err
			}
			return printChecklist(cmd.Context(), cmd.OutOrStdout(), svc, a.session, sel)
		},
	}
	addSelectionFlags(cmd, &sel)
	return cmd
}

func newToggleCmd(a *app) *cobra.Command {
	var sel service.Selection
	cmd := &cobra.Command{
		Use:   "toggle <item-id>...",
		Short: "Flip the packed flag of equipment items",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.checklistService()
			if err != nil {
				return err
			}
			if err := svc.Validate(sel); err != nil {
				return err
			}
			for _, id := range args {
				if _, err := svc.Toggle(cmd.Context(), a.session, id); err != nil {
					return err
				}
			}
			return printChecklist(cmd.Context(), cmd.OutOrStdout(), svc, a.session, sel)
		},
	}
	addSelectionFlags(cmd, &sel)
	return cmd
}

func newCheckAllCmd(a *app) *cobra.Command {
	var sel service.Selection
	cmd := &cobra.Command{
		Use:   "check-all",
		Short: "Mark every item of the checklist as packed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.checklistService()
			if err != nil {
				return err
			}
			if _, err := svc.CheckAll(cmd.Context(), a.session, sel); err != nil {
				return err
			}
			return printChecklist(cmd.Context(), cmd.OutOrStdout(), svc, a.session, sel)
		},
	}
	addSelectionFlags(cmd, &sel)
	return cmd
}

func newClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Unpack every item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.checklistService()
			if err != nil {
				return err
			}
			if _, err := svc.Clear(cmd.Context(), a.session); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cleared checklist for session %q\n", a.session)
			return nil
		},
	}
}

func printChecklist(ctx context.Context, w io.Writer, svc *service.ChecklistService, session string, sel service.Selection) error {
	view, err := svc.View(ctx, session, sel)
	if err != nil {
		return err
	}

	headingColor.Fprintf(w, "%s", view.Title)
	fmt.Fprintf(w, "  %s\n", progressText(view.Progress))

	for _, g := range view.Groups {
		fmt.Fprintf(w, "\n%s %s (%d/%d)\n", g.Category.Icon(), g.Category.Label(), g.Progress.Checked, g.Progress.Total)
		for _, item := range g.Items {
			if view.State.Checked(item.ID) {
				checkedColor.Fprint(w, "  [x] ")
			} else {
				fmt.Fprint(w, "  [ ] ")
			}
			fmt.Fprintf(w, "%s ", item.Name)
			if item.Required() {
				requiredColor.Fprint(w, item.RequirementLevel.Label())
			} else {
				optionalColor.Fprint(w, item.RequirementLevel.Label())
			}
			if item.ForWinter {
				winterColor.Fprint(w, " 冬山")
			}
			fmt.Fprintf(w, "  (%s)\n", item.ID)
		}
	}
	return nil
}

func progressText(p checklist.Progress) string {
	text := fmt.Sprintf("%d/%d (%d%%)", p.Checked, p.Total, p.Rounded())
	if p.Complete() {
		return checkedColor.Sprint(text + " 準備完了")
	}
	return text
}
