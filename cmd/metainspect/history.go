package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/fwojciec/metainspect"
)

// Run executes the history list command.
func (c *HistoryListCmd) Run(deps *Dependencies) error {
	filter := metainspect.InspectionFilter{Limit: c.Limit, Offset: c.Offset}
	if c.URL != "" {
		filter.URL = &c.URL
	}

	inspections, err := deps.Inspections.FindInspections(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", metainspect.ErrorMessage(err))
		return err
	}

	if len(inspections) == 0 {
		fmt.Fprintln(deps.Stdout, "No inspections found. Use 'metainspect inspect --save' to archive one.")
		return nil
	}

	tw := tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
	for _, ins := range inspections {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n",
			ins.ID, ins.InspectedAt.Local().Format(time.DateTime), ins.StatusCode, ins.URL, ins.Title)
	}
	return tw.Flush()
}

// Run executes the history show command.
func (c *HistoryShowCmd) Run(deps *Dependencies) error {
	ins, err := deps.Inspections.FindInspectionByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", metainspect.ErrorMessage(err))
		return err
	}
	return newEncoder(c.Format, deps.Stdout).Encode([]*metainspect.Result{ins.Result})
}

// Run executes the history delete command.
func (c *HistoryDeleteCmd) Run(deps *Dependencies) error {
	if err := deps.Inspections.DeleteInspection(deps.Ctx, c.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", metainspect.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Deleted inspection %s\n", c.ID)
	return nil
}
