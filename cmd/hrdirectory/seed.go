package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/hr-directory/internal/calendar"
	"github.com/example/hr-directory/internal/config"
	"github.com/example/hr-directory/internal/persistence"
	"github.com/example/hr-directory/internal/seed"
)

func newSeedCmd() *cobra.Command {
	var (
		file   string
		format string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Print the records serve would start with",
		Long: `Print the seed dataset: the YAML file named by --file or HR_SEED_FILE, or
the built-in sample when neither is set.

--format yaml writes a document that can be edited and fed back through
HR_SEED_FILE.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("file") {
				cfg.SeedFile = strings.TrimSpace(file)
			}

			cal := calendar.New(cfg.Location)
			dataset, err := loadDataset(cfg, cal, time.Now())
			if err != nil {
				return err
			}

			switch strings.ToLower(format) {
			case "yaml":
				return seed.Encode(cmd.OutOrStdout(), dataset, cal)
			case "text":
				printDataset(cmd.OutOrStdout(), dataset, cal)
				return nil
			default:
				return fmt.Errorf("unknown --format %q (want text or yaml)", format)
			}
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "YAML seed file (overrides HR_SEED_FILE)")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or yaml")

	return cmd
}

func printDataset(w io.Writer, dataset persistence.Dataset, cal *calendar.Calendar) {
	heading := color.New(color.FgCyan, color.Bold)
	muted := color.New(color.FgHiBlack)

	names := make(map[string]string, len(dataset.Employees))
	for _, employee := range dataset.Employees {
		names[employee.ID] = employee.Name
	}

	heading.Fprintf(w, "Departments (%d)\n", len(dataset.Departments))
	for _, department := range dataset.Departments {
		manager := muted.Sprint("no manager")
		if department.ManagerEmployeeID != nil {
			manager = "manager " + lookupName(names, *department.ManagerEmployeeID)
		}
		fmt.Fprintf(w, "  [%s] %s - %s (%s)\n", department.ID, department.Name, department.Description, manager)
	}
	fmt.Fprintln(w)

	heading.Fprintf(w, "Employees (%d)\n", len(dataset.Employees))
	for _, employee := range dataset.Employees {
		department := muted.Sprint("unassigned")
		if employee.DepartmentID != nil {
			department = "department " + *employee.DepartmentID
		}
		fmt.Fprintf(w, "  [%s] %s <%s> %s, %s, hired %s\n",
			employee.ID, employee.Name, employee.Email, employee.Position, department, employee.HireDate)
	}
	fmt.Fprintln(w)

	heading.Fprintf(w, "Availability (%d)\n", len(dataset.Availability))
	for _, entry := range dataset.Availability {
		status := color.New(color.FgGreen).Sprint(entry.Status)
		if entry.Status == persistence.StatusUnavailable {
			status = color.New(color.FgRed).Sprint(entry.Status)
		}
		line := fmt.Sprintf("  [%s] %s %s %s-%s %s",
			entry.ID, lookupName(names, entry.EmployeeID), cal.FormatDate(entry.Date), entry.StartTime, entry.EndTime, status)
		if entry.Note != nil {
			line += " " + muted.Sprintf("(%s)", *entry.Note)
		}
		fmt.Fprintln(w, line)
	}
}

func lookupName(names map[string]string, id string) string {
	if name, ok := names[id]; ok {
		return name
	}
	return id + " (unknown)"
}
