package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"equipment-tracker-backend/internal/model"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all equipment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := a.client.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list equipment: %w", err)
			}
			return a.print(cmd.OutOrStdout(), records)
		},
	}
}

// inputFlags registers the four editable fields on cmd.
func inputFlags(cmd *cobra.Command, in *model.EquipmentInput) {
	cmd.Flags().StringVar(&in.Name, "name", "", "equipment name")
	cmd.Flags().StringVar(&in.Type, "type", "", "equipment type (Machine, Vessel, Tank, Mixer)")
	cmd.Flags().StringVar(&in.Status, "status", "", "status (Active, Inactive, Under Maintenance)")
	cmd.Flags().StringVar(&in.LastCleanedDate, "last-cleaned", "", "last cleaned date, e.g. 2024-01-15")
}

func newCreateCmd(a *app) *cobra.Command {
	var in model.EquipmentInput
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an equipment record",
		Example: `  equipmentctl create --name "Pump 1" --type Machine --status Active --last-cleaned 2024-01-15`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := a.client.Create(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("create equipment: %w", err)
			}
			return a.print(cmd.OutOrStdout(), []model.Equipment{item})
		},
	}
	inputFlags(cmd, &in)
	return cmd
}

func newUpdateCmd(a *app) *cobra.Command {
	var in model.EquipmentInput
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace the fields of an equipment record",
		Long:  "Update sends every field; all four must be given.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			item, err := a.client.Update(cmd.Context(), id, in)
			if err != nil {
				return fmt.Errorf("update equipment %d: %w", id, err)
			}
			return a.print(cmd.OutOrStdout(), []model.Equipment{item})
		},
	}
	inputFlags(cmd, &in)
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an equipment record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			item, err := a.client.Delete(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("delete equipment %d: %w", id, err)
			}
			return a.print(cmd.OutOrStdout(), []model.Equipment{item})
		},
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: must be a positive integer", s)
	}
	return id, nil
}

func (a *app) print(w io.Writer, records []model.Equipment) error {
	if a.v.GetBool(cfgKeyJSON) {
		out, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal equipment: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tSTATUS\tLAST CLEANED")
	for _, r := range records {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", r.ID, r.Name, r.Type, r.Status, r.LastCleanedDate)
	}
	return tw.Flush()
}
