// cmd/tools/matchctl/registry.go
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"matching-workers/pkg/registry"
)

func registryCmd(a *app) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Inspect and maintain the activity registry",
	}
	cmd.PersistentFlags().StringVar(&path, "path", "", "Registry file (default: the embedded registry)")

	load := func() (*registry.ActivityRegistry, error) {
		if path == "" {
			return registry.Default(), nil
		}
		return registry.LoadRegistry(path)
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Check ids, task types, timeouts and schemas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := load()
			if err != nil {
				return err
			}
			if errs := reg.Validate(); len(errs) > 0 {
				for _, e := range errs {
					fmt.Fprintln(cmd.ErrOrStderr(), e)
				}
				return fmt.Errorf("registry validation failed with %d problems", len(errs))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registry validation passed. Found %d activities.\n", len(reg.Activities))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List task types with timeout and retries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := load()
			if err != nil {
				return err
			}
			for _, act := range reg.Activities {
				fmt.Fprintf(cmd.OutOrStdout(), "%-28s %-30s timeout=%s retries=%d\n", act.TaskType, act.ID, act.Timeout, act.Retries)
			}
			return nil
		},
	})

	var id, field, value string
	set := &cobra.Command{
		Use:   "set",
		Short: "Update one field of an activity and save the file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				return errors.New("--path is required for set")
			}
			reg, err := load()
			if err != nil {
				return err
			}
			if err := reg.SetField(id, field, value); err != nil {
				return err
			}
			if errs := reg.Validate(); len(errs) > 0 {
				return fmt.Errorf("update leaves registry invalid: %w", errors.Join(errs...))
			}
			if err := reg.Save(path); err != nil {
				return err
			}
			a.logger.Info("registry updated", map[string]interface{}{"id": id, "field": field})
			fmt.Fprintf(cmd.OutOrStdout(), "Updated activity %s, field %s to %s\n", id, field, value)
			return nil
		},
	}
	set.Flags().StringVar(&id, "id", "", "Activity id")
	set.Flags().StringVar(&field, "field", "", "Field to update (version, displayName, description, category, taskType, timeout, retries)")
	set.Flags().StringVar(&value, "value", "", "New value")
	_ = set.MarkFlagRequired("id")
	_ = set.MarkFlagRequired("field")
	_ = set.MarkFlagRequired("value")
	cmd.AddCommand(set)
	cmd.AddCommand(scaffoldCmd(load))

	return cmd
}
