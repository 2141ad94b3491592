package main

import (
	"github.com/spf13/cobra"

	"digital-presence/platform-backend/internal/governance"
)

func (a *app) governanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "governance",
		Short: "Query the governance catalog",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "roles",
			Short: "List all governance roles",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return printJSON(cmd.OutOrStdout(), a.catalog.Roles())
			},
		},
		&cobra.Command{
			Use:   "role <role-id>",
			Short: "Show a governance role",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				role, ok := a.catalog.RoleByID(args[0])
				if !ok {
					return codeError(exitNotFound, "role %q not found", args[0])
				}
				return printJSON(cmd.OutOrStdout(), role)
			},
		},
		&cobra.Command{
			Use:   "steps <role-id>",
			Short: "List onboarding steps required for a role, in order",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if _, ok := a.catalog.RoleByID(args[0]); !ok {
					return codeError(exitNotFound, "role %q not found", args[0])
				}
				return printJSON(cmd.OutOrStdout(), a.catalog.StepsForRole(args[0]))
			},
		},
		&cobra.Command{
			Use:   "level <scope>",
			Short: "Show the governance level for a scope",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				scope, err := governance.ParseScope(args[0])
				if err != nil {
					return codeError(exitUsage, "%s", err)
				}
				level, ok := a.catalog.LevelByScope(scope)
				if !ok {
					return codeError(exitNotFound, "no governance level for scope %q", scope)
				}
				return printJSON(cmd.OutOrStdout(), level)
			},
		},
		&cobra.Command{
			Use:   "can-vote <role-id>",
			Short: "Report whether a role can vote",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return printJSON(cmd.OutOrStdout(), map[string]any{
					"roleId":  args[0],
					"canVote": a.catalog.CanUserVote(args[0]),
				})
			},
		},
		&cobra.Command{
			Use:   "approvers <level-id>",
			Short: "List the roles that decide at a governance level",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if _, ok := a.catalog.LevelByID(args[0]); !ok {
					return codeError(exitNotFound, "governance level %q not found", args[0])
				}
				return printJSON(cmd.OutOrStdout(), a.catalog.RequiredApprovers(args[0]))
			},
		},
	)
	return cmd
}
