package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dhruv0767/Lab-Equipments-Reservation/internal/model"
	"github.com/dhruv0767/Lab-Equipments-Reservation/internal/repository"
	"github.com/dhruv0767/Lab-Equipments-Reservation/internal/utils"
)

func newUserCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage login accounts",
	}
	cmd.AddCommand(newUserAddCmd(e), newUserListCmd(e), newUserActiveCmd(e, "disable", false), newUserActiveCmd(e, "enable", true))
	return cmd
}

func newUserAddCmd(e *env) *cobra.Command {
	var username, name, role, password string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = os.Getenv("LABCTL_PASSWORD")
			}
			r, err := parseRoleFlag(role)
			if err != nil {
				return err
			}
			if strings.TrimSpace(username) == "" || strings.TrimSpace(name) == "" {
				return errors.New("--username and --name are required")
			}
			if err := utils.CheckPassword(password); err != nil {
				return err
			}
			db, err := e.database()
			if err != nil {
				return err
			}
			id, err := repository.NewUserRepo(db).Create(cmd.Context(), username, name, password, r, e.config().BcryptCost)
			if errors.Is(err, repository.ErrUsernameExists) {
				return fmt.Errorf("username %q is taken", username)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created user %d (%s, %s)\n", id, username, r)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "Login name")
	cmd.Flags().StringVar(&name, "name", "", "Display name shown on reservations")
	cmd.Flags().StringVar(&role, "role", string(model.RoleUser), "USER, LECTURER or ADMIN")
	cmd.Flags().StringVar(&password, "password", "", "Password (defaults to $LABCTL_PASSWORD)")
	return cmd
}

// parseRoleFlag rejects unknown roles instead of silently downgrading them.
func parseRoleFlag(s string) (model.Role, error) {
	r := model.Role(strings.ToUpper(strings.TrimSpace(s)))
	switch r {
	case model.RoleUser, model.RoleLecturer, model.RoleAdmin:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func newUserListCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := e.database()
			if err != nil {
				return err
			}
			users, err := repository.NewUserRepo(db).List(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tUSERNAME\tNAME\tROLE\tACTIVE")
			for _, u := range users {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%t\n", u.ID, u.Username, u.Name, u.Role, u.IsActive)
			}
			return w.Flush()
		},
	}
}

func newUserActiveCmd(e *env, verb string, active bool) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " <username>",
		Short: strings.ToUpper(verb[:1]) + verb[1:] + " an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := e.database()
			if err != nil {
				return err
			}
			users := repository.NewUserRepo(db)
			if err := users.SetActive(cmd.Context(), args[0], active); err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return fmt.Errorf("no user %q", args[0])
				}
				return err
			}
			if !active {
				u, err := users.GetByUsername(cmd.Context(), args[0])
				if err == nil {
					_ = repository.NewTokenRepo(db).RevokeAllForUser(cmd.Context(), u.ID)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%sd %s\n", verb, args[0])
			return nil
		},
	}
}
