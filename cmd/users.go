package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"
	"golang.org/x/crypto/bcrypt"

	"vitrine/internal/shared"
	"vitrine/internal/store"
)

func usersCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "users",
		Usage: "Manage user accounts",
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Register a user with email and password",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Usage:    "Display name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "email",
						Usage:    "Email address (unique, case-insensitive)",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Usage:    "Password (stored as a bcrypt hash)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "role",
						Usage: "Role: admin, editor or user",
						Value: store.RoleUser,
					},
				},
				Action: r.UsersCreate,
			},
			{
				Name:  "list",
				Usage: "List all users",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.UsersList,
			},
			{
				Name:   "authors",
				Usage:  "List (id, name) author pairs for filter dropdowns",
				Action: r.UsersAuthors,
			},
		},
	}
}

// UsersCreate hashes the password at this boundary so the persistence core
// only ever sees the hash.
func (r *Runner) UsersCreate(ctx context.Context, cmd *cli.Command) error {
	role := cmd.String("role")
	if !store.ValidRole(role) {
		return fmt.Errorf("%w: role must be admin, editor or user", shared.ErrInvalidArgument)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.String("password")), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	s, err := r.openStore()
	if err != nil {
		return err
	}
	defer r.closeStore(s)

	id, err := s.Users.Create(store.NewUser{
		Name:         cmd.String("name"),
		Email:        cmd.String("email"),
		PasswordHash: string(hash),
		Role:         role,
	})
	if errors.Is(err, shared.ErrConstraint) {
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	r.logger.Info("user created", "id", id, "email", cmd.String("email"), "role", role)
	return nil
}

func (r *Runner) UsersList(ctx context.Context, cmd *cli.Command) error {
	s, err := r.openStore()
	if err != nil {
		return err
	}
	defer r.closeStore(s)

	users, err := s.Users.ListAll()
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(users, cmd.Bool("pretty"))
	}

	for _, u := range users {
		email := u.Email
		if email == "" {
			email = "-"
		}
		r.writeLine("%4d  %s  %s", u.ID, titleStyle.Render(u.Name), faintStyle.Render(fmt.Sprintf("%s  %s", u.Role, email)))
	}
	return nil
}

func (r *Runner) UsersAuthors(ctx context.Context, cmd *cli.Command) error {
	s, err := r.openStore()
	if err != nil {
		return err
	}
	defer r.closeStore(s)

	authors, err := s.Users.ListAuthors()
	if err != nil {
		return fmt.Errorf("failed to list authors: %w", err)
	}

	for _, a := range authors {
		r.writeLine("%4d  %s", a.ID, a.Name)
	}
	return nil
}
