package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

func engageCommand(r *Runner) *cli.Command {
	userFlag := &cli.Int64Flag{
		Name:     "user",
		Usage:    "User ID",
		Required: true,
	}
	contentFlag := &cli.Int64Flag{
		Name:     "content",
		Usage:    "Content ID",
		Required: true,
	}

	return &cli.Command{
		Name:  "engage",
		Usage: "Toggle likes and favorites",
		Commands: []*cli.Command{
			{
				Name:   "like",
				Usage:  "Toggle a like and print the new state and count",
				Flags:  []cli.Flag{userFlag, contentFlag},
				Action: r.LikeToggle,
			},
			{
				Name:   "fav",
				Usage:  "Toggle a favorite and print the new state",
				Flags:  []cli.Flag{userFlag, contentFlag},
				Action: r.FavoriteToggle,
			},
			{
				Name:  "favorites",
				Usage: "List a user's favorites, most recently saved first",
				Flags: []cli.Flag{
					&cli.Int64Flag{
						Name:     "user",
						Usage:    "User ID",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.FavoritesList,
			},
		},
	}
}

func (r *Runner) LikeToggle(ctx context.Context, cmd *cli.Command) error {
	s, err := r.openStore()
	if err != nil {
		return err
	}
	defer r.closeStore(s)

	state, err := s.Likes.Toggle(cmd.Int64("user"), cmd.Int64("content"))
	if err != nil {
		return fmt.Errorf("failed to toggle like: %w", err)
	}

	return r.writeJSON(state, false)
}

func (r *Runner) FavoriteToggle(ctx context.Context, cmd *cli.Command) error {
	s, err := r.openStore()
	if err != nil {
		return err
	}
	defer r.closeStore(s)

	active, err := s.Favorites.Toggle(cmd.Int64("user"), cmd.Int64("content"))
	if err != nil {
		return fmt.Errorf("failed to toggle favorite: %w", err)
	}

	return r.writeJSON(map[string]bool{"active": active}, false)
}

func (r *Runner) FavoritesList(ctx context.Context, cmd *cli.Command) error {
	s, err := r.openStore()
	if err != nil {
		return err
	}
	defer r.closeStore(s)

	items, err := s.Favorites.ListOfUser(cmd.Int64("user"))
	if err != nil {
		return fmt.Errorf("failed to list favorites: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(items, cmd.Bool("pretty"))
	}

	for _, item := range items {
		owner := item.OwnerName
		if owner == "" {
			owner = "-"
		}
		r.writeLine("%4d  %s  %s", item.ID, titleStyle.Render(item.Title),
			faintStyle.Render(fmt.Sprintf("%s  by %s  /%s", item.Category, owner, item.Slug)))
	}
	return nil
}
