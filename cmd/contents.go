package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"vitrine/internal/shared"
	"vitrine/internal/store"
)

func contentsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "contents",
		Usage: "Manage shared content items",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Add a content item; a unique slug is derived from the title",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "title",
						Usage:    "Title",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "description",
						Aliases:  []string{"d"},
						Usage:    "Description",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "category",
						Usage:    "Category: Flying, Automatic or Manual",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "image",
						Usage:    "Stored image reference",
						Required: true,
					},
					&cli.Int64Flag{
						Name:     "owner",
						Usage:    "Owning user ID",
						Required: true,
					},
				},
				Action: r.ContentsAdd,
			},
			{
				Name:      "get",
				Usage:     "Show a content item by slug",
				Arguments: []cli.Argument{&cli.StringArg{Name: "slug"}},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.ContentsGet,
			},
			{
				Name:  "list",
				Usage: "List content items with like counts, filtered and sorted",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "category",
						Usage: "Only this category",
					},
					&cli.Int64Flag{
						Name:  "owner",
						Usage: "Only this owner ID",
					},
					&cli.StringFlag{
						Name:  "sort",
						Usage: "Sort order: newest or likes",
						Value: store.SortNewest,
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
				Action: r.ContentsList,
			},
			{
				Name:  "update",
				Usage: "Update a content item; the slug never changes",
				Flags: []cli.Flag{
					&cli.Int64Flag{
						Name:     "id",
						Usage:    "Content ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "title",
						Usage:    "New title",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "description",
						Aliases:  []string{"d"},
						Usage:    "New description",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "category",
						Usage:    "New category",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "image",
						Usage: "New image reference (omit to keep the current one)",
					},
				},
				Action: r.ContentsUpdate,
			},
			{
				Name:  "rm",
				Usage: "Delete a content item and its likes and favorites",
				Flags: []cli.Flag{
					&cli.Int64Flag{
						Name:     "id",
						Usage:    "Content ID",
						Required: true,
					},
				},
				Action: r.ContentsDelete,
			},
		},
	}
}

func (r *Runner) ContentsAdd(ctx context.Context, cmd *cli.Command) error {
	category := cmd.String("category")
	if !store.ValidCategory(category) {
		return fmt.Errorf("%w: category must be Flying, Automatic or Manual", shared.ErrInvalidArgument)
	}

	s, err := r.openStore()
	if err != nil {
		return err
	}
	defer r.closeStore(s)

	id, err := s.Contents.Insert(store.NewContent{
		Title:       cmd.String("title"),
		Description: cmd.String("description"),
		Category:    category,
		ImagePath:   cmd.String("image"),
		OwnerID:     cmd.Int64("owner"),
	})
	if errors.Is(err, shared.ErrConstraint) {
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to add content: %w", err)
	}

	item, err := s.Contents.GetByID(id)
	if err != nil {
		return err
	}

	r.logger.Info("content added", "id", id, "slug", item.Slug)
	return nil
}

func (r *Runner) ContentsGet(ctx context.Context, cmd *cli.Command) error {
	slug := cmd.StringArg("slug")
	if slug == "" {
		return fmt.Errorf("%w: slug", shared.ErrMissingArgument)
	}

	s, err := r.openStore()
	if err != nil {
		return err
	}
	defer r.closeStore(s)

	item, err := s.Contents.GetBySlug(slug)
	if err != nil {
		return fmt.Errorf("failed to get content: %w", err)
	}
	if item == nil {
		return fmt.Errorf("%w: no content with slug %q", shared.ErrInvalidArgument, slug)
	}

	return r.writeJSON(item, cmd.Bool("pretty"))
}

func (r *Runner) ContentsList(ctx context.Context, cmd *cli.Command) error {
	category := cmd.String("category")
	if category != "" && !store.ValidCategory(category) {
		return fmt.Errorf("%w: category must be Flying, Automatic or Manual", shared.ErrInvalidArgument)
	}
	sort := cmd.String("sort")
	if sort != store.SortNewest && sort != store.SortLikes {
		return fmt.Errorf("%w: sort must be newest or likes", shared.ErrInvalidArgument)
	}

	s, err := r.openStore()
	if err != nil {
		return err
	}
	defer r.closeStore(s)

	items, err := s.Contents.ListFiltered(store.Filter{
		Category: category,
		OwnerID:  cmd.Int64("owner"),
		Sort:     sort,
	})
	if err != nil {
		return fmt.Errorf("failed to list contents: %w", err)
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
			faintStyle.Render(fmt.Sprintf("%s  by %s  ♥ %d  /%s", item.Category, owner, item.LikeCount, item.Slug)))
	}
	return nil
}

func (r *Runner) ContentsUpdate(ctx context.Context, cmd *cli.Command) error {
	category := cmd.String("category")
	if !store.ValidCategory(category) {
		return fmt.Errorf("%w: category must be Flying, Automatic or Manual", shared.ErrInvalidArgument)
	}

	s, err := r.openStore()
	if err != nil {
		return err
	}
	defer r.closeStore(s)

	changed, err := s.Contents.Update(cmd.Int64("id"), store.ContentUpdate{
		Title:       cmd.String("title"),
		Description: cmd.String("description"),
		Category:    category,
		ImagePath:   cmd.String("image"),
	})
	if err != nil {
		return fmt.Errorf("failed to update content: %w", err)
	}
	if changed == 0 {
		return fmt.Errorf("%w: no content with id %d", shared.ErrInvalidArgument, cmd.Int64("id"))
	}

	r.logger.Info("content updated", "id", cmd.Int64("id"))
	return nil
}

func (r *Runner) ContentsDelete(ctx context.Context, cmd *cli.Command) error {
	s, err := r.openStore()
	if err != nil {
		return err
	}
	defer r.closeStore(s)

	changed, err := s.Contents.Delete(cmd.Int64("id"))
	if err != nil {
		return fmt.Errorf("failed to delete content: %w", err)
	}
	if changed == 0 {
		return fmt.Errorf("%w: no content with id %d", shared.ErrInvalidArgument, cmd.Int64("id"))
	}

	r.logger.Info("content deleted", "id", cmd.Int64("id"))
	return nil
}
