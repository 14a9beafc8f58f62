package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"freelancebook/internal/domain"
)

// ClientCommand handles the client subcommands
type ClientCommand struct {
	root         *RootCommand
	errorHandler *ErrorHandler
}

func newClientCmd(r *RootCommand) *cobra.Command {
	handler := &ClientCommand{
		root:         r,
		errorHandler: NewErrorHandler(),
	}

	clientCmd := &cobra.Command{
		Use:   "client",
		Short: "Manage clients",
	}

	addCmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a client",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			client := domain.Client{Name: strings.Join(args, " ")}
			client.ContactName, _ = cmd.Flags().GetString("contact")
			client.Email, _ = cmd.Flags().GetString("email")
			client.Phone, _ = cmd.Flags().GetString("phone")
			client.Address, _ = cmd.Flags().GetString("address")

			return handler.add(ctx, client)
		},
	}
	addCmd.Flags().String("contact", "", "Contact person name")
	addCmd.Flags().String("email", "", "Contact email")
	addCmd.Flags().String("phone", "", "Contact phone")
	addCmd.Flags().String("address", "", "Billing address")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List clients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()
			return handler.list(ctx)
		},
	}

	clientCmd.AddCommand(addCmd, listCmd)
	return clientCmd
}

func (c *ClientCommand) add(ctx context.Context, client domain.Client) error {
	created, err := c.root.app.services.Clients.Create(ctx, client)
	if err != nil {
		return c.errorHandler.Handle("add client", err)
	}
	fmt.Printf("Added client #%d: %s\n", created.ID, created.Name)
	return nil
}

func (c *ClientCommand) list(ctx context.Context) error {
	clients, err := c.root.app.services.Clients.List(ctx)
	if err != nil {
		return c.errorHandler.Handle("list clients", err)
	}
	fmt.Print(c.root.renderer().ClientTable(clients))
	return nil
}

// CategoryCommand handles the category subcommands
type CategoryCommand struct {
	root         *RootCommand
	errorHandler *ErrorHandler
}

func newCategoryCmd(r *RootCommand) *cobra.Command {
	handler := &CategoryCommand{
		root:         r,
		errorHandler: NewErrorHandler(),
	}

	categoryCmd := &cobra.Command{
		Use:   "category",
		Short: "Manage work categories",
		Long:  "List the work categories or add a new one. A default set is seeded on first run.",
	}

	addCmd := &cobra.Command{
		Use:   "add [id] [name]",
		Short: "Add a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			category := domain.Category{ID: args[0], Name: args[1]}
			category.Color, _ = cmd.Flags().GetString("color")
			return handler.add(ctx, category)
		},
	}
	addCmd.Flags().String("color", "", "Display color as a hex value, e.g. #4CAF50")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()
			return handler.list(ctx)
		},
	}

	categoryCmd.AddCommand(addCmd, listCmd)
	return categoryCmd
}

func (c *CategoryCommand) add(ctx context.Context, category domain.Category) error {
	created, err := c.root.app.services.Categories.Add(ctx, category)
	if err != nil {
		return c.errorHandler.Handle("add category", err)
	}
	fmt.Printf("Added category %s: %s\n", created.ID, created.Name)
	return nil
}

func (c *CategoryCommand) list(ctx context.Context) error {
	categories, err := c.root.app.services.Categories.List(ctx)
	if err != nil {
		return c.errorHandler.Handle("list categories", err)
	}
	fmt.Print(c.root.renderer().CategoryList(categories))
	return nil
}
