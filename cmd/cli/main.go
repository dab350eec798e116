// Command cli is a small terminal client for the wardrobe API. It wraps
// the client package: login stores the access token locally and every
// later command sends it automatically.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dkowalski/wardrobe-api/internal/client"
)

const defaultAPIURL = "http://localhost:8080"

// apiURL returns the base URL for the wardrobe API. It can be overridden
// with the WARDROBE_API_URL environment variable.
func apiURL() string {
	if v := os.Getenv("WARDROBE_API_URL"); v != "" {
		return v
	}
	return defaultAPIURL
}

func newClient() (*client.Client, error) {
	return client.New(apiURL(), client.DefaultTokenStore())
}

func main() {
	root := &cobra.Command{
		Use:           "wardrobe",
		Short:         "Manage your wardrobe from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(registerCmd(), loginCmd(), logoutCmd(), meCmd(), itemsCmd())

	if err := root.Execute(); err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			fmt.Fprintln(os.Stderr, "not logged in (or session expired); run `wardrobe login`")
		} else {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func registerCmd() *cobra.Command {
	var name, email, password string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			u, err := c.Register(context.Background(), name, email, password)
			if err != nil {
				return err
			}
			fmt.Printf("registered %s <%s> (id %d); run `wardrobe login` to sign in\n", u.Name, u.Email, u.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the access token locally",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			u, err := c.Login(context.Background(), email, password)
			if err != nil {
				return err
			}
			fmt.Printf("logged in as %s <%s>\n", u.Name, u.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			if err := c.Logout(); err != nil {
				return err
			}
			fmt.Println("logged out")
			return nil
		},
	}
}

func meCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the identity behind the stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			id, err := c.Me(context.Background())
			if err != nil {
				return err
			}
			fmt.Printf("user id %d\n", id)
			return nil
		},
	}
}

func itemsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Manage clothing items",
	}
	cmd.AddCommand(itemsListCmd(), itemsAddCmd(), itemsRmCmd())
	return cmd
}

func itemsListCmd() *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your clothing items",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			items, err := c.ListItems(context.Background(), category)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tCOLOR\tBRAND")
			for _, it := range items {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", it.ID, it.Name, it.Category, it.Color, it.Brand)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "filter by category (SHIRT, PANTS, SHOES, JACKET, ACCESSORY, OTHER)")
	return cmd
}

func itemsAddCmd() *cobra.Command {
	var in client.ItemInput
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a clothing item",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			it, err := c.CreateItem(context.Background(), in)
			if err != nil {
				return err
			}
			fmt.Printf("added %s (id %d)\n", it.Name, it.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "item name")
	cmd.Flags().StringVar(&in.Category, "category", "", "category (SHIRT, PANTS, SHOES, JACKET, ACCESSORY, OTHER)")
	cmd.Flags().StringVar(&in.Color, "color", "", "color")
	cmd.Flags().StringVar(&in.Brand, "brand", "", "brand (optional)")
	cmd.Flags().StringVar(&in.ImageURL, "image-url", "", "image URL (optional)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("color")
	return cmd
}

func itemsRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a clothing item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var id uint64
			if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			c, err := newClient()
			if err != nil {
				return err
			}
			if err := c.DeleteItem(context.Background(), id); err != nil {
				return err
			}
			fmt.Println("deleted")
			return nil
		},
	}
}
