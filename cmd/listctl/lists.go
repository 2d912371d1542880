package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

func init() {
	listsCmd := &cobra.Command{Use: "lists", Short: "List operations"}

	overviewCmd := &cobra.Command{
		Use:   "overview",
		Short: "Show personal, shared and template lists",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newClient().R().Get("/api/lists")
			return printResult(resp, err)
		},
	}
	listsCmd.AddCommand(overviewCmd)

	var name string
	var shared bool
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a list",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{"name": name, "shared": shared}
			resp, err := newClient().R().SetBody(payload).Post("/api/lists")
			return printResult(resp, err)
		},
	}
	createCmd.Flags().StringVarP(&name, "name", "n", "", "List name (required)")
	createCmd.Flags().BoolVarP(&shared, "shared", "s", false, "Share with every user")
	_ = createCmd.MarkFlagRequired("name")
	listsCmd.AddCommand(createCmd)

	getCmd := &cobra.Command{
		Use:   "get LIST_ID",
		Short: "Show a list with its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newClient().R().Get("/api/lists/" + args[0])
			return printResult(resp, err)
		},
	}
	listsCmd.AddCommand(getCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete LIST_ID",
		Short: "Delete a list with all its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newClient().R().Delete("/api/lists/" + args[0])
			return printResult(resp, err)
		},
	}
	listsCmd.AddCommand(deleteCmd)

	favoriteCmd := &cobra.Command{
		Use:   "favorite LIST_ID",
		Short: "Toggle the favorite flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newClient().R().Post("/api/lists/" + args[0] + "/favorite")
			return printResult(resp, err)
		},
	}
	listsCmd.AddCommand(favoriteCmd)

	publicCmd := &cobra.Command{
		Use:   "public LIST_ID",
		Short: "Toggle public visibility; copies the share link to the clipboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newClient().R().Post("/api/lists/" + args[0] + "/public")
			if err := printResult(resp, err); err != nil {
				return err
			}
			var out struct {
				ShareURL string `json:"shareUrl"`
			}
			if err := json.Unmarshal(resp.Body(), &out); err == nil && out.ShareURL != "" {
				if err := clipboard.WriteAll(out.ShareURL); err == nil {
					_, _ = fmt.Fprintln(os.Stderr, "share link copied to clipboard")
				}
			}
			return nil
		},
	}
	listsCmd.AddCommand(publicCmd)

	shareCmd := &cobra.Command{
		Use:   "share LIST_ID",
		Short: "Toggle sharing with every registered user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newClient().R().Post("/api/lists/" + args[0] + "/share")
			return printResult(resp, err)
		},
	}
	listsCmd.AddCommand(shareCmd)

	templateCmd := &cobra.Command{
		Use:   "template LIST_ID",
		Short: "Save a list as a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newClient().R().Post("/api/lists/" + args[0] + "/template")
			return printResult(resp, err)
		},
	}
	listsCmd.AddCommand(templateCmd)

	var cloneName string
	useCmd := &cobra.Command{
		Use:   "use TEMPLATE_ID",
		Short: "Create a new list from a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]string{"name": cloneName}
			resp, err := newClient().R().SetBody(payload).Post("/api/lists/" + args[0] + "/use")
			return printResult(resp, err)
		},
	}
	useCmd.Flags().StringVarP(&cloneName, "name", "n", "", "Name for the new list (defaults to '<template> (copy)')")
	listsCmd.AddCommand(useCmd)

	viewCmd := &cobra.Command{
		Use:   "view LIST_ID",
		Short: "Show the public read-only view of a list",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newClient().R().Get("/api/view/" + args[0])
			return printResult(resp, err)
		},
		Args: cobra.ExactArgs(1),
	}
	listsCmd.AddCommand(viewCmd)

	rootCmd.AddCommand(listsCmd)
}
