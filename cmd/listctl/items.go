package main

import (
	"github.com/spf13/cobra"
)

func init() {
	itemsCmd := &cobra.Command{Use: "items", Short: "Item operations"}

	listCmd := &cobra.Command{
		Use:   "list LIST_ID",
		Short: "Show the items of a list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newClient().R().Get("/api/lists/" + args[0] + "/items")
			return printResult(resp, err)
		},
	}
	itemsCmd.AddCommand(listCmd)

	addCmd := &cobra.Command{
		Use:   "add LIST_ID CONTENT",
		Short: "Add an item to a list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]string{"content": args[1]}
			resp, err := newClient().R().SetBody(payload).Post("/api/lists/" + args[0] + "/items")
			return printResult(resp, err)
		},
	}
	itemsCmd.AddCommand(addCmd)

	var unset bool
	checkCmd := &cobra.Command{
		Use:   "check LIST_ID ITEM_ID",
		Short: "Check an item off (or uncheck with --unset)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]bool{"checked": !unset}
			resp, err := newClient().R().SetBody(payload).Patch("/api/lists/" + args[0] + "/items/" + args[1])
			return printResult(resp, err)
		},
	}
	checkCmd.Flags().BoolVar(&unset, "unset", false, "Uncheck instead of check")
	itemsCmd.AddCommand(checkCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete LIST_ID ITEM_ID",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newClient().R().Delete("/api/lists/" + args[0] + "/items/" + args[1])
			return printResult(resp, err)
		},
	}
	itemsCmd.AddCommand(deleteCmd)

	rootCmd.AddCommand(itemsCmd)
}
