package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var notificationAll bool

var notificationCmd = &cobra.Command{
	Use:     "notification",
	Aliases: []string{"notifications"},
	Short:   "View and clear notifications",
	Long: `List notifications of the authenticated user and mark them as read.

Examples:
  ghops notification list
  ghops notification list --all
  ghops notification read`,
}

var notificationListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notifications",
	RunE:  runNotificationList,
}

var notificationReadCmd = &cobra.Command{
	Use:   "read",
	Short: "Mark all notifications as read",
	RunE:  runNotificationRead,
}

func init() {
	notificationListCmd.Flags().BoolVarP(&notificationAll, "all", "a", false, "Include notifications already marked as read")

	notificationCmd.AddCommand(notificationListCmd)
	notificationCmd.AddCommand(notificationReadCmd)
	rootCmd.AddCommand(notificationCmd)
}

func runNotificationList(cmd *cobra.Command, args []string) error {
	client, err := ensureClient()
	if err != nil {
		return err
	}

	notifications, err := client.ListNotifications(cmd.Context(), notificationAll)
	if err != nil {
		return fmt.Errorf("failed to list notifications: %w", err)
	}

	if len(notifications) == 0 {
		fmt.Println("No notifications")
		return nil
	}

	for _, notification := range notifications {
		fmt.Printf("%s  %s %s\n",
			notification.GetRepository().GetFullName(),
			notification.GetSubject().GetTitle(),
			mutedStyle.Render("("+notification.GetReason()+")"))
	}
	fmt.Printf("\n%d notifications\n", len(notifications))

	return nil
}

func runNotificationRead(cmd *cobra.Command, args []string) error {
	client, err := ensureClient()
	if err != nil {
		return err
	}

	if err := client.MarkNotificationsRead(cmd.Context()); err != nil {
		return fmt.Errorf("failed to mark notifications as read: %w", err)
	}

	fmt.Println(successStyle.Render("All notifications marked as read"))

	return nil
}
