package cmd

import (
	"github.com/perchapp/cli/pkg/service"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "User profile commands",
	Long:  "View and manage user profiles",
}

var profileViewCmd = &cobra.Command{
	Use:   "view [username]",
	Short: "View a user profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		username := ""
		if len(args) > 0 {
			username = args[0]
		}
		svc := service.NewProfileService()
		return svc.ViewProfile(username)
	},
}

var profileStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show your activity summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := service.NewProfileService()
		return svc.ViewStats()
	},
}

var profileSetImageCmd = &cobra.Command{
	Use:   "set-image <filepath>",
	Short: "Upload a new profile image",
	Long: `Upload a local image file as your profile image.

The file must be an image and at most 2 MiB. On success the stored
image's public URL is printed and cached profile views are refreshed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := service.NewProfileService()
		return svc.SetProfileImage(args[0])
	},
}

func init() {
	profileCmd.AddCommand(profileViewCmd)
	profileCmd.AddCommand(profileStatsCmd)
	profileCmd.AddCommand(profileSetImageCmd)
}
