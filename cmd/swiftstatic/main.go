package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/swiftstatic/swiftstatic/internal/client"
	"github.com/swiftstatic/swiftstatic/internal/version"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "swiftstatic",
	Short: "SwiftStatic CLI - submit site forms and check mail delivery",
	Long: `SwiftStatic CLI sends booking and contact forms to a SwiftStatic server the
same way the website does. When the server cannot confirm delivery the
message is handed to your mail client instead.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		if !asJSON {
			fmt.Fprintln(cmd.OutOrStdout(), version.Info())
			return nil
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(version.GetBuildInfo())
	},
}

func init() {
	rootCmd.PersistentFlags().String("url", "http://localhost:3000", "Base URL of the SwiftStatic server")
	rootCmd.PersistentFlags().String("mailto", client.DefaultMailto, "Address used for the mailto: fallback")
	rootCmd.PersistentFlags().String("site", client.DefaultSite, "Site name used in fallback subjects")
	rootCmd.PersistentFlags().Duration("timeout", 15*time.Second, "Request timeout")

	versionCmd.Flags().Bool("json", false, "Print build information as JSON")

	rootCmd.AddCommand(bookCmd)
	rootCmd.AddCommand(contactCmd)
	rootCmd.AddCommand(verifyMailCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
