package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cid-docencia/wa-responder/internal/conf"
)

var sendCmd = &cobra.Command{
	Use:   "send <phone> <message>",
	Short: "Send a one-off text message",
	Long:  "Sends a text message with the stored phone number id and access token, and records it in the sender's chat history.",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(conf.LoadFromEnv())
		if err != nil {
			return err
		}
		defer a.Close()

		phone := args[0]
		message := strings.Join(args[1:], " ")
		if err := a.usecases.Messaging.SendManual(cmd.Context(), phone, message); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Message sent to %s\n", phone)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)
}
