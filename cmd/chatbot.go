package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"gateway/internal/config"
	"gateway/pkg/chatbotapi"
)

// chatbotCommand groups calls to the legacy chatbot backend.
func chatbotCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chatbot",
		Short: "Talks to the legacy chatbot backend",
	}
	cmd.AddCommand(postEventCommand(cfg))

	return cmd
}

// postEventCommand posts a JSON payload to a chatbot endpoint and prints the
// decoded answer.
func postEventCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "post-event <endpoint>",
		Short: "Posts a JSON event to the chatbot API",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, _ := cmd.Flags().GetString("payload")

			payload := map[string]any{}
			if err := json.Unmarshal([]byte(raw), &payload); err != nil {
				return fmt.Errorf("payload must be a JSON object: %w", err)
			}

			client, err := chatbotapi.New(chatbotapi.NewOptions(cfg))
			if err != nil {
				return err
			}

			answer, err := client.PostEvent(cmd.Context(), args[0], payload)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			enc.SetEscapeHTML(false)

			return enc.Encode(answer)
		},
	}

	cmd.Flags().String("payload", "{}", "JSON object to post")

	return cmd
}
