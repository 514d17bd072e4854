package main

import (
	"fmt"
	"io"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/garrettladley/shop0/internal/config"
	"github.com/garrettladley/shop0/internal/signature"
)

func signCmd() *cobra.Command {
	var (
		secret string
		query  string
	)

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Compute shop0 HMAC signatures",
		Long: `Prints the base64 X-Shop0-Hmac-Sha256 signature of stdin, as shop0 signs webhook bodies.
With --query, prints the hex hmac of an OAuth callback query string instead (its hmac parameter is ignored).
The secret defaults to SHOP0_API_SECRET_KEY.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				cfg, err := config.Read()
				if err != nil {
					return fmt.Errorf("no --secret given and failed to read config: %w", err)
				}
				secret = cfg.APISecretKey
			}

			if cmd.Flags().Changed("query") {
				values, err := url.ParseQuery(query)
				if err != nil {
					return fmt.Errorf("failed to parse query: %w", err)
				}
				params := make(map[string]string, len(values))
				for key := range values {
					if key != "hmac" {
						params[key] = values.Get(key)
					}
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), signature.Sign(secret, signature.Canonicalize(params)))
				return err
			}

			body, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), signature.SignBase64(secret, body))
			return err
		},
	}

	cmd.Flags().StringVar(&secret, "secret", "", "API secret key")
	cmd.Flags().StringVar(&query, "query", "", "OAuth callback query string to sign")

	return cmd
}
