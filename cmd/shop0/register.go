package main

import (
	"context"
	"fmt"
	"log/slog"

	go_json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/garrettladley/shop0/internal/client/shop0"
	"github.com/garrettladley/shop0/internal/config"
	"github.com/garrettladley/shop0/internal/service/webhook"
	"github.com/garrettladley/shop0/internal/xslog"
)

type webhookFlags struct {
	shop           string
	accessToken    string
	path           string
	deliveryMethod string
	topics         []string
}

func (f *webhookFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.shop, "shop", "", "shop domain, e.g. example.myshop0.com")
	cmd.Flags().StringVar(&f.accessToken, "access-token", "", "admin API access token (not needed for private apps)")
	cmd.Flags().StringVar(&f.path, "path", "/webhooks", "callback path, or the event source ARN for eventbridge delivery")
	cmd.Flags().StringVar(&f.deliveryMethod, "delivery-method", string(webhook.DeliveryMethodHTTP), "http or eventbridge")
	cmd.Flags().StringSliceVar(&f.topics, "topic", nil, "GraphQL webhook topic such as ORDERS_CREATE, repeatable")
	_ = cmd.MarkFlagRequired("shop")
	_ = cmd.MarkFlagRequired("topic")
}

func (f *webhookFlags) options(handler webhook.HandlerFunc) []webhook.RegisterOptions {
	opts := make([]webhook.RegisterOptions, 0, len(f.topics))
	for _, topic := range f.topics {
		opts = append(opts, webhook.RegisterOptions{
			Path:           f.path,
			Topic:          webhook.NormalizeTopic(topic),
			AccessToken:    f.accessToken,
			Shop:           f.shop,
			DeliveryMethod: webhook.DeliveryMethod(f.deliveryMethod),
			Handler:        handler,
		})
	}
	return opts
}

func newRegistry(cfg config.Config, logger *slog.Logger) *webhook.Registry {
	return webhook.NewRegistry(cfg,
		webhook.WithLogger(logger),
		webhook.WithClientOptions(shop0.WithLogger(logger)),
	)
}

// logDelivery is the handler used by the CLI: it records the delivery and acknowledges it.
func logDelivery(ctx context.Context, topic, shop string, body []byte) error {
	xslog.FromContext(ctx).InfoContext(ctx, "webhook delivered",
		xslog.Topic(topic),
		xslog.Shop(shop),
		slog.Int("bytes", len(body)),
	)
	return nil
}

func registerCmd() *cobra.Command {
	var flags webhookFlags

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register webhook subscriptions",
		Long:  "Creates or updates the shop's webhook subscriptions for each --topic and prints the result of every registration.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, logger, closeLog, err := readConfig()
			if err != nil {
				return err
			}
			defer closeLog()

			results, err := newRegistry(cfg, logger).RegisterAll(ctx, flags.options(logDelivery))
			if err != nil {
				return err
			}

			type output struct {
				Topic      string              `json:"topic"`
				Success    bool                `json:"success"`
				UserErrors []webhook.UserError `json:"user_errors,omitempty"`
				Result     any                 `json:"result"`
			}
			outputs := make([]output, len(results))
			for i, result := range results {
				outputs[i] = output{
					Topic:      webhook.NormalizeTopic(flags.topics[i]),
					Success:    result.Success,
					UserErrors: result.UserErrors,
					Result:     result.Result,
				}
			}

			out, err := go_json.MarshalIndent(outputs, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode results: %w", err)
			}
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), string(out)); err != nil {
				return err
			}

			for _, result := range results {
				if !result.Success {
					return fmt.Errorf("one or more webhook registrations were rejected")
				}
			}
			return nil
		},
	}
	flags.register(cmd)

	return cmd
}
