package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/vmadmin/cmd/app/commands"
	"github.com/allisson/vmadmin/internal/app"
	"github.com/allisson/vmadmin/internal/config"
)

func getWebhookCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "set-webhook-config",
			Usage: "Replace the webhook configuration",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "config",
					Aliases:  []string{"c"},
					Required: true,
					Usage:    "JSON configuration document, or '-' to read it from stdin",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				configUseCase, err := container.WebhookConfigUseCase()
				if err != nil {
					return err
				}

				return commands.RunSetWebhookConfig(
					ctx,
					configUseCase,
					container.Logger(),
					cmd.String("config"),
					commands.DefaultIO(),
				)
			},
		},
		{
			Name:  "show-webhook-config",
			Usage: "Print the webhook configuration with credentials redacted",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				configUseCase, err := container.WebhookConfigUseCase()
				if err != nil {
					return err
				}

				return commands.RunShowWebhookConfig(ctx, configUseCase, container.Logger(), commands.DefaultIO())
			},
		},
	}
}
