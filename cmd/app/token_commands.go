package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/vmadmin/cmd/app/commands"
	"github.com/allisson/vmadmin/internal/app"
	"github.com/allisson/vmadmin/internal/config"
)

func getTokenCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-token",
			Usage: "Issue an API token and print it once",
			Flags: []cli.Flag{
				ownerFlag(),
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Human-readable token name",
				},
				&cli.StringFlag{
					Name:    "permissions",
					Aliases: []string{"p"},
					Usage:   "Comma-separated permissions: webhook_receive, api_access (default: both)",
				},
				&cli.IntFlag{
					Name:    "expires-in-days",
					Aliases: []string{"e"},
					Usage:   "Days until the token expires (0 for no expiry)",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				tokenUseCase, err := container.APITokenUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreateToken(
					ctx,
					tokenUseCase,
					container.Logger(),
					cmd.String("owner"),
					cmd.String("name"),
					cmd.String("permissions"),
					int(cmd.Int("expires-in-days")),
					cmd.String("format"),
					commands.DefaultIO(),
				)
			},
		},
		{
			Name:  "list-tokens",
			Usage: "List the API tokens of an owner",
			Flags: []cli.Flag{
				ownerFlag(),
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				tokenUseCase, err := container.APITokenUseCase()
				if err != nil {
					return err
				}

				return commands.RunListTokens(
					ctx,
					tokenUseCase,
					container.Logger(),
					cmd.String("owner"),
					cmd.String("format"),
					commands.DefaultIO(),
				)
			},
		},
		{
			Name:  "revoke-token",
			Usage: "Deactivate an API token",
			Flags: []cli.Flag{ownerFlag(), tokenIDFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				tokenUseCase, err := container.APITokenUseCase()
				if err != nil {
					return err
				}

				return commands.RunRevokeToken(
					ctx,
					tokenUseCase,
					container.Logger(),
					cmd.String("owner"),
					cmd.String("id"),
					commands.DefaultIO(),
				)
			},
		},
		{
			Name:  "delete-token",
			Usage: "Permanently delete an API token",
			Flags: []cli.Flag{ownerFlag(), tokenIDFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				tokenUseCase, err := container.APITokenUseCase()
				if err != nil {
					return err
				}

				return commands.RunDeleteToken(
					ctx,
					tokenUseCase,
					container.Logger(),
					cmd.String("owner"),
					cmd.String("id"),
					commands.DefaultIO(),
				)
			},
		},
	}
}

func tokenIDFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "id",
		Aliases:  []string{"i"},
		Required: true,
		Usage:    "Token ID (UUID)",
	}
}
