package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/covertbagel/compendium/internal/errors"
	"github.com/covertbagel/compendium/internal/ops"
	"github.com/covertbagel/compendium/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(service *ops.Service, logger *slog.Logger) *cli.App {
	app := &cli.App{
		Name:    "compendium",
		Usage:   "Episode catalog with curator notes",
		Version: Version,
		Commands: []*cli.Command{
			serveCmd(service, logger),
			exportCmd(service),
			notesCmd(service),
			historyCmd(service),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// serveCmd creates the serve command.
func serveCmd(service *ops.Service, logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Value: "127.0.0.1", Usage: "Bind address"},
			&cli.IntFlag{Name: "port", Value: 8080, Usage: "Listen port"},
		},
		Action: func(c *cli.Context) error {
			srv := web.NewServer(service, logger, c.String("bind"), c.Int("port"))
			return web.Run(srv, logger)
		},
	}
}

// exportCmd creates the export command.
func exportCmd(service *ops.Service) *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Write the episode list with resolved notes as CSV",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "playlist", Usage: "Playlist set: empty or \"complete\""},
		},
		Action: func(c *cli.Context) error {
			out := os.Stdout
			if c.NArg() > 0 {
				f, err := os.Create(c.Args().First())
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
				defer f.Close()
				out = f
			}

			input := ops.ExportInput{Playlist: ops.PlaylistSet(c.String("playlist"))}
			if err := service.ExportCSV(c.Context, out, input); err != nil {
				return outputError(err)
			}
			return nil
		},
	}
}

// notesCmd creates the notes command.
func notesCmd(service *ops.Service) *cli.Command {
	return &cli.Command{
		Name:  "notes",
		Usage: "List episodes with resolved notes as JSON",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "playlist", Usage: "Playlist set: empty or \"complete\""},
		},
		Action: func(c *cli.Context) error {
			output, err := service.List(c.Context, ops.ListInput{
				Playlist: ops.PlaylistSet(c.String("playlist")),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// historyCmd creates the history command.
func historyCmd(service *ops.Service) *cli.Command {
	return &cli.Command{
		Name:      "history",
		Usage:     "Show one episode's note history and etag",
		ArgsUsage: "<video_id>",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("video_id argument is required"))
			}
			output, err := service.Detail(c.Context, ops.DetailInput{
				VideoID: c.Args().First(),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// outputJSON writes data to stdout as indented JSON.
func outputJSON(data any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// outputError writes a coded error to stdout as JSON and returns it.
func outputError(err error) error {
	var payload any
	if cErr, ok := err.(*errors.Error); ok {
		payload = map[string]any{"error": map[string]any{
			"code":    cErr.Code,
			"message": cErr.Message,
			"status":  cErr.Status,
		}}
	} else {
		payload = map[string]any{"error": map[string]any{
			"code":    "INTERNAL",
			"message": err.Error(),
			"status":  500,
		}}
	}
	data, _ := json.Marshal(payload)
	fmt.Println(string(data))
	return err
}
