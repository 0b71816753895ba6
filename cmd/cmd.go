// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// setupCommand initializes config and database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Create config.toml, initialize the database, and run migrations",
		Flags:  []cli.Flag{configFlag()},
		Action: r.Setup,
	}
}

// authCommand runs the OAuth2 flow against Spotify.
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "auth",
		Usage:  "Authenticate with Spotify using OAuth2",
		Flags:  []cli.Flag{configFlag()},
		Action: r.Auth,
	}
}

// playlistsCommand lists the user's Spotify playlists.
func playlistsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlists",
		Aliases: []string{"pl"},
		Usage:   "List Spotify playlists",
		Flags: []cli.Flag{
			configFlag(),
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of playlists to return",
				Value: 50,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.Playlists,
	}
}

// songsCommand shows or exports a playlist's bingo song list.
func songsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "songs",
		Usage: "Show the bingo song list derived from a playlist",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:     "id",
				Usage:    "Playlist ID",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, csv, markdown, json",
				Value:   "text",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write to a file instead of stdout",
			},
		},
		Action: r.Songs,
	}
}

// boardCommand manages per-playlist boards and game state.
func boardCommand(r *Runner) *cli.Command {
	idFlag := &cli.StringFlag{
		Name:     "id",
		Usage:    "Playlist ID",
		Required: true,
	}

	return &cli.Command{
		Name:  "board",
		Usage: "Generate and play bingo boards",
		Commands: []*cli.Command{
			{
				Name:   "new",
				Usage:  "Generate a fresh random board for a playlist",
				Flags:  []cli.Flag{configFlag(), idFlag},
				Action: r.BoardNew,
			},
			{
				Name:  "show",
				Usage: "Show the current board with checked songs",
				Flags: []cli.Flag{
					configFlag(),
					idFlag,
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format: text, markdown",
						Value:   "text",
					},
				},
				Action: r.BoardShow,
			},
			{
				Name:  "size",
				Usage: "Set the board size (2-5) for a playlist",
				Flags: []cli.Flag{
					configFlag(),
					idFlag,
					&cli.IntFlag{
						Name:     "size",
						Aliases:  []string{"s"},
						Usage:    "Grid dimension, between 2 and 5",
						Required: true,
					},
				},
				Action: r.BoardSize,
			},
			{
				Name:  "check",
				Usage: "Toggle a song's checked state",
				Flags: []cli.Flag{
					configFlag(),
					idFlag,
					&cli.IntFlag{
						Name:     "song",
						Usage:    "Song number from the 'songs' listing (1-based)",
						Required: true,
					},
				},
				Action: r.BoardCheck,
			},
			{
				Name:  "reset",
				Usage: "Clear checked songs for one playlist, or all playlists with --all",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:  "id",
						Usage: "Playlist ID (omit with --all)",
					},
					&cli.BoolFlag{
						Name:  "all",
						Usage: "Reset every playlist's progress",
					},
				},
				Action: r.BoardReset,
			},
		},
	}
}

// printCommand renders board PDFs.
func printCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "print",
		Usage: "Render printable bingo board PDFs",
		Arguments: []cli.Argument{
			&cli.StringArgs{
				Name: "ids",
				Min:  0,
				Max:  -1,
			},
		},
		Flags: []cli.Flag{
			configFlag(),
			&cli.IntFlag{
				Name:    "size",
				Aliases: []string{"s"},
				Usage:   "Grid dimension, between 2 and 5",
				Value:   4,
			},
			&cli.IntFlag{
				Name:    "boards",
				Aliases: []string{"n"},
				Usage:   "Number of boards to print, between 1 and 100",
				Value:   1,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output directory",
			},
			&cli.BoolFlag{
				Name:  "song-list",
				Usage: "Also write a text song list per playlist (bulk mode)",
			},
		},
		Action: r.Print,
	}
}

// serveCommand starts the web interface.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the web interface",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:  "host",
				Usage: "Bind address (overrides config)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Port (overrides config)",
			},
		},
		Action: r.Serve,
	}
}

// tuiCommand launches the interactive terminal UI.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Play bingo in the terminal",
		Flags:  []cli.Flag{configFlag()},
		Action: r.TUI,
	}
}
