package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"math/rand/v2"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
)

// Version is the version of the labyrinth executable. It is independent of
// GeneratorVersion, which only tracks the output of the carving algorithm.
const Version = "0.1.0"

func main() {
	// Load .env file if it exists. It can hold the LABYRINTH_* variables,
	// including the credentials of the maze archive.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Warning: error loading .env file: %v", err)
	}

	if err := NewCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "labyrinth: %v\n", err)
		os.Exit(1)
	}
}

func NewCommand() *cli.Command {
	defaults := DefaultConfig()
	return &cli.Command{
		Name:    "labyrinth",
		Usage:   "Maze generation program.",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   fmt.Sprintf("file to save the rendered image to (default: %s)", defaults.Out),
				Sources: cli.EnvVars("LABYRINTH_OUT"),
			},
			&cli.Uint64Flag{
				Name:    "seed",
				Aliases: []string{"s"},
				Usage:   "seed for the RNG (default: a new random seed)",
				Sources: cli.EnvVars("LABYRINTH_SEED"),
			},
			&cli.Uint32Flag{
				Name:    "width",
				Aliases: []string{"w"},
				Usage:   fmt.Sprintf("width of the maze in tiles (default: %d)", defaults.Width),
				Sources: cli.EnvVars("LABYRINTH_WIDTH"),
			},
			&cli.Uint32Flag{
				Name:    "height",
				Usage:   fmt.Sprintf("height of the maze in tiles (default: %d)", defaults.Height),
				Sources: cli.EnvVars("LABYRINTH_HEIGHT"),
			},
			&cli.IntFlag{
				Name:    "scale",
				Usage:   fmt.Sprintf("pixels per tile along each axis (default: %d)", defaults.Scale),
				Sources: cli.EnvVars("LABYRINTH_SCALE"),
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML file overriding the built-in defaults",
				Sources: cli.EnvVars("LABYRINTH_CONFIG"),
			},
			&cli.StringFlag{
				Name:  "record",
				Usage: "also save a record of the maze, to regenerate it later",
			},
			&cli.BoolFlag{
				Name:  "view",
				Usage: "show the maze in a window",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log details about the generated maze",
			},
		},
		Action: runGenerate,
		Commands: []*cli.Command{
			verifyCommand(),
			archiveCommand(),
		},
	}
}

// ResolveConfig combines the embedded defaults, the configuration file and
// the command line flags, in increasing order of priority.
func ResolveConfig(cmd *cli.Command) (Config, error) {
	c, err := LoadConfig(cmd.String("config"))
	if err != nil {
		return c, err
	}

	if cmd.IsSet("out") {
		c.Out = cmd.String("out")
	}
	if cmd.IsSet("seed") {
		seed := cmd.Uint64("seed")
		c.Seed = &seed
	}
	if cmd.IsSet("width") {
		c.Width = int(cmd.Uint32("width"))
	}
	if cmd.IsSet("height") {
		c.Height = int(cmd.Uint32("height"))
	}
	if cmd.IsSet("scale") {
		c.Scale = cmd.Int("scale")
	}
	if cmd.IsSet("record") {
		c.Record = cmd.String("record")
	}
	if cmd.IsSet("view") {
		c.View = cmd.Bool("view")
	}
	if cmd.IsSet("verbose") {
		c.Verbose = cmd.Bool("verbose")
	}
	return c, c.Validate()
}

func setupLogging(verbose bool) {
	if verbose {
		log.SetFlags(log.LstdFlags)
	} else {
		log.SetFlags(0)
	}
}

func runGenerate(ctx context.Context, cmd *cli.Command) error {
	c, err := ResolveConfig(cmd)
	if err != nil {
		return err
	}
	setupLogging(c.Verbose)

	var seed uint64
	if c.Seed != nil {
		seed = *c.Seed
	} else {
		seed = rand.Uint64()
	}

	m, err := GenerateMaze(c.Width, c.Height, seed)
	if err != nil {
		return err
	}
	if c.Verbose {
		log.Printf("generated %dx%d maze from seed %d: %d carved tiles, "+
			"regression id %s", m.Width, m.Height, seed,
			m.Width*m.Height-m.Count(Wall), RegressionId(m))
		if start, ok := m.Find(Start); ok {
			log.Printf("start at %d,%d", start.X, start.Y)
		}
		if end, ok := m.Find(End); ok {
			log.Printf("end at %d,%d", end.X, end.Y)
		}
	}

	if err := m.SaveToFile(c.Out, c.Scale); err != nil {
		return err
	}
	if c.Verbose {
		log.Printf("saved maze to %s", c.Out)
	}

	if c.Record != "" {
		r := NewMazeRecord(seed, m)
		if err := r.SaveToFile(c.Record); err != nil {
			return err
		}
		if c.Verbose {
			log.Printf("saved record %s to %s", r.Id, c.Record)
		}
	}

	if c.View {
		return ShowMaze(m, c.Scale)
	}
	return nil
}

func verifyCommand() *cli.Command {
	return &cli.Command{
		Name:      "verify",
		Usage:     "regenerate the maze stored in a record and check that it is unchanged",
		ArgsUsage: "<record>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "render",
				Usage: "save the regenerated maze to this file",
			},
			&cli.IntFlag{
				Name:  "scale",
				Usage: "pixels per tile along each axis of the rendered maze",
				Value: 1,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("%w: verify expects exactly one record", ErrConfig)
			}
			r, err := LoadMazeRecord(cmd.Args().First())
			if err != nil {
				return err
			}
			m, err := r.Verify()
			if err != nil {
				return err
			}
			if out := cmd.String("render"); out != "" {
				if err := m.SaveToFile(out, cmd.Int("scale")); err != nil {
					return err
				}
			}
			fmt.Printf("record %s: %dx%d maze from seed %d is unchanged\n",
				r.Id, r.Width, r.Height, r.Seed)
			return nil
		},
	}
}

func archiveCommand() *cli.Command {
	return &cli.Command{
		Name:  "archive",
		Usage: "store and retrieve maze records in MySQL (see LABYRINTH_DB*)",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create the mazes table",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					db, err := ConnectToDb(ctx, DbConfig())
					if err != nil {
						return err
					}
					defer func() { _ = db.Close() }()
					return InitDb(ctx, db)
				},
			},
			{
				Name:      "upload",
				Usage:     "upload records to the archive",
				ArgsUsage: "<record>...",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() == 0 {
						return fmt.Errorf("%w: upload expects at least one record", ErrConfig)
					}
					db, err := ConnectToDb(ctx, DbConfig())
					if err != nil {
						return err
					}
					defer func() { _ = db.Close() }()

					for _, path := range cmd.Args().Slice() {
						r, err := LoadMazeRecord(path)
						if err != nil {
							return err
						}
						if err := UploadRecord(ctx, db, &r); err != nil {
							return err
						}
						log.Printf("uploaded %s", r.Id)
					}
					return nil
				},
			},
			{
				Name:      "download",
				Usage:     "download every record in the archive",
				ArgsUsage: "<dir>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() != 1 {
						return fmt.Errorf("%w: download expects a directory", ErrConfig)
					}
					db, err := ConnectToDb(ctx, DbConfig())
					if err != nil {
						return err
					}
					defer func() { _ = db.Close() }()

					n, err := DownloadRecords(ctx, db, cmd.Args().First())
					log.Printf("downloaded %d records", n)
					return err
				},
			},
		},
	}
}
