package main

import (
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"

	"github.com/bodgit/ngres"
	"github.com/urfave/cli/v2"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func writeFile(dir, name string, data []byte) error {
	return ioutil.WriteFile(filepath.Join(dir, name), data, 0644)
}

func main() {
	app := cli.NewApp()

	app.Name = "ngres"
	app.Usage = "NeoGeo resource compiler"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "cache",
			EnvVars: []string{"NGRES_CACHE"},
			Usage:   "path to encode cache database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "compile",
			Usage:       "Compile an asset manifest into ROM data",
			Description: "",
			ArgsUsage:   "MANIFEST",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "sdk-assets",
					Usage: "SDK assets manifest (processed before user assets)",
				},
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Value:   ".",
					Usage:   "output directory",
				},
				&cli.StringFlag{
					Name:  "c1",
					Value: "sprites-c1.bin",
					Usage: "C1 ROM output filename",
				},
				&cli.StringFlag{
					Name:  "c2",
					Value: "sprites-c2.bin",
					Usage: "C2 ROM output filename",
				},
				&cli.StringFlag{
					Name:  "s1",
					Value: "fix-s1.bin",
					Usage: "S1 ROM output filename",
				},
				&cli.StringFlag{
					Name:  "v1",
					Value: "audio-v1.bin",
					Usage: "V1 ROM output filename",
				},
				&cli.StringFlag{
					Name:  "tables",
					Value: "audio-tables.bin",
					Usage: "Z80 sample tables output filename",
				},
				&cli.StringFlag{
					Name:  "header",
					Value: "ngres_generated_assets.h",
					Usage: "header output filename",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				logger := log.New(ioutil.Discard, "", 0)
				if c.Bool("verbose") {
					logger.SetOutput(os.Stderr)
				}

				cfg, err := ngres.LoadConfig(c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if sdk := c.String("sdk-assets"); sdk != "" {
					sdkCfg, err := ngres.LoadConfig(sdk)
					if err != nil {
						return cli.NewExitError(err, 1)
					}
					cfg = ngres.Merge(sdkCfg, cfg)
				}

				compiler := ngres.New(logger)

				if file := c.String("cache"); file != "" {
					cache, err := ngres.OpenCache(file)
					if err != nil {
						return cli.NewExitError(err, 1)
					}
					defer cache.Close()
					compiler.UseCache(cache)
				}

				out, err := compiler.Compile(cfg)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				dir := c.String("output")
				if err := os.MkdirAll(dir, 0755); err != nil {
					return cli.NewExitError(err, 1)
				}

				files := map[string][]byte{
					c.String("c1"):     out.C1,
					c.String("c2"):     out.C2,
					c.String("header"): out.Header(),
				}
				if len(out.S1) > 0 {
					files[c.String("s1")] = out.S1
				}
				if len(out.V1) > 0 {
					files[c.String("v1")] = out.V1
					files[c.String("tables")] = out.Tables
				}

				for name, data := range files {
					if err := writeFile(dir, name, data); err != nil {
						return cli.NewExitError(err, 1)
					}
				}

				logger.Printf("total: %d tiles, %d palettes, %d visual assets",
					out.Tiles, len(out.Palettes), len(out.Visual))

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
