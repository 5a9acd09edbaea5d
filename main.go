package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/Yuanjie-Su/SmartInfo-sub000/internal/app"
)

func main() {
	cliApp := &cli.App{
		Name:  "smartinfo",
		Usage: "fetch news sources, extract articles and summarize them with an LLM",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.yaml",
				Usage:   "path to the YAML config file",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "only log errors",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "enable debug logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "fetch",
				Usage:  "run the crawl-extract-summarize pipeline for one source",
				Action: app.FetchAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "source",
						Usage: "name of a source from the config file",
					},
					&cli.StringFlag{
						Name:  "url",
						Usage: "fetch an ad-hoc URL instead of a configured source",
					},
				},
			},
			{
				Name:   "sources",
				Usage:  "list configured news sources",
				Action: app.SourcesAction,
			},
			{
				Name:   "history",
				Usage:  "list recent fetch runs",
				Action: app.HistoryAction,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Value: 20,
						Usage: "maximum number of runs to show",
					},
				},
			},
			{
				Name:   "articles",
				Usage:  "list stored articles for a source",
				Action: app.ArticlesAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "source",
						Usage: "name of a source from the config file",
					},
					&cli.StringFlag{
						Name:  "url",
						Usage: "source URL to list articles for",
					},
					&cli.IntFlag{
						Name:  "limit",
						Value: 50,
						Usage: "maximum number of articles to show",
					},
				},
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
