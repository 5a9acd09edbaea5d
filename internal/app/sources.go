package app

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/Yuanjie-Su/SmartInfo-sub000/pkg/db"
)

// SourcesAction lists the sources configured in the YAML file.
func SourcesAction(c *cli.Context) error {
	config, err := loadConfig(c)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 2)
	}
	if len(config.Sources) == 0 {
		fmt.Println("No sources configured")
		return nil
	}
	for _, s := range config.Sources {
		fmt.Printf("%-20s %s\n", s.Name, s.URL)
	}
	return nil
}

// HistoryAction lists recent fetch runs from the store.
func HistoryAction(c *cli.Context) error {
	config, err := loadConfig(c)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 2)
	}
	database, err := db.Open(config.Database)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: failed to open database: %v", err), 2)
	}
	defer database.Close()

	sessions, err := database.ListSessions(c.Int("limit"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 2)
	}
	if len(sessions) == 0 {
		fmt.Println("No fetch runs recorded")
		return nil
	}
	for _, s := range sessions {
		fmt.Printf("#%-4d %-10s %4d articles  %-20s %s\n",
			s.ID, s.Status, s.ArticleCount, s.SourceName, s.SourceURL)
	}
	return nil
}

// ArticlesAction lists stored articles for one source URL.
func ArticlesAction(c *cli.Context) error {
	config, err := loadConfig(c)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 2)
	}
	_, sourceURL, err := resolveSource(c, config)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}

	database, err := db.Open(config.Database)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: failed to open database: %v", err), 2)
	}
	defer database.Close()

	articles, err := database.ListArticles(sourceURL, c.Int("limit"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 2)
	}
	if len(articles) == 0 {
		fmt.Println("No articles stored for this source")
		return nil
	}
	for _, a := range articles {
		date := a.Date
		if date == "" {
			date = "----------"
		}
		fmt.Printf("%s  %s\n    %s\n", date, a.Title, a.URL)
		if a.Summary != "" {
			fmt.Printf("    %s\n", a.Summary)
		}
	}
	return nil
}
