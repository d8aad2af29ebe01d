// Command graphdb-cli is the interactive and scripted front end for the
// embedded graph database: a REPL plus one-shot query/load/save
// subcommands, built the way this lineage's own command-line tools
// dispatch — a spf13/cobra root command routing to subcommands — rather
// than the bufio-scanner loop its predecessor ran directly out of
// main().
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	graphdb "github.com/ritamzico/graphdb"
	"github.com/ritamzico/graphdb/internal/dblog"
)

var (
	dbFile     string
	textFormat bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "graphdb-cli",
	Short: "Interactive client for the embedded property-graph database",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbFile, "db", "", "snapshot file to load on startup and save on exit")
	rootCmd.PersistentFlags().BoolVar(&textFormat, "text", false, "use the YAML text snapshot format instead of binary")

	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(saveCmd)
}

func openDB() (*graphdb.DB, error) {
	if dbFile == "" {
		return graphdb.New(), nil
	}
	if _, err := os.Stat(dbFile); err != nil {
		return graphdb.New(), nil
	}
	if textFormat {
		return graphdb.LoadTextFile(dbFile)
	}
	return graphdb.LoadFile(dbFile)
}

func saveDB(db *graphdb.DB) error {
	if dbFile == "" {
		return nil
	}
	if textFormat {
		return db.SaveTextFile(dbFile)
	}
	return db.SaveFile(dbFile)
}

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive query REPL",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		runRepl(db)
		return saveDB(db)
	},
}

var queryCmd = &cobra.Command{
	Use:   "query [cypher]",
	Short: "Run a single query and print its result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		res, err := db.Query(args[0])
		if err != nil {
			return err
		}
		fmt.Println(res.String())
		return saveDB(db)
	},
}

var loadCmd = &cobra.Command{
	Use:   "load [file]",
	Short: "Load a snapshot and print a node/edge count",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var db *graphdb.DB
		var err error
		if textFormat {
			db, err = graphdb.LoadTextFile(args[0])
		} else {
			db, err = graphdb.LoadFile(args[0])
		}
		if err != nil {
			return err
		}
		fmt.Printf("loaded %d nodes, %d edges\n", db.Store.NodeCount(), db.Store.EdgeCount())
		return nil
	},
}

var saveCmd = &cobra.Command{
	Use:   "save [file]",
	Short: "Save a fresh empty database to file (scripting convenience)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db := graphdb.New()
		if textFormat {
			return db.SaveTextFile(args[0])
		}
		return db.SaveFile(args[0])
	},
}

const helpText = `Commands:
  help            Show this help message
  exit / quit     Exit the REPL

Any other input is parsed and executed as a query, e.g.:
  CREATE (a:Person {name: "Ada"})
  MATCH (p:Person) RETURN p.name
`

func runRepl(db *graphdb.DB) {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("graphdb interactive shell")
	fmt.Println(`Type "help" for available commands.`)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		switch strings.ToLower(line) {
		case "exit", "quit":
			return
		case "help":
			fmt.Print(helpText)
			continue
		}

		res, err := db.Query(line)
		if err != nil {
			dblog.WithComponent("cli").Error().Err(err).Msg("query failed")
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		fmt.Println(res.String())
	}
}
