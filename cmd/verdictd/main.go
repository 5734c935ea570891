// Command verdictd runs the rule engine as an HTTP service and provides
// small offline helpers for working with rule expressions.
//
// Usage:
//
//	verdictd serve --addr :8000 --db rules.db
//	verdictd check "age >= 18 AND country = 'US'"
//	verdictd combine "age > 30 AND dept = 'Sales'" "salary > 50000"
//	verdictd rules --db rules.db
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"

	verdict "github.com/verdict-rules/verdict"
	"github.com/verdict-rules/verdict/api"
	"github.com/verdict-rules/verdict/ruleql"
)

func main() {
	root := &cobra.Command{
		Use:           "verdictd",
		Short:         "Attribute-rule engine service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(serveCommand())
	root.AddCommand(checkCommand())
	root.AddCommand(combineCommand())
	root.AddCommand(rulesCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// openStore returns a SQL-backed store when a database path is given, and
// an in-memory store otherwise.
func openStore(dbPath string) (verdict.Store, func(), error) {
	if dbPath == "" {
		return verdict.NewMemoryStore(), func() {}, nil
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, nil, err
	}
	store, err := verdict.NewSQLStore(db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return store, func() { db.Close() }, nil
}

func serveCommand() *cobra.Command {
	var (
		addr   string
		dbPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP rule service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := openStore(dbPath)
			if err != nil {
				return err
			}
			defer closeStore()

			server := api.NewServer(verdict.NewEngine(store))

			errCh := make(chan error, 1)
			go func() {
				log.Printf("listening on %s", addr)
				errCh <- server.Start(addr)
			}()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case <-stop:
				log.Printf("shutting down")
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return server.Shutdown(ctx)
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8000", "Address to listen on")
	cmd.Flags().StringVar(&dbPath, "db", "", "Path to the sqlite database (in-memory store if empty)")
	return cmd
}

func checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <expression>",
		Short: "Parse a rule expression and print its tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := ruleql.Parse(args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), ruleql.Tree(root))
			return nil
		},
	}
}

func combineCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "combine <expression>...",
		Short: "Merge several rule expressions and print the combined tree",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roots := make([]ruleql.Node, 0, len(args))
			for i, expr := range args {
				root, err := ruleql.Parse(expr)
				if err != nil {
					return fmt.Errorf("rule %d: %w", i+1, err)
				}
				roots = append(roots, root)
			}
			merged, err := ruleql.Combine(roots)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), ruleql.Tree(merged))
			return nil
		},
	}
}

func rulesCommand() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the rules in a database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := openStore(dbPath)
			if err != nil {
				return err
			}
			defer closeStore()

			rules, err := store.Rules(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), verdict.RulesTable(rules))
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "Path to the sqlite database")
	_ = cmd.MarkFlagRequired("db")
	return cmd
}
