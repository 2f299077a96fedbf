// Команда orgctl - административные операции над иерархией без HTTP API.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/org-hierarchy-api/internal/config"
	"github.com/org-hierarchy-api/internal/database"
	"github.com/org-hierarchy-api/internal/domain"
	"github.com/org-hierarchy-api/internal/hierarchy"
	"github.com/org-hierarchy-api/internal/repository"
	"github.com/org-hierarchy-api/internal/service"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	if err := newRootCmd(os.Stdout).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// app - зависимости, собранные для одной команды
type app struct {
	db        *gorm.DB
	hierarchy service.HierarchyService
}

type options struct {
	driver     string
	sqlitePath string
	verbose    bool
}

func newRootCmd(out io.Writer) *cobra.Command {
	var opts options

	root := &cobra.Command{
		Use:          "orgctl",
		Short:        "orgctl manages the organisational hierarchy",
		Long:         `orgctl runs migrations and answers hierarchy queries directly against the database.`,
		SilenceUsage: true,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&opts.driver, "driver", "", "Database driver (postgres|sqlite), overrides DB_DRIVER")
	root.PersistentFlags().StringVar(&opts.sqlitePath, "sqlite", "", "SQLite database path, overrides DB_SQLITE_PATH")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose output")

	root.AddCommand(
		migrateCmd(&opts),
		employeesCmd(&opts),
		statsCmd(&opts),
		subdivisionCmd(&opts),
		addMemberCmd(&opts),
	)
	return root
}

func migrateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cfg, err := opts.open()
			if err != nil {
				return err
			}
			defer a.close()

			if err := database.Migrate(a.db, cfg.Driver); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied successfully")
			return nil
		},
	}
}

func employeesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "employees [kind] [id]",
		Short: "List every employee reachable from a unit",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := parseRef(args[0], args[1])
			if err != nil {
				return err
			}
			return opts.run(cmd, func(ctx context.Context, a *app) (any, error) {
				return a.hierarchy.Employees(ctx, ref)
			})
		},
	}
}

func statsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats [kind] [id]",
		Short: "Show headcount, average age and average tenure of a unit",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := parseRef(args[0], args[1])
			if err != nil {
				return err
			}
			return opts.run(cmd, func(ctx context.Context, a *app) (any, error) {
				return a.hierarchy.Statistics(ctx, ref)
			})
		},
	}
}

func subdivisionCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "subdivision [employee-id]",
		Short: "Show the subdivision an employee belongs to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return opts.run(cmd, func(ctx context.Context, a *app) (any, error) {
				name, err := a.hierarchy.SubdivisionName(ctx, id)
				if err != nil {
					return nil, err
				}
				return map[string]any{"employee_id": id, "subdivision_name": name}, nil
			})
		},
	}
}

func addMemberCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "add-member [team-id] [employee-id]",
		Short: "Add an employee to a team",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			teamID, err := parseID(args[0])
			if err != nil {
				return err
			}
			employeeID, err := parseID(args[1])
			if err != nil {
				return err
			}
			return opts.run(cmd, func(ctx context.Context, a *app) (any, error) {
				emp, err := a.hierarchy.AddTeamMember(ctx, teamID, employeeID)
				if err != nil {
					return nil, err
				}
				return map[string]string{"message": fmt.Sprintf("Employee %s was added to the team.", emp.FullName)}, nil
			})
		},
	}
}

// run открывает БД, выполняет запрос и печатает результат в JSON
func (o *options) run(cmd *cobra.Command, query func(ctx context.Context, a *app) (any, error)) error {
	a, _, err := o.open()
	if err != nil {
		return err
	}
	defer a.close()

	result, err := query(cmd.Context(), a)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func (o *options) open() (*app, config.DatabaseConfig, error) {
	cfg := config.Load().Database
	if o.driver != "" {
		cfg.Driver = o.driver
	}
	if o.sqlitePath != "" {
		cfg.SQLitePath = o.sqlitePath
	}

	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	db, err := database.Open(cfg, logger)
	if err != nil {
		return nil, cfg, err
	}

	unitRepo := repository.NewUnitRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	empRepo := repository.NewEmployeeRepository(db)
	engine := hierarchy.NewEngine(repository.NewStore(unitRepo, teamRepo, empRepo))

	return &app{
		db:        db,
		hierarchy: service.NewHierarchyService(engine, unitRepo, teamRepo, empRepo),
	}, cfg, nil
}

func (a *app) close() {
	if sqlDB, err := a.db.DB(); err == nil {
		sqlDB.Close()
	}
}

func parseRef(kind, id string) (domain.NodeRef, error) {
	k := domain.Kind(kind)
	if !k.Valid() {
		return domain.NodeRef{}, fmt.Errorf("unknown unit kind %q, expected one of %v", kind, domain.Kinds)
	}
	n, err := parseID(id)
	if err != nil {
		return domain.NodeRef{}, err
	}
	return domain.NodeRef{Kind: k, ID: n}, nil
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}
