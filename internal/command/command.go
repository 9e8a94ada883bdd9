package command

import (
	commandHandler "backoffice/internal/command/handler"
	"backoffice/utils/path"

	"github.com/google/wire"
	"github.com/spf13/cobra"
)

var ProviderSet = wire.NewSet(
	NewCommand,
	commandHandler.NewSeedHandler,
	commandHandler.NewAuditHandler,
	commandHandler.NewRosterHandler,
)

type Command struct {
	seedHandler   *commandHandler.SeedHandler
	auditHandler  *commandHandler.AuditHandler
	rosterHandler *commandHandler.RosterHandler
}

// NewCommand .
func NewCommand(
	seedHandler *commandHandler.SeedHandler,
	auditHandler *commandHandler.AuditHandler,
	rosterHandler *commandHandler.RosterHandler,
) *Command {
	return &Command{
		seedHandler:   seedHandler,
		auditHandler:  auditHandler,
		rosterHandler: rosterHandler,
	}
}

func Register(rootCmd *cobra.Command, newCmd func() (*Command, func(), error)) {
	// 每個子命令各自建立依賴，執行完就釋放連線
	run := func(fn func(command *Command, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			command, cleanup, err := newCmd()
			if err != nil {
				return err
			}
			defer cleanup()
			return fn(command, cmd, args)
		}
	}

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "import positions, workplaces, addresses and employees from a YAML file",
		RunE: run(func(command *Command, cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			return command.seedHandler.Seed(cmd, path.Resolve(file))
		}),
	}
	seedCmd.Flags().StringP("file", "f", "conf/seed.yaml", "seed file")

	auditCmd := &cobra.Command{
		Use:   "audit-assignments",
		Short: "re-validate every stored employee against the assignment rules",
		RunE: run(func(command *Command, cmd *cobra.Command, args []string) error {
			return command.auditHandler.AuditAssignments(cmd, args)
		}),
	}

	rosterCmd := &cobra.Command{
		Use:   "export-roster",
		Short: "export employees and managers to an xlsx file",
		RunE: run(func(command *Command, cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")
			return command.rosterHandler.ExportRoster(cmd, out)
		}),
	}
	rosterCmd.Flags().StringP("out", "o", "roster.xlsx", "output file")

	rootCmd.AddCommand(seedCmd, auditCmd, rosterCmd)
}
