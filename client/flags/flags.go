package flags

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/cli"
)

// nolint
const (
	FlagHome           = cli.HomeFlag
	FlagOutput         = cli.OutputFlag
	FlagLogLevel       = "log_level"
	FlagIndent         = "indent"
	FlagInvCheckPeriod = "inv-check-period"
	FlagListenAddr     = "laddr"
	FlagMaxOpenConns   = "max-open"
	FlagBlockInterval  = "block-interval"
	FlagChainID        = "chain-id"
	FlagOverwrite      = "overwrite"
	FlagActiveOnly     = "active-only"
	FlagSecureID       = "secure-id"

	DefaultLogLevel = "main:info,state:info,*:error"
)

// GetCommands adds common flags to query commands
func GetCommands(cmds ...*cobra.Command) []*cobra.Command {
	for _, c := range cmds {
		AddQueryFlags(c.Flags())
		c.PreRun = bindFlags
	}
	return cmds
}

// PostCommands adds common flags for commands that change state
func PostCommands(cmds ...*cobra.Command) []*cobra.Command {
	for _, c := range cmds {
		AddQueryFlags(c.Flags())
		c.PreRun = bindFlags
	}
	return cmds
}

// AddQueryFlags registers the output flags on fs.
func AddQueryFlags(fs *pflag.FlagSet) {
	fs.Bool(FlagIndent, false, "Add indent to JSON response")
}

// RegisterRestServerFlags registers the flags required for rest server
func RegisterRestServerFlags(cmd *cobra.Command) *cobra.Command {
	cmd.Flags().String(FlagListenAddr, "tcp://localhost:1317", "The address for the server to listen on")
	cmd.Flags().Uint(FlagMaxOpenConns, 1000, "The number of maximum open connections")
	cmd.PreRun = bindFlags
	return cmd
}

// the flag sets of sibling commands share names, so only the running
// command's flags are bound
func bindFlags(cmd *cobra.Command, _ []string) {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		panic(err)
	}
}
