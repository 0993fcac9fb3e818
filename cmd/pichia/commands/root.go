package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime/pprof"

	"github.com/liserjrqlxue/goUtil/osUtil"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/liserjrqlxue/pichia/pkg/config"
)

var (
	v          *viper.Viper
	cfgFile    string
	envFile    string
	cpuProfile string
	cpuOut     *os.File
	logger     *slog.Logger
)

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return newRootCmd(os.Stderr).ExecuteContext(ctx)
}

func newRootCmd(logOut io.Writer) *cobra.Command {
	v = config.NewViper()
	root := &cobra.Command{
		Use:          "pichia",
		Short:        "Expression plasmid analyzer for Pichia pastoris",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := bindFlag(cmd.Root().PersistentFlags(), "verbose", "verbose"); err != nil {
				return err
			}
			if err := config.LoadEnvFile(envFile); err != nil {
				return err
			}
			if err := config.ReadFile(v, cfgFile); err != nil {
				return err
			}
			level := slog.LevelInfo
			if v.GetBool("verbose") {
				level = slog.LevelDebug
			}
			logger = slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))
			slog.SetDefault(logger)

			if cpuProfile != "" {
				cpuOut = osUtil.Create(cpuProfile)
				return pprof.StartCPUProfile(cpuOut)
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if cpuOut == nil {
				return nil
			}
			pprof.StopCPUProfile()
			err := cpuOut.Close()
			cpuOut = nil
			return err
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "YAML config file")
	pf.StringVar(&envFile, "env-file", ".env", "dotenv file loaded into the environment if present")
	pf.StringVar(&cpuProfile, "cpu", "", "write cpu profile to file")
	pf.BoolP("verbose", "v", false, "debug logging")

	root.AddCommand(analyzeCmd(), translateCmd(), titrateCmd())
	return root
}

// bind returns a PreRunE binding each flag to its Viper key.
func bind(keys map[string]string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		for flag, key := range keys {
			if err := bindFlag(cmd.Flags(), flag, key); err != nil {
				return err
			}
		}
		return nil
	}
}

func bindFlag(fs *pflag.FlagSet, flag, key string) error {
	return v.BindPFlag(key, fs.Lookup(flag))
}
