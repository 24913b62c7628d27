package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mobius-scheduler/vrptwgen/common"
	"github.com/mobius-scheduler/vrptwgen/dataset"
	"github.com/mobius-scheduler/vrptwgen/generator"
	"github.com/mobius-scheduler/vrptwgen/metrics"
	"github.com/mobius-scheduler/vrptwgen/spec"
	"github.com/mobius-scheduler/vrptwgen/writer"
)

// Config collects everything that is not a positional argument. Values come
// from flags, then the optional config file, then the flag defaults.
type Config struct {
	Dataset         dataset.Paths `mapstructure:"dataset"`
	JSON            bool          `mapstructure:"json"`
	MetricsTextfile string        `mapstructure:"metrics-textfile"`
	Verbose         bool          `mapstructure:"verbose"`
}

// Args are the positional arguments of one run.
type Args struct {
	Size             int
	TimeWindowsFile  string
	DemandsFile      string
	ServiceTimesFile string
	Seeds            generator.Seeds
	Prefix           string
}

func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vrptwgen <size> <fileTW> <fileD> <fileST> <seedM> <seedTW> <seedD> <seedST> [outPref]",
		Short: "Generate a VRPTW benchmark instance from a real-world dataset.",
		Long: "Samples <size> customers from the dataset, draws their time windows, demands and\n" +
			"service times from the three specification files, sizes the fleet and writes the\n" +
			"distance matrix, time matrix and Solomon-style specs files.",
		Args:          cobra.RangeArgs(8, 9),
		SilenceErrors: true,
		RunE:          runGenerator,
	}
	defaults := dataset.DefaultPaths()
	cmd.Flags().String("config", "", "Optional YAML or JSON config file.")
	cmd.Flags().String("distances", defaults.Distances, "Raw distance table.")
	cmd.Flags().String("times", defaults.Times, "Raw travel-time table.")
	cmd.Flags().String("ids", defaults.IDs, "Id table mapping positions to real ids.")
	cmd.Flags().String("positions", defaults.Positions, "Latitude/longitude of every id.")
	cmd.Flags().Bool("json", false, "Also write a JSON manifest of the instance.")
	cmd.Flags().String("metrics-textfile", "", "Write generation metrics to this Prometheus textfile.")
	cmd.Flags().BoolP("verbose", "v", false, "Log sampled positions and other debug output.")
	return cmd
}

// LoadConfig binds the command flags and reads the config file, if any.
func LoadConfig(cmd *cobra.Command) (Config, error) {
	v := viper.New()
	bindings := map[string]string{
		"dataset.distances": "distances",
		"dataset.times":     "times",
		"dataset.ids":       "ids",
		"dataset.positions": "positions",
		"json":              "json",
		"metrics-textfile":  "metrics-textfile",
		"verbose":           "verbose",
	}
	for key, flag := range bindings {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return Config{}, errors.Wrapf(err, "[cmd] error binding flag %s", flag)
		}
	}

	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return Config{}, err
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, common.Classify(common.ErrFatalConfiguration, err, "config file %s", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, common.Classify(common.ErrFatalConfiguration, err, "config")
	}
	return cfg, nil
}

// ParseArgs converts the positional arguments. The prefix defaults to a
// name built from the size and the seeds.
func ParseArgs(args []string) (Args, error) {
	if len(args) < 8 || len(args) > 9 {
		return Args{}, errors.Wrapf(common.ErrFatalConfiguration, "expected 8 or 9 arguments, got %d", len(args))
	}
	size, err := strconv.Atoi(args[0])
	if err != nil {
		return Args{}, errors.Wrapf(common.ErrFatalConfiguration, "size %q is not an integer", args[0])
	}

	var seeds [4]int64
	names := [4]string{"seedM", "seedTW", "seedD", "seedST"}
	for i := range seeds {
		arg := args[4+i]
		if seeds[i], err = strconv.ParseInt(arg, 10, 64); err != nil {
			return Args{}, errors.Wrapf(common.ErrFatalConfiguration, "%s %q is not an integer", names[i], arg)
		}
	}

	a := Args{
		Size:             size,
		TimeWindowsFile:  args[1],
		DemandsFile:      args[2],
		ServiceTimesFile: args[3],
		Seeds: generator.Seeds{
			Matrix:      seeds[0],
			TimeWindow:  seeds[1],
			Demand:      seeds[2],
			ServiceTime: seeds[3],
		},
	}
	if len(args) == 9 {
		a.Prefix = args[8]
	} else {
		a.Prefix = DefaultPrefix(a.Size, a.Seeds)
	}
	return a, nil
}

func DefaultPrefix(size int, seeds generator.Seeds) string {
	return fmt.Sprintf(
		"vrptw_n%d_m%d_tw%d_d%d_st%d_",
		size, seeds.Matrix, seeds.TimeWindow, seeds.Demand, seeds.ServiceTime,
	)
}

func ConfigureLogging(verbose bool) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetOutput(os.Stdout)
	if verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

func runGenerator(cmd *cobra.Command, rawArgs []string) error {
	args, err := ParseArgs(rawArgs)
	if err != nil {
		return err
	}
	cfg, err := LoadConfig(cmd)
	if err != nil {
		return err
	}
	// arguments are valid from here on; failures are not usage errors
	cmd.SilenceUsage = true
	ConfigureLogging(cfg.Verbose)
	log.Debugf("[cmd] %+v %+v", args, cfg)

	// load inputs
	ds, err := dataset.Load(cfg.Dataset)
	if err != nil {
		return err
	}
	timeWindows, err := spec.LoadTimeWindows(args.TimeWindowsFile)
	if err != nil {
		return err
	}
	demands, err := spec.LoadDemands(args.DemandsFile)
	if err != nil {
		return err
	}
	serviceTimes, err := spec.LoadServiceTimes(args.ServiceTimesFile)
	if err != nil {
		return err
	}

	// generate
	start := time.Now()
	inst, err := generator.Generate(generator.Input{
		Dataset:      ds,
		TimeWindows:  timeWindows,
		Demands:      demands,
		ServiceTimes: serviceTimes,
	}, args.Size, args.Seeds)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	fleet := inst.Fleet()
	log.Infof(
		"[cmd] generated %d customers, %d vehicles of capacity %v in %v",
		inst.Size(), fleet.Size, fleet.VehicleCapacity, elapsed,
	)

	// write
	if _, err := writer.WriteAll(args.Prefix, inst, cfg.JSON); err != nil {
		return err
	}
	if cfg.MetricsTextfile != "" {
		m := metrics.New()
		m.Observe(inst, elapsed)
		if err := m.WriteTextfile(cfg.MetricsTextfile); err != nil {
			return err
		}
		log.Infof("[cmd] wrote metrics to %s", cfg.MetricsTextfile)
	}
	return nil
}
