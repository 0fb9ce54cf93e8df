// Package main provides the cachesim command. It replays a memory-operation
// trace through a simulated two-level cache hierarchy backed by a RAM image,
// then reports the per-cache statistics and dumps the final cache contents.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/cachesim/hierarchy"
	"github.com/sarchlab/cachesim/mem"
	"github.com/sarchlab/cachesim/monitoring"
	"github.com/sarchlab/cachesim/record"
	"github.com/sarchlab/cachesim/report"
	"github.com/sarchlab/cachesim/simulation"
	"github.com/sarchlab/cachesim/trace"
)

var (
	l1SetBits    int
	l1Ways       int
	l1OffsetBits int
	l2SetBits    int
	l2Ways       int
	l2OffsetBits int

	traceFileName string
	ramFileName   string
	memCapacity   uint64

	recordToDB  bool
	dbFileName  string
	monitorOn   bool
	monitorPort int
	quiet       bool
	dumpPrefix  string
	skipDump    bool
)

var rootCmd = &cobra.Command{
	Use:   "cachesim",
	Short: "cachesim replays a memory trace through an L1I/L1D/L2 hierarchy",
	Long: `cachesim simulates a two-level cache hierarchy: a per-processor L1 ` +
		`instruction cache and L1 data cache in front of a shared L2, backed by a ` +
		`byte-addressable RAM image. The caches use FIFO replacement and are ` +
		`write-through with no write allocation.`,
	RunE:         run,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
}

func init() {
	flags := rootCmd.Flags()

	flags.IntVar(&l1SetBits, "l1-set-bits", 1, "number of set-index bits of the L1 caches")
	flags.IntVar(&l1Ways, "l1-ways", 2, "associativity of the L1 caches")
	flags.IntVar(&l1OffsetBits, "l1-offset-bits", 4, "number of block-offset bits of the L1 caches")
	flags.IntVar(&l2SetBits, "l2-set-bits", 2, "number of set-index bits of the L2 cache")
	flags.IntVar(&l2Ways, "l2-ways", 2, "associativity of the L2 cache")
	flags.IntVar(&l2OffsetBits, "l2-offset-bits", 4, "number of block-offset bits of the L2 cache")

	flags.StringVarP(&traceFileName, "trace", "t", "", "trace file to replay (required)")
	flags.StringVar(&ramFileName, "ram", "", "RAM image file; in-memory storage is used when empty")
	flags.Uint64Var(&memCapacity, "mem-capacity", 1<<30, "capacity of the in-memory storage in bytes")

	flags.BoolVar(&recordToDB, "record", false, "record per-operation outcomes into a SQLite database")
	flags.StringVar(&dbFileName, "record-db", "", "name of the outcome database; generated when empty")
	flags.BoolVar(&monitorOn, "monitor", false, "serve live statistics over HTTP")
	flags.IntVar(&monitorPort, "monitor-port", 0, "port of the monitoring server; 0 picks a free port")
	flags.BoolVarP(&quiet, "quiet", "q", false, "suppress per-operation output")
	flags.StringVar(&dumpPrefix, "dump-prefix", "", "filename prefix of the final-state dumps")
	flags.BoolVar(&skipDump, "no-dump", false, "do not write the final-state dumps")

	_ = rootCmd.MarkFlagRequired("trace")
}

func run(_ *cobra.Command, _ []string) error {
	// A .env file can provide defaults, e.g. CACHESIM_RAM.
	_ = godotenv.Load()
	if ramFileName == "" {
		ramFileName = os.Getenv("CACHESIM_RAM")
	}

	if err := validateGeometry(); err != nil {
		return err
	}

	storage, cleanup, err := openStorage()
	if err != nil {
		return err
	}
	defer cleanup()

	traceFile, err := os.Open(traceFileName)
	if err != nil {
		return fmt.Errorf("opening trace file: %w", err)
	}
	defer traceFile.Close()

	hierarchyBuilder := hierarchy.MakeBuilder().
		WithL1IGeometry(l1SetBits, l1Ways, l1OffsetBits).
		WithL1DGeometry(l1SetBits, l1Ways, l1OffsetBits).
		WithL2Geometry(l2SetBits, l2Ways, l2OffsetBits).
		WithStorage(storage)

	var monitor *monitoring.Monitor
	if monitorOn {
		monitor = monitoring.NewMonitor().WithPortNumber(monitorPort)
		hierarchyBuilder = hierarchyBuilder.
			WithStatsListener(monitor.StatsListener())
	}

	h := hierarchyBuilder.Build()

	if monitor != nil {
		monitor.RegisterHierarchy(h)
		if err := monitor.StartServer(); err != nil {
			return err
		}
	}

	simBuilder := simulation.MakeBuilder().WithHierarchy(h)
	if !quiet {
		simBuilder = simBuilder.WithOpLog(os.Stdout)
	}
	if recordToDB {
		simBuilder = simBuilder.WithRecorder(record.NewSQLiteRecorder(dbFileName))
	}
	sim := simBuilder.Build()

	if err := sim.Run(trace.NewReader(traceFile)); err != nil {
		return err
	}

	fmt.Println()
	if err := report.WriteSummary(os.Stdout, h); err != nil {
		return err
	}

	if !skipDump {
		if err := report.DumpFinalState(h, dumpPrefix); err != nil {
			return err
		}
	}

	return nil
}

func validateGeometry() error {
	geometries := []struct {
		name          string
		setBits, ways int
		offsetBits    int
	}{
		{"L1", l1SetBits, l1Ways, l1OffsetBits},
		{"L2", l2SetBits, l2Ways, l2OffsetBits},
	}

	for _, g := range geometries {
		if g.setBits < 0 || g.offsetBits < 0 {
			return fmt.Errorf("%s geometry bits must be non-negative", g.name)
		}
		if g.ways < 1 {
			return fmt.Errorf("%s must have at least one way per set", g.name)
		}
	}

	return nil
}

func openStorage() (mem.Storage, func(), error) {
	if ramFileName == "" {
		return mem.NewStorage(memCapacity), func() {}, nil
	}

	fileStorage, err := mem.OpenFileStorage(ramFileName)
	if err != nil {
		return nil, nil, err
	}

	return fileStorage, func() { fileStorage.Close() }, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
