// Command dramctl drives a configurable DRAM memory controller with
// synthetic read/write traffic and reports how long the run took in
// simulated time.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/3p1phany/myDRAMsim/conn/directconnection"
	"github.com/3p1phany/myDRAMsim/mem/dram"
	"github.com/3p1phany/myDRAMsim/mem/dram/cmdq"
	"github.com/3p1phany/myDRAMsim/sim/simulation"
	"github.com/3p1phany/myDRAMsim/sim/timing"
	"github.com/3p1phany/myDRAMsim/trafficgen"
)

var rootCmd = &cobra.Command{
	Use:   "dramctl",
	Short: "dramctl drives a DRAM memory controller with synthetic traffic",
	Long: `dramctl builds a memory controller with the given geometry and ` +
		`timing parameters, attaches a synthetic read/write traffic ` +
		`generator to it, and runs the simulation to completion.`,
}

var (
	seed          int64
	numReads      int
	numWrites     int
	maxAddress    uint64
	freqMHz       int
	protocolName  string
	queueStruct   string
	rowPolicyName string
	numRank       int
	numBankGroup  int
	numBank       int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a synthetic traffic simulation against a memory controller",
	RunE:  runSimulation,
}

func init() {
	runCmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	runCmd.Flags().IntVar(&numReads, "reads", 1000, "number of reads to issue")
	runCmd.Flags().IntVar(&numWrites, "writes", 1000, "number of writes to issue")
	runCmd.Flags().Uint64Var(&maxAddress, "max-address", 1<<24,
		"address range to generate traffic within")
	runCmd.Flags().IntVar(&freqMHz, "freq-mhz", 1600, "controller frequency, in MHz")
	runCmd.Flags().StringVar(&protocolName, "protocol", "DDR4",
		"DRAM protocol: DDR3, DDR4, DDR5, LPDDR3, LPDDR4, GDDR5, GDDR5X, GDDR6, HBM, HBM2")
	runCmd.Flags().StringVar(&queueStruct, "queue-structure", "per-bank",
		"command queue grouping: per-bank or per-rank")
	runCmd.Flags().StringVar(&rowPolicyName, "row-buf-policy", "dpm",
		"row buffer policy: open-page, close-page, smart-close, or dpm")
	runCmd.Flags().IntVar(&numRank, "num-rank", 2, "ranks per channel")
	runCmd.Flags().IntVar(&numBankGroup, "num-bank-group", 4, "bank groups per rank")
	runCmd.Flags().IntVar(&numBank, "num-bank", 4, "banks per bank group")

	rootCmd.AddCommand(runCmd)
}

func parseProtocol(name string) (dram.Protocol, error) {
	byName := map[string]dram.Protocol{
		"DDR3": dram.DDR3, "DDR4": dram.DDR4, "DDR5": dram.DDR5,
		"LPDDR3": dram.LPDDR3, "LPDDR4": dram.LPDDR4,
		"GDDR5": dram.GDDR5, "GDDR5X": dram.GDDR5X, "GDDR6": dram.GDDR6,
		"HBM": dram.HBM, "HBM2": dram.HBM2,
	}

	p, ok := byName[name]
	if !ok {
		return 0, fmt.Errorf("unknown protocol %q", name)
	}

	return p, nil
}

func parseQueueStructure(name string) (cmdq.QueueStructure, error) {
	switch name {
	case "per-bank":
		return cmdq.PerBank, nil
	case "per-rank":
		return cmdq.PerRank, nil
	default:
		return 0, fmt.Errorf("unknown queue structure %q", name)
	}
}

func parseRowBufPolicy(name string) (cmdq.RowBufPolicy, error) {
	switch name {
	case "open-page":
		return cmdq.OpenPage, nil
	case "close-page":
		return cmdq.ClosePage, nil
	case "smart-close":
		return cmdq.SmartClose, nil
	case "dpm":
		return cmdq.DPM, nil
	default:
		return 0, fmt.Errorf("unknown row buffer policy %q", name)
	}
}

func runSimulation(_ *cobra.Command, _ []string) error {
	protocol, err := parseProtocol(protocolName)
	if err != nil {
		return err
	}

	queueStructure, err := parseQueueStructure(queueStruct)
	if err != nil {
		return err
	}

	rowBufPolicy, err := parseRowBufPolicy(rowPolicyName)
	if err != nil {
		return err
	}

	engine := timing.NewSerialEngine()
	sim := simulation.New(engine)
	freq := timing.Freq(freqMHz) * timing.MHz

	conn := directconnection.NewDirectConnection("Conn", engine, freq)

	memCtrl := dram.MakeBuilder().
		WithSimulation(sim).
		WithFreq(freq).
		WithProtocol(protocol).
		WithQueueStructure(queueStructure).
		WithRowBufPolicy(rowBufPolicy).
		WithNumRank(numRank).
		WithNumBankGroup(numBankGroup).
		WithNumBank(numBank).
		Build("Mem")

	agent := trafficgen.NewAgent(
		"Agent", engine, freq, seed, numReads, numWrites, maxAddress)
	agent.LowModule = memCtrl.GetPortByName("Top")

	conn.PlugIn(agent.GetPortByName("Mem"))
	conn.PlugIn(memCtrl.GetPortByName("Top"))

	agent.TickLater()

	if err := engine.Run(); err != nil {
		return err
	}

	if !agent.Done() {
		return fmt.Errorf(
			"simulation ended with %d reads and %d writes still outstanding",
			len(agent.PendingReadReq), len(agent.PendingWriteReq))
	}

	fmt.Fprintf(os.Stdout, "completed %d reads and %d writes at t=%.9fs\n",
		numReads, numWrites, engine.CurrentTime())

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
