package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/zhubert/scholar/internal/demo"
	"github.com/zhubert/scholar/internal/demo/scenarios"
)

// demoFlags are shared by the run and cast subcommands.
type demoFlags struct {
	output     string
	width      int
	height     int
	captureAll bool
	plain      bool
}

var demoOpts demoFlags

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Generate demo recordings of Scholar",
	Long: `Replay scripted research sessions against the real interface, without a
terminal, and record what the screen shows.

  list      List available scenarios
  run       Print the captured frames (for checking a scenario)
  cast      Write an asciinema recording`,
}

var demoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available demo scenarios",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Available demo scenarios:")
		fmt.Fprintln(out)
		for _, s := range scenarios.All() {
			fmt.Fprintf(out, "  %-15s %s (%d steps)\n", s.Name, s.Description, len(s.Steps))
		}
	},
}

var demoRunCmd = &cobra.Command{
	Use:   "run <scenario>",
	Short: "Run a scenario and print its frames",
	Args:  cobra.ExactArgs(1),
	RunE:  runDemoRun,
}

var demoCastCmd = &cobra.Command{
	Use:   "cast <scenario>",
	Short: "Write an asciinema cast file",
	Long: `Write an asciinema (asciicast v2) recording of a scenario.

The file defaults to <scenario>.cast; pass -o - to write to stdout.
Annotations become markers you can jump between while playing.`,
	Args: cobra.ExactArgs(1),
	RunE: runDemoCast,
}

func init() {
	for _, c := range []*cobra.Command{demoRunCmd, demoCastCmd} {
		c.Flags().StringVarP(&demoOpts.output, "output", "o", "", "Output file")
		c.Flags().IntVarP(&demoOpts.width, "width", "w", 120, "Terminal width")
		c.Flags().IntVarP(&demoOpts.height, "height", "H", 40, "Terminal height")
		c.Flags().BoolVar(&demoOpts.captureAll, "capture-all", false, "Capture a frame after every step")
	}
	demoRunCmd.Flags().BoolVar(&demoOpts.plain, "plain", false, "Strip colors from printed frames")

	demoCmd.AddCommand(demoListCmd, demoRunCmd, demoCastCmd)
	rootCmd.AddCommand(demoCmd)
}

// getScenario looks a scenario up by name and applies the size flags.
func getScenario(name string) (*demo.Scenario, error) {
	scenario := scenarios.Get(name)
	if scenario == nil {
		return nil, fmt.Errorf("unknown scenario %q\nRun 'scholar demo list' to see available scenarios", name)
	}
	if demoOpts.width > 0 {
		scenario.Width = demoOpts.width
	}
	if demoOpts.height > 0 {
		scenario.Height = demoOpts.height
	}
	return scenario, nil
}

func executeScenario(scenario *demo.Scenario) ([]demo.Frame, error) {
	execCfg := demo.DefaultExecutorConfig()
	execCfg.CaptureEveryStep = demoOpts.captureAll

	frames, err := demo.NewExecutor(execCfg).Run(scenario)
	if err != nil {
		return nil, fmt.Errorf("error running scenario %s: %w", scenario.Name, err)
	}
	return frames, nil
}

func runDemoRun(cmd *cobra.Command, args []string) error {
	scenario, err := getScenario(args[0])
	if err != nil {
		return err
	}
	frames, err := executeScenario(scenario)
	if err != nil {
		return err
	}
	printFrames(cmd.OutOrStdout(), frames, demoOpts.plain)
	return nil
}

func printFrames(out io.Writer, frames []demo.Frame, plain bool) {
	var total time.Duration
	for _, f := range frames {
		total += f.Delay
	}
	fmt.Fprintf(out, "Captured %d frames (%s)\n", len(frames), total.Round(time.Millisecond))

	for i, f := range frames {
		fmt.Fprintf(out, "\n=== Frame %d (delay: %v) ===\n", i, f.Delay)
		if f.Annotation != "" {
			fmt.Fprintf(out, "Annotation: %s\n", f.Annotation)
		}
		content := f.Content
		if plain {
			content = ansi.Strip(content)
		}
		fmt.Fprintln(out, content)
	}
}

func runDemoCast(cmd *cobra.Command, args []string) error {
	name := args[0]
	scenario, err := getScenario(name)
	if err != nil {
		return err
	}
	frames, err := executeScenario(scenario)
	if err != nil {
		return err
	}

	title := "Scholar: " + scenario.Description
	if demoOpts.output == "-" {
		return demo.GenerateASCIICast(cmd.OutOrStdout(), frames, scenario.Width, scenario.Height, title)
	}

	outputFile := demoOpts.output
	if outputFile == "" {
		outputFile = name + ".cast"
	}
	f, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}
	defer f.Close()

	if err := demo.GenerateASCIICast(f, frames, scenario.Width, scenario.Height, title); err != nil {
		return fmt.Errorf("error generating cast file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Generated %s (%d frames)\n", outputFile, len(frames))
	fmt.Fprintf(out, "Play with: asciinema play %s\n", outputFile)
	return nil
}
