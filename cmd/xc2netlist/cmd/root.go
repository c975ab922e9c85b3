package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/OpenTraceLab/xc2netlist/internal/config"
	"github.com/OpenTraceLab/xc2netlist/internal/ctxlog"
	"github.com/OpenTraceLab/xc2netlist/internal/logging"
	"github.com/OpenTraceLab/xc2netlist/pkg/builder"
	"github.com/OpenTraceLab/xc2netlist/pkg/jed"
	"github.com/OpenTraceLab/xc2netlist/pkg/netlist"
	"github.com/OpenTraceLab/xc2netlist/pkg/xc2"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	outFormat  string
	creator    string
	validate   bool
	logLevel   string
	logFormat  string

	// settings is resolved from defaults, the config file and flags
	settings = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "xc2netlist <file.jed>",
	Short: "Convert a CoolRunner-II JED bitstream into a yosys JSON netlist",
	Long: `Decode a CoolRunner-II (XC2C) JEDEC bitstream, walk the device structure
and write the resulting netlist to standard output.

Examples:
  xc2netlist design.jed > design.json          # yosys JSON netlist
  xc2netlist --format kicad design.jed         # KiCad-style netlist
  xc2netlist --format dot design.jed | dot -Tsvg > design.svg
  xc2netlist info design.jed                   # bitstream summary`,
	Args:              cobra.ExactArgs(1),
	Version:           "0.1.0",
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runConvert,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "HCL configuration file")
	flags.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flags.StringVar(&logFormat, "log-format", "text", "log format (text, json)")

	rootCmd.Flags().StringVarP(&outFormat, "format", "f", config.FormatJSON,
		"output format (json, kicad, dot)")
	rootCmd.Flags().StringVar(&creator, "creator", "", "creator label written into the netlist")
	rootCmd.Flags().BoolVar(&validate, "validate", true, "check the netlist against the schema before writing")
}

// setup resolves the configuration and attaches a logger to the command context
func setup(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	// Explicit flags win over the config file
	if f := cmd.Flags().Lookup("format"); f != nil && f.Changed {
		cfg.Format = outFormat
	}
	if f := cmd.Flags().Lookup("creator"); f != nil && f.Changed {
		cfg.Creator = creator
	}
	if f := cmd.Flags().Lookup("validate"); f != nil && f.Changed {
		cfg.Validate = validate
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.LogFormat = logFormat
	}
	if err := cfg.Check(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	settings = cfg
	cmd.SetContext(ctxlog.WithLogger(cmd.Context(), logger))
	return nil
}

// loadBitstream reads and decodes a JED file
func loadBitstream(path string) (*xc2.Bitstream, error) {
	parser, err := jed.NewParser()
	if err != nil {
		return nil, fmt.Errorf("failed to create parser: %w", err)
	}

	f, err := parser.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read jed: %w", err)
	}

	bs, err := xc2.FromJED(f)
	if err != nil {
		return nil, fmt.Errorf("failed to process jed: %w", err)
	}
	return bs, nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	logger := ctxlog.FromContext(cmd.Context())

	bs, err := loadBitstream(args[0])
	if err != nil {
		return err
	}
	logger.Debug("bitstream decoded", "part", bs.Part().String(), "fuses", bs.FuseCount())

	n := builder.Assemble(bs,
		builder.WithLogger(logger),
		builder.WithCreator(settings.Creator))
	top := n.Modules[builder.TopModule]

	if settings.Validate {
		v, err := netlist.NewValidator()
		if err != nil {
			return err
		}
		if err := v.Validate(n); err != nil {
			return err
		}
	}

	// Render fully before writing so that a failure leaves stdout empty
	var buf bytes.Buffer
	switch settings.Format {
	case config.FormatJSON:
		if err := netlist.WriteJSON(&buf, n); err != nil {
			return err
		}
	case config.FormatKiCad:
		s, err := top.ExportKiCad(bs.Part().String())
		if err != nil {
			return err
		}
		if settings.Validate {
			if err := netlist.CheckSexp(s); err != nil {
				return err
			}
		}
		buf.WriteString(s)
	case config.FormatDOT:
		if err := top.WriteDOT(&buf, builder.TopModule); err != nil {
			return err
		}
	}

	st := top.Stats()
	logger.Info("netlist written",
		"part", bs.Part().String(),
		"format", settings.Format,
		"cells", st.Cells,
		"nets", st.Nets,
		"ports", st.Ports)

	_, err = cmd.OutOrStdout().Write(buf.Bytes())
	return err
}
