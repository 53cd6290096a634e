package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vigil-313/citymesh/pkg/config"
)

func main() {
	var cfgPath string
	var cfg *config.Config

	rootCmd := &cobra.Command{
		Use:   "citymesh",
		Short: "Procedural building-mesh generator with chunked world streaming",
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			loaded, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if err := loaded.Validate(); err != nil {
				return err
			}
			if err := config.InitLogger(loaded.Log); err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file")

	rootCmd.AddCommand(generateCmd(&cfg))
	rootCmd.AddCommand(streamCmd(&cfg))
	rootCmd.AddCommand(validateCmd(&cfg))
	rootCmd.AddCommand(serveCmd(&cfg))
	rootCmd.AddCommand(configCmd(&cfg))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func generateCmd(cfg **config.Config) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "generate [map-source]",
		Short: "Generate the full scene for a map and emit it as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runGenerate(*cfg, args[0], out)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write scene JSON to file instead of stdout")
	return cmd
}

func streamCmd(cfg **config.Config) *cobra.Command {
	var steps int
	var speed float64

	cmd := &cobra.Command{
		Use:   "stream [map-source]",
		Short: "Walk a simulated observer through the map and report per-tick stats",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runStream(*cfg, args[0], steps, speed)
		},
	}
	cmd.Flags().IntVarP(&steps, "steps", "n", 120, "number of simulated frames")
	cmd.Flags().Float64Var(&speed, "speed", 4.0, "observer speed in meters per frame")
	return cmd
}

func validateCmd(cfg **config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [map-source]",
		Short: "Check map data without generating geometry",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runValidate(*cfg, args[0])
		},
	}
}

func configCmd(cfg **config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration after defaults, file and env",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfig(*cfg)
		},
	}
}

func serveCmd(cfg **config.Config) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve [map-source]",
		Short: "Generate the scene and serve it over HTTP for inspection",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runServe(*cfg, args[0], port)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "HTTP server port (default from config)")
	return cmd
}
