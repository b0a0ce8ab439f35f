package main

import (
	"flag"
	"os"

	"github.com/plan-systems/klog"
	"github.com/spf13/cobra"
)

var (
	configPath string
	cliFlags   Config

	rootCmd = &cobra.Command{
		Use:   "goloops",
		Short: "Extracts edge loops and guide curves from quad meshes",
		Long: `goloops traces the edge loops of a quad-dominant mesh (Wavefront OBJ)
and emits smooth guide curves that follow them.`,
		SilenceUsage: true,
	}
)

func init() {
	fset := flag.NewFlagSet("", flag.ContinueOnError)
	klog.InitFlags(fset)
	fset.Set("logtostderr", "true")
	fset.Set("v", "0")

	rootCmd.PersistentFlags().AddGoFlagSet(fset)
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (opts, catalog, verbosity)")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd, fset)
	}
}

func main() {
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})

	err := rootCmd.Execute()
	klog.Flush()
	if err != nil {
		os.Exit(1)
	}
}
