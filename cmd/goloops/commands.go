package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/2x3systems/goloops/goloops"
	"github.com/2x3systems/goloops/libloops"
	"github.com/2x3systems/goloops/libloops/catalog"
	"github.com/plan-systems/klog"
	"github.com/spf13/cobra"
)

var (
	printHandles bool
	printLabel   string
	printPrec    int
	numJobs      int

	curvesCmd = &cobra.Command{
		Use:   "curves <mesh.obj>...",
		Short: "Prints the guide curves of one or more meshes, one per line",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runCurves,
	}

	pathsCmd = &cobra.Command{
		Use:   "paths <mesh.obj>",
		Short: "Prints the traced edge loops of a mesh as vertex index runs",
		Args:  cobra.ExactArgs(1),
		RunE:  runPaths,
	}

	seedsCmd = &cobra.Command{
		Use:   "seeds <mesh.obj>",
		Short: "Prints the seed edges a coverage pass would start from",
		Args:  cobra.ExactArgs(1),
		RunE:  runSeeds,
	}
)

func init() {
	for _, cmd := range []*cobra.Command{curvesCmd, pathsCmd, seedsCmd} {
		addOptsFlags(cmd, cmd == curvesCmd)
		cmd.Flags().StringVar(&printLabel, "label", "", "prefix for each output line")
		cmd.Flags().IntVar(&printPrec, "prec", goloops.DefaultPrintOpts.Prec, "decimal places for coordinates")
		rootCmd.AddCommand(cmd)
	}
	curvesCmd.Flags().BoolVar(&printHandles, "handles", false, "also print each point's Bezier handles")
	curvesCmd.Flags().IntVarP(&numJobs, "jobs", "j", 0, "meshes processed in parallel (0 for one per CPU)")
}

func printOpts() goloops.PrintOpts {
	return goloops.PrintOpts{
		Label:   printLabel,
		Handles: printHandles,
		Prec:    printPrec,
	}
}

func runCurves(cmd *cobra.Command, args []string) error {
	var cat goloops.Catalog
	if activeConfig.Catalog != "" {
		var err error
		cat, err = catalog.OpenCatalog(goloops.CatalogOpts{
			DbPathName: activeConfig.Catalog,
		})
		if err != nil {
			return err
		}
		defer cat.Close()
	}

	gen := func(X goloops.Mesh, opts goloops.Opts) ([]goloops.Curve, error) {
		return catalog.GuideCurves(cat, X, opts)
	}

	count, err := libloops.StreamOBJFiles(args).
		GuideCurves(gen, activeConfig.Opts, numJobs).
		Print(cmd.OutOrStdout(), printOpts(), len(args) > 1).
		PullAll()
	klog.V(1).Infof("processed %d meshes", count)
	return err
}

func runPaths(cmd *cobra.Command, args []string) error {
	X, err := libloops.ReadOBJFile(args[0])
	if err != nil {
		return err
	}
	lw, err := libloops.NewLoopWalker(X, activeConfig.Opts)
	if err != nil {
		return err
	}
	paths, err := lw.CoverMesh()
	if err != nil {
		return err
	}
	return goloops.WritePaths(cmd.OutOrStdout(), paths, printOpts())
}

func runSeeds(cmd *cobra.Command, args []string) error {
	X, err := libloops.ReadOBJFile(args[0])
	if err != nil {
		return err
	}
	lw, err := libloops.NewLoopWalker(X, activeConfig.Opts)
	if err != nil {
		return err
	}
	seeds, err := lw.SelectSeeds()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	b := strings.Builder{}
	for _, seed := range seeds {
		a, z := X.EdgeVerts(seed.Edge)
		b.Reset()
		fmt.Fprintf(&b, "edge %d (%d-%d): ", seed.Edge, a, z)
		if err = goloops.WritePaths(&b, []goloops.Path{seed.Path}, goloops.PrintOpts{Label: printLabel}); err != nil {
			return err
		}
		if _, err = io.WriteString(out, b.String()); err != nil {
			return err
		}
	}
	return nil
}
