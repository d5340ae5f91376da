// Command kpdg searches for the minimum density ratio theta over all
// T_k-free k-partially-directed hypergraphs on up to n vertices.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/plan-systems/klog"

	"github.com/2x3systems/kpdg/kpdg"
	"github.com/2x3systems/kpdg/search"
)

func main() {
	fset := flag.NewFlagSet("kpdg", flag.ExitOnError)
	klog.InitFlags(fset)

	k := fset.Int("k", 3, "edge size K (2 <= k <= n <= 7)")
	n := fset.Int("n", 6, "vertex cap N (2 <= k <= n <= 7)")
	workers := fset.Int("workers", 0, "worker pool size; 0 means GOMAXPROCS")
	checkpoint := fset.String("checkpoint", "", "directory for per-level badger checkpoints; empty means in-memory only")

	fset.Set("logtostderr", "true")
	fset.Set("v", "2")
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})

	if err := fset.Parse(os.Args[1:]); err != nil {
		klog.Flush()
		os.Exit(2)
	}

	if err := run(*k, *n, *workers, *checkpoint); err != nil {
		klog.Errorf("kpdg: %v", err)
		klog.Flush()
		os.Exit(1)
	}
	klog.Flush()
}

func run(k, n, workers int, checkpoint string) error {
	d := search.NewDriver(search.Options{
		K:             k,
		N:             n,
		Workers:       workers,
		CheckpointDir: checkpoint,
	})

	klog.Infof("kpdg: searching k=%d n=%d workers=%d checkpoint=%q", k, n, workers, checkpoint)

	result, err := d.Run(context.Background())
	d.Counters().Print(os.Stdout)
	if err != nil {
		return err
	}

	theta := result.MinTheta
	fmt.Printf("\nminimum theta = %s\n", theta)
	if !theta.Equal(kpdg.InfiniteTheta) {
		fmt.Printf("witness: %s\n", witnessString(result.Witness))
	}
	return nil
}

func witnessString(edges []kpdg.Edge) string {
	g := kpdg.NewGraph()
	for _, e := range edges {
		g.AddEdge(e)
	}
	return g.String()
}
