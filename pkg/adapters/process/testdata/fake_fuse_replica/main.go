package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"
)

// Stand-in for fuse_replica. Behavior is driven by environment variables:
// FAKE_FUSE_EXIT (exit code), FAKE_FUSE_SLEEP (duration before writing).
func main() {
	meshPath := flag.String("mesh_output_path", "", "mesh output")
	esdfPath := flag.String("esdf_output_path", "", "esdf output")
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: fake_fuse_replica <dataset> --mesh_output_path P --esdf_output_path P")
		os.Exit(2)
	}
	// The dataset comes first, so flags are parsed after it.
	dataset := os.Args[1]
	if err := flag.CommandLine.Parse(os.Args[2:]); err != nil {
		os.Exit(2)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	if d, err := time.ParseDuration(os.Getenv("FAKE_FUSE_SLEEP")); err == nil {
		select {
		case sig := <-sigs:
			fmt.Fprintf(os.Stderr, "interrupted by %s\n", sig)
			os.Exit(130)
		case <-time.After(d):
		}
	}

	fmt.Printf("fusing %s\n", dataset)
	for _, p := range []string{*meshPath, *esdfPath} {
		if p == "" {
			continue
		}
		if err := os.WriteFile(p, []byte("ply\nformat ascii 1.0\nend_header\n"), 0644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	if code, err := strconv.Atoi(os.Getenv("FAKE_FUSE_EXIT")); err == nil {
		os.Exit(code)
	}
}
