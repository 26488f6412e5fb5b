package main

//go run main.go input.txt
//go run main.go serve input.txt localhost:8000
//go run main.go follow localhost:8000
import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"main/src/client"
	"main/src/journal"
	"main/src/metrics"
	"main/src/model"
	"main/src/server"
	"main/src/sim"
)

const defaultFeedAddr = "localhost:8000"

func main() {
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()
	sugar := logger.Sugar()

	args := os.Args[1:]
	switch {
	case len(args) == 1 && args[0] != "serve" && args[0] != "follow":
		os.Exit(runSimulation(args[0], "", sugar))
	case len(args) >= 2 && args[0] == "serve":
		addr := defaultFeedAddr
		if len(args) >= 3 {
			addr = args[2]
		}
		os.Exit(runSimulation(args[1], addr, sugar))
	case len(args) == 2 && args[0] == "follow":
		if err := client.Follow(context.Background(), args[1], os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Usage: %s <input> | serve <input> [addr] | follow <addr>\n", os.Args[0])
		os.Exit(1)
	}
}

// runSimulation loads the roster, runs it to completion and writes the
// journal to output.txt. A non-empty feedAddr additionally streams the
// journal to connected followers.
func runSimulation(inputPath, feedAddr string, sugar *zap.SugaredLogger) int {
	trains, err := model.ReadRosterFile(inputPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	out, err := os.Create("output.txt")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer out.Close()

	j := journal.New(out, sugar)

	cfg := sim.Config{Journal: j, Logger: sugar}
	if os.Getenv("MTS_METRICS") != "" {
		cfg.Metrics = metrics.NewCollector()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if feedAddr != "" {
		feed := server.NewServer(feedAddr, j, sugar)
		go func() {
			if err := feed.Start(ctx); err != nil {
				sugar.Errorf("feed server: %v", err)
			}
		}()
	}

	runner := sim.NewRunner(trains, cfg)
	if err := runner.Run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	// End the feeds, then give followers a moment to drain their backlog.
	j.Close()
	if feedAddr != "" {
		time.Sleep(time.Second)
	}

	if cfg.Metrics != nil {
		if err := cfg.Metrics.WriteSummary(os.Getenv("MTS_METRICS")); err != nil {
			sugar.Errorf("metrics summary: %v", err)
		}
	}

	return 0
}
