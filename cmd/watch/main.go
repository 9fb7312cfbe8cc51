package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pinkcart/api/pkg/logger"
	"github.com/pinkcart/api/pkg/notify"
)

// watch tails the join-notification feed of a running API and prints each
// toast to the terminal, using the same polling loop the storefront runs.
func main() {
	baseURL := flag.String("url", "http://localhost:8080", "base URL of the API")
	interval := flag.Duration("interval", notify.DefaultInterval, "polling interval")
	flag.Parse()

	loggers := logger.New("info")
	watchLog := loggers.Sub("watch")

	fetcher := notify.NewAPIFetcher(*baseURL, nil)
	poller := notify.NewPoller(fetcher, watchLog,
		notify.WithInterval(*interval),
		notify.OnToast(func(t notify.Toast) {
			fmt.Printf("[%s] %s\n", t.JoinedAt.Local().Format(time.Kitchen), t.Message())
		}),
	)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop
		cancel()
	}()

	watchLog.WithField("url", *baseURL).Info("watching join notifications")
	poller.Run(ctx)
}
