package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/minerboard/internal/mocksource"
	"github.com/okian/minerboard/pkg/logger"
)

func main() {
	var (
		addr     = flag.String("addr", mocksource.DefaultAddr, "Listen address")
		rows     = flag.Int("rows", mocksource.DefaultRows, "Number of entries to generate")
		nftShare = flag.Float64("nft", mocksource.DefaultNFTShare, "Share of entries carrying nft_multiplier")
		seed     = flag.Int64("seed", 0, "Generator seed, 0 for a random one")
		certFile = flag.String("cert", "", "TLS certificate file")
		keyFile  = flag.String("key", "", "TLS key file")
		fail     = flag.Bool("fail", false, "Answer every request with HTTP 500")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		mocksource.ShowHelp()
		return
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	config := &mocksource.Config{
		Addr:     *addr,
		Rows:     *rows,
		NFTShare: *nftShare,
		Seed:     *seed,
		CertFile: *certFile,
		KeyFile:  *keyFile,
		Fail:     *fail,
	}
	if err := mocksource.Run(ctx, config, nil); err != nil {
		logger.Get().Error(ctx, "mock source failed", logger.Error(err))
		stop()
		os.Exit(1)
	}
}
