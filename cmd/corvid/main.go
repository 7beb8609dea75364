// corvid is a UCI chess engine.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/corvidchess/corvid/pkg/book"
	"github.com/corvidchess/corvid/pkg/engine"
	"github.com/corvidchess/corvid/pkg/engine/console"
	"github.com/corvidchess/corvid/pkg/engine/uci"
	"github.com/seekerror/logw"
)

var (
	hash    = flag.Uint("hash", 16, "Transposition table size in MB")
	threads = flag.Uint("threads", 1, "Number of Lazy-SMP search threads")
	noise   = flag.Uint("noise", 1, "Evaluation noise in centipawns (zero if deterministic)")
	depth   = flag.Uint("depth", 0, "Default search depth limit (zero if unlimited)")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: corvid [options]

corvid is a UCI chess engine.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	e := engine.New(ctx, "corvid", "corvidchess", engine.WithOptions(engine.Options{
		Hash:    *hash,
		Threads: *threads,
		Noise:   *noise,
		Depth:   *depth,
	}), engine.WithBook(book.NopBook{}))

	in := engine.ReadStdinLines(ctx)
	switch <-in {
	case uci.ProtocolName:
		// Use UCI protocol.

		driver, out := uci.NewDriver(ctx, e, in)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	case console.ProtocolName:
		driver, out := console.NewDriver(ctx, e, in)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	default:
		flag.Usage()
		logw.Exitf(ctx, "Protocol not supported")
	}
}
