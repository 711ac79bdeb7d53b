package main

import (
	"flag"
	"fmt"
	"math/big"
	"net/http"
	"os"
	"strings"

	"github.com/plan-systems/klog"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/2x3systems/gorev/librev"
	"github.com/2x3systems/gorev/librev/factor"
	"github.com/2x3systems/gorev/pyrev"
	"github.com/2x3systems/gorev/rev"
)

var (
	flagOp       = flag.String("op", "", "operation to apply to -a and -b (star, dagger, gcd, lcm or ★ † ▼ ▲)")
	flagA        = flag.String("a", "", "slot 1 graph expression")
	flagB        = flag.String("b", "", "slot 2 graph expression")
	flagEncode   = flag.String("encode", "", "graph expression to encode")
	flagDecode   = flag.String("decode", "", "number to decode")
	flagExamples = flag.Bool("examples", false, "runs the built-in examples")
	flagSVG      = flag.String("svg", "", "writes the result graph to this SVG file")
	flagCache    = flag.String("cache", "", "factorization cache dir (\"mem\" for in-memory)")
	flagMetrics  = flag.String("metrics", "", "serves prometheus metrics on this address, e.g. :9102")
)

func main() {

	flag.Set("logtostderr", "true")
	flag.Set("v", "1")

	fset := flag.NewFlagSet("", flag.ContinueOnError)
	klog.InitFlags(fset)
	fset.Set("logtostderr", "true")
	fset.Set("v", "1")
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})

	flag.Parse()

	if *flagMetrics != "" {
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(*flagMetrics, nil); err != nil {
				klog.Errorf("metrics server: %v", err)
			}
		}()
	}

	engOpts := factor.EngineOpts{
		OnLookup: librev.ObserveCacheLookup,
	}
	if *flagCache != "" {
		engOpts.UseCache = true
		if *flagCache != "mem" {
			engOpts.CachePath = *flagCache
		}
	}

	var err error
	switch {
	case *flagExamples, *flagOp != "", *flagEncode != "", *flagDecode != "":
		err = runMachine(engOpts)
	default:
		pyrev.Configure(pyrev.SessionOpts{
			Factor: engOpts,
		})
		err = runPython(flag.Arg(0))
	}

	klog.Flush()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runMachine(engOpts factor.EngineOpts) error {
	eng, err := factor.NewEngine(engOpts)
	if err != nil {
		return err
	}
	defer eng.Close()

	m := librev.NewMachine(librev.MachineOpts{
		Factors: eng,
	})

	var Xout *rev.Graph
	switch {
	case *flagExamples:
		return runExamples(m)
	case *flagEncode != "":
		if Xout, err = librev.ParseGraphExpr(*flagEncode); err != nil {
			return err
		}
	case *flagDecode != "":
		n, ok := new(big.Int).SetString(strings.TrimSpace(*flagDecode), 10)
		if !ok {
			return fmt.Errorf("-decode: %q is not an integer", *flagDecode)
		}
		if n.Sign() < 0 {
			return rev.ErrNegativeNumber
		}
		Xout = m.Decode(n)
	default:
		op, err := rev.ParseOp(*flagOp)
		if err != nil {
			return err
		}
		X1, err := librev.ParseGraphExpr(*flagA)
		if err != nil {
			return err
		}
		X2, err := librev.ParseGraphExpr(*flagB)
		if err != nil {
			return err
		}
		if Xout, err = m.Apply(op, X1, X2); err != nil {
			return err
		}
	}

	buf := strings.Builder{}
	m.WriteGraphLine(&buf, Xout, 1, rev.DefaultPrintOpts)
	fmt.Print(buf.String())

	if *flagSVG != "" {
		file, err := os.Create(*flagSVG)
		if err != nil {
			return err
		}
		defer file.Close()
		if err = librev.WriteSVG(file, Xout, m.Colors()); err != nil {
			return err
		}
	}
	return nil
}

func runExamples(m *librev.Machine) error {
	failed := 0
	for _, ex := range librev.Examples {
		res, err := m.RunExample(ex)
		if err != nil {
			return err
		}
		status := "ok"
		if !res.Matches() {
			status = "MISMATCH"
			failed++
		}
		fmt.Printf("%-11s %-52s %-24s %s\n", ex.ID, ex.Title, res.Got.Display, status)
	}
	if failed > 0 {
		return fmt.Errorf("%d example(s) did not match", failed)
	}
	return nil
}
