package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/liserjrqlxue/goUtil/simpleUtil"
	"github.com/liserjrqlxue/version"

	"basejumper/pkg/config"
	"basejumper/pkg/form"
	"basejumper/pkg/pipeline"
	"basejumper/pkg/session"
	"basejumper/pkg/stats"
	"basejumper/pkg/webui"
)

// flag
var (
	cfgPath = flag.String(
		"config",
		"",
		"basejumper.toml path",
	)
	dumpConfig = flag.Bool(
		"dumpConfig",
		false,
		"print the effective config as TOML and exit",
	)
	serve = flag.Bool(
		"serve",
		false,
		"serve the form over http instead of running once",
	)
	addr = flag.String(
		"addr",
		"",
		"listen address for -serve, default from config",
	)
	invoker = flag.String(
		"invoker",
		"",
		"shell used to run the pipeline script, default "+pipeline.DefaultInvoker,
	)
	script = flag.String(
		"script",
		"",
		"pipeline script path, default "+pipeline.ScriptName+" next to the executable",
	)
	mode = flag.String(
		"mode",
		"",
		"basecalling mode: dorado or generic",
	)
	inputDir = flag.String(
		"i",
		"",
		"input dir, pod5 for dorado, fastq otherwise",
	)
	outputDir = flag.String(
		"o",
		"",
		"output dir",
	)
	kitName = flag.String(
		"kit",
		"",
		"sequencing kit name, dorado only",
	)
	quast = flag.String(
		"qa",
		"",
		"quality assessment: yes or no",
	)
	reference = flag.String(
		"ref",
		"",
		"reference fasta for quality assessment",
	)
	numBarcodes = flag.String(
		"n",
		"",
		"number of barcodes",
	)
	tsv = flag.String(
		"tsv",
		"",
		"also write the statistics as tsv",
	)
	xlsx = flag.String(
		"xlsx",
		"",
		"also write the statistics as xlsx",
	)
)

func main() {
	version.LogVersion()
	flag.Parse()

	var cfg = simpleUtil.HandleError(config.Load(*cfgPath))
	if *invoker != "" {
		cfg.Pipeline.Invoker = *invoker
	}
	if *script != "" {
		cfg.Pipeline.Script = *script
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *dumpConfig {
		simpleUtil.CheckErr(config.Write(os.Stdout, cfg))
		return
	}

	var (
		state  = cfg.State()
		dorado = state.Mode() == form.Dorado
	)
	if *mode != "" {
		dorado = *mode == form.Dorado
	}
	var s = session.New(cfg.Runner(), state)
	s.Update(formValues(dorado))

	if *serve {
		log.Fatal(webui.ListenAndServe(cfg.Server.Addr, s))
	}

	if *outputDir == "" {
		flag.PrintDefaults()
		log.Fatal("-o is required")
	}
	runOnce(s)
}

// formValues maps the flags that were set onto form fields.
func formValues(dorado bool) map[string]string {
	var values = make(map[string]string)
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "mode":
			values[form.FieldBasecalling] = *mode
		case "i":
			if dorado {
				values[form.FieldDoradoInputDir] = *inputDir
			} else {
				values[form.FieldGenericInputDir] = *inputDir
			}
		case "o":
			if dorado {
				values[form.FieldDoradoOutputDir] = *outputDir
			} else {
				values[form.FieldGenericOutputDir] = *outputDir
			}
		case "kit":
			values[form.FieldKitName] = *kitName
		case "qa":
			values[form.FieldQuast] = *quast
		case "ref":
			values[form.FieldReferenceFile] = *reference
		case "n":
			values[form.FieldNumBarcodes] = *numBarcodes
		}
	})
	return values
}

func runOnce(s *session.Session) {
	done, ok := s.Submit()
	if !ok {
		log.Fatal("submit refused")
	}
	var c = <-done
	var view = s.Snapshot()
	fmt.Println(view.Output)
	for _, table := range view.Tables {
		fmt.Println(table.HTML)
	}
	if errors.Is(c.Err, stats.ErrMissingOutputFile) {
		return
	}
	if c.Err != nil {
		log.Fatalf("run %s failed: %v", c.RunID, c.Err)
	}

	table, ok := s.LastTable()
	if !ok {
		return
	}
	if *tsv != "" {
		log.Printf("WriteTSV(%s)", *tsv)
		stats.WriteTSV(*tsv, table.Records)
	}
	if *xlsx != "" {
		log.Printf("SaveAs(%s)", *xlsx)
		simpleUtil.CheckErr(stats.WriteXlsx(*xlsx, table.Records))
	}
}
