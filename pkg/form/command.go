package form

import (
	"strings"

	"github.com/samber/lo"
)

// Invocation is the positional argument list handed to the pipeline script.
// It is built by Compose and not modified afterwards.
type Invocation struct {
	Mode          string
	InputDir      string
	OutputDir     string
	Quast         string
	ReferenceFile string
	NumBarcodes   string
	KitName       string
}

// Compose turns the form into an invocation. It does not look at the file
// system: empty or missing paths pass through unchanged.
func Compose(state State) Invocation {
	var (
		mode   = state.Get(FieldBasecalling)
		dorado = mode == Dorado
		quast  = lo.Ternary(state.Get(FieldQuast) == Yes, Yes, No)

		inputDir, outputDir, kitName string
	)
	if dorado {
		inputDir = state.Get(FieldDoradoInputDir)
		outputDir = state.Get(FieldDoradoOutputDir)
		kitName = state.Get(FieldKitName)
	} else {
		inputDir = state.Get(FieldGenericInputDir)
		outputDir = state.Get(FieldGenericOutputDir)
		kitName = NA
	}

	return Invocation{
		Mode:          mode,
		InputDir:      inputDir,
		OutputDir:     outputDir,
		Quast:         quast,
		ReferenceFile: lo.Ternary(quast == Yes, state.Get(FieldReferenceFile), NA),
		NumBarcodes:   state.Get(FieldNumBarcodes),
		KitName:       kitName,
	}
}

// Args returns the eight positional arguments in the order the script reads
// them. The output directory appears twice.
func (inv Invocation) Args() []string {
	return []string{
		inv.Mode,
		inv.InputDir,
		inv.OutputDir,
		inv.Quast,
		inv.ReferenceFile,
		inv.NumBarcodes,
		inv.OutputDir,
		inv.KitName,
	}
}

func (inv Invocation) String() string {
	return strings.Join(inv.Args(), " ")
}
