package form

// basecalling modes
const (
	Dorado  = "dorado"
	Generic = "generic"
)

// quality assessment selector
const (
	Yes = "yes"
	No  = "no"
)

// NA replaces optional arguments the pipeline must not use.
const NA = "NA"

// field names, as the form posts them
const (
	FieldBasecalling      = "basecalling"
	FieldDoradoInputDir   = "doradoInputDir"
	FieldDoradoOutputDir  = "doradoOutputDir"
	FieldGenericInputDir  = "genericInputDir"
	FieldGenericOutputDir = "genericOutputDir"
	FieldKitName          = "kit-name"
	FieldQuast            = "quast"
	FieldReferenceFile    = "referenceFile"
	FieldNumBarcodes      = "numBarcodes"
)

var FieldList = []string{
	FieldBasecalling,
	FieldDoradoInputDir,
	FieldDoradoOutputDir,
	FieldGenericInputDir,
	FieldGenericOutputDir,
	FieldKitName,
	FieldQuast,
	FieldReferenceFile,
	FieldNumBarcodes,
}

// defaults of the selectors on first load
var (
	DefaultMode  = Dorado
	DefaultQuast = No
)
