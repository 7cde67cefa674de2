package stats

// FileName is the summary the pipeline leaves in its output directory.
var FileName = "assembly_statistics.txt"

var Title = []string{
	"Barcode",
	"Status",
	"Total Length",
	"Mean Coverage",
}

var SheetName = "assembly_statistics"
