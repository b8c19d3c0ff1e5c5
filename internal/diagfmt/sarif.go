package diagfmt

import (
	"io"
	"path/filepath"
	"sort"

	"github.com/owenrumney/go-sarif/v3/pkg/report/v210/sarif"

	"github.com/jsrustad/stylefix/internal/diag"
	"github.com/jsrustad/stylefix/internal/rules"
	"github.com/jsrustad/stylefix/internal/source"
)

const defaultToolURI = "https://github.com/jsrustad/stylefix"

// Sarif writes the bag as a SARIF 2.1.0 report, the interchange format
// GitHub Code Scanning and most CI systems ingest.
func Sarif(w io.Writer, bag *diag.Bag, fs *source.FileSet, meta SarifRunMeta) error {
	if meta.ToolName == "" {
		meta.ToolName = "stylefix"
	}
	if meta.ToolURI == "" {
		meta.ToolURI = defaultToolURI
	}

	report := sarif.NewReport()
	run := sarif.NewRunWithInformationURI(meta.ToolName, meta.ToolURI)
	if meta.ToolVersion != "" {
		run.Tool.Driver.WithVersion(meta.ToolVersion)
	}

	items := bag.Items()

	seenCodes := map[string]bool{}
	seenFiles := map[string]bool{}
	var codes, files []string
	for _, d := range items {
		id := d.Code.ID()
		if !seenCodes[id] {
			seenCodes[id] = true
			codes = append(codes, id)
		}
		path := filepath.ToSlash(formatPath(fs, d.Primary.File, PathModeRelative))
		if !seenFiles[path] {
			seenFiles[path] = true
			files = append(files, path)
		}
	}
	sort.Strings(codes)
	sort.Strings(files)

	for _, id := range codes {
		def := run.AddRule(id)
		if r, ok := rules.ByID(id); ok {
			def.WithShortDescription(sarif.NewMultiformatMessageString().WithText(r.Description()))
		}
	}
	for _, path := range files {
		run.AddDistinctArtifact(path)
	}

	for _, d := range items {
		path := filepath.ToSlash(formatPath(fs, d.Primary.File, PathModeRelative))
		start, end := fs.Resolve(d.Primary)

		region := sarif.NewRegion().
			WithStartLine(int(start.Line)).
			WithStartColumn(int(start.Col)).
			WithEndLine(int(end.Line)).
			WithEndColumn(int(end.Col))

		loc := sarif.NewPhysicalLocation().
			WithArtifactLocation(sarif.NewSimpleArtifactLocation(path)).
			WithRegion(region)

		result := sarif.NewRuleResult(d.Code.ID()).
			WithMessage(sarif.NewTextMessage(d.Message)).
			WithLevel(sarifLevel(d.Severity)).
			WithLocations([]*sarif.Location{sarif.NewLocationWithPhysicalLocation(loc)})
		run.AddResult(result)
	}

	report.AddRun(run)
	return report.PrettyWrite(w)
}

func sarifLevel(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	default:
		return "note"
	}
}
