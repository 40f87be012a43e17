// Package report renders resolved material sets as JSON, YAML or CSV
// reports and reads JSON and YAML reports back.
//
// # Writing Reports
//
//	w := report.NewWriter(report.FormatYAML)
//	if err := w.Write(os.Stdout, sets); err != nil {
//	    log.Fatal(err)
//	}
//
// JSON and YAML reports share one structure: a "sets" list of
// dto.SetRecord entries with passes keyed by canonical pass name and the
// advisory status under its stable keys, e.g. "Missing critical passes".
//
// # Reading Reports
//
//	sets, err := report.Read(f, report.FormatJSON)
package report
