/*
Package assets builds the read-only asset library of a set of Director
archives: decoded images and texts per archive, plus the part and map records
parsed from "DB" text members.

# Loading

	lib, report, err := assets.LoadDir("assets", assets.DefaultArchives, assets.Options{})
	if err != nil {
	    log.Fatal(err)
	}
	fmt.Print(report.FormatTextCompact())

	img, ok := lib.GetImage("cddata.cxt", assets.Number(12))
	img, ok = lib.GetImage("cddata.cxt", assets.Name("30b001v0"))
	part, ok := lib.GetPartRecord(1)

Failures inside one archive never stop the load. They are logged through
Options.Logger and collected in the returned report, and the affected asset is
simply missing from the library. Every lookup therefore returns a found flag.

# Precedence

Archive names are matched case-insensitively. Within an archive the lowest
member number owns a name. Part and map records are global: when two archives
define the same id, the archive that comes later in the load order wins. The
load order is the order of the names or paths given to the loader and does
not depend on Options.Workers.

A Library is never modified after it is built and is safe for concurrent
reads.
*/
package assets
