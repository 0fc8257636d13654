// Package archive decodes a single Shockwave archive into its cast members
// and their contents: palette bitmaps, styled text, database records,
// animation charts and film-loop framing.
//
// Open works on bytes already in memory; OpenFile maps the file read-only
// for the duration of the decode. Decoded values never alias the input.
//
//	a, err := archive.OpenFile("cddata.cxt", archive.Options{Logger: logger})
//	if err != nil {
//	    return err // not an archive, or header/link tables unreadable
//	}
//	for num, img := range a.Images {
//	    fmt.Println(num, img.Name, img.Width, img.Height)
//	}
//	fmt.Print(a.Report.FormatTextCompact())
//
// Failures local to one member are recorded in Archive.Report and logged at
// Warn; they never fail the archive.
package archive
