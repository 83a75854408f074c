// Package composer writes the amalgamated header: the merged license, the
// banner, the leaf manifest, the include guard and one bannered section per
// header.
package composer

import (
	"bytes"
	"context"
	"strings"

	"github.com/specialistvlad/amalgamate/internal/ctxlog"
	"github.com/specialistvlad/amalgamate/internal/license"
	"github.com/specialistvlad/amalgamate/internal/session"
)

// DefaultSourceURL is linked from the banner when Options.SourceURL is empty.
const DefaultSourceURL = "https://github.com/ludocode/ghost"

// Options control the names written into the amalgamation.
type Options struct {
	Library   string
	Prefix    string
	SourceURL string
}

// Compose renders res. The result is byte for byte identical for identical
// input.
func Compose(ctx context.Context, res *session.Result, opts Options) []byte {
	logger := ctxlog.FromContext(ctx)

	sourceURL := opts.SourceURL
	if sourceURL == "" {
		sourceURL = DefaultSourceURL
	}
	upper := strings.ToUpper(opts.Prefix) + "_" + strings.ToUpper(opts.Library)

	var b bytes.Buffer
	b.WriteString(strings.Join(license.Open, "\n"))
	b.WriteString("\n")
	for _, c := range res.Copyrights {
		b.WriteString(c)
		b.WriteString("\n")
	}
	b.WriteString(strings.Join(license.Close, "\n"))
	b.WriteString("\n\n")

	b.WriteString("/*\n")
	b.WriteString(" * This is an amalgamated " + displayName(opts.Library) + " header.\n")
	b.WriteString(" *\n")
	b.WriteString(" * See the official " + displayName(opts.Library) + " source:\n")
	b.WriteString(" *     " + sourceURL + "\n")
	b.WriteString(" */\n\n")

	b.WriteString("/*\n")
	b.WriteString(" * The following leaf headers were amalgamated into this file:\n")
	b.WriteString(" *\n")
	for _, leaf := range res.Leaves {
		b.WriteString(" *     " + leaf + "\n")
	}
	b.WriteString(" */\n\n")

	guard := upper + "_AMALGAMATED_H_INCLUDED"
	b.WriteString("#ifndef " + guard + "\n")
	b.WriteString("#define " + guard + "\n\n")
	b.WriteString("#define " + upper + "_IMPL_AMALGAMATED 1\n\n")

	for i, sec := range res.Sections {
		if strings.TrimSpace(sec.Body) == "" {
			logger.Info("Skipping empty header.", "header", sec.Key)
			continue
		}
		logger.Debug("Writing header.", "header", sec.Key, "position", i)
		writeSection(&b, sec)
	}

	b.WriteString("\n#endif\n")
	return b.Bytes()
}

func writeSection(b *bytes.Buffer, sec session.Section) {
	stars := strings.Repeat("*", len(sec.Key))
	b.WriteString("\n")
	b.WriteString("/**" + stars + "**\n")
	b.WriteString(" * " + sec.Key + "\n")
	b.WriteString(" **" + stars + "**/\n")
	b.WriteString("\n")
	b.WriteString(sec.Body)
	b.WriteString("\n")
}

// displayName capitalizes the library name for prose: ghost becomes Ghost.
func displayName(library string) string {
	if library == "" {
		return library
	}
	return strings.ToUpper(library[:1]) + library[1:]
}
