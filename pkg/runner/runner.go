package runner

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/goqbc/internal/logging"
	"github.com/yaklabco/goqbc/pkg/compile"
	"github.com/yaklabco/goqbc/pkg/encoder"
	"github.com/yaklabco/goqbc/pkg/event"
	"github.com/yaklabco/goqbc/pkg/fsutil"
	"github.com/yaklabco/goqbc/pkg/parser"
	"github.com/yaklabco/goqbc/pkg/postprocess"
	"github.com/yaklabco/goqbc/pkg/qbsource"
)

// Run compiles opts.Input and writes the result to the output path.
//
// Diagnostics from the document itself land in the Result; the error
// return is reserved for faults of the tool or its environment, like a
// write failure or a malformed event stream.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Input == "" {
		return nil, errors.New("runner: no input file")
	}

	format := opts.effectiveFormat()
	copts := compile.Options{
		Format:       format,
		IncludePaths: opts.IncludePaths,
		Defines:      opts.Defines,
		Now:          opts.clock(),
		Debug:        opts.Debug,
	}

	st := compile.NewState()
	sink := event.NewSink()
	p := parser.New(st, copts, sink)
	p.DefinePresetMacros()

	res := &Result{Input: opts.Input, OutputPath: opts.outputPath()}

	if f, err := qbsource.Load(opts.Input); err != nil {
		pos := qbsource.Position{File: opts.Input, Line: 1, Column: 1}
		st.Errorf(pos, "unable to open file %q", opts.Input)
	} else {
		p.ParseUnit(f, false)
		if st.SectionLevel > 0 {
			st.Warnf(f.PositionAt(len(f.Content)),
				"%d missing [endsect] before end of file", st.SectionLevel)
		}
	}

	res.Diagnostics = st.Diagnostics
	res.ErrorCount = st.ErrorCount
	res.WarningCount = st.WarningCount
	res.SectionLevel = st.SectionLevel
	logging.FromContext(ctx).Debug("parsed unit",
		logging.FieldInput, opts.Input,
		logging.FieldErrors, st.ErrorCount,
		logging.FieldWarnings, st.WarningCount,
		logging.FieldSectionLevel, st.SectionLevel,
	)
	if st.ErrorCount > 0 {
		return res, nil
	}

	out, err := encoder.New(format).Encode(sink.Events())
	if err != nil {
		return res, fmt.Errorf("encode: %w", err)
	}
	out = append([]byte(prolog(format, sink.Events())), out...)

	if opts.PrettyPrint {
		out, err = postprocess.Tidy(out, opts.effectiveIndent(), opts.effectiveLineWidth())
		if err != nil {
			return res, fmt.Errorf("reflow output: %w", err)
		}
	}
	res.Output = out

	written, err := fsutil.WriteAtomicIfChanged(ctx, res.OutputPath, out, 0)
	if err != nil {
		return res, fmt.Errorf("write %s: %w", res.OutputPath, err)
	}
	res.Written = written
	return res, nil
}

// prolog returns the declaration block preceding the root element. The
// BoostBook doctype names the document kind, so the event stream is
// consulted for it.
func prolog(format compile.Format, events []event.Event) string {
	if format == compile.FormatHTML {
		return "<!DOCTYPE html>\n"
	}

	kind := "article"
	for _, ev := range events {
		if ev.Kind == event.KindStartElement && ev.Name == "document" {
			if k, ok := ev.Attribute("kind"); ok && compile.DocKinds[k] {
				kind = k
			}
			break
		}
	}
	return `<?xml version="1.0" encoding="UTF-8"?>` + "\n" +
		"<!DOCTYPE " + kind + ` PUBLIC "-//Boost//DTD BoostBook XML V1.0//EN"` + "\n" +
		`  "http://www.boost.org/tools/boostbook/dtd/boostbook.dtd">` + "\n"
}
