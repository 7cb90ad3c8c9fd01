package flate

// Tracer receives a stage-transition notice at each of: zlib header parsed,
// preset-dictionary identifier read, each block header, each dynamic Huffman
// table build, and the final checksum comparison. It is satisfied by the
// logger capnslog.NewPackageLogger returns, without this package importing
// capnslog — the core stays a leaf with no logging dependency of its own.
type Tracer interface {
	Tracef(format string, args ...interface{})
}

// Options carries the decoder's configurable behavior in place of a
// process-global verbose flag.
type Options struct {
	// Trace, if non-nil, is called at each stage transition described above.
	Trace Tracer
	// StrictTrailer rejects a stream with no trailer bytes at all instead of
	// silently skipping checksum verification. A trailer of 1-3 bytes is
	// rejected as Truncated whether or not StrictTrailer is set.
	StrictTrailer bool
	// SkipHeaderCheck disables the multiple-of-31 zlib header validation
	// that is enforced by default.
	SkipHeaderCheck bool
}

func (o *Options) tracef(format string, args ...interface{}) {
	if o != nil && o.Trace != nil {
		o.Trace.Tracef(format, args...)
	}
}
