// Package flate implements a decoder for RFC 1950 zlib-wrapped RFC 1951
// DEFLATE streams: a bit-stream reader, canonical Huffman table
// construction, and a three-mode block decoder (stored / fixed-Huffman /
// dynamic-Huffman) with LZ77 back-reference expansion and Adler-32 trailer
// verification. Encoding is not implemented.
package flate

// codeLengthOrder is the fixed permutation assigning the HCLEN 3-bit fields
// to the 19-entry code-length alphabet.
var codeLengthOrder = [19]int{16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15}

type lengthEntry struct {
	base  int
	extra uint
}

// lengthTable maps a literal/length symbol (257..285, indexed from 0) to
// its (base, extra_bits) pair.
var lengthTable = [29]lengthEntry{
	{3, 0}, {4, 0}, {5, 0}, {6, 0}, {7, 0}, {8, 0}, {9, 0}, {10, 0},
	{11, 1}, {13, 1}, {15, 1}, {17, 1},
	{19, 2}, {23, 2}, {27, 2}, {31, 2},
	{35, 3}, {43, 3}, {51, 3}, {59, 3},
	{67, 4}, {83, 4}, {99, 4}, {115, 4},
	{131, 5}, {163, 5}, {195, 5}, {227, 5},
	{258, 0},
}

// distanceTable maps a distance symbol (0..29) to its (base, extra_bits).
var distanceTable = [30]lengthEntry{
	{1, 0}, {2, 0}, {3, 0}, {4, 0},
	{5, 1}, {7, 1},
	{9, 2}, {13, 2},
	{17, 3}, {25, 3},
	{33, 4}, {49, 4},
	{65, 5}, {97, 5},
	{129, 6}, {193, 6},
	{257, 7}, {385, 7},
	{513, 8}, {769, 8},
	{1025, 9}, {1537, 9},
	{2049, 10}, {3073, 10},
	{4097, 11}, {6145, 11},
	{8193, 12}, {12289, 12},
	{16385, 13}, {24577, 13},
}

// Decode decompresses a zlib-wrapped DEFLATE stream from input into output,
// returning the number of bytes written. output's length is the caller's
// capacity; Decode never writes beyond it and never reallocates. opts may be
// nil for the default (lenient) behavior.
func Decode(input []byte, output []byte, opts *Options) (int, error) {
	br := newBitReader(input)

	if err := parseZlibHeader(br, opts); err != nil {
		return 0, err
	}

	fixedLit, fixedDist, err := fixedHuffmanTables()
	if err != nil {
		return 0, err
	}

	cursor := 0
	for {
		bfinal, err := br.getBits(1)
		if err != nil {
			return 0, err
		}
		btype, err := br.getBits(2)
		if err != nil {
			return 0, err
		}
		opts.tracef("flate: block header bfinal=%d btype=%d", bfinal, btype)

		switch btype {
		case 0:
			cursor, err = decodeStored(br, output, cursor)
		case 1:
			cursor, err = decodeCompressed(br, output, cursor, fixedLit, fixedDist)
		case 2:
			var lit, dist *huffman
			lit, dist, err = buildDynamicTables(br, opts)
			if err != nil {
				return 0, err
			}
			cursor, err = decodeCompressed(br, output, cursor, lit, dist)
		default:
			return 0, newErr("block", InvalidBlockType)
		}
		if err != nil {
			return 0, err
		}
		if bfinal != 0 {
			break
		}
	}

	if err := verifyTrailer(br, output[:cursor], opts); err != nil {
		return 0, err
	}
	return cursor, nil
}

// fixedHuffmanTables builds the RFC 1951 section 3.2.6 fixed literal/length
// and distance tables.
func fixedHuffmanTables() (*huffman, *huffman, error) {
	litLengths := make([]int, 288)
	for s := 0; s <= 143; s++ {
		litLengths[s] = 8
	}
	for s := 144; s <= 255; s++ {
		litLengths[s] = 9
	}
	for s := 256; s <= 279; s++ {
		litLengths[s] = 7
	}
	for s := 280; s <= 287; s++ {
		litLengths[s] = 8
	}
	lit, err := newHuffman(litLengths)
	if err != nil {
		return nil, nil, err
	}

	distLengths := make([]int, 30)
	for s := range distLengths {
		distLengths[s] = 5
	}
	dist, err := newHuffman(distLengths)
	if err != nil {
		return nil, nil, err
	}
	return lit, dist, nil
}

// decodeStored copies a stored (BTYPE=0) block's payload verbatim.
func decodeStored(br *bitReader, output []byte, cursor int) (int, error) {
	br.alignByte()

	lenLo, err := br.nextByte()
	if err != nil {
		return cursor, err
	}
	lenHi, err := br.nextByte()
	if err != nil {
		return cursor, err
	}
	nlenLo, err := br.nextByte()
	if err != nil {
		return cursor, err
	}
	nlenHi, err := br.nextByte()
	if err != nil {
		return cursor, err
	}

	length := int(lenLo) | int(lenHi)<<8
	nlength := int(nlenLo) | int(nlenHi)<<8
	if nlength != (^length & 0xFFFF) {
		return cursor, newErr("block", LengthMismatch)
	}

	for i := 0; i < length; i++ {
		b, err := br.nextByte()
		if err != nil {
			return cursor, err
		}
		if cursor >= len(output) {
			return cursor, newErr("block", OutputOverflow)
		}
		output[cursor] = b
		cursor++
	}
	return cursor, nil
}

// decodeCompressed runs the literal/length/distance loop against the given
// Huffman tables until end-of-block (symbol 256).
func decodeCompressed(br *bitReader, output []byte, cursor int, lit, dist *huffman) (int, error) {
	for {
		symbol, err := lit.decodeSymbol(br)
		if err != nil {
			return cursor, err
		}

		switch {
		case symbol < 256:
			if cursor >= len(output) {
				return cursor, newErr("literal", OutputOverflow)
			}
			output[cursor] = byte(symbol)
			cursor++
		case symbol == 256:
			return cursor, nil
		case symbol <= 285:
			entry := lengthTable[symbol-257]
			extra, err := br.getBits(entry.extra)
			if err != nil {
				return cursor, err
			}
			length := entry.base + int(extra)

			dsymbol, err := dist.decodeSymbol(br)
			if err != nil {
				return cursor, err
			}
			if dsymbol >= len(distanceTable) {
				return cursor, newErr("backref", BadSymbol)
			}
			dentry := distanceTable[dsymbol]
			dextra, err := br.getBits(dentry.extra)
			if err != nil {
				return cursor, err
			}
			distance := dentry.base + int(dextra)

			if distance > cursor {
				return cursor, newErr("backref", BadDistance)
			}
			if cursor+length > len(output) {
				return cursor, newErr("backref", OutputOverflow)
			}
			src := cursor - distance
			for i := 0; i < length; i++ {
				output[cursor] = output[src]
				cursor++
				src++
			}
		default:
			return cursor, newErr("literal", BadSymbol)
		}
	}
}

// buildDynamicTables reads a dynamic-Huffman block header and returns the
// literal/length and distance tables it describes.
func buildDynamicTables(br *bitReader, opts *Options) (*huffman, *huffman, error) {
	hlitField, err := br.getBits(5)
	if err != nil {
		return nil, nil, err
	}
	hdistField, err := br.getBits(5)
	if err != nil {
		return nil, nil, err
	}
	hclenField, err := br.getBits(4)
	if err != nil {
		return nil, nil, err
	}
	hlit := int(hlitField) + 257
	hdist := int(hdistField) + 1
	hclen := int(hclenField) + 4
	if hlit > 286 || hdist > 30 || hclen > 19 {
		return nil, nil, newErr("header", BadHeader)
	}
	opts.tracef("flate: dynamic block hlit=%d hdist=%d hclen=%d", hlit, hdist, hclen)

	var clLengths [19]int
	for i := 0; i < hclen; i++ {
		v, err := br.getBits(3)
		if err != nil {
			return nil, nil, err
		}
		clLengths[codeLengthOrder[i]] = int(v)
	}
	clTable, err := newHuffman(clLengths[:])
	if err != nil {
		return nil, nil, err
	}

	total := hlit + hdist
	lengths := make([]int, 0, total)
	var prev int
	havePrev := false
	for len(lengths) < total {
		symbol, err := clTable.decodeSymbol(br)
		if err != nil {
			return nil, nil, err
		}
		switch {
		case symbol <= 15:
			lengths = append(lengths, symbol)
			prev = symbol
			havePrev = true
		case symbol == 16:
			if !havePrev {
				return nil, nil, newErr("header", BadRepeat)
			}
			extra, err := br.getBits(2)
			if err != nil {
				return nil, nil, err
			}
			repeat := 3 + int(extra)
			if len(lengths)+repeat > total {
				return nil, nil, newErr("header", BadRepeat)
			}
			for i := 0; i < repeat; i++ {
				lengths = append(lengths, prev)
			}
		case symbol == 17:
			extra, err := br.getBits(3)
			if err != nil {
				return nil, nil, err
			}
			repeat := 3 + int(extra)
			if len(lengths)+repeat > total {
				return nil, nil, newErr("header", BadRepeat)
			}
			for i := 0; i < repeat; i++ {
				lengths = append(lengths, 0)
			}
			havePrev = true
			prev = 0
		case symbol == 18:
			extra, err := br.getBits(7)
			if err != nil {
				return nil, nil, err
			}
			repeat := 11 + int(extra)
			if len(lengths)+repeat > total {
				return nil, nil, newErr("header", BadRepeat)
			}
			for i := 0; i < repeat; i++ {
				lengths = append(lengths, 0)
			}
			havePrev = true
			prev = 0
		default:
			return nil, nil, newErr("header", BadSymbol)
		}
	}

	litLengths := lengths[:hlit]
	distLengths := lengths[hlit:]
	if litLengths[256] == 0 {
		return nil, nil, newErr("header", MissingEndOfBlock)
	}

	lit, err := newHuffman(litLengths)
	if err != nil {
		return nil, nil, err
	}
	dist, err := newHuffman(distLengths)
	if err != nil {
		return nil, nil, err
	}
	return lit, dist, nil
}

// parseZlibHeader reads and validates the 2-byte zlib header, and the
// 4-byte preset-dictionary identifier when FDICT is set.
func parseZlibHeader(br *bitReader, opts *Options) error {
	cmf, err := br.nextByte()
	if err != nil {
		return newErr("header", Truncated)
	}
	flg, err := br.nextByte()
	if err != nil {
		return newErr("header", Truncated)
	}

	method := cmf & 0x0F
	cinfo := cmf >> 4
	if method != 8 {
		return newErr("header", UnsupportedMethod)
	}
	if cinfo > 7 {
		return newErr("header", UnsupportedWindow)
	}
	if opts == nil || !opts.SkipHeaderCheck {
		if (uint16(cmf)<<8|uint16(flg))%31 != 0 {
			return newErr("header", BadHeader)
		}
	}
	opts.tracef("flate: zlib header cm=%d cinfo=%d", method, cinfo)

	if flg&0x20 != 0 {
		var dictID uint32
		for i := 0; i < 4; i++ {
			b, err := br.nextByte()
			if err != nil {
				return newErr("header", Truncated)
			}
			dictID = dictID<<8 | uint32(b)
		}
		opts.tracef("flate: preset dictionary id=%08x", dictID)
		return newErr("header", PresetDictionaryRequired)
	}
	return nil
}

// verifyTrailer checks the 4-byte big-endian Adler-32 trailer against the
// decompressed output.
func verifyTrailer(br *bitReader, produced []byte, opts *Options) error {
	br.alignByte()

	var trailer [4]byte
	n := 0
	for n < 4 {
		b, err := br.nextByte()
		if err != nil {
			break
		}
		trailer[n] = b
		n++
	}
	if n == 0 {
		if opts != nil && opts.StrictTrailer {
			return newErr("checksum", Truncated)
		}
		return nil
	}
	if n < 4 {
		return newErr("checksum", Truncated)
	}

	stored := uint32(trailer[0])<<24 | uint32(trailer[1])<<16 | uint32(trailer[2])<<8 | uint32(trailer[3])
	computed := adler32(produced)
	opts.tracef("flate: adler32 stored=%08x computed=%08x", stored, computed)
	if stored != computed {
		return newErr("checksum", ChecksumMismatch)
	}
	return nil
}
