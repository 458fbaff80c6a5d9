package extractor

import (
	"bytes"
	"compress/zlib"
	"encoding/hex"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf16"
)

// extractRawStream is the fallback text extractor that walks the raw PDF byte
// stream directly. It copes with CIDFont/Type0 custom encodings that the
// structured library cannot decode, by collecting ToUnicode CMap tables and
// applying them to Tj/TJ text operators.
func extractRawStream(data []byte) ([]string, error) {
	streams := contentStreams(data)
	if len(streams) == 0 {
		return nil, fmt.Errorf("no content streams found")
	}

	cmap := collectCMaps(data)

	var texts []string
	for _, stream := range streams {
		if text := streamText(inflate(stream), cmap); text != "" {
			texts = append(texts, text)
		}
	}
	if len(texts) == 0 {
		return nil, fmt.Errorf("content streams contained no text operators")
	}
	return []string{strings.Join(texts, "\n")}, nil
}

// contentStreams finds all stream...endstream blocks.
func contentStreams(data []byte) [][]byte {
	var streams [][]byte
	start := []byte("stream")
	end := []byte("endstream")

	for off := 0; off < len(data); {
		i := bytes.Index(data[off:], start)
		if i < 0 {
			break
		}
		s := off + i + len(start)
		if s < len(data) && data[s] == '\r' {
			s++
		}
		if s < len(data) && data[s] == '\n' {
			s++
		}
		j := bytes.Index(data[s:], end)
		if j < 0 {
			break
		}
		if j > 0 {
			streams = append(streams, data[s:s+j])
		}
		off = s + j + len(end)
	}
	return streams
}

func inflate(data []byte) []byte {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return data
	}
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return data
	}
	return out
}

var (
	hexTjRe    = regexp.MustCompile(`<([0-9A-Fa-f]+)>\s*Tj`)
	litTjRe    = regexp.MustCompile(`\(([^)]*)\)\s*Tj`)
	tjArrayRe  = regexp.MustCompile(`\[([^\]]*)\]\s*TJ`)
	hexTokenRe = regexp.MustCompile(`<([0-9A-Fa-f]+)>`)
	litTokenRe = regexp.MustCompile(`\(([^)]*)\)`)
	tdRe       = regexp.MustCompile(`[\d.\-]+\s+[\d.\-]+\s+T[dD]`)
)

// streamText pulls text out of one decoded content stream, treating Td/TD/T*
// positioning operators as line breaks.
func streamText(data []byte, cm charmap) string {
	content := string(data)
	if !strings.Contains(content, "Tj") && !strings.Contains(content, "TJ") {
		return ""
	}

	var lines []string
	var cur strings.Builder
	flush := func() {
		if line := strings.TrimSpace(cur.String()); line != "" {
			lines = append(lines, line)
		}
		cur.Reset()
	}

	for _, op := range strings.Split(content, "\n") {
		op = strings.TrimSpace(op)
		if op == "T*" || tdRe.MatchString(op) {
			flush()
		}
		for _, m := range hexTjRe.FindAllStringSubmatch(op, -1) {
			cur.WriteString(decodeHex(m[1], cm))
		}
		for _, m := range litTjRe.FindAllStringSubmatch(op, -1) {
			cur.WriteString(decodeLiteral(m[1], cm))
		}
		for _, m := range tjArrayRe.FindAllStringSubmatch(op, -1) {
			for _, h := range hexTokenRe.FindAllStringSubmatch(m[1], -1) {
				cur.WriteString(decodeHex(h[1], cm))
			}
			for _, l := range litTokenRe.FindAllStringSubmatch(m[1], -1) {
				cur.WriteString(decodeLiteral(l[1], cm))
			}
		}
	}
	flush()

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// charmap maps uppercase hex-encoded glyph codes to Unicode strings, built
// from ToUnicode CMap streams.
type charmap map[string]string

var (
	bfCharRe  = regexp.MustCompile(`(?s)beginbfchar\s*(.*?)\s*endbfchar`)
	bfRangeRe = regexp.MustCompile(`(?s)beginbfrange\s*(.*?)\s*endbfrange`)
)

func collectCMaps(data []byte) charmap {
	cm := make(charmap)
	for _, stream := range contentStreams(data) {
		content := string(inflate(stream))
		if !strings.Contains(content, "beginbfchar") && !strings.Contains(content, "beginbfrange") {
			continue
		}

		for _, block := range bfCharRe.FindAllStringSubmatch(content, -1) {
			toks := hexTokenRe.FindAllStringSubmatch(block[1], -1)
			for i := 0; i+1 < len(toks); i += 2 {
				if uni := hexToUnicode(toks[i+1][1]); uni != "" {
					cm[strings.ToUpper(toks[i][1])] = uni
				}
			}
		}

		for _, block := range bfRangeRe.FindAllStringSubmatch(content, -1) {
			for _, line := range strings.Split(block[1], "\n") {
				toks := hexTokenRe.FindAllStringSubmatch(line, -1)
				if len(toks) < 3 {
					continue
				}
				lo, hi, dst := hexToInt(toks[0][1]), hexToInt(toks[1][1]), hexToInt(toks[2][1])
				if lo < 0 || hi < 0 || dst < 0 || hi-lo > 0xFFFF {
					continue
				}
				width := len(toks[0][1])
				for c := lo; c <= hi; c++ {
					key := fmt.Sprintf("%0*X", width, c)
					if uni := hexToUnicode(fmt.Sprintf("%04X", dst+(c-lo))); uni != "" {
						cm[key] = uni
					}
				}
			}
		}
	}
	return cm
}

func (cm charmap) decode(raw []byte) string {
	if len(cm) == 0 {
		return ""
	}
	var out strings.Builder
	// Glyph codes are typically two bytes for CID fonts, one byte otherwise;
	// try the two-byte interpretation first.
	for i := 0; i < len(raw); {
		if i+1 < len(raw) {
			key := fmt.Sprintf("%04X", int(raw[i])<<8|int(raw[i+1]))
			if s, ok := cm[key]; ok {
				out.WriteString(s)
				i += 2
				continue
			}
		}
		key := fmt.Sprintf("%02X", raw[i])
		if s, ok := cm[key]; ok {
			out.WriteString(s)
		}
		i++
	}
	return out.String()
}

func decodeHex(hexStr string, cm charmap) string {
	raw, err := hex.DecodeString(hexStr)
	if err != nil {
		return ""
	}
	if s := cm.decode(raw); s != "" {
		return s
	}
	// Fallback: direct UTF-16BE.
	if len(raw)%2 == 0 && len(raw) >= 2 {
		var sb strings.Builder
		for i := 0; i+1 < len(raw); i += 2 {
			cp := rune(raw[i])<<8 | rune(raw[i+1])
			if unicode.IsPrint(cp) || cp == ' ' {
				sb.WriteRune(cp)
			}
		}
		if sb.Len() > 0 {
			return sb.String()
		}
	}
	return printableOnly(string(raw))
}

func decodeLiteral(s string, cm charmap) string {
	decoded := unescapePDF(s)
	if out := cm.decode([]byte(decoded)); out != "" && mostlyPrintable(out) {
		return out
	}
	return printableOnly(decoded)
}

// unescapePDF handles the basic PDF literal-string escape sequences.
func unescapePDF(s string) string {
	var buf strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			buf.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			buf.WriteByte('\n')
		case 'r':
			buf.WriteByte('\r')
		case 't':
			buf.WriteByte('\t')
		case '(', ')', '\\':
			buf.WriteByte(s[i])
		default:
			if s[i] >= '0' && s[i] <= '7' {
				val := int(s[i] - '0')
				for j := 0; j < 2 && i+1 < len(s) && s[i+1] >= '0' && s[i+1] <= '7'; j++ {
					i++
					val = val*8 + int(s[i]-'0')
				}
				if val < 256 {
					buf.WriteByte(byte(val))
				}
			} else {
				buf.WriteByte(s[i])
			}
		}
	}
	return buf.String()
}

func hexToUnicode(h string) string {
	raw, err := hex.DecodeString(h)
	if err != nil || len(raw)%2 != 0 {
		return ""
	}
	units := make([]uint16, 0, len(raw)/2)
	for i := 0; i+1 < len(raw); i += 2 {
		units = append(units, uint16(raw[i])<<8|uint16(raw[i+1]))
	}
	s := string(utf16.Decode(units))
	if !mostlyPrintable(s) {
		return ""
	}
	return s
}

func hexToInt(h string) int {
	n := 0
	for _, c := range h {
		switch {
		case c >= '0' && c <= '9':
			n = n*16 + int(c-'0')
		case c >= 'a' && c <= 'f':
			n = n*16 + int(c-'a'+10)
		case c >= 'A' && c <= 'F':
			n = n*16 + int(c-'A'+10)
		default:
			return -1
		}
	}
	return n
}

func printableOnly(s string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) || r == '\n' || r == '\t' {
			return r
		}
		return -1
	}, s))
}

func mostlyPrintable(s string) bool {
	if s == "" {
		return false
	}
	printable := 0
	runes := []rune(s)
	for _, r := range runes {
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			printable++
		}
	}
	return float64(printable)/float64(len(runes)) > 0.5
}
