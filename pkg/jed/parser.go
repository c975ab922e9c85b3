package jed

import (
	"bytes"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/pkg/errors"
)

const (
	stx = 0x02
	etx = 0x03
)

// Parser decodes JEDEC fuse map files
type Parser struct {
	parser *participle.Parser[body]
}

// NewParser creates a new JEDEC parser instance
func NewParser() (*Parser, error) {
	parser, err := participle.Build[body](
		participle.Lexer(JEDLexer),
		participle.Elide("Whitespace"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "jed: failed to build parser")
	}

	return &Parser{parser: parser}, nil
}

// ParseFile reads and decodes the JEDEC file at path
func (p *Parser) ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "jed: failed to read file")
	}
	return p.Parse(data)
}

// Parse decodes a JEDEC file. Text before STX is the design header and is
// skipped, as is the transmission checksum after ETX.
func (p *Parser) Parse(data []byte) (*File, error) {
	start := bytes.IndexByte(data, stx)
	if start < 0 {
		return nil, errors.New("jed: missing STX")
	}
	end := bytes.IndexByte(data[start+1:], etx)
	if end < 0 {
		return nil, errors.New("jed: missing ETX")
	}
	payload := data[start+1 : start+1+end]

	b, err := p.parser.ParseBytes("", payload)
	if err != nil {
		return nil, errors.Wrap(err, "jed: parse error")
	}

	return decode(b)
}

// decode interprets the parsed fields into a fuse array
func decode(b *body) (*File, error) {
	f := &File{}

	var (
		fuses    []bool
		set      []bool
		hasCount bool
		hasDef   bool
	)

	for _, fld := range b.Fields {
		switch {
		case fld.Note != nil:
			note := strings.TrimSpace((*fld.Note)[1:])
			f.Notes = append(f.Notes, note)
			words := strings.Fields(note)
			if len(words) >= 2 && strings.EqualFold(words[0], "DEVICE") {
				f.DeviceName = words[1]
			}

		case fld.FuseCount != nil:
			if hasCount {
				return nil, errors.New("jed: duplicate QF field")
			}
			n, err := strconv.Atoi(strings.TrimSpace((*fld.FuseCount)[2:]))
			if err != nil || n < 0 {
				return nil, errors.Errorf("jed: invalid fuse count %q", *fld.FuseCount)
			}
			fuses = make([]bool, n)
			set = make([]bool, n)
			hasCount = true

		case fld.PinCount != nil:
			n, err := strconv.Atoi(strings.TrimSpace((*fld.PinCount)[2:]))
			if err != nil {
				return nil, errors.Errorf("jed: invalid pin count %q", *fld.PinCount)
			}
			f.PinCount = n

		case fld.Default != nil:
			if !hasCount {
				return nil, errors.New("jed: F field before QF")
			}
			v, err := parseBit(strings.TrimSpace((*fld.Default)[1:]))
			if err != nil {
				return nil, errors.Wrap(err, "jed: invalid default fuse state")
			}
			for i := range fuses {
				if !set[i] {
					fuses[i] = v
					set[i] = true
				}
			}
			hasDef = true

		case fld.List != nil:
			if !hasCount {
				return nil, errors.New("jed: L field before QF")
			}
			if err := applyList(*fld.List, fuses, set); err != nil {
				return nil, err
			}

		case fld.Checksum != nil:
			v, err := strconv.ParseUint(strings.TrimSpace((*fld.Checksum)[1:]), 16, 16)
			if err != nil {
				return nil, errors.Errorf("jed: invalid checksum %q", *fld.Checksum)
			}
			f.Checksum = uint16(v)
			f.HasChecksum = true
		}
	}

	if !hasCount {
		return nil, errors.New("jed: missing QF field")
	}
	if !hasDef {
		for i, ok := range set {
			if !ok {
				return nil, errors.Errorf("jed: fuse %d not set and no default given", i)
			}
		}
	}

	if f.HasChecksum {
		if got := FuseChecksum(fuses); got != f.Checksum {
			return nil, errors.Errorf("jed: fuse checksum mismatch: file says %04X, computed %04X",
				f.Checksum, got)
		}
	}

	f.Fuses = fuses
	return f, nil
}

// applyList handles "L<addr> <bits>". Whitespace inside the bits is ignored.
func applyList(raw string, fuses, set []bool) error {
	s := strings.TrimSpace(raw[1:])
	i := strings.IndexFunc(s, func(r rune) bool {
		return r < '0' || r > '9'
	})
	if i < 0 {
		i = len(s)
	}
	addr, err := strconv.Atoi(s[:i])
	if err != nil {
		return errors.Errorf("jed: invalid fuse address in %q", raw)
	}

	pos := addr
	for _, r := range s[i:] {
		switch r {
		case '0', '1':
			if pos >= len(fuses) {
				return errors.Errorf("jed: fuse list at %d runs past fuse count %d", addr, len(fuses))
			}
			fuses[pos] = r == '1'
			set[pos] = true
			pos++
		case ' ', '\t', '\r', '\n':
		default:
			return errors.Errorf("jed: invalid character %q in fuse list at %d", r, addr)
		}
	}
	return nil
}

func parseBit(s string) (bool, error) {
	switch s {
	case "0":
		return false, nil
	case "1":
		return true, nil
	}
	return false, errors.Errorf("expected 0 or 1, got %q", s)
}
