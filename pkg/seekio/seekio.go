// Package seekio implements a small random-access file exerciser: a
// sequence of read, write and seek operations encoded as command-line
// arguments, useful for poking at file offsets and holes by hand.
package seekio

import (
	"fmt"
	"io"
	"strconv"
)

// op is one parsed operation. Exactly one of length, offset or payload is
// meaningful, keyed by kind.
type op struct {
	arg     string
	kind    byte
	length  int
	offset  int64
	payload []byte
}

// Run executes args in order against f, writing one result line per
// operation to out. Each argument is a letter followed by its operand:
//
//	r<length>  read length bytes at the current offset, display as text
//	R<length>  read length bytes at the current offset, display as hex
//	w<string>  write the string's bytes at the current offset
//	s<offset>  seek to an absolute offset
//
// All arguments are parsed before any of them touches the file, so a
// malformed operation is rejected without partial effects. At run time
// the first failing operation stops the sequence.
func Run(f io.ReadWriteSeeker, args []string, out io.Writer) error {
	ops, err := parseOps(args)
	if err != nil {
		return err
	}
	for _, o := range ops {
		var err error
		switch o.kind {
		case 'r', 'R':
			err = readOp(f, o, out)
		case 'w':
			err = writeOp(f, o, out)
		case 's':
			err = seekOp(f, o, out)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func parseOps(args []string) ([]op, error) {
	ops := make([]op, 0, len(args))
	for _, arg := range args {
		if arg == "" {
			return nil, fmt.Errorf("argument must start with [rRws]: %q", arg)
		}
		o := op{arg: arg, kind: arg[0]}
		switch o.kind {
		case 'r', 'R':
			length, err := strconv.Atoi(arg[1:])
			if err != nil || length < 0 {
				return nil, fmt.Errorf("invalid length: %s", arg)
			}
			o.length = length
		case 'w':
			o.payload = []byte(arg[1:])
		case 's':
			offset, err := strconv.ParseInt(arg[1:], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid offset: %s", arg)
			}
			o.offset = offset
		default:
			return nil, fmt.Errorf("argument must start with [rRws]: %s", arg)
		}
		ops = append(ops, o)
	}
	return ops, nil
}

func readOp(f io.Reader, o op, out io.Writer) error {
	buf := make([]byte, o.length)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return fmt.Errorf("read: %w", err)
	}
	if n == 0 {
		fmt.Fprintf(out, "%s: end-of-file\n", o.arg)
		return nil
	}
	if o.kind == 'r' {
		fmt.Fprintf(out, "%s: %s\n", o.arg, printable(buf[:n]))
		return nil
	}
	fmt.Fprintf(out, "%s: ", o.arg)
	for _, b := range buf[:n] {
		fmt.Fprintf(out, "%02x ", b)
	}
	fmt.Fprintln(out)
	return nil
}

func writeOp(f io.Writer, o op, out io.Writer) error {
	n, err := f.Write(o.payload)
	if err != nil {
		return fmt.Errorf("write: %w", err)
	}
	fmt.Fprintf(out, "%s: wrote %d bytes\n", o.arg, n)
	return nil
}

func seekOp(f io.Seeker, o op, out io.Writer) error {
	if _, err := f.Seek(o.offset, io.SeekStart); err != nil {
		return fmt.Errorf("seek: %w", err)
	}
	fmt.Fprintf(out, "%s: seek succeeded\n", o.arg)
	return nil
}

// printable renders bytes as text, with '?' standing in for anything
// outside the printable ASCII range.
func printable(p []byte) string {
	out := make([]byte, len(p))
	for i, b := range p {
		if b >= ' ' && b < 0x7f {
			out[i] = b
		} else {
			out[i] = '?'
		}
	}
	return string(out)
}
