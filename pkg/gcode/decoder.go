package gcode

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/x448/float16"
	"go.uber.org/zap"
)

// moveCommand is the command token that records a new toolpath point.
const moveCommand = "G1"

// Decoder turns toolpath text into a Trace.
type Decoder struct {
	Log *zap.Logger
}

// Decode reads a toolpath file using a Decoder without logging.
func Decode(filename string) (*Trace, error) {
	return (&Decoder{}).Decode(filename)
}

// DecodeBytes decodes toolpath text that is already in memory.
func DecodeBytes(data []byte) (*Trace, error) {
	return (&Decoder{}).DecodeBytes(data)
}

// Decode reads and decodes a toolpath file. On any error no trace is returned.
func (d *Decoder) Decode(filename string) (*Trace, error) {
	start := time.Now()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}

	trace, err := d.DecodeBytes(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filename, err)
	}

	d.logger().Debug("toolpath decoded",
		zap.String("file", filename),
		zap.Int("points", trace.Len()),
		zap.Int("bytes", len(data)),
		zap.Duration("elapsed", time.Since(start)))

	return trace, nil
}

// DecodeBytes runs the single decoding pass over data.
func (d *Decoder) DecodeBytes(data []byte) (*Trace, error) {
	trace := newTrace(countMoves(data))
	state := newDecodeState(trace)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), len(data)+1)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := state.line(scanner.Bytes(), lineNo); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}

	state.finish()
	return trace, nil
}

func (d *Decoder) logger() *zap.Logger {
	if d.Log == nil {
		return zap.NewNop()
	}
	return d.Log
}

// countMoves counts lines that start with the move command. The decoding
// pass records a point for exactly these lines.
func countMoves(data []byte) int {
	count := 0
	for len(data) > 0 {
		line := data
		if i := bytes.IndexByte(data, '\n'); i >= 0 {
			line, data = data[:i], data[i+1:]
		} else {
			data = nil
		}
		if isMoveLine(line) {
			count++
		}
	}
	return count
}

func isMoveLine(line []byte) bool {
	if !bytes.HasPrefix(line, []byte(moveCommand)) {
		return false
	}
	if len(line) == len(moveCommand) {
		return true
	}
	switch line[len(moveCommand)] {
	case ' ', '\t', '\r', ';':
		return true
	}
	return false
}

// column identifies a forward-filled scalar column.
type column int

const (
	columnWidth column = iota
	columnHeight
	columnFanSpeed
	columnTemperature
	numColumns
)

// run is the open range of a forward-filled column: every row from start
// up to the next declaration takes value.
type run struct {
	start int
	value float32
}

type decodeState struct {
	trace *Trace
	n     int

	x, y, z float32

	runs        [numColumns]run
	featureRun  int
	featureType Category
}

func newDecodeState(trace *Trace) *decodeState {
	return &decodeState{trace: trace}
}

func (s *decodeState) column(c column) []float16.Float16 {
	switch c {
	case columnWidth:
		return s.trace.width
	case columnHeight:
		return s.trace.height
	case columnFanSpeed:
		return s.trace.fanSpeed
	default:
		return s.trace.temperature
	}
}

// declare closes the open run of c and starts a new one at the next row.
func (s *decodeState) declare(c column, value float32) {
	r := s.runs[c]
	fillHalf(s.column(c), r.start, s.n, r.value)
	s.runs[c] = run{start: s.n, value: value}
}

func (s *decodeState) declareFeature(c Category) {
	fillCategory(s.trace.feature, s.featureRun, s.n, s.featureType)
	s.featureRun = s.n
	s.featureType = c
}

func (s *decodeState) finish() {
	for c := range numColumns {
		r := s.runs[c]
		fillHalf(s.column(c), r.start, s.n, r.value)
	}
	fillCategory(s.trace.feature, s.featureRun, s.n, s.featureType)

	if s.n > 0 {
		s.trace.endpoints[0] = [2]int64{0, 0}
	}
	s.trace.n = s.n
}

func (s *decodeState) line(raw []byte, lineNo int) error {
	if len(raw) == 0 {
		return nil
	}
	if raw[0] == ';' {
		return s.comment(string(raw[1:]), lineNo)
	}

	code := string(raw)
	if i := strings.IndexByte(code, ';'); i >= 0 {
		code = code[:i]
	}
	fields := strings.Fields(code)
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case moveCommand:
		if !isMoveLine(raw) {
			// Indented move: not counted by the pre-size scan.
			return nil
		}
		return s.move(fields[1:], lineNo)
	case "M106":
		return s.sParam(columnFanSpeed, fields[1:], lineNo)
	case "M107":
		s.declare(columnFanSpeed, 0)
	case "M104", "M109":
		return s.sParam(columnTemperature, fields[1:], lineNo)
	}
	return nil
}

func (s *decodeState) comment(text string, lineNo int) error {
	key, value, ok := strings.Cut(text, ":")
	if !ok {
		return nil
	}
	value = strings.TrimSpace(value)

	switch key {
	case "TYPE":
		c, ok := ParseCategory(value)
		if !ok {
			return &LineError{Line: lineNo, Text: value, Err: ErrUnknownCategory}
		}
		s.declareFeature(c)
	case "WIDTH":
		v, err := parseNumber(value, lineNo)
		if err != nil {
			return err
		}
		s.declare(columnWidth, v)
	case "HEIGHT":
		v, err := parseNumber(value, lineNo)
		if err != nil {
			return err
		}
		s.declare(columnHeight, v)
	}
	return nil
}

func (s *decodeState) move(params []string, lineNo int) error {
	var e float32
	for _, p := range params {
		if len(p) == 0 {
			continue
		}
		switch p[0] {
		case 'X', 'Y', 'Z', 'E':
		default:
			continue
		}
		v, err := parseNumber(p[1:], lineNo)
		if err != nil {
			return err
		}
		switch p[0] {
		case 'X':
			s.x = v
		case 'Y':
			s.y = v
		case 'Z':
			s.z = v
		case 'E':
			e = v
		}
	}

	i := s.n
	s.trace.positions[i].X = s.x
	s.trace.positions[i].Y = s.y
	s.trace.positions[i].Z = s.z
	s.trace.extrusion[i] = e
	s.trace.endpoints[i] = [2]int64{int64(i) - 1, int64(i)}
	s.n++
	return nil
}

// sParam declares c from the S parameter of a command; commands without
// one leave the column untouched.
func (s *decodeState) sParam(c column, params []string, lineNo int) error {
	for _, p := range params {
		if len(p) == 0 || p[0] != 'S' {
			continue
		}
		v, err := parseNumber(p[1:], lineNo)
		if err != nil {
			return err
		}
		s.declare(c, v)
		return nil
	}
	return nil
}

func parseNumber(text string, lineNo int) (float32, error) {
	v, err := strconv.ParseFloat(text, 32)
	if err != nil {
		return 0, &LineError{Line: lineNo, Text: text, Err: ErrMalformedNumber}
	}
	return float32(v), nil
}

func fillHalf(dst []float16.Float16, from, to int, value float32) {
	h := float16.Fromfloat32(value)
	for i := from; i < to; i++ {
		dst[i] = h
	}
}

func fillCategory(dst []Category, from, to int, value Category) {
	for i := from; i < to; i++ {
		dst[i] = value
	}
}
