package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

const (
	headerSize   = 80
	facetSize    = 50
	maxTriangles = 50_000_000
)

// ErrFormat is returned for data that is neither ASCII nor binary STL
var ErrFormat = errors.New("not an STL file")

// Parse reads an ASCII or binary STL file
func Parse(filename string) (*Mesh, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	m, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	return m, nil
}

// Decode parses STL data. Binary files may start with "solid" too, so the
// size announced by a binary header wins over the ASCII keyword.
func Decode(data []byte) (*Mesh, error) {
	if isBinary(data) {
		return decodeBinary(data)
	}
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("solid")) {
		return decodeASCII(bytes.NewReader(data))
	}
	return nil, ErrFormat
}

func isBinary(data []byte) bool {
	if len(data) < headerSize+4 {
		return false
	}
	n := binary.LittleEndian.Uint32(data[headerSize:])
	return uint64(len(data)) == headerSize+4+uint64(n)*facetSize
}

func decodeBinary(data []byte) (*Mesh, error) {
	n := binary.LittleEndian.Uint32(data[headerSize:])
	if n > maxTriangles {
		return nil, fmt.Errorf("%d triangles: %w", n, ErrFormat)
	}
	m := &Mesh{
		Name:      strings.TrimSpace(string(bytes.TrimRight(data[:headerSize], "\x00"))),
		Triangles: make([]Triangle, 0, n),
	}

	off := headerSize + 4
	for i := uint32(0); i < n; i++ {
		var t Triangle
		t.Normal = readVec3(data[off:])
		for j := range t.V {
			t.V[j] = readVec3(data[off+12*(j+1):])
		}
		m.Triangles = append(m.Triangles, t)
		off += facetSize
	}
	return m, nil
}

func readVec3(b []byte) Vec3 {
	f := func(i int) float64 {
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(b[4*i:])))
	}
	return Vec3{f(0), f(1), f(2)}
}

func decodeASCII(r io.Reader) (*Mesh, error) {
	m := &Mesh{}
	scanner := bufio.NewScanner(r)

	var t Triangle
	vertices := 0
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "solid":
			m.Name = strings.Join(fields[1:], " ")
		case "facet":
			t = Triangle{}
			vertices = 0
			if len(fields) == 5 && fields[1] == "normal" {
				n, err := parseVec3(fields[2:])
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", line, err)
				}
				t.Normal = n
			}
		case "vertex":
			if len(fields) != 4 || vertices == 3 {
				return nil, fmt.Errorf("line %d: malformed vertex", line)
			}
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			t.V[vertices] = v
			vertices++
		case "endfacet":
			if vertices != 3 {
				return nil, fmt.Errorf("line %d: facet with %d vertices", line, vertices)
			}
			m.Triangles = append(m.Triangles, t)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ASCII STL: %w", err)
	}
	return m, nil
}

func parseVec3(fields []string) (Vec3, error) {
	var out [3]float64
	for i, f := range fields[:3] {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return Vec3{}, fmt.Errorf("invalid number %q", f)
		}
		out[i] = v
	}
	return Vec3{out[0], out[1], out[2]}, nil
}

// EncodeBinary writes m as binary STL
func (m *Mesh) EncodeBinary(w io.Writer) error {
	buf := make([]byte, headerSize+4, headerSize+4+len(m.Triangles)*facetSize)
	copy(buf[:headerSize], m.Name)
	binary.LittleEndian.PutUint32(buf[headerSize:], uint32(len(m.Triangles)))

	put := func(v Vec3) {
		for _, f := range []float64{v.X, v.Y, v.Z} {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(float32(f)))
		}
	}
	for _, t := range m.Triangles {
		put(t.Normal)
		for _, v := range t.V {
			put(v)
		}
		buf = append(buf, 0, 0)
	}
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("failed to write STL: %w", err)
	}
	return nil
}
