/*package checkpoint writes reduced accumulator state to disk and reads it
back. Files carry a magic number and version so a tally checkpoint can't be
mistaken for anything else, and the per-atom arrays are zstd compressed.*/
package checkpoint

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/DataDog/zstd"

	"github.com/openmd/tally/lib/accum"
)

const (
	// MagicNumber is an arbitrary number at the start of all checkpoint
	// files which should help identify when the code is run on something
	// else by accident.
	MagicNumber = 0x7a11c4ec
	// ReverseMagicNumber is the magic number as read from a file written
	// with the opposite byte order.
	ReverseMagicNumber = 0xecc4117a
	Version            = 1
)

// Write writes res to the file fname.
func Write(fname string, res *accum.Results) error {
	fp, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer fp.Close()

	return WriteTo(fp, res)
}

// WriteTo writes res to wr. The header and global totals are stored
// uncompressed; the per-atom arrays are zstd compressed, each prefixed with
// its compressed byte length.
func WriteTo(wr io.Writer, res *accum.Results) error {
	order := binary.ByteOrder(binary.LittleEndian)

	err := binary.Write(wr, order, []uint32{MagicNumber, Version})
	if err != nil {
		return err
	}

	lens := []int64{int64(len(res.Eatom)), int64(len(res.Vatom))}
	if err = binary.Write(wr, order, lens); err != nil {
		return err
	}

	eng := []float64{res.EngVdwl, res.EngCoul, res.EngBond}
	if err = binary.Write(wr, order, eng); err != nil {
		return err
	}
	if err = binary.Write(wr, order, res.Virial[:]); err != nil {
		return err
	}

	if err = writeCompressed(wr, order, res.Eatom); err != nil {
		return err
	}
	return writeCompressed(wr, order, flattenSym(res.Vatom))
}

// Read reads the Results stored in the file fname.
func Read(fname string) (*accum.Results, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	return ReadFrom(fp)
}

// ReadFrom reads Results written by WriteTo from rd.
func ReadFrom(rd io.Reader) (*accum.Results, error) {
	order := binary.ByteOrder(binary.LittleEndian)

	hd := make([]uint32, 2)
	if err := binary.Read(rd, order, hd); err != nil {
		return nil, err
	}
	switch hd[0] {
	case MagicNumber:
	case ReverseMagicNumber:
		return nil, fmt.Errorf("The checkpoint was written with the opposite byte order.")
	default:
		return nil, fmt.Errorf("The file is not a tally checkpoint: it starts with 0x%08x, not 0x%08x.", hd[0], uint32(MagicNumber))
	}
	if hd[1] != Version {
		return nil, fmt.Errorf("The checkpoint has version %d, but this version of tally reads version %d.", hd[1], Version)
	}

	lens := make([]int64, 2)
	if err := binary.Read(rd, order, lens); err != nil {
		return nil, err
	}

	res := &accum.Results{}
	eng := make([]float64, 3)
	if err := binary.Read(rd, order, eng); err != nil {
		return nil, err
	}
	res.EngVdwl, res.EngCoul, res.EngBond = eng[0], eng[1], eng[2]
	if err := binary.Read(rd, order, res.Virial[:]); err != nil {
		return nil, err
	}

	res.Eatom = make([]float64, lens[0])
	if err := readCompressed(rd, order, res.Eatom); err != nil {
		return nil, err
	}
	flat := make([]float64, 6*lens[1])
	if err := readCompressed(rd, order, flat); err != nil {
		return nil, err
	}
	res.Vatom = unflattenSym(flat)

	return res, nil
}

// writeCompressed zstd compresses x and writes it to wr behind its
// compressed byte length.
func writeCompressed(wr io.Writer, order binary.ByteOrder, x []float64) error {
	b := &bytes.Buffer{}
	if err := binary.Write(b, order, x); err != nil {
		return err
	}

	buf, err := zstd.CompressLevel(nil, b.Bytes(), 1)
	if err != nil {
		return err
	}

	if err = binary.Write(wr, order, int64(len(buf))); err != nil {
		return err
	}
	_, err = wr.Write(buf)
	return err
}

// readCompressed reads a block written by writeCompressed into x. x must
// already have the length recorded in the file header.
func readCompressed(rd io.Reader, order binary.ByteOrder, x []float64) error {
	nBuf := int64(0)
	if err := binary.Read(rd, order, &nBuf); err != nil {
		return err
	}

	buf := make([]byte, nBuf)
	if _, err := io.ReadFull(rd, buf); err != nil {
		return err
	}

	b, err := zstd.Decompress(make([]byte, 8*len(x)), buf)
	if err != nil {
		return err
	}
	return binary.Read(bytes.NewReader(b), order, x)
}

func flattenSym(v [][6]float64) []float64 {
	x := make([]float64, 6*len(v))
	for i := range v {
		copy(x[6*i:6*i+6], v[i][:])
	}
	return x
}

func unflattenSym(x []float64) [][6]float64 {
	v := make([][6]float64, len(x)/6)
	for i := range v {
		copy(v[i][:], x[6*i:6*i+6])
	}
	return v
}
