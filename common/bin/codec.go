package bin

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// WriteUint64 writes the uint64 number to the writer
func WriteUint64(w io.Writer, num uint64) (int64, error) {
	return writeFixed(w, Uint64Bytes(num))
}

// WriteUint16 writes the uint16 number to the writer
func WriteUint16(w io.Writer, num uint16) (int64, error) {
	return writeFixed(w, Uint16Bytes(num))
}

// WriteUint8 writes the uint8 number to the writer
func WriteUint8(w io.Writer, num uint8) (int64, error) {
	return writeFixed(w, []byte{num})
}

func writeFixed(w io.Writer, bs []byte) (int64, error) {
	n, err := w.Write(bs)
	if err != nil {
		return int64(n), errors.WithStack(err)
	}
	if n != len(bs) {
		return int64(n), errors.WithStack(ErrInvalidLength)
	}
	return int64(n), nil
}

// WriteBytes writes the byte array with a var-length prefix to the writer
func WriteBytes(w io.Writer, bs []byte) (int64, error) {
	var wrote int64
	if len(bs) < 254 {
		n, err := WriteUint8(w, uint8(len(bs)))
		if err != nil {
			return n, err
		}
		wrote += n
	} else {
		n, err := WriteUint8(w, 254)
		if err != nil {
			return n, err
		}
		wrote += n
		if len(bs) > 0xFFFF {
			return wrote, errors.WithStack(ErrInvalidLength)
		}
		if n, err := WriteUint16(w, uint16(len(bs))); err != nil {
			return wrote, err
		} else {
			wrote += n
		}
	}
	n, err := writeFixed(w, bs)
	return wrote + n, err
}

// WriteBool writes the bool using a uint8 to the writer
func WriteBool(w io.Writer, b bool) (int64, error) {
	if b {
		return WriteUint8(w, 1)
	}
	return WriteUint8(w, 0)
}

// FillBytes reads exactly len(bs) bytes from the reader
func FillBytes(r io.Reader, bs []byte) (int64, error) {
	n, err := io.ReadFull(r, bs)
	if err != nil {
		return int64(n), errors.WithStack(err)
	}
	return int64(n), nil
}

// ReadUint64 reads a uint64 number from the reader
func ReadUint64(r io.Reader) (uint64, int64, error) {
	BNum := make([]byte, 8)
	n, err := FillBytes(r, BNum)
	if err != nil {
		return 0, n, err
	}
	return binary.BigEndian.Uint64(BNum), n, nil
}

// ReadUint16 reads a uint16 number from the reader
func ReadUint16(r io.Reader) (uint16, int64, error) {
	BNum := make([]byte, 2)
	n, err := FillBytes(r, BNum)
	if err != nil {
		return 0, n, err
	}
	return binary.BigEndian.Uint16(BNum), n, nil
}

// ReadUint8 reads a uint8 number from the reader
func ReadUint8(r io.Reader) (uint8, int64, error) {
	BNum := make([]byte, 1)
	n, err := FillBytes(r, BNum)
	if err != nil {
		return 0, n, err
	}
	return BNum[0], n, nil
}

// ReadBytes reads a var-length byte array from the reader
func ReadBytes(r io.Reader) ([]byte, int64, error) {
	var read int64
	Len, n, err := ReadUint8(r)
	if err != nil {
		return nil, n, err
	}
	read += n
	size := int(Len)
	if Len == 254 {
		l16, n, err := ReadUint16(r)
		if err != nil {
			return nil, read + n, err
		}
		read += n
		size = int(l16)
	} else if Len == 255 {
		return nil, read, errors.WithStack(ErrInvalidLength)
	}
	bs := make([]byte, size)
	n, err = FillBytes(r, bs)
	return bs, read + n, err
}

// ReadBool reads a bool using a uint8 from the reader
func ReadBool(r io.Reader) (bool, int64, error) {
	v, n, err := ReadUint8(r)
	if err != nil {
		return false, n, err
	}
	return v == 1, n, nil
}

// WriterToBytes return bytes from writer to
func WriterToBytes(w io.WriterTo) ([]byte, int64, error) {
	var buffer bytes.Buffer
	if n, err := w.WriteTo(&buffer); err != nil {
		return nil, n, errors.WithStack(err)
	} else {
		return buffer.Bytes(), n, nil
	}
}

// ReaderFromBytes fills the reader from the byte array
func ReaderFromBytes(bs []byte, r io.ReaderFrom) error {
	if _, err := r.ReadFrom(bytes.NewReader(bs)); err != nil {
		return err
	}
	return nil
}
