package bin

import (
	"io"

	"github.com/hogfinance/hogpool/common"
	"github.com/hogfinance/hogpool/common/amount"
)

// SumWriter accumulates the number of bytes written by a sequence of fields
type SumWriter struct {
	sum int64
}

func NewSumWriter() *SumWriter {
	return &SumWriter{}
}

func (sw *SumWriter) add(n int64, err error) (int64, error) {
	sw.sum += n
	return sw.sum, err
}

func (sw *SumWriter) Uint8(w io.Writer, v uint8) (int64, error) {
	return sw.add(WriteUint8(w, v))
}

func (sw *SumWriter) Uint16(w io.Writer, v uint16) (int64, error) {
	return sw.add(WriteUint16(w, v))
}

func (sw *SumWriter) Uint64(w io.Writer, v uint64) (int64, error) {
	return sw.add(WriteUint64(w, v))
}

func (sw *SumWriter) Bool(w io.Writer, v bool) (int64, error) {
	return sw.add(WriteBool(w, v))
}

func (sw *SumWriter) Bytes(w io.Writer, v []byte) (int64, error) {
	return sw.add(WriteBytes(w, v))
}

func (sw *SumWriter) String(w io.Writer, v string) (int64, error) {
	return sw.add(WriteBytes(w, []byte(v)))
}

func (sw *SumWriter) Address(w io.Writer, v common.Address) (int64, error) {
	return sw.add(WriteBytes(w, v[:]))
}

func (sw *SumWriter) Amount(w io.Writer, v *amount.Amount) (int64, error) {
	var bs []byte
	if v != nil && v.Int != nil {
		bs = v.Bytes()
	}
	return sw.add(WriteBytes(w, bs))
}

func (sw *SumWriter) Sum() int64 {
	return sw.sum
}

// SumReader accumulates the number of bytes read by a sequence of fields
type SumReader struct {
	sum int64
}

func NewSumReader() *SumReader {
	return &SumReader{}
}

func (sr *SumReader) add(n int64, err error) (int64, error) {
	sr.sum += n
	return sr.sum, err
}

func (sr *SumReader) Uint8(r io.Reader, p *uint8) (int64, error) {
	v, n, err := ReadUint8(r)
	*p = v
	return sr.add(n, err)
}

func (sr *SumReader) Uint16(r io.Reader, p *uint16) (int64, error) {
	v, n, err := ReadUint16(r)
	*p = v
	return sr.add(n, err)
}

func (sr *SumReader) Uint64(r io.Reader, p *uint64) (int64, error) {
	v, n, err := ReadUint64(r)
	*p = v
	return sr.add(n, err)
}

func (sr *SumReader) Bool(r io.Reader, p *bool) (int64, error) {
	v, n, err := ReadBool(r)
	*p = v
	return sr.add(n, err)
}

func (sr *SumReader) Bytes(r io.Reader, p *[]byte) (int64, error) {
	v, n, err := ReadBytes(r)
	*p = v
	return sr.add(n, err)
}

func (sr *SumReader) String(r io.Reader, p *string) (int64, error) {
	v, n, err := ReadBytes(r)
	*p = string(v)
	return sr.add(n, err)
}

func (sr *SumReader) Address(r io.Reader, p *common.Address) (int64, error) {
	v, n, err := ReadBytes(r)
	if err == nil && len(v) != common.AddressLength {
		err = ErrInvalidLength
	}
	*p = common.BytesToAddress(v)
	return sr.add(n, err)
}

func (sr *SumReader) Amount(r io.Reader, p **amount.Amount) (int64, error) {
	v, n, err := ReadBytes(r)
	*p = amount.NewAmountFromBytes(v)
	return sr.add(n, err)
}

func (sr *SumReader) Sum() int64 {
	return sr.sum
}
