package format

import (
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// MsgpackEncoder writes the token stream as a msgpack array of
// TokenRecord maps.
type MsgpackEncoder struct {
	w   io.Writer
	doc *Document
}

func NewMsgpackEncoder(w io.Writer) *MsgpackEncoder {
	return &MsgpackEncoder{w: w}
}

func (e *MsgpackEncoder) Encode(doc *Document) error {
	e.doc = doc
	return write(e.w, e)
}

func (e *MsgpackEncoder) MarshalText() ([]byte, error) {
	return msgpack.Marshal(e.doc.Records())
}
