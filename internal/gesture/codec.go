package gesture

import (
	"errors"
	"fmt"
	"math"
	"time"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/iburimskiy/leap-visualizer/internal/geom"
)

var ErrMalformedFrame = errors.New("malformed gesture frame")

// Binary frames use the protobuf wire format:
//
//	message Frame { repeated Point hands = 1; repeated Point fingers = 2; sfixed64 unix_nanos = 3; }
//	message Point { double x = 1; double y = 2; }
const (
	fieldHands     protowire.Number = 1
	fieldFingers   protowire.Number = 2
	fieldUnixNanos protowire.Number = 3

	fieldX protowire.Number = 1
	fieldY protowire.Number = 2
)

// MarshalFrame encodes f. Coordinates are written as given; the relay sends
// normalised ones.
func MarshalFrame(f Frame) []byte {
	var b []byte
	for _, h := range f.Hands {
		b = protowire.AppendTag(b, fieldHands, protowire.BytesType)
		b = protowire.AppendBytes(b, appendPoint(nil, h))
	}
	for _, p := range f.Fingers {
		b = protowire.AppendTag(b, fieldFingers, protowire.BytesType)
		b = protowire.AppendBytes(b, appendPoint(nil, p))
	}
	if !f.Timestamp.IsZero() {
		b = protowire.AppendTag(b, fieldUnixNanos, protowire.Fixed64Type)
		b = protowire.AppendFixed64(b, uint64(f.Timestamp.UnixNano()))
	}
	return b
}

func appendPoint(b []byte, p geom.Point) []byte {
	b = protowire.AppendTag(b, fieldX, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, math.Float64bits(p.X))
	b = protowire.AppendTag(b, fieldY, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, math.Float64bits(p.Y))
	return b
}

// UnmarshalFrame decodes a frame written by MarshalFrame. Unknown fields are
// skipped.
func UnmarshalFrame(b []byte) (Frame, error) {
	var f Frame
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return Frame{}, malformed(n)
		}
		b = b[n:]

		switch {
		case (num == fieldHands || num == fieldFingers) && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return Frame{}, malformed(n)
			}
			p, err := unmarshalPoint(v)
			if err != nil {
				return Frame{}, err
			}
			if num == fieldHands {
				f.Hands = append(f.Hands, p)
			} else {
				f.Fingers = append(f.Fingers, p)
			}
			b = b[n:]
		case num == fieldUnixNanos && typ == protowire.Fixed64Type:
			v, n := protowire.ConsumeFixed64(b)
			if n < 0 {
				return Frame{}, malformed(n)
			}
			f.Timestamp = time.Unix(0, int64(v))
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return Frame{}, malformed(n)
			}
			b = b[n:]
		}
	}
	return f, nil
}

func unmarshalPoint(b []byte) (geom.Point, error) {
	var p geom.Point
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return p, malformed(n)
		}
		b = b[n:]
		if (num == fieldX || num == fieldY) && typ == protowire.Fixed64Type {
			v, n := protowire.ConsumeFixed64(b)
			if n < 0 {
				return p, malformed(n)
			}
			if num == fieldX {
				p.X = math.Float64frombits(v)
			} else {
				p.Y = math.Float64frombits(v)
			}
			b = b[n:]
			continue
		}
		n = protowire.ConsumeFieldValue(num, typ, b)
		if n < 0 {
			return p, malformed(n)
		}
		b = b[n:]
	}
	return p, nil
}

func malformed(n int) error {
	return fmt.Errorf("%w: %v", ErrMalformedFrame, protowire.ParseError(n))
}
