package hash

import (
	"encoding"
	"encoding/binary"
	"fmt"
	"io"
	"reflect"

	"github.com/cronokirby/saferith"
	"github.com/pkg/errors"
	"github.com/zeebo/blake3"
)

// DigestLengthBytes is the output length of Sum.
const DigestLengthBytes = 64

// SKILengthBytes is the length of a subject key identifier.
const SKILengthBytes = 32

// Hash is a domain-separated wrapper around blake3. Every value written is
// framed as (<domain_size><domain><data_size><data>), so distinct sequences
// of writes never collide.
type Hash struct {
	h *blake3.Hasher
}

// New creates a Hash initialized with "PAILLIER-BLAKE" and writes initialData.
func New(initialData ...interface{}) (*Hash, error) {
	hash := &Hash{h: blake3.New()}
	_, _ = hash.h.WriteString("PAILLIER-BLAKE")
	if err := hash.WriteAny(initialData...); err != nil {
		return nil, err
	}
	return hash, nil
}

// Digest returns a reader for the current output of the function.
//
// This finalizes the current state of the hash, and returns what's
// essentially a stream of random bytes.
func (hash *Hash) Digest() io.Reader {
	return hash.h.Digest()
}

// Sum returns a slice of length DigestLengthBytes resulting from the current hash state.
// If a different length is required, use io.ReadFull(hash.Digest(), out) instead.
func (hash *Hash) Sum() []byte {
	out := make([]byte, DigestLengthBytes)
	if _, err := io.ReadFull(hash.Digest(), out); err != nil {
		panic(fmt.Sprintf("hash.Sum: internal hash failure: %v", err))
	}
	return out
}

// WriteAny takes many different data types and writes them to the hash state.
//
// Currently supported types:
//
//   - []byte
//   - string
//   - *saferith.Nat
//   - *saferith.Modulus
//   - encoding.BinaryMarshaler
func (hash *Hash) WriteAny(data ...interface{}) error {
	for _, d := range data {
		var domain string
		var b []byte
		switch t := d.(type) {
		case []byte:
			if t == nil {
				return errors.New("hash.WriteAny: nil []byte")
			}
			domain, b = "[]byte", t
		case string:
			domain, b = "string", []byte(t)
		case *saferith.Nat:
			if t == nil {
				return errors.New("hash.WriteAny: nil *saferith.Nat")
			}
			domain, b = "saferith.Nat", t.Bytes()
		case *saferith.Modulus:
			if t == nil {
				return errors.New("hash.WriteAny: nil *saferith.Modulus")
			}
			domain, b = "saferith.Modulus", t.Bytes()
		case encoding.BinaryMarshaler:
			name := reflect.TypeOf(t)
			mb, err := t.MarshalBinary()
			if err != nil {
				return errors.WithMessagef(err, "hash.WriteAny: %s", name.String())
			}
			domain, b = name.String(), mb
		default:
			return errors.Errorf("hash.WriteAny: invalid type %T provided as input", d)
		}

		hash.writeBytesWithDomain(domain, b)
	}
	return nil
}

func (hash *Hash) writeBytesWithDomain(domain string, data []byte) {
	var sizeBuf [8]byte

	_, _ = hash.h.WriteString("(")
	// <domain_size>
	binary.BigEndian.PutUint64(sizeBuf[:], uint64(len(domain)))
	_, _ = hash.h.Write(sizeBuf[:])
	// <domain>
	_, _ = hash.h.WriteString(domain)
	// <data_size>
	binary.BigEndian.PutUint64(sizeBuf[:], uint64(len(data)))
	_, _ = hash.h.Write(sizeBuf[:])
	// <data>
	_, _ = hash.h.Write(data)
	// )
	_, _ = hash.h.WriteString(")")
}

// SKI returns the subject key identifier of a Paillier key with modulus n.
func SKI(n *saferith.Modulus) ([]byte, error) {
	h, err := New("paillier-ski", n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, SKILengthBytes)
	if _, err := io.ReadFull(h.Digest(), out); err != nil {
		return nil, errors.WithMessage(err, "hash: failed to read digest")
	}
	return out, nil
}
